package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Dynamic uint8

const (
	PPPPPP Dynamic = iota
	PPPPP
	PPPP
	PPP
	PP
	P
	MP
	MF
	F
	FF
	FFF
	FFFF
	FFFFF
	FFFFFF
	N
	SF
	SFZ
	FP
	SFP
)

var dynamicNames = [...]string{
	"pppppp", "ppppp", "pppp", "ppp", "pp", "p", "mp", "mf", "f", "ff",
	"fff", "ffff", "fffff", "ffffff", "n", "sf", "sfz", "fp", "sfp",
}

func (d Dynamic) String() string {
	return dynamicNames[d]
}

// Kind tags which variant a Marking holds.
type Kind uint8

const (
	KindNote Kind = iota
	KindDynamic
	KindGraceInto
	KindGraceOutOf
	KindBreath
	KindCaesuraShort
	KindCaesuraLong
	KindCresc
	KindDim
	KindPizz
	KindArco
	KindMute
	KindOpen
	KindRepeat
)

// Marking is one event in a channel. Note is set for KindNote, KindGraceInto
// and KindGraceOutOf; Dynamic only for KindDynamic.
type Marking struct {
	Kind    Kind
	Note    Note
	Dynamic Dynamic
}

func NoteMarking(n Note) Marking {
	return Marking{Kind: KindNote, Note: n}
}

func DynamicMarking(d Dynamic) Marking {
	return Marking{Kind: KindDynamic, Dynamic: d}
}

// HasNote reports whether the marking carries a note (including grace notes).
func (m Marking) HasNote() bool {
	switch m.Kind {
	case KindNote, KindGraceInto, KindGraceOutOf:
		return true
	case KindDynamic, KindBreath, KindCaesuraShort, KindCaesuraLong, KindCresc,
		KindDim, KindPizz, KindArco, KindMute, KindOpen, KindRepeat:
		return false
	}
	panic(fmt.Sprintf("Could not classify marking kind %v", m.Kind))
}

// IsTimed reports whether the marking takes up time in the measure.
func (m Marking) IsTimed() bool {
	return m.Kind == KindNote
}

func (m Marking) Clone() Marking {
	m.Note = m.Note.Clone()
	return m
}

var symbolKinds = map[string]Kind{
	"breath":   KindBreath,
	"caesura":  KindCaesuraShort,
	"caesura+": KindCaesuraLong,
	"cresc":    KindCresc,
	"dim":      KindDim,
	"pizz":     KindPizz,
	"arco":     KindArco,
	"mute":     KindMute,
	"open":     KindOpen,
	"repeat":   KindRepeat,
}

func (m Marking) String() string {
	switch m.Kind {
	case KindNote:
		return m.Note.String()
	case KindGraceInto:
		return "~" + m.Note.String()
	case KindGraceOutOf:
		return m.Note.String() + "~"
	case KindDynamic:
		return "!" + m.Dynamic.String()
	}
	for sym, k := range symbolKinds {
		if k == m.Kind {
			return "!" + sym
		}
	}
	panic(fmt.Sprintf("Could not format marking kind %v", m.Kind))
}

// ParseMarking reads one whitespace separated channel token. Notes are plain
// note tokens, grace notes carry a leading (into) or trailing (out of) '~',
// and the other markings are spelled "!name".
func ParseMarking(s string) (Marking, error) {
	switch {
	case strings.HasPrefix(s, "!"):
		name := s[1:]
		for i, dn := range dynamicNames {
			if dn == name {
				return DynamicMarking(Dynamic(i)), nil
			}
		}
		if k, ok := symbolKinds[name]; ok {
			return Marking{Kind: k}, nil
		}
		return Marking{}, errors.Errorf("invalid marking %q", s)
	case strings.HasPrefix(s, "~"):
		n, err := ParseNote(s[1:])
		return Marking{Kind: KindGraceInto, Note: n}, err
	case strings.HasSuffix(s, "~"):
		n, err := ParseNote(s[:len(s)-1])
		return Marking{Kind: KindGraceOutOf, Note: n}, err
	}
	n, err := ParseNote(s)
	if err != nil {
		return Marking{}, err
	}
	return NoteMarking(n), nil
}

// ParseChannel reads a space separated list of markings. An empty string is
// an implicit whole measure rest and yields no markings.
func ParseChannel(s string) ([]Marking, error) {
	var res []Marking
	for _, tok := range strings.Fields(s) {
		m, err := ParseMarking(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}

func FormatChannel(markings []Marking) string {
	toks := make([]string, 0, len(markings))
	for _, m := range markings {
		toks = append(toks, m.String())
	}
	return strings.Join(toks, " ")
}
