package pitch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Steps counts diatonic staff steps above middle C.
type Steps int

type Name uint8

const (
	C Name = iota
	D
	E
	F
	G
	A
	B
)

var nameLetters = "CDEFGAB"

func (n Name) String() string {
	return nameLetters[n : n+1]
}

func ParseName(s string) (Name, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("invalid pitch name %q", s)
	}
	i := strings.IndexByte(nameLetters, s[0])
	if i < 0 {
		return 0, errors.Errorf("invalid pitch name %q", s)
	}
	return Name(i), nil
}

// Accidental is optional; the zero value means none is written.
type Accidental uint8

const (
	NoAccidental Accidental = iota
	DoubleFlat
	FlatQuarterFlat
	Flat
	QuarterFlat
	Natural
	QuarterSharp
	Sharp
	SharpQuarterSharp
	DoubleSharp
)

var accidentalSymbols = map[Accidental]string{
	NoAccidental:      "",
	DoubleFlat:        "bb",
	FlatQuarterFlat:   "db",
	Flat:              "b",
	QuarterFlat:       "d",
	Natural:           "n",
	QuarterSharp:      "t",
	Sharp:             "#",
	SharpQuarterSharp: "t#",
	DoubleSharp:       "x",
}

func (a Accidental) String() string {
	return accidentalSymbols[a]
}

func ParseAccidental(s string) (Accidental, error) {
	for a, sym := range accidentalSymbols {
		if sym == s {
			return a, nil
		}
	}
	return NoAccidental, errors.Errorf("invalid accidental %q", s)
}

// Semitones is the offset in half steps, quarter tones rounded toward natural.
func (a Accidental) Semitones() int {
	switch a {
	case DoubleFlat:
		return -2
	case FlatQuarterFlat, Flat:
		return -1
	case Sharp, SharpQuarterSharp:
		return 1
	case DoubleSharp:
		return 2
	}
	return 0
}

// Octave is limited to -1..9.
type Octave int8

const (
	MinOctave Octave = -1
	MaxOctave Octave = 9
)

func (o Octave) Raise() (Octave, bool) {
	if o >= MaxOctave {
		return o, false
	}
	return o + 1, true
}

func (o Octave) Lower() (Octave, bool) {
	if o <= MinOctave {
		return o, false
	}
	return o - 1, true
}

func (o Octave) String() string {
	if o == -1 {
		return "-"
	}
	return fmt.Sprint(int8(o))
}

func ParseOctave(s string) (Octave, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("invalid octave %q", s)
	}
	switch c := s[0]; {
	case c == '-':
		return -1, nil
	case c >= '0' && c <= '9':
		return Octave(c - '0'), nil
	}
	return 0, errors.Errorf("invalid octave %q", s)
}

type Class struct {
	Name       Name
	Accidental Accidental
}

func (c Class) String() string {
	return c.Name.String() + c.Accidental.String()
}

type Pitch struct {
	Class  Class
	Octave Octave
}

func New(name Name, accidental Accidental, octave Octave) Pitch {
	return Pitch{Class: Class{Name: name, Accidental: accidental}, Octave: octave}
}

// MiddleC is C4, the default pitch for notes created from rests.
var MiddleC = New(C, NoAccidental, 4)

// VisualDistance is the number of staff steps above middle C.
func (p Pitch) VisualDistance() Steps {
	return Steps(int(p.Class.Name) + 7*(int(p.Octave)-4))
}

// MIDIKey maps the pitch to a MIDI key number (C4 = 60), clamped to 0..127.
func (p Pitch) MIDIKey() uint8 {
	semitones := [...]int{0, 2, 4, 5, 7, 9, 11}
	key := 12*(int(p.Octave)+1) + semitones[p.Class.Name] + p.Class.Accidental.Semitones()
	if key < 0 {
		return 0
	} else if key > 127 {
		return 127
	}
	return uint8(key)
}

func (p Pitch) String() string {
	return p.Class.String() + p.Octave.String()
}

// Parse reads a pitch token such as "C4", "Bb3", "Ft#-".
func Parse(s string) (Pitch, error) {
	if len(s) < 2 {
		return Pitch{}, errors.Errorf("invalid pitch %q", s)
	}
	name, err := ParseName(s[:1])
	if err != nil {
		return Pitch{}, err
	}
	octave, err := ParseOctave(s[len(s)-1:])
	if err != nil {
		return Pitch{}, errors.Wrapf(err, "invalid pitch %q", s)
	}
	accidental := NoAccidental
	if sym := s[1 : len(s)-1]; sym != "" {
		accidental, err = ParseAccidental(sym)
		if err != nil {
			return Pitch{}, errors.Wrapf(err, "invalid pitch %q", s)
		}
	}
	return New(name, accidental, octave), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Pitch {
	p, err := Parse(s)
	if err != nil {
		panic("Could not parse pitch: " + err.Error())
	}
	return p
}
