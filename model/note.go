package model

import (
	"fmt"
	"strings"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/pitch"
	"github.com/pkg/errors"
)

// Note is a chord of pitches sharing one duration. No pitches means a rest.
type Note struct {
	Pitch        []pitch.Pitch
	Duration     fraction.Fraction
	Articulation []Articulation
}

func Rest(duration fraction.Fraction) Note {
	return Note{Duration: duration}
}

func (n Note) IsRest() bool {
	return len(n.Pitch) == 0
}

func (n Note) Clone() Note {
	c := Note{Duration: n.Duration}
	if n.Pitch != nil {
		c.Pitch = append([]pitch.Pitch{}, n.Pitch...)
	}
	if n.Articulation != nil {
		c.Articulation = append([]Articulation{}, n.Articulation...)
	}
	return c
}

// VisualDistance of chord member i above middle C.
func (n Note) VisualDistance(i int) (pitch.Steps, bool) {
	if i < 0 || i >= len(n.Pitch) {
		return 0, false
	}
	return n.Pitch[i].VisualDistance(), true
}

// SetPitch overwrites chord member i, or appends when i is the chord length.
func (n *Note) SetPitch(i int, p pitch.Pitch) {
	switch {
	case i < len(n.Pitch):
		n.Pitch[i] = p
	case i == len(n.Pitch):
		n.Pitch = append(n.Pitch, p)
	default:
		panic(fmt.Sprintf("Could not set pitch %v of a %v note chord", i, len(n.Pitch)))
	}
}

func (n *Note) SetDuration(d fraction.Fraction) {
	n.Duration = d
}

// moveStep applies run to chord member i. A chord shorter than i+1 is padded
// with create instead.
func (n Note) moveStep(i int, create pitch.Pitch, run func(pitch.Pitch) pitch.Pitch) Note {
	c := n.Clone()
	if i < len(c.Pitch) {
		c.Pitch[i] = run(c.Pitch[i])
		return c
	}
	for len(c.Pitch) < i+1 {
		c.Pitch = append(c.Pitch, create)
	}
	return c
}

func (n Note) StepUp(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.StepUp)
}

func (n Note) StepDown(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.StepDown)
}

func (n Note) HalfStepUp(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.HalfStepUp)
}

func (n Note) HalfStepDown(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.HalfStepDown)
}

func (n Note) QuarterStepUp(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.QuarterStepUp)
}

func (n Note) QuarterStepDown(i int, create pitch.Pitch) Note {
	return n.moveStep(i, create, pitch.Pitch.QuarterStepDown)
}

// String writes the note token, e.g. "1/4C4E4." or "1/2R".
func (n Note) String() string {
	var b strings.Builder
	b.WriteString(n.Duration.String())
	if n.IsRest() {
		b.WriteString("R")
	}
	for _, p := range n.Pitch {
		b.WriteString(p.String())
	}
	for _, a := range n.Articulation {
		b.WriteString(a.String())
	}
	return b.String()
}

func isNameLetter(c byte) bool {
	return c >= 'A' && c <= 'G'
}

func isOctaveChar(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}

// ParseNote reads one note token: <num/den><pitches|R><articulation*>.
func ParseNote(s string) (Note, error) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == 'R' || (r < 0x80 && isNameLetter(byte(r)))
	})
	if end < 0 {
		return Note{}, errors.Errorf("invalid note %q: no pitch or rest", s)
	}
	duration, err := fraction.Parse(s[:end])
	if err != nil {
		return Note{}, errors.Wrapf(err, "invalid note %q", s)
	}

	var note Note
	note.Duration = duration
	if s[end] == 'R' {
		end++
	} else {
		for end < len(s) && isNameLetter(s[end]) {
			begin := end
			end++
			for end < len(s) && !isOctaveChar(s[end]) {
				end++
			}
			if end == len(s) {
				return Note{}, errors.Errorf("invalid note %q: pitch without octave", s)
			}
			end++
			p, err := pitch.Parse(s[begin:end])
			if err != nil {
				return Note{}, errors.Wrapf(err, "invalid note %q", s)
			}
			note.Pitch = append(note.Pitch, p)
		}
	}

	for i := end; i < len(s); i++ {
		a, err := ParseArticulation(s[i])
		if err != nil {
			return Note{}, errors.Wrapf(err, "invalid note %q", s)
		}
		note.Articulation = append(note.Articulation, a)
	}
	return note, nil
}

// MustParseNote is ParseNote for literals known to be valid.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic("Could not parse note: " + err.Error())
	}
	return n
}
