package model

import "github.com/pkg/errors"

// Articulation affects how a note is played. Only the symbols with a single
// character spelling can appear in a note token.
type Articulation uint8

const (
	Staccatissimo Articulation = iota
	Staccato
	Tenuto
	Marcato
	Accent
	MuteClosed
	MuteOpen
	Harmonic
	Pedal
)

var articulationSymbols = map[Articulation]byte{
	Staccatissimo: '\'',
	Staccato:      '.',
	Tenuto:        '_',
	Marcato:       '^',
	Accent:        '>',
	MuteClosed:    '+',
	MuteOpen:      'o',
	Harmonic:      '@',
	Pedal:         '|',
}

func (a Articulation) String() string {
	return string(articulationSymbols[a])
}

func ParseArticulation(c byte) (Articulation, error) {
	for a, sym := range articulationSymbols {
		if sym == c {
			return a, nil
		}
	}
	return 0, errors.Errorf("invalid articulation %q", c)
}
