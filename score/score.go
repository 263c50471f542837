package score

import (
	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
)

// Sig is a key/time/tempo signature used by a movement.
type Sig struct {
	// Key is 0-23 quarter steps above C.
	Key   uint8
	Time  string
	Tempo uint16
	// Swing percentage, nil means straight (50).
	Swing *uint8
}

func DefaultSig() Sig {
	return Sig{Key: 0, Time: "4/4", Tempo: 120}
}

// SigRef points into the movement's Sig list.
type SigRef struct {
	Index uint32
	Beat  *uint8
}

// Channel holds one voice for one measure. No markings is an implicit whole
// measure rest.
type Channel struct {
	Notes []model.Marking
	Lyric string
}

func (c Channel) Clone() Channel {
	res := Channel{Lyric: c.Lyric}
	for _, m := range c.Notes {
		res.Notes = append(res.Notes, m.Clone())
	}
	return res
}

type Measure struct {
	Sig    *SigRef
	Chan   []Channel
	Repeat []string
}

type Movement struct {
	Sig []Sig
	Bar []Measure
}

type Arranger struct {
	Name     string
	Ensemble string
}

type Meta struct {
	Composer   string
	Subtitle   string
	Number     uint32
	Lyricist   string
	Translator string
	Performers string
	Arranger   []Arranger
	Revised    []string
	Licenses   []string
	Grade      uint8
	Movement   []string
}

func DefaultMeta() Meta {
	return Meta{Composer: "Anonymous"}
}

type SigStyle struct {
	Tempo      string
	TimeSymbol bool
	SwingText  string
}

type Style struct {
	Sig []SigStyle
}

type Instrument struct {
	Waveform string
	Mute     string
}

// Score is the document root.
type Score struct {
	ID         string
	Title      string
	Meta       Meta
	Style      Style
	Instrument []Instrument
	Movement   []Movement

	// Cache holds the time signature of each measure of each movement.
	Cache [][]fraction.Fraction
}

// New creates a score with one movement holding one measure of whole
// measure rests on the given number of channels.
func New(channels int) *Score {
	if channels < 1 {
		channels = 1
	}
	bar := Measure{Chan: make([]Channel, channels)}
	s := &Score{
		Title:      "Untitled Score",
		Meta:       DefaultMeta(),
		Instrument: []Instrument{{}},
		Movement: []Movement{{
			Sig: []Sig{DefaultSig()},
			Bar: []Measure{bar},
		}},
	}
	s.RefreshCache()
	return s
}

// NumChannels is the channel count of the first measure of a movement.
func (s *Score) NumChannels(movement int) int {
	if movement >= len(s.Movement) || len(s.Movement[movement].Bar) == 0 {
		return 0
	}
	return len(s.Movement[movement].Bar[0].Chan)
}

// RefreshCache recomputes the time signature cache. Every measure currently
// uses the fixed whole measure grid.
func (s *Score) RefreshCache() {
	s.Cache = make([][]fraction.Fraction, len(s.Movement))
	for i, mv := range s.Movement {
		s.Cache[i] = make([]fraction.Fraction, len(mv.Bar))
		for j := range mv.Bar {
			s.Cache[i][j] = fraction.Whole
		}
	}
}
