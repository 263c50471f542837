// Package beams groups the short notes of one channel in one measure into
// flags and beamed groups.
package beams

import (
	"log/slog"

	"github.com/jsphweid/engraver/pitch"
)

// rules holds bucket widths in 128ths for grouping short notes.
type rules struct {
	eighth    int
	sixteenth int
	// inner groupings of 32nds under one outer eighth beam
	inner int
}

var rules4x4 = rules{eighth: 64, sixteenth: 32, inner: 16}

// Prop tells how a short note connects to the one before it.
type Prop uint8

const (
	None Prop = iota
	ContinueEighth
	ContinueSixteenth
	ContinueInner
	Flag
)

func (p Prop) String() string {
	return [...]string{"None", "ContinueEighth", "ContinueSixteenth", "ContinueInner", "Flag"}[p]
}

// Head is a notehead column: its pitches, the staff row it is drawn on, and
// the visual distance of that staff's middle line.
type Head struct {
	Pitches []pitch.Pitch
	Row     int
	Middle  pitch.Steps
}

// offset of the first pitch from the middle line, in steps.
func (h Head) offset() pitch.Steps {
	if len(h.Pitches) == 0 {
		return 0
	}
	return h.Pitches[0].VisualDistance() - h.Middle
}

type short struct {
	prop Prop
	dur  int
	x    float64
	head Head
}

// Member is one note of a beamed group.
type Member struct {
	Duration int
	X        float64
	Head     Head
	// OneBeam marks a note that only joins the outer beam of a group with
	// three or more beams.
	OneBeam bool
}

type member struct {
	dur       int
	x         float64
	head      Head
	sixteenth bool
}

type ShortKind uint8

const (
	KindFlag ShortKind = iota
	KindBeam
)

// Short is a flagged note (KindFlag: Duration, X, Head) or a beamed group
// (KindBeam: Members, StemsUp).
type Short struct {
	Kind     ShortKind
	Duration int
	X        float64
	Head     Head
	Members  []Member
	StemsUp  bool
}

// Beams collects the short notes of a measure as they are laid out, then
// replays them as flags and beams.
type Beams struct {
	// not notated yet in the measure, in 128ths
	dur       int
	short     []short
	lastShort bool
	// shortest duration within the current beam, 0 when there is none
	minDur int
	notes  []member
	queued *Short
}

func New() *Beams {
	return &Beams{dur: 128}
}

// Advance records the next token of the measure. A nil head is a rest.
func (b *Beams) Advance(dur int, x float64, head *Head) {
	newDur := b.dur - dur
	wasShort := b.lastShort
	b.lastShort = head != nil && dur < 32
	if b.lastShort {
		prop := Flag
		if wasShort && b.dur/rules4x4.eighth == newDur/rules4x4.eighth {
			prev := &b.short[len(b.short)-1]
			if prev.prop == Flag {
				prev.prop = None
			}
			switch {
			case b.dur/rules4x4.sixteenth != newDur/rules4x4.sixteenth:
				prop = ContinueEighth
			case b.dur/rules4x4.inner != newDur/rules4x4.inner:
				prop = ContinueSixteenth
			default:
				prop = ContinueInner
			}
		}
		b.short = append(b.short, short{prop: prop, dur: dur, x: x, head: *head})
		slog.Debug("beams advance", "prop", prop, "dur", dur, "remaining", newDur)
	}
	b.dur = newDur
}

// Next replays the recorded notes as flags and beams in time order.
func (b *Beams) Next() (Short, bool) {
	if b.queued != nil {
		ret := *b.queued
		b.queued = nil
		return ret, true
	}
	for len(b.short) > 0 {
		s := b.short[0]
		b.short = b.short[1:]
		switch s.prop {
		case None:
			var pending *Short
			if b.minDur != 0 {
				beam := b.flush()
				pending = &beam
			}
			b.notes = append(b.notes, member{dur: s.dur, x: s.x, head: s.head})
			b.minDur = s.dur
			if pending != nil {
				return *pending, true
			}
		case ContinueEighth:
			// more than one beam splits the group at the eighth
			if b.minDur < 16 {
				beam := b.flush()
				b.notes = append(b.notes, member{dur: s.dur, x: s.x, head: s.head})
				b.minDur = s.dur
				return beam, true
			}
			b.notes = append(b.notes, member{dur: s.dur, x: s.x, head: s.head})
			b.minDur = min(b.minDur, s.dur)
		case ContinueSixteenth:
			b.notes = append(b.notes, member{dur: s.dur, x: s.x, head: s.head, sixteenth: true})
			b.minDur = min(b.minDur, s.dur)
		case ContinueInner:
			b.notes = append(b.notes, member{dur: s.dur, x: s.x, head: s.head})
			b.minDur = min(b.minDur, s.dur)
		case Flag:
			flag := Short{Kind: KindFlag, Duration: s.dur, X: s.x, Head: s.head}
			if b.minDur != 0 {
				beam := b.flush()
				b.queued = &flag
				return beam, true
			}
			return flag, true
		}
	}
	if b.minDur != 0 {
		return b.flush(), true
	}
	return Short{}, false
}

// flush turns the pending notes into a beamed group.
func (b *Beams) flush() Short {
	// more notes below the middle line put the stems up
	vote := 0
	for _, n := range b.notes {
		switch off := n.head.offset(); {
		case off > 0:
			vote++
		case off < 0:
			vote--
		}
	}
	threeBeams := b.minDur < 8

	members := make([]Member, 0, len(b.notes))
	for _, n := range b.notes {
		members = append(members, Member{
			Duration: n.dur,
			X:        n.x,
			Head:     n.head,
			OneBeam:  n.sixteenth && threeBeams,
		})
	}
	b.notes = nil
	b.minDur = 0
	return Short{Kind: KindBeam, Members: members, StemsUp: vote < 0}
}
