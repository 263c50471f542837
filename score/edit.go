package score

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pitch"
)

// Marking looks up the marking at a cursor. False is the normal signal that
// the cursor is past the end of its channel, measure or movement.
func (s *Score) Marking(c Cursor) (model.Marking, bool) {
	notes, ok := s.channelNotes(c)
	if !ok || c.Marking < 0 || c.Marking >= len(notes) {
		return model.Marking{}, false
	}
	return notes[c.Marking], true
}

func (s *Score) measure(c Cursor) (*Measure, bool) {
	if c.Movement < 0 || c.Movement >= len(s.Movement) {
		return nil, false
	}
	bars := s.Movement[c.Movement].Bar
	if c.Measure < 0 || c.Measure >= len(bars) {
		return nil, false
	}
	return &bars[c.Measure], true
}

func (s *Score) channel(c Cursor) (*Channel, bool) {
	m, ok := s.measure(c)
	if !ok || c.Chan < 0 || c.Chan >= len(m.Chan) {
		return nil, false
	}
	return &m.Chan[c.Chan], true
}

func (s *Score) channelNotes(c Cursor) ([]model.Marking, bool) {
	ch, ok := s.channel(c)
	if !ok {
		return nil, false
	}
	return ch.Notes, true
}

func (s *Score) mustChannel(c Cursor) *Channel {
	ch, ok := s.channel(c)
	if !ok {
		panic(fmt.Sprintf("Could not find channel at cursor %v", c))
	}
	return ch
}

// MarkingLen counts the markings of the channel measure at the cursor.
func (s *Score) MarkingLen(c Cursor) int {
	notes, _ := s.channelNotes(c)
	return len(notes)
}

func (s *Score) MeasureExists(c Cursor) bool {
	_, ok := s.measure(c)
	return ok
}

// NewMeasure appends a measure of implicit whole rests to a movement, with as
// many channels as its last measure.
func (s *Score) NewMeasure(movement int) {
	if movement < 0 || movement >= len(s.Movement) {
		return
	}
	mv := &s.Movement[movement]
	if len(mv.Bar) == 0 {
		return
	}
	last := mv.Bar[len(mv.Bar)-1]
	mv.Bar = append(mv.Bar, Measure{Chan: make([]Channel, len(last.Chan))})
	if movement < len(s.Cache) {
		s.Cache[movement] = append(s.Cache[movement], fraction.Whole)
	}
}

// Note returns the note at the cursor if the marking there is a plain note.
func (s *Score) Note(c Cursor) (model.Note, bool) {
	m, ok := s.Marking(c)
	if !ok || m.Kind != model.KindNote {
		return model.Note{}, false
	}
	return m.Note, true
}

func (s *Score) mustNote(c Cursor) model.Note {
	n, ok := s.Note(c)
	if !ok {
		panic(fmt.Sprintf("Could not find note at cursor %v", c))
	}
	return n.Clone()
}

func (s *Score) setNote(c Cursor, n model.Note) {
	s.mustChannel(c).Notes[c.Marking] = model.NoteMarking(n)
}

// SetPitch sets chord member i of the note at the cursor.
func (s *Score) SetPitch(c Cursor, i int, p pitch.Pitch) {
	n := s.mustNote(c)
	n.SetPitch(i, p)
	s.setNote(c, n)
}

// SetNote overwrites the note at the cursor, keeping its duration.
func (s *Score) SetNote(c Cursor, n model.Note) {
	old := s.mustNote(c)
	n = n.Clone()
	n.Duration = old.Duration
	s.setNote(c, n)
}

// Duration sums the timed markings of a channel.
func Duration(markings []model.Marking) fraction.Fraction {
	total := fraction.New(0, 1)
	for _, m := range markings {
		if m.IsTimed() {
			total = total.Add(m.Note.Duration)
		}
	}
	return total
}

// SetEmptyMeasure fills an empty channel measure with a whole rest and splices
// the note in at its start. It returns what did not fit in the measure.
func (s *Score) SetEmptyMeasure(c Cursor, note model.Note) (fraction.Fraction, bool) {
	ch := s.mustChannel(c)
	ch.Notes = append(ch.Notes, model.NoteMarking(model.Rest(fraction.Whole)))
	return s.SetFullMeasure(c, note)
}

// SetFullMeasure splices the note in at the start of the channel measure.
func (s *Score) SetFullMeasure(c Cursor, note model.Note) (fraction.Fraction, bool) {
	return s.SetPartMeasure(c.FirstMarking(), note)
}

// SetPartMeasure writes the note at the cursor, consuming the following
// markings until its duration is used up. A partly consumed note is shortened
// and kept after the new one. When the measure runs out first, the note is
// cut to fit and the unconsumed remainder is returned.
func (s *Score) SetPartMeasure(c Cursor, note model.Note) (fraction.Fraction, bool) {
	ch := s.mustChannel(c)
	notes := ch.Notes
	if c.Marking < 0 || c.Marking > len(notes) {
		panic(fmt.Sprintf("Could not splice at cursor %v", c))
	}

	wasFull := Duration(notes).Equal(fraction.Whole)
	note = note.Clone()
	quota := note.Duration

	spliced := make([]model.Marking, 0, len(notes)+1)
	spliced = append(spliced, notes[:c.Marking]...)

	i := c.Marking
	for {
		if i == len(notes) {
			note.Duration = note.Duration.Sub(quota)
			if !note.Duration.IsZero() {
				spliced = append(spliced, model.NoteMarking(note))
			}
			ch.Notes = spliced
			s.assertConserved(c, wasFull)
			slog.Debug("splice reached end of measure", "cursor", c, "remainder", quota)
			return quota, true
		}

		visited := notes[i]
		i++
		if !visited.IsTimed() {
			continue
		}

		d := visited.Note.Duration
		if quota.Greater(d) {
			quota = quota.Sub(d)
			continue
		}
		spliced = append(spliced, model.NoteMarking(note))
		if quota.Less(d) {
			shortened := visited.Note.Clone()
			shortened.Duration = d.Sub(quota)
			spliced = append(spliced, model.NoteMarking(shortened))
		}
		break
	}

	spliced = append(spliced, notes[i:]...)
	ch.Notes = spliced
	s.assertConserved(c, wasFull)
	return fraction.New(0, 1), false
}

func (s *Score) assertConserved(c Cursor, wasFull bool) {
	if !wasFull {
		return
	}
	if total := Duration(s.mustChannel(c).Notes); !total.Equal(fraction.Whole) {
		panic(fmt.Sprintf("Could not conserve measure duration at cursor %v: got %v", c, total))
	}
}

// SetWholePitch turns an implicit whole measure rest into a whole note C4.
func (s *Score) SetWholePitch(c Cursor) {
	ch := s.mustChannel(c)
	ch.Notes = append(ch.Notes, model.NoteMarking(model.Note{
		Pitch:    []pitch.Pitch{pitch.MiddleC},
		Duration: fraction.Whole,
	}))
}

// SetWholeDuration writes a rest of the given duration at the start of an
// implicit whole measure rest.
func (s *Score) SetWholeDuration(c Cursor, d fraction.Fraction) {
	s.SetEmptyMeasure(c, model.Rest(d))
}

// SetDuration changes the duration of the note at the cursor. Shortening
// leaves a rest of the difference after it. Lengthening overwrites the
// following markings, carrying into the next measures as needed.
func (s *Score) SetDuration(c Cursor, d fraction.Fraction) {
	note := s.mustNote(c)
	old := note.Duration
	note.SetDuration(d)

	if old.Greater(d) {
		s.InsertAfter(c, model.NoteMarking(model.Rest(old.Sub(d))))
		s.setNote(c, note)
		return
	}

	for {
		rem, ok := s.SetPartMeasure(c, note)
		if !ok || rem.IsZero() {
			return
		}
		c.Measure++
		c.Marking = 0
		if !s.MeasureExists(c) {
			s.NewMeasure(c.Movement)
		}
		ch := s.mustChannel(c)
		if len(ch.Notes) == 0 {
			ch.Notes = append(ch.Notes, model.NoteMarking(model.Rest(fraction.Whole)))
		}
		note.SetDuration(rem)
	}
}

// InsertAt inserts a marking at the cursor index.
func (s *Score) InsertAt(c Cursor, m model.Marking) bool {
	ch, ok := s.channel(c)
	if !ok || c.Marking < 0 || c.Marking > len(ch.Notes) {
		return false
	}
	ch.Notes = append(ch.Notes[:c.Marking], append([]model.Marking{m}, ch.Notes[c.Marking:]...)...)
	return true
}

// InsertAfter inserts a marking right after the cursor.
func (s *Score) InsertAfter(c Cursor, m model.Marking) bool {
	return s.InsertAt(c.RightUnchecked(), m)
}

// RemoveAt removes and returns the marking at the cursor.
func (s *Score) RemoveAt(c Cursor) (model.Marking, bool) {
	ch, ok := s.channel(c)
	if !ok || c.Marking < 0 || c.Marking >= len(ch.Notes) {
		return model.Marking{}, false
	}
	m := ch.Notes[c.Marking]
	ch.Notes = append(ch.Notes[:c.Marking], ch.Notes[c.Marking+1:]...)
	return m, true
}
