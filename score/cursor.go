package score

import "fmt"

// Cursor addresses a marking by position. It never holds a reference into the
// score and is resolved again on every access.
type Cursor struct {
	Movement int
	Measure  int
	Chan     int
	Marking  int
}

func NewCursor(movement, measure, chan_, marking int) Cursor {
	return Cursor{Movement: movement, Measure: measure, Chan: chan_, Marking: marking}
}

func (c Cursor) String() string {
	return fmt.Sprintf("%v:%v:%v:%v", c.Movement, c.Measure, c.Chan, c.Marking)
}

func (c Cursor) FirstMarking() Cursor {
	c.Marking = 0
	return c
}

func (c Cursor) WithChan(chan_ int) Cursor {
	c.Chan = chan_
	return c
}

func (c Cursor) IsFirstBar() bool {
	return c.Measure == 0
}

// Left moves to the previous marking, or to the last marking of the previous
// measure.
func (c *Cursor) Left(s *Score) {
	if c.Marking > 0 {
		c.Marking--
	} else if c.Measure > 0 {
		c.Measure--
		n := s.MarkingLen(*c)
		if n > 0 {
			c.Marking = n - 1
		} else {
			c.Marking = 0
		}
	}
}

// Right moves to the next marking, or to the first marking of the next
// measure. The next measure may not exist yet; see Score.MeasureExists.
func (c *Cursor) Right(s *Score) {
	if c.RightChecked(s) {
		c.Measure++
		c.Marking = 0
	}
}

// RightChecked advances within the measure and reports whether the measure
// ended instead, in which case the cursor is unchanged.
func (c *Cursor) RightChecked(s *Score) bool {
	if c.Marking+1 < s.MarkingLen(*c) {
		c.Marking++
		return false
	}
	return true
}

// RightFix moves to the next measure if the cursor is past the end of its
// measure.
func (c *Cursor) RightFix(s *Score) bool {
	if c.Marking >= s.MarkingLen(*c) {
		c.Measure++
		c.Marking = 0
		return true
	}
	return false
}

// RightUnchecked returns the cursor one marking to the right without
// checking the measure length.
func (c Cursor) RightUnchecked() Cursor {
	c.Marking++
	return c
}
