package editor

import (
	"testing"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/stretchr/testify/assert"
)

func channel(e *Editor, measure int) string {
	return model.FormatChannel(e.Score.Movement[0].Bar[measure].Chan[0].Notes)
}

func TestStepOnImplicitRestWritesMiddleC(t *testing.T) {
	assert := assert.New(t)
	e := New(score.New(1))

	e.UpStep()
	assert.Equal("1/1C4", channel(e, 0))
	e.UpStep()
	assert.Equal("1/1D4", channel(e, 0))
	e.DownStep()
	e.DownStep()
	assert.Equal("1/1B3", channel(e, 0))
}

func TestHalfAndQuarterStepsMoveDiatonically(t *testing.T) {
	tests := []struct {
		command  func(*Editor)
		expected string
	}{
		{(*Editor).UpHalfStep, "1/1F4"},
		{(*Editor).DownHalfStep, "1/1D4"},
		{(*Editor).UpQuarterStep, "1/1F4"},
		{(*Editor).DownQuarterStep, "1/1D4"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			s := score.New(1)
			notes, err := model.ParseChannel("1/1E4")
			assert.NoError(t, err)
			s.Movement[0].Bar[0].Chan[0].Notes = notes
			e := New(s)
			tt.command(e)
			assert.Equal(t, tt.expected, channel(e, 0))
		})
	}
}

func TestStepKeepsDurationAndOtherChordMembers(t *testing.T) {
	assert := assert.New(t)
	s := score.New(1)
	notes, err := model.ParseChannel("1/2C4G4. 1/2R")
	assert.NoError(err)
	s.Movement[0].Bar[0].Chan[0].Notes = notes
	e := New(s)

	e.UpStep()
	assert.Equal("1/2D4G4. 1/2R", channel(e, 0))

	e.Right()
	e.UpStep()
	assert.Equal("1/2D4G4. 1/2C4", channel(e, 0), "a rest is padded with middle C")
}

func TestRightCreatesMeasureLeftKeepsIt(t *testing.T) {
	assert := assert.New(t)
	e := New(score.New(1))
	e.UpStep()
	start := e.Cursor

	e.Right()
	assert.Equal(score.NewCursor(0, 1, 0, 0), e.Cursor)
	assert.Len(e.Score.Movement[0].Bar, 2)

	e.Left()
	assert.Equal(start, e.Cursor)
	assert.Len(e.Score.Movement[0].Bar, 2)
}

func TestSetDur(t *testing.T) {
	assert := assert.New(t)
	e := New(score.New(1))

	e.SetDur(fraction.New(1, 4))
	assert.Equal("1/4R 3/4R", channel(e, 0))

	e.UpStep()
	assert.Equal("1/4C4 3/4R", channel(e, 0))
	e.SetDur(fraction.New(1, 2))
	assert.Equal("1/2C4 2/4R", channel(e, 0))
	assert.True(score.Duration(e.Score.Movement[0].Bar[0].Chan[0].Notes).Equal(fraction.Whole))
}

func TestSetDurShortensNote(t *testing.T) {
	assert := assert.New(t)
	e := New(score.New(1))
	e.UpStep()
	e.SetDur(fraction.New(1, 2))
	assert.Equal("1/2C4 1/2R", channel(e, 0))
	assert.Len(e.Score.Movement[0].Bar, 1)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	e := New(score.New(1))

	for _, c := range []string{"up-step", "up-step", "dur=1/4", "right", "down-step"} {
		assert.NoError(e.Run(c), c)
	}
	assert.Equal("1/4D4 3/4C4", channel(e, 0))

	assert.Error(e.Run("sideways"))
	assert.Error(e.Run("dur=x"))
	assert.Error(e.Run("dur=0/4"))
}
