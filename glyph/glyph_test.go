package glyph

import (
	"testing"

	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pitch"
	"github.com/stretchr/testify/assert"
)

func TestRestDuration(t *testing.T) {
	tests := map[int]Glyph{
		1: Rest128, 2: Rest64, 4: Rest32, 8: Rest16, 16: Rest8,
		32: Rest4, 48: Rest4, 64: Rest2, 128: Rest1, 256: RestDouble, 512: RestLonga,
	}
	for dur, expected := range tests {
		g, ok := RestDuration(dur)
		assert.True(t, ok, dur)
		assert.Equal(t, expected, g, dur)
	}
	_, ok := RestDuration(5)
	assert.False(t, ok)
}

func TestFlagDuration(t *testing.T) {
	assert := assert.New(t)
	g, ok := FlagDuration(16, true)
	assert.True(ok)
	assert.Equal(FlagUp8, g)
	g, _ = FlagDuration(8, false)
	assert.Equal(FlagDown16, g)
	g, _ = FlagDuration(1, false)
	assert.Equal(FlagDown128, g)
	_, ok = FlagDuration(32, true)
	assert.False(ok, "quarter notes have no flag")
}

func TestNoteheadDuration(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(NoteheadFill, NoteheadDuration(1))
	assert.Equal(NoteheadFill, NoteheadDuration(32))
	assert.Equal(NoteheadFill, NoteheadDuration(63))
	assert.Equal(NoteheadHalf, NoteheadDuration(64))
	assert.Equal(NoteheadWhole, NoteheadDuration(128))
	assert.Equal(NoteheadDouble, NoteheadDuration(256))
}

func TestLookups(t *testing.T) {
	assert := assert.New(t)
	g, ok := TimeDigit(4)
	assert.True(ok)
	assert.Equal(Glyph(0xE084), g)
	_, ok = TimeDigit(10)
	assert.False(ok)

	g, ok = ForAccidental(pitch.Sharp)
	assert.True(ok)
	assert.Equal(Sharp, g)
	_, ok = ForAccidental(pitch.NoAccidental)
	assert.False(ok)

	g, ok = ForArticulation(model.Staccato)
	assert.True(ok)
	assert.Equal(StaccatoAbove, g)

	assert.Equal("e0a4", NoteheadFill.ID())
}
