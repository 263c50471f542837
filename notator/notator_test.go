package notator

import (
	"testing"

	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/stretchr/testify/assert"
)

func TestDecomposeIsExact(t *testing.T) {
	for d := 1; d <= 512; d++ {
		chunks := Decompose(d)
		sum := 0
		for i, c := range chunks {
			assert.Equal(t, 0, c&(c-1), "chunk %v of %v is a power of two", c, d)
			if i > 0 {
				assert.Less(t, c, chunks[i-1], "chunks of %v decrease", d)
			}
			sum += c
		}
		assert.Equal(t, d, sum)
	}
}

func TestDecompose(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{32, 16}, Decompose(48))
	assert.Equal([]int{128}, Decompose(128))
	assert.Equal([]int{512}, Decompose(512))
	assert.Equal([]int{64, 32, 16, 8, 4, 2, 1}, Decompose(127))
	assert.Empty(Decompose(0))
}

func TestNotatorSplitsTiedTokens(t *testing.T) {
	assert := assert.New(t)
	s := score.New(1)
	notes, err := model.ParseChannel("!mf 3/8C4 1/8R ~1/16D4 1/2E4G4")
	assert.NoError(err)
	s.Movement[0].Bar[0].Chan[0].Notes = notes

	user := score.NewCursor(0, 0, 0, 1)
	n := New(s, user, score.NewCursor(0, 0, 0, 0))

	var got []Token
	for tok, ok := n.Next(); ok; tok, ok = n.Next() {
		got = append(got, tok)
	}
	assert.Len(got, 4)
	assert.Equal(32, got[0].Duration)
	assert.True(got[0].IsCursor)
	assert.Equal(16, got[1].Duration)
	assert.True(got[1].IsCursor)
	assert.Equal("C4", got[1].Pitches[0].String())

	assert.Equal(16, got[2].Duration)
	assert.True(got[2].IsRest())
	assert.False(got[2].IsCursor)

	assert.Equal(64, got[3].Duration)
	assert.Len(got[3].Pitches, 2)

	_, ok := n.Next()
	assert.False(ok)
}

func TestNotatorEmptyChannel(t *testing.T) {
	s := score.New(2)
	n := New(s, score.Cursor{}, score.NewCursor(0, 0, 1, 0))
	_, ok := n.Next()
	assert.False(t, ok)
}
