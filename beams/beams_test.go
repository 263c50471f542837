package beams

import (
	"testing"

	"github.com/jsphweid/engraver/pitch"
	"github.com/stretchr/testify/assert"
)

func head(p string) *Head {
	return &Head{Pitches: []pitch.Pitch{pitch.MustParse(p)}}
}

func drain(b *Beams) []Short {
	var res []Short
	for s, ok := b.Next(); ok; s, ok = b.Next() {
		res = append(res, s)
	}
	return res
}

func TestEighthsInOneBucketMakeOneBeam(t *testing.T) {
	assert := assert.New(t)
	b := New()
	for i := 0; i < 4; i++ {
		b.Advance(16, float64(i*100), head("A3"))
	}
	b.Advance(64, 400, nil)

	shorts := drain(b)
	assert.Len(shorts, 1)
	assert.Equal(KindBeam, shorts[0].Kind)
	assert.Len(shorts[0].Members, 4)
	for i, m := range shorts[0].Members {
		assert.Equal(16, m.Duration)
		assert.Equal(float64(i*100), m.X)
		assert.False(m.OneBeam)
	}
}

func TestEighthsAcrossBucketsMakeTwoBeams(t *testing.T) {
	assert := assert.New(t)
	b := New()
	for i := 0; i < 8; i++ {
		b.Advance(16, float64(i), head("E4"))
	}
	shorts := drain(b)
	assert.Len(shorts, 2)
	for _, s := range shorts {
		assert.Equal(KindBeam, s.Kind)
		assert.Len(s.Members, 4)
	}
}

func TestEighthBetweenRestsIsFlag(t *testing.T) {
	assert := assert.New(t)
	b := New()
	b.Advance(32, 0, nil)
	b.Advance(16, 10, head("C4"))
	b.Advance(16, 20, nil)
	b.Advance(64, 30, nil)

	shorts := drain(b)
	assert.Len(shorts, 1)
	assert.Equal(KindFlag, shorts[0].Kind)
	assert.Equal(16, shorts[0].Duration)
	assert.Equal(10.0, shorts[0].X)
}

func TestRestsAreNeverBeamMembers(t *testing.T) {
	assert := assert.New(t)
	b := New()
	b.Advance(16, 0, head("C4"))
	b.Advance(16, 1, nil)
	b.Advance(16, 2, head("D4"))
	b.Advance(16, 3, head("E4"))
	b.Advance(64, 4, nil)

	shorts := drain(b)
	assert.Len(shorts, 2)
	assert.Equal(KindFlag, shorts[0].Kind)
	assert.Equal(0.0, shorts[0].X)
	assert.Equal(KindBeam, shorts[1].Kind)
	assert.Len(shorts[1].Members, 2)
	for _, m := range shorts[1].Members {
		assert.NotEmpty(m.Head.Pitches)
	}
}

func TestFlagAfterBeamIsQueued(t *testing.T) {
	assert := assert.New(t)
	b := New()
	b.Advance(32, 0, nil)
	b.Advance(16, 1, head("C4"))
	b.Advance(16, 2, head("C4"))
	// crosses into the next half of the measure
	b.Advance(16, 3, head("C4"))
	b.Advance(16, 4, nil)
	b.Advance(32, 5, nil)

	shorts := drain(b)
	assert.Len(shorts, 2)
	assert.Equal(KindBeam, shorts[0].Kind)
	assert.Len(shorts[0].Members, 2)
	assert.Equal(KindFlag, shorts[1].Kind)
	assert.Equal(3.0, shorts[1].X)
}

func TestStemDirectionVote(t *testing.T) {
	tests := []struct {
		name    string
		pitches []string
		up      bool
	}{
		{"below middle", []string{"A3", "B3"}, true},
		{"above middle", []string{"D4", "E4"}, false},
		{"tie", []string{"A3", "E4"}, false},
		{"on the line", []string{"C4", "C4"}, false},
		{"majority below", []string{"A3", "G3", "E4"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			for i, p := range tt.pitches {
				b.Advance(16, float64(i), head(p))
			}
			shorts := drain(b)
			assert.Len(t, shorts, 1)
			assert.Equal(t, tt.up, shorts[0].StemsUp)
		})
	}
}

func TestThirtySecondsSplitInnerBeams(t *testing.T) {
	assert := assert.New(t)
	b := New()
	for i := 0; i < 8; i++ {
		b.Advance(4, float64(i), head("C5"))
	}
	shorts := drain(b)
	assert.Len(shorts, 1)
	var one []bool
	for _, m := range shorts[0].Members {
		one = append(one, m.OneBeam)
	}
	assert.Equal([]bool{false, false, false, false, true, false, false, false}, one)
}
