package fraction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOnZeroDenominator(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
}

func TestAddZero(t *testing.T) {
	assert := assert.New(t)
	assert.True(New(3, 8).Add(New(0, 1)).Equal(New(3, 8)))
	assert.True(New(0, 1).Add(New(3, 8)).Equal(New(3, 8)))
	assert.True(New(3, 8).Sub(New(0, 1)).Equal(New(3, 8)))
}

func TestAdd(t *testing.T) {
	cases := []struct{ a, b, want Fraction }{
		{New(1, 2), New(3, 4), New(5, 4)},
		{New(1, 8), New(1, 2), New(5, 8)},
		{New(1, 1), New(10, 1), New(11, 1)},
		{New(1, 3), New(1, 5), New(8, 15)},
		{New(4, 4), New(2, 4), New(3, 2)},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v+%v", c.a, c.b), func(t *testing.T) {
			assert.True(t, c.a.Add(c.b).Equal(c.want))
		})
	}
}

func TestAddAndSubAreNotSimplified(t *testing.T) {
	assert := assert.New(t)

	sum := New(1, 4).Add(New(1, 4))
	assert.Equal(Fraction{Num: 2, Den: 4}, sum)
	assert.NotEqual(sum.Simplify(), sum)
	assert.True(sum.Equal(New(1, 2)))

	diff := New(3, 4).Sub(New(1, 4))
	assert.Equal(Fraction{Num: 2, Den: 4}, diff)
	assert.True(diff.Equal(New(1, 2)))

	// one denominator divides the other: keep the larger one
	assert.Equal(Fraction{Num: 6, Den: 8}, New(1, 2).Add(New(2, 8)))
	assert.Equal(Fraction{Num: 5, Den: 8}, New(1, 8).Add(New(1, 2)))
	// cross multiplication otherwise
	assert.Equal(Fraction{Num: 8, Den: 15}, New(1, 3).Add(New(1, 5)))
}

func TestSub(t *testing.T) {
	assert := assert.New(t)
	assert.True(New(5, 4).Sub(New(1, 2)).Equal(New(3, 4)))
	assert.True(New(1, 1).Sub(New(1, 64)).Equal(New(63, 64)))
	assert.Panics(func() { New(1, 4).Sub(New(1, 2)) })
}

func TestMulDiv(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(New(3, 8), New(1, 2).Mul(New(3, 4)))
	assert.Equal(New(2, 3), New(1, 2).Div(New(3, 4)))
	assert.Equal(New(1, 2), New(2, 4).Mul(New(2, 2)))
}

func TestMulInt(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, New(0, 1).MulInt(32000))
	assert.Equal(32, New(1, 4).MulInt(128))
	assert.Equal(48, New(3, 8).MulInt(128))
	// truncates toward zero
	assert.Equal(42, New(1, 3).MulInt(128))
	assert.Equal(-42, New(1, 3).MulInt(-128))
}

func TestSimplify(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(New(2, 3), New(4, 6).Simplify())
	assert.Equal(New(0, 1), New(0, 7).Simplify())
	assert.Equal(New(5, 1), New(5, 1).Simplify())
}

func TestOrdering(t *testing.T) {
	assert := assert.New(t)
	assert.True(New(50, 25).Greater(New(99, 50)))
	assert.True(New(3, 4).Greater(New(1, 2)))
	assert.True(New(1, 3).Greater(New(1, 4)))
	assert.False(New(0, 3).Greater(New(0, 4)))
	assert.True(New(1, 4).Less(New(1, 2)))
	assert.Equal(0, New(2, 4).Cmp(New(1, 2)))
}

func TestRecipAndIsZero(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(New(4, 3), New(3, 4).Recip())
	assert.True(New(0, 5).IsZero())
	assert.False(New(1, 5).IsZero())
}

func TestScaledFractionsSimplifyToTheSame(t *testing.T) {
	for num := uint32(0); num < 12; num++ {
		for den := uint32(1); den < 12; den++ {
			a := New(num, den)
			for k := uint32(1); k < 6; k++ {
				scaled := New(num*k, den*k)
				assert.Equal(t, a.Simplify(), scaled.Simplify())
			}
		}
	}
}

func TestAddCommutesAndSubUndoesAdd(t *testing.T) {
	var values []Fraction
	for num := uint32(0); num < 9; num++ {
		for _, den := range []uint32{1, 2, 3, 4, 6, 8, 16, 128} {
			values = append(values, New(num, den))
		}
	}
	for _, a := range values {
		for _, b := range values {
			assert.True(t, a.Add(b).Equal(b.Add(a)), "%v + %v", a, b)
			assert.Equal(t, a.Simplify(), a.Add(b).Sub(b).Simplify(), "(%v + %v) - %v", a, b, b)
		}
	}
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	f, err := Parse("3/8")
	assert.NoError(err)
	assert.Equal(New(3, 8), f)
	assert.Equal("3/8", f.String())

	for _, bad := range []string{"", "3", "3/", "/8", "1/2/3", "1/0", "a/b"} {
		_, err := Parse(bad)
		assert.Error(err, bad)
	}
}
