package fraction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fraction is an unsigned fraction of a measure. It is not reduced on
// construction, call Simplify where the reduced form matters.
type Fraction struct {
	Num uint32
	Den uint32
}

var Whole = Fraction{Num: 1, Den: 1}

func New(num, den uint32) Fraction {
	if den == 0 {
		panic(fmt.Sprintf("Could not create fraction %v/0: zero denominator", num))
	}
	return Fraction{Num: num, Den: den}
}

// Recip swaps numerator and denominator.
func (f Fraction) Recip() Fraction {
	return New(f.Den, f.Num)
}

func (f Fraction) Simplify() Fraction {
	a := gcd(uint64(f.Num), uint64(f.Den))
	if a == 0 {
		return f
	}
	return Fraction{Num: uint32(uint64(f.Num) / a), Den: uint32(uint64(f.Den) / a)}
}

func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// align returns both numerators scaled onto a shared denominator, preferring
// the larger denominator when one divides the other.
func align(a, b Fraction) (uint64, uint64, uint64) {
	switch {
	case a.Den%b.Den == 0:
		return uint64(a.Num), uint64(b.Num) * uint64(a.Den/b.Den), uint64(a.Den)
	case b.Den%a.Den == 0:
		return uint64(a.Num) * uint64(b.Den/a.Den), uint64(b.Num), uint64(b.Den)
	default:
		return uint64(a.Num) * uint64(b.Den), uint64(b.Num) * uint64(a.Den), uint64(a.Den) * uint64(b.Den)
	}
}

// Add returns f + other. The result is left unreduced.
func (f Fraction) Add(other Fraction) Fraction {
	if f.Num == 0 {
		return other
	}
	a, b, den := align(f, other)
	return narrow(a+b, den)
}

// Sub returns f - other, left unreduced. Panics if other > f.
func (f Fraction) Sub(other Fraction) Fraction {
	a, b, den := align(f, other)
	if b > a {
		panic(fmt.Sprintf("Could not subtract %v from %v: negative result", other, f))
	}
	return narrow(a-b, den)
}

func (f Fraction) Mul(other Fraction) Fraction {
	num := uint64(f.Num) * uint64(other.Num)
	den := uint64(f.Den) * uint64(other.Den)
	g := gcd(num, den)
	return narrow(num/g, den/g)
}

func (f Fraction) Div(other Fraction) Fraction {
	return f.Mul(other.Recip())
}

// MulInt scales an integer by f, truncating toward zero: (other*num)/den.
func (f Fraction) MulInt(other int) int {
	return int(int64(other) * int64(f.Num) / int64(f.Den))
}

func (f Fraction) Cmp(other Fraction) int {
	a := uint64(f.Num) * uint64(other.Den)
	b := uint64(other.Num) * uint64(f.Den)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal compares the reduced forms.
func (f Fraction) Equal(other Fraction) bool {
	return f.Simplify() == other.Simplify()
}

func (f Fraction) Less(other Fraction) bool {
	return f.Cmp(other) < 0
}

func (f Fraction) Greater(other Fraction) bool {
	return f.Cmp(other) > 0
}

func (f Fraction) String() string {
	return fmt.Sprintf("%v/%v", f.Num, f.Den)
}

// Parse reads a fraction written as "num/den".
func Parse(s string) (Fraction, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Fraction{}, errors.Errorf("invalid fraction %q", s)
	}
	num, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return Fraction{}, errors.Wrapf(err, "invalid numerator in %q", s)
	}
	den, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Fraction{}, errors.Wrapf(err, "invalid denominator in %q", s)
	}
	if den == 0 {
		return Fraction{}, errors.Errorf("zero denominator in %q", s)
	}
	return Fraction{Num: uint32(num), Den: uint32(den)}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic("Could not parse fraction: " + err.Error())
	}
	return f
}

// narrow fits a 64-bit intermediate back into 32 bits, reducing only when the
// unreduced value would overflow.
func narrow(num, den uint64) Fraction {
	if num > 0xFFFFFFFF || den > 0xFFFFFFFF {
		g := gcd(num, den)
		num, den = num/g, den/g
		if num > 0xFFFFFFFF || den > 0xFFFFFFFF {
			panic(fmt.Sprintf("Could not represent fraction %v/%v", num, den))
		}
	}
	return Fraction{Num: uint32(num), Den: uint32(den)}
}

// gcd is iterative Euclid with gcd(0, x) = x.
func gcd(a, b uint64) uint64 {
	if a == 0 {
		return b
	} else if b == 0 {
		return a
	}
	for {
		a %= b
		if a == 0 {
			return b
		}
		b %= a
		if b == 0 {
			return a
		}
	}
}
