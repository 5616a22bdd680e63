/*
Package ratio implements exact integer ratios.

A Ratio is the common result type of all measurements in this module. It keeps
numerator and denominator as given, so a measured ratio like 15/10 can be
presented to the user as-is. A zero denominator marks an undefined ratio; no
operation of this package divides by zero.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ratio

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/npillmayer/fontmetrics/core"
)

// Ratio is an immutable pair of integers num/den.
type Ratio struct {
	num, den int64
}

// New creates a ratio num/den. The pair is stored verbatim and not reduced.
// A denominator of zero denotes an undefined ratio.
func New(num, den int64) Ratio {
	return Ratio{num: num, den: den}
}

// Num returns the numerator.
func (r Ratio) Num() int64 {
	return r.num
}

// Den returns the denominator.
func (r Ratio) Den() int64 {
	return r.den
}

// IsUndefined is true for ratios with a zero denominator.
func (r Ratio) IsUndefined() bool {
	return r.den == 0
}

// Divide returns num / (den*n).
//
// Dividing by zero fails with core.ErrDivisionByZero. If den*n does not fit into
// an int64, core.ErrOverflow is returned.
func (r Ratio) Divide(n int64) (Ratio, error) {
	if n == 0 {
		return r, core.WrapError(core.ErrDivisionByZero, core.EUNDEFINED,
			"cannot divide ratio %s by zero", r)
	}
	den, ok := mul64(r.den, n)
	if !ok {
		return r, core.WrapError(core.ErrOverflow, core.EINVALID,
			"dividing ratio %s by %d overflows", r, n)
	}
	return Ratio{num: r.num, den: den}, nil
}

// Float64 returns an approximation of r as a float64. The second return value is
// false if r is undefined.
//
// The quotient is computed exactly and rounded once, so large numerators and
// denominators do not lose precision before the division.
func (r Ratio) Float64() (float64, bool) {
	if r.den == 0 {
		return math.NaN(), false
	}
	f, _ := new(big.Rat).SetFrac64(r.num, r.den).Float64()
	return f, true
}

// Reduced returns r in lowest terms with a positive denominator.
// Undefined ratios are returned unchanged.
func (r Ratio) Reduced() Ratio {
	if r.den == 0 {
		return r
	}
	q := new(big.Rat).SetFrac64(r.num, r.den)
	// numerator and denominator of a reduced int64 fraction always fit into an int64,
	// except for the sign flip of math.MinInt64
	if !q.Num().IsInt64() || !q.Denom().IsInt64() {
		return r
	}
	return Ratio{num: q.Num().Int64(), den: q.Denom().Int64()}
}

// Equal compares the values of two ratios, i.e. 10/5 equals 2/1.
// Undefined ratios are equal to each other if their numerators are equal.
func (r Ratio) Equal(other Ratio) bool {
	if r.den == 0 || other.den == 0 {
		return r.den == other.den && r.num == other.num
	}
	a := new(big.Int).Mul(big.NewInt(r.num), big.NewInt(other.den))
	b := new(big.Int).Mul(big.NewInt(other.num), big.NewInt(r.den))
	return a.Cmp(b) == 0
}

// Identical is true if r and other store the same numerator and denominator.
func (r Ratio) Identical(other Ratio) bool {
	return r == other
}

// String returns "num/den", or "undefined" for a zero denominator.
func (r Ratio) String() string {
	if r.den == 0 {
		return "undefined"
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Format returns a decimal representation of r with prec digits after the
// decimal point, or "undefined".
func (r Ratio) Format(prec int) string {
	f, ok := r.Float64()
	if !ok {
		return "undefined"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
