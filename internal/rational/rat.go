package rational

import (
	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Rat is an exact rational number kept in lowest terms: the denominator is
// positive, numerator and denominator are coprime, and zero is 0/1. Every
// exported operation restores this form. The zero value is not usable; build
// values with the constructors below.
//
// As with bigint values, methods without the Assign suffix return a new Rat
// and Assign methods update the receiver. Do not copy a Rat by assignment;
// use Clone.
type Rat struct {
	den bigint.Int
	num bigint.Int
}

// newRaw builds num/den without normalization and takes ownership of both.
// Callers must already hold den > 0 and gcd(num, den) = 1; each call site
// states why that holds.
func newRaw(num, den *bigint.Int) *Rat {
	r := &Rat{}
	r.num.Set(num)
	r.den.Set(den)
	return r
}

// FromFracUnchecked returns num/den without reducing it. The caller must
// guarantee den > 0 and gcd(num, den) = 1 (den = 1 when num = 0); nothing is
// checked. It exists for precomputed constants.
func FromFracUnchecked(num, den *bigint.Int) *Rat {
	return newRaw(num, den)
}

// normalize moves the sign to the numerator and divides out the gcd. It
// panics on a zero denominator.
func (z *Rat) normalize() *Rat {
	if z.den.IsZero() {
		panic(apperrors.ErrZeroDenominator)
	}
	if z.num.IsZero() {
		z.den.Set(bigint.NewInt(1))
		return z
	}
	if z.den.IsNeg() {
		z.den.NegAssign()
		z.num.NegAssign()
	}
	if g := bigint.GcdInt(&z.num, &z.den); !g.IsOne() {
		z.num.QuoAssign(g)
		z.den.QuoAssign(g)
	}
	return z
}

// NewRat returns num/den in lowest terms. It panics if den is zero.
func NewRat(num, den int64) *Rat {
	return FromFrac(bigint.NewInt(num), bigint.NewInt(den))
}

// FromFrac returns num/den in lowest terms. The arguments are copied. It
// panics if den is zero.
func FromFrac(num, den *bigint.Int) *Rat {
	z := &Rat{}
	z.num.Set(num)
	z.den.Set(den)
	return z.normalize()
}

// FromInt returns the integer x as a Rat.
func FromInt(x *bigint.Int) *Rat {
	// x/1 is already reduced.
	return newRaw(x, bigint.NewInt(1))
}

// FromInt64 returns x as a Rat.
func FromInt64(x int64) *Rat { return FromInt(bigint.NewInt(x)) }

// FromUBigInt returns x as a non-negative Rat.
func FromUBigInt(x *bigint.UBigInt) *Rat { return FromInt(bigint.IntFromUBigInt(x, false)) }

// Zero returns 0.
func Zero() *Rat { return FromInt64(0) }

// One returns 1.
func One() *Rat { return FromInt64(1) }

// Set sets z to x and returns z.
func (z *Rat) Set(x *Rat) *Rat {
	z.num.Set(&x.num)
	z.den.Set(&x.den)
	return z
}

// Clone returns an independent copy of x.
func (x *Rat) Clone() *Rat { return new(Rat).Set(x) }

// Num returns a copy of the numerator, which carries the sign.
func (x *Rat) Num() *bigint.Int { return x.num.Clone() }

// Den returns a copy of the denominator, which is always positive.
func (x *Rat) Den() *bigint.Int { return x.den.Clone() }

// Sign returns -1, 0 or +1.
func (x *Rat) Sign() int { return x.num.Sign() }

// IsZero reports whether x == 0.
func (x *Rat) IsZero() bool { return x.num.IsZero() }

// IsInt reports whether the denominator is 1.
func (x *Rat) IsInt() bool { return x.den.IsOne() }

// String returns "num/den", or just "num" for integers.
func (x *Rat) String() string {
	if x.IsInt() {
		return x.num.String()
	}
	return x.num.String() + "/" + x.den.String()
}
