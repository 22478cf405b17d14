package series

import (
	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/rational"
)

// Exp approximates e^x. The fractional part f = x - floor(x) goes through
// k+1 Taylor terms and the integer part n scales the result by E(k)^n. It
// fails when n does not fit in an int32.
func Exp(x *rational.Rat, k uint) (*rational.Rat, error) {
	n, err := x.Floor().Int32()
	if err != nil {
		return nil, err
	}
	f := x.Sub(rational.FromInt64(int64(n)))
	sum := expTaylor(f, k)
	if n != 0 {
		sum.MulAssign(E(k).Pow(n))
	}
	return sum, nil
}

// expTaylor sums f^j/j! for j = 0..k.
func expTaylor(f *rational.Rat, k uint) *rational.Rat {
	sum := rational.One()
	if f.IsZero() {
		return sum
	}
	term := rational.One()
	for j := int64(1); j <= int64(k); j++ {
		term = term.MulAssign(f).QuoInt64(j)
		sum.AddAssign(term)
	}
	return sum
}

// Ln approximates the natural logarithm of x > 0. x is scaled by a power of
// two 2^p so that the residual y lies in [1/sqrt2, sqrt2]; ln(y) comes from
// k terms of the Mercator series in y-1 and p*Ln2(k) is added back.
func Ln(x *rational.Rat, k uint) (*rational.Rat, error) {
	if x.Sign() <= 0 {
		return nil, apperrors.NewNotInRange("0 (exclusive)", "+Inf", x)
	}
	p := x.Num().BitLen() - x.Den().BitLen()
	y := scalePow2(x, -p)
	two, half := rational.FromInt64(2), rational.NewRat(1, 2)
	switch sq := y.Mul(y); {
	case sq.Greater(two):
		y, p = scalePow2(y, -1), p+1
	case sq.Less(half):
		y, p = scalePow2(y, 1), p-1
	}
	sum := mercator(y.SubAssign(rational.One()), k)
	if p != 0 {
		sum.AddAssign(Ln2(k).MulInt64(int64(p)))
	}
	return sum, nil
}

// mercator sums (-1)^(i+1) u^i / i for i = 1..k.
func mercator(u *rational.Rat, k uint) *rational.Rat {
	sum := rational.Zero()
	if u.IsZero() {
		return sum
	}
	pow := rational.One()
	for i := int64(1); i <= int64(k); i++ {
		pow.MulAssign(u)
		term := pow.QuoInt64(i)
		if i%2 == 0 {
			sum.SubAssign(term)
		} else {
			sum.AddAssign(term)
		}
	}
	return sum
}

// scalePow2 returns x * 2^e.
func scalePow2(x *rational.Rat, e int) *rational.Rat {
	switch {
	case e > 0:
		return x.MulInt(bigint.NewInt(1).Shl(uint(e)))
	case e < 0:
		return x.QuoInt(bigint.NewInt(1).Shl(uint(-e)))
	}
	return x.Clone()
}

// Log approximates the logarithm of x in the given base as Ln(x)/Ln(base).
// base must be positive and different from one.
func Log(x, base *rational.Rat, k uint) (*rational.Rat, error) {
	if base.Sign() <= 0 || base.CmpInt64(1) == 0 {
		return nil, apperrors.NewNotInRange("0 (exclusive)", "+Inf excluding 1", base)
	}
	lb, err := Ln(base, k)
	if err != nil {
		return nil, err
	}
	if lb.IsZero() {
		return nil, apperrors.NewNotInRange("0 (exclusive)", "+Inf excluding 1", base)
	}
	lx, err := Ln(x, k)
	if err != nil {
		return nil, err
	}
	return lx.QuoAssign(lb), nil
}

// Pow approximates x^y. Integer exponents that fit in an int32 are computed
// exactly; otherwise x must be positive and the result is Exp(y*Ln(x)).
func Pow(x, y *rational.Rat, k uint) (*rational.Rat, error) {
	if y.IsInt() {
		if e, err := y.Num().Int32(); err == nil {
			if x.IsZero() && e < 0 {
				return nil, apperrors.NewNotInRange("0 (exclusive)", "+Inf", x)
			}
			return x.Pow(e), nil
		}
	}
	if x.IsZero() && y.Sign() > 0 {
		return rational.Zero(), nil
	}
	lx, err := Ln(x, k)
	if err != nil {
		return nil, err
	}
	return Exp(lx.MulAssign(y), k)
}
