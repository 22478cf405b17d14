package rational

import (
	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Add returns x + y.
func (x *Rat) Add(y *Rat) *Rat { return x.Clone().AddAssign(y) }

// AddAssign sets x to x + y and returns x. a/b + c/d = (ad + cb) / bd.
func (x *Rat) AddAssign(y *Rat) *Rat {
	if x.den.Cmp(&y.den) == 0 {
		x.num.AddAssign(&y.num)
		return x.normalize()
	}
	n := x.num.Mul(&y.den)
	n.AddAssign(y.num.Mul(&x.den))
	x.den.MulAssign(&y.den)
	x.num.Set(n)
	return x.normalize()
}

// Sub returns x - y.
func (x *Rat) Sub(y *Rat) *Rat { return x.Clone().SubAssign(y) }

// SubAssign sets x to x - y and returns x.
func (x *Rat) SubAssign(y *Rat) *Rat {
	if x.den.Cmp(&y.den) == 0 {
		x.num.SubAssign(&y.num)
		return x.normalize()
	}
	n := x.num.Mul(&y.den)
	n.SubAssign(y.num.Mul(&x.den))
	x.den.MulAssign(&y.den)
	x.num.Set(n)
	return x.normalize()
}

// Mul returns x * y.
func (x *Rat) Mul(y *Rat) *Rat { return x.Clone().MulAssign(y) }

// MulAssign sets x to x * y and returns x.
func (x *Rat) MulAssign(y *Rat) *Rat {
	x.num.MulAssign(&y.num)
	x.den.MulAssign(&y.den)
	return x.normalize()
}

// Quo returns x / y. It panics if y is zero.
func (x *Rat) Quo(y *Rat) *Rat { return x.Clone().QuoAssign(y) }

// QuoAssign sets x to x / y and returns x. It panics if y is zero.
func (x *Rat) QuoAssign(y *Rat) *Rat {
	if y.IsZero() {
		panic(apperrors.ErrDivisionByZero)
	}
	n := x.num.Mul(&y.den)
	x.den.MulAssign(&y.num)
	x.num.Set(n)
	return x.normalize()
}

// MulInt returns x * y.
func (x *Rat) MulInt(y *bigint.Int) *Rat {
	z := x.Clone()
	z.num.MulAssign(y)
	return z.normalize()
}

// QuoInt returns x / y. It panics if y is zero.
func (x *Rat) QuoInt(y *bigint.Int) *Rat {
	if y.IsZero() {
		panic(apperrors.ErrDivisionByZero)
	}
	z := x.Clone()
	z.den.MulAssign(y)
	return z.normalize()
}

// MulInt64 returns x * y.
func (x *Rat) MulInt64(y int64) *Rat { return x.MulInt(bigint.NewInt(y)) }

// QuoInt64 returns x / y. It panics if y is zero.
func (x *Rat) QuoInt64(y int64) *Rat { return x.QuoInt(bigint.NewInt(y)) }

// Neg returns -x.
func (x *Rat) Neg() *Rat { return x.Clone().NegAssign() }

// NegAssign sets x to -x and returns x.
func (x *Rat) NegAssign() *Rat {
	x.num.NegAssign()
	return x
}

// Abs returns |x|.
func (x *Rat) Abs() *Rat {
	z := x.Clone()
	if z.num.IsNeg() {
		z.num.NegAssign()
	}
	return z
}

// Inv returns 1/x. It panics if x is zero.
func (x *Rat) Inv() *Rat { return x.Clone().InvAssign() }

// InvAssign sets x to 1/x and returns x. It panics if x is zero.
func (x *Rat) InvAssign() *Rat {
	if x.IsZero() {
		panic(apperrors.ErrZeroReciprocal)
	}
	// Swapping coprime parts keeps them coprime; only the sign moves.
	num, den := x.den.Clone(), x.num.Clone()
	if den.IsNeg() {
		den.NegAssign()
		num.NegAssign()
	}
	x.num.Set(num)
	x.den.Set(den)
	return x
}

// Pow returns x^e. A negative exponent inverts first and 0^0 is 1. It panics
// for zero raised to a negative power.
func (x *Rat) Pow(e int32) *Rat {
	base := x
	if e < 0 {
		base = x.Inv()
	}
	n := uint32(e)
	if e < 0 {
		n = uint32(-int64(e))
	}
	// a^n and b^n are coprime whenever a and b are.
	return newRaw(base.num.Pow(n), base.den.Pow(n))
}

// PowAssign sets x to x^e and returns x.
func (x *Rat) PowAssign(e int32) *Rat { return x.Set(x.Pow(e)) }

// Trunc returns x rounded toward zero.
func (x *Rat) Trunc() *bigint.Int { return x.num.Quo(&x.den) }

// Floor returns the greatest integer not above x.
func (x *Rat) Floor() *bigint.Int {
	q, r := x.num.QuoRem(&x.den)
	if r.IsNeg() {
		q.SubAssign(bigint.NewInt(1))
	}
	return q
}

// Ceil returns the least integer not below x.
func (x *Rat) Ceil() *bigint.Int {
	q, r := x.num.QuoRem(&x.den)
	if r.Sign() > 0 {
		q.AddAssign(bigint.NewInt(1))
	}
	return q
}

// Frac returns x - Trunc(x), which has the sign of x.
func (x *Rat) Frac() *Rat {
	r := x.num.Rem(&x.den)
	if r.IsZero() {
		return Zero()
	}
	// gcd(num mod den, den) = gcd(num, den) = 1.
	return newRaw(r, &x.den)
}
