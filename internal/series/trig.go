package series

import (
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/rational"
)

// reduceTurn returns x mod 2π in [0, 2π) for the given approximation of π.
func reduceTurn(x, pi *rational.Rat) *rational.Rat {
	twoPi := pi.MulInt64(2)
	if x.Sign() >= 0 && x.Less(twoPi) {
		return x.Clone()
	}
	turns := rational.FromInt(x.Quo(twoPi).Floor())
	return x.Sub(turns.MulAssign(twoPi))
}

// Sin approximates sin(x) with k Taylor terms after folding x into [0, π/4]
// using Pi(k).
func Sin(x *rational.Rat, k uint) *rational.Rat {
	pi := Pi(k)
	return sinReduced(reduceTurn(x, pi), pi, k)
}

func sinReduced(r, pi *rational.Rat, k uint) *rational.Rat {
	neg := false
	if r.GreaterEq(pi) {
		r, neg = r.Sub(pi), true
	}
	halfPi := pi.QuoInt64(2)
	if r.Greater(halfPi) {
		r = pi.Sub(r)
	}
	var v *rational.Rat
	if r.Greater(pi.QuoInt64(4)) {
		v = cosTaylor(halfPi.Sub(r), k)
	} else {
		v = sinTaylor(r, k)
	}
	if neg {
		v.NegAssign()
	}
	return v
}

// Cos approximates cos(x) the same way as Sin.
func Cos(x *rational.Rat, k uint) *rational.Rat {
	pi := Pi(k)
	return cosReduced(reduceTurn(x, pi), pi, k)
}

func cosReduced(r, pi *rational.Rat, k uint) *rational.Rat {
	if r.Greater(pi) {
		r = pi.MulInt64(2).SubAssign(r)
	}
	neg := false
	halfPi := pi.QuoInt64(2)
	if r.Greater(halfPi) {
		r, neg = pi.Sub(r), true
	}
	var v *rational.Rat
	if r.Greater(pi.QuoInt64(4)) {
		v = sinTaylor(halfPi.Sub(r), k)
	} else {
		v = cosTaylor(r, k)
	}
	if neg {
		v.NegAssign()
	}
	return v
}

// Tan approximates tan(x) as Sin/Cos. It fails when the cosine
// approximation is exactly zero.
func Tan(x *rational.Rat, k uint) (*rational.Rat, error) {
	pi := Pi(k)
	r := reduceTurn(x, pi)
	c := cosReduced(r, pi, k)
	if c.IsZero() {
		return nil, apperrors.NewNotInRange("-Inf", "+Inf", "tan("+x.String()+")")
	}
	return sinReduced(r, pi, k).QuoAssign(c), nil
}

// sinTaylor sums (-1)^j r^(2j+1)/(2j+1)! for j = 0..k.
func sinTaylor(r *rational.Rat, k uint) *rational.Rat {
	sum := r.Clone()
	if r.IsZero() {
		return sum
	}
	sq := r.Mul(r).NegAssign()
	term := r.Clone()
	for j := int64(1); j <= int64(k); j++ {
		term = term.MulAssign(sq).QuoInt64((2 * j) * (2*j + 1))
		sum.AddAssign(term)
	}
	return sum
}

// cosTaylor sums (-1)^j r^(2j)/(2j)! for j = 0..k.
func cosTaylor(r *rational.Rat, k uint) *rational.Rat {
	sum := rational.One()
	if r.IsZero() {
		return sum
	}
	sq := r.Mul(r).NegAssign()
	term := rational.One()
	for j := int64(1); j <= int64(k); j++ {
		term = term.MulAssign(sq).QuoInt64((2*j - 1) * (2 * j))
		sum.AddAssign(term)
	}
	return sum
}

// Atan approximates the arctangent of x. Arguments above one use
// π/2 - atan(1/x) and arguments above one half use π/4 + atan((x-1)/(x+1)),
// so the Taylor series only sees |x| <= 1/2.
func Atan(x *rational.Rat, k uint) *rational.Rat {
	return atan(x, Pi(k), k)
}

func atan(x, pi *rational.Rat, k uint) *rational.Rat {
	if x.Sign() < 0 {
		return atan(x.Neg(), pi, k).NegAssign()
	}
	one := rational.One()
	switch {
	case x.Greater(one):
		return pi.QuoInt64(2).SubAssign(atan(x.Inv(), pi, k))
	case x.Greater(rational.NewRat(1, 2)):
		u := x.Sub(one).QuoAssign(x.Add(one))
		return pi.QuoInt64(4).AddAssign(atanTaylor(u, k))
	}
	return atanTaylor(x, k)
}

// atanTaylor sums (-1)^j x^(2j+1)/(2j+1) for j = 0..k.
func atanTaylor(x *rational.Rat, k uint) *rational.Rat {
	sum := x.Clone()
	if x.IsZero() {
		return sum
	}
	sq := x.Mul(x).NegAssign()
	pow := x.Clone()
	for j := int64(1); j <= int64(k); j++ {
		pow.MulAssign(sq)
		sum.AddAssign(pow.QuoInt64(2*j + 1))
	}
	return sum
}

// Asin approximates the arcsine of x in [-1, 1] as atan(x/sqrt(1-x²)).
func Asin(x *rational.Rat, k uint) (*rational.Rat, error) {
	return asin(x, Pi(k), k)
}

func asin(x, pi *rational.Rat, k uint) (*rational.Rat, error) {
	switch x.Abs().CmpInt64(1) {
	case 1:
		return nil, apperrors.NewNotInRange(-1, 1, x)
	case 0:
		v := pi.QuoInt64(2)
		if x.Sign() < 0 {
			v.NegAssign()
		}
		return v, nil
	}
	root, err := Sqrt(rational.One().SubAssign(x.Mul(x)), k)
	if err != nil {
		return nil, err
	}
	return atan(x.Quo(root), pi, k), nil
}

// Acos approximates the arccosine of x in [-1, 1] as π/2 - asin(x).
func Acos(x *rational.Rat, k uint) (*rational.Rat, error) {
	pi := Pi(k)
	v, err := asin(x, pi, k)
	if err != nil {
		return nil, err
	}
	return pi.QuoInt64(2).SubAssign(v), nil
}

// Atan2 approximates the angle of the point (x, y) in (-π, π]. Atan2(0, 0)
// is zero.
func Atan2(y, x *rational.Rat, k uint) *rational.Rat {
	pi := Pi(k)
	switch x.Sign() {
	case 1:
		return atan(y.Quo(x), pi, k)
	case -1:
		v := atan(y.Quo(x), pi, k)
		if y.Sign() < 0 {
			return v.SubAssign(pi)
		}
		return v.AddAssign(pi)
	}
	switch y.Sign() {
	case 1:
		return pi.QuoInt64(2)
	case -1:
		return pi.QuoInt64(-2)
	}
	return rational.Zero()
}
