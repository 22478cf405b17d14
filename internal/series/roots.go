package series

import (
	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/rational"
)

// Sqrt approximates the square root of x >= 0 as
// isqrt(num << 2(1+k)) / isqrt(den << 2(1+k)).
func Sqrt(x *rational.Rat, k uint) (*rational.Rat, error) {
	if x.Sign() < 0 {
		return nil, apperrors.NewNotInRange(0, "+Inf", x)
	}
	s := 2 * (1 + k)
	num := x.Num().Magnitude().ShlAssign(s).SqrtAssign()
	den := x.Den().Magnitude().ShlAssign(s).SqrtAssign()
	return rational.FromFrac(bigint.IntFromUBigInt(num, false), bigint.IntFromUBigInt(den, false)), nil
}

// Cbrt approximates the cube root of x as
// icbrt(|num| << 3(1+k)) / icbrt(den << 3(1+k)), carrying the sign of x.
func Cbrt(x *rational.Rat, k uint) *rational.Rat {
	s := 3 * (1 + k)
	num := x.Num().Magnitude().ShlAssign(s).CbrtAssign()
	den := x.Den().Magnitude().ShlAssign(s).CbrtAssign()
	return rational.FromFrac(bigint.IntFromUBigInt(num, x.Sign() < 0), bigint.IntFromUBigInt(den, false))
}
