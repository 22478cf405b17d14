package rational

import "github.com/agbru/numcalc/internal/bigint"

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x *Rat) Cmp(y *Rat) int {
	if x.den.Cmp(&y.den) == 0 {
		return x.num.Cmp(&y.num)
	}
	return x.num.Mul(&y.den).Cmp(y.num.Mul(&x.den))
}

// CmpInt compares x with an integer.
func (x *Rat) CmpInt(y *bigint.Int) int {
	return x.num.Cmp(y.Mul(&x.den))
}

// CmpInt64 compares x with a native integer.
func (x *Rat) CmpInt64(y int64) int { return x.CmpInt(bigint.NewInt(y)) }

// Equal reports whether x == y. Reduced form makes this a field comparison.
func (x *Rat) Equal(y *Rat) bool {
	return x.num.Cmp(&y.num) == 0 && x.den.Cmp(&y.den) == 0
}

func (x *Rat) Less(y *Rat) bool      { return x.Cmp(y) < 0 }
func (x *Rat) LessEq(y *Rat) bool    { return x.Cmp(y) <= 0 }
func (x *Rat) Greater(y *Rat) bool   { return x.Cmp(y) > 0 }
func (x *Rat) GreaterEq(y *Rat) bool { return x.Cmp(y) >= 0 }

// Min returns the smaller of x and y.
func Min(x, y *Rat) *Rat {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y *Rat) *Rat {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}
