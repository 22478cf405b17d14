package bigint

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Int is an arbitrary-precision signed integer: a UBigInt magnitude and a
// sign flag. Zero is never negative. The zero value is a valid zero, and the
// value/Assign conventions of UBigInt apply.
type Int struct {
	mag UBigInt
	neg bool
}

// NewInt returns x as an Int.
func NewInt(x int64) *Int {
	if x < 0 {
		// Two's complement negation is exact for MinInt64 as a uint64.
		return &Int{mag: UBigInt{limbs: magLimbs(uint64(-x))}, neg: true}
	}
	return &Int{mag: UBigInt{limbs: magLimbs(uint64(x))}}
}

func magLimbs(v uint64) []uint32 {
	if n := natFromUint64(v); len(n) > 0 {
		return n
	}
	return []uint32{0}
}

// IntFromUint64 returns x as an Int.
func IntFromUint64(x uint64) *Int {
	return &Int{mag: UBigInt{limbs: magLimbs(x)}}
}

// IntFromUBigInt returns an Int with magnitude mag (copied) and the given
// sign. A zero magnitude is never negative.
func IntFromUBigInt(mag *UBigInt, neg bool) *Int {
	z := &Int{neg: neg}
	z.mag.Set(mag)
	return z.fix()
}

// fix clears the sign of zero.
func (z *Int) fix() *Int {
	if z.mag.IsZero() {
		z.neg = false
	}
	return z
}

func intFromNat(n nat, neg bool) *Int {
	z := &Int{neg: neg}
	z.mag.setNat(n)
	return z.fix()
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	z.mag.Set(&x.mag)
	z.neg = x.neg
	return z
}

// Clone returns an independent copy of x.
func (x *Int) Clone() *Int { return new(Int).Set(x) }

// Sign returns -1, 0 or +1.
func (x *Int) Sign() int {
	switch {
	case x.mag.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

func (x *Int) IsZero() bool { return x.mag.IsZero() }
func (x *Int) IsNeg() bool  { return x.neg }
func (x *Int) IsOne() bool  { return !x.neg && x.mag.IsOne() }

// Magnitude returns a copy of |x| as a UBigInt.
func (x *Int) Magnitude() *UBigInt { return x.mag.Clone() }

// Abs returns |x|.
func (x *Int) Abs() *Int { return intFromNat(x.mag.nat().clone(), false) }

// Neg returns -x.
func (x *Int) Neg() *Int { return intFromNat(x.mag.nat().clone(), !x.neg) }

// NegAssign sets x to -x and returns x.
func (x *Int) NegAssign() *Int {
	x.neg = !x.neg
	return x.fix()
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int { return x.mag.Cmp(&y.mag) }

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg != y.neg:
		if x.neg {
			return -1
		}
		return 1
	case x.neg:
		return -x.CmpAbs(y)
	}
	return x.CmpAbs(y)
}

// CmpInt64 compares x with a native value.
func (x *Int) CmpInt64(y int64) int { return x.Cmp(NewInt(y)) }

// addSigned returns (-1)^xneg*x + (-1)^yneg*y. Equal signs add magnitudes;
// different signs subtract the smaller magnitude from the larger and take
// the sign of the larger.
func addSigned(x nat, xneg bool, y nat, yneg bool) (nat, bool) {
	if xneg == yneg {
		return addNat(x, y), xneg
	}
	if cmpNat(x, y) >= 0 {
		return subNat(x, y), xneg
	}
	return subNat(y, x), yneg
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	return intFromNat(addSigned(x.mag.nat(), x.neg, y.mag.nat(), y.neg))
}

// AddAssign sets x to x + y and returns x.
func (x *Int) AddAssign(y *Int) *Int {
	n, neg := addSigned(x.mag.nat(), x.neg, y.mag.nat(), y.neg)
	x.mag.setNat(n)
	x.neg = neg
	return x.fix()
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	return intFromNat(addSigned(x.mag.nat(), x.neg, y.mag.nat(), !y.neg))
}

// SubAssign sets x to x - y and returns x.
func (x *Int) SubAssign(y *Int) *Int {
	n, neg := addSigned(x.mag.nat(), x.neg, y.mag.nat(), !y.neg)
	x.mag.setNat(n)
	x.neg = neg
	return x.fix()
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return intFromNat(mulNat(x.mag.nat(), y.mag.nat()), x.neg != y.neg)
}

// MulAssign sets x to x * y and returns x.
func (x *Int) MulAssign(y *Int) *Int {
	x.mag.setNat(mulNat(x.mag.nat(), y.mag.nat()))
	x.neg = x.neg != y.neg
	return x.fix()
}

// QuoRem returns the quotient truncated toward zero and the remainder, which
// has the sign of x. It panics if y is zero.
func (x *Int) QuoRem(y *Int) (*Int, *Int) {
	q, r := divRem(x.mag.nat(), y.mag.nat())
	return intFromNat(q, x.neg != y.neg), intFromNat(r, x.neg)
}

// Quo returns x / y truncated toward zero.
func (x *Int) Quo(y *Int) *Int {
	q, _ := x.QuoRem(y)
	return q
}

// QuoAssign sets x to x / y truncated toward zero and returns x.
func (x *Int) QuoAssign(y *Int) *Int {
	q, _ := divRem(x.mag.nat(), y.mag.nat())
	x.mag.setNat(q)
	x.neg = x.neg != y.neg
	return x.fix()
}

// Rem returns the remainder of x / y, with the sign of x.
func (x *Int) Rem(y *Int) *Int {
	_, r := x.QuoRem(y)
	return r
}

// RemAssign sets x to the remainder of x / y and returns x.
func (x *Int) RemAssign(y *Int) *Int {
	_, r := divRem(x.mag.nat(), y.mag.nat())
	x.mag.setNat(r)
	return x.fix()
}

// Pow returns x^e. The result is negative only for a negative base and an
// odd exponent.
func (x *Int) Pow(e uint32) *Int {
	return intFromNat(powNat(x.mag.nat(), e), x.neg && e&1 == 1)
}

// PowAssign sets x to x^e and returns x.
func (x *Int) PowAssign(e uint32) *Int {
	x.mag.setNat(powNat(x.mag.nat(), e))
	x.neg = x.neg && e&1 == 1
	return x.fix()
}

// GcdInt returns gcd(|x|, |y|) as a non-negative Int. It panics if both are zero.
func GcdInt(x, y *Int) *Int {
	return intFromNat(gcdNat(x.mag.nat(), y.mag.nat()), false)
}

// Int64 returns x as an int64, or a NotInRangeError if it does not fit.
func (x *Int) Int64() (int64, error) {
	m := x.mag.nat()
	if len(m) <= 2 {
		v := m.uint64()
		switch {
		case !x.neg && v <= math.MaxInt64:
			return int64(v), nil
		case x.neg && v <= 1<<63:
			return int64(-v), nil
		}
	}
	return 0, apperrors.NewNotInRange(int64(math.MinInt64), int64(math.MaxInt64), x)
}

// Int32 returns x as an int32, or a NotInRangeError if it does not fit.
func (x *Int) Int32() (int32, error) {
	v, err := x.Int64()
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, apperrors.NewNotInRange(math.MinInt32, math.MaxInt32, x)
	}
	return int32(v), nil
}

// Int returns x as an int, or a NotInRangeError if it does not fit.
func (x *Int) Int() (int, error) {
	v, err := x.Int64()
	if err != nil || v < math.MinInt || v > math.MaxInt {
		return 0, apperrors.NewNotInRange(math.MinInt, math.MaxInt, x)
	}
	return int(v), nil
}

// Uint64 returns x as a uint64, or a NotInRangeError if x is negative or too large.
func (x *Int) Uint64() (uint64, error) {
	if x.neg {
		return 0, apperrors.NewNotInRange(0, uint64(math.MaxUint64), x)
	}
	return x.mag.Uint64()
}

// Uint32 returns x as a uint32, or a NotInRangeError if it does not fit.
func (x *Int) Uint32() (uint32, error) {
	if x.neg {
		return 0, apperrors.NewNotInRange(0, uint32(math.MaxUint32), x)
	}
	return x.mag.Uint32()
}

// Float64 returns an approximation of x; see UBigInt.Float64.
func (x *Int) Float64() float64 {
	f := x.mag.Float64()
	if x.neg {
		return -f
	}
	return f
}

// String returns the decimal representation of x.
func (x *Int) String() string { return x.Text(10) }

// Text returns x in base 2, 8, 10 or 16 without a prefix.
func (x *Int) Text(base int) string {
	if x.neg {
		return "-" + x.mag.Text(base)
	}
	return x.mag.Text(base)
}

// TextWithPrefix returns x in the given base with the base prefix after the
// sign, e.g. -0x1000.
func (x *Int) TextWithPrefix(base int) string {
	if x.neg {
		return "-" + x.mag.TextWithPrefix(base)
	}
	return x.mag.TextWithPrefix(base)
}

// Format implements fmt.Formatter with the same verbs and flags as UBigInt.
func (x *Int) Format(s fmt.State, ch rune) {
	formatNumber(s, ch, x.neg, x.mag.nat())
}

// ParseInt parses an optional '-' followed by an unsigned literal as
// accepted by ParseUBigInt.
func ParseInt(s string) (*Int, error) {
	neg := strings.HasPrefix(s, "-")
	offset := 0
	if neg {
		s, offset = s[1:], 1
		if s == "" {
			return nil, apperrors.ErrUnexpectedEnd
		}
	}
	n, err := parseNat(s, offset)
	if err != nil {
		return nil, err
	}
	return intFromNat(n, neg), nil
}

// BitLen returns the bit length of |x|.
func (x *Int) BitLen() int { return x.mag.BitLen() }

// Shl returns x * 2^s.
func (x *Int) Shl(s uint) *Int { return intFromNat(x.mag.nat().shl(s), x.neg) }

// Shr returns x / 2^s truncated toward zero.
func (x *Int) Shr(s uint) *Int { return intFromNat(x.mag.nat().shr(s), x.neg) }

// MulUint32 returns x * y.
func (x *Int) MulUint32(y uint32) *Int {
	return intFromNat(mulAddUint32(x.mag.nat(), y, 0), x.neg)
}
