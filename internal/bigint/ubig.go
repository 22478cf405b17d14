package bigint

import (
	"math"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// UBigInt is an arbitrary-precision unsigned integer stored as base-2^32
// limbs, least significant first. The limb vector is never empty and has no
// trailing zero limb; zero is the single limb [0]. The zero value is a valid
// zero.
//
// Methods without the Assign suffix return a new value and never share
// storage with their receiver or arguments. Assign methods update the
// receiver in place and return it. As with math/big, a UBigInt must not be
// shallow-copied by assignment; use Clone.
type UBigInt struct {
	limbs []uint32
}

// NewUBigInt returns x as a UBigInt.
func NewUBigInt(x uint64) *UBigInt {
	return new(UBigInt).setNat(natFromUint64(x))
}

// UBigIntFromUint32 returns x as a UBigInt.
func UBigIntFromUint32(x uint32) *UBigInt {
	return &UBigInt{limbs: []uint32{x}}
}

// UBigIntFromLimbs returns the value of the little-endian limbs. The slice is
// copied and trailing zero limbs are dropped.
func UBigIntFromLimbs(limbs []uint32) *UBigInt {
	return new(UBigInt).setNat(nat(limbs).norm().clone())
}

// UBigIntFromLimbsUnchecked wraps limbs without copying or validation. The
// caller guarantees a non-empty vector without trailing zero limbs and gives
// up ownership of it. It exists for embedded constants.
func UBigIntFromLimbsUnchecked(limbs []uint32) *UBigInt {
	return &UBigInt{limbs: limbs}
}

// nat returns the normalized limb view of x; zero is the empty vector.
func (x *UBigInt) nat() nat {
	if len(x.limbs) == 0 || len(x.limbs) == 1 && x.limbs[0] == 0 {
		return nil
	}
	return x.limbs
}

func (z *UBigInt) setNat(n nat) *UBigInt {
	n = n.norm()
	if len(n) == 0 {
		z.limbs = append(z.limbs[:0], 0)
		return z
	}
	z.limbs = n
	return z
}

// Set sets z to x and returns z.
func (z *UBigInt) Set(x *UBigInt) *UBigInt {
	if z != x {
		z.limbs = append(z.limbs[:0], x.nat()...)
		if len(z.limbs) == 0 {
			z.limbs = append(z.limbs, 0)
		}
	}
	return z
}

// SetUint64 sets z to x and returns z.
func (z *UBigInt) SetUint64(x uint64) *UBigInt {
	return z.setNat(natFromUint64(x))
}

// Clone returns an independent copy of x.
func (x *UBigInt) Clone() *UBigInt {
	return new(UBigInt).Set(x)
}

// Limbs returns a copy of the limb vector, least significant first.
func (x *UBigInt) Limbs() []uint32 {
	if n := x.nat(); len(n) > 0 {
		return n.clone()
	}
	return []uint32{0}
}

// Len returns the number of limbs. Zero has one limb.
func (x *UBigInt) Len() int {
	return max(len(x.nat()), 1)
}

// BitLen returns the length of x in bits. BitLen of zero is 0.
func (x *UBigInt) BitLen() int { return x.nat().bitLen() }

// TrailingZeros returns the number of trailing zero bits of x; 0 for zero.
func (x *UBigInt) TrailingZeros() int { return x.nat().trailingZeros() }

// Bit returns the value of bit i.
func (x *UBigInt) Bit(i int) uint {
	n := x.nat()
	if i < 0 || i/limbBits >= len(n) {
		return 0
	}
	return uint(n[i/limbBits]>>(uint(i)%limbBits)) & 1
}

func (x *UBigInt) IsZero() bool { return len(x.nat()) == 0 }
func (x *UBigInt) IsOne() bool  { n := x.nat(); return len(n) == 1 && n[0] == 1 }
func (x *UBigInt) IsOdd() bool  { n := x.nat(); return len(n) > 0 && n[0]&1 == 1 }
func (x *UBigInt) IsEven() bool { return !x.IsOdd() }

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x *UBigInt) Cmp(y *UBigInt) int { return cmpNat(x.nat(), y.nat()) }

// CmpUint64 compares x with a native value.
func (x *UBigInt) CmpUint64(y uint64) int { return cmpNat(x.nat(), natFromUint64(y)) }

// Uint64 returns x as a uint64, or a NotInRangeError if it does not fit.
func (x *UBigInt) Uint64() (uint64, error) {
	n := x.nat()
	if len(n) > 2 {
		return 0, apperrors.NewNotInRange(0, uint64(math.MaxUint64), x)
	}
	return n.uint64(), nil
}

// Uint32 returns x as a uint32, or a NotInRangeError if it does not fit.
func (x *UBigInt) Uint32() (uint32, error) {
	n := x.nat()
	if len(n) > 1 {
		return 0, apperrors.NewNotInRange(0, uint32(math.MaxUint32), x)
	}
	return uint32(n.uint64()), nil
}

// Float64 returns the float64 nearest to x, truncating below the 64 most
// significant bits, and +Inf when x overflows.
func (x *UBigInt) Float64() float64 {
	n := x.nat()
	bl := n.bitLen()
	if bl <= 64 {
		return float64(n.uint64())
	}
	return math.Ldexp(float64(n.bitsFrom(bl-64)), bl-64)
}

// Add returns x + y.
func (x *UBigInt) Add(y *UBigInt) *UBigInt {
	return new(UBigInt).setNat(addNat(x.nat(), y.nat()))
}

// AddAssign sets x to x + y and returns x.
func (x *UBigInt) AddAssign(y *UBigInt) *UBigInt {
	return x.setNat(addNatTo(x.limbs, x.nat(), y.nat()))
}

// AddUint32 returns x + y.
func (x *UBigInt) AddUint32(y uint32) *UBigInt {
	return new(UBigInt).setNat(addNat(x.nat(), natFromUint64(uint64(y))))
}

// Sub returns x - y. It panics if x < y; compare first or use AbsDiff.
func (x *UBigInt) Sub(y *UBigInt) *UBigInt {
	return new(UBigInt).setNat(subNat(x.nat(), y.nat()))
}

// SubAssign sets x to x - y and returns x. It panics if x < y.
func (x *UBigInt) SubAssign(y *UBigInt) *UBigInt {
	return x.setNat(subNatTo(x.limbs, x.nat(), y.nat()))
}

// AbsDiff returns |x - y|.
func (x *UBigInt) AbsDiff(y *UBigInt) *UBigInt {
	if x.Cmp(y) >= 0 {
		return x.Sub(y)
	}
	return y.Sub(x)
}

// Mul returns x * y.
func (x *UBigInt) Mul(y *UBigInt) *UBigInt {
	return new(UBigInt).setNat(mulNat(x.nat(), y.nat()))
}

// MulAssign sets x to x * y and returns x.
func (x *UBigInt) MulAssign(y *UBigInt) *UBigInt {
	return x.setNat(mulNat(x.nat(), y.nat()))
}

// MulUint32 returns x * y.
func (x *UBigInt) MulUint32(y uint32) *UBigInt {
	return new(UBigInt).setNat(mulAddUint32(x.nat(), y, 0))
}

// Div returns the truncated quotient x / y. It panics if y is zero.
func (x *UBigInt) Div(y *UBigInt) *UBigInt {
	q, _ := divRem(x.nat(), y.nat())
	return new(UBigInt).setNat(q)
}

// DivAssign sets x to x / y and returns x.
func (x *UBigInt) DivAssign(y *UBigInt) *UBigInt {
	q, _ := divRem(x.nat(), y.nat())
	return x.setNat(q)
}

// Rem returns x mod y. It panics if y is zero.
func (x *UBigInt) Rem(y *UBigInt) *UBigInt {
	_, r := divRem(x.nat(), y.nat())
	return new(UBigInt).setNat(r)
}

// RemAssign sets x to x mod y and returns x.
func (x *UBigInt) RemAssign(y *UBigInt) *UBigInt {
	_, r := divRem(x.nat(), y.nat())
	return x.setNat(r)
}

// DivRem returns x / y and x mod y.
func (x *UBigInt) DivRem(y *UBigInt) (*UBigInt, *UBigInt) {
	q, r := divRem(x.nat(), y.nat())
	return new(UBigInt).setNat(q), new(UBigInt).setNat(r)
}

// DivRemUint32 returns x / y and x mod y for a native divisor.
func (x *UBigInt) DivRemUint32(y uint32) (*UBigInt, uint32) {
	q, r := divRemUint32(x.nat(), y)
	return new(UBigInt).setNat(q), r
}

// ShlLimbs returns x shifted left by n whole limbs, i.e. x * 2^(32n).
func (x *UBigInt) ShlLimbs(n uint) *UBigInt {
	return x.Shl(n * limbBits)
}

// ShrLimbs returns x shifted right by n whole limbs.
func (x *UBigInt) ShrLimbs(n uint) *UBigInt {
	return x.Shr(n * limbBits)
}

// Shl returns x << s.
func (x *UBigInt) Shl(s uint) *UBigInt { return new(UBigInt).setNat(x.nat().shl(s)) }

// Shr returns x >> s.
func (x *UBigInt) Shr(s uint) *UBigInt { return new(UBigInt).setNat(x.nat().shr(s)) }

// ShlAssign sets x to x << s and returns x.
func (x *UBigInt) ShlAssign(s uint) *UBigInt { return x.setNat(x.nat().shl(s)) }

// ShrAssign sets x to x >> s and returns x.
func (x *UBigInt) ShrAssign(s uint) *UBigInt { return x.setNat(x.nat().shr(s)) }
