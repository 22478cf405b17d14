package rational

import (
	"math"
	"strconv"

	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
)

// floatFormat describes an IEEE754 binary interchange format.
type floatFormat struct {
	mantBits uint // stored fraction bits
	expBits  uint
	bias     int
}

var (
	binary32 = floatFormat{mantBits: 23, expBits: 8, bias: 127}
	binary64 = floatFormat{mantBits: 52, expBits: 11, bias: 1023}
)

func (f floatFormat) maxField() uint64 { return 1<<f.expBits - 1 }

// minLsbExp is the exponent of the least significant bit of a subnormal.
func (f floatFormat) minLsbExp() int { return 1 - f.bias - int(f.mantBits) }

// FromFloat64 returns the exact value of v. A Rat has no signed zero, so
// -0.0 maps to 0 and is the one finite input that Float64 does not return
// bit for bit.
func FromFloat64(v float64) (*Rat, error) {
	return fromBits(math.Float64bits(v), binary64)
}

// FromFloat32 returns the exact value of v. As with FromFloat64, -0.0
// becomes 0.
func FromFloat32(v float32) (*Rat, error) {
	return fromBits(uint64(math.Float32bits(v)), binary32)
}

// fromBits decodes sign, biased exponent and fraction. A subnormal is
// renormalized by shifting its fraction up to the implicit bit position while
// lowering the exponent, which makes both cases (1 + frac/2^k) * 2^e.
func fromBits(b uint64, f floatFormat) (*Rat, error) {
	neg := b>>(f.mantBits+f.expBits) != 0
	field := b >> f.mantBits & f.maxField()
	frac := b & (1<<f.mantBits - 1)

	if field == f.maxField() {
		switch {
		case frac != 0:
			return nil, apperrors.ErrNotANumber
		case neg:
			return nil, apperrors.ErrNegInfinity
		}
		return nil, apperrors.ErrInfinity
	}

	exp := int(field) - f.bias
	if field == 0 {
		if frac == 0 {
			return Zero(), nil
		}
		exp = 1 - f.bias
		for frac&(1<<f.mantBits) == 0 {
			frac <<= 1
			exp--
		}
		frac &^= 1 << f.mantBits
	}

	// value = (2^k + frac) * 2^(exp - k)
	mant := frac | 1<<f.mantBits
	e := exp - int(f.mantBits)
	return fromMantExp(mant, e, neg), nil
}

// fromMantExp returns (-1)^neg * mant * 2^e in lowest terms.
func fromMantExp(mant uint64, e int, neg bool) *Rat {
	num := bigint.IntFromUint64(mant)
	if neg {
		num.NegAssign()
	}
	if e >= 0 {
		return FromInt(num.Shl(uint(e)))
	}
	// Strip the common factors of two; what remains is an odd numerator
	// over a power of two, or an integer.
	tz := min(num.Magnitude().TrailingZeros(), -e)
	num = num.Shr(uint(tz))
	return newRaw(num, bigint.NewInt(1).Shl(uint(-e-tz)))
}

// Float64 returns the float64 nearest to x, ties to even. A value too small
// for the smallest subnormal returns a zero of the sign of x; a value beyond
// the largest finite float64 returns a NotInRangeError. A zero x always
// converts to +0.
func (x *Rat) Float64() (float64, error) {
	b, err := x.toBits(binary64)
	return math.Float64frombits(b), err
}

// Float32 is Float64 for the binary32 format.
func (x *Rat) Float32() (float32, error) {
	b, err := x.toBits(binary32)
	return math.Float32frombits(uint32(b)), err
}

// toBits locates the binary exponent e with 2^e <= |x| < 2^(e+1), takes the
// integer part of |x| scaled so its least significant bit sits at the format's
// resolution at that exponent (clamped at the subnormal floor) plus one guard
// bit, and rounds half to even using the guard bit and the remainder.
func (x *Rat) toBits(f floatFormat) (uint64, error) {
	var sign uint64
	if x.num.IsNeg() {
		sign = 1 << (f.mantBits + f.expBits)
	}
	if x.IsZero() {
		return sign, nil
	}
	num, den := x.num.Magnitude(), x.den.Magnitude()

	e := num.BitLen() - den.BitLen()
	if cmpScaled(num, den, e) < 0 {
		e--
	}
	lsb := max(e-int(f.mantBits), f.minLsbExp())

	// m2 = floor(|x| * 2^(1-lsb))
	var m2, rem *bigint.UBigInt
	if s := 1 - lsb; s >= 0 {
		m2, rem = num.Shl(uint(s)).DivRem(den)
	} else {
		m2, rem = num.DivRem(den.Shl(uint(-s)))
	}
	guard := m2.Bit(0) == 1
	m := m2.Shr(1)
	if guard && (!rem.IsZero() || m.IsOdd()) {
		m = m.AddUint32(1)
	}
	if m.BitLen() > int(f.mantBits)+1 {
		m = m.Shr(1)
		lsb++
	}

	mant, _ := m.Uint64()
	if mant == 0 {
		return sign, nil
	}
	if mant < 1<<f.mantBits {
		return sign | mant, nil
	}
	field := uint64(lsb + int(f.mantBits) + f.bias)
	if field >= f.maxField() {
		return 0, x.notInFloatRange(f)
	}
	return sign | field<<f.mantBits | mant&(1<<f.mantBits-1), nil
}

// cmpScaled compares num with den * 2^e.
func cmpScaled(num, den *bigint.UBigInt, e int) int {
	if e >= 0 {
		return num.Cmp(den.Shl(uint(e)))
	}
	return num.Shl(uint(-e)).Cmp(den)
}

func (x *Rat) notInFloatRange(f floatFormat) error {
	limit := strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)
	if f == binary32 {
		limit = strconv.FormatFloat(math.MaxFloat32, 'g', -1, 32)
	}
	return apperrors.NotInRangeError{Min: "-" + limit, Max: limit, Value: x.ApproxString(24)}
}
