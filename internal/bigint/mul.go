package bigint

import (
	"math/bits"
	"sync/atomic"
)

// DefaultKaratsubaThreshold is the operand size, in limbs, at which
// multiplication switches from the schoolbook method to Karatsuba. Both
// operands must reach it. The calibration package measures a machine-specific
// value.
const DefaultKaratsubaThreshold = 48

// MinKaratsubaThreshold keeps every split non-trivial.
const MinKaratsubaThreshold = 4

var karatsubaThreshold atomic.Int64

func init() {
	karatsubaThreshold.Store(DefaultKaratsubaThreshold)
}

// KaratsubaThreshold returns the current schoolbook/Karatsuba crossover in limbs.
func KaratsubaThreshold() int {
	return int(karatsubaThreshold.Load())
}

// SetKaratsubaThreshold sets the crossover used by every subsequent
// multiplication and returns the previous value. Values below the minimum
// are clamped; a non-positive value restores DefaultKaratsubaThreshold.
func SetKaratsubaThreshold(n int) int {
	switch {
	case n <= 0:
		n = DefaultKaratsubaThreshold
	case n < MinKaratsubaThreshold:
		n = MinKaratsubaThreshold
	}
	return int(karatsubaThreshold.Swap(int64(n)))
}

// mulNat returns x*y in a fresh vector, choosing the algorithm by operand size.
func mulNat(x, y nat) nat {
	return mulWithThreshold(x, y, KaratsubaThreshold())
}

// MulWithThreshold returns x*y using the given crossover instead of the
// global one. Calibration uses it to compare candidates side by side.
func MulWithThreshold(x, y *UBigInt, threshold int) *UBigInt {
	return new(UBigInt).setNat(mulWithThreshold(x.nat(), y.nat(), max(threshold, MinKaratsubaThreshold)))
}

func mulWithThreshold(x, y nat, threshold int) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	if len(x) < threshold || len(y) < threshold {
		return mulSchoolbook(x, y)
	}
	return mulKaratsuba(x, y, threshold)
}

// mulSchoolbook is the quadratic product with 64-bit intermediates.
func mulSchoolbook(x, y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(nat, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var c uint32
		for j, yj := range y {
			hi, lo := bits.Mul32(xi, yj)
			var cc uint32
			lo, cc = bits.Add32(lo, z[i+j], 0)
			hi += cc
			lo, cc = bits.Add32(lo, c, 0)
			hi += cc
			z[i+j] = lo
			c = hi
		}
		z[i+len(y)] = c
	}
	return z.norm()
}

// mulKaratsuba splits both operands at half the shorter length m:
//
//	x = x1*B^m + x0, y = y1*B^m + y0
//	x*y = z2*B^2m + (z1 - z2 - z0)*B^m + z0
//
// with z2 = x1*y1, z0 = x0*y0 and z1 = (x0+x1)*(y0+y1).
func mulKaratsuba(x, y nat, threshold int) nat {
	if len(x) < threshold || len(y) < threshold {
		return mulSchoolbook(x, y)
	}
	m := min(len(x), len(y)) / 2
	x0, x1 := x[:m].norm(), x[m:]
	y0, y1 := y[:m].norm(), y[m:]

	z0 := mulKaratsuba(x0, y0, threshold)
	z2 := mulKaratsuba(x1, y1, threshold)
	z1 := mulKaratsuba(addNat(x0, x1), addNat(y0, y1), threshold)
	z1 = subNatTo(z1, z1, z0)
	z1 = subNatTo(z1, z1, z2)

	z := make(nat, len(x)+len(y)+1)
	copy(z, z0)
	addAt(z, z1, m)
	addAt(z, z2, 2*m)
	return z.norm()
}

// sqrNat returns x*x.
func sqrNat(x nat) nat {
	return mulNat(x, x)
}
