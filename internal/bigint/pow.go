package bigint

import (
	"math"
	"math/bits"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// powNat returns x^e. It first tabulates the squarings x, x^2, x^4, ... up to
// the highest power of two not above e, then multiplies the entries selected
// by the bits of e from high to low. x^0 is 1 for every x, including zero.
func powNat(x nat, e uint32) nat {
	if e == 0 {
		return nat{1}
	}
	if len(x) == 0 {
		return nil
	}
	n := bits.Len32(e)
	table := make([]nat, n)
	table[0] = x
	for i := 1; i < n; i++ {
		table[i] = sqrNat(table[i-1])
	}
	z := table[n-1]
	for i := n - 2; i >= 0; i-- {
		if e>>uint(i)&1 == 1 {
			z = mulNat(z, table[i])
		}
	}
	if n == 1 {
		z = z.clone()
	}
	return z
}

// modPowNat returns x^e mod m by left-to-right square-and-multiply.
func modPowNat(x, e, m nat) nat {
	if len(m) == 0 {
		panic(apperrors.ErrDivisionByZero)
	}
	if len(m) == 1 && m[0] == 1 {
		return nil
	}
	_, base := divRem(x, m)
	z := nat{1}
	for i := e.bitLen() - 1; i >= 0; i-- {
		_, z = divRem(sqrNat(z), m)
		if e[i/limbBits]>>(uint(i)%limbBits)&1 == 1 {
			_, z = divRem(mulNat(z, base), m)
		}
	}
	return z
}

// sqrtNat returns floor(sqrt(n)).
//
// The seed is the float64 square root of the top 64 bits of n, rounded up and
// shifted into place, so it never falls below the root. Newton steps
// x = (x + n/x) / 2 then run while they keep decreasing x, and a final hunt
// with steps shrinking by a factor of four pins the exact floor.
func sqrtNat(n nat) nat {
	switch {
	case len(n) == 0:
		return nil
	case len(n) <= 2:
		return natFromUint64(sqrtUint64(n.uint64()))
	}
	shift := n.bitLen() - 64
	shift += shift & 1
	seed := uint64(math.Sqrt(float64(n.bitsFrom(shift)))) + 2
	x := natFromUint64(seed).shl(uint(shift / 2))

	for {
		q, _ := divRem(n, x)
		y := addNat(x, q).shr(1)
		if cmpNat(y, x) >= 0 {
			break
		}
		x = y
	}
	return huntRoot(n, x, 2)
}

// cbrtNat returns floor(cbrt(n)) with Newton steps x = (2x + n/x^2) / 3
// from a seed above the root, followed by the same hunt as sqrtNat.
func cbrtNat(n nat) nat {
	switch {
	case len(n) == 0:
		return nil
	case len(n) <= 2:
		return natFromUint64(cbrtUint64(n.uint64()))
	}
	shift := n.bitLen() - 63
	shift += (3 - shift%3) % 3
	seed := uint64(math.Cbrt(float64(n.bitsFrom(shift)))) + 2
	x := natFromUint64(seed).shl(uint(shift / 3))

	for {
		q, _ := divRem(n, sqrNat(x))
		y, _ := divRemUint32(addNat(x.shl(1), q), 3)
		if cmpNat(y, x) >= 0 {
			break
		}
		x = y
	}
	return huntRoot(n, x, 3)
}

// huntRoot corrects an estimate of the degree-th integer root of n. It first
// walks down while x^degree > n, then climbs with additive steps that shrink
// by four each pass until the largest x with x^degree <= n is reached.
func huntRoot(n, x nat, degree uint32) nat {
	for len(x) > 0 && cmpNat(powNat(x, degree), n) > 0 {
		x = subNat(x, nat{1})
	}
	step := natFromUint64(1 << 16)
	for {
		for {
			next := addNat(x, step)
			if cmpNat(powNat(next, degree), n) > 0 {
				break
			}
			x = next
		}
		if len(step) == 1 && step[0] == 1 {
			return x
		}
		step = step.shr(2)
		if len(step) == 0 {
			step = nat{1}
		}
	}
}

func sqrtUint64(v uint64) uint64 {
	r := uint64(math.Sqrt(float64(v)))
	for r > 0 && !fitsSquare(r, v) {
		r--
	}
	for fitsSquare(r+1, v) {
		r++
	}
	return r
}

// fitsSquare reports whether r*r <= v without overflow.
func fitsSquare(r, v uint64) bool {
	hi, lo := bits.Mul64(r, r)
	return hi == 0 && lo <= v
}

func cbrtUint64(v uint64) uint64 {
	r := uint64(math.Cbrt(float64(v)))
	for r > 0 && !fitsCube(r, v) {
		r--
	}
	for fitsCube(r+1, v) {
		r++
	}
	return r
}

func fitsCube(r, v uint64) bool {
	hi, sq := bits.Mul64(r, r)
	if hi != 0 {
		return false
	}
	hi, cube := bits.Mul64(sq, r)
	return hi == 0 && cube <= v
}

// Pow returns x^e. Pow(0) is 1 for every x.
func (x *UBigInt) Pow(e uint32) *UBigInt {
	return new(UBigInt).setNat(powNat(x.nat(), e))
}

// PowAssign sets x to x^e and returns x.
func (x *UBigInt) PowAssign(e uint32) *UBigInt {
	return x.setNat(powNat(x.nat(), e))
}

// ModPow returns x^e mod m. It panics if m is zero.
func (x *UBigInt) ModPow(e, m *UBigInt) *UBigInt {
	return new(UBigInt).setNat(modPowNat(x.nat(), e.nat(), m.nat()))
}

// Sqrt returns floor(sqrt(x)).
func (x *UBigInt) Sqrt() *UBigInt { return new(UBigInt).setNat(sqrtNat(x.nat())) }

// SqrtAssign sets x to floor(sqrt(x)) and returns x.
func (x *UBigInt) SqrtAssign() *UBigInt { return x.setNat(sqrtNat(x.nat())) }

// Cbrt returns floor(cbrt(x)).
func (x *UBigInt) Cbrt() *UBigInt { return new(UBigInt).setNat(cbrtNat(x.nat())) }

// CbrtAssign sets x to floor(cbrt(x)) and returns x.
func (x *UBigInt) CbrtAssign() *UBigInt { return x.setNat(cbrtNat(x.nat())) }
