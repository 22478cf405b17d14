// This file holds the limb-vector kernels shared by UBigInt and Int.

package bigint

import (
	"math/bits"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// nat is a little-endian vector of base-2^32 limbs. A normalized nat has no
// trailing zero limb; the empty nat is zero. UBigInt stores zero as [0] and
// converts at the boundary.
type nat []uint32

const (
	limbBits = 32
	limbBase = 1 << limbBits
)

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

func (x nat) clone() nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

func natFromUint64(v uint64) nat {
	switch {
	case v == 0:
		return nil
	case v>>32 == 0:
		return nat{uint32(v)}
	}
	return nat{uint32(v), uint32(v >> 32)}
}

// uint64 returns the low 64 bits of x.
func (x nat) uint64() uint64 {
	var v uint64
	if len(x) > 1 {
		v = uint64(x[1]) << 32
	}
	if len(x) > 0 {
		v |= uint64(x[0])
	}
	return v
}

func (x nat) bitLen() int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*limbBits + bits.Len32(x[len(x)-1])
}

func (x nat) trailingZeros() int {
	for i, l := range x {
		if l != 0 {
			return i*limbBits + bits.TrailingZeros32(l)
		}
	}
	return 0
}

// bitsFrom returns the low 64 bits of x >> s.
func (x nat) bitsFrom(s int) uint64 {
	li, sh := s/limbBits, uint(s%limbBits)
	limb := func(i int) uint64 {
		if i < len(x) {
			return uint64(x[i])
		}
		return 0
	}
	v := (limb(li+1)<<32 | limb(li)) >> sh
	if sh > 0 {
		v |= limb(li+2) << (64 - sh)
	}
	return v
}

func cmpNat(x, y nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addNat returns x + y in a fresh vector.
func addNat(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x)+1)
	var c uint32
	for i := range y {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	for i := len(y); i < len(x); i++ {
		z[i], c = bits.Add32(x[i], 0, c)
	}
	z[len(x)] = c
	return z.norm()
}

// addNatTo stores x + y into z, reusing z's storage when large enough. z may
// alias x or y.
func addNatTo(z, x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	n := len(x) + 1
	if cap(z) < n {
		return addNat(x, y)
	}
	z = z[:n]
	var c uint32
	for i := range y {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	for i := len(y); i < len(x); i++ {
		z[i], c = bits.Add32(x[i], 0, c)
	}
	z[len(x)] = c
	return z.norm()
}

// subNat returns x - y in a fresh vector. It panics if x < y.
func subNat(x, y nat) nat {
	return subNatTo(nil, x, y)
}

// subNatTo stores x - y into z, reusing z's storage when large enough. z may
// alias x or y. It panics if x < y.
func subNatTo(z, x, y nat) nat {
	if len(x) < len(y) {
		panic(apperrors.ErrSubUnderflow)
	}
	if cap(z) < len(x) {
		z = make(nat, len(x))
	}
	z = z[:len(x)]
	var b uint32
	for i := range y {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	for i := len(y); i < len(x); i++ {
		z[i], b = bits.Sub32(x[i], 0, b)
	}
	if b != 0 {
		panic(apperrors.ErrSubUnderflow)
	}
	return z.norm()
}

// addAt adds x << (32*i) into z in place. z must be long enough to hold the sum.
func addAt(z, x nat, i int) {
	var c uint32
	for j, xj := range x {
		z[i+j], c = bits.Add32(z[i+j], xj, c)
	}
	for k := i + len(x); c != 0 && k < len(z); k++ {
		z[k], c = bits.Add32(z[k], 0, c)
	}
}

// subAt subtracts x << (32*i) from z in place. The caller guarantees the
// difference is non-negative.
func subAt(z, x nat, i int) {
	var b uint32
	for j, xj := range x {
		z[i+j], b = bits.Sub32(z[i+j], xj, b)
	}
	for k := i + len(x); b != 0 && k < len(z); k++ {
		z[k], b = bits.Sub32(z[k], 0, b)
	}
	if b != 0 {
		panic(apperrors.ErrSubUnderflow)
	}
}

// mulAddUint32 returns x*y + r in a fresh vector.
func mulAddUint32(x nat, y, r uint32) nat {
	z := make(nat, len(x)+1)
	c := r
	for i, xi := range x {
		hi, lo := bits.Mul32(xi, y)
		var cc uint32
		lo, cc = bits.Add32(lo, c, 0)
		z[i] = lo
		c = hi + cc
	}
	z[len(x)] = c
	return z.norm()
}

// mulUint64 returns x*y in a fresh vector.
func mulUint64(x nat, y uint64) nat {
	if y>>32 == 0 {
		return mulAddUint32(x, uint32(y), 0)
	}
	return mulSchoolbook(x, natFromUint64(y))
}

// shl returns x << s in a fresh vector.
func (x nat) shl(s uint) nat {
	if len(x) == 0 {
		return nil
	}
	li, sh := int(s/limbBits), s%limbBits
	z := make(nat, len(x)+li+1)
	if sh == 0 {
		copy(z[li:], x)
		return z.norm()
	}
	var c uint32
	for i, xi := range x {
		z[li+i] = xi<<sh | c
		c = xi >> (limbBits - sh)
	}
	z[li+len(x)] = c
	return z.norm()
}

// shr returns x >> s in a fresh vector.
func (x nat) shr(s uint) nat {
	li, sh := int(s/limbBits), s%limbBits
	if li >= len(x) {
		return nil
	}
	src := x[li:]
	z := make(nat, len(src))
	if sh == 0 {
		copy(z, src)
		return z.norm()
	}
	for i := range src {
		v := src[i] >> sh
		if i+1 < len(src) {
			v |= src[i+1] << (limbBits - sh)
		}
		z[i] = v
	}
	return z.norm()
}

// toBytes returns the big-endian byte form of x with no leading zero byte.
func (x nat) toBytes() []byte {
	buf := make([]byte, 4*len(x))
	for i, l := range x {
		j := len(buf) - 4*i
		buf[j-1] = byte(l)
		buf[j-2] = byte(l >> 8)
		buf[j-3] = byte(l >> 16)
		buf[j-4] = byte(l >> 24)
	}
	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

func natFromBytes(buf []byte) nat {
	z := make(nat, (len(buf)+3)/4)
	for i := range buf {
		b := buf[len(buf)-1-i]
		z[i/4] |= uint32(b) << (8 * uint(i%4))
	}
	return z.norm()
}
