package series

import (
	"github.com/agbru/numcalc/internal/bigint"
	"github.com/agbru/numcalc/internal/rational"
)

// Bootstrap partial sums, stored as little-endian base-2^32 limbs. Each is
// the exact reduced value of the first terms of the series its function
// extends, so Pi(0), E(0) and Ln2(0) return them unchanged.
var (
	// BBP groups j = 0..3: 16331158360096799798177512637 / 5198369158853231585211187200
	piBootNum = []uint32{0xc7133cbd, 0xa93d0eb7, 0x34c4d14c}
	piBootDen = []uint32{0x6e000000, 0xc54087ad, 0x10cbfd7c}

	// sum of 1/n! for n = 0..11: 13563139 / 4989600
	eBootNum = []uint32{0x00cef503}
	eBootDen = []uint32{0x004c22a0}

	// sum of 2/((2i+1)*3^(2i+1)) for i = 0..7: 149337754816 / 215448838605
	ln2BootNum = []uint32{0xc5394cc0, 0x00000022}
	ln2BootDen = []uint32{0x29c061cd, 0x00000032}
)

const (
	piBootGroups = 4
	eBootTerms   = 12
	ln2BootTerms = 8
)

// bootstrap builds a constant from its limbs. The literals above have no
// trailing zero limb and each pair is coprime, so neither constructor needs
// to check anything. The limbs are copied to keep the package-level slices
// immutable.
func bootstrap(num, den []uint32) *rational.Rat {
	n := bigint.UBigIntFromLimbsUnchecked(append([]uint32(nil), num...))
	d := bigint.UBigIntFromLimbsUnchecked(append([]uint32(nil), den...))
	return rational.FromFracUnchecked(bigint.IntFromUBigInt(n, false), bigint.IntFromUBigInt(d, false))
}

// Pi returns the bootstrap BBP partial sum extended by k more groups. Group j
// pairs BBP terms 2j and 2j+1, so it carries a 256^-j weight.
func Pi(k uint) *rational.Rat {
	sum := bootstrap(piBootNum, piBootDen)
	for j := int64(piBootGroups); j < piBootGroups+int64(k); j++ {
		sum.AddAssign(piGroup(j))
	}
	return sum
}

func piGroup(j int64) *rational.Rat {
	b := 16 * j
	hi := rational.NewRat(4, b+1).
		SubAssign(rational.NewRat(2, b+4)).
		SubAssign(rational.NewRat(1, b+5)).
		SubAssign(rational.NewRat(1, b+6))
	lo := rational.NewRat(4, b+9).
		SubAssign(rational.NewRat(2, b+12)).
		SubAssign(rational.NewRat(1, b+13)).
		SubAssign(rational.NewRat(1, b+14))
	hi.AddAssign(lo.QuoInt64(16))
	return hi.QuoInt(bigint.NewInt(1).Shl(uint(8 * j)))
}

// E returns the bootstrap partial sum of 1/n! extended by k more terms.
func E(k uint) *rational.Rat {
	// Work over the common denominator n!: bootDen divides 11!, and adding
	// 1/(n+1)! to P/n! gives (P*(n+1) + 1)/(n+1)!.
	n := uint32(eBootTerms - 1)
	fact := bigint.Factorial(n)
	p := bigint.UBigIntFromLimbsUnchecked(append([]uint32(nil), eBootNum...))
	p.MulAssign(fact.Div(bigint.UBigIntFromLimbsUnchecked(append([]uint32(nil), eBootDen...))))
	for i := uint(0); i < k; i++ {
		n++
		fact.MulAssign(bigint.UBigIntFromUint32(n))
		p = p.MulAssign(bigint.UBigIntFromUint32(n)).AddUint32(1)
	}
	return rational.FromFrac(bigint.IntFromUBigInt(p, false), bigint.IntFromUBigInt(fact, false))
}

// Ln2 returns the bootstrap partial sum of 2*atanh(1/3) extended by k more
// terms.
func Ln2(k uint) *rational.Rat {
	sum := bootstrap(ln2BootNum, ln2BootDen)
	pow3 := bigint.NewInt(3).Pow(2*ln2BootTerms + 1)
	for i := int64(ln2BootTerms); i < ln2BootTerms+int64(k); i++ {
		den := pow3.Mul(bigint.NewInt(2*i + 1))
		sum.AddAssign(rational.FromFrac(bigint.NewInt(2), den))
		pow3.MulAssign(bigint.NewInt(9))
	}
	return sum
}
