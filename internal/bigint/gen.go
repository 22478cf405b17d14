package bigint

import (
	"math/bits"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// gcdNat returns gcd(x, y) by the Euclidean algorithm, switching to native
// arithmetic once both operands fit in 64 bits. It panics on gcd(0, 0).
func gcdNat(x, y nat) nat {
	if len(x) == 0 && len(y) == 0 {
		panic(apperrors.ErrGcdZeroZero)
	}
	for len(y) > 0 {
		if len(x) <= 2 && len(y) <= 2 {
			a, b := x.uint64(), y.uint64()
			for b != 0 {
				a, b = b, a%b
			}
			return natFromUint64(a)
		}
		_, r := divRem(x, y)
		x, y = y, r
	}
	return x.clone()
}

// Gcd returns the greatest common divisor of x and y. gcd(x, 0) is x. It
// panics if both are zero.
func Gcd(x, y *UBigInt) *UBigInt {
	return new(UBigInt).setNat(gcdNat(x.nat(), y.nat()))
}

// Factorial returns n!.
func Factorial(n uint32) *UBigInt {
	if n < 2 {
		return NewUBigInt(1)
	}
	return new(UBigInt).setNat(productRange(2, uint64(n)))
}

// productRange returns a*(a+1)*...*b by splitting the range in halves, which
// keeps the operands of each multiplication balanced.
func productRange(a, b uint64) nat {
	switch {
	case a > b:
		return nat{1}
	case b-a < 8:
		z := natFromUint64(a)
		for i := a + 1; i <= b; i++ {
			z = mulUint64(z, i)
		}
		return z
	}
	m := a + (b-a)/2
	return mulNat(productRange(a, m), productRange(m+1, b))
}

// Fibonacci returns F(n) with F(0) = 0 and F(1) = 1, using the doubling
// identities
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)^2 + F(k)^2
func Fibonacci(n uint64) *UBigInt {
	var fk, fk1 nat = nil, nat{1}
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		t := subNat(fk1.shl(1), fk)
		f2k := mulNat(fk, t)
		f2k1 := addNat(sqrNat(fk1), sqrNat(fk))
		fk, fk1 = f2k, f2k1
		if n>>uint(i)&1 == 1 {
			fk, fk1 = fk1, addNat(fk, fk1)
		}
	}
	return new(UBigInt).setNat(fk.clone())
}

// smallPrimes are used for trial division and as Miller-Rabin bases.
var smallPrimes = [...]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}

// millerRabinBases is the number of leading smallPrimes used as witnesses.
// The first thirteen primes decide every n below 3.3 * 10^24 exactly.
const millerRabinBases = 13

// IsPrime reports whether x is prime. The answer is exact below 3.3 * 10^24;
// above that a composite passes with probability below 4^-13.
func (x *UBigInt) IsPrime() bool {
	n := x.nat()
	if len(n) == 0 || len(n) == 1 && n[0] < 2 {
		return false
	}
	for _, p := range smallPrimes {
		if len(n) == 1 && n[0] == p {
			return true
		}
		if _, r := divRemUint32(n, p); r == 0 {
			return false
		}
	}
	if len(n) == 1 && n[0] < smallPrimes[len(smallPrimes)-1]*smallPrimes[len(smallPrimes)-1] {
		return true
	}

	nm1 := subNat(n, nat{1})
	s := nm1.trailingZeros()
	d := nm1.shr(uint(s))
	for _, a := range smallPrimes[:millerRabinBases] {
		y := modPowNat(nat{a}, d, n)
		if len(y) == 1 && y[0] == 1 || cmpNat(y, nm1) == 0 {
			continue
		}
		composite := true
		for r := 1; r < s; r++ {
			_, y = divRem(sqrNat(y), n)
			if cmpNat(y, nm1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}
