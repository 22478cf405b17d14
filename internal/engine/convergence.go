package engine

import (
	"math"

	"github.com/agbru/numcalc/internal/rational"
)

// ExactDigits is reported as the stable digit count when two successive
// approximations are identical.
const ExactDigits = math.MaxInt32

// StableDigits estimates how many fractional decimal digits a and b share,
// from the binary magnitude of |a - b|. The estimate is conservative: the
// true difference is below 10^-digits. identical reports a == b.
func StableDigits(a, b *rational.Rat) (digits int, identical bool) {
	d := a.Sub(b)
	if d.IsZero() {
		return ExactDigits, true
	}
	// |d| < 2^(bitlen(num) - bitlen(den) + 1)
	upper := d.Num().BitLen() - d.Den().BitLen() + 1
	if upper >= 0 {
		return 0, false
	}
	return int(math.Floor(float64(-upper) * math.Log10(2))), false
}

// AgreeTo reports whether a and b truncate to the same decimal string with
// the given number of fractional digits.
func AgreeTo(a, b *rational.Rat, digits int) bool {
	return a.DecimalString(digits) == b.DecimalString(digits)
}
