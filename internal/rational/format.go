package rational

import (
	"math"
	"strconv"
	"strings"

	"github.com/agbru/numcalc/internal/bigint"
)

var ten = bigint.UBigIntFromUint32(10)

// cmpPow10 compares num/den with 10^e.
func cmpPow10(num, den *bigint.UBigInt, e int) int {
	if e >= 0 {
		return num.Cmp(den.Mul(ten.Pow(uint32(e))))
	}
	return num.Mul(ten.Pow(uint32(-e))).Cmp(den)
}

// decimalExponent returns E with 10^E <= num/den < 10^(E+1). num must be
// non-zero.
func decimalExponent(num, den *bigint.UBigInt) int {
	e := int(math.Floor(float64(num.BitLen()-den.BitLen()) * math.Log10(2)))
	for cmpPow10(num, den, e) < 0 {
		e--
	}
	for cmpPow10(num, den, e+1) >= 0 {
		e++
	}
	return e
}

// leadingDigits returns the first k significant decimal digits of num/den,
// truncated, given its decimal exponent.
func leadingDigits(num, den *bigint.UBigInt, exp, k int) string {
	s := k - 1 - exp
	var q *bigint.UBigInt
	if s >= 0 {
		q = num.Mul(ten.Pow(uint32(s))).Div(den)
	} else {
		q = num.Div(den.Mul(ten.Pow(uint32(-s))))
	}
	return q.String()
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ApproxString formats x in at most maxLen characters, truncating digits
// rather than rounding. A decimal exponent E in [0, maxLen) or in
// [-maxLen/2, 0) gives fixed notation such as 3.14159 or 0.00123; anything
// else gives scientific notation such as 3.141e720 or 1.2e-30. Trailing
// fractional zeros are dropped. When maxLen is too small for even one digit
// and the exponent, the shortest scientific form is returned regardless.
func (x *Rat) ApproxString(maxLen int) string {
	if x.IsZero() {
		return "0"
	}
	sign := ""
	if x.num.IsNeg() {
		sign = "-"
	}
	avail := maxLen - len(sign)
	num, den := x.num.Magnitude(), x.den.Magnitude()
	exp := decimalExponent(num, den)

	if s, ok := fixedNotation(num, den, exp, avail); ok {
		return sign + s
	}

	expStr := "e" + strconv.Itoa(exp)
	room := avail - len(expStr)
	if room < 3 {
		return sign + leadingDigits(num, den, exp, 1) + expStr
	}
	d := leadingDigits(num, den, exp, room-1)
	return sign + trimFraction(d[:1]+"."+d[1:]) + expStr
}

func fixedNotation(num, den *bigint.UBigInt, exp, avail int) (string, bool) {
	switch {
	case exp >= 0 && exp < avail:
		intLen := exp + 1
		fracRoom := avail - intLen - 1
		if fracRoom < 1 {
			return leadingDigits(num, den, exp, intLen), true
		}
		d := leadingDigits(num, den, exp, intLen+fracRoom)
		return trimFraction(d[:intLen] + "." + d[intLen:]), true
	case exp < 0 && -exp <= avail/2:
		prefix := "0." + strings.Repeat("0", -exp-1)
		room := avail - len(prefix)
		if room < 1 {
			return "", false
		}
		return trimFraction(prefix + leadingDigits(num, den, exp, room)), true
	}
	return "", false
}

// DecimalString returns x in fixed notation with exactly fracDigits digits
// after the point, truncated toward zero.
func (x *Rat) DecimalString(fracDigits int) string {
	fracDigits = max(fracDigits, 0)
	num, den := x.num.Magnitude(), x.den.Magnitude()
	scaled := num.Mul(ten.Pow(uint32(fracDigits))).Div(den).String()
	sign := ""
	if x.num.IsNeg() && strings.Trim(scaled, "0") != "" {
		sign = "-"
	}
	if fracDigits == 0 {
		return sign + scaled
	}
	if len(scaled) <= fracDigits {
		scaled = strings.Repeat("0", fracDigits-len(scaled)+1) + scaled
	}
	cut := len(scaled) - fracDigits
	return sign + scaled[:cut] + "." + scaled[cut:]
}
