package bigint

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

const (
	decBatch       = 1_000_000_000 // 10^9, the largest power of ten in a limb
	decBatchDigits = 9
)

// text renders x in base 2, 8, 10 or 16 without a prefix.
func (x nat) text(base int) string {
	if len(x) == 0 {
		return "0"
	}
	switch base {
	case 10:
		return x.decimal()
	case 16:
		return x.hexOrBinary("%08x", "%x")
	case 2:
		return x.hexOrBinary("%032b", "%b")
	case 8:
		return x.octal()
	}
	panic(fmt.Sprintf("bigint: unsupported base %d", base))
}

// decimal extracts nine digits per division by 10^9.
func (x nat) decimal() string {
	var chunks []uint32
	for q := x; len(q) > 0; {
		var r uint32
		q, r = divRemUint32(q, decBatch)
		chunks = append(chunks, r)
	}
	var sb strings.Builder
	sb.Grow(len(chunks) * decBatchDigits)
	sb.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%09d", chunks[i])
	}
	return sb.String()
}

// hexOrBinary formats each limb directly; only the top limb is unpadded.
func (x nat) hexOrBinary(padded, top string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, top, x[len(x)-1])
	for i := len(x) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, padded, x[i])
	}
	return sb.String()
}

// octal reads three bits at a time, since octal digits straddle limbs.
func (x nat) octal() string {
	n := (x.bitLen() + 2) / 3
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[n-1-i] = byte('0' + x.bitsFrom(3*i)&7)
	}
	return string(buf)
}

func basePrefix(base int) string {
	switch base {
	case 16:
		return "0x"
	case 8:
		return "0o"
	case 2:
		return "0b"
	}
	return ""
}

// String returns the decimal representation of x.
func (x *UBigInt) String() string { return x.nat().text(10) }

// Text returns x in base 2, 8, 10 or 16 using lower-case digits and no
// prefix. It panics on any other base.
func (x *UBigInt) Text(base int) string { return x.nat().text(base) }

// TextWithPrefix returns x in the given base preceded by 0x, 0o or 0b.
// Decimal output has no prefix.
func (x *UBigInt) TextWithPrefix(base int) string {
	return basePrefix(base) + x.nat().text(base)
}

// Format implements fmt.Formatter. It accepts the verbs d, s, v, x, X, o, O
// and b; the '#' flag adds the base prefix, and width and the '0' and '-'
// flags pad the result.
func (x *UBigInt) Format(s fmt.State, ch rune) {
	formatNumber(s, ch, false, x.nat())
}

func formatNumber(s fmt.State, ch rune, neg bool, n nat) {
	base := 10
	prefix := false
	switch ch {
	case 'd', 's', 'v':
	case 'x', 'X':
		base = 16
	case 'o':
		base = 8
	case 'O':
		base, prefix = 8, true
	case 'b':
		base = 2
	default:
		fmt.Fprintf(s, "%%!%c(bigint=%s)", ch, n.text(10))
		return
	}
	digits := n.text(base)
	if ch == 'X' {
		digits = strings.ToUpper(digits)
	}
	var head string
	if neg {
		head = "-"
	} else if s.Flag('+') {
		head = "+"
	}
	if prefix || s.Flag('#') {
		p := basePrefix(base)
		if ch == 'X' {
			p = strings.ToUpper(p)
		}
		head += p
	}
	w, hasWidth := s.Width()
	pad := 0
	if hasWidth {
		pad = w - len(head) - len(digits)
	}
	switch {
	case pad <= 0:
		fmt.Fprint(s, head, digits)
	case s.Flag('-'):
		fmt.Fprint(s, head, digits, strings.Repeat(" ", pad))
	case s.Flag('0'):
		fmt.Fprint(s, head, strings.Repeat("0", pad), digits)
	default:
		fmt.Fprint(s, strings.Repeat(" ", pad), head, digits)
	}
}

// ParseUBigInt parses an unsigned literal: decimal digits, or hex, octal or
// binary digits after a 0x, 0o or 0b prefix. Underscores separate digit
// groups anywhere except as the first character. A leading zero without a
// prefix is plain decimal.
func ParseUBigInt(s string) (*UBigInt, error) {
	n, err := parseNat(s, 0)
	if err != nil {
		return nil, err
	}
	return new(UBigInt).setNat(n), nil
}

// parseNat parses s; offset is added to reported character positions.
func parseNat(s string, offset int) (nat, error) {
	if s == "" {
		return nil, apperrors.ErrNoData
	}
	if s[0] == '_' {
		return nil, apperrors.InvalidCharError{Char: '_', Pos: offset}
	}
	base, start := 10, 0
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x':
			base, start = 16, 2
		case 'o':
			base, start = 8, 2
		case 'b':
			base, start = 2, 2
		}
	}
	digits := make([]byte, 0, len(s)-start)
	for i, c := range s[start:] {
		if c == '_' {
			continue
		}
		d := digitValue(c)
		if d >= base {
			return nil, apperrors.InvalidCharError{Char: c, Pos: offset + start + i}
		}
		digits = append(digits, byte(d))
	}
	if len(digits) == 0 {
		return nil, apperrors.ErrUnexpectedEnd
	}
	if base == 10 {
		return decimalDigitsToNat(digits), nil
	}
	return pow2DigitsToNat(digits, base), nil
}

func digitValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

// decimalDigitsToNat folds nine digits at a time: z = z*10^k + chunk.
func decimalDigitsToNat(digits []byte) nat {
	var z nat
	for len(digits) > 0 {
		k := min(len(digits), decBatchDigits)
		var chunk, scale uint32 = 0, 1
		for _, d := range digits[:k] {
			chunk = chunk*10 + uint32(d)
			scale *= 10
		}
		z = mulAddUint32(z, scale, chunk)
		digits = digits[k:]
	}
	return z
}

// pow2DigitsToNat places each digit's bits directly, least significant first.
func pow2DigitsToNat(digits []byte, base int) nat {
	width := map[int]int{2: 1, 8: 3, 16: 4}[base]
	z := make(nat, (len(digits)*width+limbBits-1)/limbBits)
	pos := 0
	for i := len(digits) - 1; i >= 0; i-- {
		v := uint64(digits[i]) << uint(pos%limbBits)
		z[pos/limbBits] |= uint32(v)
		if hi := uint32(v >> limbBits); hi != 0 {
			z[pos/limbBits+1] |= hi
		}
		pos += width
	}
	return z.norm()
}
