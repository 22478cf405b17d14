package rational

import (
	"strconv"
	"strings"

	"github.com/agbru/numcalc/internal/bigint"
	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Parse reads a numeric literal:
//
//	'-'? ( '0' ('x'|'o'|'b') [0-9a-fA-F_]+ | [0-9_]+ ('.' [0-9_]+)? (('e'|'E') '-'? [0-9]+)? )
//
// Underscores separate digit groups anywhere except as the first character.
// Radix prefixes take no fraction or exponent, and a leading 0 without a
// prefix is decimal.
func Parse(s string) (*Rat, error) {
	return parse(s, -1)
}

// ParseLimited is Parse with the decimal exponent bounded: a literal whose
// 'e' exponent exceeds maxExp in magnitude is rejected with a
// NotInRangeError before any power of ten is computed.
func ParseLimited(s string, maxExp int) (*Rat, error) {
	if maxExp < 0 {
		maxExp = 0
	}
	return parse(s, maxExp)
}

// parse implements Parse; a negative maxExp leaves the exponent unbounded.
func parse(s string, maxExp int) (*Rat, error) {
	if s == "" {
		return nil, apperrors.ErrNoData
	}
	body := strings.TrimPrefix(s, "-")
	neg := len(body) < len(s)
	off := len(s) - len(body)
	if body == "" {
		return nil, apperrors.ErrUnexpectedEnd
	}
	if len(body) > 1 && body[0] == '0' && strings.IndexByte("xob", body[1]) >= 0 {
		n, err := bigint.ParseInt(s)
		if err != nil {
			return nil, err
		}
		return FromInt(n), nil
	}

	p := literalScanner{s: s, pos: off}
	if body[0] == '_' {
		return nil, apperrors.InvalidCharError{Char: '_', Pos: off}
	}
	intDigits := p.digits(true)
	if intDigits == "" {
		if p.pos < len(s) && s[p.pos] != '.' {
			return nil, p.invalid()
		}
		return nil, apperrors.ErrUnexpectedEnd
	}

	var fracDigits string
	if p.peek('.') {
		p.pos++
		if fracDigits = p.digits(true); fracDigits == "" {
			if p.pos < len(s) {
				return nil, p.invalid()
			}
			return nil, apperrors.ErrUnexpectedEnd
		}
	}

	exp := 0
	if p.peek('e') || p.peek('E') {
		p.pos++
		expNeg := p.peek('-')
		if expNeg {
			p.pos++
		}
		expDigits := p.digits(false)
		if expDigits == "" {
			if p.pos < len(s) {
				return nil, p.invalid()
			}
			return nil, apperrors.ErrUnexpectedEnd
		}
		v, err := strconv.ParseInt(expDigits, 10, 32)
		if err != nil {
			return nil, apperrors.WrapConversion(err)
		}
		if maxExp >= 0 && v > int64(maxExp) {
			return nil, apperrors.NewNotInRange(-maxExp, maxExp, expSign(expNeg)+expDigits)
		}
		exp = int(v)
		if expNeg {
			exp = -exp
		}
	}
	if p.pos < len(s) {
		return nil, p.invalid()
	}

	mant, err := bigint.ParseInt(intDigits + fracDigits)
	if err != nil {
		return nil, err
	}
	if neg {
		mant.NegAssign()
	}
	return scaleByPow10(mant, exp-len(fracDigits)), nil
}

func expSign(neg bool) string {
	if neg {
		return "-"
	}
	return ""
}

// scaleByPow10 returns m * 10^e.
func scaleByPow10(m *bigint.Int, e int) *Rat {
	ten := bigint.NewInt(10)
	if e >= 0 {
		return FromInt(m.Mul(ten.Pow(uint32(e))))
	}
	return FromFrac(m, ten.Pow(uint32(-e)))
}

// ParseFraction reads either a Parse literal or two of them separated by a
// single '/', as in "-3/4" or "1.5/7e2". The result is reduced.
func ParseFraction(s string) (*Rat, error) {
	return parseFraction(s, -1)
}

// ParseFractionLimited is ParseFraction with both literals read by
// ParseLimited.
func ParseFractionLimited(s string, maxExp int) (*Rat, error) {
	if maxExp < 0 {
		maxExp = 0
	}
	return parseFraction(s, maxExp)
}

func parseFraction(s string, maxExp int) (*Rat, error) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return parse(s, maxExp)
	}
	num, err := parse(s[:i], maxExp)
	if err != nil {
		return nil, err
	}
	den, err := parse(s[i+1:], maxExp)
	if err != nil {
		return nil, err
	}
	if den.IsZero() {
		return nil, apperrors.ErrZeroDivisor
	}
	return num.QuoAssign(den), nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) *Rat {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

type literalScanner struct {
	s   string
	pos int
}

func (p *literalScanner) peek(c byte) bool { return p.pos < len(p.s) && p.s[p.pos] == c }

// digits consumes a run of decimal digits, and underscores when allowed,
// returning the digits alone.
func (p *literalScanner) digits(underscores bool) string {
	var sb strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case '0' <= c && c <= '9':
			sb.WriteByte(c)
		case c == '_' && underscores:
		default:
			return sb.String()
		}
		p.pos++
	}
	return sb.String()
}

func (p *literalScanner) invalid() error {
	r := []rune(p.s[p.pos:])[0]
	return apperrors.InvalidCharError{Char: r, Pos: p.pos}
}
