package rational

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"42", "42"},
		{"007", "7"},
		{"-1.5", "-3/2"},
		{"0.125", "1/8"},
		{"1_000.000_1", "10000001/10000"},
		{"2.5e3", "2500"},
		{"25e-1", "5/2"},
		{"1E2", "100"},
		{"3.141592e720", "3141592" + zeros(714)},
		{"-0x1_000", "-4096"},
		{"0b101", "5"},
		{"0o17", "15"},
	}
	for _, tt := range tests {
		r, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, r.String(), tt.in)
		requireReduced(t, r)
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		wantIs  error
		badChar rune
		pos     int
	}{
		{in: "", wantIs: apperrors.ErrNoData},
		{in: "-", wantIs: apperrors.ErrUnexpectedEnd},
		{in: "1.", wantIs: apperrors.ErrUnexpectedEnd},
		{in: ".5", wantIs: apperrors.ErrUnexpectedEnd},
		{in: "1e", wantIs: apperrors.ErrUnexpectedEnd},
		{in: "1e-", wantIs: apperrors.ErrUnexpectedEnd},
		{in: "0x", wantIs: apperrors.ErrUnexpectedEnd},
		{in: "_1", badChar: '_', pos: 0},
		{in: "-_1", badChar: '_', pos: 1},
		{in: "1.2.3", badChar: '.', pos: 3},
		{in: "1e+5", badChar: '+', pos: 2},
		{in: "1e5_0", badChar: '_', pos: 3},
		{in: "12x", badChar: 'x', pos: 2},
		{in: "0x1.8", badChar: '.', pos: 3},
		{in: "1.e5", badChar: 'e', pos: 2},
		{in: "π", badChar: 'π', pos: 0},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if tt.wantIs != nil {
			assert.ErrorIs(t, err, tt.wantIs, tt.in)
			continue
		}
		var ice apperrors.InvalidCharError
		if assert.ErrorAs(t, err, &ice, tt.in) {
			assert.Equal(t, tt.badChar, ice.Char, tt.in)
			assert.Equal(t, tt.pos, ice.Pos, tt.in)
		}
	}
}

func TestParseExponentOverflow(t *testing.T) {
	t.Parallel()
	_, err := Parse("1e99999999999")
	var ce apperrors.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestParseLimited(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1e400000000", true},
		{"2.5e-101", true},
		{"1e100", false},
		{"-7.25e-100", false},
		{"123456789", false},
		{"0xffff_ffff", false},
	}
	for _, tt := range tests {
		got, err := ParseLimited(tt.in, 100)
		if tt.wantErr {
			var nr apperrors.NotInRangeError
			require.ErrorAs(t, err, &nr, tt.in)
			assert.Equal(t, "100", nr.Max)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(MustParse(tt.in)), tt.in)
	}

	_, err := ParseFractionLimited("1/1e400000000", 100)
	var nr apperrors.NotInRangeError
	assert.ErrorAs(t, err, &nr)
	got, err := ParseFractionLimited("3e2/4", 100)
	require.NoError(t, err)
	assert.Equal(t, "75", got.String())
}

func TestParseFraction(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"-3/4", "-3/4"},
		{"6/8", "3/4"},
		{"1.5/7e2", "3/1400"},
		{"1/-3", "-1/3"},
		{"0x10/0b100", "4"},
		{"2.5", "5/2"},
	}
	for _, tt := range tests {
		got, err := ParseFraction(tt.in)
		require.NoError(t, err, tt.in)
		requireReduced(t, got)
		assert.Equal(t, tt.want, got.String(), tt.in)
	}

	_, err := ParseFraction("1/0.0")
	assert.ErrorIs(t, err, apperrors.ErrZeroDivisor)
	_, err = ParseFraction("1/")
	assert.ErrorIs(t, err, apperrors.ErrNoData)
	_, err = ParseFraction("1/2/3")
	var ic apperrors.InvalidCharError
	assert.ErrorAs(t, err, &ic)
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"0", "-1.5", "3.141592e720", "1_0.0_1e-3", "-0b11", "1.", "e5"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 64 {
			return
		}
		r, err := Parse(s)
		if err != nil {
			return
		}
		requireReduced(t, r)
		back, err := Parse(r.DecimalString(0))
		if err != nil {
			t.Fatalf("DecimalString(0) of %q does not parse: %v", s, err)
		}
		if back.Cmp(FromInt(r.Trunc())) != 0 {
			t.Fatalf("truncation of %q changed: %s", s, back)
		}
	})
}
