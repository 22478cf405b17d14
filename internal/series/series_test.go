package series

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/rational"
)

func toFloat(t testing.TB, x *rational.Rat) float64 {
	t.Helper()
	f, err := x.Float64()
	require.NoError(t, err)
	return f
}

func fromFloat(t testing.TB, v float64) *rational.Rat {
	t.Helper()
	r, err := rational.FromFloat64(v)
	require.NoError(t, err)
	return r
}

func TestFunctionsAgainstMath(t *testing.T) {
	t.Parallel()
	const k = 30
	tests := []struct {
		name string
		fn   Func
		x    float64
		want float64
	}{
		{"exp(0.5)", Exp, 0.5, math.Exp(0.5)},
		{"exp(3.7)", Exp, 3.7, math.Exp(3.7)},
		{"exp(-2.25)", Exp, -2.25, math.Exp(-2.25)},
		{"ln(0.1)", Ln, 0.1, math.Log(0.1)},
		{"ln(3)", Ln, 3, math.Log(3)},
		{"ln(1000)", Ln, 1000, math.Log(1000)},
		{"log10(2000)", logBase(10), 2000, math.Log10(2000)},
		{"log2(0.375)", logBase(2), 0.375, math.Log2(0.375)},
		{"sin(0.3)", total(Sin), 0.3, math.Sin(0.3)},
		{"sin(2)", total(Sin), 2, math.Sin(2)},
		{"sin(-2.5)", total(Sin), -2.5, math.Sin(-2.5)},
		{"sin(10)", total(Sin), 10, math.Sin(10)},
		{"cos(1)", total(Cos), 1, math.Cos(1)},
		{"cos(4)", total(Cos), 4, math.Cos(4)},
		{"cos(-7.5)", total(Cos), -7.5, math.Cos(-7.5)},
		{"tan(0.7)", Tan, 0.7, math.Tan(0.7)},
		{"tan(2.5)", Tan, 2.5, math.Tan(2.5)},
		{"atan(0.25)", total(Atan), 0.25, math.Atan(0.25)},
		{"atan(0.75)", total(Atan), 0.75, math.Atan(0.75)},
		{"atan(-12)", total(Atan), -12, math.Atan(-12)},
		{"asin(0.5)", Asin, 0.5, math.Asin(0.5)},
		{"asin(-0.9)", Asin, -0.9, math.Asin(-0.9)},
		{"acos(0.2)", Acos, 0.2, math.Acos(0.2)},
		{"acos(-1)", Acos, -1, math.Pi},
		{"sqrt(2)", Sqrt, 2, math.Sqrt2},
		{"sqrt(0.01)", Sqrt, 0.01, 0.1},
		{"cbrt(10)", total(Cbrt), 10, math.Cbrt(10)},
		{"cbrt(-0.5)", total(Cbrt), -0.5, math.Cbrt(-0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(fromFloat(t, tt.x), k)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, toFloat(t, got), 1e-8)
		})
	}
}

func TestExactResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  func() (*rational.Rat, error)
		want *rational.Rat
	}{
		{"exp(0)", func() (*rational.Rat, error) { return Exp(rational.Zero(), 10) }, rational.One()},
		{"exp(1) is E(k)", func() (*rational.Rat, error) { return Exp(rational.One(), 10) }, E(10)},
		{"ln(1)", func() (*rational.Rat, error) { return Ln(rational.One(), 10) }, rational.Zero()},
		{"ln(8)", func() (*rational.Rat, error) { return Ln(rational.FromInt64(8), 10) }, Ln2(10).MulInt64(3)},
		{"sin(0)", func() (*rational.Rat, error) { return Sin(rational.Zero(), 10), nil }, rational.Zero()},
		{"cos(0)", func() (*rational.Rat, error) { return Cos(rational.Zero(), 10), nil }, rational.One()},
		{"atan(0)", func() (*rational.Rat, error) { return Atan(rational.Zero(), 10), nil }, rational.Zero()},
		{"asin(1)", func() (*rational.Rat, error) { return Asin(rational.One(), 10) }, Pi(10).QuoInt64(2)},
		{"acos(1)", func() (*rational.Rat, error) { return Acos(rational.One(), 10) }, rational.Zero()},
		{"sqrt(4)", func() (*rational.Rat, error) { return Sqrt(rational.FromInt64(4), 3) }, rational.FromInt64(2)},
		{"sqrt(9/16)", func() (*rational.Rat, error) { return Sqrt(rational.NewRat(9, 16), 0) }, rational.NewRat(3, 4)},
		{"sqrt(0)", func() (*rational.Rat, error) { return Sqrt(rational.Zero(), 5) }, rational.Zero()},
		{"cbrt(-27)", func() (*rational.Rat, error) { return Cbrt(rational.FromInt64(-27), 4), nil }, rational.FromInt64(-3)},
		{"cbrt(8/27)", func() (*rational.Rat, error) { return Cbrt(rational.NewRat(8, 27), 0), nil }, rational.NewRat(2, 3)},
		{"pow(2, 10)", func() (*rational.Rat, error) {
			return Pow(rational.FromInt64(2), rational.FromInt64(10), 0)
		}, rational.FromInt64(1024)},
		{"pow(2/3, -2)", func() (*rational.Rat, error) {
			return Pow(rational.NewRat(2, 3), rational.FromInt64(-2), 0)
		}, rational.NewRat(9, 4)},
		{"pow(0, 1/2)", func() (*rational.Rat, error) {
			return Pow(rational.Zero(), rational.NewRat(1, 2), 5)
		}, rational.Zero()},
		{"atan2(1, 0)", func() (*rational.Rat, error) {
			return Atan2(rational.One(), rational.Zero(), 10), nil
		}, Pi(10).QuoInt64(2)},
		{"atan2(-1, 0)", func() (*rational.Rat, error) {
			return Atan2(rational.FromInt64(-1), rational.Zero(), 10), nil
		}, Pi(10).QuoInt64(-2)},
		{"atan2(0, 0)", func() (*rational.Rat, error) {
			return Atan2(rational.Zero(), rational.Zero(), 10), nil
		}, rational.Zero()},
		{"atan2(0, -1)", func() (*rational.Rat, error) {
			return Atan2(rational.Zero(), rational.FromInt64(-1), 10), nil
		}, Pi(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.got()
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestPowAndAtan2Approximate(t *testing.T) {
	t.Parallel()
	const k = 30
	p, err := Pow(fromFloat(t, 2), fromFloat(t, 0.5), k)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt2, toFloat(t, p), 1e-8)

	p, err = Pow(fromFloat(t, 10), fromFloat(t, -1.5), k)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pow(10, -1.5), toFloat(t, p), 1e-8)

	for _, c := range []struct{ y, x float64 }{{1, 1}, {1, -1}, {-1, -1}, {-2, 3}, {0.5, -4}} {
		got := Atan2(fromFloat(t, c.y), fromFloat(t, c.x), k)
		assert.InDelta(t, math.Atan2(c.y, c.x), toFloat(t, got), 1e-9, "atan2(%v, %v)", c.y, c.x)
	}
}

func TestDomainErrors(t *testing.T) {
	t.Parallel()
	huge := rational.FromInt64(1 << 40)
	tests := []struct {
		name string
		run  func() (*rational.Rat, error)
	}{
		{"ln(0)", func() (*rational.Rat, error) { return Ln(rational.Zero(), 5) }},
		{"ln(-1)", func() (*rational.Rat, error) { return Ln(rational.FromInt64(-1), 5) }},
		{"log base 1", func() (*rational.Rat, error) { return Log(rational.FromInt64(5), rational.One(), 5) }},
		{"log base -2", func() (*rational.Rat, error) {
			return Log(rational.FromInt64(5), rational.FromInt64(-2), 5)
		}},
		{"sqrt(-1)", func() (*rational.Rat, error) { return Sqrt(rational.FromInt64(-1), 5) }},
		{"asin(2)", func() (*rational.Rat, error) { return Asin(rational.FromInt64(2), 5) }},
		{"acos(-3/2)", func() (*rational.Rat, error) { return Acos(rational.NewRat(-3, 2), 5) }},
		{"exp(2^40)", func() (*rational.Rat, error) { return Exp(huge, 5) }},
		{"pow(0, -1)", func() (*rational.Rat, error) {
			return Pow(rational.Zero(), rational.FromInt64(-1), 5)
		}},
		{"pow(-2, 1/2)", func() (*rational.Rat, error) {
			return Pow(rational.FromInt64(-2), rational.NewRat(1, 2), 5)
		}},
		{"tan(pi/2)", func() (*rational.Rat, error) { return Tan(Pi(5).QuoInt64(2), 5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.run()
			require.Error(t, err)
			assert.Nil(t, got)
			var rangeErr apperrors.NotInRangeError
			assert.True(t, errors.As(err, &rangeErr), "unexpected error type %T", err)
		})
	}
}

func TestAccuracyImprovesWithK(t *testing.T) {
	t.Parallel()
	x := rational.NewRat(7, 5)
	want := math.Sin(1.4)
	prev := math.Inf(1)
	for _, k := range []uint{1, 2, 4, 8} {
		diff := math.Abs(toFloat(t, Sin(x, k)) - want)
		assert.LessOrEqual(t, diff, prev, "k=%d", k)
		prev = diff
	}
	assert.Less(t, prev, 1e-12)
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	names := Names()
	require.Contains(t, names, "pi")
	require.Contains(t, names, "sqrt")
	require.IsIncreasing(t, names)
	require.Len(t, All(), len(names))

	for _, f := range All() {
		got, ok := Lookup(f.Name)
		require.True(t, ok)
		assert.Equal(t, f.Name, got.Name)
		assert.NotEmpty(t, got.Doc)
		assert.Contains(t, []int{0, 1}, got.Arity)
	}

	_, ok := Lookup("gamma")
	assert.False(t, ok)

	pi, _ := Lookup("pi")
	v, err := pi.Eval(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, "3.14159265358979", v.ApproxString(16))
}
