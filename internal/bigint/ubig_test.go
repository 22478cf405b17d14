package bigint

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

func mustUBig(t testing.TB, s string) *UBigInt {
	t.Helper()
	x, err := ParseUBigInt(s)
	if err != nil {
		t.Fatalf("ParseUBigInt(%q): %v", s, err)
	}
	return x
}

// randNat returns a normalized vector of exactly n limbs.
func randNat(rng *rand.Rand, n int) nat {
	z := make(nat, n)
	for i := range z {
		z[i] = rng.Uint32()
	}
	if n > 0 && z[n-1] == 0 {
		z[n-1] = 1
	}
	return z
}

func natToBig(x nat) *big.Int { return new(big.Int).SetBytes(x.toBytes()) }

func TestZeroRepresentation(t *testing.T) {
	t.Parallel()
	zeros := []*UBigInt{
		{},
		NewUBigInt(0),
		UBigIntFromLimbs([]uint32{0, 0, 0}),
		NewUBigInt(5).Sub(NewUBigInt(5)),
		NewUBigInt(7).Mul(new(UBigInt)),
	}
	for i, z := range zeros {
		if !z.IsZero() || z.Len() != 1 || z.String() != "0" || z.BitLen() != 0 {
			t.Errorf("zero #%d: IsZero=%v Len=%d String=%q", i, z.IsZero(), z.Len(), z.String())
		}
		if got := z.Limbs(); len(got) != 1 || got[0] != 0 {
			t.Errorf("zero #%d limbs = %v, want [0]", i, got)
		}
	}
}

func TestLimbsAreNormalized(t *testing.T) {
	t.Parallel()
	x := UBigIntFromLimbs([]uint32{1, 2, 0, 0})
	if x.Len() != 2 {
		t.Fatalf("Len = %d, want 2", x.Len())
	}
	y := NewUBigInt(1 << 40).Sub(NewUBigInt(1<<40 - 3))
	if y.Len() != 1 || y.CmpUint64(3) != 0 {
		t.Errorf("sub result not trimmed: %v", y.Limbs())
	}
}

func TestAddCarryRipple(t *testing.T) {
	t.Parallel()
	x := UBigIntFromLimbs([]uint32{0xffffffff, 0xffffffff, 0xffffffff})
	got := x.AddUint32(1)
	want := []uint32{0, 0, 0, 1}
	if fmt.Sprint(got.Limbs()) != fmt.Sprint(want) {
		t.Errorf("carry ripple: got %v, want %v", got.Limbs(), want)
	}
	x.AddAssign(x)
	if x.Big().Cmp(new(big.Int).Lsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1)), 1)) != 0 {
		t.Errorf("self-add = %s", x)
	}
}

func TestSubUnderflowPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != apperrors.ErrSubUnderflow {
			t.Errorf("recovered %v, want ErrSubUnderflow", r)
		}
	}()
	NewUBigInt(3).Sub(NewUBigInt(4))
}

func TestDivisionByZeroPanics(t *testing.T) {
	t.Parallel()
	for name, f := range map[string]func(){
		"Div":          func() { NewUBigInt(1).Div(new(UBigInt)) },
		"Rem":          func() { NewUBigInt(1).Rem(new(UBigInt)) },
		"DivRemUint32": func() { NewUBigInt(1).DivRemUint32(0) },
		"Large":        func() { UBigIntFromLimbs([]uint32{1, 2, 3, 4}).Div(new(UBigInt)) },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if r := recover(); r != apperrors.ErrDivisionByZero {
					t.Errorf("recovered %v, want ErrDivisionByZero", r)
				}
			}()
			f()
		})
	}
}

func TestAbsDiff(t *testing.T) {
	t.Parallel()
	a, b := NewUBigInt(10), NewUBigInt(25)
	if a.AbsDiff(b).CmpUint64(15) != 0 || b.AbsDiff(a).CmpUint64(15) != 0 {
		t.Error("AbsDiff should be symmetric")
	}
}

// TestPowQuotient divides 10^1000 by 10^998.
func TestPowQuotient(t *testing.T) {
	t.Parallel()
	ten := UBigIntFromUint32(10)
	q := ten.Pow(1000).Div(ten.Pow(998))
	if q.CmpUint64(100) != 0 {
		t.Errorf("10^1000 / 10^998 = %s, want 100", q)
	}
}

func TestPowEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base string
		exp  uint32
		want string
	}{
		{"0", 0, "1"},
		{"0", 5, "0"},
		{"1", 1 << 31, "1"},
		{"7", 1, "7"},
		{"2", 100, "1267650600228229401496703205376"},
		{"3", 33, "5559060566555523"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s^%d", tt.base, tt.exp), func(t *testing.T) {
			t.Parallel()
			if got := mustUBig(t, tt.base).Pow(tt.exp).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPowAssignDoesNotAliasBase(t *testing.T) {
	t.Parallel()
	x := NewUBigInt(12345)
	y := x.Pow(1)
	y.AddAssign(NewUBigInt(1))
	if x.CmpUint64(12345) != 0 {
		t.Errorf("Pow(1) shares storage with its receiver: x = %s", x)
	}
}

// TestSqrtPerfectSquares checks exact roots of every square up to a bound and
// the floor bracket for the numbers in between.
func TestSqrtPerfectSquares(t *testing.T) {
	t.Parallel()
	for r := uint64(0); r <= 3000; r++ {
		n := NewUBigInt(r * r)
		if got := n.Sqrt(); got.CmpUint64(r) != 0 {
			t.Fatalf("sqrt(%d^2) = %s", r, got)
		}
		if r > 0 {
			m := NewUBigInt(r*r - 1)
			if got := m.Sqrt(); got.CmpUint64(r-1) != 0 {
				t.Fatalf("sqrt(%d^2 - 1) = %s", r, got)
			}
		}
	}
}

func TestSqrtFloorBracketLarge(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := UBigIntFromLimbs(randNat(rng, 1+rng.Intn(40)))
		s := n.Sqrt()
		if s.Mul(s).Cmp(n) > 0 {
			t.Fatalf("sqrt(%s)^2 > n", n)
		}
		s1 := s.AddUint32(1)
		if s1.Mul(s1).Cmp(n) <= 0 {
			t.Fatalf("(sqrt(%s)+1)^2 <= n", n)
		}
		root := UBigIntFromLimbs(randNat(rng, 1+rng.Intn(20)))
		if got := root.Mul(root).Sqrt(); got.Cmp(root) != 0 {
			t.Fatalf("sqrt(r^2) = %s, want %s", got, root)
		}
	}
}

func TestCbrtFloorBracket(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 150; i++ {
		root := UBigIntFromLimbs(randNat(rng, 1+rng.Intn(12)))
		cube := root.Pow(3)
		if got := cube.Cbrt(); got.Cmp(root) != 0 {
			t.Fatalf("cbrt(r^3) = %s, want %s", got, root)
		}
		below := cube.Sub(NewUBigInt(1))
		if got := below.Cbrt(); got.Cmp(root.Sub(NewUBigInt(1))) != 0 {
			t.Fatalf("cbrt(r^3 - 1) = %s, want r-1", got)
		}
	}
	for v := uint64(0); v < 2000; v++ {
		c := NewUBigInt(v).Cbrt()
		r, _ := c.Uint64()
		if r*r*r > v || (r+1)*(r+1)*(r+1) <= v {
			t.Fatalf("cbrt(%d) = %d", v, r)
		}
	}
}

// TestDivRemMatchesReference runs block division against bit-serial long
// division over every combination of small limb lengths.
func TestDivRemMatchesReference(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	for la := 0; la <= 9; la++ {
		for lb := 1; lb <= 9; lb++ {
			for trial := 0; trial < 20; trial++ {
				a, b := randNat(rng, la), randNat(rng, lb)
				if trial%4 == 0 && lb > 1 {
					// divisors with a saturated top limb stress the +1 bias
					b[lb-1] = 0xffffffff
				}
				q, r := divRem(a, b)
				wq, wr := divRemReference(a, b)
				if cmpNat(q, wq) != 0 || cmpNat(r, wr) != 0 {
					t.Fatalf("divRem(%v, %v) = (%v, %v), want (%v, %v)", a, b, q, r, wq, wr)
				}
			}
		}
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	x := mustUBig(t, "0x1234_5678_9abc_def0")
	if got := x.ShlLimbs(2).ShrLimbs(2); got.Cmp(x) != 0 {
		t.Errorf("limb shift round trip = %x", got)
	}
	if got := x.Shl(37).Shr(37); got.Cmp(x) != 0 {
		t.Errorf("bit shift round trip = %x", got)
	}
	if got := x.ShrLimbs(5); !got.IsZero() {
		t.Errorf("over-shift = %s, want 0", got)
	}
	if got := x.ShlLimbs(1).Limbs(); got[0] != 0 || got[1] != 0x9abcdef0 {
		t.Errorf("ShlLimbs(1) = %x", got)
	}
}

func TestLimbShiftsScaleByLimbBase(t *testing.T) {
	t.Parallel()
	x := mustUBig(t, "0xdead_beef_0000_0001")
	base := NewUBigInt(1 << 32)
	for n := uint(0); n <= 4; n++ {
		scale := base.Pow(uint32(n))
		if got := x.ShlLimbs(n); got.Cmp(x.Mul(scale)) != 0 {
			t.Errorf("ShlLimbs(%d) = %x, want x * 2^(32*%d)", n, got, n)
		}
		if got := x.ShrLimbs(n); got.Cmp(x.Div(scale)) != 0 {
			t.Errorf("ShrLimbs(%d) = %x, want x / 2^(32*%d)", n, got, n)
		}
	}
	if got := x.ShrLimbs(uint(x.Len())); !got.IsZero() {
		t.Errorf("ShrLimbs(Len) = %s, want 0", got)
	}
}

func TestGcd(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want string }{
		{"12", "18", "6"},
		{"0", "9", "9"},
		{"9", "0", "9"},
		{"17", "5", "1"},
		{"1267650600228229401496703205376", "1125899906842624", "1125899906842624"},
	}
	for _, tt := range tests {
		if got := Gcd(mustUBig(t, tt.a), mustUBig(t, tt.b)).String(); got != tt.want {
			t.Errorf("gcd(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
	defer func() {
		if r := recover(); r != apperrors.ErrGcdZeroZero {
			t.Errorf("recovered %v, want ErrGcdZeroZero", r)
		}
	}()
	Gcd(new(UBigInt), new(UBigInt))
}

func TestFactorialAndFibonacci(t *testing.T) {
	t.Parallel()
	if got := Factorial(25).String(); got != "15511210043330985984000000" {
		t.Errorf("25! = %s", got)
	}
	if got := Factorial(0).String(); got != "1" {
		t.Errorf("0! = %s", got)
	}
	want := new(big.Int).MulRange(1, 300)
	if got := Factorial(300).Big(); got.Cmp(want) != 0 {
		t.Errorf("300! mismatch")
	}
	fibs := []string{"0", "1", "1", "2", "3", "5", "8", "13", "21", "34", "55"}
	for n, w := range fibs {
		if got := Fibonacci(uint64(n)).String(); got != w {
			t.Errorf("F(%d) = %s, want %s", n, got, w)
		}
	}
	if got := Fibonacci(100).String(); got != "354224848179261915075" {
		t.Errorf("F(100) = %s", got)
	}
}

func TestIsPrime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    string
		want bool
	}{
		{"0", false}, {"1", false}, {"2", true}, {"3", true}, {"4", false},
		{"97", true}, {"9409", false}, {"7919", true},
		{"561", false},                                    // Carmichael
		{"3215031751", false},                             // strong pseudoprime to bases 2, 3, 5, 7
		{"18446744073709551557", true},                    // largest 64-bit prime
		{"170141183460469231731687303715884105727", true}, // 2^127 - 1
		{"318665857834031151167461", false},               // strong pseudoprime to the first 12 prime bases
	}
	for _, tt := range tests {
		if got := mustUBig(t, tt.n).IsPrime(); got != tt.want {
			t.Errorf("IsPrime(%s) = %v, want %v", tt.n, got, tt.want)
		}
	}
	for n := int64(0); n < 3000; n++ {
		if got, want := NewUBigInt(uint64(n)).IsPrime(), big.NewInt(n).ProbablyPrime(20); got != want {
			t.Fatalf("IsPrime(%d) = %v", n, got)
		}
	}
}

func TestModPow(t *testing.T) {
	t.Parallel()
	got := NewUBigInt(4).ModPow(NewUBigInt(13), NewUBigInt(497))
	if got.CmpUint64(445) != 0 {
		t.Errorf("4^13 mod 497 = %s, want 445", got)
	}
	if !NewUBigInt(5).ModPow(NewUBigInt(3), NewUBigInt(1)).IsZero() {
		t.Error("x^e mod 1 should be 0")
	}
}

func TestNativeConversions(t *testing.T) {
	t.Parallel()
	x := mustUBig(t, "18446744073709551615")
	if v, err := x.Uint64(); err != nil || v != 1<<64-1 {
		t.Errorf("Uint64 = %d, %v", v, err)
	}
	_, err := x.AddUint32(1).Uint64()
	var nre apperrors.NotInRangeError
	if !errors.As(err, &nre) || nre.Value != "18446744073709551616" {
		t.Errorf("expected NotInRangeError, got %v", err)
	}
	if _, err := NewUBigInt(1 << 32).Uint32(); !errors.As(err, &nre) {
		t.Errorf("Uint32 overflow: %v", err)
	}
}

func TestSetAndClone(t *testing.T) {
	t.Parallel()
	x := NewUBigInt(42)
	y := x.Clone()
	y.MulAssign(NewUBigInt(2))
	if x.CmpUint64(42) != 0 || y.CmpUint64(84) != 0 {
		t.Errorf("Clone shares storage: x=%s y=%s", x, y)
	}
	z := new(UBigInt).Set(y)
	z.SubAssign(NewUBigInt(84))
	if !z.IsZero() || y.CmpUint64(84) != 0 {
		t.Errorf("Set shares storage: y=%s z=%s", y, z)
	}
}

func TestFloat64(t *testing.T) {
	t.Parallel()
	if f := NewUBigInt(1 << 53).Float64(); f != 1<<53 {
		t.Errorf("Float64(2^53) = %v", f)
	}
	if f := UBigIntFromUint32(10).Pow(30).Float64(); f < 0.999999e30 || f > 1.000001e30 {
		t.Errorf("Float64(10^30) = %v", f)
	}
}
