package bigint

import (
	"math/rand"
	"testing"
)

func TestSetKaratsubaThreshold(t *testing.T) {
	prev := SetKaratsubaThreshold(16)
	defer SetKaratsubaThreshold(prev)

	if got := KaratsubaThreshold(); got != 16 {
		t.Fatalf("KaratsubaThreshold() = %d, want 16", got)
	}
	if old := SetKaratsubaThreshold(1); old != 16 || KaratsubaThreshold() != MinKaratsubaThreshold {
		t.Errorf("small values should clamp to %d, got %d", MinKaratsubaThreshold, KaratsubaThreshold())
	}
	SetKaratsubaThreshold(0)
	if KaratsubaThreshold() != DefaultKaratsubaThreshold {
		t.Errorf("zero should restore the default, got %d", KaratsubaThreshold())
	}
}

// TestMulStraddlesThreshold multiplies operands just below, at and above
// several thresholds and compares the two algorithms directly.
func TestMulStraddlesThreshold(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(5))
	for _, threshold := range []int{4, 5, 8, 13, 32} {
		for _, la := range []int{threshold - 1, threshold, threshold + 1, 2 * threshold, 3*threshold + 1} {
			for _, lb := range []int{1, threshold - 1, threshold, 2*threshold + 3} {
				x, y := randNat(rng, la), randNat(rng, lb)
				if cmpNat(mulWithThreshold(x, y, threshold), mulSchoolbook(x, y)) != 0 {
					t.Fatalf("threshold %d: %d x %d limbs disagree", threshold, la, lb)
				}
			}
		}
	}
}

func TestMulWithThreshold(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(9))
	x, y := UBigIntFromLimbs(randNat(rng, 70)), UBigIntFromLimbs(randNat(rng, 65))
	want := x.Mul(y)
	for _, threshold := range []int{0, 4, 16, 64, 128} {
		if MulWithThreshold(x, y, threshold).Cmp(want) != 0 {
			t.Errorf("threshold %d: product differs", threshold)
		}
	}
}

func TestMulSaturatedLimbs(t *testing.T) {
	t.Parallel()
	x := make(nat, 64)
	for i := range x {
		x[i] = 0xffffffff
	}
	// (B^64 - 1)^2 = B^128 - 2*B^64 + 1
	got := mulKaratsuba(x, x, 4)
	if got[0] != 1 || got[64] != 0xfffffffe || got[127] != 0xffffffff {
		t.Errorf("unexpected limbs: [0]=%x [64]=%x [127]=%x", got[0], got[64], got[127])
	}
	if cmpNat(got, mulSchoolbook(x, x)) != 0 {
		t.Error("Karatsuba and schoolbook disagree on saturated limbs")
	}
}

func BenchmarkMul(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x, y := randNat(rng, 512), randNat(rng, 512)
	b.Run("schoolbook", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mulSchoolbook(x, y)
		}
	})
	b.Run("karatsuba", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mulKaratsuba(x, y, DefaultKaratsubaThreshold)
		}
	})
}
