package metrics

import (
	"fmt"
	"time"

	"github.com/agbru/numcalc/internal/engine"
)

// Indicators summarise one finished evaluation.
type Indicators struct {
	Iterations uint
	Steps      int
	// StableDigits is engine.ExactDigits when the last two steps agreed exactly.
	StableDigits int
	Converged    bool
	NumLimbs     int
	DenLimbs     int
	// DigitsPerSecond is stable digits per second of wall time.
	DigitsPerSecond float64
	// TermsPerSecond is series iterations per second over the whole schedule.
	TermsPerSecond float64
	// LastStepShare is the fraction of the time spent in the final step.
	LastStepShare float64
}

// Compute derives indicators from a result and the evaluation wall time.
func Compute(res *engine.Result, elapsed time.Duration) *Indicators {
	ind := &Indicators{
		Iterations:   res.Iterations,
		Steps:        res.Steps,
		StableDigits: res.StableDigits,
		Converged:    res.Converged,
		NumLimbs:     res.Value.Num().Magnitude().Len(),
		DenLimbs:     res.Value.Den().Magnitude().Len(),
	}
	secs := elapsed.Seconds()
	if secs <= 0 {
		return ind
	}
	var terms uint
	k := uint(1)
	for i := 0; i < res.Steps; i++ {
		if i == res.Steps-1 {
			k = res.Iterations
		}
		terms += k
		k *= 2
	}
	ind.TermsPerSecond = float64(terms) / secs
	if res.StableDigits > 0 && !res.Converged {
		ind.DigitsPerSecond = float64(res.StableDigits) / secs
	}
	if n := len(res.StepDurations); n > 0 {
		ind.LastStepShare = res.StepDurations[n-1].Seconds() / secs
	}
	return ind
}

// TotalLimbs returns the limbs held by the result.
func (i *Indicators) TotalLimbs() int { return i.NumLimbs + i.DenLimbs }

// StableDigitsString renders the stable digit count, "exact" for identical
// successive steps and "n/a" when unknown.
func (i *Indicators) StableDigitsString() string {
	switch {
	case i.Converged:
		return "exact"
	case i.StableDigits < 0:
		return "n/a"
	default:
		return fmt.Sprintf("%d", i.StableDigits)
	}
}

// FormatRate renders a per-second rate with a K/M suffix.
func FormatRate(v float64, unit string) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2fM %s/s", v/1e6, unit)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK %s/s", v/1e3, unit)
	default:
		return fmt.Sprintf("%.1f %s/s", v, unit)
	}
}
