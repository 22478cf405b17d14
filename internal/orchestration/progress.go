package orchestration

import (
	"time"

	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/progress"
)

// ProgressAggregator folds the updates of concurrent evaluators into one
// average, an ETA and the latest stable-digit estimate per evaluator. The
// CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	eta    *format.ETATracker
	stable []int
}

// NewProgressAggregator returns nil for n <= 0.
func NewProgressAggregator(n int) *ProgressAggregator {
	if n <= 0 {
		return nil
	}
	stable := make([]int, n)
	for i := range stable {
		stable[i] = -1
	}
	return &ProgressAggregator{eta: format.NewETATracker(n), stable: stable}
}

// AggregatedProgress is the view after folding in one update.
type AggregatedProgress struct {
	EvaluatorIndex int
	// Value is that evaluator's own fraction.
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Iterations      uint
	// StableDigits is the evaluator's latest estimate, -1 if none yet.
	StableDigits int
}

// Update folds in u. An update without an estimate keeps the previous one.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.eta.Set(u.EvaluatorIndex, u.Value)
	stable := -1
	if i := u.EvaluatorIndex; i >= 0 && i < len(a.stable) {
		if u.StableDigits >= 0 {
			a.stable[i] = u.StableDigits
		}
		stable = a.stable[i]
	}
	return AggregatedProgress{
		EvaluatorIndex:  u.EvaluatorIndex,
		Value:           u.Value,
		AverageProgress: avg,
		ETA:             eta,
		Iterations:      u.Iterations,
		StableDigits:    stable,
	}
}

func (a *ProgressAggregator) Average() float64     { return a.eta.Average() }
func (a *ProgressAggregator) ETA() time.Duration   { return a.eta.ETA() }
func (a *ProgressAggregator) Evaluators() int      { return len(a.stable) }
func (a *ProgressAggregator) MultiEvaluator() bool { return len(a.stable) > 1 }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(ch <-chan progress.ProgressUpdate) {
	for range ch {
	}
}
