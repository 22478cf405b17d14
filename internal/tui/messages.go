package tui

import (
	"time"

	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	EvaluatorIndex  int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	// Iterations and StableDigits describe the evaluator's latest step.
	Iterations   uint
	StableDigits int
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the summary of all evaluations.
type ComparisonResultsMsg struct {
	Results []orchestration.EvaluationResult
}

// VerificationMsg carries the 2k re-check results.
type VerificationMsg struct {
	Checks []orchestration.Verification
}

// FinalResultMsg carries one successful evaluation.
type FinalResultMsg struct {
	Result  orchestration.EvaluationResult
	Options orchestration.PresentationOptions
}

// IndicatorsMsg carries indicators computed off the UI goroutine.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a system-wide sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	ProcessRSS uint64
}

// CalculationCompleteMsg reports the end of a run of the given generation.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg reports cancellation of the given generation.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
