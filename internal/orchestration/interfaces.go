package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
)

// EvaluationResult is the outcome of one function evaluation. It is the
// shared domain type between orchestration and presentation.
type EvaluationResult struct {
	// Name is the function name, e.g. "atan".
	Name string
	// Argument is x, or nil for constants.
	Argument *rational.Rat
	// Result is nil if an error occurred.
	Result   *engine.Result
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how results are presented.
type PresentationOptions struct {
	// Digits bounds the approximate output length.
	Digits  int
	Exact   bool
	Verbose bool
	Details bool
}

// ProgressReporter displays progress while evaluations run. DisplayProgress
// runs in its own goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	f(wg, progressChan, numEvaluators, out)
}

// NullProgressReporter drains the channel without output.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable prints one row per evaluation.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)
	// PresentVerification prints the outcome of the higher-k re-check.
	PresentVerification(checks []Verification, out io.Writer)
	// PresentResult prints one successful evaluation in full.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports an evaluation error and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
