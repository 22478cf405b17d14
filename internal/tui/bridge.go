package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so bridge goroutines need a pointer that survives
// the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress to the dashboard.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan and sends a ProgressMsg per update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEvaluators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			EvaluatorIndex:  ap.EvaluatorIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Iterations:      ap.Iterations,
			StableDigits:    ap.StableDigits,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter sends results to the dashboard instead of writing them.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the evaluation summary.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentVerification sends the 2k re-checks.
func (t *TUIResultPresenter) PresentVerification(checks []orchestration.Verification, _ io.Writer) {
	t.ref.Send(VerificationMsg{Checks: checks})
}

// PresentResult sends one successful evaluation.
func (t *TUIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Options: opts})
}

// FormatDuration formats d for display.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an ErrorMsg and returns the exit code for err.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
