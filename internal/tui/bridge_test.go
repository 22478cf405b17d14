package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
)

func runReporter(t *testing.T, numEvaluators int, updates ...progress.ProgressUpdate) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}}
	ch := make(chan progress.ProgressUpdate, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, numEvaluators, nil)
	wg.Wait()
}

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	runReporter(t, 1,
		progress.ProgressUpdate{EvaluatorIndex: 0, Value: 0.25, Iterations: 1, StableDigits: -1},
		progress.ProgressUpdate{EvaluatorIndex: 0, Value: 0.50, Iterations: 2, StableDigits: 1},
		progress.ProgressUpdate{EvaluatorIndex: 0, Value: 1.00, Iterations: 4, StableDigits: 3},
	)
}

func TestTUIProgressReporter_ZeroEvaluators(t *testing.T) {
	runReporter(t, 0, progress.ProgressUpdate{EvaluatorIndex: 0, Value: 0.5})
}

func TestTUIProgressReporter_MultipleEvaluators(t *testing.T) {
	runReporter(t, 2,
		progress.ProgressUpdate{EvaluatorIndex: 0, Value: 0.25},
		progress.ProgressUpdate{EvaluatorIndex: 1, Value: 0.50},
		progress.ProgressUpdate{EvaluatorIndex: 1, Value: 1.00},
	)
}

func TestTUIProgressReporter_EmptyChannel(t *testing.T) {
	runReporter(t, 1)
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressMsg{Value: 0.5})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{}
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Value: float64(i) / 100})
		}()
	}
	wg.Wait()
}

func TestTUIResultPresenter_NoProgram(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	r := orchestration.EvaluationResult{
		Name:     "sqrt",
		Argument: rational.NewRat(9, 4),
		Result:   &engine.Result{Value: rational.NewRat(3, 2), Iterations: 32, StableDigits: engine.ExactDigits},
		Duration: 100 * time.Millisecond,
	}
	presenter.PresentComparisonTable([]orchestration.EvaluationResult{r}, nil)
	presenter.PresentVerification([]orchestration.Verification{{Name: "sqrt"}}, nil)
	presenter.PresentResult(r, orchestration.PresentationOptions{Digits: 10}, nil)
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	for _, d := range []time.Duration{0, 500 * time.Microsecond, 42 * time.Millisecond, 3 * time.Minute} {
		if presenter.FormatDuration(d) == "" {
			t.Errorf("expected non-empty duration format for %v", d)
		}
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
		{"nil", nil, apperrors.ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
