package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	failed := orchestration.EvaluationResult{Name: "ln", Err: errors.New("boom"), Duration: time.Millisecond}
	results := []orchestration.EvaluationResult{
		sampleResult("sqrt", "9/4", "3/2", 12),
		failed,
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	assert.Contains(t, out, "Evaluation Summary")
	assert.Contains(t, out, "sqrt(9/4)")
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Failure (boom)")
}

func TestPresentVerification(t *testing.T) {
	t.Parallel()
	checks := []orchestration.Verification{
		{Name: "e", Iterations: 32, CheckIterations: 64, Claimed: 30, Agreed: 30},
		{Name: "pi", Iterations: 32, CheckIterations: 64, Claimed: 30, Agreed: 3},
		{Name: "ln", Skipped: true, Err: context.Canceled},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentVerification(checks, &buf)
	out := buf.String()

	assert.Contains(t, out, "k=32 and k=64 agree on 30 digits")
	assert.Contains(t, out, "claimed 30 digits, k=64 agrees on 3")
	assert.Contains(t, out, "skipped")
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}
	assert.Equal(t, "< 1µs", p.FormatDuration(0))
	assert.NotEmpty(t, p.FormatDuration(1500*time.Millisecond))
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(context.DeadlineExceeded, time.Second, &buf)
	assert.Equal(t, apperrors.ExitErrorTimeout, code)
	assert.NotEmpty(t, buf.String())
}

func TestPadRight(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab   ", padRight("ab", 3))
	assert.Equal(t, "ab", padRight("ab", 0))
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048}, metrics.MemoryDelta{Allocated: 1 << 20, GCCycles: 3, PauseNs: 1_500_000}, &buf)
	out := buf.String()
	assert.Contains(t, out, "GC cycles:       3")
	assert.Contains(t, out, "1.50ms")
}
