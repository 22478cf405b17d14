package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/agbru/numcalc/internal/cli/mocks"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
	"github.com/agbru/numcalc/internal/ui"
)

func sampleResult(name, arg, value string, stable int) orchestration.EvaluationResult {
	r := orchestration.EvaluationResult{
		Name: name,
		Result: &engine.Result{
			Value:         rational.MustParse(value),
			Iterations:    32,
			Steps:         6,
			StableDigits:  stable,
			StepDurations: []time.Duration{time.Millisecond, 2 * time.Millisecond},
		},
		Duration: 3 * time.Millisecond,
	}
	if arg != "" {
		r.Argument = rational.MustParse(arg)
	}
	return r
}

func TestLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pi", Label(sampleResult("pi", "", "3", -1)))
	assert.Equal(t, "sqrt(9/4)", Label(sampleResult("sqrt", "9/4", "3/2", -1)))
}

func TestStableLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "exact", stableLabel(engine.ExactDigits))
	assert.Equal(t, "-", stableLabel(-1))
	assert.Equal(t, "12", stableLabel(12))
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(true)
	t.Cleanup(func() { ui.InitTheme(false) })

	tests := []struct {
		name        string
		result      orchestration.EvaluationResult
		opts        orchestration.PresentationOptions
		contains    []string
		notContains []string
	}{
		{
			name:        "approximation only",
			result:      sampleResult("sqrt", "9/4", "3/2", 20),
			opts:        orchestration.PresentationOptions{Digits: 20},
			contains:    []string{"sqrt(9/4) ≈ 1.5"},
			notContains: []string{"Exact value", "Convergence details"},
		},
		{
			name:     "exact fraction",
			result:   sampleResult("x", "", "22/7", 3),
			opts:     orchestration.PresentationOptions{Digits: 10, Exact: true},
			contains: []string{"x ≈ 3.14285714", "Exact value: 22", "/ 7"},
		},
		{
			name:        "exact integer has no denominator line",
			result:      sampleResult("x", "", "5", 3),
			opts:        orchestration.PresentationOptions{Exact: true},
			contains:    []string{"Exact value: 5"},
			notContains: []string{"/ 1"},
		},
		{
			name:     "verbose stable prefix",
			result:   sampleResult("x", "", "1/3", 4),
			opts:     orchestration.PresentationOptions{Digits: 20, Verbose: true},
			contains: []string{"Stable prefix (4 digits): 0.3333"},
		},
		{
			name:     "details",
			result:   sampleResult("e", "", "2718281828/1000000000", 9),
			opts:     orchestration.PresentationOptions{Details: true},
			contains: []string{"Convergence details", "Iterations (k):    32 in 6 steps", "Stable digits:     9", "Step timings:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.opts, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestDisplayResultTruncatesLongFractions(t *testing.T) {
	ui.InitTheme(true)
	t.Cleanup(func() { ui.InitTheme(false) })

	num := "1" + strings.Repeat("0", 150) + "1"
	r := sampleResult("big", "", num, -1)

	var buf bytes.Buffer
	DisplayResult(r, orchestration.PresentationOptions{Exact: true}, &buf)
	assert.NotContains(t, buf.String(), num)

	buf.Reset()
	DisplayResult(r, orchestration.PresentationOptions{Exact: true, Verbose: true}, &buf)
	assert.Contains(t, buf.String(), num)
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)

	originalNewSpinner := newSpinner
	t.Cleanup(func() { newSpinner = originalNewSpinner })
	newSpinner = func(options ...spinner.Option) Spinner { return mockS }

	var mu sync.Mutex
	var suffixes []string
	mockS.EXPECT().Start().Times(1)
	mockS.EXPECT().Stop().Times(1)
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s interface{}) {
		mu.Lock()
		suffixes = append(suffixes, s.(string))
		mu.Unlock()
	}).MinTimes(2)

	progressChan := make(chan progress.ProgressUpdate)
	go func() {
		progressChan <- progress.ProgressUpdate{EvaluatorIndex: 0, Value: 0.5, Iterations: 16, StableDigits: 7}
		close(progressChan)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	last := suffixes[len(suffixes)-1]
	assert.Contains(t, last, "k=16")
	assert.Contains(t, last, "stable=7")
}

func TestDisplayProgress_ZeroEvaluators(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
