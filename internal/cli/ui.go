//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/ui"
)

const (
	// TruncationLimit is the length above which numerators and denominators
	// are elided in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of an elided number.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and progress bar refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed. A single evaluator also shows its current k and
// stable digit count.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numEvaluators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	var last orchestration.AggregatedProgress
	last.StableDigits = -1
	render := func() {
		suffix := " " + format.FormatProgressBarWithETA(agg.Average(), agg.ETA(), ProgressBarWidth)
		if !agg.MultiEvaluator() && last.Iterations > 0 {
			suffix += fmt.Sprintf(" k=%d stable=%s", last.Iterations, stableLabel(last.StableDigits))
		}
		s.UpdateSuffix(suffix)
	}
	render()
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render()
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			render()
		}
	}
}

func stableLabel(digits int) string {
	switch {
	case digits == engine.ExactDigits:
		return "exact"
	case digits < 0:
		return "-"
	default:
		return fmt.Sprint(digits)
	}
}

// Label renders "name" for constants and "name(x)" for functions.
func Label(r orchestration.EvaluationResult) string {
	if r.Argument == nil {
		return r.Name
	}
	return r.Name + "(" + r.Argument.String() + ")"
}

// DisplayResult prints one evaluation: the approximation, the stable prefix
// when verbose, the exact fraction when requested and, with details, the
// convergence statistics.
func DisplayResult(r orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	res := r.Result
	digits := opts.Digits
	if digits <= 0 {
		digits = engine.DefaultDigits
	}
	fmt.Fprintf(out, "\n%s\n", ui.HeaderBox(Label(r)))
	fmt.Fprintf(out, "%s ≈ %s\n", Label(r), ui.Paint(ui.ColorGreen(), res.Value.ApproxString(digits)))

	if opts.Verbose && res.StableDigits > 0 && !res.Converged {
		fmt.Fprintf(out, "Stable prefix (%d digits): %s\n", res.StableDigits, ui.Paint(ui.ColorCyan(), res.Value.DecimalString(res.StableDigits)))
	}
	if opts.Exact {
		num, den := res.Value.Num().String(), res.Value.Den().String()
		if !opts.Verbose {
			num = format.TruncateDigits(num, TruncationLimit, DisplayEdges)
			den = format.TruncateDigits(den, TruncationLimit, DisplayEdges)
		}
		fmt.Fprintf(out, "Exact value: %s\n", ui.Paint(ui.ColorCyan(), num))
		if den != "1" {
			fmt.Fprintf(out, "             / %s\n", ui.Paint(ui.ColorCyan(), den))
		}
	}
	if !opts.Details {
		return
	}

	ind := metrics.Compute(res, r.Duration)
	fmt.Fprintf(out, "\n%sConvergence details%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Evaluation time:   %s\n", ui.Paint(ui.ColorYellow(), format.FormatExecutionDuration(r.Duration)))
	fmt.Fprintf(out, "  Iterations (k):    %d in %d steps\n", ind.Iterations, ind.Steps)
	fmt.Fprintf(out, "  Stable digits:     %s\n", ind.StableDigitsString())
	fmt.Fprintf(out, "  Result size:       %d + %d limbs (%s)\n", ind.NumLimbs, ind.DenLimbs, format.FormatBytes(uint64(4*ind.TotalLimbs())))
	fmt.Fprintf(out, "  Series throughput: %s\n", metrics.FormatRate(ind.TermsPerSecond, "terms"))
	if ind.DigitsPerSecond > 0 {
		fmt.Fprintf(out, "  Digit rate:        %s\n", metrics.FormatRate(ind.DigitsPerSecond, "digits"))
	}
	if len(res.StepDurations) > 1 {
		steps := make([]string, len(res.StepDurations))
		for i, d := range res.StepDurations {
			steps[i] = format.FormatExecutionDuration(d)
		}
		fmt.Fprintf(out, "  Step timings:      %s\n", strings.Join(steps, ", "))
	}
}
