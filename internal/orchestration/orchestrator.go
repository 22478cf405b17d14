package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
)

// ProgressBufferMultiplier sizes the progress channel per evaluator so slow
// displays rarely cause dropped updates.
const ProgressBufferMultiplier = 5

var tracer = otel.Tracer("github.com/agbru/numcalc/internal/orchestration")

// RunConfig parameterises one batch of evaluations.
type RunConfig struct {
	// Argument is passed to every evaluator of arity 1; constants get nil.
	Argument *rational.Rat
	Options  engine.Options
	// Concurrency bounds evaluations in flight; 0 or less runs all at once.
	Concurrency int
	// Metrics, when set, records each outcome.
	Metrics *metrics.EvaluationCollector
}

// NewRunConfig derives a RunConfig from the application configuration.
// The argument is assumed to have passed config validation.
func NewRunConfig(cfg config.AppConfig) RunConfig {
	run := RunConfig{Options: cfg.ToEvaluationOptions(), Concurrency: cfg.Concurrency}
	if cfg.Argument != "" {
		run.Argument, _ = config.ParseArgument(cfg.Argument, config.MaxExponent)
	}
	return run
}

// NewPresentationOptions extracts display settings from cfg.
func NewPresentationOptions(cfg config.AppConfig) PresentationOptions {
	return PresentationOptions{Digits: cfg.Digits, Exact: cfg.Exact, Verbose: cfg.Verbose, Details: cfg.Details}
}

// ExecuteEvaluations runs every evaluator and returns one result per
// evaluator in input order. Individual failures are recorded in the result
// and do not cancel the others.
func ExecuteEvaluations(ctx context.Context, evaluators []engine.Evaluator, run RunConfig, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	var g errgroup.Group
	if run.Concurrency > 0 {
		g.SetLimit(run.Concurrency)
	}
	results := make([]EvaluationResult, len(evaluators))
	progressChan := make(chan progress.ProgressUpdate, len(evaluators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(evaluators), out)

	for i, ev := range evaluators {
		g.Go(func() error {
			results[i] = evaluateOne(ctx, ev, i, run, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func evaluateOne(ctx context.Context, ev engine.Evaluator, index int, run RunConfig, progressChan chan<- progress.ProgressUpdate) EvaluationResult {
	ctx, span := tracer.Start(ctx, "evaluate", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String("numcalc.function", ev.Name()),
		attribute.Int("numcalc.iterations", int(run.Options.Iterations)),
	)

	var x *rational.Rat
	if ev.Arity() > 0 {
		x = run.Argument
	}
	start := time.Now()
	res, err := ev.Evaluate(ctx, progressChan, index, x, run.Options)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("numcalc.stable_digits", res.StableDigits))
	}
	if run.Metrics != nil {
		limbs := 0
		stable := -1
		if res != nil {
			limbs = res.Value.Num().Magnitude().Len() + res.Value.Den().Magnitude().Len()
			stable = res.StableDigits
		}
		run.Metrics.Observe(ev.Name(), elapsed, limbs, stable, err)
	}
	return EvaluationResult{Name: ev.Name(), Argument: x, Result: res, Duration: elapsed, Err: err}
}

// AnalyzeComparisonResults prints the summary table and the verification
// outcome, then every successful result. The exit code is ExitErrorMismatch
// if any verification failed, the first error's code if nothing succeeded,
// and ExitSuccess otherwise.
func AnalyzeComparisonResults(results []EvaluationResult, checks []Verification, opts PresentationOptions, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Name < results[j].Name
	})

	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No evaluation completed.\n")
		return errorHandler.HandleError(firstError, 0, out)
	}

	if len(checks) > 0 {
		presenter.PresentVerification(checks, out)
		for _, c := range checks {
			if c.Mismatch() {
				fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s disagrees with its own re-evaluation at k=%d.\n", c.Name, c.CheckIterations)
				return apperrors.ExitErrorMismatch
			}
		}
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial. %d of %d evaluations completed.\n", successCount, len(results))
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success.\n")
	}
	for _, r := range results {
		if r.Err == nil {
			presenter.PresentResult(r, opts, out)
		}
	}
	return apperrors.ExitSuccess
}
