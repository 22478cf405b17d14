package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/numcalc/internal/cli"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/logging"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
)

// runCalculate evaluates the selected functions, optionally verifies them at
// 2k, and prints or saves the results.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	evaluators := orchestration.GetEvaluatorsToRun(a.Config, a.Factory)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(evaluators, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	run := orchestration.NewRunConfig(a.Config)
	results := orchestration.ExecuteEvaluations(ctx, evaluators, run, reporter, progressOut)
	var checks []orchestration.Verification
	if a.Config.Verify {
		checks = orchestration.VerifyResults(ctx, evaluators, results, run, reporter, progressOut)
	}
	for _, r := range results {
		if r.Err != nil {
			a.Logger.Debug("evaluation failed", logging.String("fn", r.Name), logging.Err(r.Err))
		}
	}

	presentOut := out
	if a.Config.Quiet {
		presentOut = io.Discard
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeComparisonResults(results, checks, orchestration.NewPresentationOptions(a.Config), presenter, presenter, presentOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Digits:     a.Config.Digits,
		Exact:      a.Config.Exact,
	}
	if a.Config.Quiet {
		a.printQuiet(out, results, outputCfg)
	}
	if code := a.saveResult(out, results, outputCfg); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	if a.Config.Details && !a.Config.Quiet {
		after := mem.Snapshot()
		cli.DisplayMemoryStats(after, after.Sub(before), out)
	}
	return exitCode
}

// printQuiet prints one line per successful evaluation, prefixed with the
// function label when several ran. Failures go to ErrWriter.
func (a *Application) printQuiet(out io.Writer, results []orchestration.EvaluationResult, cfg cli.OutputConfig) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.ErrWriter, "%s: %v\n", cli.Label(r), r.Err)
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "%s\t", cli.Label(r))
		}
		cli.DisplayQuietResult(out, r, cfg)
	}
}

// saveResult writes the first successful result to the output file.
func (a *Application) saveResult(out io.Writer, results []orchestration.EvaluationResult, cfg cli.OutputConfig) int {
	if cfg.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := cli.WriteResultToFile(r, cfg); err != nil {
			a.Logger.Error("saving result", err, logging.String("path", cfg.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\nResult saved to: %s\n", cfg.OutputFile)
		}
		return apperrors.ExitSuccess
	}
	return apperrors.ExitSuccess
}
