package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/sysmon"
)

const tickInterval = 500 * time.Millisecond

// evaluateCmd runs the evaluations, and the 2k verification when enabled.
// Progress and results reach the model through the bridge.
func evaluateCmd(ref *programRef, ctx context.Context, evaluators []engine.Evaluator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		run := orchestration.NewRunConfig(cfg)
		results := orchestration.ExecuteEvaluations(ctx, evaluators, run, reporter, io.Discard)
		var checks []orchestration.Verification
		if cfg.Verify {
			checks = orchestration.VerifyResults(ctx, evaluators, results, run, reporter, io.Discard)
		}
		code := orchestration.AnalyzeComparisonResults(results, checks, orchestration.NewPresentationOptions(cfg), presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent, ProcessRSS: s.ProcessRSS}
	}
}

// computeIndicatorsCmd derives throughput indicators off the UI goroutine.
func computeIndicatorsCmd(msg FinalResultMsg) tea.Cmd {
	return func() tea.Msg {
		return IndicatorsMsg{Indicators: metrics.Compute(msg.Result.Result, msg.Result.Duration)}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
