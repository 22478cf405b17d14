package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/orchestration"
)

// maxLogEntries bounds the log history.
const maxLogEntries = 500

// LogsModel is the scrollable event log.
type LogsModel struct {
	names    []string
	entries  []string
	lastStep map[int]uint
	viewport viewport.Model
	width    int
	height   int
}

// NewLogsModel creates a log for the named evaluators.
func NewLogsModel(names []string) LogsModel {
	return LogsModel{
		names:    names,
		lastStep: make(map[int]uint),
		viewport: viewport.New(0, 0),
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width, l.height = w, h
	l.viewport.Width = max(w-4, 0)
	l.viewport.Height = max(h-3, 0)
	l.refresh()
}

// Reset clears the log, keeping the evaluator names.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.lastStep = make(map[int]uint)
	l.refresh()
}

// Update scrolls the log.
func (l *LogsModel) Update(msg tea.Msg) {
	l.viewport, _ = l.viewport.Update(msg)
}

func (l *LogsModel) name(index int) string {
	if index >= 0 && index < len(l.names) {
		return l.names[index]
	}
	return fmt.Sprintf("#%d", index)
}

func (l *LogsModel) add(name, text string) {
	stamp := logTimeStyle.Render(time.Now().Format("15:04:05"))
	entry := stamp + " " + logFunctionStyle.Render(fmt.Sprintf("%-6s", name)) + " " + text
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	l.refresh()
}

func (l *LogsModel) refresh() {
	atBottom := l.viewport.AtBottom()
	l.viewport.SetContent(strings.Join(l.entries, "\n"))
	if atBottom || len(l.entries) <= l.viewport.Height {
		l.viewport.GotoBottom()
	}
}

// AddExecutionConfig logs the run parameters.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	arg := cfg.Argument
	if arg == "" {
		arg = "-"
	}
	l.add("config", fmt.Sprintf("fn=%s x=%s k=%d verify=%t", cfg.Function, arg, cfg.Iterations, cfg.Verify))
}

// AddProgressEntry logs a step once per iteration count and evaluator.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	if msg.Iterations == 0 || l.lastStep[msg.EvaluatorIndex] == msg.Iterations {
		return
	}
	l.lastStep[msg.EvaluatorIndex] = msg.Iterations
	l.add(l.name(msg.EvaluatorIndex), logProgressStyle.Render(
		fmt.Sprintf("k=%-6d stable=%-6s %5.1f%%", msg.Iterations, stableText(msg.StableDigits), msg.Value*100)))
}

// AddResults logs the outcome of every evaluation.
func (l *LogsModel) AddResults(results []orchestration.EvaluationResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(r.Name, logErrorStyle.Render("failed: "+r.Err.Error()))
			continue
		}
		l.add(r.Name, logSuccessStyle.Render(fmt.Sprintf("done in %s, k=%d, %s stable digits",
			format.FormatExecutionDuration(r.Duration), r.Result.Iterations, stableText(r.Result.StableDigits))))
	}
}

// AddVerification logs the 2k re-checks.
func (l *LogsModel) AddVerification(checks []orchestration.Verification) {
	for _, c := range checks {
		switch {
		case c.Skipped:
			l.add(c.Name, logErrorStyle.Render(fmt.Sprintf("verification skipped: %v", c.Err)))
		case c.Mismatch():
			l.add(c.Name, logErrorStyle.Render(fmt.Sprintf("mismatch: claimed %s digits, k=%d agrees on %s",
				stableText(c.Claimed), c.CheckIterations, stableText(c.Agreed))))
		default:
			l.add(c.Name, logSuccessStyle.Render(fmt.Sprintf("verified at k=%d: %s digits agree",
				c.CheckIterations, stableText(c.Agreed))))
		}
	}
}

// AddFinalResult logs the approximation of one result.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	digits := msg.Options.Digits
	if digits <= 0 {
		digits = engine.DefaultDigits
	}
	l.add(msg.Result.Name, logSuccessStyle.Render(label(msg.Result)+" ≈ "+msg.Result.Result.Value.ApproxString(digits)))
}

// AddError logs a run failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add("error", logErrorStyle.Render(fmt.Sprintf("%v (after %s)", msg.Err, format.FormatExecutionDuration(msg.Duration))))
}

func (l LogsModel) renderToHeight(h int) string {
	l.viewport.Height = max(h-3, 0)
	title := titleStyle.Render("Log")
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(h-2, 0)).
		Render(title + "\n" + l.viewport.View())
}

func label(r orchestration.EvaluationResult) string {
	if r.Argument == nil {
		return r.Name
	}
	return r.Name + "(" + r.Argument.String() + ")"
}

func stableText(digits int) string {
	switch {
	case digits == engine.ExactDigits:
		return "exact"
	case digits < 0:
		return "-"
	default:
		return fmt.Sprint(digits)
	}
}
