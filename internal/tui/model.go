package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Panel geometry.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 55
	// MetricsPanelHeight fits the memory line, RSS and two indicator rows.
	MetricsPanelHeight = 8
)

// layout splits the terminal into the log column on the left and the
// metrics and chart stack on the right.
type layout struct {
	width, height int
}

func (l layout) bodyHeight() int  { return max(l.height-headerHeight-footerHeight, minBodyHeight) }
func (l layout) logsWidth() int   { return l.width * LogsPanelWidthPercent / 100 }
func (l layout) rightWidth() int  { return l.width - l.logsWidth() }
func (l layout) metricsRows() int { return min(MetricsPanelHeight, l.bodyHeight()/2) }
func (l layout) chartRows() int   { return l.bodyHeight() - l.metricsRows() }

// Model is the dashboard. Each restart bumps generation so messages from a
// canceled run are dropped.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap
	layout

	parent     context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	evaluators []engine.Evaluator
	config     config.AppConfig
	ref        *programRef

	paused   bool
	done     bool
	exitCode int
}

// NewModel creates a dashboard that evaluates evaluators with cfg.
func NewModel(parent context.Context, evaluators []engine.Evaluator, cfg config.AppConfig, version string) Model {
	names := make([]string, len(evaluators))
	for i, ev := range evaluators {
		names[i] = ev.Name()
	}
	logs := NewLogsModel(names)
	logs.AddExecutionConfig(cfg)
	keymap := DefaultKeyMap()

	ctx, cancel := context.WithCancel(parent)
	return Model{
		header:     NewHeaderModel(version, headerTarget(cfg)),
		logs:       logs,
		metrics:    NewMetricsModel(),
		chart:      NewChartModel(),
		footer:     NewFooterModel(keymap),
		keymap:     keymap,
		parent:     parent,
		ctx:        ctx,
		cancel:     cancel,
		evaluators: evaluators,
		config:     cfg,
		ref:        &programRef{},
		exitCode:   apperrors.ExitSuccess,
	}
}

func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evaluateCmd(m.ref, m.ctx, m.evaluators, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case ProgressMsg:
		if m.paused {
			break
		}
		m.logs.AddProgressEntry(msg)
		m.chart.AddDataPoint(msg)
		m.metrics.UpdateProgress(msg.AverageProgress)

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results)

	case VerificationMsg:
		m.logs.AddVerification(msg.Checks)

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		if msg.Result.Result != nil {
			return m, computeIndicatorsCmd(msg)
		}

	case IndicatorsMsg:
		m.metrics.UpdateIndicators(msg.Indicators)

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		m.finish()

	case TickMsg:
		switch {
		case m.done:
			return m, nil
		case m.paused:
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateProcessRSS(msg.ProcessRSS)

	case CalculationCompleteMsg:
		if msg.Generation == m.generation {
			m.exitCode = msg.ExitCode
			m.finish()
			m.chart.SetDone(m.header.Elapsed())
		}

	case ContextCancelledMsg:
		if msg.Generation == m.generation {
			m.finish()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) finish() {
	m.done = true
	m.header.SetDone()
	m.footer.SetDone(true)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)

	case key.Matches(msg, m.keymap.Reset):
		m.restart()
		return m, m.startCmds()

	case key.Matches(msg, m.keymap.Up, m.keymap.Down, m.keymap.PageUp, m.keymap.PageDown):
		m.logs.Update(msg)
	}
	return m, nil
}

// restart cancels the current run and clears every panel.
func (m *Model) restart() {
	m.cancel()
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parent)

	m.header.Reset()
	m.logs.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(m.rightWidth(), m.metricsRows())
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.done, m.paused = false, false
	m.exitCode = apperrors.ExitSuccess
}

func (m *Model) resize() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsRows())
	m.chart.SetSize(m.rightWidth(), m.chartRows())
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.renderToHeight(lipgloss.Height(right)), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Run shows the dashboard until the user quits and returns the exit code
// of the last run.
func Run(ctx context.Context, evaluators []engine.Evaluator, cfg config.AppConfig, version string) int {
	applyTheme()

	model := NewModel(ctx, evaluators, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

func headerTarget(cfg config.AppConfig) string {
	target := cfg.Function
	if cfg.Argument != "" {
		target += "(" + cfg.Argument + ")"
	}
	return fmt.Sprintf("%s k=%d", target, cfg.Iterations)
}
