package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/numcalc/internal/bigint"
	"github.com/agbru/numcalc/internal/calibration"
	"github.com/agbru/numcalc/internal/cli"
	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/logging"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/server"
	"github.com/agbru/numcalc/internal/tui"
	"github.com/agbru/numcalc/internal/ui"
)

// Application is a configured numcalc instance.
type Application struct {
	Config    config.AppConfig
	Factory   engine.Factory
	ErrWriter io.Writer
	Logger    logging.Logger
	// In feeds the REPL; nil means standard input.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the function registry.
func WithFactory(f engine.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the REPL input.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger sets the logger; the default is a console logger on ErrWriter.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args (program name first) and resolves the Karatsuba
// threshold from flags, the environment, the calibration profile or the
// hardware, in that order.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = engine.NewDefaultFactory()
	}

	programName := "numcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = withProfile
	}
	app.Config = config.ApplyAdaptiveThresholds(cfg)

	if app.Logger == nil {
		level := zerolog.InfoLevel
		if app.Config.Verbose {
			level = zerolog.DebugLevel
		}
		app.Logger = logging.NewConsoleLogger(errWriter, "numcalc", level)
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if a.Config.Theme != "" && !a.Config.NoColor && !ui.SetTheme(a.Config.Theme) {
		a.Logger.Info("unknown theme, keeping default", logging.String("theme", a.Config.Theme))
	}

	if a.Config.Calibrate {
		return calibration.RunCalibration(ctx, out, a.Config.CalibrationProfile, a.Logger)
	}

	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Logger); ok {
			a.Config = updated
		}
	}
	bigint.SetKaratsubaThreshold(a.Config.KaratsubaThreshold)
	a.Logger.Debug("configuration resolved",
		logging.String("fn", a.Config.Function),
		logging.Int("karatsuba_threshold", bigint.KaratsubaThreshold()),
		logging.Int("concurrency", a.Config.Concurrency))

	switch {
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Serve != "":
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Iterations: a.Config.Iterations,
		Digits:     a.Config.Digits,
		Exact:      a.Config.Exact,
		Timeout:    a.Config.Timeout,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, orchestration.GetEvaluatorsToRun(a.Config, a.Factory), a.Config, Version)
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(a.Factory, a.Config, a.Logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		a.Logger.Error("server stopped", err, logging.String("addr", a.Config.Serve))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or -help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
