// Package config parses the command line and the NUMCALC_* environment into
// an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/numcalc/internal/bigint"
	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/rational"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NUMCALC_"

const (
	// DefaultFunction is evaluated when -fn is not given.
	DefaultFunction = "pi"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
	// MaxDigits bounds approximate output length.
	MaxDigits = 1_000_000
	// AllFunctions selects every registered function.
	AllFunctions = "all"
	// MaxExponent bounds the decimal exponent of an argument literal.
	MaxExponent = 100_000
	// MaxExpArgument bounds |x| for exp, whose cost grows with e^floor(x).
	MaxExpArgument = 1024
)

// CompletionShells lists the shells -completion accepts.
var CompletionShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig is the resolved application configuration.
type AppConfig struct {
	// Function is a function name, a comma-separated list, or "all".
	Function string
	// Argument is the literal x, empty for constants.
	Argument string
	// Iterations is the series iteration count k.
	Iterations uint
	// Digits is the maximum length of approximate output.
	Digits int
	// Exact prints the exact fraction as well as the approximation.
	Exact bool
	// Verify also evaluates each function at 2k and checks agreement.
	Verify bool
	// SingleStep skips the refinement schedule.
	SingleStep bool
	Timeout    time.Duration
	// KaratsubaThreshold is the limb count above which multiplication
	// recurses; 0 means resolve from the calibration profile or hardware.
	KaratsubaThreshold int
	// Concurrency bounds evaluations running at once; 0 means adaptive.
	Concurrency int

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	REPL bool
	TUI  bool
	// Serve is the HTTP listen address; empty disables the server.
	Serve string

	Quiet      bool
	Verbose    bool
	Details    bool
	NoColor    bool
	Theme      string
	OutputFile string
	Completion string
}

// ToEvaluationOptions converts the configuration to engine options.
func (c AppConfig) ToEvaluationOptions() engine.Options {
	return engine.Options{Iterations: c.Iterations, SingleStep: c.SingleStep}
}

// FunctionNames expands Function against the available names.
func (c AppConfig) FunctionNames(available []string) []string {
	if c.Function == AllFunctions {
		return slices.Clone(available)
	}
	var names []string
	for _, n := range strings.Split(c.Function, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ParseConfig parses args (without the program name). Flag errors, including
// -h, are returned as is; validation failures are ConfigErrors.
func ParseConfig(programName string, args []string, errorOutput io.Writer, availableFunctions []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	config := AppConfig{}

	fs.StringVar(&config.Function, "fn", DefaultFunction, fmt.Sprintf("Function(s) to evaluate: a name, a comma-separated list or %q (%s).", AllFunctions, strings.Join(availableFunctions, ", ")))
	fs.StringVar(&config.Argument, "x", "", "Argument literal: integer, decimal, fraction (a/b) or 0x/0o/0b integer.")
	fs.UintVar(&config.Iterations, "k", engine.DefaultIterations, "Series iteration count.")
	fs.IntVar(&config.Digits, "digits", engine.DefaultDigits, "Maximum length of approximate output.")
	fs.BoolVar(&config.Exact, "exact", false, "Also print the exact fraction.")
	fs.BoolVar(&config.Verify, "verify", false, "Re-evaluate at 2k and check the results agree.")
	fs.BoolVar(&config.SingleStep, "single-step", false, "Evaluate only at k, without refinement.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.IntVar(&config.KaratsubaThreshold, "karatsuba-threshold", 0, "Limb count above which Karatsuba multiplication is used (0 = auto).")
	fs.IntVar(&config.Concurrency, "concurrency", 0, "Maximum concurrent evaluations (0 = auto).")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark and store the Karatsuba threshold, then exit.")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration before evaluating.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/.numcalc_calibration.json).")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive REPL.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the convergence dashboard.")
	fs.StringVar(&config.Serve, "serve", "", "Serve the HTTP API on this address (e.g. :8080).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print full-length results and debug logs.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.Details, "details", false, "Print per-step timings and convergence details.")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", "", "Color theme (dark, light, amber, none).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)
	if fs.NArg() > 0 && !isFlagSet(fs, "x") {
		config.Argument = fs.Arg(0)
	}
	config.Function = strings.ToLower(strings.TrimSpace(config.Function))

	if err := config.Validate(availableFunctions); err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks semantic constraints and returns the first ConfigError.
func (c AppConfig) Validate(availableFunctions []string) error {
	if c.Completion != "" {
		if !slices.Contains(CompletionShells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q for -completion (want %s)", c.Completion, strings.Join(CompletionShells, ", "))
		}
		return nil
	}
	if c.Function != AllFunctions {
		names := c.FunctionNames(availableFunctions)
		if len(names) == 0 {
			return apperrors.NewConfigError("-fn must name at least one function")
		}
		for _, n := range names {
			if !slices.Contains(availableFunctions, n) {
				return apperrors.NewConfigError("unknown function %q (available: %s)", n, strings.Join(availableFunctions, ", "))
			}
		}
	}
	if c.Argument != "" {
		x, err := ParseArgument(c.Argument, MaxExponent)
		if err != nil {
			return apperrors.NewConfigError("invalid argument %q: %v", c.Argument, err)
		}
		for _, n := range c.FunctionNames(availableFunctions) {
			if err := CheckArgument(n, x, MaxExpArgument); err != nil {
				return apperrors.NewConfigError("invalid argument %q: %v", c.Argument, err)
			}
		}
	}
	if c.Iterations > engine.MaxIterations {
		return apperrors.NewConfigError("-k must be at most %d, got %d", engine.MaxIterations, c.Iterations)
	}
	if c.Digits < 1 || c.Digits > MaxDigits {
		return apperrors.NewConfigError("-digits must be between 1 and %d, got %d", MaxDigits, c.Digits)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	if c.KaratsubaThreshold != 0 && c.KaratsubaThreshold < bigint.MinKaratsubaThreshold {
		return apperrors.NewConfigError("-karatsuba-threshold must be 0 or at least %d, got %d", bigint.MinKaratsubaThreshold, c.KaratsubaThreshold)
	}
	if c.Concurrency < 0 {
		return apperrors.NewConfigError("-concurrency must not be negative, got %d", c.Concurrency)
	}
	modes := 0
	for _, on := range []bool{c.REPL, c.TUI, c.Serve != "", c.Calibrate} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-repl, -tui, -serve and -calibrate are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	return nil
}

// ParseArgument reads an argument literal with its decimal exponent bounded
// by maxExp.
func ParseArgument(s string, maxExp int) (*rational.Rat, error) {
	return rational.ParseFractionLimited(s, maxExp)
}

// CheckArgument rejects arguments whose first evaluation step would run
// unbounded. exp(x) multiplies by e^floor(x), so |x| must not exceed
// maxExpArg.
func CheckArgument(function string, x *rational.Rat, maxExpArg int64) error {
	if function != "exp" || x == nil {
		return nil
	}
	if x.Abs().CmpInt64(maxExpArg) > 0 {
		return apperrors.ValidationError{Field: "x", Message: fmt.Sprintf("|x| must be at most %d for exp", maxExpArg)}
	}
	return nil
}
