package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the aliases was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one NUMCALC_* variable to the flags it stands in for.
// Unparsable values are ignored and the flag default stays.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringOverride(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = v }
}

var envOverrides = []envOverride{
	{"FN", []string{"fn"}, stringOverride(func(c *AppConfig) *string { return &c.Function })},
	{"X", []string{"x"}, stringOverride(func(c *AppConfig) *string { return &c.Argument })},
	{"K", []string{"k"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Iterations = uint(parsed)
		}
	}},
	{"DIGITS", []string{"digits"}, intOverride(func(c *AppConfig) *int { return &c.Digits })},
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}, intOverride(func(c *AppConfig) *int { return &c.KaratsubaThreshold })},
	{"CONCURRENCY", []string{"concurrency"}, intOverride(func(c *AppConfig) *int { return &c.Concurrency })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"OUTPUT", []string{"output", "o"}, stringOverride(func(c *AppConfig) *string { return &c.OutputFile })},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, stringOverride(func(c *AppConfig) *string { return &c.CalibrationProfile })},
	{"SERVE", []string{"serve"}, stringOverride(func(c *AppConfig) *string { return &c.Serve })},
	{"THEME", []string{"theme"}, stringOverride(func(c *AppConfig) *string { return &c.Theme })},
	{"EXACT", []string{"exact"}, boolOverride(func(c *AppConfig) *bool { return &c.Exact })},
	{"VERIFY", []string{"verify"}, boolOverride(func(c *AppConfig) *bool { return &c.Verify })},
	{"VERBOSE", []string{"v", "verbose"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"CALIBRATE", []string{"calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.Calibrate })},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.AutoCalibrate })},
	{"REPL", []string{"repl"}, boolOverride(func(c *AppConfig) *bool { return &c.REPL })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies NUMCALC_* values for flags not set on the
// command line: CLI flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
