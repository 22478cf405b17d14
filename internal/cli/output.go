// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Example: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Example: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the approximation.
	Quiet   bool
	Verbose bool
	Digits  int
	Exact   bool
}

func (c OutputConfig) digits() int {
	if c.Digits <= 0 {
		return engine.DefaultDigits
	}
	return c.Digits
}

// WriteResultToFile writes an evaluation result, with the full exact fraction,
// to config.OutputFile. Parent directories are created as needed.
func WriteResultToFile(r orchestration.EvaluationResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating directory %s", dir)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "creating output file")
	}
	defer file.Close()

	res := r.Result
	fmt.Fprintf(file, "# numcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Function: %s\n", Label(r))
	fmt.Fprintf(file, "# Iterations: %d\n", res.Iterations)
	fmt.Fprintf(file, "# Stable digits: %s\n", stableLabel(res.StableDigits))
	fmt.Fprintf(file, "# Duration: %s\n", r.Duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s ~= %s\n", Label(r), res.Value.ApproxString(config.digits()))
	fmt.Fprintf(file, "exact =\n%s\n", res.Value.String())

	if err := file.Close(); err != nil {
		return apperrors.WrapError(err, "writing output file")
	}
	return nil
}

// FormatQuietResult returns the approximation alone, for scripting.
func FormatQuietResult(r orchestration.EvaluationResult, digits int) string {
	return r.Result.Value.ApproxString(digits)
}

// DisplayQuietResult prints the approximation, and with exact the fraction
// on a second line.
func DisplayQuietResult(out io.Writer, r orchestration.EvaluationResult, config OutputConfig) {
	fmt.Fprintln(out, FormatQuietResult(r, config.digits()))
	if config.Exact {
		fmt.Fprintln(out, r.Result.Value.String())
	}
}

// DisplayResultWithConfig prints r according to config and saves it when an
// output file is set.
func DisplayResultWithConfig(out io.Writer, r orchestration.EvaluationResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, r, config)
	} else {
		DisplayResult(r, orchestration.PresentationOptions{
			Digits:  config.digits(),
			Exact:   config.Exact,
			Verbose: config.Verbose,
		}, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(r, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
