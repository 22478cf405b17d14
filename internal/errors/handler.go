package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when reporting errors.
// The CLI passes its theme; a nil provider prints plain text.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

type plainColors struct{}

func (plainColors) Yellow() string { return "" }
func (plainColors) Red() string    { return "" }
func (plainColors) Reset() string  { return "" }

// HandleCalculationError reports an evaluation failure to out and returns the
// matching exit code. A nil err returns ExitSuccess and prints nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = plainColors{}
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration)
	}

	code := ExitCodeFor(err)
	var rangeErr NotInRangeError
	switch {
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sEvaluation timed out%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case errors.As(err, &rangeErr):
		fmt.Fprintf(out, "%sArgument outside the function's domain: %v%s\n", colors.Red(), rangeErr, colors.Reset())
	default:
		fmt.Fprintf(out, "%sEvaluation failed%s: %v%s\n", colors.Red(), elapsed, err, colors.Reset())
	}
	return code
}
