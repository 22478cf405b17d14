package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // approximations of one function disagree
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError is an invalid flag, environment value or flag combination.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError attributes a parse or domain failure to the function
// being evaluated.
type CalculationError struct {
	// Function is empty when the failure happened before dispatch.
	Function string
	Cause    error
}

func (e CalculationError) Error() string {
	if e.Function == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Function, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError is an evaluation that ran past its budget. It matches
// context.DeadlineExceeded under errors.Is.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Limit)
}

func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError is a rejected request parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted context message. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	var cfg ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfg):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
