// Package apperrors defines the error taxonomy shared by the numeric core and
// the application layers.
//
// The numeric packages (bigint, rational, series) return the recoverable
// parse/conversion errors declared in numeric.go: sentinel values such as
// ErrNoData that compare with errors.Is, and struct types such as
// InvalidCharError and NotInRangeError that are matched with errors.As.
// Caller programming errors (division by zero, unsigned underflow, reciprocal
// of zero, gcd(0, 0)) are not part of that taxonomy; they panic with a
// PreconditionError.
//
// The application layer uses ConfigError, CalculationError, TimeoutError and
// ValidationError together with the process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
