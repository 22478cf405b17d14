package apperrors

import (
	"errors"
	"fmt"
	"strconv"
)

// Recoverable parse and conversion failures reported by the numeric packages.
var (
	// ErrNoData is returned when a literal is empty.
	ErrNoData = errors.New("no data")
	// ErrUnexpectedEnd is returned when a literal stops where digits are required,
	// such as after a base prefix, a decimal point or an exponent marker.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrInfinity is returned when +Inf is presented where a finite value is required.
	ErrInfinity = errors.New("value is +Inf")
	// ErrNegInfinity is returned when -Inf is presented where a finite value is required.
	ErrNegInfinity = errors.New("value is -Inf")
	// ErrNotANumber is returned when NaN is presented where a finite value is required.
	ErrNotANumber = errors.New("value is NaN")
	// ErrZeroDivisor is returned when a fraction literal has a zero denominator.
	ErrZeroDivisor = errors.New("fraction literal has a zero denominator")
)

// InvalidCharError reports an unexpected character in a numeric literal.
type InvalidCharError struct {
	// Char is the offending character.
	Char rune
	// Pos is the byte offset of Char in the input.
	Pos int
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

// NotInRangeError reports a value that cannot be represented in the target
// range, either a native integer or float type or the domain of a function.
type NotInRangeError struct {
	// Min and Max describe the permitted range in human-readable form.
	Min, Max string
	// Value is the offending value in human-readable form.
	Value string
}

func (e NotInRangeError) Error() string {
	return fmt.Sprintf("value %s not in range [%s, %s]", e.Value, e.Min, e.Max)
}

// NewNotInRange builds a NotInRangeError from any printable bounds and value.
func NewNotInRange(min, max, value any) error {
	return NotInRangeError{Min: fmt.Sprint(min), Max: fmt.Sprint(max), Value: fmt.Sprint(value)}
}

// ConversionError passes through a native integer conversion failure.
type ConversionError struct {
	Cause *strconv.NumError
}

func (e ConversionError) Error() string { return "conversion failed: " + e.Cause.Error() }

// Unwrap exposes the strconv error, and through it strconv.ErrRange or strconv.ErrSyntax.
func (e ConversionError) Unwrap() error { return e.Cause }

// WrapConversion converts a strconv failure into a ConversionError. Other
// errors are returned unchanged.
func WrapConversion(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return ConversionError{Cause: numErr}
	}
	return err
}

// PreconditionError is the panic value used for caller programming errors in
// the numeric core. It is never returned as an error.
type PreconditionError struct {
	// Op names the violated precondition.
	Op string
}

func (e PreconditionError) Error() string { return "precondition violated: " + e.Op }

// Panic values raised by the numeric core.
var (
	ErrDivisionByZero  = PreconditionError{Op: "division by zero"}
	ErrSubUnderflow    = PreconditionError{Op: "unsigned subtraction underflow"}
	ErrZeroReciprocal  = PreconditionError{Op: "reciprocal of zero"}
	ErrGcdZeroZero     = PreconditionError{Op: "gcd(0, 0)"}
	ErrZeroDenominator = PreconditionError{Op: "zero denominator"}
)
