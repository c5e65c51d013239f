// Package perr defines the error kinds the path-finder core raises.
//
// Four kinds only: Input, Precision, Guard, and Infeasible. Infeasible is
// reserved for callers — the core itself never returns it; lack of a
// viable path is an empty outcome, not an error.
package perr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind string

const (
	// KindInput marks invalid construction: negative amounts, empty
	// currencies, min > max, malformed numeric strings, hop/guard limits
	// below 1, tolerance outside [0, 1), currency mismatches, and
	// non-contiguous path hops.
	KindInput Kind = "input"

	// KindPrecision marks an arithmetic operation that could not honor
	// its scale contract: division by zero, a requested scale beyond the
	// precision ceiling, or a non-terminating decimal at the required
	// scale.
	KindPrecision Kind = "precision"

	// KindGuard marks a configured guard limit breach surfaced as an
	// error because the caller set ThrowOnGuardLimit.
	KindGuard Kind = "guard"

	// KindInfeasible is reserved for callers; the core never returns it.
	KindInfeasible Kind = "infeasible"
)

// Error is the error type every core package returns for expected
// rejections. It wraps an underlying cause when one exists.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err carries the given Kind.
func Is(err error, k Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == k
	}
	return false
}

func newErr(k Kind, op, msg string, cause error) *Error {
	return &Error{Kind: k, Op: op, Msg: msg, Err: cause}
}

// Input builds an input-kind error.
func Input(op, msg string) error { return newErr(KindInput, op, msg, nil) }

// Inputf builds an input-kind error with formatted detail.
func Inputf(op, format string, args ...any) error {
	return newErr(KindInput, op, fmt.Sprintf(format, args...), nil)
}

// Precision builds a precision-kind error.
func Precision(op, msg string) error { return newErr(KindPrecision, op, msg, nil) }

// Precisionf builds a precision-kind error with formatted detail.
func Precisionf(op, format string, args ...any) error {
	return newErr(KindPrecision, op, fmt.Sprintf(format, args...), nil)
}

// Guard builds a guard-kind error, raised only when the caller opted into
// ThrowOnGuardLimit.
func Guard(op, msg string) error { return newErr(KindGuard, op, msg, nil) }
