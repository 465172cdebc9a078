package quadbench

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by constructors and estimators.
var (
	// ErrDimensionMismatch indicates lower and upper bound sequences of
	// different lengths.
	ErrDimensionMismatch = errors.New("quadbench: lower and upper bounds differ in length")

	// ErrEmptyDomain indicates a lower bound equal to or exceeding its
	// paired upper bound.
	ErrEmptyDomain = errors.New("quadbench: lower bound must be strictly below upper bound")

	// ErrNoDimensions indicates empty bound sequences.
	ErrNoDimensions = errors.New("quadbench: domain needs at least one dimension")

	// ErrNotOneDimensional indicates a 1-D estimator invoked on a
	// multi-dimensional domain.
	ErrNotOneDimensional = errors.New("quadbench: estimator requires a one-dimensional domain")

	// ErrInvalidCount indicates a subdivision or sample count below 1.
	ErrInvalidCount = errors.New("quadbench: count must be at least 1")

	// ErrInvalidTolerance indicates a negative convergence tolerance. Zero
	// is accepted: it can never be met, so the run ends at the safety cap
	// with a ConvergenceError.
	ErrInvalidTolerance = errors.New("quadbench: tolerance must not be negative")
)

// InvalidDomainError reports malformed integration bounds. It wraps one of
// the sentinel errors above so callers can match with errors.Is.
type InvalidDomainError struct {
	Axis    int // offending axis, -1 when the shape itself is wrong
	Lower   float64
	Upper   float64
	Wrapped error
}

func (e *InvalidDomainError) Error() string {
	if e.Axis < 0 {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%v (axis %d: [%g, %g])", e.Wrapped, e.Axis, e.Lower, e.Upper)
}

func (e *InvalidDomainError) Unwrap() error {
	return e.Wrapped
}

// ConvergenceError reports an adaptive estimator that exhausted its safety
// cap before meeting its tolerance. The best estimate reached and its cost
// are carried on the error so callers who accept capped results can recover
// them with errors.As.
type ConvergenceError struct {
	Method       string  // estimator name
	Estimate     float64 // best estimate at the point the cap was hit
	Subdivisions int     // subdivisions spent reaching it
	Limit        int     // the cap that was exceeded
	Tolerance    float64 // the tolerance that was not met
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("quadbench: %s did not converge to tolerance %g within limit %d (best estimate %g after %d subdivisions)",
		e.Method, e.Tolerance, e.Limit, e.Estimate, e.Subdivisions)
}
