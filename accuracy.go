package quadbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// referenceNodes is the Gauss-Legendre order used for reference values.
// 60 nodes resolves every integrand in the catalogs far below the error
// floor of the estimators under test.
const referenceNodes = 60

// Reference computes a high-accuracy value for the 1-D integral of f over
// [a, b] via fixed-order Gauss-Legendre quadrature. It is the yardstick
// the error sweeps divide by, so it must be orders of magnitude more
// accurate than anything it judges.
func Reference(f Func1D, a, b float64) float64 {
	return quad.Fixed(f, a, b, referenceNodes, quad.Legendre{}, 0)
}

// ReferenceNDim computes a high-accuracy value for the integral of f over
// the box by nesting Gauss-Legendre quadrature per axis. Cost grows as
// referenceNodes^d; at the catalog's d ≤ 5 that is still cheap.
func ReferenceNDim(f Func, lower, upper []float64) (float64, error) {
	if len(lower) != len(upper) || len(lower) == 0 {
		return 0, &InvalidDomainError{Axis: -1, Wrapped: ErrDimensionMismatch}
	}

	point := make([]float64, len(lower))
	var nest func(axis int) float64
	nest = func(axis int) float64 {
		return quad.Fixed(func(x float64) float64 {
			point[axis] = x
			if axis == len(lower)-1 {
				return f(point)
			}
			return nest(axis + 1)
		}, lower[axis], upper[axis], referenceNodes, quad.Legendre{}, 0)
	}
	return nest(0), nil
}

// relativeError computes |got - want| / |want|, falling back to absolute
// difference when the reference value is near zero.
func relativeError(got, want float64) float64 {
	diff := math.Abs(got - want)
	if math.Abs(want) < epsilonRelative {
		return diff
	}
	return diff / math.Abs(want)
}

// ErrorSweep runs the estimator at each count and returns the relative
// error against the reference value, index-aligned with counts.
func ErrorSweep(est Estimator, reference float64, counts []int) ([]float64, error) {
	errors := make([]float64, len(counts))
	for i, n := range counts {
		v, err := est(n)
		if err != nil {
			return nil, fmt.Errorf("error sweep at n=%d: %w", n, err)
		}
		errors[i] = relativeError(v, reference)
	}
	return errors, nil
}

// ConvergenceAnalysis characterises how an estimator's error decays as the
// count doubles.
type ConvergenceAnalysis struct {
	Counts []int     // counts swept: start, 2·start, 4·start, ...
	Errors []float64 // relative error at each count
	Order  float64   // empirical order p in error ∝ 1/n^p (0 if unmeasurable)
	Pairs  int       // doubling pairs that contributed to Order
}

// errorFloor is the relative error below which a doubling pair says
// nothing about convergence order: the estimate has hit floating-point
// noise and the ratio between two noise values is meaningless.
const errorFloor = 1e-13

// AnalyzeConvergence sweeps the estimator over doublings counts starting
// at start and estimates the empirical convergence order from consecutive
// error ratios:
//
//	p_i = log2(error_i / error_{i+1})
//
// Pairs where either error sits at the floating-point floor, or where the
// error grew, are discarded; the remaining p_i are averaged. Midpoint and
// Simpson should measure p ≈ 2 and p ≈ 4 on smooth integrands.
func AnalyzeConvergence(est Estimator, reference float64, start, doublings int) (ConvergenceAnalysis, error) {
	if start < 1 || doublings < 2 {
		return ConvergenceAnalysis{}, ErrInvalidCount
	}

	counts := make([]int, doublings)
	n := start
	for i := range counts {
		counts[i] = n
		n *= 2
	}

	errors, err := ErrorSweep(est, reference, counts)
	if err != nil {
		return ConvergenceAnalysis{}, err
	}

	analysis := ConvergenceAnalysis{Counts: counts, Errors: errors}

	sum := 0.0
	for i := 0; i+1 < len(errors); i++ {
		if errors[i] < errorFloor || errors[i+1] < errorFloor {
			continue
		}
		ratio := errors[i] / errors[i+1]
		if ratio <= 1 { // error grew or stalled; not a convergence sample
			continue
		}
		sum += math.Log2(ratio)
		analysis.Pairs++
	}
	if analysis.Pairs > 0 {
		analysis.Order = sum / float64(analysis.Pairs)
	}

	return analysis, nil
}
