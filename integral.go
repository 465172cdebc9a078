package quadbench

import (
	"math"
)

// Func is an integrand over R^d: it maps a point of length d to a real
// number. Implementations must be deterministic and side-effect free, or
// the timing and accuracy harnesses measure noise. The slice argument is
// reused between calls; implementations must not retain it.
type Func func(x []float64) float64

// Func1D is a scalar integrand.
type Func1D func(x float64) float64

// Integral binds an integrand to an integration domain and exposes the
// quadrature estimators. It is immutable after construction: adaptive
// bookkeeping is threaded through the computation and returned in
// AdaptiveResult, never stored, so a single Integral is safe for
// concurrent use.
type Integral struct {
	f     Func
	f1    Func1D // set when dims == 1, avoids a slice allocation per call
	lower []float64
	upper []float64
	dims  int
	width float64 // upper[0]-lower[0], cached for the 1-D estimators
}

// New constructs an evaluator over the box [lower[0],upper[0]] × ... ×
// [lower[d-1],upper[d-1]]. Both bound slices must have the same nonzero
// length, and every lower bound must lie strictly below its paired upper
// bound; violations return an *InvalidDomainError. The bounds are copied.
func New(f Func, lower, upper []float64) (*Integral, error) {
	if len(lower) != len(upper) {
		return nil, &InvalidDomainError{Axis: -1, Wrapped: ErrDimensionMismatch}
	}
	if len(lower) == 0 {
		return nil, &InvalidDomainError{Axis: -1, Wrapped: ErrNoDimensions}
	}
	for i := range lower {
		if !(lower[i] < upper[i]) { // also rejects NaN bounds
			return nil, &InvalidDomainError{Axis: i, Lower: lower[i], Upper: upper[i], Wrapped: ErrEmptyDomain}
		}
	}

	it := &Integral{
		f:     f,
		lower: append([]float64(nil), lower...),
		upper: append([]float64(nil), upper...),
		dims:  len(lower),
	}
	if it.dims == 1 {
		it.width = upper[0] - lower[0]
		it.f1 = func(x float64) float64 { return f([]float64{x}) }
	}
	return it, nil
}

// New1D constructs an evaluator over the interval [a, b]. It is the scalar
// convenience form of New and avoids per-evaluation point allocation.
func New1D(f Func1D, a, b float64) (*Integral, error) {
	it, err := New(func(x []float64) float64 { return f(x[0]) }, []float64{a}, []float64{b})
	if err != nil {
		return nil, err
	}
	it.f1 = f
	return it, nil
}

// Dims returns the dimensionality of the integration domain.
func (it *Integral) Dims() int { return it.dims }

// Bounds returns copies of the per-axis lower and upper bounds.
func (it *Integral) Bounds() (lower, upper []float64) {
	return append([]float64(nil), it.lower...), append([]float64(nil), it.upper...)
}

func (it *Integral) need1D() error {
	if it.dims != 1 {
		return ErrNotOneDimensional
	}
	return nil
}

// CompositeMidpoint approximates the integral with the composite midpoint
// rule over n equal-width subintervals. Exact for polynomials of degree ≤ 1
// at any n; error O(1/n²) for smooth integrands.
func (it *Integral) CompositeMidpoint(n int) (float64, error) {
	if err := it.need1D(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrInvalidCount
	}

	w := it.width / float64(n)
	left := it.lower[0]
	sum := 0.0
	for i := 0; i < n; i++ {
		right := left + w
		sum += w * it.f1((left+right)/2)
		left = right
	}
	return sum, nil
}

// Simpsons approximates the integral with the composite Simpson rule over n
// subintervals, weighting each as (w/6)·(f(l) + 4f(m) + f(r)). The right
// endpoint value is reused as the next subinterval's left endpoint value,
// so the rule costs 2n+1 evaluations rather than 3n. Exact for polynomials
// of degree ≤ 3 at any n.
func (it *Integral) Simpsons(n int) (float64, error) {
	if err := it.need1D(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrInvalidCount
	}

	w := it.width / float64(n)
	coeff := w / 6
	left := it.lower[0]
	fl := it.f1(left)
	sum := 0.0
	for i := 0; i < n; i++ {
		right := left + w
		fr := it.f1(right)
		sum += coeff * (fl + 4*it.f1((left+right)/2) + fr)
		left, fl = right, fr
	}
	return sum, nil
}

// AdaptiveResult is the outcome of an adaptive estimator: the estimate and
// the subdivision count it cost. For the n-doubling methods Subdivisions is
// the final uniform subdivision count; for SimpsonsAdaptive it counts
// bisections, attributing cost per midpoint split rather than per leaf.
type AdaptiveResult struct {
	Estimate     float64
	Subdivisions int
}

// AdaptiveConfig controls the adaptive estimators.
type AdaptiveConfig struct {
	// Tolerance is the relative self-consistency threshold between
	// successive refinements. It is a convergence heuristic, not an error
	// bound.
	Tolerance float64

	// MaxSubdivisions caps the uniform subdivision count of the n-doubling
	// methods. A cap is required: integrands whose integral is near zero
	// make the relative criterion unstable.
	MaxSubdivisions int

	// MaxDepth caps the bisection depth of SimpsonsAdaptive, bounding both
	// memory and work on integrands that never settle (discontinuities,
	// singular derivatives).
	MaxDepth int
}

// DefaultAdaptiveConfig returns the standard caps with a 1e-6 tolerance.
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		Tolerance:       1e-6,
		MaxSubdivisions: 5000,
		MaxDepth:        48,
	}
}

func (cfg AdaptiveConfig) withDefaults() AdaptiveConfig {
	if cfg.MaxSubdivisions <= 0 {
		cfg.MaxSubdivisions = 5000
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 48
	}
	return cfg
}

// epsilonRelative is the magnitude below which relative convergence checks
// fall back to absolute difference. Dividing by a near-zero estimate would
// otherwise propagate Inf/NaN through the criterion.
const epsilonRelative = 1e-12

// converged reports whether curr agrees with prev to within tol, relative
// to |curr|, falling back to absolute difference when curr is near zero.
func converged(prev, curr, tol float64) bool {
	diff := math.Abs(prev - curr)
	if math.Abs(curr) < epsilonRelative {
		return diff < tol
	}
	return diff/math.Abs(curr) < tol
}

// CompositeMidpointAdaptive refines CompositeMidpoint globally, doubling n
// each round starting from n=1 and stopping once successive estimates agree
// to cfg.Tolerance. If n exceeds cfg.MaxSubdivisions first, it returns the
// best estimate together with a *ConvergenceError.
func (it *Integral) CompositeMidpointAdaptive(cfg AdaptiveConfig) (AdaptiveResult, error) {
	if err := it.need1D(); err != nil {
		return AdaptiveResult{}, err
	}
	if cfg.Tolerance < 0 {
		return AdaptiveResult{}, ErrInvalidTolerance
	}
	cfg = cfg.withDefaults()

	prev, err := it.CompositeMidpoint(1)
	if err != nil {
		return AdaptiveResult{}, err
	}
	for n := 2; ; n *= 2 {
		curr, err := it.CompositeMidpoint(n)
		if err != nil {
			return AdaptiveResult{}, err
		}
		if converged(prev, curr, cfg.Tolerance) {
			return AdaptiveResult{Estimate: curr, Subdivisions: n}, nil
		}
		if n > cfg.MaxSubdivisions {
			res := AdaptiveResult{Estimate: curr, Subdivisions: n}
			return res, &ConvergenceError{
				Method:       "CompositeMidpointAdaptive",
				Estimate:     curr,
				Subdivisions: n,
				Limit:        cfg.MaxSubdivisions,
				Tolerance:    cfg.Tolerance,
			}
		}
		prev = curr
	}
}

// simpsonStep evaluates the plain Simpson rule on [a,b] given the endpoint
// values, returning the midpoint, its function value and the estimate. The
// midpoint value is handed back so callers can reuse it in both halves of a
// bisection without re-evaluating.
func (it *Integral) simpsonStep(a, fa, b, fb float64) (m, fm, estimate float64) {
	m = (a + b) / 2
	fm = it.f1(m)
	estimate = math.Abs(b-a) / 6 * (fa + 4*fm + fb)
	return m, fm, estimate
}

// pendingInterval is one frame of the SimpsonsAdaptive work stack: an
// interval with both endpoint values already known, the whole-interval
// Simpson estimate to test refinement against, and its bisection depth.
type pendingInterval struct {
	a, fa    float64
	b, fb    float64
	m, fm    float64
	estimate float64
	depth    int
}

// SimpsonsAdaptive refines Simpson's rule locally by recursive bisection.
// Each interval's estimate S is compared against the sum of its two halves'
// estimates; a branch stops refining once
//
//	|S_left + S_right - S| / |S_left + S_right| < cfg.Tolerance
//
// (absolute difference when the sum is near zero). Smooth regions stop
// early while difficult regions keep splitting. Endpoint and midpoint
// values are reused across levels, so each bisection costs exactly two new
// evaluations.
//
// The refinement runs on an explicit work stack rather than the call
// stack. Branches that reach cfg.MaxDepth are accepted as-is and the
// completed estimate is returned with a *ConvergenceError, so the caller
// still sees the best available value.
func (it *Integral) SimpsonsAdaptive(cfg AdaptiveConfig) (AdaptiveResult, error) {
	if err := it.need1D(); err != nil {
		return AdaptiveResult{}, err
	}
	if cfg.Tolerance < 0 {
		return AdaptiveResult{}, ErrInvalidTolerance
	}
	cfg = cfg.withDefaults()

	a, b := it.lower[0], it.upper[0]
	fa, fb := it.f1(a), it.f1(b)
	m, fm, whole := it.simpsonStep(a, fa, b, fb)

	stack := []pendingInterval{{a: a, fa: fa, b: b, fb: fb, m: m, fm: fm, estimate: whole, depth: 0}}
	subdivisions := 1
	total := 0.0
	capped := false

	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lm, flm, left := it.simpsonStep(iv.a, iv.fa, iv.m, iv.fm)
		rm, frm, right := it.simpsonStep(iv.m, iv.fm, iv.b, iv.fb)
		subdivisions++ // one division became two

		refined := left + right
		if converged(iv.estimate, refined, cfg.Tolerance) {
			total += refined
			continue
		}
		if iv.depth+1 >= cfg.MaxDepth {
			// Accept the capped branch so the overall estimate stays
			// complete, and report the failure after the walk.
			total += refined
			capped = true
			continue
		}
		stack = append(stack,
			pendingInterval{a: iv.a, fa: iv.fa, b: iv.m, fb: iv.fm, m: lm, fm: flm, estimate: left, depth: iv.depth + 1},
			pendingInterval{a: iv.m, fa: iv.fm, b: iv.b, fb: iv.fb, m: rm, fm: frm, estimate: right, depth: iv.depth + 1},
		)
	}

	res := AdaptiveResult{Estimate: total, Subdivisions: subdivisions}
	if capped {
		return res, &ConvergenceError{
			Method:       "SimpsonsAdaptive",
			Estimate:     total,
			Subdivisions: subdivisions,
			Limit:        cfg.MaxDepth,
			Tolerance:    cfg.Tolerance,
		}
	}
	return res, nil
}

// SimpsonsAdaptiveGlobal is the superseded forerunner of SimpsonsAdaptive:
// uniform refinement by n-doubling with an absolute-difference convergence
// test between passes. It refines everywhere even when only one region
// needs it, so it is strictly more expensive than the bisection variant.
// Retained as an independent cross-check.
func (it *Integral) SimpsonsAdaptiveGlobal(cfg AdaptiveConfig) (AdaptiveResult, error) {
	if err := it.need1D(); err != nil {
		return AdaptiveResult{}, err
	}
	if cfg.Tolerance < 0 {
		return AdaptiveResult{}, ErrInvalidTolerance
	}
	cfg = cfg.withDefaults()

	prev, err := it.Simpsons(4)
	if err != nil {
		return AdaptiveResult{}, err
	}
	for n := 8; ; n *= 2 {
		curr, err := it.Simpsons(n)
		if err != nil {
			return AdaptiveResult{}, err
		}
		if math.Abs(curr-prev) < cfg.Tolerance {
			return AdaptiveResult{Estimate: curr, Subdivisions: n}, nil
		}
		if n > cfg.MaxSubdivisions {
			res := AdaptiveResult{Estimate: curr, Subdivisions: n}
			return res, &ConvergenceError{
				Method:       "SimpsonsAdaptiveGlobal",
				Estimate:     curr,
				Subdivisions: n,
				Limit:        cfg.MaxSubdivisions,
				Tolerance:    cfg.Tolerance,
			}
		}
		prev = curr
	}
}
