// Package quadbench estimates definite integrals with classical quadrature
// families and measures how they trade accuracy against runtime.
//
// # Overview
//
// quadbench is an experimentation harness built around one abstraction: an
// Integral binds a target function to an integration domain (a 1-D interval
// or an n-dimensional box) and exposes several independent estimators:
//
//   - CompositeMidpoint / CompositeMidpointNDim - composite midpoint rule
//   - Simpsons / SimpsonsNDim                   - composite Simpson's rule
//   - CompositeMidpointAdaptive                 - global refinement by n-doubling
//   - SimpsonsAdaptive                          - local refinement by bisection
//   - MonteCarlo / MonteCarloNDim               - uniform random sampling
//
// The harness around it (timing sweeps, error sweeps against a high-order
// Gauss-Legendre reference, convergence-order analysis, property assertions)
// exists to compare the estimators, not to improve them.
//
// # Quick Start
//
// Integrate f(x) = x² over [0, 10]:
//
//	it, err := quadbench.New1D(quadbench.Square, 0, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, _ := it.Simpsons(10)        // exact for polynomials of degree ≤ 3
//	m, _ := it.CompositeMidpoint(100)
//
//	fmt.Printf("simpson:  %.6f\n", v) // 333.333333
//	fmt.Printf("midpoint: %.6f\n", m)
//
// Adaptive refinement reports its cost alongside the estimate:
//
//	res, err := it.SimpsonsAdaptive(quadbench.DefaultAdaptiveConfig())
//	fmt.Printf("%.6f after %d subdivisions\n", res.Estimate, res.Subdivisions)
//
// # Error behaviour
//
// Fixed-count estimators are pure evaluation: the error of a composite rule
// with n subdivisions decreases as O(1/n²) for the midpoint rule and
// O(1/n⁴) for Simpson's rule on smooth integrands. Monte Carlo error
// decreases as O(1/√n) independent of dimension, which is its only
// advantage - and at high dimension, a decisive one.
//
// Adaptive estimators use a self-consistency criterion
//
//	|previous - current| / |current| < tolerance
//
// between successive refinements. This is a convergence heuristic, not a
// rigorous error bound: a function that changes character below the current
// resolution can fool it. When the magnitude of the current estimate is
// near zero the relative criterion is unstable, so the check falls back to
// an absolute difference.
//
// Adaptive runs that hit their safety cap (subdivision limit or bisection
// depth) fail loudly with a *ConvergenceError. The error still carries the
// best estimate reached, recoverable via errors.As:
//
//	res, err := it.SimpsonsAdaptive(cfg)
//	var cerr *quadbench.ConvergenceError
//	if errors.As(err, &cerr) {
//	    log.Printf("capped at %d subdivisions, best estimate %.6f",
//	        cerr.Subdivisions, cerr.Estimate)
//	}
//
// # N-dimensional Simpson caveat
//
// SimpsonsNDim applies the 1-D Simpson weighting along a single
// corner-midpoint-corner triple per grid cell. That is a deliberate, cheap
// generalisation and NOT the tensor-product Simpson rule from the
// literature; its order of accuracy is lower. See the method documentation
// before comparing against published results.
//
// # Testing
//
// Assert helpers validate the mathematical properties an estimator is
// supposed to have:
//
//	func TestMidpointExactness(t *testing.T) {
//	    it, _ := quadbench.New1D(func(x float64) float64 { return 3*x + 2 }, 0, 10)
//	    quadbench.AssertExact(t, it.CompositeMidpoint, 170, quadbench.DefaultAssertionConfig())
//	}
package quadbench
