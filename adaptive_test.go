package quadbench

import (
	"errors"
	"math"
	"testing"
)

// TestCompositeMidpointAdaptive_Sine is the canonical adaptive scenario:
// sin over [0, 10] at 1% tolerance must settle well under the subdivision
// cap and land within 5% of the reference 1 - cos(10).
func TestCompositeMidpointAdaptive_Sine(t *testing.T) {
	it, err := New1D(Sine, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultAdaptiveConfig()
	cfg.Tolerance = 0.01

	res, err := it.CompositeMidpointAdaptive(cfg)
	if err != nil {
		t.Fatalf("did not converge: %v", err)
	}
	if res.Subdivisions > cfg.MaxSubdivisions {
		t.Errorf("settled at n=%d, above the cap %d", res.Subdivisions, cfg.MaxSubdivisions)
	}

	want := 1 - math.Cos(10)
	AssertWithinRelativeError(t, res.Estimate, want, 0.05)
	t.Logf("settled at n=%d", res.Subdivisions)
}

// TestCompositeMidpointAdaptive_AgreesWithFixed verifies the adaptive
// estimate stays within a small factor of the fixed rule's error at the
// subdivision count it settles on.
func TestCompositeMidpointAdaptive_AgreesWithFixed(t *testing.T) {
	it, err := New1D(Quartic, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := Reference(Quartic, 0, 10)

	cfg := DefaultAdaptiveConfig()
	cfg.Tolerance = 1e-4

	res, err := it.CompositeMidpointAdaptive(cfg)
	if err != nil {
		t.Fatalf("did not converge: %v", err)
	}
	fixed, err := it.CompositeMidpoint(res.Subdivisions)
	if err != nil {
		t.Fatal(err)
	}

	adaptiveErr := relativeError(res.Estimate, want)
	fixedErr := relativeError(fixed, want)
	if adaptiveErr > 3*fixedErr+1e-12 {
		t.Errorf("adaptive error %.3g vs fixed error %.3g at n=%d",
			adaptiveErr, fixedErr, res.Subdivisions)
	}
	t.Logf("✓ adaptive %.3g vs fixed %.3g at n=%d", adaptiveErr, fixedErr, res.Subdivisions)
}

// TestCompositeMidpointAdaptive_CapFailsLoudly: an unreachable tolerance
// must surface as a *ConvergenceError that still carries the capped
// estimate, not as a silent return.
func TestCompositeMidpointAdaptive_CapFailsLoudly(t *testing.T) {
	it, err := New1D(Sine, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	cfg := AdaptiveConfig{Tolerance: 0, MaxSubdivisions: 64}
	res, err := it.CompositeMidpointAdaptive(cfg)

	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConvergenceError, got %v", err)
	}
	if cerr.Subdivisions <= cfg.MaxSubdivisions {
		t.Errorf("error reports n=%d, expected above the cap %d", cerr.Subdivisions, cfg.MaxSubdivisions)
	}
	if math.IsNaN(cerr.Estimate) || math.IsInf(cerr.Estimate, 0) {
		t.Errorf("capped estimate %v, want finite", cerr.Estimate)
	}
	if res.Estimate != cerr.Estimate {
		t.Errorf("result %.15g and error %.15g disagree on the capped estimate", res.Estimate, cerr.Estimate)
	}
	AssertWithinRelativeError(t, cerr.Estimate, 1-math.Cos(10), 0.01)
}

func TestAdaptive_RejectsNegativeTolerance(t *testing.T) {
	it, err := New1D(Square, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := it.CompositeMidpointAdaptive(AdaptiveConfig{Tolerance: -1}); !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("CompositeMidpointAdaptive: expected ErrInvalidTolerance, got %v", err)
	}
	if _, err := it.SimpsonsAdaptive(AdaptiveConfig{Tolerance: -1}); !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("SimpsonsAdaptive: expected ErrInvalidTolerance, got %v", err)
	}
}

// TestSimpsonsAdaptive_Accuracy: bisection refinement on a smooth
// integrand must land close to the reference at a modest tolerance.
func TestSimpsonsAdaptive_Accuracy(t *testing.T) {
	it, err := New1D(Quartic, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	// ∫x⁴/10⁴ over [0,10] = 2

	cfg := DefaultAdaptiveConfig()
	res, err := it.SimpsonsAdaptive(cfg)
	if err != nil {
		t.Fatalf("did not converge: %v", err)
	}
	AssertWithinRelativeError(t, res.Estimate, 2, 1e-4)
	t.Logf("converged after %d subdivisions", res.Subdivisions)
}

// TestSimpsonsAdaptive_ReusesEvaluations: shared endpoint and midpoint
// values must be reused across bisection levels, so the total evaluation
// count is pinned to the subdivision count: 2·subdivisions + 1.
func TestSimpsonsAdaptive_ReusesEvaluations(t *testing.T) {
	evals := 0
	f := func(x float64) float64 {
		evals++
		return Sine(x)
	}
	it, err := New1D(f, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultAdaptiveConfig()
	cfg.Tolerance = 1e-8
	res, err := it.SimpsonsAdaptive(cfg)
	if err != nil {
		t.Fatalf("did not converge: %v", err)
	}

	if want := 2*res.Subdivisions + 1; evals != want {
		t.Errorf("%d evaluations for %d subdivisions, want %d (no redundant endpoint evaluations)",
			evals, res.Subdivisions, want)
	}
	t.Logf("✓ %d subdivisions, %d evaluations", res.Subdivisions, evals)
}

// TestSimpsonsAdaptive_DepthCapFailsLoudly: a tolerance of zero can never
// be met, so every branch runs to the depth cap and the run must report
// a *ConvergenceError while still returning the completed estimate.
func TestSimpsonsAdaptive_DepthCapFailsLoudly(t *testing.T) {
	it, err := New1D(Sine, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	cfg := AdaptiveConfig{Tolerance: 0, MaxDepth: 6}
	res, err := it.SimpsonsAdaptive(cfg)

	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConvergenceError, got %v", err)
	}
	if cerr.Limit != cfg.MaxDepth {
		t.Errorf("error reports limit %d, want %d", cerr.Limit, cfg.MaxDepth)
	}
	// Depth 6 still resolves sin on [0,10] well; the capped estimate is
	// usable even though the tolerance was not met.
	AssertWithinRelativeError(t, res.Estimate, 1-math.Cos(10), 1e-3)
}

// TestSimpsonsAdaptive_LocalRefinement: a flat integrand with one sharp
// bump must spend its subdivisions near the bump, costing far fewer than
// uniform refinement at comparable accuracy.
func TestSimpsonsAdaptive_LocalRefinement(t *testing.T) {
	bump := func(x float64) float64 { return math.Exp(-100 * (x - 0.5) * (x - 0.5)) }
	it, err := New1D(bump, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	// Closed form: √π/10 times erf terms that are 1 to ~1e-12 on this
	// domain. A fixed-order global rule cannot be the yardstick here; its
	// nodes are too coarse for the bump.
	want := math.Sqrt(math.Pi) / 10

	cfg := DefaultAdaptiveConfig()
	cfg.Tolerance = 1e-6
	res, err := it.SimpsonsAdaptive(cfg)
	if err != nil {
		t.Fatalf("did not converge: %v", err)
	}
	AssertWithinRelativeError(t, res.Estimate, want, 1e-3)
	t.Logf("bump resolved with %d subdivisions", res.Subdivisions)
}

// TestSimpsonsAdaptiveGlobal_CrossCheck: the superseded uniform-refinement
// variant must agree with the bisection variant on a smooth integrand.
func TestSimpsonsAdaptiveGlobal_CrossCheck(t *testing.T) {
	it, err := New1D(Quintic, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultAdaptiveConfig()
	global, err := it.SimpsonsAdaptiveGlobal(cfg)
	if err != nil {
		t.Fatalf("global variant did not converge: %v", err)
	}
	local, err := it.SimpsonsAdaptive(cfg)
	if err != nil {
		t.Fatalf("bisection variant did not converge: %v", err)
	}

	AssertWithinRelativeError(t, local.Estimate, global.Estimate, 1e-5)
	t.Logf("global n=%d vs bisection subdivisions=%d", global.Subdivisions, local.Subdivisions)
}
