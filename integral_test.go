package quadbench

import (
	"errors"
	"math"
	"testing"
)

// TestNew_RejectsMalformedBounds verifies domain validation at construction.
func TestNew_RejectsMalformedBounds(t *testing.T) {
	f := func(x []float64) float64 { return 1 }

	cases := []struct {
		name     string
		lower    []float64
		upper    []float64
		sentinel error
	}{
		{"mismatched lengths", []float64{0, 0}, []float64{1}, ErrDimensionMismatch},
		{"empty bounds", nil, nil, ErrNoDimensions},
		{"lower equals upper", []float64{2}, []float64{2}, ErrEmptyDomain},
		{"lower above upper", []float64{0, 5}, []float64{1, 4}, ErrEmptyDomain},
		{"NaN bound", []float64{math.NaN()}, []float64{1}, ErrEmptyDomain},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(f, tc.lower, tc.upper)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			var derr *InvalidDomainError
			if !errors.As(err, &derr) {
				t.Fatalf("expected *InvalidDomainError, got %T: %v", err, err)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("expected sentinel %v, got %v", tc.sentinel, err)
			}
		})
	}
}

func TestNew_CopiesBounds(t *testing.T) {
	lower := []float64{0, 0}
	upper := []float64{1, 2}
	it, err := New(SumSquared, lower, upper)
	if err != nil {
		t.Fatal(err)
	}

	lower[0] = 99 // caller mutation must not leak in
	gotLower, gotUpper := it.Bounds()
	if gotLower[0] != 0 || gotUpper[1] != 2 {
		t.Errorf("bounds not copied: %v, %v", gotLower, gotUpper)
	}
	if it.Dims() != 2 {
		t.Errorf("Dims() = %d, want 2", it.Dims())
	}
}

func TestOneDimEstimators_RejectMultiDimDomain(t *testing.T) {
	it, err := New(SumSquared, []float64{0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := it.CompositeMidpoint(4); !errors.Is(err, ErrNotOneDimensional) {
		t.Errorf("CompositeMidpoint: expected ErrNotOneDimensional, got %v", err)
	}
	if _, err := it.Simpsons(4); !errors.Is(err, ErrNotOneDimensional) {
		t.Errorf("Simpsons: expected ErrNotOneDimensional, got %v", err)
	}
	if _, err := it.MonteCarlo(4); !errors.Is(err, ErrNotOneDimensional) {
		t.Errorf("MonteCarlo: expected ErrNotOneDimensional, got %v", err)
	}
	if _, err := it.CompositeMidpointAdaptive(DefaultAdaptiveConfig()); !errors.Is(err, ErrNotOneDimensional) {
		t.Errorf("CompositeMidpointAdaptive: expected ErrNotOneDimensional, got %v", err)
	}
	if _, err := it.SimpsonsAdaptive(DefaultAdaptiveConfig()); !errors.Is(err, ErrNotOneDimensional) {
		t.Errorf("SimpsonsAdaptive: expected ErrNotOneDimensional, got %v", err)
	}
}

func TestEstimators_RejectCountBelowOne(t *testing.T) {
	it, err := New1D(Square, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	nd, err := New(SumSquared, []float64{0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	for name, est := range map[string]Estimator{
		"CompositeMidpoint":     it.CompositeMidpoint,
		"Simpsons":              it.Simpsons,
		"MonteCarlo":            it.MonteCarlo,
		"CompositeMidpointNDim": nd.CompositeMidpointNDim,
		"SimpsonsNDim":          nd.SimpsonsNDim,
		"MonteCarloNDim":        nd.MonteCarloNDim,
	} {
		if _, err := est(0); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("%s(0): expected ErrInvalidCount, got %v", name, err)
		}
	}
}

// TestCompositeMidpoint_ExactForLinear pins the exactness property: the
// midpoint rule integrates polynomials of degree ≤ 1 exactly at any n.
func TestCompositeMidpoint_ExactForLinear(t *testing.T) {
	it, err := New1D(func(x float64) float64 { return 3*x + 2 }, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	// ∫(3x+2) over [0,10] = 150 + 20
	AssertExact(t, it.CompositeMidpoint, 170, DefaultAssertionConfig())
}

// TestSimpsons_ExactForCubic pins the exactness property: Simpson's rule
// integrates polynomials of degree ≤ 3 exactly at any n.
func TestSimpsons_ExactForCubic(t *testing.T) {
	it, err := New1D(func(x float64) float64 { return x*x*x - 2*x }, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	// ∫(x³-2x) over [0,2] = 4 - 4
	cfg := DefaultAssertionConfig()
	for _, n := range cfg.Counts {
		got, err := it.Simpsons(n)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got) > 1e-12 { // exact value is 0, compare absolutely
			t.Errorf("not exact at n=%d: got %.15g, want 0", n, got)
		}
	}
}

// TestSquareOverZeroTen is the canonical scenario: f(x) = x² over [0, 10],
// exact integral 1000/3.
func TestSquareOverZeroTen(t *testing.T) {
	it, err := New1D(Square, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := 1000.0 / 3.0

	mid, err := it.CompositeMidpoint(100)
	if err != nil {
		t.Fatal(err)
	}
	AssertWithinRelativeError(t, mid, want, 1e-3)

	// Simpson is exact on a degree-2 polynomial; only summation noise left.
	simp, err := it.Simpsons(10)
	if err != nil {
		t.Fatal(err)
	}
	AssertWithinRelativeError(t, simp, want, 1e-12)
}

// TestSingleSubdivision_Finite is the n=1 boundary: every fixed-count
// estimator must return a finite value at the coarsest resolution.
func TestSingleSubdivision_Finite(t *testing.T) {
	it, err := New1D(Exp, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	nd, err := New(SumSquared, []float64{0, 0, 0}, []float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	for name, est := range map[string]Estimator{
		"CompositeMidpoint":     it.CompositeMidpoint,
		"Simpsons":              it.Simpsons,
		"MonteCarlo":            it.MonteCarlo,
		"CompositeMidpointNDim": nd.CompositeMidpointNDim,
		"SimpsonsNDim":          nd.SimpsonsNDim,
		"MonteCarloNDim":        nd.MonteCarloNDim,
	} {
		v, err := est(1)
		if err != nil {
			t.Errorf("%s(1) failed: %v", name, err)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s(1) = %v, want finite", name, v)
		}
		t.Logf("%s(1) = %.6g", name, v)
	}
}

// TestSimpsons_ReusesEndpointValues verifies the shared-endpoint reuse:
// n subintervals must cost exactly 2n+1 evaluations, not 3n.
func TestSimpsons_ReusesEndpointValues(t *testing.T) {
	evals := 0
	f := func(x float64) float64 {
		evals++
		return Sine(x)
	}
	it, err := New1D(f, 0, 10)
	if err != nil {
		t.Fatal(err)
	}

	const n = 17
	if _, err := it.Simpsons(n); err != nil {
		t.Fatal(err)
	}
	if evals != 2*n+1 {
		t.Errorf("Simpsons(%d) cost %d evaluations, want %d", n, evals, 2*n+1)
	}
}
