package quadbench

import (
	"math"
	"testing"
)

// AssertionConfig contains thresholds for the quadrature properties.
type AssertionConfig struct {
	// Exactness slack: rules that are analytically exact (midpoint on
	// degree ≤ 1, Simpson on degree ≤ 3) must match to within this
	// relative tolerance, which only absorbs floating-point summation.
	ExactTolerance float64

	// Slack factor for monotone convergence: halving the step must not
	// grow the error by more than this factor before the error floor.
	MonotoneSlack float64

	// Relative tolerance for d=1 agreement between an NDim rule and its
	// 1-D counterpart on identical counts.
	ConsistencyTolerance float64

	// Counts at which exactness and consistency are probed.
	Counts []int
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		ExactTolerance:       1e-10,
		MonotoneSlack:        1.05,
		ConsistencyTolerance: 1e-9,
		Counts:               []int{1, 2, 3, 7, 16, 100},
	}
}

// AssertExact verifies an estimator reproduces a known exact integral at
// every probe count. Use for the exactness properties: composite midpoint
// on polynomials of degree ≤ 1, Simpson on degree ≤ 3.
func AssertExact(t *testing.T, est Estimator, want float64, cfg AssertionConfig) {
	t.Helper()

	for _, n := range cfg.Counts {
		got, err := est(n)
		if err != nil {
			t.Fatalf("estimator failed at n=%d: %v", n, err)
		}
		if rel := relativeError(got, want); rel > cfg.ExactTolerance {
			t.Errorf("not exact at n=%d: got %.15g, want %.15g (relative error %.3g)",
				n, got, want, rel)
		}
	}
	t.Logf("✓ Exact at all of n=%v: %.15g", cfg.Counts, want)
}

// AssertWithinRelativeError verifies a single estimate against a reference
// value to within maxRel.
func AssertWithinRelativeError(t *testing.T, got, want, maxRel float64) {
	t.Helper()

	if rel := relativeError(got, want); rel > maxRel {
		t.Errorf("estimate %.10g vs reference %.10g: relative error %.3g (max %.3g)",
			got, want, rel, maxRel)
	} else {
		t.Logf("✓ Relative error %.3g (max %.3g)", rel, maxRel)
	}
}

// AssertMonotoneConvergence verifies the estimator's error against the
// reference is non-increasing (within slack) as the count doubles, until
// the error reaches the floating-point floor.
func AssertMonotoneConvergence(t *testing.T, est Estimator, reference float64, start, doublings int, cfg AssertionConfig) {
	t.Helper()

	analysis, err := AnalyzeConvergence(est, reference, start, doublings)
	if err != nil {
		t.Fatalf("convergence sweep failed: %v", err)
	}

	for i := 0; i+1 < len(analysis.Errors); i++ {
		prev, next := analysis.Errors[i], analysis.Errors[i+1]
		if prev < errorFloor || next < errorFloor {
			break // below this everything is summation noise
		}
		if next > prev*cfg.MonotoneSlack {
			t.Errorf("error grew on doubling n=%d→%d: %.3g → %.3g",
				analysis.Counts[i], analysis.Counts[i+1], prev, next)
		}
	}
	t.Logf("✓ Monotone convergence over n=%v (errors %v)", analysis.Counts, analysis.Errors)
}

// AssertConvergenceOrder verifies the measured empirical order lies in
// [min, max]. Midpoint should measure ≈ 2 on smooth integrands, Simpson
// ≈ 4.
func AssertConvergenceOrder(t *testing.T, analysis ConvergenceAnalysis, min, max float64) {
	t.Helper()

	if analysis.Pairs == 0 {
		t.Errorf("no usable doubling pairs; errors %v", analysis.Errors)
		return
	}
	if analysis.Order < min || analysis.Order > max {
		t.Errorf("empirical order %.2f outside [%.2f, %.2f] (from %d pairs)",
			analysis.Order, min, max, analysis.Pairs)
	} else {
		t.Logf("✓ Empirical order %.2f within [%.2f, %.2f]", analysis.Order, min, max)
	}
}

// AssertDimensionalConsistency verifies an NDim rule agrees with its 1-D
// counterpart on a d=1 domain at every probe count. The two traverse the
// same geometry, so any disagreement beyond summation noise is a grid bug.
func AssertDimensionalConsistency(t *testing.T, oneDim, nDim Estimator, cfg AssertionConfig) {
	t.Helper()

	for _, n := range cfg.Counts {
		a, err := oneDim(n)
		if err != nil {
			t.Fatalf("1-D estimator failed at n=%d: %v", n, err)
		}
		b, err := nDim(n)
		if err != nil {
			t.Fatalf("NDim estimator failed at n=%d: %v", n, err)
		}
		if rel := relativeError(b, a); rel > cfg.ConsistencyTolerance {
			t.Errorf("d=1 disagreement at n=%d: 1-D %.15g, NDim %.15g (relative error %.3g)",
				n, a, b, rel)
		}
	}
	t.Logf("✓ d=1 consistency at all of n=%v", cfg.Counts)
}

// AssertStdDevScaling verifies the Monte Carlo estimator's spread over
// repeated runs shrinks like 1/√n: multiplying the sample count by factor²
// should divide the standard deviation by ≈ factor. Sampling noise makes
// the measured ratio itself noisy, so it only has to land within slack of
// the prediction.
func AssertStdDevScaling(t *testing.T, est Estimator, n, factor, runs int, slack float64) {
	t.Helper()

	small := sampleStdDev(t, est, n, runs)
	large := sampleStdDev(t, est, n*factor*factor, runs)
	if large == 0 {
		t.Fatalf("zero spread at n=%d; integrand constant?", n*factor*factor)
	}

	ratio := small / large
	want := float64(factor)
	if ratio < want/slack || ratio > want*slack {
		t.Errorf("stddev ratio %.2f for %d× samples (want ≈ %.1f within ×%.1f)",
			ratio, factor*factor, want, slack)
	} else {
		t.Logf("✓ Stddev ratio %.2f for %d× samples (1/√n scaling)", ratio, factor*factor)
	}
}

// sampleStdDev measures the standard deviation of the estimator output
// over repeated runs at a fixed count.
func sampleStdDev(t *testing.T, est Estimator, n, runs int) float64 {
	t.Helper()

	values := make([]float64, runs)
	mean := 0.0
	for i := range values {
		v, err := est(n)
		if err != nil {
			t.Fatalf("estimator failed at n=%d: %v", n, err)
		}
		values[i] = v
		mean += v
	}
	mean /= float64(runs)

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(runs-1))
}
