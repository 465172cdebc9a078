package quadbench

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Estimator is any fixed-count estimator: subdivision count in (sample
// count for Monte Carlo), estimate out. The Integral method values
// (it.CompositeMidpoint, it.Simpsons, ...) satisfy it directly.
type Estimator func(n int) (float64, error)

// TimingConfig controls a timing sweep.
type TimingConfig struct {
	Counts  []int // subdivision/sample counts to measure, in order
	Repeats int   // timed repetitions per count; durations are averaged
	Warmup  bool  // run one untimed call per count before measuring
}

// DefaultTimingConfig returns a doubling sweep with modest repetition.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{
		Counts:  []int{1, 2, 4, 8, 16, 32, 64, 128},
		Repeats: 3,
		Warmup:  true,
	}
}

// TimingResult contains the measurements for a single count.
type TimingResult struct {
	Count     int             // subdivision or sample count
	Estimate  float64         // estimator output (last repeat)
	Durations []time.Duration // individual repeat durations
	Mean      time.Duration   // mean over repeats
}

// TimingReport is the outcome of one timing sweep. RunID identifies the
// sweep in logs when several sweeps are compared side by side.
type TimingReport struct {
	RunID   uuid.UUID
	Results []TimingResult
}

// Time runs the estimator once and returns the elapsed wall time together
// with the estimate.
func Time(est Estimator, n int) (time.Duration, float64, error) {
	start := time.Now()
	v, err := est(n)
	elapsed := time.Since(start)
	if err != nil {
		return 0, 0, err
	}
	return elapsed, v, nil
}

// RunTiming measures the estimator's wall time at each configured count.
// Estimators can be arbitrarily slow at large counts and there is no
// built-in timeout; the context is checked between measurements so a sweep
// can be abandoned, but a single in-flight estimate is never interrupted.
func RunTiming(ctx context.Context, est Estimator, cfg TimingConfig) (TimingReport, error) {
	if cfg.Repeats < 1 {
		cfg.Repeats = 1
	}

	report := TimingReport{
		RunID:   uuid.New(),
		Results: make([]TimingResult, 0, len(cfg.Counts)),
	}

	for _, n := range cfg.Counts {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if cfg.Warmup {
			if _, err := est(n); err != nil {
				return report, fmt.Errorf("warmup at n=%d: %w", n, err)
			}
		}

		result := TimingResult{Count: n, Durations: make([]time.Duration, 0, cfg.Repeats)}
		for r := 0; r < cfg.Repeats; r++ {
			d, v, err := Time(est, n)
			if err != nil {
				return report, fmt.Errorf("failed at n=%d: %w", n, err)
			}
			result.Durations = append(result.Durations, d)
			result.Estimate = v
		}

		var sum time.Duration
		for _, d := range result.Durations {
			sum += d
		}
		result.Mean = sum / time.Duration(len(result.Durations))

		report.Results = append(report.Results, result)
	}

	return report, nil
}

// DurationStats contains summary statistics over repeat durations.
type DurationStats struct {
	Mean   time.Duration
	Stddev time.Duration
	Min    time.Duration
	Max    time.Duration
}

// CalculateDurationStats summarises one result's repeat durations.
func CalculateDurationStats(result TimingResult) DurationStats {
	if len(result.Durations) == 0 {
		return DurationStats{}
	}

	sorted := make([]time.Duration, len(result.Durations))
	copy(sorted, result.Durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	mean := sum / time.Duration(len(sorted))

	var variance float64
	for _, d := range sorted {
		diff := float64(d - mean)
		variance += diff * diff
	}
	stddev := time.Duration(math.Sqrt(variance / float64(len(sorted))))

	return DurationStats{
		Mean:   mean,
		Stddev: stddev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
