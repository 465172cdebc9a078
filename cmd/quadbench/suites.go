package main

import (
	"context"
	"log/slog"

	"github.com/alexshd/quadbench"
)

// runTimeSuite measures wall time for the fixed-count estimators: the 1-D
// catalog under midpoint and Simpson, the multivariate catalog under the
// grid rules, and Monte Carlo (serial and parallel) under the sample sweep.
func runTimeSuite(ctx context.Context, cfg SuiteConfig) error {
	tcfg := quadbench.TimingConfig{Counts: cfg.Divisions, Repeats: cfg.Repeats, Warmup: true}

	for _, entry := range quadbench.Catalog1D {
		it, err := quadbench.New1D(entry.F, cfg.XMin, cfg.XMax)
		if err != nil {
			return err
		}
		if err := logTiming(ctx, "midpoint", entry.Name, it.CompositeMidpoint, tcfg); err != nil {
			return err
		}
		if err := logTiming(ctx, "simpson", entry.Name, it.Simpsons, tcfg); err != nil {
			return err
		}
	}

	ncfg := quadbench.TimingConfig{Counts: cfg.DivisionsNDim, Repeats: cfg.Repeats, Warmup: true}
	scfg := quadbench.TimingConfig{Counts: cfg.Samples, Repeats: cfg.Repeats, Warmup: true}

	for _, entry := range quadbench.CatalogND {
		lower, upper := unitBox(entry.Dims)
		it, err := quadbench.New(entry.F, lower, upper)
		if err != nil {
			return err
		}
		if err := logTiming(ctx, "midpoint-ndim", entry.Name, it.CompositeMidpointNDim, ncfg); err != nil {
			return err
		}
		if err := logTiming(ctx, "simpson-ndim", entry.Name, it.SimpsonsNDim, ncfg); err != nil {
			return err
		}
		if err := logTiming(ctx, "monte-carlo-ndim", entry.Name, it.MonteCarloNDim, scfg); err != nil {
			return err
		}
		parallel := func(n int) (float64, error) { return it.MonteCarloParallel(n, cfg.Workers) }
		if err := logTiming(ctx, "monte-carlo-parallel", entry.Name, parallel, scfg); err != nil {
			return err
		}
	}
	return nil
}

func logTiming(ctx context.Context, method, fn string, est quadbench.Estimator, tcfg quadbench.TimingConfig) error {
	report, err := quadbench.RunTiming(ctx, est, tcfg)
	if err != nil {
		return err
	}
	for _, r := range report.Results {
		stats := quadbench.CalculateDurationStats(r)
		slog.Info("timing", "run", report.RunID, "method", method, "f", fn,
			"n", r.Count, "mean", stats.Mean, "stddev", stats.Stddev,
			"estimate", r.Estimate)
	}
	return nil
}

// runAccuracySuite measures relative error against the Gauss-Legendre
// reference for every catalog entry.
func runAccuracySuite(cfg SuiteConfig) error {
	for _, entry := range quadbench.Catalog1D {
		it, err := quadbench.New1D(entry.F, cfg.XMin, cfg.XMax)
		if err != nil {
			return err
		}
		want := quadbench.Reference(entry.F, cfg.XMin, cfg.XMax)

		if err := logErrors("midpoint", entry.Name, it.CompositeMidpoint, want, cfg.Divisions); err != nil {
			return err
		}
		if err := logErrors("simpson", entry.Name, it.Simpsons, want, cfg.Divisions); err != nil {
			return err
		}
	}

	for _, entry := range quadbench.CatalogND {
		lower, upper := unitBox(entry.Dims)
		it, err := quadbench.New(entry.F, lower, upper)
		if err != nil {
			return err
		}
		want, err := quadbench.ReferenceNDim(entry.F, lower, upper)
		if err != nil {
			return err
		}

		if err := logErrors("midpoint-ndim", entry.Name, it.CompositeMidpointNDim, want, cfg.DivisionsNDim); err != nil {
			return err
		}
		if err := logErrors("simpson-ndim", entry.Name, it.SimpsonsNDim, want, cfg.DivisionsNDim); err != nil {
			return err
		}
		if err := logErrors("monte-carlo-ndim", entry.Name, it.MonteCarloNDim, want, cfg.Samples); err != nil {
			return err
		}
	}
	return nil
}

func logErrors(method, fn string, est quadbench.Estimator, want float64, counts []int) error {
	errs, err := quadbench.ErrorSweep(est, want, counts)
	if err != nil {
		return err
	}
	for i, n := range counts {
		slog.Info("accuracy", "method", method, "f", fn, "n", n,
			"relative_error", errs[i], "reference", want)
	}
	return nil
}
