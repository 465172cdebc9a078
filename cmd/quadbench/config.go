package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SuiteConfig selects the domains and sweep ranges for the experiment
// suites. Multivariate suites always integrate over the unit box [0,1]^d;
// XMin/XMax apply to the 1-D catalog only.
type SuiteConfig struct {
	XMin          float64 `yaml:"x_min"`
	XMax          float64 `yaml:"x_max"`
	Divisions     []int   `yaml:"divisions"`      // 1-D subdivision sweep
	DivisionsNDim []int   `yaml:"divisions_ndim"` // per-axis sweep; n^d cells, keep small
	Samples       []int   `yaml:"samples"`        // Monte Carlo sample sweep
	Repeats       int     `yaml:"repeats"`        // timed repetitions per count
	Workers       int     `yaml:"workers"`        // Monte Carlo parallel workers
	Tolerance     float64 `yaml:"tolerance"`      // adaptive tolerance
}

// DefaultSuiteConfig mirrors the historical experiment setup: [0, 10] for
// the 1-D catalog, doubling sweeps, and a small per-axis range for the
// grid methods whose cost grows as n^d.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		XMin:          0,
		XMax:          10,
		Divisions:     []int{1, 2, 4, 8, 16, 32, 64, 128},
		DivisionsNDim: []int{1, 2, 4, 8},
		Samples:       []int{100, 1000, 10000, 100000},
		Repeats:       3,
		Workers:       4,
		Tolerance:     1e-4,
	}
}

// LoadSuiteConfig reads a YAML suite file, or returns the defaults when
// path is empty. Omitted fields keep their default values.
func LoadSuiteConfig(path string) (SuiteConfig, error) {
	cfg := DefaultSuiteConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading suite config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing suite config %s: %w", path, err)
	}

	if cfg.XMin >= cfg.XMax {
		return cfg, fmt.Errorf("suite config: x_min %g must be below x_max %g", cfg.XMin, cfg.XMax)
	}
	if cfg.Repeats < 1 {
		cfg.Repeats = 1
	}
	return cfg, nil
}

// unitBox returns the bounds of [0,1]^d.
func unitBox(d int) (lower, upper []float64) {
	lower = make([]float64, d)
	upper = make([]float64, d)
	for i := range upper {
		upper[i] = 1
	}
	return lower, upper
}
