package quadbench

import (
	"math/rand/v2"
	"sync"
	"time"
)

// seedFunc provides the seed for each Monte Carlo run. Override via
// SetSeedFunc in tests for reproducible estimates.
var seedFunc = func() uint64 { return uint64(time.Now().UnixNano()) }

// SetSeedFunc overrides the Monte Carlo seed provider (use only in tests).
func SetSeedFunc(f func() uint64) { seedFunc = f }

// newSource returns an independent PCG stream for one run, or for one
// worker when stream is nonzero.
func newSource(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seedFunc(), stream))
}

// MonteCarlo estimates the 1-D integral from n independent uniform samples
// over [a, b], as mean(f(samples)) · (b - a). The estimate's standard
// deviation shrinks as O(1/√n).
func (it *Integral) MonteCarlo(n int) (float64, error) {
	if err := it.need1D(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrInvalidCount
	}

	rng := newSource(0)
	a := it.lower[0]
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += it.f1(a + it.width*rng.Float64())
	}
	return sum / float64(n) * it.width, nil
}

// MonteCarloNDim estimates the integral from n independent uniform points
// in the d-dimensional box, as mean(f(points)) · volume. The O(1/√n) error
// is independent of dimension, which makes sampling the method of choice
// once grid methods' n^d cost bites.
func (it *Integral) MonteCarloNDim(n int) (float64, error) {
	if n < 1 {
		return 0, ErrInvalidCount
	}

	rng := newSource(0)
	point := make([]float64, it.dims)
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < it.dims; j++ {
			point[j] = it.lower[j] + (it.upper[j]-it.lower[j])*rng.Float64()
		}
		sum += it.f(point)
	}
	return sum / float64(n) * it.boxVolume(), nil
}

// MonteCarloParallel is MonteCarloNDim with sampling fanned out across
// workers. Samples have no ordering requirements, so the work splits
// cleanly; each worker draws from its own PCG stream to keep the draws
// uncorrelated. Workers below 1 are treated as 1. The integrand must be
// safe for concurrent calls.
func (it *Integral) MonteCarloParallel(n, workers int) (float64, error) {
	if n < 1 {
		return 0, ErrInvalidCount
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	perWorker := n / workers
	remainder := n % workers

	var wg sync.WaitGroup
	partials := make(chan float64, workers)

	for w := 0; w < workers; w++ {
		samples := perWorker
		if w == workers-1 {
			samples += remainder
		}

		wg.Add(1)
		go func(stream uint64, samples int) {
			defer wg.Done()
			rng := newSource(stream)
			point := make([]float64, it.dims)
			sum := 0.0
			for i := 0; i < samples; i++ {
				for j := 0; j < it.dims; j++ {
					point[j] = it.lower[j] + (it.upper[j]-it.lower[j])*rng.Float64()
				}
				sum += it.f(point)
			}
			partials <- sum
		}(uint64(w+1), samples)
	}

	wg.Wait()
	close(partials)

	total := 0.0
	for p := range partials {
		total += p
	}
	return total / float64(n) * it.boxVolume(), nil
}

// boxVolume is the volume of the integration box.
func (it *Integral) boxVolume() float64 {
	v := 1.0
	for i := 0; i < it.dims; i++ {
		v *= it.upper[i] - it.lower[i]
	}
	return v
}
