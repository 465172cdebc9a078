package quadbench

import (
	"gonum.org/v1/gonum/floats"
)

// grid is the shared geometry for the n-dimensional composite rules: per
// axis the cell width, the first and last cell midpoints, and the cell
// volume. Both NDim rules derive their lattice from the same grid so their
// results are comparable on identical geometry.
type grid struct {
	widths []float64 // per-axis cell width
	starts []float64 // per-axis first cell midpoint (lower + width/2)
	ends   []float64 // per-axis last cell midpoint (upper - width/2)
	volume float64   // product of per-axis widths
	dims   int
}

// establishGrid computes the grid for n subdivisions per axis.
func (it *Integral) establishGrid(n int) grid {
	widths := make([]float64, it.dims)
	starts := make([]float64, it.dims)
	ends := make([]float64, it.dims)
	for i := 0; i < it.dims; i++ {
		w := (it.upper[i] - it.lower[i]) / float64(n)
		widths[i] = w
		starts[i] = it.lower[i] + w/2
		ends[i] = it.upper[i] - w/2
	}
	return grid{
		widths: widths,
		starts: starts,
		ends:   ends,
		volume: floats.Prod(widths),
		dims:   it.dims,
	}
}

// walk visits every cell midpoint exactly once, axis 0 varying fastest.
// The visited slice is reused between calls; visitors must not retain it.
//
// Coordinates advance by repeated addition of the cell width, so each axis
// accumulates floating-point drift across a row. The termination test
// therefore compares against the row end shifted by half a step:
//
//	point[d] + width[d] >= end[d] + width[d]/2
//
// Without the half-step slack, drift of a few ulps makes rows gain or lose
// a cell for some (bounds, n) pairs.
func (g grid) walk(visit func(midpoint []float64)) {
	point := make([]float64, g.dims)
	copy(point, g.starts)

	d := 0
	for {
		for point[d]+g.widths[d] >= g.ends[d]+g.widths[d]/2 {
			d++
			if d == g.dims {
				visit(point)
				return
			}
		}
		visit(point)
		point[d] += g.widths[d]
		for i := 0; i < d; i++ {
			point[i] = g.starts[i]
		}
		d = 0
	}
}

// CompositeMidpointNDim approximates the integral with the composite
// midpoint rule on a regular grid of n subdivisions per axis, accumulating
// cell_volume · f(cell midpoint) over all n^d cells in deterministic
// lexicographic order. At d=1 it agrees with CompositeMidpoint.
func (it *Integral) CompositeMidpointNDim(n int) (float64, error) {
	if n < 1 {
		return 0, ErrInvalidCount
	}

	g := it.establishGrid(n)
	sum := 0.0
	g.walk(func(mid []float64) {
		sum += g.volume * it.f(mid)
	})
	return sum, nil
}

// SimpsonsNDim approximates the integral on the same grid geometry as
// CompositeMidpointNDim, weighting each cell as
//
//	volume/6 · (f(lower corner) + 4·f(midpoint) + f(upper corner))
//
// with the three points aligned along the cell diagonal.
//
// This is a direct generalisation of the 1-D Simpson weighting along a
// single triple per cell, not the tensor-product Simpson rule: it uses 3
// evaluations per cell instead of 3^d, and its order of accuracy is lower
// than the tensor-product rule the name may suggest. At d=1 the two
// coincide and SimpsonsNDim agrees with Simpsons.
func (it *Integral) SimpsonsNDim(n int) (float64, error) {
	if n < 1 {
		return 0, ErrInvalidCount
	}

	g := it.establishGrid(n)
	coeff := g.volume / 6
	lo := make([]float64, g.dims)
	hi := make([]float64, g.dims)
	sum := 0.0
	g.walk(func(mid []float64) {
		for i, w := range g.widths {
			lo[i] = mid[i] - w/2
			hi[i] = mid[i] + w/2
		}
		sum += coeff * (it.f(lo) + 4*it.f(mid) + it.f(hi))
	})
	return sum, nil
}
