package quadbench

import "math"

// Canonical 1-D test integrands. The higher powers are scaled down so that
// over [0, 10] all six integrate to values of comparable magnitude, which
// keeps relative-error sweeps comparable across the catalog.

// Square is f(x) = x².
func Square(x float64) float64 { return x * x }

// Cube is f(x) = x³/10³.
func Cube(x float64) float64 { return x * x * x / 1e3 }

// Quartic is f(x) = x⁴/10⁴.
func Quartic(x float64) float64 { return x * x * x * x / 1e4 }

// Quintic is f(x) = x⁵/10⁵.
func Quintic(x float64) float64 { return x * x * x * x * x / 1e5 }

// Sine is f(x) = sin(x).
func Sine(x float64) float64 { return math.Sin(x) }

// Exp is f(x) = eˣ.
func Exp(x float64) float64 { return math.Exp(x) }

// CatalogEntry is one named 1-D test integrand.
type CatalogEntry struct {
	Name string
	F    Func1D
}

// Catalog1D lists the 1-D test integrands in sweep order.
var Catalog1D = []CatalogEntry{
	{Name: "f(x) = x^2", F: Square},
	{Name: "f(x) = x^3 / 10^3", F: Cube},
	{Name: "f(x) = x^4 / 10^4", F: Quartic},
	{Name: "f(x) = x^5 / 10^5", F: Quintic},
	{Name: "f(x) = sin(x)", F: Sine},
	{Name: "f(x) = exp(x)", F: Exp},
}

// SumSquared returns f(x) = (x₁ + ... + x_d)², the polynomial test
// integrand at any dimension.
func SumSquared(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s * s
}

// SineSum is f(x, y) = sin(x + y).
func SineSum(x []float64) float64 { return math.Sin(x[0] + x[1]) }

// ExpSum is f(x, y) = e^(x+y).
func ExpSum(x []float64) float64 { return math.Exp(x[0] + x[1]) }

// CatalogEntryND is one named multivariate test integrand with its
// dimensionality.
type CatalogEntryND struct {
	Name string
	F    Func
	Dims int
}

// CatalogND lists the multivariate test integrands in sweep order. The
// (Σxᵢ)² family spans d = 2..5 to expose how grid-method cost grows as n^d
// while Monte Carlo cost does not.
var CatalogND = []CatalogEntryND{
	{Name: "f(x, y) = (x + y)^2", F: SumSquared, Dims: 2},
	{Name: "f(x, y) = sin(x + y)", F: SineSum, Dims: 2},
	{Name: "f(x, y) = exp(x + y)", F: ExpSum, Dims: 2},
	{Name: "f(x, y, z) = (x + y + z)^2", F: SumSquared, Dims: 3},
	{Name: "f(x, y, z, q) = (x + y + z + q)^2", F: SumSquared, Dims: 4},
	{Name: "f(x, y, z, q, r) = (x + y + z + q + r)^2", F: SumSquared, Dims: 5},
}
