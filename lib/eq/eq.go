/*package eq is a simple package for telling whether two arrays are equal to
one another.*/
package eq

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Slices returns true if two arrays have the same length and the same values
// and false otherwise.
func Slices[T comparable](x, y []T) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}

// VecEps returns true if every component of the two vectors is within eps of
// the other and false otherwise.
func VecEps(x, y r3.Vec, eps float64) bool {
	return math.Abs(x.X - y.X) <= eps && math.Abs(x.Y - y.Y) <= eps &&
		math.Abs(x.Z - y.Z) <= eps
}

// VecsEps returns true if two []r3.Vec arrays have the same length and
// every pair of vectors is within eps of one another (see VecEps).
func VecsEps(x, y []r3.Vec, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !VecEps(x[i], y[i], eps) { return false }
	}
	return true
}
