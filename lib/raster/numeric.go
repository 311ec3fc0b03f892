package raster

/* numeric.go contains the capabilities that generic raster operations need
from their element types, along with implementations for scalars and 3-vectors.
*/

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Arithmetic is implemented by types which can add, subtract, and scale
// values of type T.
type Arithmetic[T any] interface {
	Zero() T
	Add(a, b T) T
	Sub(a, b T) T
	Scale(f float64, a T) T
}

// Order is implemented by types which can compare values of type T.
type Order[T any] interface {
	Less(a, b T) bool
}

// Metric is implemented by types which can measure the distance between
// values of type T.
type Metric[T any] interface {
	Distance(a, b T) float64
}

// Layout is implemented by types which can split values of type T into
// float64 components, which is how they are written to disk.
type Layout[T any] interface {
	TypeFlag() TypeFlag
	Components() int
	Split(x []T, comp int, out []float64)
	Join(in []float64, comp int, x []T)
}

// TypeFlag identifies the element type of a raster file.
type TypeFlag uint32

const (
	ScalarFlag TypeFlag = iota
	VectorFlag
)

func (flag TypeFlag) String() string {
	switch flag {
	case ScalarFlag: return "scalar"
	case VectorFlag: return "vector"
	}
	return fmt.Sprintf("TypeFlag(%d)", uint32(flag))
}

// Scalars are the capabilities of float64 values.
type Scalars struct{ }

func (Scalars) Zero() float64 { return 0 }
func (Scalars) Add(a, b float64) float64 { return a + b }
func (Scalars) Sub(a, b float64) float64 { return a - b }
func (Scalars) Scale(f, a float64) float64 { return f*a }
func (Scalars) Less(a, b float64) bool { return a < b }
func (Scalars) Distance(a, b float64) float64 { return math.Abs(a - b) }

func (Scalars) TypeFlag() TypeFlag { return ScalarFlag }
func (Scalars) Components() int { return 1 }
func (Scalars) Split(x []float64, comp int, out []float64) { copy(out, x) }
func (Scalars) Join(in []float64, comp int, x []float64) { copy(x, in) }

// Vectors are the capabilities of r3.Vec values. Vectors are not ordered.
type Vectors struct{ }

func (Vectors) Zero() r3.Vec { return r3.Vec{ } }
func (Vectors) Add(a, b r3.Vec) r3.Vec { return r3.Add(a, b) }
func (Vectors) Sub(a, b r3.Vec) r3.Vec { return r3.Sub(a, b) }
func (Vectors) Scale(f float64, a r3.Vec) r3.Vec { return r3.Scale(f, a) }
func (Vectors) Distance(a, b r3.Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

func (Vectors) TypeFlag() TypeFlag { return VectorFlag }
func (Vectors) Components() int { return 3 }

func (Vectors) Split(x []r3.Vec, comp int, out []float64) {
	switch comp {
	case 0: for i := range x { out[i] = x[i].X }
	case 1: for i := range x { out[i] = x[i].Y }
	case 2: for i := range x { out[i] = x[i].Z }
	default: panic(fmt.Sprintf("Vectors have no component %d.", comp))
	}
}

func (Vectors) Join(in []float64, comp int, x []r3.Vec) {
	switch comp {
	case 0: for i := range x { x[i].X = in[i] }
	case 1: for i := range x { x[i].Y = in[i] }
	case 2: for i := range x { x[i].Z = in[i] }
	default: panic(fmt.Sprintf("Vectors have no component %d.", comp))
	}
}

// Type assertions
var (
	_ Arithmetic[float64] = Scalars{ }
	_ Order[float64] = Scalars{ }
	_ Metric[float64] = Scalars{ }
	_ Layout[float64] = Scalars{ }

	_ Arithmetic[r3.Vec] = Vectors{ }
	_ Metric[r3.Vec] = Vectors{ }
	_ Layout[r3.Vec] = Vectors{ }
)

// Sum returns the sum of every value in r.
func Sum[T any, A Arithmetic[T]](a A, r *Raster[T]) T {
	sum := a.Zero()
	for _, x := range r.data { sum = a.Add(sum, x) }
	return sum
}

// AreaMean returns the mean of r weighted by the dual area of each vertex.
func AreaMean[T any, A Arithmetic[T]](a A, r *Raster[T]) T {
	sum, area := a.Zero(), 0.0
	for m, x := range r.data {
		w := r.grid.VertexDualArea(m)
		sum = a.Add(sum, a.Scale(w, x))
		area += w
	}
	return a.Scale(1/area, sum)
}

// Extrema returns the smallest and largest values in r. r must not be empty.
func Extrema[T any, O Order[T]](o O, r *Raster[T]) (min, max T) {
	min, max = r.data[0], r.data[0]
	for _, x := range r.data[1:] {
		if o.Less(x, min) { min = x }
		if o.Less(max, x) { max = x }
	}
	return min, max
}

// MaxDistance returns the largest distance between corresponding values of
// two rasters.
func MaxDistance[T any, M Metric[T]](met M, a, b *Raster[T]) float64 {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("Rasters have lengths %d and %d.", a.Len(), b.Len()))
	}
	max := 0.0
	for i := range a.data {
		if d := met.Distance(a.data[i], b.data[i]); d > max { max = d }
	}
	return max
}

// ScalarSum returns the sum of a scalar raster.
func ScalarSum(r *Raster[float64]) float64 { return floats.Sum(r.data) }

// ScalarExtrema returns the smallest and largest values of a scalar raster.
func ScalarExtrema(r *Raster[float64]) (min, max float64) {
	return floats.Min(r.data), floats.Max(r.data)
}

// ScalarIntegral returns the integral of a scalar raster over the sphere,
// using the dual area of each vertex as its weight.
func ScalarIntegral(r *Raster[float64]) float64 {
	areas := make([]float64, r.Len())
	for m := range areas { areas[m] = r.grid.VertexDualArea(m) }
	return floats.Dot(r.data, areas)
}

// ScalarDistance returns the Euclidean (L2) distance between two scalar
// rasters.
func ScalarDistance(a, b *Raster[float64]) float64 {
	return floats.Distance(a.data, b.data, 2)
}
