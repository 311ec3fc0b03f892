/*package raster stores values at the vertices of a geodesic grid and moves
them between grids that are rotated relative to one another.

A Raster[T] is a plain array indexed by memory id. Numeric operations on
rasters take a "capability" value (Scalars or Vectors) which tells them how to
add, compare, measure, and serialize values of type T:

   sum := raster.Sum(raster.Scalars{ }, r)
   err := raster.WriteFile("temp.dym", raster.Scalars{ }, r)
*/
package raster

import (
	"fmt"

	"github.com/phil-mansfield/dymaxion/lib/geodesic"
)

// Raster is an array of values, one for each vertex of a grid.
type Raster[T any] struct {
	grid *geodesic.Grid
	data []T
}

// New creates a zeroed raster on the grid g.
func New[T any](g *geodesic.Grid) *Raster[T] {
	return &Raster[T]{ g, make([]T, g.VertexCount()) }
}

// FromSlice creates a raster on the grid g that uses data as its storage.
// data must have one element for each vertex of g.
func FromSlice[T any](g *geodesic.Grid, data []T) *Raster[T] {
	if len(data) != g.VertexCount() {
		panic(fmt.Sprintf("Raster data has %d elements, but the grid has " +
			"%d vertices.", len(data), g.VertexCount()))
	}
	return &Raster[T]{ g, data }
}

// Grid returns the grid that the raster lives on.
func (r *Raster[T]) Grid() *geodesic.Grid { return r.grid }

// Len returns the number of values in the raster.
func (r *Raster[T]) Len() int { return len(r.data) }

// At returns the value at memory id m.
func (r *Raster[T]) At(m int) T { return r.data[m] }

// Set sets the value at memory id m.
func (r *Raster[T]) Set(m int, x T) { r.data[m] = x }

// Data returns the underlying storage of the raster, indexed by memory id.
func (r *Raster[T]) Data() []T { return r.data }

// Fill sets every value in the raster to x.
func (r *Raster[T]) Fill(x T) {
	for i := range r.data { r.data[i] = x }
}

// Copy returns a deep copy of the raster on the same grid.
func (r *Raster[T]) Copy() *Raster[T] {
	return &Raster[T]{ r.grid, append([]T{ }, r.data...) }
}

// Evaluate sets the value at every vertex to f evaluated at its memory id.
func Evaluate[T any](r *Raster[T], f func(m int) T) {
	for m := range r.data { r.data[m] = f(m) }
}

// Map sets every value in out to f applied to the corresponding value in in.
// in and out may be the same raster.
func Map[T, U any](in *Raster[T], out *Raster[U], f func(x T) U) {
	sameLevel(in, out)
	for m := range in.data { out.data[m] = f(in.data[m]) }
}

// Combine sets every value in out to f applied to the corresponding values in
// a and b.
func Combine[T any](a, b, out *Raster[T], f func(x, y T) T) {
	sameLevel(a, b)
	sameLevel(a, out)
	for m := range a.data { out.data[m] = f(a.data[m], b.data[m]) }
}

// sameLevel panics if two rasters are on grids with different subdivision
// levels.
func sameLevel[T, U any](a *Raster[T], b *Raster[U]) {
	if a.grid.Level() != b.grid.Level() {
		panic(fmt.Sprintf("Rasters are on grids with subdivision levels " +
			"%d and %d.", a.grid.Level(), b.grid.Level()))
	}
}
