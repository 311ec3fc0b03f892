package raster

/* resample.go moves raster values between grids whose reference frames are
related by a linear transformation. */

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/thread"
)

// SingularLimit is the smallest |det| that Localize will invert.
const SingularLimit = 1e-12

// transform is a 3 x 3 matrix unpacked for fast application.
type transform [9]float64

func newTransform(m mat.Matrix) transform {
	if r, c := m.Dims(); r != 3 || c != 3 {
		panic(fmt.Sprintf("Resampling transform is %d x %d, not 3 x 3.", r, c))
	}
	var t transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ { t[3*i + j] = m.At(i, j) }
	}
	return t
}

func (t *transform) apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z,
		Y: t[3]*v.X + t[4]*v.Y + t[5]*v.Z,
		Z: t[6]*v.X + t[7]*v.Y + t[8]*v.Z,
	}
}

// Resample fills dst by looking up, for every destination vertex, the source
// vertex nearest to destToSource times the destination vertex's direction.
// Values are copied, not interpolated. Both rasters must be on grids with the
// same subdivision level. src is only read, so it may share a grid with dst,
// but the two rasters must not share storage.
func Resample[T any](destToSource mat.Matrix, src, dst *Raster[T]) {
	sameLevel(src, dst)
	t := newTransform(destToSource)
	srcGrid, dstGrid := src.grid, dst.grid

	thread.For(dst.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			dir := t.apply(dstGrid.VertexDirection(i))
			dst.data[i] = src.data[srcGrid.NearestVertexID(dir)]
		}
	})
}

// Globalize resamples a raster from a local frame into the global frame.
// globalToLocal takes vectors in the global frame to the local frame.
func Globalize[T any](globalToLocal mat.Matrix, local, global *Raster[T]) {
	Resample(globalToLocal, local, global)
}

// Localize resamples a raster from the global frame into a local frame. It is
// the inverse of Globalize and panics if globalToLocal is singular.
func Localize[T any](globalToLocal mat.Matrix, global, local *Raster[T]) {
	det := mat.Det(globalToLocal)
	if math.Abs(det) < SingularLimit || math.IsNaN(det) {
		panic(fmt.Sprintf("Cannot localize with a singular transform " +
			"(determinant = %g).", det))
	}

	var localToGlobal mat.Dense
	if err := localToGlobal.Inverse(globalToLocal); err != nil {
		panic(fmt.Sprintf("Cannot localize with the transform %v: %s",
			mat.Formatted(globalToLocal, mat.Squeeze()), err.Error()))
	}
	Resample(&localToGlobal, global, local)
}

// Rotation returns the matrix that rotates vectors by angle radians
// counter-clockwise around axis, which need not be normalized.
func Rotation(axis r3.Vec, angle float64) *mat.Dense {
	if r3.Norm(axis) == 0 {
		panic("Rotation axis cannot be the zero vector.")
	}
	rot := r3.NewRotation(angle, axis)
	m := mat.NewDense(3, 3, nil)
	for j, e := range []r3.Vec{ { X: 1 }, { Y: 1 }, { Z: 1 } } {
		col := rot.Rotate(e)
		m.Set(0, j, col.X)
		m.Set(1, j, col.Y)
		m.Set(2, j, col.Z)
	}
	return m
}
