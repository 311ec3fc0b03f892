/*package geodesic builds subdivided icosahedra ("geodesic" or "dymaxion"
grids) and answers questions about them: converting between the different ways
of naming a vertex and finding the vertex nearest to an arbitrary direction.

The 20 faces of the base icosahedron are grouped pairwise into 10 squares.
Northern square k has its origin at the k-th vertex of the upper ring, an
x-axis running towards the north pole and a y-axis running towards the k-th
vertex of the lower ring. Southern square 5+k has its origin at the k-th lower
ring vertex, an x-axis running towards the (k+1)-th upper ring vertex and a
y-axis running towards the south pole. Subdividing the grid N times puts a
lattice of side n = 2^N on every square, and each square owns the n*n lattice
points with 0 <= x, y < n. The two poles are owned by no square, giving
10*4^N + 2 vertices in total.
*/
package geodesic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Squares is the number of squares that own lattice points.
	Squares = 10
	// PoleSquare is the pseudo-square used in the grid ids of the poles.
	PoleSquare = 10
	// BaseFaces is the number of faces of the base icosahedron.
	BaseFaces = 20
	// BaseVertices is the number of vertices of the base icosahedron.
	BaseVertices = 12
	// MaxLevel is the largest supported subdivision level. Grids at this
	// level have about 1e7 vertices.
	MaxLevel = 10
)

// ringLatitude is the latitude of the upper ring of the icosahedron.
var ringLatitude = math.Atan(0.5)

// upper returns the k-th vertex of the upper ring. k is taken modulo 5.
func upper(k int) r3.Vec {
	return ringVertex(ringLatitude, 2*math.Pi*float64(pMod(k, 5))/5)
}

// lower returns the k-th vertex of the lower ring. k is taken modulo 5.
func lower(k int) r3.Vec {
	return ringVertex(-ringLatitude,
		2*math.Pi*(float64(pMod(k, 5)) + 0.5)/5)
}

func ringVertex(lat, lon float64) r3.Vec {
	return r3.Vec{
		X: math.Cos(lat)*math.Cos(lon),
		Y: math.Cos(lat)*math.Sin(lon),
		Z: math.Sin(lat),
	}
}

var (
	northPole = r3.Vec{ X: 0, Y: 0, Z: +1 }
	southPole = r3.Vec{ X: 0, Y: 0, Z: -1 }
)

// squareCorners returns the positions of the origin, x-end, y-end, and far
// corner of a square.
func squareCorners(square int) (o, a, b, f r3.Vec) {
	if square < 5 {
		k := square
		return upper(k), northPole, lower(k), upper(k + 1)
	}
	k := square - 5
	return lower(k), upper(k + 1), southPole, lower(k + 1)
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 { m += y }
	return m
}
