package geodesic

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a subdivided icosahedron projected onto a sphere. Grids are
// immutable once New returns and can be read from any number of goroutines.
type Grid struct {
	level int
	radius float64
	lat *lattice
	codec *treeCodec

	dirs []r3.Vec
	east, north []r3.Vec
	dualAreas []float64
	faces [][3]int

	// Neighbors of vertex m are neighbors[neighborStart[m]:neighborStart[m+1]].
	neighborStart []int
	neighbors []int

	baseIDs [BaseFaces][3]int
	baseCenters [BaseFaces]r3.Vec
	meanEdge float64
}

var (
	xAxis = r3.Vec{ X: 1 }
	yAxis = r3.Vec{ Y: 1 }
	zAxis = r3.Vec{ Z: 1 }
)

// New creates a grid that has been subdivided level times and which sits on
// a sphere with the given radius. level must be in [0, MaxLevel] and radius
// must be non-negative.
func New(level int, radius float64) *Grid {
	if level < 0 || level > MaxLevel {
		panic(fmt.Sprintf("Subdivision level %d is outside the supported " +
			"range [0, %d].", level, MaxLevel))
	} else if radius < 0 || math.IsNaN(radius) {
		panic(fmt.Sprintf("Grid radius %g is negative.", radius))
	}

	t := newTree(level)
	t.subdivide()

	g := &Grid{
		level: level,
		radius: radius,
		lat: t.lat,
		codec: t.codec,
		dirs: t.positions,
		faces: t.faceIDs(),
	}
	for f := range g.baseIDs {
		g.baseIDs[f] = t.base[f].ids
		a, b, c := g.baseIDs[f][0], g.baseIDs[f][1], g.baseIDs[f][2]
		g.baseCenters[f] = r3.Unit(r3.Add(g.dirs[a], r3.Add(g.dirs[b], g.dirs[c])))
	}

	g.orientFaces()
	g.initNeighbors()
	g.initFrames()
	g.initDualAreas()
	g.initMeanEdge()

	return g
}

// orientFaces orders the corners of each face counter-clockwise when viewed
// from outside the sphere.
func (g *Grid) orientFaces() {
	for i := range g.faces {
		f := &g.faces[i]
		a, b, c := g.dirs[f[0]], g.dirs[f[1]], g.dirs[f[2]]
		if r3.Dot(a, r3.Cross(b, c)) < 0 {
			f[1], f[2] = f[2], f[1]
		}
	}
}

// initNeighbors builds the vertex adjacency list from the faces.
func (g *Grid) initNeighbors() {
	nv := len(g.dirs)

	// Every face adds each of its corners' two other corners, so every
	// edge shows up twice per endpoint before duplicates are removed.
	start := make([]int, nv + 1)
	for _, f := range g.faces {
		for _, v := range f { start[v + 1] += 2 }
	}
	for v := 0; v < nv; v++ { start[v + 1] += start[v] }

	raw := make([]int, start[nv])
	fill := append([]int{}, start[:nv]...)
	for _, f := range g.faces {
		for i, v := range f {
			raw[fill[v]] = f[(i + 1) % 3]
			raw[fill[v] + 1] = f[(i + 2) % 3]
			fill[v] += 2
		}
	}

	g.neighborStart = make([]int, nv + 1)
	n := 0
	for v := 0; v < nv; v++ {
		seg := raw[start[v]: start[v + 1]]
		sort.Ints(seg)

		g.neighborStart[v] = n
		prev := -1
		for _, w := range seg {
			if w == prev { continue }
			raw[n] = w
			n++
			prev = w
		}
	}
	g.neighborStart[nv] = n
	g.neighbors = raw[:n:n]
}

func (g *Grid) initFrames() {
	g.east = make([]r3.Vec, len(g.dirs))
	g.north = make([]r3.Vec, len(g.dirs))
	for m, n := range g.dirs {
		g.east[m], g.north[m] = tangents(n, zAxis)
	}
}

// tangents returns the east and north directions at a point with the unit
// normal n, where north points towards pole. If n is parallel to pole, the
// coordinate axis least aligned with n stands in for the pole.
func tangents(n, pole r3.Vec) (east, north r3.Vec) {
	east = r3.Cross(pole, n)
	if r3.Norm(east) < 1e-12 {
		ref := xAxis
		for _, axis := range []r3.Vec{ yAxis, zAxis } {
			if math.Abs(r3.Dot(axis, n)) < math.Abs(r3.Dot(ref, n)) {
				ref = axis
			}
		}
		east = r3.Cross(ref, n)
	}
	east = r3.Unit(east)
	return east, r3.Cross(n, east)
}

// initDualAreas gives each vertex a third of the area of every face it
// touches. Face areas are computed on the unit sphere with the
// Van Oosterom-Strackee formula for solid angles.
func (g *Grid) initDualAreas() {
	g.dualAreas = make([]float64, len(g.dirs))
	r2 := g.radius*g.radius
	for _, f := range g.faces {
		area := sphericalArea(g.dirs[f[0]], g.dirs[f[1]], g.dirs[f[2]]) * r2
		for _, v := range f { g.dualAreas[v] += area / 3 }
	}
}

func sphericalArea(a, b, c r3.Vec) float64 {
	num := math.Abs(r3.Dot(a, r3.Cross(b, c)))
	den := 1 + r3.Dot(a, b) + r3.Dot(b, c) + r3.Dot(c, a)
	return 2*math.Atan2(num, den)
}

// angle returns the angle between two unit vectors.
func angle(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

func (g *Grid) initMeanEdge() {
	sum, n := 0.0, 0
	for v := range g.dirs {
		for _, w := range g.Neighbors(v) {
			if w < v { continue }
			sum += angle(g.dirs[v], g.dirs[w])
			n++
		}
	}
	g.meanEdge = sum / float64(n)
}

// Level returns the number of times the grid was subdivided.
func (g *Grid) Level() int { return g.level }
// Radius returns the radius of the sphere the grid sits on.
func (g *Grid) Radius() float64 { return g.radius }
// Side returns the number of lattice steps along each edge of a base face.
func (g *Grid) Side() int { return g.lat.n }
// VertexCount returns the number of vertices in the grid, 10*4^N + 2.
func (g *Grid) VertexCount() int { return len(g.dirs) }

// VertexDirection returns the unit vector pointing towards vertex m.
func (g *Grid) VertexDirection(m int) r3.Vec {
	g.checkMemoryID(m)
	return g.dirs[m]
}

// VertexPosition returns the position of vertex m on the sphere.
func (g *Grid) VertexPosition(m int) r3.Vec {
	g.checkMemoryID(m)
	return r3.Scale(g.radius, g.dirs[m])
}

// VertexNormal returns the outward unit normal of the sphere at vertex m.
func (g *Grid) VertexNormal(m int) r3.Vec {
	g.checkMemoryID(m)
	return g.dirs[m]
}

// VertexEast returns the unit vector pointing east at vertex m, taking +z as
// north. At the poles, where east is undefined, the tangent frame is built
// from the x-axis instead.
func (g *Grid) VertexEast(m int) r3.Vec {
	g.checkMemoryID(m)
	return g.east[m]
}

// VertexNorth returns the unit vector pointing north at vertex m, taking +z
// as north.
func (g *Grid) VertexNorth(m int) r3.Vec {
	g.checkMemoryID(m)
	return g.north[m]
}

// VertexDualArea returns the area of the sphere associated with vertex m.
// The dual areas of all vertices sum to the area of the sphere.
func (g *Grid) VertexDualArea(m int) float64 {
	g.checkMemoryID(m)
	return g.dualAreas[m]
}

// VertexFrame returns the local frame at vertex m as a 3 x 3 matrix whose
// columns are the east, north, and normal unit vectors. pole gives the
// direction that counts as north and need not be normalized.
func (g *Grid) VertexFrame(m int, pole r3.Vec) *mat.Dense {
	g.checkMemoryID(m)
	if r3.Norm(pole) == 0 {
		panic("Reference pole of a vertex frame cannot be the zero vector.")
	}

	n := g.dirs[m]
	east, north := tangents(n, r3.Unit(pole))
	return mat.NewDense(3, 3, []float64{
		east.X, north.X, n.X,
		east.Y, north.Y, n.Y,
		east.Z, north.Z, n.Z,
	})
}

// Faces returns the corner memory ids of every face of the grid, ordered
// counter-clockwise when viewed from outside the sphere. The returned slice
// must not be modified.
func (g *Grid) Faces() [][3]int { return g.faces }

// Neighbors returns the memory ids of the vertices which share an edge with
// vertex m, in increasing order. The returned slice must not be modified.
func (g *Grid) Neighbors(m int) []int {
	g.checkMemoryID(m)
	return g.neighbors[g.neighborStart[m]: g.neighborStart[m + 1]]
}

// MeanEdgeLength returns the mean great-circle length of the grid's edges.
func (g *Grid) MeanEdgeLength() float64 { return g.meanEdge * g.radius }
