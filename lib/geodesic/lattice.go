package geodesic

/* lattice.go contains the exact integer arithmetic behind every id
conversion: locating points on the square lattices, naming the vertex that
owns them, and walking down the subdivision of a face. */

import (
	"fmt"

	"github.com/phil-mansfield/dymaxion/lib/index"
)

// point is a lattice coordinate inside a square. Unlike a GridID, x and y can
// be as large as the side of the lattice, so points on the far edges of a
// square are named relative to that square rather than relative to their
// owner.
type point struct {
	square, x, y int
}

// lattice knows the layout of memory ids for one subdivision level.
type lattice struct {
	n int
	squares index.Interleaving
	cells index.Cartesian
}

func newLattice(level int) *lattice {
	n := index.Pow(2, level)
	return &lattice{
		n: n,
		squares: index.NewInterleaving(n*n),
		cells: index.NewCartesian(n),
	}
}

// vertices returns the number of vertices in the grid.
func (lat *lattice) vertices() int { return Squares*lat.n*lat.n + 2 }

// north and south return the memory ids of the poles.
func (lat *lattice) north() int { return Squares*lat.n*lat.n }
func (lat *lattice) south() int { return Squares*lat.n*lat.n + 1 }

// owned returns the memory id of a point owned by its square.
func (lat *lattice) owned(square, x, y int) int {
	return lat.squares.InterleavedID(square, lat.cells.ID(x, y))
}

// canonical returns the memory id of the vertex at p. Points on the far
// edges of a square are handed to the neighboring square that owns them.
func (lat *lattice) canonical(p point) int {
	n := lat.n
	if p.x < 0 || p.y < 0 || p.x > n || p.y > n ||
		p.square < 0 || p.square >= Squares {
		panic(fmt.Sprintf("Internal error: lattice point %v is outside " +
			"of the lattice with side %d.", p, n))
	}

	if p.x < n && p.y < n { return lat.owned(p.square, p.x, p.y) }

	if p.square < 5 {
		k := p.square
		switch {
		case p.x == n && p.y == 0:
			return lat.north()
		case p.x == n:
			// Shared edge with the next northern square's x-axis.
			return lat.owned(pMod(k + 1, 5), n - p.y, 0)
		default:
			// Shared edge with the southern square's x-axis.
			return lat.owned(5 + k, p.x, 0)
		}
	}

	k := p.square - 5
	switch {
	case p.x == 0 && p.y == n:
		return lat.south()
	case p.y == n:
		// Shared edge with the next southern square's y-axis.
		return lat.owned(5 + pMod(k + 1, 5), 0, n - p.x)
	default:
		// Shared edge with the next northern square's y-axis.
		return lat.owned(pMod(k + 1, 5), 0, p.y)
	}
}

// ownerPoint returns the lattice point of a memory id in the coordinates of
// the square that owns it. The poles are placed on the squares whose face
// they are canonically assigned to: the north pole on square 0 and the south
// pole on square 5.
func (lat *lattice) ownerPoint(id int) point {
	switch id {
	case lat.north(): return point{ 0, lat.n, 0 }
	case lat.south(): return point{ 5, 0, lat.n }
	}
	x, y := lat.cells.Coords(lat.squares.ElementID(id))
	return point{ lat.squares.BlockID(id), x, y }
}

// ownerFace returns the base face that the canonical tree id of a point
// descends through. p must come from ownerPoint.
func ownerFace(p point) int {
	if p.x >= p.y { return 2*p.square }
	return 2*p.square + 1
}

// triangle is a face at some level of the subdivision, given by the lattice
// coordinates of its three corners within a single square.
type triangle struct {
	square int
	c [3][2]int
	side int
}

// baseTriangle returns face f of the base icosahedron. Face 2*s is the half of
// square s between its origin, x-end and far corner, face 2*s + 1 the half
// between its origin, y-end and far corner.
func (lat *lattice) baseTriangle(f int) triangle {
	n := lat.n
	square, half := f/2, f%2
	if half == 0 {
		return triangle{ square, [3][2]int{ {0, 0}, {n, 0}, {n, n} }, n }
	}
	return triangle{ square, [3][2]int{ {0, 0}, {0, n}, {n, n} }, n }
}

// corner returns the lattice point of corner i.
func (tri *triangle) corner(i int) point {
	return point{ tri.square, tri.c[i][0], tri.c[i][1] }
}

func mid(p, q [2]int) [2]int {
	return [2]int{ (p[0] + q[0])/2, (p[1] + q[1])/2 }
}

// child returns one of the four triangles created by bisecting each edge.
// Children 0, 1, and 2 contain corners a, b, and c, respectively, in the same
// slot as the parent. Child 3 is the central triangle.
func (tri *triangle) child(i int) triangle {
	a, b, c := tri.c[0], tri.c[1], tri.c[2]
	ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)

	out := triangle{ square: tri.square, side: tri.side/2 }
	switch i {
	case 0: out.c = [3][2]int{ a, ab, ca }
	case 1: out.c = [3][2]int{ ab, b, bc }
	case 2: out.c = [3][2]int{ ca, bc, c }
	case 3: out.c = [3][2]int{ bc, ca, ab }
	default:
		panic(fmt.Sprintf("Internal error: child index %d is not in " +
			"[0, 4).", i))
	}
	return out
}

// barycentric returns the integer barycentric weights of p relative to the
// triangle's corners, in units of lattice steps. The weights sum to the side
// length of the triangle and are all non-negative if p lies inside it.
func (tri *triangle) barycentric(p [2]int) [3]int {
	s := tri.side
	e1 := [2]int{ (tri.c[1][0] - tri.c[0][0])/s, (tri.c[1][1] - tri.c[0][1])/s }
	e2 := [2]int{ (tri.c[2][0] - tri.c[0][0])/s, (tri.c[2][1] - tri.c[0][1])/s }
	dx, dy := p[0] - tri.c[0][0], p[1] - tri.c[0][1]

	// The edge vectors of every lattice triangle are unimodular, so det is
	// +1 or -1 and the division is exact.
	det := e1[0]*e2[1] - e1[1]*e2[0]
	u := (dx*e2[1] - dy*e2[0]) / det
	v := (e1[0]*dy - e1[1]*dx) / det
	return [3]int{ s - u - v, u, v }
}

// locate returns the child of tri that p falls in. Points shared between
// children go to the corner children before the central one, and to the
// lowest corner slot among corner children.
func (tri *triangle) locate(p [2]int) int {
	w := tri.barycentric(p)
	half := tri.side/2
	for i := 0; i < 3; i++ {
		if w[i] >= half { return i }
	}
	return 3
}

// cornerOf returns the slot of the corner that p sits on. tri must have side
// one and contain p.
func (tri *triangle) cornerOf(p [2]int) int {
	w := tri.barycentric(p)
	for i := 0; i < 3; i++ {
		if w[i] == tri.side { return i }
	}
	panic(fmt.Sprintf("Internal error: %v is not a corner of the " +
		"triangle %v.", p, tri.c))
}
