package geodesic

/* identity.go contains the three interchangeable names of a vertex and the
conversions between them. */

import (
	"fmt"

	"github.com/phil-mansfield/dymaxion/lib/index"
)

// GridID locates a vertex within the square that owns it. Square is in
// [0, Squares) and X and Y are in [0, n). The poles use Square = PoleSquare
// with X = 0 for the north pole and X = 1 for the south pole.
type GridID struct {
	Square, X, Y int
}

// TreeID names a vertex by the path taken to it through the subdivision:
//
//   id = ((face * 4^N) + sum_i child_i * 4^(N-i)) * 3 + corner
//
// face is the base face, child_i in [0, 4) is the child triangle taken at
// level i (digits are read most-significant first), and corner in [0, 3) is
// the corner of the final triangle. Several paths lead to the same vertex.
// The canonical path is the one returned by MemoryToTree.
type TreeID int

// TreePath is a decoded TreeID.
type TreePath struct {
	Face int
	Children []int
	Corner int
}

// treeCodec packs and unpacks TreePaths for one subdivision level.
type treeCodec struct {
	level int
	faces, corners index.Interleaving
}

func newTreeCodec(level int) *treeCodec {
	return &treeCodec{
		level: level,
		faces: index.NewInterleaving(index.Pow(4, level)),
		corners: index.NewInterleaving(3),
	}
}

// count returns the number of distinct tree ids.
func (tc *treeCodec) count() int {
	return tc.corners.InterleavedID(
		tc.faces.InterleavedID(BaseFaces, 0), 0,
	)
}

func (tc *treeCodec) encode(path TreePath) TreeID {
	if len(path.Children) != tc.level {
		panic(fmt.Sprintf("Tree path has %d levels, but the grid has %d.",
			len(path.Children), tc.level))
	}
	tri := tc.faces.InterleavedID(path.Face, index.Undigits(path.Children, 4))
	return TreeID(tc.corners.InterleavedID(tri, path.Corner))
}

// decode unpacks id, reusing the Children buffer of out.
func (tc *treeCodec) decode(id TreeID, out *TreePath) {
	tri := tc.corners.BlockID(int(id))
	out.Corner = tc.corners.ElementID(int(id))
	out.Face = tc.faces.BlockID(tri)
	out.Children = index.Digits(tc.faces.ElementID(tri), 4, tc.level,
		out.Children)
}

// treePoint follows a tree path down to the lattice point it ends on.
func (lat *lattice) treePoint(path *TreePath) point {
	tri := lat.baseTriangle(path.Face)
	for _, c := range path.Children {
		tri = tri.child(c)
	}
	return tri.corner(path.Corner)
}

// treePath finds the canonical path to a memory id and writes it to out.
func (lat *lattice) treePath(id int, out *TreePath) {
	p := lat.ownerPoint(id)
	xy := [2]int{ p.x, p.y }

	out.Face = ownerFace(p)
	tri := lat.baseTriangle(out.Face)
	for i := range out.Children {
		c := tri.locate(xy)
		out.Children[i] = c
		tri = tri.child(c)
	}
	out.Corner = tri.cornerOf(xy)
}

// MemoryToGrid returns the grid id of a memory id.
func (g *Grid) MemoryToGrid(id int) GridID {
	g.checkMemoryID(id)
	lat := g.lat
	switch id {
	case lat.north(): return GridID{ PoleSquare, 0, 0 }
	case lat.south(): return GridID{ PoleSquare, 1, 0 }
	}
	x, y := lat.cells.Coords(lat.squares.ElementID(id))
	return GridID{ lat.squares.BlockID(id), x, y }
}

// GridToMemory returns the memory id of a grid id.
func (g *Grid) GridToMemory(gid GridID) int {
	if !g.ValidGridID(gid) {
		panic(fmt.Sprintf("Grid id %v is not valid for a grid with " +
			"side %d.", gid, g.lat.n))
	}
	if gid.Square == PoleSquare { return g.lat.north() + gid.X }
	return g.lat.owned(gid.Square, gid.X, gid.Y)
}

// ValidGridID returns true if gid names a vertex of the grid and false
// otherwise.
func (g *Grid) ValidGridID(gid GridID) bool {
	if gid.Square == PoleSquare {
		return (gid.X == 0 || gid.X == 1) && gid.Y == 0
	}
	return gid.Square >= 0 && gid.Square < Squares &&
		g.lat.cells.Contains(gid.X, gid.Y)
}

// TreeIDCount returns the number of tree ids, canonical or not. Every
// integer in [0, TreeIDCount()) is a path to some vertex.
func (g *Grid) TreeIDCount() int { return g.codec.count() }

// DecodeTree unpacks a tree id into its path.
func (g *Grid) DecodeTree(id TreeID) TreePath {
	g.checkTreeID(id)
	path := TreePath{}
	g.codec.decode(id, &path)
	return path
}

// EncodeTree packs a path into a tree id.
func (g *Grid) EncodeTree(path TreePath) TreeID {
	if path.Face < 0 || path.Face >= BaseFaces ||
		path.Corner < 0 || path.Corner >= 3 {
		panic(fmt.Sprintf("Tree path %v is not valid.", path))
	}
	for _, c := range path.Children {
		if c < 0 || c >= 4 {
			panic(fmt.Sprintf("Tree path %v has a child outside of " +
				"[0, 4).", path))
		}
	}
	return g.codec.encode(path)
}

// TreeToMemory returns the memory id of the vertex that a tree id leads to.
// Any tree id in [0, TreeIDCount()) is accepted, canonical or not.
func (g *Grid) TreeToMemory(id TreeID) int {
	g.checkTreeID(id)
	path := TreePath{ Children: make([]int, 0, g.level) }
	g.codec.decode(id, &path)
	return g.lat.canonical(g.lat.treePoint(&path))
}

// MemoryToTree returns the canonical tree id of a memory id.
func (g *Grid) MemoryToTree(id int) TreeID {
	g.checkMemoryID(id)
	path := TreePath{ Children: make([]int, g.level) }
	g.lat.treePath(id, &path)
	return g.codec.encode(path)
}

// TreeToGrid returns the grid id of the vertex that a tree id leads to.
func (g *Grid) TreeToGrid(id TreeID) GridID {
	return g.MemoryToGrid(g.TreeToMemory(id))
}

// GridToTree returns the canonical tree id of a grid id.
func (g *Grid) GridToTree(gid GridID) TreeID {
	return g.MemoryToTree(g.GridToMemory(gid))
}

// ValidTreeID returns true if id is the canonical tree id of some vertex and
// false otherwise.
func (g *Grid) ValidTreeID(id TreeID) bool {
	if id < 0 || int(id) >= g.TreeIDCount() { return false }
	return g.MemoryToTree(g.TreeToMemory(id)) == id
}

func (g *Grid) checkMemoryID(id int) {
	if id < 0 || id >= g.VertexCount() {
		panic(fmt.Sprintf("Memory id %d is outside of the range [0, %d).",
			id, g.VertexCount()))
	}
}

func (g *Grid) checkTreeID(id TreeID) {
	if id < 0 || int(id) >= g.TreeIDCount() {
		panic(fmt.Sprintf("Tree id %d is outside of the range [0, %d).",
			id, g.TreeIDCount()))
	}
}
