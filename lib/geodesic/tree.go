package geodesic

/* tree.go builds the vertices of a grid by repeatedly bisecting the faces of
an icosahedron. */

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// edge is an unordered pair of memory ids.
type edge struct {
	lo, hi int
}

func newEdge(a, b int) edge {
	if a > b { a, b = b, a }
	return edge{ a, b }
}

// treeFace is a face of the subdivision along with the memory ids of its
// corners.
type treeFace struct {
	tri triangle
	ids [3]int
}

// Tree performs the subdivision of the icosahedron. It is only used while a
// Grid is being constructed and is not safe for concurrent use: every round
// of subdivision reads and writes the same midpoint cache.
//
// The midpoint cache for a level maps each edge of that level to the vertex
// created by bisecting it. Reading an edge which is already in the cache
// returns the existing vertex, which is what keeps neighboring faces from
// creating duplicate vertices along the edge they share.
type Tree struct {
	level int
	lat *lattice
	codec *treeCodec

	positions []r3.Vec
	created []bool
	nCreated int

	base [BaseFaces]treeFace
	faces []treeFace
	midpoints []map[edge]int
}

// newTree creates a Tree containing only the base icosahedron. Call
// subdivide to create the rest of the vertices.
func newTree(level int) *Tree {
	lat := newLattice(level)
	t := &Tree{
		level: level,
		lat: lat,
		codec: newTreeCodec(level),
		positions: make([]r3.Vec, lat.vertices()),
		created: make([]bool, lat.vertices()),
	}

	n := lat.n
	for f := 0; f < BaseFaces; f++ {
		tri := lat.baseTriangle(f)
		o, a, b, far := squareCorners(tri.square)

		face := treeFace{ tri: tri }
		for i := 0; i < 3; i++ {
			var pos r3.Vec
			switch tri.c[i] {
			case [2]int{ 0, 0 }: pos = o
			case [2]int{ n, 0 }: pos = a
			case [2]int{ 0, n }: pos = b
			default: pos = far
			}

			id := lat.canonical(tri.corner(i))
			face.ids[i] = id
			t.place(id, pos)
		}
		t.base[f] = face
	}

	if t.nCreated != BaseVertices {
		panic(fmt.Sprintf("Internal error: the base icosahedron was given " +
			"%d vertices instead of %d.", t.nCreated, BaseVertices))
	}

	t.faces = append([]treeFace{}, t.base[:]...)
	return t
}

// place puts a base vertex at pos. The same base vertex is visited by up to
// five faces, all of which must agree on its position.
func (t *Tree) place(id int, pos r3.Vec) {
	if t.created[id] {
		if r3.Norm(r3.Sub(t.positions[id], pos)) > 1e-12 {
			panic(fmt.Sprintf("Internal error: base vertex %d was placed " +
				"at both %v and %v.", id, t.positions[id], pos))
		}
		return
	}
	t.positions[id] = pos
	t.created[id] = true
	t.nCreated++
}

// subdivide runs every round of bisection. Levels must be processed in order,
// since each one splits the faces created by the previous one.
func (t *Tree) subdivide() {
	for level := 0; level < t.level; level++ {
		t.bisect(level)
	}

	if t.nCreated != len(t.positions) {
		panic(fmt.Sprintf("Internal error: subdivision created %d vertices, " +
			"but a level %d grid has %d.", t.nCreated, t.level,
			len(t.positions)))
	}
}

// bisect replaces every face with its four children.
func (t *Tree) bisect(level int) {
	cache := make(map[edge]int, 3*len(t.faces)/2)
	next := make([]treeFace, 0, 4*len(t.faces))

	for fi := range t.faces {
		f := &t.faces[fi]
		a, b, c := f.ids[0], f.ids[1], f.ids[2]
		ab := t.split(cache, f, 0, 1)
		bc := t.split(cache, f, 1, 2)
		ca := t.split(cache, f, 2, 0)

		children := [4][3]int{
			{ a, ab, ca }, { ab, b, bc }, { ca, bc, c }, { bc, ca, ab },
		}
		for i := range children {
			next = append(next, treeFace{ f.tri.child(i), children[i] })
		}
	}

	t.midpoints = append(t.midpoints, cache)
	t.faces = next
}

// split reads or inserts the midpoint of the edge between corners i and j of
// f. This is the only place where vertices are created after the base
// icosahedron.
func (t *Tree) split(cache map[edge]int, f *treeFace, i, j int) int {
	e := newEdge(f.ids[i], f.ids[j])
	p := mid(f.tri.c[i], f.tri.c[j])
	want := t.lat.canonical(point{ f.tri.square, p[0], p[1] })

	if id, ok := cache[e]; ok {
		if id != want {
			panic(fmt.Sprintf("Internal error: the midpoint of edge %v was " +
				"cached as vertex %d, but the lattice places it at vertex %d.",
				e, id, want))
		}
		return id
	}

	if t.created[want] {
		panic(fmt.Sprintf("Internal error: vertex %d was created by edge %v " +
			"after it had already been created.", want, e))
	}

	t.positions[want] = r3.Unit(r3.Add(t.positions[e.lo], t.positions[e.hi]))
	t.created[want] = true
	t.nCreated++
	cache[e] = want
	return want
}

// cachedMidpoint looks up the midpoint of an edge at a given level. A missing
// entry means that the bijection between tree ids and memory ids is broken.
func (t *Tree) cachedMidpoint(level, a, b int) int {
	id, ok := t.midpoints[level][newEdge(a, b)]
	if !ok {
		panic(fmt.Sprintf("Internal error: no midpoint was cached for the " +
			"edge (%d, %d) at level %d.", a, b, level))
	}
	return id
}

// TreeToMemory walks a tree id down the midpoint caches. It must agree with
// Grid.TreeToMemory, which uses lattice arithmetic instead.
func (t *Tree) TreeToMemory(id TreeID) int {
	path := TreePath{ Children: make([]int, 0, t.level) }
	t.codec.decode(id, &path)

	ids := t.base[path.Face].ids
	for level, child := range path.Children {
		a, b, c := ids[0], ids[1], ids[2]
		ab := t.cachedMidpoint(level, a, b)
		bc := t.cachedMidpoint(level, b, c)
		ca := t.cachedMidpoint(level, c, a)

		switch child {
		case 0: ids = [3]int{ a, ab, ca }
		case 1: ids = [3]int{ ab, b, bc }
		case 2: ids = [3]int{ ca, bc, c }
		default: ids = [3]int{ bc, ca, ab }
		}
	}
	return ids[path.Corner]
}

// faceIDs returns the corner memory ids of every face of the finest level.
func (t *Tree) faceIDs() [][3]int {
	out := make([][3]int, len(t.faces))
	for i := range t.faces { out[i] = t.faces[i].ids }
	return out
}
