package geodesic

import (
	"gonum.org/v1/gonum/spatial/r3"
)

func dist2(a, b r3.Vec) float64 { return r3.Norm2(r3.Sub(a, b)) }

// nearestFace returns the base face whose center is closest to the unit
// vector q. Ties go to the lowest face index.
func (g *Grid) nearestFace(q r3.Vec) int {
	best, bestD := 0, dist2(q, g.baseCenters[0])
	for f := 1; f < BaseFaces; f++ {
		if d := dist2(q, g.baseCenters[f]); d < bestD {
			best, bestD = f, d
		}
	}
	return best
}

// nearestCorner returns the slot of the corner in ids closest to q. Ties go to
// the lowest slot.
func (g *Grid) nearestCorner(q r3.Vec, ids *[3]int) int {
	best, bestD := 0, dist2(q, g.dirs[ids[0]])
	for i := 1; i < 3; i++ {
		if d := dist2(q, g.dirs[ids[i]]); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// descend walks down the subdivision towards q, always moving into the child
// triangle of whichever corner is closest, and returns the path it took along
// with the memory id it ends on.
func (g *Grid) descend(q r3.Vec) (TreePath, int) {
	path := TreePath{ Children: make([]int, g.level) }
	path.Face = g.nearestFace(q)

	tri := g.lat.baseTriangle(path.Face)
	ids := g.baseIDs[path.Face]
	for i := range path.Children {
		c := g.nearestCorner(q, &ids)
		path.Children[i] = c
		tri = tri.child(c)
		for j := 0; j < 3; j++ { ids[j] = g.lat.canonical(tri.corner(j)) }
	}

	path.Corner = g.nearestCorner(q, &ids)
	return path, ids[path.Corner]
}

// NearestPath returns the tree id reached by descending the subdivision
// towards dir. The vertex it names is close to dir, but not always the
// closest one: use NearestVertexID for that. dir need not be normalized.
func (g *Grid) NearestPath(dir r3.Vec) TreeID {
	path, _ := g.descend(r3.Unit(dir))
	return g.codec.encode(path)
}

// NearestVertexID returns the memory id of the vertex closest to the
// direction dir, which need not be normalized. The result depends only on
// dir and the grid. The zero vector returns some valid id.
func (g *Grid) NearestVertexID(dir r3.Vec) int {
	q := r3.Unit(dir)
	_, m := g.descend(q)

	// Walk downhill over the adjacency graph. Neighbors are sorted, so
	// requiring strict improvement sends ties to the lowest id.
	d := dist2(q, g.dirs[m])
	for {
		next, nextD := m, d
		for _, w := range g.neighbors[g.neighborStart[m]: g.neighborStart[m + 1]] {
			if dw := dist2(q, g.dirs[w]); dw < nextD {
				next, nextD = w, dw
			}
		}
		if next == m { return m }
		m, d = next, nextD
	}
}
