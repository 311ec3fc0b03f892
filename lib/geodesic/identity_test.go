package geodesic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryToGrid(t *testing.T) {
	g := New(1, 1)
	tests := []struct{
		id int
		gid GridID
	} {
		{0, GridID{ 0, 0, 0 }},
		{3, GridID{ 0, 1, 1 }},
		{5, GridID{ 1, 1, 0 }},
		{26, GridID{ 6, 0, 1 }},
		{39, GridID{ 9, 1, 1 }},
		{40, GridID{ PoleSquare, 0, 0 }},
		{41, GridID{ PoleSquare, 1, 0 }},
	}

	for i := range tests {
		if gid := g.MemoryToGrid(tests[i].id); gid != tests[i].gid {
			t.Errorf("%d) Expected vertex %d to have grid id %v, got %v.",
				i, tests[i].id, tests[i].gid, gid)
		}
		if id := g.GridToMemory(tests[i].gid); id != tests[i].id {
			t.Errorf("%d) Expected grid id %v to be vertex %d, got %d.",
				i, tests[i].gid, tests[i].id, id)
		}
	}
}

func TestValidGridID(t *testing.T) {
	g := New(1, 1)
	tests := []struct{
		gid GridID
		valid bool
	} {
		{GridID{ 0, 0, 0 }, true},
		{GridID{ 9, 1, 1 }, true},
		{GridID{ PoleSquare, 0, 0 }, true},
		{GridID{ PoleSquare, 1, 0 }, true},
		{GridID{ PoleSquare, 2, 0 }, false},
		{GridID{ PoleSquare, 0, 1 }, false},
		{GridID{ 0, 2, 0 }, false},
		{GridID{ 0, 0, -1 }, false},
		{GridID{ -1, 0, 0 }, false},
		{GridID{ 11, 0, 0 }, false},
	}

	for i := range tests {
		if valid := g.ValidGridID(tests[i].gid); valid != tests[i].valid {
			t.Errorf("%d) Expected ValidGridID(%v) = %v, got %v.",
				i, tests[i].gid, tests[i].valid, valid)
		}
	}
}

func TestTreeIDs(t *testing.T) {
	tests := []struct{
		level int
		tree TreeID
		id int
		canonical bool
	} {
		{0, 0, 0, true},
		{0, 1, 10, true},
		{0, 2, 1, false},
		{0, 3, 0, false},
		{0, 6, 1, true},
		{0, 34, 11, true},
		{1, 4, 40, true},
	}

	for i := range tests {
		g := New(tests[i].level, 1)
		if id := g.TreeToMemory(tests[i].tree); id != tests[i].id {
			t.Errorf("%d) Expected tree id %d to be vertex %d, got %d.",
				i, tests[i].tree, tests[i].id, id)
		}
		if valid := g.ValidTreeID(tests[i].tree); valid != tests[i].canonical {
			t.Errorf("%d) Expected ValidTreeID(%d) = %v, got %v.",
				i, tests[i].tree, tests[i].canonical, valid)
		}
		if tests[i].canonical {
			if tree := g.MemoryToTree(tests[i].id); tree != tests[i].tree {
				t.Errorf("%d) Expected vertex %d to have tree id %d, got %d.",
					i, tests[i].id, tests[i].tree, tree)
			}
		}
	}
}

func TestTreeIDCount(t *testing.T) {
	tests := []struct{
		level, count int
	} {
		{0, 60}, {1, 240}, {2, 960}, {3, 3840},
	}
	for i := range tests {
		g := New(tests[i].level, 1)
		if n := g.TreeIDCount(); n != tests[i].count {
			t.Errorf("%d) Expected %d tree ids at level %d, got %d.",
				i, tests[i].count, tests[i].level, n)
		}
	}
}

func TestEncodeTree(t *testing.T) {
	g := New(2, 1)
	for id := TreeID(0); int(id) < g.TreeIDCount(); id++ {
		path := g.DecodeTree(id)
		if out := g.EncodeTree(path); out != id {
			t.Fatalf("Tree id %d decoded to %v, which encoded to %d.",
				id, path, out)
		}
	}
}

func TestIdentityBijection(t *testing.T) {
	for level := 0; level <= 4; level++ {
		g := New(level, 1)

		for m := 0; m < g.VertexCount(); m++ {
			gid := g.MemoryToGrid(m)
			require.True(t, g.ValidGridID(gid),
				"level %d: vertex %d has invalid grid id %v", level, m, gid)
			require.Equal(t, m, g.GridToMemory(gid),
				"level %d: grid id %v", level, gid)

			tree := g.MemoryToTree(m)
			require.Equal(t, m, g.TreeToMemory(tree),
				"level %d: tree id %d", level, tree)
			require.Equal(t, tree, g.GridToTree(gid),
				"level %d: grid id %v", level, gid)
			require.Equal(t, gid, g.TreeToGrid(tree),
				"level %d: tree id %d", level, tree)
		}

		canonical := 0
		for id := TreeID(0); int(id) < g.TreeIDCount(); id++ {
			if g.ValidTreeID(id) { canonical++ }
		}
		require.Equal(t, g.VertexCount(), canonical,
			"level %d: canonical tree ids", level)
	}
}

// The lattice decoder used by Grid must agree with walking a tree id down the
// midpoint caches, for canonical and non-canonical ids alike.
func TestTreeDecodersAgree(t *testing.T) {
	for level := 0; level <= 4; level++ {
		tree := newTree(level)
		tree.subdivide()
		g := New(level, 1)

		for id := TreeID(0); int(id) < g.TreeIDCount(); id++ {
			want, got := tree.TreeToMemory(id), g.TreeToMemory(id)
			if want != got {
				t.Fatalf("level %d) Tree id %d is vertex %d in the midpoint " +
					"cache, but the lattice gives %d.", level, id, want, got)
			}
		}
	}
}

func TestIdentityPanics(t *testing.T) {
	g := New(1, 1)
	require.Panics(t, func() { g.MemoryToGrid(-1) })
	require.Panics(t, func() { g.MemoryToGrid(g.VertexCount()) })
	require.Panics(t, func() { g.GridToMemory(GridID{ 0, 2, 0 }) })
	require.Panics(t, func() { g.TreeToMemory(TreeID(g.TreeIDCount())) })
	require.Panics(t, func() { g.MemoryToTree(-1) })
	require.Panics(t, func() {
		g.EncodeTree(TreePath{ Face: 0, Children: []int{ 4 }, Corner: 0 })
	})
	require.Panics(t, func() {
		g.EncodeTree(TreePath{ Face: 0, Children: []int{ 0, 0 }, Corner: 0 })
	})
	require.Panics(t, func() {
		g.EncodeTree(TreePath{ Face: 20, Children: []int{ 0 }, Corner: 0 })
	})
}
