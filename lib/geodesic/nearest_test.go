package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/rng"
)

func bruteNearest(g *Grid, q r3.Vec) (int, float64) {
	q = r3.Unit(q)
	best, bestD := -1, math.Inf(+1)
	for m := 0; m < g.VertexCount(); m++ {
		if d := dist2(q, g.VertexDirection(m)); d < bestD {
			best, bestD = m, d
		}
	}
	return best, bestD
}

func TestNearestVertexItself(t *testing.T) {
	for level := 0; level <= 3; level++ {
		g := New(level, 7)
		for m := 0; m < g.VertexCount(); m++ {
			if id := g.NearestVertexID(g.VertexPosition(m)); id != m {
				t.Fatalf("level %d) Expected vertex %d to be nearest to " +
					"itself, got %d.", level, m, id)
			}
		}
	}
}

func TestNearestBruteForce(t *testing.T) {
	g := New(2, 1)
	gen := rng.NewRNG(1999)
	samples := 10000

	agree := 0
	for i := 0; i < samples; i++ {
		q := gen.UnitVector()
		want, wantD := bruteNearest(g, q)
		got := g.NearestVertexID(q)
		gotD := dist2(q, g.VertexDirection(got))

		if got == want || math.Abs(gotD - wantD) < 1e-9 {
			agree++
		}
	}

	require.GreaterOrEqual(t, agree, samples*99/100,
		"%d of %d queries matched a brute-force search", agree, samples)
}

func TestNearestLevels(t *testing.T) {
	gen := rng.NewRNG(31)
	for level := 0; level <= 4; level++ {
		g := New(level, 1)
		for i := 0; i < 1000; i++ {
			q := r3.Scale(1 + 10*gen.Uniform(), gen.UnitVector())
			_, wantD := bruteNearest(g, q)
			got := g.NearestVertexID(q)
			gotD := dist2(r3.Unit(q), g.VertexDirection(got))
			if gotD > wantD + 1e-9 {
				t.Errorf("level %d) %v: found vertex %d at distance^2 %g, " +
					"but the nearest is at %g.", level, q, got, gotD, wantD)
			}
		}
	}
}

func TestNearestDeterministic(t *testing.T) {
	g1, g2 := New(3, 1), New(3, 1)
	gen := rng.NewRNG(5)
	for i := 0; i < 500; i++ {
		q := gen.UnitVector()
		a, b, c := g1.NearestVertexID(q), g1.NearestVertexID(q),
			g2.NearestVertexID(q)
		if a != b || a != c {
			t.Fatalf("%d) %v gave vertices %d, %d, and %d.", i, q, a, b, c)
		}
	}
}

func TestNearestPathBaseFace(t *testing.T) {
	g := New(0, 1)
	gen := rng.NewRNG(77)
	for i := 0; i < 2000; i++ {
		q := gen.UnitVector()

		// Brute force over the faces themselves rather than the cached
		// centers.
		face, faceD := -1, math.Inf(+1)
		for f, ids := range g.Faces() {
			c := r3.Unit(r3.Add(g.VertexDirection(ids[0]),
				r3.Add(g.VertexDirection(ids[1]), g.VertexDirection(ids[2]))))
			if d := dist2(q, c); d < faceD { face, faceD = f, d }
		}

		path := g.DecodeTree(g.NearestPath(q))
		require.Equal(t, face, path.Face, "query %v", q)

		corner, cornerD := -1, math.Inf(+1)
		for _, m := range g.Faces()[face] {
			if d := dist2(q, g.VertexDirection(m)); d < cornerD {
				corner, cornerD = m, d
			}
		}
		require.Equal(t, corner, g.TreeToMemory(g.NearestPath(q)),
			"query %v", q)
	}
}

func TestNearestPathRefines(t *testing.T) {
	g := New(3, 1)
	gen := rng.NewRNG(12)
	for i := 0; i < 2000; i++ {
		q := gen.UnitVector()
		descent := g.TreeToMemory(g.NearestPath(q))
		refined := g.NearestVertexID(q)
		dd := dist2(q, g.VertexDirection(descent))
		dr := dist2(q, g.VertexDirection(refined))
		if dr > dd {
			t.Fatalf("%d) Refinement moved %v from vertex %d (%g) to " +
				"vertex %d (%g).", i, q, descent, dd, refined, dr)
		}
	}
}

func TestNearestZeroVector(t *testing.T) {
	g := New(2, 1)
	var id int
	require.NotPanics(t, func() { id = g.NearestVertexID(r3.Vec{ }) })
	require.True(t, id >= 0 && id < g.VertexCount())
	require.NotPanics(t, func() { g.NearestPath(r3.Vec{ }) })
}
