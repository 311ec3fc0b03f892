package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/geodesic"
)

func identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{ 1, 0, 0, 0, 1, 0, 0, 0, 1 })
}

func idRaster(g *geodesic.Grid) *Raster[float64] {
	r := New[float64](g)
	Evaluate(r, func(m int) float64 { return float64(m) })
	return r
}

func dirRaster(g *geodesic.Grid) *Raster[r3.Vec] {
	r := New[r3.Vec](g)
	Evaluate(r, g.VertexDirection)
	return r
}

func angle(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

func TestRasterBasics(t *testing.T) {
	g := geodesic.New(1, 1)
	r := New[float64](g)
	require.Equal(t, g.VertexCount(), r.Len())
	require.Same(t, g, r.Grid())

	r.Fill(2)
	r.Set(7, 3)
	require.Equal(t, 3.0, r.At(7))
	require.Equal(t, 2.0, r.At(6))

	c := r.Copy()
	c.Set(7, 4)
	require.Equal(t, 3.0, r.At(7))
	require.Equal(t, 4.0, c.Data()[7])

	require.Panics(t, func() { FromSlice(g, make([]float64, 3)) })
	require.Panics(t, func() { r.At(r.Len()) })
}

func TestMapCombine(t *testing.T) {
	g := geodesic.New(2, 1)
	r := idRaster(g)

	norms := New[float64](g)
	Map(dirRaster(g), norms, r3.Norm)
	for m := 0; m < g.VertexCount(); m++ {
		require.InDelta(t, 1, norms.At(m), 1e-12)
	}

	sum := New[float64](g)
	Combine(r, r, sum, func(x, y float64) float64 { return x + y })
	for m := 0; m < g.VertexCount(); m++ {
		require.Equal(t, 2*float64(m), sum.At(m))
	}

	Map(r, r, func(x float64) float64 { return -x })
	require.Equal(t, -5.0, r.At(5))

	require.Panics(t, func() {
		Map(r, New[float64](geodesic.New(1, 1)),
			func(x float64) float64 { return x })
	})
}

func TestResampleIdentity(t *testing.T) {
	for level := 0; level <= 3; level++ {
		g, h := geodesic.New(level, 1), geodesic.New(level, 5)

		src := idRaster(g)
		dst := New[float64](h)
		Resample(identity(), src, dst)
		require.Equal(t, src.Data(), dst.Data(), "level %d", level)

		vsrc := dirRaster(g)
		vdst := New[r3.Vec](g)
		Resample(identity(), vsrc, vdst)
		require.Equal(t, vsrc.Data(), vdst.Data(), "level %d", level)
	}
}

func TestGlobalizeRotates(t *testing.T) {
	g := geodesic.New(3, 1)
	rot := Rotation(r3.Vec{ X: 1, Y: 2, Z: 3 }, 0.7)

	local := dirRaster(g)
	global := New[r3.Vec](g)
	Globalize(rot, local, global)

	// Global vertex i takes its value from the local vertex nearest to
	// rot * d_i, so the value is rot * d_i up to the grid spacing.
	edge := g.MeanEdgeLength()
	tr := newTransform(rot)
	for i := 0; i < g.VertexCount(); i++ {
		want := tr.apply(g.VertexDirection(i))
		if a := angle(want, global.At(i)); a > edge {
			t.Fatalf("Vertex %d is %g radians from where it should be, but " +
				"the mean edge length is %g.", i, a, edge)
		}
	}
}

func TestLocalizeRoundTrip(t *testing.T) {
	tests := []struct{
		level int
		axis r3.Vec
		angle float64
	} {
		{2, r3.Vec{ Z: 1 }, math.Pi/5},
		{3, r3.Vec{ X: 1, Y: 2, Z: 3 }, 0.7},
		{3, r3.Vec{ X: -1, Y: 0.5 }, 2.9},
		{4, r3.Vec{ Y: 1 }, 0.05},
	}

	for i := range tests {
		g := geodesic.New(tests[i].level, 2)
		rot := Rotation(tests[i].axis, tests[i].angle)

		local := idRaster(g)
		global := New[float64](g)
		back := New[float64](g)
		Globalize(rot, local, global)
		Localize(rot, global, back)

		sum := 0.0
		for m := 0; m < g.VertexCount(); m++ {
			src := int(back.At(m))
			sum += angle(g.VertexDirection(m), g.VertexDirection(src))
		}
		mean := g.Radius() * sum / float64(g.VertexCount())

		require.LessOrEqual(t, mean, 2*g.MeanEdgeLength(), "%d", i)
	}
}

func TestResamplePanics(t *testing.T) {
	g1, g2 := geodesic.New(1, 1), geodesic.New(2, 1)

	require.Panics(t, func() {
		Resample(identity(), idRaster(g1), New[float64](g2))
	})
	require.Panics(t, func() {
		Resample(mat.NewDense(2, 2, nil), idRaster(g1), New[float64](g1))
	})

	singular := []*mat.Dense{
		mat.NewDense(3, 3, nil),
		mat.NewDense(3, 3, []float64{ 1, 0, 0, 0, 1, 0, 0, 0, 0 }),
		mat.NewDense(3, 3, []float64{ 1, 2, 3, 2, 4, 6, 0, 0, 1 }),
	}
	for i := range singular {
		require.Panics(t, func() {
			Localize(singular[i], idRaster(g1), New[float64](g1))
		}, "%d", i)
	}

	require.Panics(t, func() { Rotation(r3.Vec{ }, 1) })
}

func TestRotation(t *testing.T) {
	tests := []struct{
		axis r3.Vec
		angle float64
		in, out r3.Vec
	} {
		{r3.Vec{ Z: 1 }, math.Pi/2, r3.Vec{ X: 1 }, r3.Vec{ Y: 1 }},
		{r3.Vec{ Z: 2 }, math.Pi, r3.Vec{ X: 1 }, r3.Vec{ X: -1 }},
		{r3.Vec{ X: 1 }, math.Pi/2, r3.Vec{ Y: 1 }, r3.Vec{ Z: 1 }},
		{r3.Vec{ X: 1 }, 0, r3.Vec{ Y: 1 }, r3.Vec{ Y: 1 }},
	}

	for i := range tests {
		tr := newTransform(Rotation(tests[i].axis, tests[i].angle))
		out := tr.apply(tests[i].in)
		if r3.Norm(r3.Sub(out, tests[i].out)) > 1e-12 {
			t.Errorf("%d) Expected %v to rotate to %v, got %v.",
				i, tests[i].in, tests[i].out, out)
		}
	}
}

func TestAggregates(t *testing.T) {
	radius := 3.0
	g := geodesic.New(3, radius)
	r := idRaster(g)
	n := float64(g.VertexCount())

	require.Equal(t, n*(n - 1)/2, Sum(Scalars{ }, r))
	require.Equal(t, Sum(Scalars{ }, r), ScalarSum(r))

	min, max := Extrema(Scalars{ }, r)
	smin, smax := ScalarExtrema(r)
	require.Equal(t, 0.0, min)
	require.Equal(t, n - 1, max)
	require.Equal(t, min, smin)
	require.Equal(t, max, smax)

	ones := New[float64](g)
	ones.Fill(1)
	area := 4*math.Pi*radius*radius
	require.InDelta(t, area, ScalarIntegral(ones), 1e-9*area)
	require.InDelta(t, 1, AreaMean(Scalars{ }, ones), 1e-12)

	// The area-weighted mean of the vertex directions vanishes by symmetry.
	mean := AreaMean(Vectors{ }, dirRaster(g))
	require.InDelta(t, 0, r3.Norm(mean), 1e-9)

	shifted := r.Copy()
	shifted.Set(5, shifted.At(5) + 2)
	shifted.Set(9, shifted.At(9) - 0.5)
	require.Equal(t, 2.0, MaxDistance(Scalars{ }, r, shifted))
	require.InDelta(t, math.Sqrt(4.25), ScalarDistance(r, shifted), 1e-12)

	dirs := dirRaster(g)
	flipped := dirs.Copy()
	flipped.Set(0, r3.Scale(-1, flipped.At(0)))
	require.InDelta(t, 2, MaxDistance(Vectors{ }, dirs, flipped), 1e-12)
}
