package lib

/* check.go contains the core functions of dymaxion's "check" mode. */

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/geodesic"
	g_error "github.com/phil-mansfield/dymaxion/lib/error"
	"github.com/phil-mansfield/dymaxion/lib/raster"
	"github.com/phil-mansfield/dymaxion/lib/rng"
	"github.com/phil-mansfield/dymaxion/lib/thread"
)

const (
	// AreaTolerance is the largest allowed fractional difference between the
	// total dual area of a grid and the area of its sphere.
	AreaTolerance = 1e-9
	// DistanceTolerance is the largest allowed difference between the squared
	// distances to the vertex found by a nearest-vertex query and the vertex
	// found by brute force.
	DistanceTolerance = 1e-9
)

// checker records failed tests and either crashes or warns, depending on its
// strictness.
type checker struct {
	strictness CheckStrictness
	log *zap.Logger
	ok bool
}

func (c *checker) fail(level int, format string, a ...interface{}) {
	c.ok = false
	msg := fmt.Sprintf(format, a...)
	if c.strictness == CrashOnError {
		g_error.Internal("Level %d grid failed a test: %s", level, msg)
	} else {
		c.log.Warn("Grid failed a test",
			zap.Int("level", level), zap.String("error", msg))
	}
}

// Check runs the dymaxion "check" command on the provided Args. A grid is
// built at every level in args.CheckLevels and tested. This function will
// either crash upon encountering errors or will log warnings, depending on
// what CheckStrictness is set to in args. If Check completes, it returns true
// if all tests passed and false otherwise.
func Check(args *Args, log *zap.Logger) bool {
	c := &checker{ args.Strictness, log, true }
	gen := rng.NewRNG(args.Seed)

	for _, level := range args.CheckLevels {
		t0 := time.Now()
		g := geodesic.New(level, args.Radius)
		log.Debug("Built grid", zap.Int("level", level),
			zap.Int("vertices", g.VertexCount()),
			zap.Duration("elapsed", time.Since(t0)))

		checkVertexCount(c, g)
		checkIdentities(c, g)
		checkArea(c, g)

		dirs := make([]r3.Vec, args.Samples)
		gen.UnitVectors(dirs)
		checkNearest(c, g, dirs)

		log.Info("Checked grid", zap.Int("level", level),
			zap.Int("vertices", g.VertexCount()),
			zap.Duration("elapsed", time.Since(t0)))
	}

	return c.ok
}

func checkVertexCount(c *checker, g *geodesic.Grid) {
	n := 10*(1 << uint(2*g.Level())) + 2
	if g.VertexCount() != n {
		c.fail(g.Level(), "the grid has %d vertices instead of %d.",
			g.VertexCount(), n)
	}
}

// checkIdentities tests that memory ids, grid ids, and tree ids are
// bijections of one another. Only the first failure is reported.
func checkIdentities(c *checker, g *geodesic.Grid) {
	for m := 0; m < g.VertexCount(); m++ {
		gid := g.MemoryToGrid(m)
		if !g.ValidGridID(gid) || g.GridToMemory(gid) != m {
			c.fail(g.Level(), "memory id %d maps to grid id %v, which maps " +
				"back to %d.", m, gid, g.GridToMemory(gid))
			return
		}

		tid := g.MemoryToTree(m)
		if !g.ValidTreeID(tid) || g.TreeToMemory(tid) != m {
			c.fail(g.Level(), "memory id %d maps to tree id %d, which maps " +
				"back to %d.", m, tid, g.TreeToMemory(tid))
			return
		}
	}

	valid := 0
	for t := 0; t < g.TreeIDCount(); t++ {
		if g.ValidTreeID(geodesic.TreeID(t)) { valid++ }
	}
	if valid != g.VertexCount() {
		c.fail(g.Level(), "there are %d canonical tree ids, but %d vertices.",
			valid, g.VertexCount())
	}
}

// checkArea tests that the dual areas of the vertices tile the sphere.
func checkArea(c *checker, g *geodesic.Grid) {
	ones := raster.New[float64](g)
	ones.Fill(1)
	area := raster.ScalarIntegral(ones)
	target := 4*math.Pi*g.Radius()*g.Radius()

	if math.Abs(area - target) > AreaTolerance*target {
		c.fail(g.Level(), "the total dual area is %.12g instead of %.12g.",
			area, target)
	}
}

// checkNearest tests NearestVertexID against a brute force search over
// every vertex for each direction in dirs.
func checkNearest(c *checker, g *geodesic.Grid, dirs []r3.Vec) {
	agrees := make([]bool, len(dirs))
	thread.For(len(dirs), func(start, end int) {
		for i := start; i < end; i++ {
			agrees[i] = agreesWithBruteForce(g, dirs[i])
		}
	})

	for i := range agrees {
		if !agrees[i] {
			c.fail(g.Level(), "the nearest vertex to %v was reported as %d, " +
				"but a brute force search disagrees.", dirs[i],
				g.NearestVertexID(dirs[i]))
			return
		}
	}
}

func agreesWithBruteForce(g *geodesic.Grid, dir r3.Vec) bool {
	q := r3.Unit(dir)
	best := math.Inf(+1)
	for m := 0; m < g.VertexCount(); m++ {
		d2 := r3.Norm2(r3.Sub(q, g.VertexDirection(m)))
		if d2 < best { best = d2 }
	}

	m := g.NearestVertexID(dir)
	d2 := r3.Norm2(r3.Sub(q, g.VertexDirection(m)))
	return d2 - best <= DistanceTolerance
}
