package lib

/* modes.go contains the core functions of dymaxion's "help", "build",
"nearest", and "resample" modes. */

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/catio"
	"github.com/phil-mansfield/dymaxion/lib/format"
	"github.com/phil-mansfield/dymaxion/lib/geodesic"
	"github.com/phil-mansfield/dymaxion/lib/raster"
	"github.com/phil-mansfield/dymaxion/lib/thread"
)

// ModeHelp describes each of dymaxion's modes.
const ModeHelp = `Usage: dymaxion <mode> <config file> [--<Section>.<Name> <Value> ...]

Modes:
    help      prints this message and an example config file.
    check     builds grids at every level in [Check] Levels and tests them.
    build     builds the [Grid] grid and reports its properties. If
              [Build] Output is set, the dual areas of its vertices are
              written to a raster file.
    nearest   prints the vertex of the [Grid] grid nearest to
              [Nearest] Direction, or to every direction in
              [Nearest] Input.
    resample  moves the raster in [Resample] Input between the local and
              global frames and writes it to [Resample] Output.

Any config variable can be overwritten on the command line, e.g.
    dymaxion nearest my.config --Nearest.Direction "1 1 0"

Example config file:
`

// PrintHelp prints the help text and an example config file to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, ModeHelp)
	fmt.Fprint(w, ExampleConfig)
}

// Build runs the dymaxion "build" command on the provided Args and returns
// the grid it built.
func Build(args *Args, log *zap.Logger) (*geodesic.Grid, error) {
	t0 := time.Now()
	g := geodesic.New(args.Level, args.Radius)

	area := raster.New[float64](g)
	raster.Evaluate(area, g.VertexDualArea)
	min, max := raster.ScalarExtrema(area)

	log.Info("Built grid",
		zap.Int("level", g.Level()),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("faces", len(g.Faces())),
		zap.Float64("mean edge length", g.MeanEdgeLength()),
		zap.Float64("area", raster.ScalarSum(area)),
		zap.Float64("min dual area", min),
		zap.Float64("max dual area", max),
		zap.Duration("elapsed", time.Since(t0)))

	if args.BuildOutput == "" { return g, nil }

	fname, err := format.ExpandFileFormat(args.BuildOutput,
		map[string]int{ "level": g.Level() })
	if err != nil { return nil, err }
	if err := raster.WriteFile(fname, raster.Scalars{ }, area); err != nil {
		return nil, err
	}
	log.Info("Wrote dual areas", zap.String("file", fname))

	return g, nil
}

// NearestVertex describes the vertex found by the "nearest" mode.
type NearestVertex struct {
	Memory int
	Grid geodesic.GridID
	Tree geodesic.TreeID
	Position r3.Vec
}

// Nearest runs the dymaxion "nearest" command on the provided Args and
// prints the results to w. The vertex nearest to args.Direction is found
// unless args.NearestInput is set, in which case the vertices nearest to each
// direction in that file are found.
func Nearest(args *Args, w io.Writer) ([]NearestVertex, error) {
	dirs := []r3.Vec{ args.Direction }
	if args.NearestInput != "" {
		var err error
		dirs, err = catio.ReadVectorFile(args.NearestInput,
			args.NearestColumns)
		if err != nil { return nil, err }
	}

	g := geodesic.New(args.Level, args.Radius)
	out := make([]NearestVertex, len(dirs))
	thread.For(len(dirs), func(start, end int) {
		for i := start; i < end; i++ {
			m := g.NearestVertexID(dirs[i])
			out[i] = NearestVertex{
				m, g.MemoryToGrid(m), g.MemoryToTree(m), g.VertexPosition(m),
			}
		}
	})

	if args.NearestInput == "" {
		v := out[0]
		fmt.Fprintf(w, "memory id: %d\n", v.Memory)
		fmt.Fprintf(w, "grid id:   square %d, x %d, y %d\n",
			v.Grid.Square, v.Grid.X, v.Grid.Y)
		fmt.Fprintf(w, "tree id:   %d\n", v.Tree)
		fmt.Fprintf(w, "position:  %.8g %.8g %.8g\n",
			v.Position.X, v.Position.Y, v.Position.Z)
		return out, nil
	}

	fmt.Fprintln(w, "# memory square x y tree px py pz")
	for _, v := range out {
		fmt.Fprintf(w, "%d %d %d %d %d %.8g %.8g %.8g\n",
			v.Memory, v.Grid.Square, v.Grid.X, v.Grid.Y, v.Tree,
			v.Position.X, v.Position.Y, v.Position.Z)
	}
	return out, nil
}

// Resample runs the dymaxion "resample" command on the provided Args.
func Resample(args *Args, log *zap.Logger) error {
	if args.Input == "" || args.Output == "" {
		return fmt.Errorf("Resample.Input and Resample.Output must both be " +
			"set in \"resample\" mode.")
	}

	switch args.RasterType {
	case raster.ScalarFlag:
		return resampleFile[float64](args, raster.Scalars{ }, log)
	case raster.VectorFlag:
		return resampleFile[r3.Vec](args, raster.Vectors{ }, log)
	}
	panic(fmt.Sprintf("Internal error: unknown raster type %d.",
		args.RasterType))
}

func resampleFile[T any, L raster.Layout[T]](
	args *Args, l L, log *zap.Logger,
) error {
	t0 := time.Now()
	in, err := raster.ReadFile[T](args.Input, l, nil)
	if err != nil { return err }

	out := raster.New[T](in.Grid())
	switch args.ResampleDirection {
	case Globalize: raster.Globalize(args.GlobalToLocal, in, out)
	case Localize: raster.Localize(args.GlobalToLocal, in, out)
	}

	if err := raster.WriteFile(args.Output, l, out); err != nil {
		return err
	}

	log.Info("Resampled raster",
		zap.String("input", args.Input), zap.String("output", args.Output),
		zap.Stringer("direction", args.ResampleDirection),
		zap.Stringer("type", args.RasterType),
		zap.Int("level", in.Grid().Level()),
		zap.Duration("elapsed", time.Since(t0)))
	return nil
}
