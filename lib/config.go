package lib

/* config.go parses dymaxion's config files and command line arguments. */

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/gcfg.v1"
	"gopkg.in/warnings.v0"

	"github.com/phil-mansfield/dymaxion/lib/format"
	"github.com/phil-mansfield/dymaxion/lib/geodesic"
	"github.com/phil-mansfield/dymaxion/lib/raster"
)

// ExampleConfig is a config file with every variable set to its default
// value.
const ExampleConfig = `[Grid]
# Level is the number of times the icosahedron is subdivided. Grids have
# 10*4^Level + 2 vertices. Level must be in [0, 10].
Level = 4
# Radius is the radius of the sphere the grid sits on.
Radius = 1

[Check]
# Levels is a sequence format giving the levels tested by "check" mode, e.g.
# 0..6 - 5.
Levels = 0..4
# Samples is the number of random directions used to test nearest-vertex
# queries at each level.
Samples = 10000
# Seed seeds the random number generator.
Seed = 0
# Strictness is "crash" to stop at the first failed test or "warn" to keep
# going.
Strictness = crash

[Nearest]
# Direction is the direction "nearest" mode finds the nearest vertex to.
Direction = "0 0 1"
# Input is an optional text file of query directions, one per line. If set,
# Direction is ignored and the nearest vertex to every direction is printed.
Input = ""
# Columns are the columns of Input that hold the x, y, and z components.
Columns = "0 1 2"

[Build]
# Output is an optional file format, e.g. "area_{%02d,level}.dym". If set,
# "build" mode writes the dual area of every vertex to it.
Output = ""

[Resample]
# Input and Output are the raster files read and written by "resample" mode.
Input = ""
Output = ""
# Axis and Angle (in degrees) give the rotation from the global frame to the
# local frame.
Axis = "0 0 1"
Angle = 0
# Direction is "globalize" to move Input from the local frame to the global
# frame or "localize" to move it the other way.
Direction = globalize
# Type is "scalar" or "vector".
Type = scalar

[Run]
# Threads is the number of threads to use. -1 uses every core.
Threads = -1
# Verbose turns on debug logging.
Verbose = false
`

// RawArgs stores the unprocessed values which the user assigned to each config
// variable.
type RawArgs struct {
	Grid struct {
		Level int
		Radius float64
	}
	Check struct {
		Levels string
		Samples int
		Seed int
		Strictness string
	}
	Nearest struct {
		Direction string
		Input string
		Columns string
	}
	Build struct {
		Output string
	}
	Resample struct {
		Input, Output string
		Axis string
		Angle float64
		Direction string
		Type string
	}
	Run struct {
		Threads int
		Verbose bool
	}
}

// Args stores configuration information. It is a post-processed version of
// RawArgs.
type Args struct {
	Level int
	Radius float64

	CheckLevels []int
	Samples int
	Seed uint64
	Strictness CheckStrictness

	Direction r3.Vec
	NearestInput string
	NearestColumns [3]int

	BuildOutput string

	Input, Output string
	GlobalToLocal *mat.Dense
	ResampleDirection ResampleDirection
	RasterType raster.TypeFlag

	Threads int
	Verbose bool
}

// DefaultRawArgs returns the values of every config variable when it isn't
// set by the user.
func DefaultRawArgs() *RawArgs {
	args := &RawArgs{ }
	if err := gcfg.ReadStringInto(args, ExampleConfig); err != nil {
		panic(fmt.Sprintf("Internal error: the example config file " +
			"cannot be parsed: %s", err.Error()))
	}
	return args
}

// CommandLineArgs stores the config variables set on the command line.
type CommandLineArgs struct {
	config string
}

// ParseCommandLine parses the command line arguments and returns the mode
// dymaxion is being run in, the name of the config file, and any arguments
// which were set. Expects that the arguments are presented in the order:
// $ dymaxion <mode> <config file> [--<Section.Name1> <Value1>] ...
// The config file may be omitted for "help" mode.
func ParseCommandLine(argv []string) (
	mode, configFile string, args *CommandLineArgs, err error,
) {
	if len(argv) == 0 {
		return "", "", nil, fmt.Errorf("No mode was given. Run " +
			"'dymaxion help' for a list of modes.")
	}
	mode = argv[0]
	if mode == "help" && len(argv) == 1 {
		return mode, "", &CommandLineArgs{ }, nil
	} else if len(argv) < 2 {
		return "", "", nil, fmt.Errorf("No config file was given. Run " +
			"'dymaxion help' to see an example config file.")
	}
	configFile = argv[1]

	rest := argv[2:]
	if len(rest) % 2 != 0 {
		return "", "", nil, fmt.Errorf("The command line argument '%s' has " +
			"no value.", rest[len(rest) - 1])
	}

	sb := &strings.Builder{ }
	for i := 0; i < len(rest); i += 2 {
		name := strings.TrimPrefix(rest[i], "--")
		tok := strings.Split(name, ".")
		if name == rest[i] || len(tok) != 2 || tok[0] == "" || tok[1] == "" {
			return "", "", nil, fmt.Errorf("The command line argument '%s' " +
				"should have the form --<Section>.<Name>.", rest[i])
		}
		fmt.Fprintf(sb, "[%s]\n%s = %s\n", tok[0], tok[1], quote(rest[i+1]))
	}

	return mode, configFile, &CommandLineArgs{ sb.String() }, nil
}

// quote turns a value into a gcfg quoted string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// ParseConfigFile parses arguments from a config file. Variables which aren't
// set keep their default values. Unknown variables are logged and ignored.
func ParseConfigFile(fileName string, log *zap.Logger) (*RawArgs, error) {
	text, err := os.ReadFile(fileName)
	if err != nil { return nil, err }

	args := DefaultRawArgs()
	if err := readInto(args, string(text), log); err != nil {
		return nil, fmt.Errorf("Could not parse the config file %s: %w",
			fileName, err)
	}
	return args, nil
}

func readInto(args *RawArgs, text string, log *zap.Logger) error {
	err := gcfg.ReadStringInto(args, text)
	if fatal := warnings.FatalOnly(err); fatal != nil { return fatal }
	if err != nil {
		log.Warn("Ignoring unrecognized config variables",
			zap.String("warnings", err.Error()))
	}
	return nil
}

// Overwrite sets the variables in args which were given on the command line.
func (args *RawArgs) Overwrite(cmd *CommandLineArgs, log *zap.Logger) error {
	if cmd.config == "" { return nil }
	if err := readInto(args, cmd.config, log); err != nil {
		return fmt.Errorf("Could not parse the command line arguments: %w",
			err)
	}
	return nil
}

// Process converts the raw user input to a format which is more useful for
// internal functions. Every invalid variable is reported in the returned
// error. Nothing which requires interacting with external files is checked.
func (args *RawArgs) Process() (*Args, error) {
	out := &Args{ }
	var errs error

	out.Level = args.Grid.Level
	if out.Level < 0 || out.Level > geodesic.MaxLevel {
		errs = multierr.Append(errs, fmt.Errorf("Grid.Level is %d, but it " +
			"must be in [0, %d].", out.Level, geodesic.MaxLevel))
	}
	out.Radius = args.Grid.Radius
	if out.Radius < 0 || math.IsNaN(out.Radius) {
		errs = multierr.Append(errs, fmt.Errorf("Grid.Radius is %g, but it " +
			"cannot be negative.", out.Radius))
	}

	var err error
	out.CheckLevels, err = format.ExpandLevelFormat(
		args.Check.Levels, geodesic.MaxLevel)
	errs = multierr.Append(errs, err)

	out.Samples = args.Check.Samples
	if out.Samples < 0 {
		errs = multierr.Append(errs, fmt.Errorf("Check.Samples is %d, but " +
			"it cannot be negative.", out.Samples))
	}
	out.Seed = uint64(args.Check.Seed)

	switch strings.ToLower(args.Check.Strictness) {
	case "crash": out.Strictness = CrashOnError
	case "warn": out.Strictness = WarnOnError
	default:
		errs = multierr.Append(errs, fmt.Errorf("Check.Strictness is '%s', " +
			"but the only valid values are 'crash' and 'warn'.",
			args.Check.Strictness))
	}

	out.Direction, err = format.ParseVector(args.Nearest.Direction)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("Nearest.Direction: %w", err))
	} else if r3.Norm(out.Direction) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("Nearest.Direction cannot " +
			"be the zero vector."))
	}

	out.NearestInput = args.Nearest.Input
	out.NearestColumns, err = parseColumns(args.Nearest.Columns)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("Nearest.Columns: %w", err))
	}

	out.BuildOutput = args.Build.Output
	if out.BuildOutput != "" {
		_, err := format.ExpandFileFormat(out.BuildOutput,
			map[string]int{ "level": out.Level })
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("Build.Output: %w", err))
		}
	}

	out.Input, out.Output = args.Resample.Input, args.Resample.Output
	axis, err := format.ParseVector(args.Resample.Axis)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("Resample.Axis: %w", err))
	} else if r3.Norm(axis) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("Resample.Axis cannot be " +
			"the zero vector."))
	} else {
		out.GlobalToLocal = raster.Rotation(axis,
			args.Resample.Angle * math.Pi / 180)
	}

	switch strings.ToLower(args.Resample.Direction) {
	case "globalize": out.ResampleDirection = Globalize
	case "localize": out.ResampleDirection = Localize
	default:
		errs = multierr.Append(errs, fmt.Errorf("Resample.Direction is " +
			"'%s', but the only valid values are 'globalize' and 'localize'.",
			args.Resample.Direction))
	}

	switch strings.ToLower(args.Resample.Type) {
	case "scalar": out.RasterType = raster.ScalarFlag
	case "vector": out.RasterType = raster.VectorFlag
	default:
		errs = multierr.Append(errs, fmt.Errorf("Resample.Type is '%s', " +
			"but the only valid values are 'scalar' and 'vector'.",
			args.Resample.Type))
	}

	out.Threads = args.Run.Threads
	if out.Threads == 0 || out.Threads < -1 {
		errs = multierr.Append(errs, fmt.Errorf("Run.Threads is %d, but it " +
			"must be positive or -1.", out.Threads))
	}
	out.Verbose = args.Run.Verbose

	if errs != nil { return nil, errs }
	return out, nil
}

// parseColumns parses three non-negative column indices.
func parseColumns(s string) ([3]int, error) {
	var cols [3]int
	tok := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(tok) != 3 {
		return cols, fmt.Errorf("'%s' has %d columns instead of 3.",
			s, len(tok))
	}
	for i := range tok {
		var err error
		cols[i], err = strconv.Atoi(tok[i])
		if err != nil || cols[i] < 0 {
			return cols, fmt.Errorf("'%s' in '%s' is not a valid column " +
				"index.", tok[i], s)
		}
	}
	return cols, nil
}
