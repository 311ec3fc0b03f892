package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/phil-mansfield/dymaxion/lib"
	"github.com/phil-mansfield/dymaxion/lib/error"
	"github.com/phil-mansfield/dymaxion/lib/thread"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not start logging: %s\n", err.Error())
		os.Exit(1)
	}
	error.SetLogger(log)

	// Parse arguments.
	mode, configFile, cmdArgs, err := lib.ParseCommandLine(os.Args[1:])
	if err != nil { error.External("%s", err.Error()) }
	if mode == "help" {
		lib.PrintHelp(os.Stdout)
		return
	}

	rawArgs, err := lib.ParseConfigFile(configFile, log)
	if err != nil { error.External("%s", err.Error()) }
	if err := rawArgs.Overwrite(cmdArgs, log); err != nil {
		error.External("%s", err.Error())
	}

	// Do processing that doesn't need external validation.
	args, err := rawArgs.Process()
	if err != nil {
		error.External("The config file %s has the following problems: %s",
			configFile, err.Error())
	}

	if args.Verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			error.External("Could not start verbose logging: %s", err.Error())
		}
		error.SetLogger(log)
	}
	defer log.Sync()

	if err := thread.Set(args.Threads); err != nil {
		error.External("%s", err.Error())
	}

	// Run the chosen mode.
	switch mode {
	case "check":
		Check(args, log)
	case "build":
		if _, err := lib.Build(args, log); err != nil {
			error.External("%s", err.Error())
		}
	case "nearest":
		if _, err := lib.Nearest(args, os.Stdout); err != nil {
			error.External("%s", err.Error())
		}
	case "resample":
		if err := lib.Resample(args, log); err != nil {
			error.External("%s", err.Error())
		}
	default:
		error.External(
			"You attempted to run dymaxion in the mode '%s', but the only " +
				"valid modes are 'help', 'check', 'build', 'nearest', and " +
				"'resample'.", mode,
		)
	}
}

// Check runs dymaxion's "check" mode, which tests grids at every level in
// the config file.
func Check(args *lib.Args, log *zap.Logger) {
	ok := lib.Check(args, log)
	if ok {
		fmt.Println("No errors detected.")
	} else {
		fmt.Println("Errors detected.")
		os.Exit(1)
	}
}
