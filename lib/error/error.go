/*package error contains simple functions for reporting fatal dymaxion errors.
Errors are written through a zap logger, which is a no-op logger until
SetLogger is called.
*/
package error

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	logger = zap.NewNop()
	exit = os.Exit
)

// SetLogger sets the logger that errors are reported through.
func SetLogger(l *zap.Logger) { logger = l }

// Logger returns the logger that errors are reported through.
func Logger() *zap.Logger { return logger }

// External reports an error and kills the program. It should be used
// when an error is something a user could reasonably be expected to fix
// through changes in configuration/data/environment. It has the same
// signature as the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	logger.Error("dymaxion exited early with the following error",
		zap.String("error", fmt.Sprintf(format, a...)))
	_ = logger.Sync()
	exit(1)
}

// Internal reports an error along with a stack trace and kills the program.
// It should be used when the error requires a code dive to fix. It has the
// same signature as the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	logger.Error("dymaxion exited early with an internal error",
		zap.String("error", fmt.Sprintf(format, a...)),
		zap.Stack("stack"))
	_ = logger.Sync()
	exit(1)
}
