// Package loggingcfg configures the process-wide logrus logger once, at
// CLI startup, mirroring the original reference implementation's
// config_logging module: a single stream handler, a fixed text layout,
// and a level gated by a debug toggle.
package loggingcfg

import (
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// Options controls the single process-wide configuration call.
type Options struct {
	// Debug enables logrus.DebugLevel tracing of scan/parse/eval. When
	// false and LOX_DEBUG is unset, only Info level and above are
	// emitted.
	Debug bool
}

// Configure sets up logrus.StandardLogger() per opts, additionally
// honoring the LOX_DEBUG environment variable the way the original
// reference honored DEBUG.
func Configure(opts Options) {
	debug := opts.Debug || os.Getenv("LOX_DEBUG") != ""

	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "%time% - lox - %lvl% - %msg%\n",
	})
}
