// Package logging configures steplens diagnostics on top of charmbracelet/log.
//
// Every logger writes to stderr. stdout carries only command output (tables
// or JSON) so it can be piped into other tools.
//
// Setup must run before New: charmbracelet/log copies the default logger's
// settings into a child at creation time, so loggers created earlier keep
// the old level and formatter.
//
//	logging.Setup(logging.Options{Verbose: true})
//	logger := logging.New("source")
//	logger.Debug("loaded", "path", "runs/build.yaml", "taskruns", 1)
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Level aliases for charmbracelet/log levels.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// FormatEnvVar selects the log formatter. "json" switches to NDJSON, any
// other value keeps the text formatter.
const FormatEnvVar = "STEPLENS_LOG_FORMAT"

// Options controls the default logger.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// Quiet raises the level to Error. It wins over Verbose.
	Quiet bool
	// JSON selects the JSON formatter.
	JSON bool
	// NoColor strips ANSI styling from text output.
	NoColor bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Level returns the level implied by the verbosity flags.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// JSONFromEnv reports whether lookup selects the JSON formatter.
func JSONFromEnv(lookup func(string) (string, bool)) bool {
	v, ok := lookup(FormatEnvVar)
	return ok && strings.EqualFold(strings.TrimSpace(v), "json")
}

// Setup configures the default logger. Call once, before any New.
func Setup(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	log.SetLevel(opts.Level())
	log.SetOutput(out)
	log.SetReportTimestamp(false)

	if opts.JSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
	if opts.NoColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

// New returns a logger whose lines are prefixed with component.
//
//	logging.New("config").Debug("using config file", "path", "steplens.toml")
//	// DEBU <config> using config file path=steplens.toml
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Tests use it
// to capture log lines.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
