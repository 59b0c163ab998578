// Package logger holds the process-wide zerolog logger.
//
// Call Init once during startup, then use the returned logger or fetch it
// later with Get. Output is JSON by default; Pretty switches to a console
// writer for local development.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by Init.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	mu  sync.Mutex
	log *zerolog.Logger
)

// Init builds the shared logger. Later calls are no-ops and return the
// logger built by the first one.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		return *log
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := levelFromString(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log = &l
	return l
}

// Get returns the shared logger and panics when Init has not run yet.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		panic("logger: Get called before Init")
	}
	return *log
}

// Reset discards the shared logger so the next Init rebuilds it. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	log = nil
}

func levelFromString(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
