// Package logging provides the verbosity-gated stderr logger shared across
// the pipeline, mirroring the reference implementation's single global
// verboseLog but threaded as an explicit value per sheet-processing call
// instead of read from a package-level global.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/unpaper/scanprep/pkg/imaging"
)

// Re-export imaging's verbosity levels so callers outside the imaging
// package don't need to import it just to pick a level.
const (
	LevelNone   = imaging.LevelNone
	LevelNormal = imaging.LevelNormal
	LevelMore   = imaging.LevelMore
	LevelDebug  = imaging.LevelDebug
)

// Logger writes verbosity-gated messages to an output stream. It
// implements imaging.Logger so it can be passed straight into filter and
// detector calls.
type Logger struct {
	Level imaging.Level
	Out   io.Writer
}

// New returns a Logger at the given level writing to stderr.
func New(level imaging.Level) *Logger {
	return &Logger{Level: level, Out: os.Stderr}
}

// Verbose writes format/args to Out when level is at or below the
// logger's configured verbosity.
func (l *Logger) Verbose(level imaging.Level, format string, args ...any) {
	if l == nil || l.Level < level {
		return
	}
	fmt.Fprintf(l.Out, format+"\n", args...)
}

// Errorf always writes, regardless of verbosity: configuration, I/O and
// format errors are reported unconditionally before the process exits.
func (l *Logger) Errorf(format string, args ...any) {
	out := io.Writer(os.Stderr)
	if l != nil && l.Out != nil {
		out = l.Out
	}
	fmt.Fprintf(out, format+"\n", args...)
}
