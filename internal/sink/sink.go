// Package sink defines where rendered output lines and processing
// errors go. Core packages never write to stdout/stderr directly;
// they call back through these small function types, so tests can
// capture output and the CLI can point it at a logger instead.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// OutputFunc receives one fully rendered line (no trailing newline)
// per call.
type OutputFunc func(line string)

// ErrorFunc receives the original input line together with a message
// describing why it could not be processed.
type ErrorFunc func(line string, err error)

// Stdout returns an OutputFunc that writes each line followed by a
// newline to w.
func Stdout(w io.Writer) OutputFunc {
	return func(line string) {
		fmt.Fprintln(w, line)
	}
}

// Stderr returns an ErrorFunc that writes a human-readable line to w,
// one per error, in the spirit of the replayer's original plain-text
// error reporting.
func Stderr(w io.Writer) ErrorFunc {
	return func(line string, err error) {
		fmt.Fprintf(w, "error: %v (line: %q)\n", err, line)
	}
}

// DefaultOutput writes to os.Stdout.
func DefaultOutput() OutputFunc {
	return Stdout(os.Stdout)
}

// DefaultError writes to os.Stderr.
func DefaultError() ErrorFunc {
	return Stderr(os.Stderr)
}

// Zerolog returns an ErrorFunc that logs each processing error as a
// structured warning instead of plain text, for deployments that want
// their feed replayer's errors flowing through the same log pipeline
// as everything else.
func Zerolog(logger zerolog.Logger) ErrorFunc {
	return func(line string, err error) {
		logger.Warn().Str("line", line).Err(err).Msg("command failed")
	}
}
