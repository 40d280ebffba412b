// Package meshlog provides the five error kinds of spec.md §7 and a thin
// logger wrapper. The teacher never imports a structured-logging
// dependency (no zerolog/zap in its require block); it prints plain
// fmt.Printf progress banners (render/march3.go, render/marchfe.go's Info
// strings). This package generalizes that habit into a redirectable
// *log.Logger instead of hard-coded stdout, without reaching for a
// third-party logging library the corpus never uses.
package meshlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Kind classifies an Error per spec.md §7.
type Kind int

const (
	// Input marks a malformed file or wrong header counts. User-visible,
	// carries a Location.
	Input Kind = iota
	// Invariant marks an internal invariant violated — indicates a bug.
	// Fatal, carries a Detail describing the broken rule.
	Invariant
	// Geometry marks degenerate or self-intersecting input. User-visible,
	// carries a Location.
	Geometry
	// Budget marks a Steiner/time/memory cap exhausted. Non-fatal: the
	// partially-constructed mesh is returned alongside the error.
	Budget
	// Cancelled marks a cooperative-cancellation stop. The current mesh
	// is returned with a "cancelled" tag.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "INPUT"
	case Invariant:
		return "INVARIANT"
	case Geometry:
		return "GEOMETRY"
	case Budget:
		return "BUDGET"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Location pins an error to a line number (textual input) or a set of
// vertex ids (geometric input), whichever applies.
type Location struct {
	Line    int   // 0 if not applicable
	Vertex  []int // empty if not applicable
}

// Error is the five-kind error type spec.md §7 requires. It wraps an
// underlying error so %w-style chains keep working.
type Error struct {
	Kind     Kind
	Location Location
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Newf builds an Error of the given kind with a formatted detail.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an existing error.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// AtLine attaches a line-number location (textual input errors).
func (e *Error) AtLine(line int) *Error {
	e.Location.Line = line
	return e
}

// AtVertices attaches a vertex-id location (geometric input errors).
func (e *Error) AtVertices(ids ...int) *Error {
	e.Location.Vertex = ids
	return e
}

//-----------------------------------------------------------------------------

// Level names the two severities Logger emits. Logger itself does not use
// it: lines carry a bracketed component tag, and Warn lines add "WARN".
type Level string

const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Logger is the package-wide structured-progress logger. Components
// obtain one via Default(component) or New(component, w) rather than importing the standard
// library's "log" package directly, so the -Q/-V switches (behavior.Quiet,
// behavior.Verbose) can redirect or silence every component uniformly.
type Logger struct {
	component string
	out       *log.Logger
	quiet     bool
}

// New returns a Logger for the named component (e.g. "delaunay",
// "refine"), writing to w (os.Stderr is the usual choice, matching the
// convention that stdout is reserved for mesh output).
func New(component string, w io.Writer) *Logger {
	return &Logger{
		component: component,
		out:       log.New(w, "", log.LstdFlags),
	}
}

// Default returns a Logger writing to os.Stderr.
func Default(component string) *Logger {
	return New(component, os.Stderr)
}

// SetQuiet suppresses Info (but not Warn) output, matching the -Q switch.
func (l *Logger) SetQuiet(q bool) { l.quiet = q }

// Info logs a progress message, following the teacher's
// fmt.Printf("marching tetrahedra, bbox center: %v , step: %v\n", ...)
// style, but level-prefixed and redirectable.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.out.Printf("[%s] %s", l.component, fmt.Sprintf(format, args...))
}

// Warn logs a warning (e.g. duplicate vertex dropped, unreachable hole
// seed ignored, per spec.md §4.7's "warn" policies). Never suppressed by
// -Q; only the quietest possible run still surfaces geometry warnings.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.out.Printf("[%s] WARN %s", l.component, fmt.Sprintf(format, args...))
}
