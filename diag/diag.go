// Package diag implements the compiler's diagnostic sink (C8).
//
// It is modeled on the teacher's vm/static_code.go errList/parserError
// pattern: diagnostics accumulate in a list rather than aborting the whole
// run at the first one, so the middle-end can report every problem it
// finds in a single invocation. Severity ordering follows spec §7.
package diag

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/berku-oak/pegc/span"
)

// Severity orders diagnostics from least to most severe.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Span     span.Span
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// Sink is the host-provided collaborator that diagnostics are reported
// through. The front-end, middle-end and back-end are all written against
// this interface rather than against Collector directly, so a host
// compiler can supply its own sink.
type Sink interface {
	Report(sev Severity, sp span.Span, format string, args ...interface{})
}

// Collector is the default, concrete Sink: it keeps every diagnostic it
// receives and mirrors it into a zerolog logger for the run.
type Collector struct {
	Diagnostics []Diagnostic
	log         zerolog.Logger
}

// NewCollector returns an empty Collector that mirrors every diagnostic
// into logger: Notes at debug level, Warnings and Errors at warn level,
// and Fatals at error level.
func NewCollector(logger zerolog.Logger) *Collector {
	return &Collector{log: logger}
}

// Report implements Sink.
func (c *Collector) Report(sev Severity, sp span.Span, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Severity: sev, Span: sp, Message: msg})

	var ev *zerolog.Event
	switch {
	case sev >= Fatal:
		ev = c.log.Error()
	case sev >= Error:
		ev = c.log.Warn()
	case sev >= Warning:
		ev = c.log.Warn()
	default:
		ev = c.log.Debug()
	}
	ev.Str("severity", sev.String()).Str("span", sp.String()).Msg(msg)
}

// HasErrors reports whether any diagnostic at Error or above was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// BySeverity filters the collected diagnostics by exact severity, for
// tests that want to assert on one class at a time.
func (c *Collector) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
