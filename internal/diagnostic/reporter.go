package diagnostic

import (
	"github.com/colt-lang/colt/internal/position"
)

// Reporter receives the diagnostics produced while lexing and parsing.
// A nil source means the report is not attached to any source text.
type Reporter interface {
	Message(msg string, src *position.SourceInfo, nb ReportNumber)
	Warn(msg string, src *position.SourceInfo, nb ReportNumber)
	Error(msg string, src *position.SourceInfo, nb ReportNumber)
	// Counts returns the number of reports received so far.
	Counts() Counts
}

// Counts holds the number of reports received by a Reporter.
type Counts struct {
	Messages uint64
	Warnings uint64
	Errors   uint64
}

// Counter is embedded by reporters to implement Counts.
type Counter struct {
	counts Counts
}

func (c *Counter) Counts() Counts { return c.counts }

func (c *Counter) count(level DiagnosticLevel) {
	switch level {
	case DiagnosticError:
		c.counts.Errors++
	case DiagnosticWarning:
		c.counts.Warnings++
	default:
		c.counts.Messages++
	}
}

// Sink counts and drops every report.
type Sink struct {
	Counter
}

// NewSink creates a reporter that discards everything.
func NewSink() *Sink { return &Sink{} }

func (s *Sink) Message(string, *position.SourceInfo, ReportNumber) { s.count(DiagnosticMessage) }
func (s *Sink) Warn(string, *position.SourceInfo, ReportNumber)    { s.count(DiagnosticWarning) }
func (s *Sink) Error(string, *position.SourceInfo, ReportNumber)   { s.count(DiagnosticError) }

// Collector records every report as a Diagnostic.
type Collector struct {
	Counter
	diagnostics []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{diagnostics: make([]Diagnostic, 0)}
}

func (c *Collector) add(level DiagnosticLevel, msg string, src *position.SourceInfo, nb ReportNumber) {
	c.count(level)
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Message: msg,
		Source:  src,
		Number:  nb,
		Level:   level,
	})
}

func (c *Collector) Message(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.add(DiagnosticMessage, msg, src, nb)
}

func (c *Collector) Warn(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.add(DiagnosticWarning, msg, src, nb)
}

func (c *Collector) Error(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.add(DiagnosticError, msg, src, nb)
}

// Diagnostics returns all diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Errors returns only error-level diagnostics.
func (c *Collector) Errors() []Diagnostic {
	return c.filter(DiagnosticError)
}

// Warnings returns only warning-level diagnostics.
func (c *Collector) Warnings() []Diagnostic {
	return c.filter(DiagnosticWarning)
}

func (c *Collector) filter(level DiagnosticLevel) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, diag := range c.diagnostics {
		if diag.Level == level {
			out = append(out, diag)
		}
	}
	return out
}

// HasErrors returns true if there are any errors.
func (c *Collector) HasErrors() bool {
	return c.counts.Errors > 0
}

// Clear removes all diagnostics and resets the counts.
func (c *Collector) Clear() {
	c.diagnostics = c.diagnostics[:0]
	c.counts = Counts{}
}

// Replay forwards every collected diagnostic to r, in report order.
func (c *Collector) Replay(r Reporter) {
	for i := range c.diagnostics {
		Emit(r, &c.diagnostics[i])
	}
}
