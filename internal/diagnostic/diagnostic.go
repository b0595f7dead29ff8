// Diagnostic records and reporters for the colt front-end.
// Every user-facing error, warning or message flows through a Reporter.

package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colt-lang/colt/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticMessage
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticMessage:
		return "note"
	default:
		return "unknown"
	}
}

// prefix returns the letter used in front of a report number.
func (dl DiagnosticLevel) prefix() string {
	switch dl {
	case DiagnosticError:
		return "E"
	case DiagnosticWarning:
		return "W"
	default:
		return "M"
	}
}

// ReportNumber identifies a class of diagnostic. Zero means no number.
type ReportNumber uint32

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Message string
	Source  *position.SourceInfo
	Number  ReportNumber
	Level   DiagnosticLevel
}

// String formats the diagnostic header as "level: (E1) message".
func (d Diagnostic) String() string {
	if d.Number == 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: (%s%d) %s", d.Level, d.Level.prefix(), d.Number, d.Message)
}

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{diagnostic: &Diagnostic{}}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning

	return db
}

func (db *DiagnosticBuilder) Note() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticMessage

	return db
}

func (db *DiagnosticBuilder) Number(nb ReportNumber) *DiagnosticBuilder {
	db.diagnostic.Number = nb

	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

func (db *DiagnosticBuilder) Source(src *position.SourceInfo) *DiagnosticBuilder {
	db.diagnostic.Source = src

	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}

// Emit forwards the built diagnostic to r.
func (db *DiagnosticBuilder) Emit(r Reporter) {
	Emit(r, db.diagnostic)
}

// Emit forwards d to the reporter method matching its level.
func Emit(r Reporter, d *Diagnostic) {
	switch d.Level {
	case DiagnosticError:
		r.Error(d.Message, d.Source, d.Number)
	case DiagnosticWarning:
		r.Warn(d.Message, d.Source, d.Number)
	default:
		r.Message(d.Message, d.Source, d.Number)
	}
}

// SortDiagnostics sorts diagnostics by position and severity. A note stays
// after the error or warning it follows; diagnostics without source go last.
func SortDiagnostics(diags []Diagnostic) {
	type group struct{ lead, end int }
	var groups []group
	for i := range diags {
		if i == 0 || diags[i].Level != DiagnosticMessage {
			groups = append(groups, group{lead: i, end: i + 1})
			continue
		}
		groups[len(groups)-1].end = i + 1
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := diags[groups[i].lead], diags[groups[j].lead]
		if a.Source == nil || b.Source == nil {
			return a.Source != nil && b.Source == nil
		}

		as, bs := a.Source.Span.Start, b.Source.Span.Start
		if as.Filename != bs.Filename {
			return as.Filename < bs.Filename
		}
		if as.Line != bs.Line {
			return as.Line < bs.Line
		}
		if as.Column != bs.Column {
			return as.Column < bs.Column
		}

		// Then by severity (errors first).
		return a.Level < b.Level
	})

	sorted := make([]Diagnostic, 0, len(diags))
	for _, g := range groups {
		sorted = append(sorted, diags[g.lead:g.end]...)
	}
	copy(diags, sorted)
}

// FormatDiagnostics returns a formatted string representation of diags,
// followed by a summary line.
func FormatDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	var result strings.Builder
	errors, warnings := 0, 0
	for _, diag := range diags {
		switch diag.Level {
		case DiagnosticError:
			errors++
		case DiagnosticWarning:
			warnings++
		}
		if diag.Source != nil {
			result.WriteString(diag.Source.Span.Start.String())
			result.WriteString(": ")
		}
		result.WriteString(diag.String())
		result.WriteString("\n")
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if len(parts) > 0 {
		result.WriteString(fmt.Sprintf("Found %s.\n", strings.Join(parts, ", ")))
	}
	return result.String()
}
