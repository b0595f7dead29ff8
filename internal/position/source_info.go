package position

import (
	"fmt"
	"strings"
)

// SourceInfo describes the source text of an expression, along with the
// full lines that contain it. It is attached to every diagnostic.
type SourceInfo struct {
	Span      Span
	LineBegin int    // 1-based first line of the expression
	LineEnd   int    // 1-based last line of the expression
	Lines     string // the complete lines containing the expression
	Expr      string // the exact text of the expression
}

// NewSourceInfo builds the source information of span in file.
func NewSourceInfo(file *SourceFile, span Span) *SourceInfo {
	if file == nil || !span.IsValid() {
		return nil
	}
	lines := make([]string, 0, span.End.Line-span.Start.Line+1)
	for l := span.Start.Line; l <= span.End.Line; l++ {
		lines = append(lines, file.GetLine(l))
	}
	return &SourceInfo{
		Span:      span,
		LineBegin: span.Start.Line,
		LineEnd:   span.End.Line,
		Lines:     strings.Join(lines, "\n"),
		Expr:      file.GetSpanText(span),
	}
}

// IsMultiline reports whether the expression spans several lines.
func (si *SourceInfo) IsMultiline() bool {
	return si.LineBegin != si.LineEnd
}

// Excerpt renders the lines containing the expression, prefixed by their
// line number. Single line expressions are underlined with '~' ending in '^'.
func (si *SourceInfo) Excerpt() string {
	var b strings.Builder
	width := len(fmt.Sprint(si.LineEnd))
	for i, line := range strings.Split(si.Lines, "\n") {
		fmt.Fprintf(&b, " %*d | %s\n", width, si.LineBegin+i, line)
	}
	if si.IsMultiline() {
		return b.String()
	}

	n := si.Span.End.Column - si.Span.Start.Column
	if n < 1 {
		n = 1
	}
	b.WriteString(" " + strings.Repeat(" ", width) + " | ")
	b.WriteString(strings.Repeat(" ", si.Span.Start.Column-1))
	b.WriteString(strings.Repeat("~", n-1))
	b.WriteString("^\n")
	return b.String()
}
