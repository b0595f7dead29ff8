package diagnostic

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/colt-lang/colt/internal/position"
)

const (
	colorReset   = "\x1b[0m"
	colorBold    = "\x1b[1m"
	colorRed     = "\x1b[31m"
	colorYellow  = "\x1b[33m"
	colorCyan    = "\x1b[36m"
	colorBrightR = "\x1b[91m"
)

// Console prints reports to a writer, followed by an excerpt of the
// source text they refer to.
type Console struct {
	Counter
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewConsole creates a console reporter writing to out.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

func (c *Console) Message(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.write(DiagnosticMessage, msg, src, nb)
}

func (c *Console) Warn(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.write(DiagnosticWarning, msg, src, nb)
}

func (c *Console) Error(msg string, src *position.SourceInfo, nb ReportNumber) {
	c.write(DiagnosticError, msg, src, nb)
}

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

func levelColor(level DiagnosticLevel) string {
	switch level {
	case DiagnosticError:
		return colorRed
	case DiagnosticWarning:
		return colorYellow
	default:
		return colorCyan
	}
}

func (c *Console) write(level DiagnosticLevel, msg string, src *position.SourceInfo, nb ReportNumber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count(level)

	var b strings.Builder
	if src != nil {
		b.WriteString(c.paint(colorBold, src.Span.Start.String()+": "))
	}
	b.WriteString(c.paint(levelColor(level), level.String()+":"))
	if nb != 0 {
		fmt.Fprintf(&b, " (%s%d)", level.prefix(), nb)
	}
	b.WriteString(" ")
	b.WriteString(msg)
	b.WriteString("\n")
	if src != nil {
		b.WriteString(c.excerpt(level, src))
	}
	io.WriteString(c.out, b.String())
}

// excerpt renders the source lines, highlighting the expression itself
// when the terminal supports colors.
func (c *Console) excerpt(level DiagnosticLevel, src *position.SourceInfo) string {
	text := src.Excerpt()
	if !c.color || src.Expr == "" || src.IsMultiline() {
		return text
	}
	highlight := colorCyan
	if level == DiagnosticError {
		highlight = colorBrightR
	} else if level == DiagnosticWarning {
		highlight = colorYellow
	}
	lines := strings.SplitN(text, "\n", 2)
	bar := strings.Index(lines[0], "| ")
	if bar < 0 {
		return text
	}
	start := bar + 2 + src.Span.Start.Column - 1
	end := start + len(src.Expr)
	if end > len(lines[0]) {
		return text
	}
	return lines[0][:start] + highlight + lines[0][start:end] + colorReset + lines[0][end:] + "\n" + lines[1]
}
