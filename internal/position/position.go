// Package position provides source position tracking for the colt
// front-end. Positions are used by the lexer to locate tokens and by the
// reporters to print source excerpts.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span
func (s Span) String() string {
	prefix := ""
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SourceFile represents a source file with content and position tracking
type SourceFile struct {
	Filename string // File path
	Content  string // Source code content
	// byte offset of the first character of each line
	lineStarts []int
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceFile{
		Filename:   filename,
		Content:    content,
		lineStarts: starts,
	}
}

// LineCount returns the number of lines in the file
func (sf *SourceFile) LineCount() int {
	return len(sf.lineStarts)
}

// GetLine returns the specified line (1-based) or empty string if invalid
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lineStarts) {
		return ""
	}
	start := sf.lineStarts[lineNum-1]
	end := len(sf.Content)
	if lineNum < len(sf.lineStarts) {
		end = sf.lineStarts[lineNum] - 1
	}
	return strings.TrimSuffix(sf.Content[start:end], "\r")
}

// GetSpanText returns the text covered by the span
func (sf *SourceFile) GetSpanText(span Span) string {
	if !span.IsValid() || span.End.Offset > len(sf.Content) {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}

// PositionFromOffset converts a byte offset to a Position
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}
	line := sort.Search(len(sf.lineStarts), func(i int) bool {
		return sf.lineStarts[i] > offset
	})
	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.lineStarts[line-1] + 1,
		Offset:   offset,
	}
}

// SpanOf returns the span covering the bytes [start, end)
func (sf *SourceFile) SpanOf(start, end int) Span {
	return Span{Start: sf.PositionFromOffset(start), End: sf.PositionFromOffset(end)}
}
