package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/colt-lang/colt/internal/ast"
	"github.com/colt-lang/colt/internal/config"
	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/position"
)

const replFile = "<repl>"

// session holds the inputs accepted so far. Every input is checked as a
// new unit made of the accepted inputs followed by the input, so that the
// variables declared earlier stay visible.
type session struct {
	cfg     *config.Config
	color   bool
	showAST bool

	source     strings.Builder
	statements int
}

func newSession(cfg *config.Config, color bool) *session {
	return &session{cfg: cfg, color: color}
}

// reset forgets every accepted input
func (s *session) reset() {
	s.source.Reset()
	s.statements = 0
}

// terminate appends the ';' an input ending with an expression is missing
func terminate(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	return trimmed + ";"
}

// eval checks input against the session. Diagnostics about the input are
// written to diag, the AST of its statements to out when enabled. The input
// is accepted if it has no errors.
func (s *session) eval(input string, out, diag io.Writer) bool {
	input = terminate(input)
	if input == "" {
		return true
	}
	prefix := s.source.String()
	start := len(prefix)

	// only the reports about the new input are of interest
	inInput := func(_ string, src *position.SourceInfo, _ diagnostic.ReportNumber) bool {
		return src == nil || src.Span.Start.Offset >= start
	}
	collector := diagnostic.NewCollector()
	filter := diagnostic.NewFilter(collector, inInput, inInput, inInput)

	program := ast.NewProgram(s.cfg.Warnings, filter)
	unit := ast.ParseUnit(program, replFile, prefix+input+"\n")

	var rep diagnostic.Reporter = diagnostic.NewConsole(diag, s.color)
	if s.cfg.WarningsAsErrors {
		rep = diagnostic.NewWarningsAsErrors(rep)
	}
	collector.Replay(rep)
	if collector.HasErrors() || (s.cfg.WarningsAsErrors && len(collector.Warnings()) > 0) {
		diagnostic.NewDiagnostic().Note().Message("Input discarded, the session is unchanged.").Emit(rep)
		return false
	}

	stmts := unit.Statements()
	if s.showAST && len(stmts) > s.statements {
		if err := ast.FprintStatements(out, unit, stmts[s.statements:], s.color); err != nil {
			fmt.Fprintf(diag, "Error: %v\n", err)
		}
	}
	s.source.WriteString(input)
	s.source.WriteByte('\n')
	s.statements = len(stmts)
	return true
}

// isIncomplete reports whether src has unclosed curly brackets or
// parentheses, in which case more lines are read.
func isIncomplete(src string) bool {
	tokens := lexer.Lex(replFile, src, diagnostic.NewSink())
	curly, paren := 0, 0
	for _, tok := range tokens.Tokens() {
		switch tok.Lexeme() {
		case lexer.TknLeftCurly:
			curly++
		case lexer.TknRightCurly:
			curly--
		case lexer.TknLeftParen:
			paren++
		case lexer.TknRightParen:
			paren--
		}
	}
	return curly > 0 || paren > 0
}
