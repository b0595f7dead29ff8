package ast

import (
	"fmt"

	"github.com/colt-lang/colt/internal/config"
	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/position"
	"github.com/colt-lang/colt/internal/qword"
	"github.com/colt-lang/colt/internal/types"
)

// MaxRecursionDepth is the maximum nesting of productions in a statement
const MaxRecursionDepth = 256

// depthExceeded unwinds the maker to the enclosing statement once the
// recursion depth is exceeded
type depthExceeded struct{}

// panicConsumer resynchronises the cursor after an error
type panicConsumer func(m *ASTMaker)

// ASTMaker parses the tokens of a unit, checks and folds the expressions,
// and stores the resulting nodes in the ExprBuffer of the unit.
type ASTMaker struct {
	unit     *Unit
	tokens   *lexer.TokenBuffer
	exprs    *ExprBuffer
	types    *types.TypeBuffer
	reporter diagnostic.Reporter
	warnFor  config.WarnFor

	// current is the index of the current token
	current uint32
	depth   int
	// scope is the scope being parsed
	scope StmtExprToken
	// onPanic is called to resynchronise after an error
	onPanic panicConsumer
	// synced is true if the semicolon consumer already resynchronised
	// after the last reported error
	synced bool
}

func newASTMaker(u *Unit) *ASTMaker {
	return &ASTMaker{
		unit:     u,
		tokens:   u.tokens,
		exprs:    u.exprs,
		types:    u.exprs.Types(),
		reporter: u.program.reporter,
		warnFor:  u.program.warnFor,
		onPanic:  (*ASTMaker).panicConsumeSemicolon,
	}
}

// parseUnit parses every statement of the unit into its root scope
func (m *ASTMaker) parseUnit() {
	m.unit.root = m.exprs.AddScope(lexer.TokenRange{}, StmtExprToken{})
	m.scope = m.unit.root
	for !m.isEOF() {
		stmt := m.parseStatement()
		m.unit.statements = append(m.unit.statements, stmt)
	}
	root := m.exprs.Scope(m.unit.root)
	root.Statements = m.unit.statements
	m.exprs.SetScopeRange(m.unit.root, lexer.TokenRange{Start: 0, End: m.current})
}

// peek returns the current token
func (m *ASTMaker) peek() lexer.Token {
	return m.tokens.At(m.current)
}

func (m *ASTMaker) isEOF() bool {
	return m.peek().Is(lexer.TknEOF)
}

// consumeCurrent advances to the next token. The cursor never goes past EOF.
func (m *ASTMaker) consumeCurrent() {
	if !m.isEOF() {
		m.current++
	}
}

// rangeFrom returns the range of the tokens consumed since start
func (m *ASTMaker) rangeFrom(start uint32) lexer.TokenRange {
	return lexer.TokenRange{Start: start, End: m.current}
}

// tokenRange returns the range of a single token
func tokenRange(t lexer.Token) lexer.TokenRange {
	return lexer.TokenRange{Start: t.Index(), End: t.Index() + 1}
}

// checkConsume consumes the current token if it is lex, else reports msg
func (m *ASTMaker) checkConsume(lex lexer.Lexeme, msg string) bool {
	if m.peek().Is(lex) {
		m.consumeCurrent()
		return true
	}
	m.errorAt(tokenRange(m.peek()), msg)
	return false
}

// sourceOf returns the source of a range. An empty range points at the
// current token.
func (m *ASTMaker) sourceOf(r lexer.TokenRange) *position.SourceInfo {
	if r.IsEmpty() {
		return m.tokens.SourceInfoOf(m.tokens.At(r.Start))
	}
	return m.tokens.SourceInfo(r)
}

func (m *ASTMaker) errorAt(r lexer.TokenRange, format string, args ...interface{}) {
	m.synced = false
	m.reporter.Error(fmt.Sprintf(format, args...), m.sourceOf(r), 0)
}

func (m *ASTMaker) warnAt(r lexer.TokenRange, format string, args ...interface{}) {
	m.reporter.Warn(fmt.Sprintf(format, args...), m.sourceOf(r), 0)
}

// messageAt reports a note. A nil range produces a note without source.
func (m *ASTMaker) messageAt(r *lexer.TokenRange, format string, args ...interface{}) {
	var src *position.SourceInfo
	if r != nil {
		src = m.sourceOf(*r)
	}
	m.reporter.Message(fmt.Sprintf(format, args...), src, 0)
}

// typeName is a shorthand used by diagnostics
func (m *ASTMaker) typeName(t types.TypeToken) string {
	return m.types.TypeName(t)
}

// setPanic replaces the active panic consumer. The returned function
// restores the previous one and is meant to be deferred.
func (m *ASTMaker) setPanic(fn panicConsumer) func() {
	old := m.onPanic
	m.onPanic = fn
	return func() { m.onPanic = old }
}

// panicConsume resynchronises using the active panic consumer
func (m *ASTMaker) panicConsume() {
	if m.onPanic != nil {
		m.onPanic(m)
	}
}

// panicConsumeTill skips tokens until lex or EOF, lex is not consumed
func (m *ASTMaker) panicConsumeTill(lex lexer.Lexeme) {
	for !m.peek().Is(lex) && !m.isEOF() {
		m.consumeCurrent()
	}
}

// panicConsumeSemicolon skips tokens up to and including the next ';'.
// It does nothing if it already ran since the last error.
func (m *ASTMaker) panicConsumeSemicolon() {
	if m.synced {
		return
	}
	m.synced = true
	m.panicConsumeTill(lexer.TknSemicolon)
	m.consumeCurrent()
}

// panicConsumeStatement skips the rest of a statement whose nesting was
// too deep. Balanced curly brackets are skipped whole; it stops after a ';'
// or before a '}' closing an enclosing scope.
func (m *ASTMaker) panicConsumeStatement() {
	m.synced = true
	nesting := 0
	for !m.isEOF() {
		switch m.peek().Lexeme() {
		case lexer.TknLeftCurly:
			nesting++
		case lexer.TknRightCurly:
			if nesting == 0 {
				return
			}
			nesting--
		case lexer.TknSemicolon:
			if nesting == 0 {
				m.consumeCurrent()
				return
			}
		}
		m.consumeCurrent()
	}
}

// panicConsumeRParen skips tokens until a ')' or the end of the statement
func (m *ASTMaker) panicConsumeRParen() {
	for !m.isEOF() {
		if cur := m.peek(); cur.Is(lexer.TknRightParen) || cur.Is(lexer.TknSemicolon) {
			return
		}
		m.consumeCurrent()
	}
}

// enter increments the recursion depth and returns the function restoring
// it: defer m.enter()(). Once the limit is reached the maker unwinds to the
// enclosing statement.
func (m *ASTMaker) enter() func() {
	m.depth++
	if m.depth >= MaxRecursionDepth {
		m.errorAt(tokenRange(m.peek()), "Exceeded recursion depth!")
		panic(depthExceeded{})
	}
	return m.leave
}

func (m *ASTMaker) leave() { m.depth-- }

// warnFold reports the error of a folded operation if the warning policy
// asks for it
func (m *ASTMaker) warnFold(r lexer.TokenRange, err qword.OpError) {
	var enabled bool
	switch {
	case err.IsNaN():
		enabled = m.warnFor.ConstantFoldingNaN
	case err.IsSigned():
		enabled = m.warnFor.ConstantFoldingSigned
	case err.IsUnsigned():
		enabled = m.warnFor.ConstantFoldingUnsigned
	case err == qword.ShiftByGreSizeof:
		enabled = m.warnFor.ConstantFoldingShift
	}
	if enabled {
		m.warnAt(r, "%s", err.Explanation())
	}
}
