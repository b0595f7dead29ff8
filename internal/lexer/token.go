package lexer

import (
	"fmt"
	"io"
	"strings"

	"github.com/colt-lang/colt/internal/position"
)

// Token is a handle to a token of a TokenBuffer. It caches the lexeme so
// that the parser can dispatch without going back to the buffer.
type Token struct {
	index  uint32
	lexeme Lexeme
}

// Index returns the position of the token in its buffer
func (t Token) Index() uint32 { return t.index }

// Lexeme returns the kind of the token
func (t Token) Lexeme() Lexeme { return t.lexeme }

// Is returns true if the token is of kind lex
func (t Token) Is(lex Lexeme) bool { return t.lexeme == lex }

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Lexeme: %s, Index: %d}", t.lexeme, t.index)
}

// TokenRange is the half-open range [Start, End) of token indices covered
// by an expression.
type TokenRange struct {
	Start uint32
	End   uint32
}

// IsEmpty returns true if the range does not cover any token
func (r TokenRange) IsEmpty() bool { return r.Start >= r.End }

// Len returns the number of tokens in the range
func (r TokenRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.End - r.Start)
}

// tokenInfo is the per-token record of a TokenBuffer.
type tokenInfo struct {
	start, end int // byte offsets of the lexeme
	payload    uint32
}

// TokenBuffer is the immutable result of lexing a source file. The last
// token is always EOF.
type TokenBuffer struct {
	file        *position.SourceFile
	lexemes     []Lexeme
	infos       []tokenInfo
	literals    []uint64
	identifiers []string
	strings     []string
}

// File returns the source file the tokens were lexed from
func (tb *TokenBuffer) File() *position.SourceFile { return tb.file }

// Len returns the number of tokens, EOF included
func (tb *TokenBuffer) Len() int { return len(tb.lexemes) }

// At returns the token at index i. Indices past the end return EOF.
func (tb *TokenBuffer) At(i uint32) Token {
	if int(i) >= len(tb.lexemes) {
		i = uint32(len(tb.lexemes) - 1)
	}
	return Token{index: i, lexeme: tb.lexemes[i]}
}

// Tokens returns all the tokens of the buffer
func (tb *TokenBuffer) Tokens() []Token {
	out := make([]Token, len(tb.lexemes))
	for i := range tb.lexemes {
		out[i] = Token{index: uint32(i), lexeme: tb.lexemes[i]}
	}
	return out
}

// Literal returns the bits of a literal token. Integers are truncated to
// their width, floats are stored as their IEEE bits and bools as 0 or 1.
func (tb *TokenBuffer) Literal(t Token) uint64 {
	if !t.lexeme.IsBuiltinLiteral() {
		panic(fmt.Sprintf("lexer: %s is not a literal token", t.lexeme))
	}
	return tb.literals[tb.infos[t.index].payload]
}

// Identifier returns the name of an identifier token
func (tb *TokenBuffer) Identifier(t Token) string {
	if t.lexeme != TknIdentifier {
		panic(fmt.Sprintf("lexer: %s is not an identifier token", t.lexeme))
	}
	return tb.identifiers[tb.infos[t.index].payload]
}

// StringLiteral returns the unescaped value of a string literal token
func (tb *TokenBuffer) StringLiteral(t Token) string {
	if t.lexeme != TknStringL {
		panic(fmt.Sprintf("lexer: %s is not a string literal token", t.lexeme))
	}
	return tb.strings[tb.infos[t.index].payload]
}

// Text returns the source text of a token
func (tb *TokenBuffer) Text(t Token) string {
	info := tb.infos[t.index]
	return tb.file.Content[info.start:info.end]
}

// Span returns the source span covered by a range of tokens
func (tb *TokenBuffer) Span(r TokenRange) position.Span {
	if r.IsEmpty() {
		start := tb.infos[tb.At(r.Start).index].start
		return tb.file.SpanOf(start, start)
	}
	first := tb.infos[tb.At(r.Start).index]
	last := tb.infos[tb.At(r.End-1).index]
	return tb.file.SpanOf(first.start, last.end)
}

// SourceInfo returns the source information of a range of tokens
func (tb *TokenBuffer) SourceInfo(r TokenRange) *position.SourceInfo {
	return position.NewSourceInfo(tb.file, tb.Span(r))
}

// SourceInfoOf returns the source information of a single token
func (tb *TokenBuffer) SourceInfoOf(t Token) *position.SourceInfo {
	return tb.SourceInfo(TokenRange{Start: t.index, End: t.index + 1})
}

// Dump writes one line per token, used by the -debug-lexer flag.
func (tb *TokenBuffer) Dump(w io.Writer) {
	for _, t := range tb.Tokens() {
		pos := tb.file.PositionFromOffset(tb.infos[t.index].start)
		text := strings.ReplaceAll(tb.Text(t), "\n", "\\n")
		fmt.Fprintf(w, "%5d %-8s %-16s %q\n", t.index, pos.String(), t.lexeme, text)
	}
}
