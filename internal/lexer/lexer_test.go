package lexer

import (
	"math"
	"strings"
	"testing"

	"github.com/colt-lang/colt/internal/diagnostic"
)

func lexemesOf(tb *TokenBuffer) []Lexeme {
	out := make([]Lexeme, 0, tb.Len())
	for _, t := range tb.Tokens() {
		out = append(out, t.Lexeme())
	}
	return out
}

func TestLexOperators(t *testing.T) {
	input := "+ - * / % & | ^ << >> && || < <= > >= != == = += -= *= /= %= &= |= ^= <<= >>= , ; ( ) : :: { } -> => ++ -- ~ ! [ ] ."
	expected := []Lexeme{
		TknPlus, TknMinus, TknStar, TknSlash, TknPercent, TknAnd, TknOr, TknCaret,
		TknLessLess, TknGreatGreat, TknAndAnd, TknOrOr, TknLess, TknLessEqual, TknGreat,
		TknGreatEqual, TknNotEqual, TknEqualEqual, TknEqual, TknPlusEqual, TknMinusEqual,
		TknStarEqual, TknSlashEqual, TknPercentEqual, TknAndEqual, TknOrEqual, TknCaretEqual,
		TknLessLessEqual, TknGreatGreatEqual, TknComma, TknSemicolon, TknLeftParen,
		TknRightParen, TknColon, TknDoubleColon, TknLeftCurly, TknRightCurly, TknMinusGreat,
		TknEqualGreat, TknPlusPlus, TknMinusMinus, TknTilde, TknBang, TknLeftSquare,
		TknRightSquare, TknDot, TknEOF,
	}

	r := diagnostic.NewCollector()
	got := lexemesOf(Lex("ops.ct", input, r))
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Diagnostics())
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], expected[i])
		}
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	r := diagnostic.NewCollector()
	tb := Lex("kw.ct", "let mut value: mutptr.u8 = undefined; // comment\n/* block */ if true", r)

	expected := []Lexeme{TknLet, TknMut, TknIdentifier, TknColon, TknMutptr, TknDot, TknU8,
		TknEqual, TknUndefined, TknSemicolon, TknIf, TknBoolL, TknEOF}
	got := lexemesOf(tb)
	if len(got) != len(expected) {
		t.Fatalf("got %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], expected[i])
		}
	}
	if name := tb.Identifier(tb.At(2)); name != "value" {
		t.Errorf("Identifier() = %q, want %q", name, "value")
	}
	if v := tb.Literal(tb.At(11)); v != 1 {
		t.Errorf("true literal = %d, want 1", v)
	}
	if tb.At(1000).Lexeme() != TknEOF {
		t.Error("At past the end should return EOF")
	}
}

func TestLexLiterals(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		lexeme Lexeme
		value  uint64
	}{
		{"default int", "42", TknI64L, 42},
		{"u8", "255u8", TknU8L, 255},
		{"i8 max", "127i8", TknI8L, 127},
		{"hex", "0xFF", TknU64L, 255},
		{"hex u16", "0xffffu16", TknU16L, 0xFFFF},
		{"binary", "0b101u8", TknU8L, 5},
		{"octal", "0o17", TknU64L, 15},
		{"double", "1.5", TknDoubleL, math.Float64bits(1.5)},
		{"leading dot", ".25", TknDoubleL, math.Float64bits(0.25)},
		{"exponent", "1e3", TknDoubleL, math.Float64bits(1000)},
		{"float suffix", "2.5f", TknFloatL, uint64(math.Float32bits(2.5))},
		{"double suffix", "3d", TknDoubleL, math.Float64bits(3)},
		{"char", "'a'", TknCharL, 'a'},
		{"escaped char", `'\n'`, TknCharL, '\n'},
		{"false", "false", TknBoolL, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := diagnostic.NewCollector()
			tb := Lex("lit.ct", tt.input, r)
			if r.HasErrors() {
				t.Fatalf("unexpected errors: %v", r.Diagnostics())
			}
			tok := tb.At(0)
			if tok.Lexeme() != tt.lexeme {
				t.Fatalf("lexeme = %s, want %s", tok.Lexeme(), tt.lexeme)
			}
			if v := tb.Literal(tok); v != tt.value {
				t.Errorf("value = %#x, want %#x", v, tt.value)
			}
			if tb.Text(tok) != tt.input {
				t.Errorf("Text() = %q, want %q", tb.Text(tok), tt.input)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"u8 overflow", "256u8", "Invalid 'u8' literal!"},
		{"i8 overflow", "128i8", "Invalid 'i8' literal!"},
		{"i64 overflow", "9223372036854775808", "Invalid 'i64' literal!"},
		{"empty hex", "0x", "Integral literals starting with '0x' should be followed by characters in range [0-9] or [a-f]!"},
		{"empty binary", "0bu8", "Integral literals starting with '0b' should be followed by characters in range [0-1]!"},
		{"bad binary digit", "0b12", "Invalid 'u64' literal!"},
		{"signed hex", "0x1i32", "Invalid 'i32' literal!"},
		{"bad suffix", "12abc", "Invalid literal suffix 'abc'!"},
		{"reserved identifier", "___hidden", "Identifiers starting with '___' are reserved for the compiler!"},
		{"invalid character", "@", "Invalid character!"},
		{"unterminated comment", "/* never closed", "Unterminated multi-line comment!"},
		{"unterminated string", `"abc`, "Unterminated string literal!"},
		{"empty char", "''", "Invalid 'char' literal!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := diagnostic.NewCollector()
			tb := Lex("err.ct", tt.input, r)
			errs := r.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Message != tt.message {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.message)
			}
			if errs[0].Source == nil {
				t.Error("error has no source information")
			}
			last := tb.At(uint32(tb.Len() - 1))
			if last.Lexeme() != TknEOF {
				t.Errorf("last token = %s, want EOF", last.Lexeme())
			}
		})
	}
}

func TestSourceInfoOfRange(t *testing.T) {
	r := diagnostic.NewSink()
	tb := Lex("src.ct", "var x = 10 +\n  20;", r)
	// tokens: var x = 10 + 20 ; EOF
	si := tb.SourceInfo(TokenRange{Start: 3, End: 6})
	if si.Expr != "10 +\n  20" {
		t.Errorf("Expr = %q", si.Expr)
	}
	if si.LineBegin != 1 || si.LineEnd != 2 {
		t.Errorf("lines = %d..%d, want 1..2", si.LineBegin, si.LineEnd)
	}

	eof := tb.SourceInfoOf(tb.At(uint32(tb.Len() - 1)))
	if eof.Expr != "" {
		t.Errorf("EOF source text = %q, want empty", eof.Expr)
	}
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	Lex("dump.ct", "x;", diagnostic.NewSink()).Dump(&sb)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Dump wrote %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "IDENTIFIER") {
		t.Errorf("first line = %q", lines[0])
	}
}
