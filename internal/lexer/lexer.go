package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/position"
)

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	start        int  // offset of the first char of the current lexeme

	file     *position.SourceFile
	reporter diagnostic.Reporter
	buf      *TokenBuffer
}

// Lex tokenizes source and returns the resulting buffer. Lexical errors are
// reported to r and produce ERROR tokens; lexing always runs to EOF.
func Lex(filename, source string, r diagnostic.Reporter) *TokenBuffer {
	file := position.NewSourceFile(filename, source)
	l := &Lexer{
		input:    source,
		file:     file,
		reporter: r,
		buf: &TokenBuffer{
			file:    file,
			lexemes: make([]Lexeme, 0, len(source)/3+1),
			infos:   make([]tokenInfo, 0, len(source)/3+1),
		},
	}
	l.readChar()
	for l.next() != TknEOF {
	}
	return l.buf
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents "EOF"
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

// peekAt returns the character n bytes after the current one
func (l *Lexer) peekAt(n int) byte {
	if l.position+n >= len(l.input) {
		return 0
	}
	return l.input[l.position+n]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// follow consumes the current char if it is c
func (l *Lexer) follow(c byte) bool {
	if l.ch == c && !l.atEOF() {
		l.readChar()
		return true
	}
	return false
}

// skipWhitespace skips whitespace characters and comments
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.start = l.position
			l.readChar()
			l.readChar()
			for !l.atEOF() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.atEOF() {
				l.report("Unterminated multi-line comment!")
				return
			}
			l.readChar()
			l.readChar()
		default:
			return
		}
	}
}

func (l *Lexer) report(format string, args ...interface{}) {
	span := l.file.SpanOf(l.start, l.position)
	l.reporter.Error(fmt.Sprintf(format, args...), position.NewSourceInfo(l.file, span), 0)
}

// add appends a token spanning [l.start, l.position)
func (l *Lexer) add(lex Lexeme, payload uint32) Lexeme {
	l.buf.lexemes = append(l.buf.lexemes, lex)
	l.buf.infos = append(l.buf.infos, tokenInfo{start: l.start, end: l.position, payload: payload})
	return lex
}

func (l *Lexer) addLiteral(lex Lexeme, value uint64) Lexeme {
	l.buf.literals = append(l.buf.literals, value)
	return l.add(lex, uint32(len(l.buf.literals)-1))
}

// next lexes a single token and returns its lexeme
func (l *Lexer) next() Lexeme {
	l.skipWhitespace()
	l.start = l.position
	if l.atEOF() {
		return l.add(TknEOF, 0)
	}

	ch := l.ch
	switch {
	case isDigit(ch), ch == '.' && isDigit(l.peekChar()):
		return l.readNumber()
	case isLetter(ch):
		return l.readIdentifier()
	case ch == '\'':
		return l.readCharLiteral()
	case ch == '"':
		return l.readString()
	}

	l.readChar()
	switch ch {
	case '+':
		if l.follow('+') {
			return l.add(TknPlusPlus, 0)
		}
		return l.withEqual(TknPlus, TknPlusEqual)
	case '-':
		if l.follow('-') {
			return l.add(TknMinusMinus, 0)
		}
		if l.follow('>') {
			return l.add(TknMinusGreat, 0)
		}
		return l.withEqual(TknMinus, TknMinusEqual)
	case '*':
		return l.withEqual(TknStar, TknStarEqual)
	case '/':
		return l.withEqual(TknSlash, TknSlashEqual)
	case '%':
		return l.withEqual(TknPercent, TknPercentEqual)
	case '^':
		return l.withEqual(TknCaret, TknCaretEqual)
	case '&':
		if l.follow('&') {
			return l.add(TknAndAnd, 0)
		}
		return l.withEqual(TknAnd, TknAndEqual)
	case '|':
		if l.follow('|') {
			return l.add(TknOrOr, 0)
		}
		return l.withEqual(TknOr, TknOrEqual)
	case '<':
		if l.follow('<') {
			return l.withEqual(TknLessLess, TknLessLessEqual)
		}
		return l.withEqual(TknLess, TknLessEqual)
	case '>':
		if l.follow('>') {
			return l.withEqual(TknGreatGreat, TknGreatGreatEqual)
		}
		return l.withEqual(TknGreat, TknGreatEqual)
	case '=':
		if l.follow('>') {
			return l.add(TknEqualGreat, 0)
		}
		return l.withEqual(TknEqual, TknEqualEqual)
	case '!':
		return l.withEqual(TknBang, TknNotEqual)
	case ':':
		if l.follow(':') {
			return l.add(TknDoubleColon, 0)
		}
		return l.add(TknColon, 0)
	case ',':
		return l.add(TknComma, 0)
	case ';':
		return l.add(TknSemicolon, 0)
	case '(':
		return l.add(TknLeftParen, 0)
	case ')':
		return l.add(TknRightParen, 0)
	case '{':
		return l.add(TknLeftCurly, 0)
	case '}':
		return l.add(TknRightCurly, 0)
	case '[':
		return l.add(TknLeftSquare, 0)
	case ']':
		return l.add(TknRightSquare, 0)
	case '~':
		return l.add(TknTilde, 0)
	case '.':
		return l.add(TknDot, 0)
	}

	// skip the rest of a multi-byte character
	if ch >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(l.input[l.start:])
		for l.position < l.start+size {
			l.readChar()
		}
	}
	l.report("Invalid character!")
	return l.add(TknError, 0)
}

// withEqual returns with if the current char is '=', else without
func (l *Lexer) withEqual(without, with Lexeme) Lexeme {
	if l.follow('=') {
		return l.add(with, 0)
	}
	return l.add(without, 0)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isAlphaNumeric(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// readIdentifier reads an identifier or a keyword
func (l *Lexer) readIdentifier() Lexeme {
	for isAlphaNumeric(l.ch) && !l.atEOF() {
		l.readChar()
	}
	ident := l.input[l.start:l.position]
	if strings.HasPrefix(ident, "___") {
		l.report("Identifiers starting with '___' are reserved for the compiler!")
		return l.add(TknError, 0)
	}

	switch ident {
	case "true":
		return l.addLiteral(TknBoolL, 1)
	case "false":
		return l.addLiteral(TknBoolL, 0)
	}

	switch lex := lookupIdent(ident); lex {
	case TknIdentifier:
		l.buf.identifiers = append(l.buf.identifiers, ident)
		return l.add(TknIdentifier, uint32(len(l.buf.identifiers)-1))
	default:
		return l.add(lex, 0)
	}
}

type intSuffix struct {
	lex    Lexeme
	name   string
	bits   uint
	signed bool
}

var intSuffixes = map[string]intSuffix{
	"u8":  {TknU8L, "u8", 8, false},
	"u16": {TknU16L, "u16", 16, false},
	"u32": {TknU32L, "u32", 32, false},
	"u64": {TknU64L, "u64", 64, false},
	"i8":  {TknI8L, "i8", 8, true},
	"i16": {TknI16L, "i16", 16, true},
	"i32": {TknI32L, "i32", 32, true},
	"i64": {TknI64L, "i64", 64, true},
}

func (s intSuffix) max() uint64 {
	if s.signed {
		return math.MaxUint64 >> (64 - s.bits + 1)
	}
	return math.MaxUint64 >> (64 - s.bits)
}

func (l *Lexer) readDigits(valid func(byte) bool) {
	for valid(l.ch) && !l.atEOF() {
		l.readChar()
	}
}

// readSuffix reads the type suffix following a numeric literal
func (l *Lexer) readSuffix() string {
	start := l.position
	for isAlphaNumeric(l.ch) && !l.atEOF() {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads integral and floating point literals
func (l *Lexer) readNumber() Lexeme {
	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			return l.readPrefixed(16, "0x", "[0-9] or [a-f]", isHexDigit)
		case 'b', 'B':
			return l.readPrefixed(2, "0b", "[0-1]", isDigit)
		case 'o', 'O':
			return l.readPrefixed(8, "0o", "[0-7]", isDigit)
		}
	}

	isFloat := false
	l.readDigits(isDigit)
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		l.readDigits(isDigit)
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || (l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekAt(2)) {
			isFloat = true
			l.readChar()
			l.readChar()
			l.readDigits(isDigit)
		}
	}
	body := l.input[l.start:l.position]
	suffix := l.readSuffix()

	switch suffix {
	case "f":
		return l.floatLiteral(body, 32)
	case "d":
		return l.floatLiteral(body, 64)
	case "":
		if isFloat {
			return l.floatLiteral(body, 64)
		}
		suffix = "i64"
	}

	s, ok := intSuffixes[suffix]
	if !ok {
		l.report("Invalid literal suffix '%s'!", suffix)
		return l.add(TknError, 0)
	}
	if isFloat {
		l.report("Invalid '%s' literal!", s.name)
		return l.add(TknError, 0)
	}
	return l.intLiteral(body, 10, s)
}

func (l *Lexer) readPrefixed(base int, prefix, chars string, valid func(byte) bool) Lexeme {
	l.readChar()
	l.readChar()
	bodyStart := l.position
	l.readDigits(valid)
	body := l.input[bodyStart:l.position]
	suffix := l.readSuffix()
	if body == "" {
		l.report("Integral literals starting with '%s' should be followed by characters in range %s!", prefix, chars)
		return l.add(TknError, 0)
	}
	if suffix == "" {
		suffix = "u64"
	}
	s, ok := intSuffixes[suffix]
	if !ok {
		l.report("Invalid literal suffix '%s'!", suffix)
		return l.add(TknError, 0)
	}
	if s.signed {
		l.report("Invalid '%s' literal!", s.name)
		return l.add(TknError, 0)
	}
	return l.intLiteral(body, base, s)
}

func (l *Lexer) intLiteral(body string, base int, s intSuffix) Lexeme {
	value, err := strconv.ParseUint(body, base, 64)
	if err != nil || value > s.max() {
		l.report("Invalid '%s' literal!", s.name)
		return l.add(TknError, 0)
	}
	return l.addLiteral(s.lex, value)
}

func (l *Lexer) floatLiteral(body string, bits int) Lexeme {
	value, err := strconv.ParseFloat(body, bits)
	if bits == 32 {
		if err != nil {
			l.report("Invalid 'f32' literal!")
			return l.add(TknError, 0)
		}
		return l.addLiteral(TknFloatL, uint64(math.Float32bits(float32(value))))
	}
	if err != nil {
		l.report("Invalid 'f64' literal!")
		return l.add(TknError, 0)
	}
	return l.addLiteral(TknDoubleL, math.Float64bits(value))
}

// readEscape reads the character following a '\'
func (l *Lexer) readEscape() (byte, bool) {
	l.readChar()
	var c byte
	switch l.ch {
	case 'n':
		c = '\n'
	case 't':
		c = '\t'
	case 'r':
		c = '\r'
	case '0':
		c = 0
	case '\\', '\'', '"':
		c = l.ch
	default:
		return 0, false
	}
	l.readChar()
	return c, true
}

// readCharLiteral reads a character literal
func (l *Lexer) readCharLiteral() Lexeme {
	l.readChar()
	if l.atEOF() || l.ch == '\n' {
		l.report("Unterminated char literal!")
		return l.add(TknError, 0)
	}

	var value uint64
	valid := true
	switch {
	case l.ch == '\'':
		valid = false
	case l.ch == '\\':
		c, ok := l.readEscape()
		value, valid = uint64(c), ok
	case l.ch >= utf8.RuneSelf:
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		value, valid = uint64(r), r <= 0xFF
		for i := 0; i < size; i++ {
			l.readChar()
		}
	default:
		value = uint64(l.ch)
		l.readChar()
	}

	if !l.follow('\'') {
		for !l.atEOF() && l.ch != '\'' && l.ch != '\n' {
			l.readChar()
		}
		if !l.follow('\'') {
			l.report("Unterminated char literal!")
			return l.add(TknError, 0)
		}
		valid = false
	}
	if !valid {
		l.report("Invalid 'char' literal!")
		return l.add(TknError, 0)
	}
	return l.addLiteral(TknCharL, value)
}

// readString reads a string literal
func (l *Lexer) readString() Lexeme {
	l.readChar()
	var b strings.Builder
	valid := true
	for !l.atEOF() && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			c, ok := l.readEscape()
			valid = valid && ok
			b.WriteByte(c)
			continue
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	if !l.follow('"') {
		l.report("Unterminated string literal!")
		return l.add(TknError, 0)
	}
	if !valid {
		l.report("Invalid escape sequence in string literal!")
		return l.add(TknError, 0)
	}
	l.buf.strings = append(l.buf.strings, b.String())
	return l.add(TknStringL, uint32(len(l.buf.strings)-1))
}
