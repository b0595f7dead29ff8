// Package lexer implements the colt lexical analyzer. Lexing produces an
// immutable TokenBuffer consumed by the parser.
package lexer

import (
	"fmt"
)

// Lexeme represents the kind of a token
type Lexeme uint8

// String returns a string representation of the lexeme
func (l Lexeme) String() string {
	if name, ok := lexemeNames[l]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(l))
}

// Lexemes. The binary operators come first and in the same order as
// types.BinaryOp, the literals and builtin type keywords in the same order
// as types.BuiltinID.
const (
	// Binary operators
	TknPlus Lexeme = iota
	TknMinus
	TknStar
	TknSlash
	TknPercent
	TknAnd
	TknOr
	TknCaret
	TknLessLess
	TknGreatGreat
	TknAndAnd
	TknOrOr
	TknLess
	TknLessEqual
	TknGreat
	TknGreatEqual
	TknNotEqual
	TknEqualEqual

	// Assignments
	TknEqual
	TknPlusEqual
	TknMinusEqual
	TknStarEqual
	TknSlashEqual
	TknPercentEqual
	TknAndEqual
	TknOrEqual
	TknCaretEqual
	TknLessLessEqual
	TknGreatGreatEqual

	// Punctuation
	TknComma
	TknSemicolon
	TknEOF
	TknError
	TknRightParen
	TknLeftParen
	TknColon
	TknDoubleColon
	TknRightCurly
	TknLeftCurly
	TknMinusGreat
	TknEqualGreat
	TknPlusPlus
	TknMinusMinus
	TknTilde
	TknBang
	TknLeftSquare
	TknRightSquare
	TknDot

	// Literals
	TknBoolL
	TknCharL
	TknU8L
	TknU16L
	TknU32L
	TknU64L
	TknI8L
	TknI16L
	TknI32L
	TknI64L
	TknFloatL
	TknDoubleL
	TknStringL

	// Builtin type keywords
	TknBool
	TknChar
	TknU8
	TknU16
	TknU32
	TknU64
	TknI8
	TknI16
	TknI32
	TknI64
	TknF32
	TknF64
	TknByte
	TknWord
	TknDword
	TknQword

	// Keywords
	TknIf
	TknElif
	TknElse
	TknFor
	TknWhile
	TknBreak
	TknContinue
	TknVar
	TknLet
	TknMut
	TknGlobal
	TknUndefined
	TknVoid
	TknPtr
	TknMutptr
	TknOpaque
	TknMutopaque
	TknFn
	TknReturn
	TknExtern
	TknConst
	TknTypeof
	TknAs
	TknBitAs
	TknPass

	TknIdentifier
)

// lexemeNames provides the source spelling of each lexeme
var lexemeNames = map[Lexeme]string{
	TknPlus:        "+",
	TknMinus:       "-",
	TknStar:        "*",
	TknSlash:       "/",
	TknPercent:     "%",
	TknAnd:         "&",
	TknOr:          "|",
	TknCaret:       "^",
	TknLessLess:    "<<",
	TknGreatGreat:  ">>",
	TknAndAnd:      "&&",
	TknOrOr:        "||",
	TknLess:        "<",
	TknLessEqual:   "<=",
	TknGreat:       ">",
	TknGreatEqual:  ">=",
	TknNotEqual:    "!=",
	TknEqualEqual:  "==",

	TknEqual:           "=",
	TknPlusEqual:       "+=",
	TknMinusEqual:      "-=",
	TknStarEqual:       "*=",
	TknSlashEqual:      "/=",
	TknPercentEqual:    "%=",
	TknAndEqual:        "&=",
	TknOrEqual:         "|=",
	TknCaretEqual:      "^=",
	TknLessLessEqual:   "<<=",
	TknGreatGreatEqual: ">>=",

	TknComma:       ",",
	TknSemicolon:   ";",
	TknEOF:         "EOF",
	TknError:       "ERROR",
	TknRightParen:  ")",
	TknLeftParen:   "(",
	TknColon:       ":",
	TknDoubleColon: "::",
	TknRightCurly:  "}",
	TknLeftCurly:   "{",
	TknMinusGreat:  "->",
	TknEqualGreat:  "=>",
	TknPlusPlus:    "++",
	TknMinusMinus:  "--",
	TknTilde:       "~",
	TknBang:        "!",
	TknLeftSquare:  "[",
	TknRightSquare: "]",
	TknDot:         ".",

	TknBoolL:    "BOOL_LITERAL",
	TknCharL:    "CHAR_LITERAL",
	TknU8L:      "U8_LITERAL",
	TknU16L:     "U16_LITERAL",
	TknU32L:     "U32_LITERAL",
	TknU64L:     "U64_LITERAL",
	TknI8L:      "I8_LITERAL",
	TknI16L:     "I16_LITERAL",
	TknI32L:     "I32_LITERAL",
	TknI64L:     "I64_LITERAL",
	TknFloatL:   "F32_LITERAL",
	TknDoubleL:  "F64_LITERAL",
	TknStringL:  "STRING_LITERAL",

	TknIdentifier: "IDENTIFIER",
}

// keywords maps string keywords to their lexemes
var keywords = map[string]Lexeme{
	"bool":      TknBool,
	"char":      TknChar,
	"u8":        TknU8,
	"u16":       TknU16,
	"u32":       TknU32,
	"u64":       TknU64,
	"i8":        TknI8,
	"i16":       TknI16,
	"i32":       TknI32,
	"i64":       TknI64,
	"f32":       TknF32,
	"f64":       TknF64,
	"BYTE":      TknByte,
	"WORD":      TknWord,
	"DWORD":     TknDword,
	"QWORD":     TknQword,
	"if":        TknIf,
	"elif":      TknElif,
	"else":      TknElse,
	"for":       TknFor,
	"while":     TknWhile,
	"break":     TknBreak,
	"continue":  TknContinue,
	"var":       TknVar,
	"let":       TknLet,
	"mut":       TknMut,
	"global":    TknGlobal,
	"undefined": TknUndefined,
	"void":      TknVoid,
	"ptr":       TknPtr,
	"mutptr":    TknMutptr,
	"opaque":    TknOpaque,
	"mutopaque": TknMutopaque,
	"fn":        TknFn,
	"return":    TknReturn,
	"extern":    TknExtern,
	"const":     TknConst,
	"typeof":    TknTypeof,
	"as":        TknAs,
	"bit_as":    TknBitAs,
	"pass":      TknPass,
}

func init() {
	for word, lex := range keywords {
		lexemeNames[lex] = word
	}
}

// lookupIdent returns the keyword lexeme of ident, or TknIdentifier.
func lookupIdent(ident string) Lexeme {
	if lex, ok := keywords[ident]; ok {
		return lex
	}
	return TknIdentifier
}

// IsBinaryOp returns true for the operators usable in binary expressions.
func (l Lexeme) IsBinaryOp() bool { return l <= TknEqualEqual }

// IsComparison returns true for < <= > >= != ==.
func (l Lexeme) IsComparison() bool { return TknLess <= l && l <= TknEqualEqual }

// IsAssignment returns true for = and every compound assignment.
func (l Lexeme) IsAssignment() bool { return TknEqual <= l && l <= TknGreatGreatEqual }

// IsDirectAssignment returns true only for '='.
func (l Lexeme) IsDirectAssignment() bool { return l == TknEqual }

// CompoundToBinary returns the binary operator of a compound assignment.
// '+=' returns '+'.
func (l Lexeme) CompoundToBinary() Lexeme {
	return l - TknPlusEqual
}

// IsLiteral returns true for the literal tokens. 'true' and 'false' are
// lexed as bool literals.
func (l Lexeme) IsLiteral() bool { return TknBoolL <= l && l <= TknStringL }

// IsBuiltinLiteral returns true for literals of a builtin type.
func (l Lexeme) IsBuiltinLiteral() bool { return TknBoolL <= l && l <= TknDoubleL }

// IsBuiltinType returns true for the builtin type keywords.
func (l Lexeme) IsBuiltinType() bool { return TknBool <= l && l <= TknQword }

// IsVarDecl returns true for 'var' and 'let'.
func (l Lexeme) IsVarDecl() bool { return l == TknVar || l == TknLet }

// IsConversion returns true for 'as' and 'bit_as'.
func (l Lexeme) IsConversion() bool { return l == TknAs || l == TknBitAs }

// IsUnary returns true for the tokens starting a unary expression.
func (l Lexeme) IsUnary() bool {
	switch l {
	case TknPlus, TknMinus, TknStar, TknAnd, TknPlusPlus, TknMinusMinus, TknTilde, TknBang:
		return true
	}
	return false
}

var precedences = [...]uint8{
	TknPlus: 12, TknMinus: 12,
	TknStar: 13, TknSlash: 13, TknPercent: 13,
	TknAnd: 10, TknOr: 10, TknCaret: 10,
	TknLessLess: 11, TknGreatGreat: 11,
	TknAndAnd: 3, TknOrOr: 2,
	TknLess: 7, TknLessEqual: 7, TknGreat: 7, TknGreatEqual: 7,
	TknNotEqual: 6, TknEqualEqual: 6,
}

// Precedence returns the binding power of the lexeme as a binary operator.
// Lexemes that cannot continue a binary expression return 0.
func (l Lexeme) Precedence() uint8 {
	if int(l) < len(precedences) {
		return precedences[l]
	}
	return 0
}
