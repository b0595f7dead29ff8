package ast

import (
	"math/bits"

	"github.com/colt-lang/colt/internal/errors"
	"github.com/colt-lang/colt/internal/lexer"
)

// VarStateFlag is the initialization state of a local variable. The
// PARTIAL states describe a variable whose state depends on the branch
// taken, they are obtained through MergeStateFlag.
type VarStateFlag uint8

const (
	StateUndef VarStateFlag = 1 << iota
	StateInit
	StateMoved

	StatePartialUninit = StateUndef | StateInit
	StatePartialMove   = StateInit | StateMoved
	StatePartialUmove  = StateUndef | StateMoved
)

func (f VarStateFlag) String() string {
	switch f {
	case StateUndef:
		return "UNDEF"
	case StateInit:
		return "INIT"
	case StateMoved:
		return "MOVED"
	case StatePartialUninit:
		return "PARTIAL_UINIT"
	case StatePartialMove:
		return "PARTIAL_MOVE"
	case StatePartialUmove:
		return "PARTIAL_UMOVE"
	}
	return "INVALID"
}

// MergeStateFlag returns the state of a variable after two branches left
// it in states a and b. A variable cannot be in all three states at once.
func MergeStateFlag(a, b VarStateFlag) VarStateFlag {
	res := a | b
	if bits.OnesCount8(uint8(res)) >= 3 {
		panic(errors.InvalidStateMerge(uint8(a), uint8(b)))
	}
	return res
}

// LocalVarInfo is an entry of the local variable table
type LocalVarInfo struct {
	Name  string
	Decl  StmtExprToken
	State VarStateFlag
}

// ComparisonSet groups the comparison operators that can be chained
type ComparisonSet uint8

const (
	SetLessOrLessEqual ComparisonSet = iota
	SetEqual
	SetGreatOrGreatEqual
	SetNone
)

func (s ComparisonSet) String() string {
	switch s {
	case SetLessOrLessEqual:
		return "'<' or '<='"
	case SetEqual:
		return "'=='"
	case SetGreatOrGreatEqual:
		return "'>' or '>='"
	}
	return "'!='"
}

// comparisonSetOf returns the set of a comparison lexeme
func comparisonSetOf(lex lexer.Lexeme) ComparisonSet {
	switch lex {
	case lexer.TknEqualEqual:
		return SetEqual
	case lexer.TknLess, lexer.TknLessEqual:
		return SetLessOrLessEqual
	case lexer.TknGreat, lexer.TknGreatEqual:
		return SetGreatOrGreatEqual
	}
	return SetNone
}

// isInvalidChain returns true if a comparison of set next cannot follow a
// comparison of set old. '!=' cannot be chained at all.
func isInvalidChain(old, next ComparisonSet) bool {
	return old != next || (old == SetNone && next == SetNone)
}
