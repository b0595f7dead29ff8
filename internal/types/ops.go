package types

import (
	"fmt"
)

// UnaryOp is an operator of a unary expression
type UnaryOp uint8

const (
	OpInc UnaryOp = iota
	OpDec
	OpNegate
	OpBoolNot
	OpBitNot
)

var unaryNames = [...]string{
	OpInc:     "++",
	OpDec:     "--",
	OpNegate:  "-",
	OpBoolNot: "!",
	OpBitNot:  "~",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// BinaryOp is an operator of a binary expression. The order matches the
// order of the binary operator lexemes.
type BinaryOp uint8

const (
	OpSum BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitLShift
	OpBitRShift
	OpBoolAnd
	OpBoolOr
	OpLess
	OpLessEqual
	OpGreat
	OpGreatEqual
	OpNotEqual
	OpEqual
)

var binaryNames = [...]string{
	OpSum:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpBitAnd:     "&",
	OpBitOr:      "|",
	OpBitXor:     "^",
	OpBitLShift:  "<<",
	OpBitRShift:  ">>",
	OpBoolAnd:    "&&",
	OpBoolOr:     "||",
	OpLess:       "<",
	OpLessEqual:  "<=",
	OpGreat:      ">",
	OpGreatEqual: ">=",
	OpNotEqual:   "!=",
	OpEqual:      "==",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// OpFamily groups binary operators by the type of their result
type OpFamily uint8

const (
	FamilyArithmetic OpFamily = iota
	FamilyBitLogic
	FamilyBoolLogic
	FamilyComparison
)

func (f OpFamily) String() string {
	switch f {
	case FamilyArithmetic:
		return "arithmetic"
	case FamilyBitLogic:
		return "bit logic"
	case FamilyBoolLogic:
		return "bool logic"
	default:
		return "comparison"
	}
}

// Family returns the family of the operator
func (op BinaryOp) Family() OpFamily {
	switch {
	case op <= OpMod:
		return FamilyArithmetic
	case op <= OpBitRShift:
		return FamilyBitLogic
	case op <= OpBoolOr:
		return FamilyBoolLogic
	default:
		return FamilyComparison
	}
}

// ProducesBool returns true if the result of the operator is always bool
func (op BinaryOp) ProducesBool() bool {
	f := op.Family()
	return f == FamilyBoolLogic || f == FamilyComparison
}

// IsDivision returns true for '/' and '%'
func (op BinaryOp) IsDivision() bool {
	return op == OpDiv || op == OpMod
}
