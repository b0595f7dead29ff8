package qword

import (
	"github.com/colt-lang/colt/internal/types"
)

// Binary applies a binary operator on two words of type t. Comparisons and
// boolean operators produce 0 or 1.
func Binary(op types.BinaryOp, a, b uint64, t TypeOp) (uint64, OpError) {
	switch op {
	case types.OpSum:
		return Add(a, b, t)
	case types.OpSub:
		return Sub(a, b, t)
	case types.OpMul:
		return Mul(a, b, t)
	case types.OpDiv:
		return Div(a, b, t)
	case types.OpMod:
		return Mod(a, b, t)
	case types.OpLess:
		return Less(a, b, t)
	case types.OpLessEqual:
		return LessEqual(a, b, t)
	case types.OpGreat:
		return Great(a, b, t)
	case types.OpGreatEqual:
		return GreatEqual(a, b, t)
	case types.OpNotEqual:
		return NotEqual(a, b, t)
	case types.OpEqual:
		return Equal(a, b, t)
	}

	if t.IsFP() {
		return a, InvalidOp
	}
	switch op {
	case types.OpBitAnd, types.OpBoolAnd:
		return BitAnd(a, b, t.Bits())
	case types.OpBitOr, types.OpBoolOr:
		return BitOr(a, b, t.Bits())
	case types.OpBitXor:
		return BitXor(a, b, t.Bits())
	case types.OpBitLShift:
		return Lsl(a, b, t.Bits())
	case types.OpBitRShift:
		if t.IsSint() {
			return Asr(a, b, t.Bits())
		}
		return Lsr(a, b, t.Bits())
	}
	return a, InvalidOp
}

// Unary applies a folding unary operator on a word of type t. Increments
// and decrements are not folded as they require a variable.
func Unary(op types.UnaryOp, a uint64, t TypeOp) (uint64, OpError) {
	switch op {
	case types.OpNegate:
		return Neg(a, t)
	case types.OpBitNot:
		if t.IsFP() {
			return a, InvalidOp
		}
		return BitNot(a, t.Bits())
	case types.OpBoolNot:
		return a ^ 1, NoError
	}
	return a, InvalidOp
}
