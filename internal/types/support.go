package types

// BinarySupport is the result of checking a binary operation
type BinarySupport uint8

const (
	// BinaryBuiltin means the operation is supported
	BinaryBuiltin BinarySupport = iota
	// BinaryInvalidOp means the left hand side does not support the operator
	BinaryInvalidOp
	// BinaryInvalidType means the right hand side has the wrong type
	BinaryInvalidType
)

// ConversionSupport is the result of checking a cast
type ConversionSupport uint8

const (
	ConversionBuiltin ConversionSupport = iota
	ConversionInvalid
)

// UnarySupport returns true if a value of type tok supports op
func (tb *TypeBuffer) UnarySupport(tok TypeToken, op UnaryOp) bool {
	switch v := tb.Type(tok).(type) {
	case ErrorType:
		return true
	case BuiltinType:
		return builtinUnarySupport(v.ID, op)
	default:
		return false
	}
}

func builtinUnarySupport(id BuiltinID, op UnaryOp) bool {
	switch {
	case IsBool(id):
		return op == OpBoolNot
	case IsSint(id):
		return op == OpBitNot || op == OpNegate || op == OpInc || op == OpDec
	case IsUint(id):
		return op == OpBitNot || op == OpInc || op == OpDec
	case IsFP(id):
		return op == OpInc || op == OpDec || op == OpNegate
	case IsBytes(id):
		return op == OpBitNot
	default:
		return false
	}
}

// BinarySupport checks if 'lhs op rhs' is a valid operation
func (tb *TypeBuffer) BinarySupport(lhs TypeToken, op BinaryOp, rhs TypeToken) BinarySupport {
	rv := tb.Type(rhs)
	switch v := tb.Type(lhs).(type) {
	case ErrorType:
		return BinaryBuiltin
	case BuiltinType:
		return builtinBinarySupport(v.ID, op, rv)
	case PtrType:
		return tb.ptrBinarySupport(v.To, op, rv)
	case MutPtrType:
		return tb.ptrBinarySupport(v.To, op, rv)
	case OpaquePtrType, MutOpaquePtrType:
		if op.Family() != FamilyComparison {
			return BinaryInvalidOp
		}
		if k := rv.Kind(); k == KindOpaquePtr || k == KindMutOpaquePtr {
			return BinaryBuiltin
		}
		return BinaryInvalidType
	default:
		return BinaryInvalidOp
	}
}

func (tb *TypeBuffer) ptrBinarySupport(to TypeToken, op BinaryOp, rhs TypeVariant) BinarySupport {
	switch {
	case op == OpSum || op == OpSub:
		if b, ok := rhs.(BuiltinType); ok && IsIntegral(b.ID) {
			return BinaryBuiltin
		}
		return BinaryInvalidType
	case op.Family() == FamilyComparison:
		switch p := rhs.(type) {
		case PtrType:
			if p.To == to {
				return BinaryBuiltin
			}
		case MutPtrType:
			if p.To == to {
				return BinaryBuiltin
			}
		}
		return BinaryInvalidType
	default:
		return BinaryInvalidOp
	}
}

func builtinBinarySupport(id BuiltinID, op BinaryOp, rhs TypeVariant) BinarySupport {
	sameRHS := func() BinarySupport {
		if b, ok := rhs.(BuiltinType); ok && b.ID == id {
			return BinaryBuiltin
		}
		return BinaryInvalidType
	}

	switch {
	case IsBool(id):
		switch op {
		case OpBitAnd, OpBitOr, OpBitXor, OpBoolAnd, OpBoolOr, OpNotEqual, OpEqual:
			return sameRHS()
		}
		return BinaryInvalidOp
	case IsChar(id):
		return BinaryInvalidOp
	case IsFP(id):
		if op.Family() == FamilyArithmetic || op.Family() == FamilyComparison {
			return sameRHS()
		}
		return BinaryInvalidOp
	default:
		// integral and bytes types
		if op.Family() != FamilyBoolLogic {
			return sameRHS()
		}
		return BinaryInvalidOp
	}
}

// CastSupport checks if a value of type from can be converted to type to
func (tb *TypeBuffer) CastSupport(from, to TypeToken) ConversionSupport {
	switch tb.Type(from).(type) {
	case ErrorType:
		return ConversionBuiltin
	case BuiltinType:
		if tb.IsBuiltin(to) || tb.IsError(to) {
			return ConversionBuiltin
		}
	}
	return ConversionInvalid
}
