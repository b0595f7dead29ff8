package ast

import (
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/qword"
	"github.com/colt-lang/colt/internal/types"
)

// makeBinary checks 'lhs op rhs' and folds it if both sides are literals
func (m *ASTMaker) makeBinary(r lexer.TokenRange, lhs ProdExprToken, op types.BinaryOp, rhs ProdExprToken) ProdExprToken {
	if m.exprs.IsError(lhs) || m.exprs.IsError(rhs) {
		return m.exprs.AddError(r)
	}

	lt, rt := m.exprs.TypeOf(lhs), m.exprs.TypeOf(rhs)
	switch m.types.BinarySupport(lt, op, rt) {
	case types.BinaryInvalidOp:
		m.errorAt(r, "'%s' does not support operator '%s'!", m.typeName(lt), op)
		return m.exprs.AddError(r)
	case types.BinaryInvalidType:
		m.errorAt(r, "'%s' does not support '%s' as right hand side of operator '%s'!",
			m.typeName(lt), m.typeName(rt), op)
		return m.exprs.AddError(r)
	}

	if rlit, ok := AsProd[LiteralExpr](m.exprs, rhs); ok {
		if llit, ok := AsProd[LiteralExpr](m.exprs, lhs); ok {
			return m.foldBinary(r, llit, op, rlit)
		}
		if op.IsDivision() && m.isIntegralZero(rlit) {
			m.errorAt(r, "Integral division by zero is not allowed!")
			return m.exprs.AddError(r)
		}
	}
	return m.exprs.AddBinary(r, lhs, op, rhs)
}

func (m *ASTMaker) isIntegralZero(lit LiteralExpr) bool {
	id, _ := m.types.Builtin(lit.Type())
	return (types.IsIntegral(id) || types.IsBytes(id)) && lit.Value == 0
}

// foldBinary evaluates an operation on two literals
func (m *ASTMaker) foldBinary(r lexer.TokenRange, lhs LiteralExpr, op types.BinaryOp, rhs LiteralExpr) ProdExprToken {
	id, _ := m.types.Builtin(lhs.Type())
	value, err := qword.Binary(op, lhs.Value, rhs.Value, qword.FromBuiltin(id))
	switch err {
	case qword.NoError:
	case qword.DivByZero:
		m.errorAt(r, "Integral division by zero is not allowed!")
		return m.exprs.AddError(r)
	case qword.InvalidOp:
		m.errorAt(r, "%s", err.Explanation())
		return m.exprs.AddError(r)
	default:
		m.warnFold(r, err)
	}
	if op.ProducesBool() {
		id = types.BOOL
	}
	return m.exprs.AddLiteral(r, value, id)
}

// makeUnary checks 'op child' and folds it if child is a literal
func (m *ASTMaker) makeUnary(r lexer.TokenRange, op types.UnaryOp, child ProdExprToken) ProdExprToken {
	if m.exprs.IsError(child) {
		return m.exprs.AddError(r)
	}
	typ := m.exprs.TypeOf(child)
	if !m.types.UnarySupport(typ, op) {
		m.errorAt(r, "'%s' does not support unary operator '%s'!", m.typeName(typ), op)
		m.panicConsume()
		return m.exprs.AddError(r)
	}

	if lit, ok := AsProd[LiteralExpr](m.exprs, child); ok {
		id, _ := m.types.Builtin(typ)
		value, err := qword.Unary(op, lit.Value, qword.FromBuiltin(id))
		if err != qword.NoError {
			m.warnFold(r, err)
		}
		return m.exprs.AddLiteral(r, value, id)
	}
	return m.exprs.AddUnary(r, op, child)
}

// makeIncDec checks '++var' and '--var'
func (m *ASTMaker) makeIncDec(r lexer.TokenRange, op types.UnaryOp, child ProdExprToken) ProdExprToken {
	decl, ok := m.exprs.AsRead(child)
	if ok {
		_, isMut, _ := m.exprs.declInfo(decl)
		ok = isMut
	}
	if !ok {
		m.errorAt(r, "Unary '%s' can only be applied on a mutable variable!", op)
		return m.exprs.AddError(r)
	}
	typ := m.exprs.TypeOf(child)
	if !m.types.UnarySupport(typ, op) {
		m.errorAt(r, "'%s' does not support unary operator '%s'!", m.typeName(typ), op)
		return m.exprs.AddError(r)
	}
	return m.exprs.AddUnary(r, op, child)
}

// makeCast checks the conversion of expr to 'to' and folds it if expr is a
// literal
func (m *ASTMaker) makeCast(r lexer.TokenRange, expr ProdExprToken, to types.TypeToken, isBitCast bool) ProdExprToken {
	from := m.exprs.TypeOf(expr)
	if m.types.CastSupport(from, to) == types.ConversionInvalid {
		m.errorAt(r, "'%s' cannot be casted to '%s'!", m.typeName(from), m.typeName(to))
		return m.exprs.AddError(r)
	}
	fromID, _ := m.types.Builtin(from)
	toID, _ := m.types.Builtin(to)

	if isBitCast && types.SizeOf(fromID) != types.SizeOf(toID) {
		m.errorAt(r, "'%s' cannot be bit casted to '%s' as their sizes differ!", m.typeName(from), m.typeName(to))
		return m.exprs.AddError(r)
	}

	lit, ok := AsProd[LiteralExpr](m.exprs, expr)
	if !ok {
		return m.exprs.AddCast(r, to, expr, isBitCast)
	}
	if isBitCast {
		return m.exprs.AddLiteral(r, lit.Value, toID)
	}
	return m.exprs.AddLiteral(r, m.foldCast(r, lit.Value, fromID, toID), toID)
}

// foldCast converts a literal value. Conversions to bool compare to zero.
func (m *ASTMaker) foldCast(r lexer.TokenRange, value uint64, from, to types.BuiltinID) uint64 {
	fromOp := qword.FromBuiltin(from)
	if to == types.BOOL {
		if fromOp.IsFP() {
			if qword.ToFloat64(value, fromOp) != 0 {
				return 1
			}
			return 0
		}
		if value&qword.Mask(fromOp.Bits()) != 0 {
			return 1
		}
		return 0
	}
	ret, err := qword.Cnv(value, fromOp, qword.FromBuiltin(to))
	if err != qword.NoError {
		m.warnFold(r, err)
	}
	return ret
}

// makeCondition creates a condition. A literal condition is replaced by the
// branch it selects, which may not exist.
func (m *ASTMaker) makeCondition(r lexer.TokenRange, cond ProdExprToken, then, elseStmt StmtExprToken, hasElse bool) (StmtExprToken, bool) {
	if lit, ok := AsProd[LiteralExpr](m.exprs, cond); ok {
		if lit.Value != 0 {
			return then, true
		}
		return elseStmt, hasElse
	}
	if !hasElse {
		elseStmt = StmtExprToken{}
	}
	return m.exprs.AddCondition(r, cond, then, elseStmt), true
}

// makeAssignment creates a write of value to lhs, which must be a variable
// or a pointer dereference
func (m *ASTMaker) makeAssignment(r lexer.TokenRange, lhs, value ProdExprToken) ProdExprToken {
	vt := m.exprs.TypeOf(value)

	if decl, ok := m.exprs.AsRead(lhs); ok {
		typ, isMut, _ := m.exprs.declInfo(decl)
		if !isMut {
			m.errorAt(r, "Cannot assign to an immutable variable!")
			return m.exprs.AddError(r)
		}
		if !m.types.IsSameAs(typ, vt) {
			m.errorAt(r, "'%s' cannot be assigned to '%s'!", m.typeName(vt), m.typeName(typ))
			return m.exprs.AddError(r)
		}
		if _, ok := AsProd[GlobalReadExpr](m.exprs, lhs); ok {
			return m.exprs.AddGlobalWrite(r, decl, value)
		}
		m.markInit(decl)
		return m.exprs.AddVarWrite(r, decl, value)
	}

	if load, ok := AsProd[PtrLoadExpr](m.exprs, lhs); ok {
		pt := m.exprs.TypeOf(load.Ptr)
		if !m.types.IsMutPtr(pt) {
			m.errorAt(r, "Cannot write through a pointer that is not 'mutptr'!")
			return m.exprs.AddError(r)
		}
		if to := load.Type(); !m.types.IsSameAs(to, vt) {
			m.errorAt(r, "'%s' cannot be assigned to '%s'!", m.typeName(vt), m.typeName(to))
			return m.exprs.AddError(r)
		}
		return m.exprs.AddPtrStore(r, load.Ptr, value)
	}

	m.errorAt(r, "Left hand side of an assignment must be a variable or a pointer dereference!")
	return m.exprs.AddError(r)
}

// markInit marks a local variable as initialized
func (m *ASTMaker) markInit(decl StmtExprToken) {
	for i := len(m.unit.locals) - 1; i >= 0; i-- {
		if m.unit.locals[i].Decl == decl {
			m.unit.locals[i].State = StateInit
			return
		}
	}
}
