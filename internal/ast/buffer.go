package ast

import (
	"github.com/colt-lang/colt/internal/errors"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/types"
)

// ExprBuffer stores the nodes of a unit in two append-only arenas. A token
// stays valid for the whole life of the buffer, but values returned by the
// getters are copies: they must be fetched again after any Add.
type ExprBuffer struct {
	owner types.OwnerID
	types *types.TypeBuffer
	prods []ProdExprVariant
	stmts []StmtExprVariant
}

// NewExprBuffer creates an empty buffer whose nodes use types from tb
func NewExprBuffer(owner types.OwnerID, tb *types.TypeBuffer) *ExprBuffer {
	return &ExprBuffer{
		owner: owner,
		types: tb,
		prods: make([]ProdExprVariant, 0, 512),
		stmts: make([]StmtExprVariant, 0, 128),
	}
}

// Owner returns the owner id of the buffer
func (eb *ExprBuffer) Owner() types.OwnerID { return eb.owner }

// Types returns the type buffer used by the expressions
func (eb *ExprBuffer) Types() *types.TypeBuffer { return eb.types }

// ProdLen returns the number of producers
func (eb *ExprBuffer) ProdLen() int { return len(eb.prods) }

// StmtLen returns the number of statements
func (eb *ExprBuffer) StmtLen() int { return len(eb.stmts) }

func (eb *ExprBuffer) checkProd(tok ProdExprToken) {
	if tok.owner != eb.owner {
		panic(errors.CrossArena("producer", uint32(tok.owner), uint32(eb.owner)))
	}
	if int(tok.index) >= len(eb.prods) {
		panic(errors.InvalidHandle("producer", int(tok.index), len(eb.prods)))
	}
}

func (eb *ExprBuffer) checkStmt(tok StmtExprToken) {
	if tok.owner != eb.owner {
		panic(errors.CrossArena("statement", uint32(tok.owner), uint32(eb.owner)))
	}
	if int(tok.index) >= len(eb.stmts) {
		panic(errors.InvalidHandle("statement", int(tok.index), len(eb.stmts)))
	}
}

func (eb *ExprBuffer) addProd(v ProdExprVariant) ProdExprToken {
	tok := ProdExprToken{index: uint32(len(eb.prods)), owner: eb.owner}
	eb.prods = append(eb.prods, v)
	return tok
}

func (eb *ExprBuffer) addStmt(v StmtExprVariant) StmtExprToken {
	tok := StmtExprToken{index: uint32(len(eb.stmts)), owner: eb.owner}
	eb.stmts = append(eb.stmts, v)
	return tok
}

// Prod returns the producer referred to by tok
func (eb *ExprBuffer) Prod(tok ProdExprToken) ProdExprVariant {
	eb.checkProd(tok)
	return eb.prods[tok.index]
}

// Stmt returns the statement referred to by tok
func (eb *ExprBuffer) Stmt(tok StmtExprToken) StmtExprVariant {
	eb.checkStmt(tok)
	return eb.stmts[tok.index]
}

// TypeOf returns the type of a producer
func (eb *ExprBuffer) TypeOf(tok ProdExprToken) types.TypeToken {
	return eb.Prod(tok).Type()
}

// IsError returns true if the producer is an ErrorExpr
func (eb *ExprBuffer) IsError(tok ProdExprToken) bool {
	return eb.Prod(tok).Kind() == KindError
}

// IsStmtError returns true if the statement is an ErrorExpr
func (eb *ExprBuffer) IsStmtError(tok StmtExprToken) bool {
	return eb.Stmt(tok).Kind() == KindError
}

// AsProd returns the producer as a T if it is one
func AsProd[T ProdExprVariant](eb *ExprBuffer, tok ProdExprToken) (T, bool) {
	v, ok := eb.Prod(tok).(T)
	return v, ok
}

// AsStmt returns the statement as a T if it is one
func AsStmt[T StmtExprVariant](eb *ExprBuffer, tok StmtExprToken) (T, bool) {
	v, ok := eb.Stmt(tok).(T)
	return v, ok
}

// AsRead returns the declaration read by a VarReadExpr or a GlobalReadExpr
func (eb *ExprBuffer) AsRead(tok ProdExprToken) (StmtExprToken, bool) {
	if r, ok := eb.Prod(tok).(ReadExpr); ok {
		return r.Decl(), true
	}
	return StmtExprToken{}, false
}

// Scope returns the scope referred to by tok. The returned pointer may be
// used to append statements until the next AddScope.
func (eb *ExprBuffer) Scope(tok StmtExprToken) *ScopeExpr {
	s, ok := eb.Stmt(tok).(*ScopeExpr)
	if !ok {
		panic(errors.Precondition("expected a scope"))
	}
	return s
}

// SetScopeRange updates the tokens covered by a scope once it is parsed
func (eb *ExprBuffer) SetScopeRange(tok StmtExprToken, r lexer.TokenRange) {
	eb.Scope(tok).rng = r
}

// declInfo returns the type and mutability of a local or global declaration
func (eb *ExprBuffer) declInfo(decl StmtExprToken) (types.TypeToken, bool, bool) {
	switch d := eb.Stmt(decl).(type) {
	case VarDeclExpr:
		return d.typ, d.IsMut, true
	case GlobalDeclExpr:
		return d.typ, d.IsMut, true
	}
	return types.TypeToken{}, false, false
}

func (eb *ExprBuffer) isKind(decl StmtExprToken, kinds ...ExprKind) bool {
	k := eb.Stmt(decl).Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (eb *ExprBuffer) AddError(r lexer.TokenRange) ProdExprToken {
	return eb.addProd(ErrorExpr{ExprBase{eb.types.ErrorType(), r}})
}

func (eb *ExprBuffer) AddErrorStmt(r lexer.TokenRange) StmtExprToken {
	return eb.addStmt(ErrorExpr{ExprBase{eb.types.ErrorType(), r}})
}

func (eb *ExprBuffer) AddNOP(r lexer.TokenRange) ProdExprToken {
	return eb.addProd(NOPExpr{ExprBase{eb.types.VoidType(), r}})
}

func (eb *ExprBuffer) AddNOPStmt(r lexer.TokenRange) StmtExprToken {
	return eb.addStmt(NOPExpr{ExprBase{eb.types.VoidType(), r}})
}

// AddLiteral adds a literal of builtin type id
func (eb *ExprBuffer) AddLiteral(r lexer.TokenRange, value uint64, id types.BuiltinID) ProdExprToken {
	return eb.addProd(LiteralExpr{ExprBase{eb.types.AddBuiltin(id), r}, value})
}

// AddUnary adds a unary expression with the type of its operand
func (eb *ExprBuffer) AddUnary(r lexer.TokenRange, op types.UnaryOp, expr ProdExprToken) ProdExprToken {
	return eb.addProd(UnaryExpr{ExprBase{eb.TypeOf(expr), r}, op, expr})
}

// AddBinary adds a binary expression. Both operands must have the same
// type, except for pointer arithmetic. Comparisons and boolean operators
// are of type bool.
func (eb *ExprBuffer) AddBinary(r lexer.TokenRange, lhs ProdExprToken, op types.BinaryOp, rhs ProdExprToken) ProdExprToken {
	lt, rt := eb.TypeOf(lhs), eb.TypeOf(rhs)
	if lt != rt {
		isPtrArith := (op == types.OpSum || op == types.OpSub) && eb.types.IsAnyPtr(lt)
		isPtrCmp := op.Family() == types.FamilyComparison && eb.types.IsAnyPtr(lt) && eb.types.IsAnyPtr(rt)
		if !isPtrArith && !isPtrCmp {
			panic(errors.Precondition("both operands of a binary expression must be of the same type"))
		}
	}
	typ := lt
	if op.ProducesBool() {
		typ = eb.types.AddBuiltin(types.BOOL)
	}
	return eb.addProd(BinaryExpr{ExprBase{typ, r}, lhs, op, rhs})
}

// AddCast adds a conversion of expr to type 'to'
func (eb *ExprBuffer) AddCast(r lexer.TokenRange, to types.TypeToken, expr ProdExprToken, isBitCast bool) ProdExprToken {
	if !eb.types.IsBuiltin(to) {
		panic(errors.Precondition("casts must target a builtin type"))
	}
	return eb.addProd(CastExpr{ExprBase{to, r}, expr, isBitCast})
}

// AddAddressOf adds '&decl'. The pointer is mutable if the declaration is.
func (eb *ExprBuffer) AddAddressOf(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	typ, isMut, ok := eb.declInfo(decl)
	if !ok {
		panic(errors.Precondition("expected a variable declaration"))
	}
	if isMut {
		typ = eb.types.AddMutPtr(typ)
	} else {
		typ = eb.types.AddPtr(typ)
	}
	return eb.addProd(AddressOfExpr{ExprBase{typ, r}, decl})
}

// AddPtrLoad adds '*ptr', of the type of the pointee
func (eb *ExprBuffer) AddPtrLoad(r lexer.TokenRange, ptr ProdExprToken) ProdExprToken {
	to, ok := eb.types.Pointee(eb.TypeOf(ptr))
	if !ok {
		panic(errors.Precondition("expected a non-opaque pointer"))
	}
	return eb.addProd(PtrLoadExpr{ExprBase{to, r}, ptr})
}

func (eb *ExprBuffer) AddVarRead(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	if !eb.isKind(decl, KindVarDecl) {
		panic(errors.Precondition("expected a VarDeclExpr"))
	}
	return eb.addProd(VarReadExpr{ExprBase{eb.Stmt(decl).Type(), r}, decl})
}

func (eb *ExprBuffer) AddGlobalRead(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	if !eb.isKind(decl, KindGlobalDecl) {
		panic(errors.Precondition("expected a GlobalDeclExpr"))
	}
	return eb.addProd(GlobalReadExpr{ExprBase{eb.Stmt(decl).Type(), r}, decl})
}

func (eb *ExprBuffer) AddVarWrite(r lexer.TokenRange, decl StmtExprToken, value ProdExprToken) ProdExprToken {
	if !eb.isKind(decl, KindVarDecl) {
		panic(errors.Precondition("expected a VarDeclExpr"))
	}
	if !eb.types.IsSameAs(eb.Stmt(decl).Type(), eb.TypeOf(value)) {
		panic(errors.Precondition("written value must have the type of the variable"))
	}
	return eb.addProd(VarWriteExpr{ExprBase{eb.types.VoidType(), r}, decl, value})
}

func (eb *ExprBuffer) AddGlobalWrite(r lexer.TokenRange, decl StmtExprToken, value ProdExprToken) ProdExprToken {
	if !eb.isKind(decl, KindGlobalDecl) {
		panic(errors.Precondition("expected a GlobalDeclExpr"))
	}
	if !eb.types.IsSameAs(eb.Stmt(decl).Type(), eb.TypeOf(value)) {
		panic(errors.Precondition("written value must have the type of the variable"))
	}
	return eb.addProd(GlobalWriteExpr{ExprBase{eb.types.VoidType(), r}, decl, value})
}

// AddPtrStore adds '*ptr = value'. ptr must be a non-opaque mutptr.
func (eb *ExprBuffer) AddPtrStore(r lexer.TokenRange, ptr, value ProdExprToken) ProdExprToken {
	pt := eb.TypeOf(ptr)
	to, ok := eb.types.Pointee(pt)
	if !ok || !eb.types.IsMutPtr(pt) {
		panic(errors.Precondition("expected a non-opaque mutable pointer"))
	}
	if !eb.types.IsSameAs(to, eb.TypeOf(value)) {
		panic(errors.Precondition("stored value must have the type of the pointee"))
	}
	return eb.addProd(PtrStoreExpr{ExprBase{eb.types.VoidType(), r}, ptr, value})
}

// AddMove moves a local variable into another
func (eb *ExprBuffer) AddMove(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !eb.isKind(from, KindVarDecl) || !eb.isKind(to, KindVarDecl) {
		panic(errors.Precondition("expected two local variable declarations"))
	}
	return eb.addProd(MoveExpr{ExprBase{eb.types.VoidType(), r}, from, to})
}

func (eb *ExprBuffer) AddCopy(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !eb.isKind(from, KindVarDecl, KindGlobalDecl) || !eb.isKind(to, KindVarDecl, KindGlobalDecl) {
		panic(errors.Precondition("expected two variable declarations"))
	}
	return eb.addProd(CopyExpr{ExprBase{eb.types.VoidType(), r}, from, to})
}

func (eb *ExprBuffer) AddCMove(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !eb.isKind(from, KindVarDecl, KindGlobalDecl) || !eb.isKind(to, KindVarDecl, KindGlobalDecl) {
		panic(errors.Precondition("expected two variable declarations"))
	}
	return eb.addProd(CMoveExpr{ExprBase{eb.types.VoidType(), r}, from, to})
}

// AddEval adds a statement evaluating expr
func (eb *ExprBuffer) AddEval(r lexer.TokenRange, expr ProdExprToken) StmtExprToken {
	return eb.addStmt(EvalExpr{ExprBase{eb.types.VoidType(), r}, expr})
}

// AddVarDecl declares a local variable. init may be the zero token.
func (eb *ExprBuffer) AddVarDecl(r lexer.TokenRange, typ types.TypeToken, localID uint32, name string, init ProdExprToken, isMut bool) StmtExprToken {
	return eb.addStmt(VarDeclExpr{ExprBase{typ, r}, name, localID, init, isMut})
}

func (eb *ExprBuffer) AddGlobalDecl(r lexer.TokenRange, typ types.TypeToken, name string, init ProdExprToken, isMut bool) StmtExprToken {
	return eb.addStmt(GlobalDeclExpr{ExprBase{typ, r}, name, init, isMut})
}

// AddScope adds an empty scope. parent may be the zero token.
func (eb *ExprBuffer) AddScope(r lexer.TokenRange, parent StmtExprToken) StmtExprToken {
	if parent.IsValid() && !eb.isKind(parent, KindScope) {
		panic(errors.Precondition("expected a scope as a parent"))
	}
	return eb.addStmt(&ScopeExpr{ExprBase: ExprBase{eb.types.VoidType(), r}, Parent: parent})
}

// AddCondition adds 'if cond then else'. elseStmt may be the zero token.
func (eb *ExprBuffer) AddCondition(r lexer.TokenRange, cond ProdExprToken, then, elseStmt StmtExprToken) StmtExprToken {
	ct := eb.TypeOf(cond)
	if !eb.types.IsBuiltinAnd(ct, types.IsBool) && !eb.types.IsError(ct) {
		panic(errors.Precondition("expected a bool condition"))
	}
	return eb.addStmt(ConditionExpr{ExprBase{eb.types.VoidType(), r}, cond, then, elseStmt})
}
