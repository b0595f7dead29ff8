// Package ast implements the colt abstract syntax tree and the ASTMaker,
// which parses, type checks and constant folds a unit in a single pass.
//
// Nodes are stored by value in an ExprBuffer and refer to each other through
// ProdExprToken and StmtExprToken handles. Producers are expressions with a
// value (literals, operators, reads and writes), statements are everything
// else (declarations, scopes, conditions). An ErrorExpr or a NOPExpr can be
// stored in both arenas.
package ast

import (
	"fmt"

	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/types"
)

// ExprKind identifies the variant of an expression
type ExprKind uint8

const (
	KindError ExprKind = iota
	KindNOP
	KindLiteral
	KindUnary
	KindBinary
	KindCast
	KindAddressOf
	KindPtrLoad
	KindVarRead
	KindGlobalRead
	KindVarWrite
	KindGlobalWrite
	KindPtrStore
	KindMove
	KindCopy
	KindCMove
	KindEval
	KindVarDecl
	KindGlobalDecl
	KindScope
	KindCondition
)

var kindNames = [...]string{
	KindError:       "ERROR",
	KindNOP:         "NOP",
	KindLiteral:     "LITERAL",
	KindUnary:       "UNARY",
	KindBinary:      "BINARY",
	KindCast:        "CAST",
	KindAddressOf:   "ADDRESS_OF",
	KindPtrLoad:     "PTR_LOAD",
	KindVarRead:     "VAR_READ",
	KindGlobalRead:  "GLOBAL_READ",
	KindVarWrite:    "VAR_WRITE",
	KindGlobalWrite: "GLOBAL_WRITE",
	KindPtrStore:    "PTR_STORE",
	KindMove:        "MOVE",
	KindCopy:        "COPY",
	KindCMove:       "CMOVE",
	KindEval:        "EVAL",
	KindVarDecl:     "VAR_DECL",
	KindGlobalDecl:  "GLOBAL_DECL",
	KindScope:       "SCOPE",
	KindCondition:   "CONDITION",
}

func (k ExprKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", int(k))
}

// Expr is implemented by every node
type Expr interface {
	Kind() ExprKind
	// Type returns the type of the expression, void for statements
	Type() types.TypeToken
	// Range returns the tokens forming the expression
	Range() lexer.TokenRange
}

// ProdExprVariant is implemented by the nodes stored in the producer arena
type ProdExprVariant interface {
	Expr
	prodExpr()
}

// StmtExprVariant is implemented by the nodes stored in the statement arena
type StmtExprVariant interface {
	Expr
	stmtExpr()
}

// ReadExpr is implemented by the producers reading a declaration
type ReadExpr interface {
	ProdExprVariant
	Decl() StmtExprToken
}

// ExprBase holds what every node has in common
type ExprBase struct {
	typ types.TypeToken
	rng lexer.TokenRange
}

func (e ExprBase) Type() types.TypeToken   { return e.typ }
func (e ExprBase) Range() lexer.TokenRange { return e.rng }

// ErrorExpr replaces an invalid expression so that a single mistake does
// not produce a cascade of diagnostics.
type ErrorExpr struct {
	ExprBase
}

// NOPExpr does nothing. It fills empty scopes and eliminated conditions.
type NOPExpr struct {
	ExprBase
}

// LiteralExpr is a value known at compile time
type LiteralExpr struct {
	ExprBase
	Value uint64
}

type UnaryExpr struct {
	ExprBase
	Op   types.UnaryOp
	Expr ProdExprToken
}

type BinaryExpr struct {
	ExprBase
	LHS ProdExprToken
	Op  types.BinaryOp
	RHS ProdExprToken
}

// CastExpr converts Expr to its own type. A bit cast keeps the bits.
type CastExpr struct {
	ExprBase
	Expr      ProdExprToken
	IsBitCast bool
}

// AddressOfExpr is '&name'
type AddressOfExpr struct {
	ExprBase
	Decl StmtExprToken
}

// PtrLoadExpr is '*ptr'
type PtrLoadExpr struct {
	ExprBase
	Ptr ProdExprToken
}

type VarReadExpr struct {
	ExprBase
	decl StmtExprToken
}

type GlobalReadExpr struct {
	ExprBase
	decl StmtExprToken
}

func (e VarReadExpr) Decl() StmtExprToken    { return e.decl }
func (e GlobalReadExpr) Decl() StmtExprToken { return e.decl }

type VarWriteExpr struct {
	ExprBase
	Decl  StmtExprToken
	Value ProdExprToken
}

type GlobalWriteExpr struct {
	ExprBase
	Decl  StmtExprToken
	Value ProdExprToken
}

// PtrStoreExpr is '*ptr = value'
type PtrStoreExpr struct {
	ExprBase
	Ptr   ProdExprToken
	Value ProdExprToken
}

// MoveExpr moves From into To
type MoveExpr struct {
	ExprBase
	From StmtExprToken
	To   StmtExprToken
}

// CopyExpr copies From into To
type CopyExpr struct {
	ExprBase
	From StmtExprToken
	To   StmtExprToken
}

// CMoveExpr moves From into To if From is initialized
type CMoveExpr struct {
	ExprBase
	From StmtExprToken
	To   StmtExprToken
}

// EvalExpr is a statement evaluating a producer for its side effects
type EvalExpr struct {
	ExprBase
	Expr ProdExprToken
}

// VarDeclExpr declares a local variable. LocalID is the offset of the
// variable in the local variable table of the unit.
type VarDeclExpr struct {
	ExprBase
	Name    string
	LocalID uint32
	// Init is invalid for 'undefined' declarations
	Init  ProdExprToken
	IsMut bool
}

// IsInit returns true if the variable was declared with a value
func (e VarDeclExpr) IsInit() bool { return e.Init.IsValid() }

type GlobalDeclExpr struct {
	ExprBase
	Name  string
	Init  ProdExprToken
	IsMut bool
}

// ScopeExpr is a list of statements. Scopes are the only mutable nodes:
// statements and declarations are appended while the scope is parsed.
type ScopeExpr struct {
	ExprBase
	// Parent is invalid for the root scope of a unit
	Parent     StmtExprToken
	Decls      []StmtExprToken
	Statements []StmtExprToken
}

// ConditionExpr is 'if Cond Then else Else'
type ConditionExpr struct {
	ExprBase
	Cond ProdExprToken
	Then StmtExprToken
	// Else is invalid when there is no else branch
	Else StmtExprToken
}

func (ErrorExpr) Kind() ExprKind       { return KindError }
func (NOPExpr) Kind() ExprKind         { return KindNOP }
func (LiteralExpr) Kind() ExprKind     { return KindLiteral }
func (UnaryExpr) Kind() ExprKind       { return KindUnary }
func (BinaryExpr) Kind() ExprKind      { return KindBinary }
func (CastExpr) Kind() ExprKind        { return KindCast }
func (AddressOfExpr) Kind() ExprKind   { return KindAddressOf }
func (PtrLoadExpr) Kind() ExprKind     { return KindPtrLoad }
func (VarReadExpr) Kind() ExprKind     { return KindVarRead }
func (GlobalReadExpr) Kind() ExprKind  { return KindGlobalRead }
func (VarWriteExpr) Kind() ExprKind    { return KindVarWrite }
func (GlobalWriteExpr) Kind() ExprKind { return KindGlobalWrite }
func (PtrStoreExpr) Kind() ExprKind    { return KindPtrStore }
func (MoveExpr) Kind() ExprKind        { return KindMove }
func (CopyExpr) Kind() ExprKind        { return KindCopy }
func (CMoveExpr) Kind() ExprKind       { return KindCMove }
func (EvalExpr) Kind() ExprKind        { return KindEval }
func (VarDeclExpr) Kind() ExprKind     { return KindVarDecl }
func (GlobalDeclExpr) Kind() ExprKind  { return KindGlobalDecl }
func (*ScopeExpr) Kind() ExprKind      { return KindScope }
func (ConditionExpr) Kind() ExprKind   { return KindCondition }

func (ErrorExpr) prodExpr()       {}
func (NOPExpr) prodExpr()         {}
func (LiteralExpr) prodExpr()     {}
func (UnaryExpr) prodExpr()       {}
func (BinaryExpr) prodExpr()      {}
func (CastExpr) prodExpr()        {}
func (AddressOfExpr) prodExpr()   {}
func (PtrLoadExpr) prodExpr()     {}
func (VarReadExpr) prodExpr()     {}
func (GlobalReadExpr) prodExpr()  {}
func (VarWriteExpr) prodExpr()    {}
func (GlobalWriteExpr) prodExpr() {}
func (PtrStoreExpr) prodExpr()    {}
func (MoveExpr) prodExpr()        {}
func (CopyExpr) prodExpr()        {}
func (CMoveExpr) prodExpr()       {}

func (ErrorExpr) stmtExpr()      {}
func (NOPExpr) stmtExpr()        {}
func (EvalExpr) stmtExpr()       {}
func (VarDeclExpr) stmtExpr()    {}
func (GlobalDeclExpr) stmtExpr() {}
func (*ScopeExpr) stmtExpr()     {}
func (ConditionExpr) stmtExpr()  {}
