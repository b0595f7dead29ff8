package ast

// Visitor is called by Walk on every node reachable from a statement.
// Returning false from a Visit method skips the children of the node.
type Visitor interface {
	VisitProd(tok ProdExprToken, e ProdExprVariant) bool
	VisitStmt(tok StmtExprToken, e StmtExprVariant) bool
}

// BaseVisitor visits every node and does nothing. It is meant to be
// embedded by visitors only interested in a few nodes.
type BaseVisitor struct{}

func (BaseVisitor) VisitProd(ProdExprToken, ProdExprVariant) bool { return true }
func (BaseVisitor) VisitStmt(StmtExprToken, StmtExprVariant) bool { return true }

// Walk visits stmt and its children, depth first, children in source order
func Walk(v Visitor, eb *ExprBuffer, stmt StmtExprToken) {
	e := eb.Stmt(stmt)
	if !v.VisitStmt(stmt, e) {
		return
	}
	switch e := e.(type) {
	case EvalExpr:
		WalkProd(v, eb, e.Expr)
	case VarDeclExpr:
		if e.IsInit() {
			WalkProd(v, eb, e.Init)
		}
	case GlobalDeclExpr:
		WalkProd(v, eb, e.Init)
	case *ScopeExpr:
		for _, s := range e.Statements {
			Walk(v, eb, s)
		}
	case ConditionExpr:
		WalkProd(v, eb, e.Cond)
		Walk(v, eb, e.Then)
		if e.Else.IsValid() {
			Walk(v, eb, e.Else)
		}
	}
}

// WalkProd visits prod and its children
func WalkProd(v Visitor, eb *ExprBuffer, prod ProdExprToken) {
	e := eb.Prod(prod)
	if !v.VisitProd(prod, e) {
		return
	}
	switch e := e.(type) {
	case UnaryExpr:
		WalkProd(v, eb, e.Expr)
	case BinaryExpr:
		WalkProd(v, eb, e.LHS)
		WalkProd(v, eb, e.RHS)
	case CastExpr:
		WalkProd(v, eb, e.Expr)
	case PtrLoadExpr:
		WalkProd(v, eb, e.Ptr)
	case VarWriteExpr:
		WalkProd(v, eb, e.Value)
	case GlobalWriteExpr:
		WalkProd(v, eb, e.Value)
	case PtrStoreExpr:
		WalkProd(v, eb, e.Ptr)
		WalkProd(v, eb, e.Value)
	}
}

// Stats counts the nodes of a unit reachable from its statements
type Stats struct {
	BaseVisitor
	Kinds      map[ExprKind]int
	Nodes      int
	Errors     int
	Literals   int
	Conditions int
}

func (s *Stats) count(k ExprKind) {
	s.Nodes++
	s.Kinds[k]++
	switch k {
	case KindError:
		s.Errors++
	case KindLiteral:
		s.Literals++
	case KindCondition:
		s.Conditions++
	}
}

func (s *Stats) VisitProd(_ ProdExprToken, e ProdExprVariant) bool {
	s.count(e.Kind())
	return true
}

func (s *Stats) VisitStmt(_ StmtExprToken, e StmtExprVariant) bool {
	s.count(e.Kind())
	return true
}

// CollectStats walks the statements of a parsed unit
func CollectStats(u *Unit) *Stats {
	s := &Stats{Kinds: make(map[ExprKind]int)}
	for _, stmt := range u.statements {
		Walk(s, u.exprs, stmt)
	}
	return s
}
