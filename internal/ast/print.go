package ast

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/colt-lang/colt/internal/qword"
	"github.com/colt-lang/colt/internal/types"
)

const (
	printKind  = "\x1b[36m"
	printError = "\x1b[31;1m"
	printReset = "\x1b[0m"
)

// Print writes the AST of u to stdout
func Print(u *Unit) error {
	return Fprint(os.Stdout, u, false)
}

// Fprint writes the AST of u as an indented tree, one node per line.
// Colored output uses ANSI escape sequences.
func Fprint(w io.Writer, u *Unit, colored bool) error {
	return FprintStatements(w, u, u.statements, colored)
}

// FprintStatements writes the AST of some statements of u
func FprintStatements(w io.Writer, u *Unit, stmts []StmtExprToken, colored bool) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, exprs: u.exprs, types: u.exprs.Types(), colored: colored}
	for _, stmt := range stmts {
		p.stmt(stmt, 0)
	}
	return bw.Flush()
}

type printer struct {
	w       *bufio.Writer
	exprs   *ExprBuffer
	types   *types.TypeBuffer
	colored bool
}

func (p *printer) line(depth int, kind ExprKind, typ types.TypeToken, format string, args ...interface{}) {
	p.w.WriteString(strings.Repeat("  ", depth))
	name := kind.String()
	if p.colored {
		color := printKind
		if kind == KindError {
			color = printError
		}
		name = color + name + printReset
	}
	p.w.WriteString(name)
	if format != "" {
		p.w.WriteByte(' ')
		fmt.Fprintf(p.w, format, args...)
	}
	if !p.types.IsVoid(typ) && kind != KindError {
		p.w.WriteString(": ")
		p.w.WriteString(p.types.TypeName(typ))
	}
	p.w.WriteByte('\n')
}

func (p *printer) declName(decl StmtExprToken) string {
	switch d := p.exprs.Stmt(decl).(type) {
	case VarDeclExpr:
		return d.Name
	case GlobalDeclExpr:
		return d.Name
	}
	return "?"
}

func (p *printer) prod(tok ProdExprToken, depth int) {
	switch e := p.exprs.Prod(tok).(type) {
	case ErrorExpr, NOPExpr:
		p.line(depth, e.Kind(), e.Type(), "")
	case LiteralExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.literal(e))
	case UnaryExpr:
		p.line(depth, e.Kind(), e.Type(), "'%s'", e.Op)
		p.prod(e.Expr, depth+1)
	case BinaryExpr:
		p.line(depth, e.Kind(), e.Type(), "'%s'", e.Op)
		p.prod(e.LHS, depth+1)
		p.prod(e.RHS, depth+1)
	case CastExpr:
		if e.IsBitCast {
			p.line(depth, e.Kind(), e.Type(), "bit_as")
		} else {
			p.line(depth, e.Kind(), e.Type(), "as")
		}
		p.prod(e.Expr, depth+1)
	case AddressOfExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.declName(e.Decl))
	case PtrLoadExpr:
		p.line(depth, e.Kind(), e.Type(), "")
		p.prod(e.Ptr, depth+1)
	case VarReadExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.declName(e.Decl()))
	case GlobalReadExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.declName(e.Decl()))
	case VarWriteExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.declName(e.Decl))
		p.prod(e.Value, depth+1)
	case GlobalWriteExpr:
		p.line(depth, e.Kind(), e.Type(), "%s", p.declName(e.Decl))
		p.prod(e.Value, depth+1)
	case PtrStoreExpr:
		p.line(depth, e.Kind(), e.Type(), "")
		p.prod(e.Ptr, depth+1)
		p.prod(e.Value, depth+1)
	case MoveExpr:
		p.line(depth, e.Kind(), e.Type(), "%s -> %s", p.declName(e.From), p.declName(e.To))
	case CopyExpr:
		p.line(depth, e.Kind(), e.Type(), "%s -> %s", p.declName(e.From), p.declName(e.To))
	case CMoveExpr:
		p.line(depth, e.Kind(), e.Type(), "%s -> %s", p.declName(e.From), p.declName(e.To))
	}
}

func (p *printer) stmt(tok StmtExprToken, depth int) {
	switch e := p.exprs.Stmt(tok).(type) {
	case ErrorExpr, NOPExpr:
		p.line(depth, e.Kind(), e.Type(), "")
	case EvalExpr:
		p.line(depth, e.Kind(), e.Type(), "")
		p.prod(e.Expr, depth+1)
	case VarDeclExpr:
		mut := ""
		if e.IsMut {
			mut = "mut "
		}
		p.line(depth, e.Kind(), e.Type(), "%s%s #%d", mut, e.Name, e.LocalID)
		if e.IsInit() {
			p.prod(e.Init, depth+1)
		}
	case GlobalDeclExpr:
		mut := ""
		if e.IsMut {
			mut = "mut "
		}
		p.line(depth, e.Kind(), e.Type(), "%s%s", mut, e.Name)
		p.prod(e.Init, depth+1)
	case *ScopeExpr:
		p.line(depth, e.Kind(), e.Type(), "")
		for _, s := range e.Statements {
			p.stmt(s, depth+1)
		}
	case ConditionExpr:
		p.line(depth, e.Kind(), e.Type(), "")
		p.prod(e.Cond, depth+1)
		p.stmt(e.Then, depth+1)
		if e.Else.IsValid() {
			p.stmt(e.Else, depth+1)
		}
	}
}

// literal formats the value of a literal according to its type
func (p *printer) literal(e LiteralExpr) string {
	id, _ := p.types.Builtin(e.Type())
	op := qword.FromBuiltin(id)
	switch {
	case types.IsBool(id):
		return strconv.FormatBool(e.Value != 0)
	case types.IsChar(id):
		return strconv.QuoteRune(rune(byte(e.Value)))
	case types.IsFP(id):
		return strconv.FormatFloat(qword.ToFloat64(e.Value, op), 'g', -1, int(op.Bits()))
	case types.IsSint(id):
		return strconv.FormatInt(qword.ToInt64(e.Value, op), 10)
	case types.IsBytes(id):
		return "0x" + strconv.FormatUint(e.Value&qword.Mask(op.Bits()), 16)
	}
	return strconv.FormatUint(e.Value&qword.Mask(op.Bits()), 10)
}
