package ast

import (
	"github.com/colt-lang/colt/internal/config"
	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/errors"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/types"
)

// programOwner is the owner id of the type buffer of a program. Units get
// the following ids.
const programOwner types.OwnerID = 1

// Program holds what is shared by the units of a compilation: the type
// buffer, the warning policy and the reporter. A Program is not safe for
// concurrent use.
type Program struct {
	types     *types.TypeBuffer
	warnFor   config.WarnFor
	reporter  diagnostic.Reporter
	nextOwner types.OwnerID
	units     []*Unit
}

// NewProgram creates an empty program reporting to r
func NewProgram(warnFor config.WarnFor, r diagnostic.Reporter) *Program {
	return &Program{
		types:     types.NewTypeBuffer(programOwner),
		warnFor:   warnFor,
		reporter:  r,
		nextOwner: programOwner + 1,
	}
}

func (p *Program) Types() *types.TypeBuffer      { return p.types }
func (p *Program) WarnFor() config.WarnFor       { return p.warnFor }
func (p *Program) Reporter() diagnostic.Reporter { return p.reporter }
func (p *Program) Units() []*Unit                { return p.units }

// Unit is a single source file of a program
type Unit struct {
	program *Program
	tokens  *lexer.TokenBuffer
	exprs   *ExprBuffer

	root       StmtExprToken
	statements []StmtExprToken
	// locals is the local variable table, truncated on scope exit
	locals  []LocalVarInfo
	globals map[string]StmtExprToken
	parsed  bool
}

// NewUnit creates an unparsed unit for tokens
func NewUnit(p *Program, tokens *lexer.TokenBuffer) *Unit {
	owner := p.nextOwner
	p.nextOwner++
	u := &Unit{
		program: p,
		tokens:  tokens,
		exprs:   NewExprBuffer(owner, p.types),
		globals: make(map[string]StmtExprToken),
	}
	p.units = append(p.units, u)
	return u
}

// ParseUnit lexes source, then parses it as a new unit of p
func ParseUnit(p *Program, filename, source string) *Unit {
	u := NewUnit(p, lexer.Lex(filename, source, p.reporter))
	u.Parse()
	return u
}

// Parse builds the AST of the unit. A unit can only be parsed once.
func (u *Unit) Parse() {
	if u.parsed {
		panic(errors.Precondition("unit was already parsed"))
	}
	u.parsed = true
	newASTMaker(u).parseUnit()
}

func (u *Unit) Program() *Program          { return u.program }
func (u *Unit) Tokens() *lexer.TokenBuffer { return u.tokens }
func (u *Unit) Exprs() *ExprBuffer         { return u.exprs }
func (u *Unit) IsParsed() bool             { return u.parsed }

// Root returns the scope holding the top-level statements
func (u *Unit) Root() StmtExprToken { return u.root }

// Statements returns the top-level statements of the unit
func (u *Unit) Statements() []StmtExprToken { return u.statements }

// Global returns the declaration of a global variable
func (u *Unit) Global(name string) (StmtExprToken, bool) {
	decl, ok := u.globals[name]
	return decl, ok
}
