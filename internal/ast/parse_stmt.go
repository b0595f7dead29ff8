package ast

import (
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/types"
)

// parseStatement parses a single statement. It is the only production
// recovering from an exceeded recursion depth.
func (m *ASTMaker) parseStatement() (ret StmtExprToken) {
	start := m.current
	depth := m.depth
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(depthExceeded); !ok {
			panic(r)
		}
		m.depth = depth
		m.panicConsumeStatement()
		ret = m.exprs.AddErrorStmt(m.rangeFrom(start))
	}()
	defer m.enter()()

	switch m.peek().Lexeme() {
	case lexer.TknVar, lexer.TknLet:
		return m.parseVarDecl(false)
	case lexer.TknGlobal:
		return m.parseVarDecl(true)
	case lexer.TknLeftCurly:
		return m.parseScope(false)
	case lexer.TknIf:
		if stmt, ok := m.parseCondition(); ok {
			return stmt
		}
		return m.exprs.AddNOPStmt(m.rangeFrom(start))
	case lexer.TknSemicolon:
		m.errorAt(tokenRange(m.peek()), "Expected a statement!")
		m.consumeCurrent()
		return m.exprs.AddErrorStmt(m.rangeFrom(start))
	}

	defer m.setPanic((*ASTMaker).panicConsumeSemicolon)()
	var stmt StmtExprToken
	if m.peek().Is(lexer.TknPass) {
		m.consumeCurrent()
		stmt = m.exprs.AddNOPStmt(m.rangeFrom(start))
	} else {
		expr := m.parseBinary()
		if m.exprs.IsError(expr) {
			m.panicConsume()
			return m.exprs.AddErrorStmt(m.rangeFrom(start))
		}
		stmt = m.exprs.AddEval(m.rangeFrom(start), expr)
	}
	if !m.checkConsume(lexer.TknSemicolon, "Expected a ';'!") {
		return m.exprs.AddErrorStmt(m.rangeFrom(start))
	}
	return stmt
}

// parseScope parses '{' statements '}', or ': statement' if acceptsSingle.
// The local variables declared in the scope are dropped at its end.
func (m *ASTMaker) parseScope(acceptsSingle bool) StmtExprToken {
	defer m.enter()()
	start := m.current

	isSingle := acceptsSingle && m.peek().Is(lexer.TknColon)
	if !isSingle && !m.peek().Is(lexer.TknLeftCurly) {
		if acceptsSingle {
			m.errorAt(tokenRange(m.peek()), "Expected the beginning of a scope ('{' or ':')!")
		} else {
			m.errorAt(tokenRange(m.peek()), "Expected the beginning of a scope ('{')!")
		}
		return m.exprs.AddErrorStmt(m.rangeFrom(start))
	}

	checkpoint := len(m.unit.locals)
	defer func() { m.unit.locals = m.unit.locals[:checkpoint] }()

	scope := m.exprs.AddScope(lexer.TokenRange{}, m.scope)
	parent := m.scope
	m.scope = scope
	defer func() { m.scope = parent }()

	m.consumeCurrent()
	if isSingle {
		stmt := m.parseStatement()
		m.pushStatement(stmt)
		m.exprs.SetScopeRange(scope, m.rangeFrom(start))
		return scope
	}

	for !m.peek().Is(lexer.TknRightCurly) && !m.isEOF() {
		m.pushStatement(m.parseStatement())
	}
	if !m.checkConsume(lexer.TknRightCurly, "Unclosed curly bracket delimiter!") {
		opened := lexer.TokenRange{Start: start, End: start + 1}
		m.messageAt(&opened, "Curly bracket opened here.")
	}
	r := m.rangeFrom(start)
	if len(m.exprs.Scope(scope).Statements) == 0 {
		m.pushStatement(m.exprs.AddNOPStmt(r))
	}
	m.exprs.SetScopeRange(scope, r)
	return scope
}

// pushStatement appends a statement to the current scope
func (m *ASTMaker) pushStatement(stmt StmtExprToken) {
	s := m.exprs.Scope(m.scope)
	s.Statements = append(s.Statements, stmt)
}

// parseVarDecl parses a local or a global variable declaration
func (m *ASTMaker) parseVarDecl(isGlobal bool) StmtExprToken {
	defer m.enter()()
	defer m.setPanic((*ASTMaker).panicConsumeSemicolon)()
	start := m.current
	fail := func() StmtExprToken {
		m.panicConsume()
		return m.exprs.AddErrorStmt(m.rangeFrom(start))
	}

	var isMut, ok bool
	if isGlobal {
		isMut, ok = m.parseGlobalVarMutability()
	} else {
		isMut, ok = m.parseLocalVarMutability()
	}
	if !ok {
		return fail()
	}

	ident := m.peek()
	if !m.checkConsume(lexer.TknIdentifier, "Expected an identifier!") {
		return fail()
	}

	var declType types.TypeToken
	hasType := m.peek().Is(lexer.TknColon)
	if hasType {
		m.consumeCurrent()
		declType = m.parseTypename()
		if m.types.IsError(declType) {
			return fail()
		}
	}
	if !m.checkConsume(lexer.TknEqual, "Expected a '='!") {
		return fail()
	}

	var init ProdExprToken
	if m.peek().Is(lexer.TknUndefined) {
		m.consumeCurrent()
		if isGlobal {
			m.errorAt(tokenRange(ident), "Global variables must be initialized!")
			return fail()
		}
		if !hasType {
			m.errorAt(tokenRange(ident), "An uninitialized variable must have a type!")
			return fail()
		}
	} else {
		initStart := m.current
		init = m.parseBinary()
		if m.exprs.IsError(init) {
			return fail()
		}
		initType := m.exprs.TypeOf(init)
		if !hasType {
			declType = initType
		} else if !m.types.IsSameAs(declType, initType) {
			m.errorAt(m.rangeFrom(initStart), "'%s' cannot be used to initialize '%s'!",
				m.typeName(initType), m.typeName(declType))
			return fail()
		}
	}
	if m.types.IsVoid(declType) {
		m.errorAt(tokenRange(ident), "A variable cannot be of type 'void'!")
		return fail()
	}
	if !m.checkConsume(lexer.TknSemicolon, "Expected a ';'!") {
		return fail()
	}

	r := m.rangeFrom(start)
	if isGlobal {
		return m.declareGlobal(r, ident, declType, init, isMut)
	}
	return m.declareLocal(r, ident, declType, init, isMut)
}

// parseLocalVarMutability parses 'var', 'let' or 'let mut'
func (m *ASTMaker) parseLocalVarMutability() (isMut, ok bool) {
	switch m.peek().Lexeme() {
	case lexer.TknVar:
		m.consumeCurrent()
		if m.peek().Is(lexer.TknMut) {
			m.warnAt(tokenRange(m.peek()), "Unecessary 'mut' as 'var' is a shorthand for 'let mut'!")
			m.consumeCurrent()
		}
		return true, true
	case lexer.TknLet:
		m.consumeCurrent()
		if m.peek().Is(lexer.TknMut) {
			m.consumeCurrent()
			return true, true
		}
		return false, true
	}
	m.errorAt(tokenRange(m.peek()), "Expected a local variable declaration!")
	m.messageAt(nil, "A local variable declaration begins with 'var' or 'let'.")
	return false, false
}

// parseGlobalVarMutability parses 'global' or 'global mut'
func (m *ASTMaker) parseGlobalVarMutability() (isMut, ok bool) {
	if !m.peek().Is(lexer.TknGlobal) {
		m.errorAt(tokenRange(m.peek()), "Expected a global variable declaration!")
		m.messageAt(nil, "A global variable declaration begins with 'global' or 'global mut'.")
		return false, false
	}
	m.consumeCurrent()
	if m.peek().Is(lexer.TknMut) {
		m.consumeCurrent()
		return true, true
	}
	return false, true
}

// parseCondition parses 'if cond scope' followed by any number of 'elif'
// and an optional 'else'. It returns false if the condition was eliminated
// and there is nothing to execute.
func (m *ASTMaker) parseCondition() (StmtExprToken, bool) {
	defer m.enter()()
	start := m.current
	// 'if' or 'elif'
	m.consumeCurrent()

	cond := m.parseBinaryCondition()
	before := m.saveStates()
	then := m.parseScope(true)
	afterThen := m.saveStates()
	m.restoreStates(before)

	var elseStmt StmtExprToken
	hasElse := false
	switch m.peek().Lexeme() {
	case lexer.TknElif:
		elseStmt, hasElse = m.parseCondition()
	case lexer.TknElse:
		m.consumeCurrent()
		elseStmt, hasElse = m.parseScope(true), true
	}
	afterElse := m.saveStates()

	if lit, ok := AsProd[LiteralExpr](m.exprs, cond); ok && lit.Value != 0 {
		m.restoreStates(afterThen)
	} else if !ok {
		m.mergeStates(afterThen, afterElse)
	}
	return m.makeCondition(m.rangeFrom(start), cond, then, elseStmt, hasElse)
}

// saveStates returns the state of every visible local variable
func (m *ASTMaker) saveStates() []VarStateFlag {
	states := make([]VarStateFlag, len(m.unit.locals))
	for i, info := range m.unit.locals {
		states[i] = info.State
	}
	return states
}

func (m *ASTMaker) restoreStates(states []VarStateFlag) {
	for i, s := range states {
		m.unit.locals[i].State = s
	}
}

// mergeStates sets the state of the locals to the merge of the states left
// by two branches
func (m *ASTMaker) mergeStates(a, b []VarStateFlag) {
	for i := range a {
		m.unit.locals[i].State = MergeStateFlag(a[i], b[i])
	}
}

// lookupLocal returns the innermost local variable called name
func (m *ASTMaker) lookupLocal(name string) (LocalVarInfo, bool) {
	for i := len(m.unit.locals) - 1; i >= 0; i-- {
		if m.unit.locals[i].Name == name {
			return m.unit.locals[i], true
		}
	}
	return LocalVarInfo{}, false
}

func (m *ASTMaker) declareLocal(r lexer.TokenRange, ident lexer.Token, typ types.TypeToken, init ProdExprToken, isMut bool) StmtExprToken {
	name := m.tokens.Identifier(ident)
	if m.warnFor.VarShadowing {
		if _, ok := m.lookupLocal(name); ok {
			m.warnAt(tokenRange(ident), "Variable '%s' shadows a previous declaration!", name)
		} else if _, ok := m.unit.globals[name]; ok {
			m.warnAt(tokenRange(ident), "Variable '%s' shadows a global variable!", name)
		}
	}

	state := StateInit
	if !init.IsValid() {
		state = StateUndef
	}
	localID := uint32(len(m.unit.locals))
	decl := m.exprs.AddVarDecl(r, typ, localID, name, init, isMut)
	m.unit.locals = append(m.unit.locals, LocalVarInfo{Name: name, Decl: decl, State: state})

	s := m.exprs.Scope(m.scope)
	s.Decls = append(s.Decls, decl)
	return decl
}

func (m *ASTMaker) declareGlobal(r lexer.TokenRange, ident lexer.Token, typ types.TypeToken, init ProdExprToken, isMut bool) StmtExprToken {
	name := m.tokens.Identifier(ident)
	if m.scope != m.unit.root {
		m.errorAt(tokenRange(ident), "Global variables can only be declared at the top level!")
		return m.exprs.AddErrorStmt(r)
	}
	if _, ok := m.unit.globals[name]; ok {
		m.errorAt(tokenRange(ident), "Global variable '%s' already exists!", name)
		return m.exprs.AddErrorStmt(r)
	}

	decl := m.exprs.AddGlobalDecl(r, typ, name, init, isMut)
	m.unit.globals[name] = decl
	s := m.exprs.Scope(m.scope)
	s.Decls = append(s.Decls, decl)
	return decl
}
