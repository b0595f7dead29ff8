package ast

import (
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/types"
)

// parsePrimary parses a literal, a variable, a unary expression or a
// parenthesized expression, followed by a conversion if acceptsConv.
func (m *ASTMaker) parsePrimary(acceptsConv bool) ProdExprToken {
	defer m.enter()()
	start := m.current

	var ret ProdExprToken
	switch cur := m.peek(); {
	case cur.Lexeme().IsBuiltinLiteral():
		ret = m.parseLiteral()
	case cur.Is(lexer.TknIdentifier):
		ret = m.parseIdentifier()
	case cur.Lexeme().IsUnary():
		ret = m.parseUnary()
	case cur.Is(lexer.TknLeftParen):
		ret = m.parseParenthesis(m.parseBinary)
	default:
		ret = m.parseInvalidPrimary()
	}

	if acceptsConv && m.peek().Lexeme().IsConversion() {
		return m.parseConversion(ret, start)
	}
	return ret
}

func (m *ASTMaker) parseLiteral() ProdExprToken {
	tok := m.peek()
	m.consumeCurrent()
	id := types.BuiltinID(tok.Lexeme() - lexer.TknBoolL)
	return m.exprs.AddLiteral(tokenRange(tok), m.tokens.Literal(tok), id)
}

// parseIdentifier parses a read of a local or a global variable
func (m *ASTMaker) parseIdentifier() ProdExprToken {
	tok := m.peek()
	m.consumeCurrent()
	r := tokenRange(tok)
	name := m.tokens.Identifier(tok)

	if info, ok := m.lookupLocal(name); ok {
		return m.exprs.AddVarRead(r, info.Decl)
	}
	if decl, ok := m.unit.globals[name]; ok {
		return m.exprs.AddGlobalRead(r, decl)
	}
	m.errorAt(r, "Variable '%s' does not exist!", name)
	return m.exprs.AddError(r)
}

func (m *ASTMaker) parseInvalidPrimary() ProdExprToken {
	start := m.current
	// the lexer already reported the error token, the statement still
	// needs to resynchronise
	if m.peek().Is(lexer.TknError) {
		m.consumeCurrent()
		m.synced = false
		return m.exprs.AddError(m.rangeFrom(start))
	}
	m.errorAt(tokenRange(m.peek()), "Expected an expression!")
	m.panicConsume()
	return m.exprs.AddError(m.rangeFrom(start))
}

// parseParenthesis parses '(' fn ')'
func (m *ASTMaker) parseParenthesis(fn func() ProdExprToken) ProdExprToken {
	defer m.setPanic((*ASTMaker).panicConsumeRParen)()
	start := m.current

	if !m.checkConsume(lexer.TknLeftParen, "Expected a '('!") {
		m.panicConsume()
		return m.exprs.AddError(m.rangeFrom(start))
	}
	ret := fn()
	if m.peek().Is(lexer.TknRightParen) {
		m.consumeCurrent()
		return ret
	}
	if !m.exprs.IsError(ret) {
		m.errorAt(tokenRange(m.peek()), "Expected a ')'!")
		opened := lexer.TokenRange{Start: start, End: start + 1}
		m.messageAt(&opened, "Parenthesis opened here.")
	}
	return ret
}

func (m *ASTMaker) parseUnary() ProdExprToken {
	defer m.enter()()
	start := m.current
	op := m.peek()
	m.consumeCurrent()

	child := m.parsePrimary(false)
	r := m.rangeFrom(start)
	if m.exprs.IsError(child) {
		return m.exprs.AddError(r)
	}

	switch op.Lexeme() {
	case lexer.TknPlus:
		m.errorAt(r, "Unary '+' is not supported!")
		m.panicConsume()
		return m.exprs.AddError(r)
	case lexer.TknAnd:
		decl, ok := m.exprs.AsRead(child)
		if !ok {
			m.errorAt(r, "Unary '&' can only be applied on a variable!")
			return m.exprs.AddError(r)
		}
		return m.exprs.AddAddressOf(r, decl)
	case lexer.TknStar:
		typ := m.exprs.TypeOf(child)
		if m.types.IsAnyOpaquePtr(typ) {
			m.errorAt(r, "Unary '*' can only be applied on a non-opaque pointer!")
			return m.exprs.AddError(r)
		}
		if !m.types.IsAnyPtr(typ) {
			m.errorAt(r, "Unary '*' can only be applied on pointer types!")
			return m.exprs.AddError(r)
		}
		return m.exprs.AddPtrLoad(r, child)
	case lexer.TknPlusPlus, lexer.TknMinusMinus:
		return m.makeIncDec(r, unaryOpOf(op.Lexeme()), child)
	}
	return m.makeUnary(r, unaryOpOf(op.Lexeme()), child)
}

func unaryOpOf(lex lexer.Lexeme) types.UnaryOp {
	switch lex {
	case lexer.TknPlusPlus:
		return types.OpInc
	case lexer.TknMinusMinus:
		return types.OpDec
	case lexer.TknMinus:
		return types.OpNegate
	case lexer.TknBang:
		return types.OpBoolNot
	default:
		return types.OpBitNot
	}
}

// parseBinary parses an expression: a sequence of binary operators or an
// assignment.
func (m *ASTMaker) parseBinary() ProdExprToken {
	defer m.enter()()
	start := m.current

	lhs := m.parsePrimary(true)
	if m.exprs.IsError(lhs) {
		return lhs
	}
	if m.peek().Lexeme().IsAssignment() {
		return m.parseAssignment(lhs, start)
	}
	return m.parseBinaryInternal(start, lhs, 0)
}

// parseBinaryInternal consumes the operators of precedence greater than
// previous, lhs being the already parsed left hand side.
func (m *ASTMaker) parseBinaryInternal(start uint32, lhs ProdExprToken, previous uint8) ProdExprToken {
	for op := m.peek(); op.Lexeme().Precedence() > previous; op = m.peek() {
		m.consumeCurrent()
		rhsStart := m.current
		rhs := m.parsePrimary(true)
		if m.exprs.IsError(rhs) {
			return rhs
		}
		// operators binding tighter than op belong to the right hand side
		rhs = m.parseBinaryInternal(rhsStart, rhs, op.Lexeme().Precedence())
		if m.exprs.IsError(rhs) {
			return rhs
		}

		if op.Lexeme().IsComparison() {
			lhs = m.parseComparison(start, op, lhs, rhs)
		} else {
			lhs = m.makeBinary(m.rangeFrom(start), lhs, types.BinaryOp(op.Lexeme()), rhs)
		}
	}
	return lhs
}

// parseComparison chains the comparisons following 'lhs op rhs':
// 'a < b < c' is parsed as '(a < b) && (b < c)'.
func (m *ASTMaker) parseComparison(start uint32, op lexer.Token, lhs, rhs ProdExprToken) ProdExprToken {
	set := comparisonSetOf(op.Lexeme())
	ret := m.makeBinary(m.rangeFrom(start), lhs, types.BinaryOp(op.Lexeme()), rhs)

	for m.peek().Lexeme().IsComparison() {
		cmp := m.peek()
		next := comparisonSetOf(cmp.Lexeme())
		if isInvalidChain(set, next) {
			if next == SetNone {
				m.errorAt(tokenRange(cmp), "'%s' cannot be chained with any other comparison operators!", cmp.Lexeme())
			} else {
				m.errorAt(tokenRange(cmp), "'%s' cannot be chained with %s!", cmp.Lexeme(), set)
			}
		}
		m.consumeCurrent()

		nrhsStart := m.current
		nrhs := m.parsePrimary(true)
		if m.exprs.IsError(nrhs) {
			return nrhs
		}
		nrhs = m.parseBinaryInternal(nrhsStart, nrhs, cmp.Lexeme().Precedence())

		r := m.rangeFrom(start)
		link := m.makeBinary(r, rhs, types.BinaryOp(cmp.Lexeme()), nrhs)
		ret = m.makeBinary(r, ret, types.OpBoolAnd, link)
		rhs = nrhs
	}
	return ret
}

// parseBinaryCondition parses the condition of an 'if' or an 'elif'. A bool
// expression that is not a binary expression is compared to true.
func (m *ASTMaker) parseBinaryCondition() ProdExprToken {
	start := m.current
	cond := m.parseBinary()
	if m.exprs.IsError(cond) {
		return cond
	}
	r := m.rangeFrom(start)
	if !m.types.IsBuiltinAnd(m.exprs.TypeOf(cond), types.IsBool) {
		m.errorAt(r, "Expression should be of type 'bool'!")
		return m.exprs.AddError(r)
	}
	if _, ok := AsProd[BinaryExpr](m.exprs, cond); ok {
		return cond
	}
	return m.makeBinary(r, cond, types.OpEqual, m.exprs.AddLiteral(r, 1, types.BOOL))
}

// parseConversion parses 'as T' or 'bit_as T' applied on toConv
func (m *ASTMaker) parseConversion(toConv ProdExprToken, start uint32) ProdExprToken {
	defer m.enter()()
	isBitCast := m.peek().Is(lexer.TknBitAs)
	m.consumeCurrent()

	to := m.parseTypename()
	r := m.rangeFrom(start)
	if m.types.IsError(to) || m.exprs.IsError(toConv) {
		return m.exprs.AddError(r)
	}

	if isBitCast {
		isBytes := func(t types.TypeToken) bool { return m.types.IsBuiltinAnd(t, types.IsBytes) }
		if !isBytes(to) && !isBytes(m.exprs.TypeOf(toConv)) {
			m.errorAt(r, "'bit_as' conversion can only be applied on/to bytes types!")
			m.messageAt(nil, "Bytes types are 'BYTE', 'WORD', 'DWORD' and 'QWORD'.")
			return m.exprs.AddError(r)
		}
	}
	return m.makeCast(r, toConv, to, isBitCast)
}

// parseAssignment parses '= value' or 'op= value' applied on lhs
func (m *ASTMaker) parseAssignment(lhs ProdExprToken, start uint32) ProdExprToken {
	defer m.setPanic((*ASTMaker).panicConsumeSemicolon)()
	op := m.peek()
	m.consumeCurrent()

	rhs := m.parseBinary()
	r := m.rangeFrom(start)
	if m.exprs.IsError(rhs) {
		return m.exprs.AddError(r)
	}
	if !op.Lexeme().IsDirectAssignment() {
		rhs = m.makeBinary(r, lhs, types.BinaryOp(op.Lexeme().CompoundToBinary()), rhs)
		if m.exprs.IsError(rhs) {
			return rhs
		}
	}
	return m.makeAssignment(r, lhs, rhs)
}

// parseTypename parses a type
func (m *ASTMaker) parseTypename() types.TypeToken {
	defer m.enter()()
	cur := m.peek()

	switch lex := cur.Lexeme(); {
	case lex == lexer.TknTypeof:
		m.consumeCurrent()
		expr := m.parseParenthesis(m.parseBinary)
		return m.exprs.TypeOf(expr)
	case lex == lexer.TknVoid:
		m.consumeCurrent()
		return m.types.VoidType()
	case lex.IsBuiltinType():
		m.consumeCurrent()
		return m.types.AddBuiltin(types.BuiltinID(lex - lexer.TknBool))
	case lex == lexer.TknOpaque:
		m.consumeCurrent()
		return m.types.AddOpaquePtr()
	case lex == lexer.TknMutopaque:
		m.consumeCurrent()
		return m.types.AddMutOpaquePtr()
	case lex == lexer.TknPtr || lex == lexer.TknMutptr:
		m.consumeCurrent()
		if !m.checkConsume(lexer.TknDot, "Expected a '.'!") {
			m.panicConsume()
			return m.types.ErrorType()
		}
		to := m.parseTypename()
		if m.types.IsError(to) {
			return to
		}
		if lex == lexer.TknPtr {
			return m.types.AddPtr(to)
		}
		return m.types.AddMutPtr(to)
	}

	m.errorAt(tokenRange(cur), "Expected a typename!")
	m.panicConsume()
	return m.types.ErrorType()
}
