package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/colt-lang/colt/internal/config"
	"github.com/colt-lang/colt/internal/diagnostic"
	"github.com/colt-lang/colt/internal/lexer"
	"github.com/colt-lang/colt/internal/qword"
	"github.com/colt-lang/colt/internal/types"
)

func parse(t *testing.T, src string) (*Unit, *diagnostic.Collector) {
	t.Helper()
	return parseWith(t, config.WarnAll(), src)
}

func parseWith(t *testing.T, warn config.WarnFor, src string) (*Unit, *diagnostic.Collector) {
	t.Helper()
	c := diagnostic.NewCollector()
	u := ParseUnit(NewProgram(warn, c), "test.ct", src)
	return u, c
}

func messages(diags []diagnostic.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

// evalOf returns the expression evaluated by the i-th top-level statement
func evalOf(t *testing.T, u *Unit, i int) ProdExprToken {
	t.Helper()
	stmts := u.Statements()
	if i >= len(stmts) {
		t.Fatalf("expected at least %d statements, got %d", i+1, len(stmts))
	}
	e, ok := AsStmt[EvalExpr](u.Exprs(), stmts[i])
	if !ok {
		t.Fatalf("statement %d is a %s, not an EVAL", i, u.Exprs().Stmt(stmts[i]).Kind())
	}
	return e.Expr
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     uint64
		wantType types.BuiltinID
		warning  string
	}{
		{"sum", "2 + 3;", 5, types.I64, ""},
		{"precedence", "2 + 3 * 4;", 14, types.I64, ""},
		{"parenthesis", "(2 + 3) * 4;", 20, types.I64, ""},
		{"left associative", "10 - 4 - 3;", 3, types.I64, ""},
		{"unsigned wrap", "255u8 + 1u8;", 0, types.U8, "Unsigned overflow detected!"},
		{"comparison", "1 < 2;", 1, types.BOOL, ""},
		{"bool logic", "true && false;", 0, types.BOOL, ""},
		{"negation", "-5;", qword.FromInt64(-5, qword.I64), types.I64, ""},
		{"bool not", "!false;", 1, types.BOOL, ""},
		{"conversion", "300 as u8;", 44, types.U8, ""},
		{"to bool", "2 as bool;", 1, types.BOOL, ""},
		{"bit cast", "1.0 bit_as QWORD;", qword.FromFloat64(1.0, qword.F64), types.QWORD, ""},
		{"shift", "1 << 4;", 16, types.I64, ""},
		{"signed overflow", "127i8 + 1i8;", 0x80, types.I8, "Signed overflow detected!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, c := parse(t, tt.input)
			if c.HasErrors() {
				t.Fatalf("unexpected errors: %v", messages(c.Errors()))
			}
			lit, ok := AsProd[LiteralExpr](u.Exprs(), evalOf(t, u, 0))
			if !ok {
				t.Fatalf("expression was not folded")
			}
			if lit.Value != tt.want {
				t.Errorf("value = %#x, want %#x", lit.Value, tt.want)
			}
			if want := u.Program().Types().AddBuiltin(tt.wantType); lit.Type() != want {
				t.Errorf("type = %s, want %s", u.Program().Types().TypeName(lit.Type()), tt.wantType)
			}

			warnings := messages(c.Warnings())
			if tt.warning == "" && len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if tt.warning != "" && (len(warnings) != 1 || warnings[0] != tt.warning) {
				t.Errorf("warnings = %v, want [%s]", warnings, tt.warning)
			}
		})
	}
}

func TestFoldingErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 / 0;", "Integral division by zero is not allowed!"},
		{"7 % 0;", "Integral division by zero is not allowed!"},
		{"let a = 1; a / 0;", "Integral division by zero is not allowed!"},
		{"1.0 % 2.0;", "Invalid operand type for operation!"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u, c := parse(t, tt.input)
			errs := messages(c.Errors())
			if len(errs) != 1 || errs[0] != tt.want {
				t.Fatalf("errors = %v, want [%s]", errs, tt.want)
			}
			last := u.Statements()[len(u.Statements())-1]
			if !u.Exprs().IsStmtError(last) {
				t.Errorf("statement should be an error, got %s", u.Exprs().Stmt(last).Kind())
			}
		})
	}
}

func TestFoldingWarningPolicy(t *testing.T) {
	warn := config.WarnAll()
	warn.ConstantFoldingUnsigned = false
	u, c := parseWith(t, warn, "255u8 + 1u8;")
	if len(c.Diagnostics()) != 0 {
		t.Fatalf("disabled warning was reported: %v", messages(c.Diagnostics()))
	}
	lit, ok := AsProd[LiteralExpr](u.Exprs(), evalOf(t, u, 0))
	if !ok || lit.Value != 0 {
		t.Errorf("wrapped result should still be substituted, got %+v", lit)
	}
}

func TestComparisonChaining(t *testing.T) {
	const decls = "let a = 1; let b = 2; let c = 3; "

	u, c := parse(t, decls+"a < b <= c;")
	if c.HasErrors() {
		t.Fatalf("unexpected errors: %v", messages(c.Errors()))
	}
	eb := u.Exprs()
	and, ok := AsProd[BinaryExpr](eb, evalOf(t, u, 3))
	if !ok || and.Op != types.OpBoolAnd {
		t.Fatalf("expected '&&' at the root of the chain, got %+v", eb.Prod(evalOf(t, u, 3)))
	}
	lhs, _ := AsProd[BinaryExpr](eb, and.LHS)
	rhs, _ := AsProd[BinaryExpr](eb, and.RHS)
	if lhs.Op != types.OpLess || rhs.Op != types.OpLessEqual {
		t.Errorf("chain = (%s) && (%s), want (<) && (<=)", lhs.Op, rhs.Op)
	}
	if lhs.RHS != rhs.LHS {
		t.Errorf("the middle operand should be shared by both comparisons")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"a < b == c;", "'==' cannot be chained with '<' or '<='!"},
		{"a > b < c;", "'<' cannot be chained with '>' or '>='!"},
		{"a == b == c != a;", "'!=' cannot be chained with any other comparison operators!"},
		{"a != b == c;", "'==' cannot be chained with '!='!"},
		{"a != b != c;", "'!=' cannot be chained with any other comparison operators!"},
		{"a < b != c;", "'!=' cannot be chained with any other comparison operators!"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u, c := parse(t, decls+tt.input)
			errs := messages(c.Errors())
			if len(errs) != 1 || errs[0] != tt.want {
				t.Fatalf("errors = %v, want [%s]", errs, tt.want)
			}
			if _, ok := AsProd[BinaryExpr](u.Exprs(), evalOf(t, u, 3)); !ok {
				t.Errorf("the chain should still produce a tree")
			}
		})
	}
}

func TestDeadBranchElimination(t *testing.T) {
	const decl = "let mut x = 0; "
	tests := []struct {
		name  string
		input string
		// want is the kind of the second statement
		want ExprKind
		// write is the value written by the kept branch, if any
		write uint64
	}{
		{"true keeps then", "if true { x = 1; } else { x = 2; }", KindScope, 1},
		{"false keeps else", "if false { x = 1; } else { x = 2; }", KindScope, 2},
		{"false without else", "if false { x = 1; }", KindNOP, 0},
		{"elif", "if false { x = 1; } elif true { x = 3; } else { x = 4; }", KindScope, 3},
		{"folded comparison", "if 1 > 2: x = 1; else: x = 5;", KindScope, 5},
		{"runtime condition", "if x == 1 { x = 1; }", KindCondition, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, c := parse(t, decl+tt.input)
			if c.HasErrors() {
				t.Fatalf("unexpected errors: %v", messages(c.Errors()))
			}
			if len(u.Statements()) != 2 {
				t.Fatalf("expected 2 statements, got %d", len(u.Statements()))
			}
			eb := u.Exprs()
			stmt := eb.Stmt(u.Statements()[1])
			if stmt.Kind() != tt.want {
				t.Fatalf("statement is a %s, want %s", stmt.Kind(), tt.want)
			}
			if tt.want != KindScope {
				return
			}
			eval, _ := AsStmt[EvalExpr](eb, eb.Scope(u.Statements()[1]).Statements[0])
			write, ok := AsProd[VarWriteExpr](eb, eval.Expr)
			if !ok {
				t.Fatalf("expected a write in the kept branch")
			}
			if lit, _ := AsProd[LiteralExpr](eb, write.Value); lit.Value != tt.write {
				t.Errorf("kept branch writes %d, want %d", lit.Value, tt.write)
			}
		})
	}
}

func TestRecursionGuard(t *testing.T) {
	src := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + "; let y = 2;"
	u, c := parse(t, src)

	errs := messages(c.Errors())
	if len(errs) != 1 || errs[0] != "Exceeded recursion depth!" {
		t.Fatalf("errors = %v", errs)
	}
	stmts := u.Statements()
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if !u.Exprs().IsStmtError(stmts[0]) {
		t.Errorf("first statement should be an error")
	}
	if _, ok := AsStmt[VarDeclExpr](u.Exprs(), stmts[1]); !ok {
		t.Errorf("parsing should resume after the deep statement")
	}

	// a nesting below the limit is accepted
	src = strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100) + ";"
	if _, c := parse(t, src); c.HasErrors() {
		t.Errorf("unexpected errors: %v", messages(c.Errors()))
	}
}

func TestRecursionGuardScopes(t *testing.T) {
	src := strings.Repeat("{", 300) + strings.Repeat("}", 300) + " let y = 2;"
	u, c := parse(t, src)

	// the enclosing scopes still find their closing brackets
	errs := messages(c.Errors())
	if len(errs) != 1 || errs[0] != "Exceeded recursion depth!" {
		t.Fatalf("errors = %v", errs)
	}
	stmts := u.Statements()
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if k := u.Exprs().Stmt(stmts[0]).Kind(); k != KindScope {
		t.Errorf("first statement is a %s, want %s", k, KindScope)
	}
	if _, ok := AsStmt[VarDeclExpr](u.Exprs(), stmts[1]); !ok {
		t.Errorf("parsing should resume after the nested scopes")
	}
}

func TestErrorContainment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		// kinds of the statements
		kinds []ExprKind
	}{
		{"missing expression", "let x = ; let y = 5;", "Expected an expression!", []ExprKind{KindError, KindVarDecl}},
		{"missing terminator", "2 + 3 let z = 1;", "Expected a ';'!", []ExprKind{KindError, KindVarDecl}},
		{"unknown variable", "foo + 1; let y = 2;", "Variable 'foo' does not exist!", []ExprKind{KindError, KindVarDecl}},
		{"lone semicolon", "; pass;", "Expected a statement!", []ExprKind{KindError, KindNOP}},
		{"bad operand", "let a = 1 + true; a;", "'i64' does not support 'bool' as right hand side of operator '+'!", []ExprKind{KindError, KindError}},
		{"invalid character", "let a = @ 1 2 3; let b = 4;", "Invalid character!", []ExprKind{KindError, KindVarDecl}},
		{"invalid character after recovery", "1 +; let a = @ 1 2 3; let b = 4;", "Invalid character!", []ExprKind{KindError, KindError, KindVarDecl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, c := parse(t, tt.input)
			errs := messages(c.Errors())
			if len(errs) == 0 || errs[0] != tt.want {
				t.Fatalf("errors = %v, want %q first", errs, tt.want)
			}
			if len(u.Statements()) != len(tt.kinds) {
				t.Fatalf("got %d statements, want %d", len(u.Statements()), len(tt.kinds))
			}
			for i, stmt := range u.Statements() {
				if k := u.Exprs().Stmt(stmt).Kind(); k != tt.kinds[i] {
					t.Errorf("statement %d is a %s, want %s", i, k, tt.kinds[i])
				}
			}
		})
	}
}

func TestLexerErrorResynchronises(t *testing.T) {
	// the first statement leaves the maker synchronised, the invalid
	// character must not inherit that state
	_, c := parse(t, "1 +; let a = @ 1 2 3; let b = 4;")
	got := messages(c.Errors())
	want := []string{"Invalid character!", "Expected an expression!"}
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+1;", "Unary '+' is not supported!"},
		{"&1;", "Unary '&' can only be applied on a variable!"},
		{"let a = 1; *a;", "Unary '*' can only be applied on pointer types!"},
		{"let o: opaque = undefined; *o;", "Unary '*' can only be applied on a non-opaque pointer!"},
		{"let a = 1; ++a;", "Unary '++' can only be applied on a mutable variable!"},
		{"-true;", "'bool' does not support unary operator '-'!"},
		{"true + 1;", "'bool' does not support operator '+'!"},
		{"1 + true;", "'i64' does not support 'bool' as right hand side of operator '+'!"},
		{"1 as ptr.i64;", "'i64' cannot be casted to 'ptr.i64'!"},
		{"1 bit_as u32;", "'bit_as' conversion can only be applied on/to bytes types!"},
		{"1 bit_as BYTE;", "'i64' cannot be bit casted to 'BYTE' as their sizes differ!"},
		{"let a = 1; a = 2;", "Cannot assign to an immutable variable!"},
		{"let mut a = 1; a = true;", "'bool' cannot be assigned to 'i64'!"},
		{"1 = 2;", "Left hand side of an assignment must be a variable or a pointer dereference!"},
		{"let a = 1; let p = &a; *p = 2;", "Cannot write through a pointer that is not 'mutptr'!"},
		{"let a;", "Expected a '='!"},
		{"let = 1;", "Expected an identifier!"},
		{"let a = undefined;", "An uninitialized variable must have a type!"},
		{"let a: bool = 1;", "'i64' cannot be used to initialize 'bool'!"},
		{"let v: void = undefined;", "A variable cannot be of type 'void'!"},
		{"let a: ptr i64 = undefined;", "Expected a '.'!"},
		{"let a: 5 = 1;", "Expected a typename!"},
		{"global g: i64 = undefined;", "Global variables must be initialized!"},
		{"global g = 1; global g = 2;", "Global variable 'g' already exists!"},
		{"{ global g = 1; }", "Global variables can only be declared at the top level!"},
		{"if 1 { pass; }", "Expression should be of type 'bool'!"},
		{"if true pass;", "Expected the beginning of a scope ('{' or ':')!"},
		{"{ pass;", "Unclosed curly bracket delimiter!"},
		{"(1 + 2;", "Expected a ')'!"},
		{"\"str\";", "Expected an expression!"},
		{"{ let a = 1; } a;", "Variable 'a' does not exist!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, c := parse(t, tt.input)
			errs := messages(c.Errors())
			if len(errs) != 1 || errs[0] != tt.want {
				t.Errorf("errors = %v, want [%s]", errs, tt.want)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"var mut a = 1;", "Unecessary 'mut' as 'var' is a shorthand for 'let mut'!"},
		{"let a = 1; { let a = 2; }", "Variable 'a' shadows a previous declaration!"},
		{"global g = 1; let g = 2;", "Variable 'g' shadows a global variable!"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, c := parse(t, tt.input)
			if c.HasErrors() {
				t.Fatalf("unexpected errors: %v", messages(c.Errors()))
			}
			warnings := messages(c.Warnings())
			if len(warnings) != 1 || warnings[0] != tt.want {
				t.Errorf("warnings = %v, want [%s]", warnings, tt.want)
			}
		})
	}
}

func TestValidPrograms(t *testing.T) {
	tests := []string{
		"let mut a = 1; let p = &a; *p = 2; a += 3; ++a; --a;",
		"global mut g: i64 = 5; g = g * 2; g <<= 1;",
		"let a: u8 = 255u8; let b = a as u64 + 1u64;",
		"let c = 'a'; let f = 1.5 * 2.0; let h = f > 1.0;",
		"let mut a = 1; if a == 1 { a = 2; } elif a == 2 { a = 3; } else { a = 4; }",
		"let b = true; if b { pass; } if !b: pass;",
		"let w = 1 as QWORD; let d = w bit_as f64; let e = d bit_as QWORD;",
		"let t: typeof(1) = 2; let o: opaque = undefined; let mo: mutopaque = undefined;",
		"let mut x: i32 = undefined; x = 5i32; let px: mutptr.i32 = &x; *px = x + 1i32;",
		"let a = 1; let b = 2; let c = 3; if a < b < c: pass;",
		"{ let a = 1; { let b = a; } } let a = 2;",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			u, c := parse(t, src)
			if len(c.Diagnostics()) != 0 {
				t.Errorf("unexpected diagnostics: %v", messages(c.Diagnostics()))
			}
			for i, stmt := range u.Statements() {
				if u.Exprs().IsStmtError(stmt) {
					t.Errorf("statement %d is an error", i)
				}
			}
		})
	}
}

func TestScopeRewinding(t *testing.T) {
	u, c := parse(t, "let a = 1; { let b = a; let c = b; } let d = a;")
	if c.HasErrors() {
		t.Fatalf("unexpected errors: %v", messages(c.Errors()))
	}
	if len(u.locals) != 2 {
		t.Fatalf("local table should only hold a and d, got %d entries", len(u.locals))
	}
	d, ok := AsStmt[VarDeclExpr](u.Exprs(), u.Statements()[2])
	if !ok {
		t.Fatal("third statement should declare d")
	}
	if d.LocalID != 1 {
		t.Errorf("d.LocalID = %d, want 1", d.LocalID)
	}

	scope := u.Exprs().Scope(u.Statements()[1])
	if len(scope.Decls) != 2 || len(scope.Statements) != 2 {
		t.Errorf("scope has %d decls and %d statements, want 2 and 2", len(scope.Decls), len(scope.Statements))
	}
	if scope.Parent != u.Root() {
		t.Errorf("scope parent should be the root scope")
	}
	if root := u.Exprs().Scope(u.Root()); len(root.Decls) != 2 {
		t.Errorf("root scope should declare a and d, got %d decls", len(root.Decls))
	}
}

func TestEmptyScope(t *testing.T) {
	u, c := parse(t, "{}")
	if c.HasErrors() {
		t.Fatalf("unexpected errors: %v", messages(c.Errors()))
	}
	scope := u.Exprs().Scope(u.Statements()[0])
	if len(scope.Statements) != 1 || u.Exprs().Stmt(scope.Statements[0]).Kind() != KindNOP {
		t.Errorf("an empty scope should contain a single NOP")
	}
}

func TestVarStates(t *testing.T) {
	const decls = "let c = true; let mut a: i64 = undefined; "
	tests := []struct {
		input string
		want  VarStateFlag
	}{
		{"", StateUndef},
		{"a = 1;", StateInit},
		{"if c { a = 1; }", StatePartialUninit},
		{"if c { a = 1; } else { a = 2; }", StateInit},
		{"if c { pass; } elif !c { a = 1; } else { a = 2; }", StatePartialUninit},
		{"if true { a = 1; }", StateInit},
		{"if false { a = 1; }", StateUndef},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u, c := parse(t, decls+tt.input)
			if c.HasErrors() {
				t.Fatalf("unexpected errors: %v", messages(c.Errors()))
			}
			if got := u.locals[1].State; got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMergeStateFlag(t *testing.T) {
	if got := MergeStateFlag(StateInit, StateUndef); got != StatePartialUninit {
		t.Errorf("INIT | UNDEF = %s", got)
	}
	if got := MergeStateFlag(StateInit, StateInit); got != StateInit {
		t.Errorf("INIT | INIT = %s", got)
	}
	if got := MergeStateFlag(StateMoved, StateInit); got != StatePartialMove {
		t.Errorf("MOVED | INIT = %s", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("merging the three states should panic")
		}
	}()
	MergeStateFlag(StatePartialUninit, StateMoved)
}

func TestPanicConsumersAreIdempotent(t *testing.T) {
	c := diagnostic.NewCollector()
	u := NewUnit(NewProgram(config.WarnAll(), c), lexer.Lex("test.ct", "a b ; c ) d ;", c))
	m := newASTMaker(u)

	m.panicConsumeSemicolon()
	if m.current != 3 {
		t.Fatalf("cursor = %d, want 3", m.current)
	}
	m.panicConsumeSemicolon()
	if m.current != 3 {
		t.Errorf("second call moved the cursor to %d", m.current)
	}

	m.panicConsumeRParen()
	first := m.current
	m.panicConsumeRParen()
	if first != 4 || m.current != first {
		t.Errorf("cursor = %d then %d, want 4 twice", first, m.current)
	}

	m.panicConsumeTill(lexer.TknEOF)
	end := m.current
	m.consumeCurrent()
	if m.current != end {
		t.Errorf("consumeCurrent moved past EOF")
	}
}

func TestDeterminism(t *testing.T) {
	const src = "let mut a = 1; let b = a * 2 + 3; if a < b { a = b; } else: a = 255u8 as i64; 1 / 0;"
	var outs [2]string
	var diags [2][]string
	for i := range outs {
		u, c := parse(t, src)
		var buf bytes.Buffer
		if err := Fprint(&buf, u, false); err != nil {
			t.Fatal(err)
		}
		outs[i] = buf.String()
		diags[i] = messages(c.Diagnostics())
	}
	if outs[0] != outs[1] {
		t.Errorf("trees differ:\n%s\n---\n%s", outs[0], outs[1])
	}
	if strings.Join(diags[0], "\n") != strings.Join(diags[1], "\n") {
		t.Errorf("diagnostics differ: %v and %v", diags[0], diags[1])
	}
}

func TestTypeInterning(t *testing.T) {
	u, _ := parse(t, "let a = 1; let b = 2; let p: ptr.i64 = &a; let q = &b;")
	eb := u.Exprs()
	stmts := u.Statements()
	if eb.Stmt(stmts[0]).Type() != eb.Stmt(stmts[1]).Type() {
		t.Error("both i64 declarations should share the same type token")
	}
	if eb.Stmt(stmts[2]).Type() != eb.Stmt(stmts[3]).Type() {
		t.Error("both ptr.i64 should share the same type token")
	}
}

func TestFprint(t *testing.T) {
	u, _ := parse(t, "let a = 2 + 3; if a > 1 { a; }")
	var buf bytes.Buffer
	if err := Fprint(&buf, u, false); err != nil {
		t.Fatal(err)
	}
	want := `VAR_DECL a #0: i64
  LITERAL 5: i64
CONDITION
  BINARY '>': bool
    VAR_READ a: i64
    LITERAL 1: i64
  SCOPE
    EVAL
      VAR_READ a: i64
`
	if buf.String() != want {
		t.Errorf("Fprint output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestUnitLifecycle(t *testing.T) {
	c := diagnostic.NewCollector()
	p := NewProgram(config.WarnAll(), c)
	u1 := NewUnit(p, lexer.Lex("a.ct", "let a = 1;", c))
	u2 := NewUnit(p, lexer.Lex("b.ct", "let b = 2;", c))
	if u1.Exprs().Owner() == u2.Exprs().Owner() || u1.Exprs().Owner() == p.Types().Owner() {
		t.Errorf("owners should be distinct: %d, %d, %d", u1.Exprs().Owner(), u2.Exprs().Owner(), p.Types().Owner())
	}
	if u1.IsParsed() {
		t.Error("a new unit should not be parsed")
	}
	u1.Parse()
	u2.Parse()
	if !u1.IsParsed() || len(p.Units()) != 2 {
		t.Error("both units should be parsed and registered")
	}

	t.Run("parse twice", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("parsing a unit twice should panic")
			}
		}()
		u1.Parse()
	})

	t.Run("cross arena", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("using a token of another unit should panic")
			}
		}()
		u2.Exprs().Stmt(u1.Statements()[0])
	})
}

func TestCollectStats(t *testing.T) {
	u, _ := parse(t, "let a = 1 + 2; a; foo;")
	s := CollectStats(u)
	// VAR_DECL, LITERAL, EVAL, VAR_READ, ERROR
	if s.Nodes != 5 {
		t.Errorf("Nodes = %d, want 5", s.Nodes)
	}
	if s.Errors != 1 || s.Literals != 1 {
		t.Errorf("Errors = %d, Literals = %d, want 1 and 1", s.Errors, s.Literals)
	}
	if s.Kinds[KindVarRead] != 1 {
		t.Errorf("Kinds[VAR_READ] = %d, want 1", s.Kinds[KindVarRead])
	}
}
