package checker

import (
	"testing"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

func tok(kind lexer.TokenType, lexeme string) lexer.Token {
	return lexer.Token{Kind: kind, Lexeme: lexeme, File: "test.sb", Line: 1, Column: 1}
}

func intLit(text string) *ast.IntLit {
	return ast.NewIntLit(tok(lexer.INT, text))
}

func floatLit(text string) *ast.FloatLit {
	return ast.NewFloatLit(tok(lexer.FLOAT, text))
}

func strLit(raw string) *ast.StringLit {
	return ast.NewStringLit(tok(lexer.STRING, raw))
}

func ident(name string) *ast.Ident {
	return ast.NewIdent(name, tok(lexer.IDENT, name))
}

func namedType(name string) *ast.NamedTypeExpr {
	return ast.NewNamedTypeExpr(name, nil, tok(lexer.IDENT, name))
}

func checkFileWith(t *testing.T, stmts ...ast.Stmt) *diag.Handler {
	t.Helper()
	h := diag.NewHandler()
	New(h).CheckFile(ast.NewFile(stmts, tok(lexer.EOF, "")))
	return h
}

func countCode(h *diag.Handler, code diag.Code) int {
	n := 0
	for _, d := range h.Diagnostics() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestArrayLiteralElementType(t *testing.T) {
	tests := []struct {
		elements []ast.Expr
		expected string
		wantErrs int
	}{
		{[]ast.Expr{intLit("1"), intLit("2"), intLit("3")}, "array<int>", 0},
		{[]ast.Expr{}, "array<int>", 0},
		{[]ast.Expr{intLit("1"), floatLit("2.0")}, "array<float>", 0},
		{[]ast.Expr{floatLit("1.0"), intLit("2")}, "array<float>", 0},
		{[]ast.Expr{intLit("1"), strLit(`"x"`)}, "array<int>", 1},
	}

	for i, tt := range tests {
		h := diag.NewHandler()
		c := New(h)
		lit := ast.NewArrayLit(tt.elements, tok(lexer.LBRACKET, "["))
		got := c.checkExpr(lit)

		if got.String() != tt.expected {
			t.Fatalf("tests[%d] - array type wrong. expected=%q, got=%q", i, tt.expected, got)
		}
		if n := countCode(h, diag.CodeTypeMismatch); n != tt.wantErrs {
			t.Fatalf("tests[%d] - mismatch count wrong. expected=%d, got=%d", i, tt.wantErrs, n)
		}
	}
}

func TestDictLiteralWidening(t *testing.T) {
	h := diag.NewHandler()
	c := New(h)

	lit := ast.NewDictLit(
		[]ast.Expr{strLit(`"a"`), strLit(`"b"`)},
		[]ast.Expr{intLit("1"), floatLit("2.0")},
		tok(lexer.LBRACE, "{"),
	)
	got := c.checkExpr(lit)
	if got.String() != "dict<string,float>" {
		t.Fatalf("dict type wrong. expected=%q, got=%q", "dict<string,float>", got)
	}

	empty := ast.NewDictLit(nil, nil, tok(lexer.LBRACE, "{"))
	if got := c.checkExpr(empty); got.String() != "dict<string,int>" {
		t.Fatalf("empty dict type wrong. expected=%q, got=%q", "dict<string,int>", got)
	}
}

func TestLetInference(t *testing.T) {
	letStmt := ast.NewLetStmt("x", nil, intLit("5"), tok(lexer.LET, "let"))
	h := checkFileWith(t, letStmt)

	if h.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.Diagnostics())
	}
	if letStmt.Type().String() != "int" {
		t.Fatalf("inferred type wrong. expected=%q, got=%q", "int", letStmt.Type())
	}
}

func TestLetWithoutTypeOrValue(t *testing.T) {
	letStmt := ast.NewLetStmt("x", nil, nil, tok(lexer.LET, "let"))
	h := checkFileWith(t, letStmt)

	if n := countCode(h, diag.CodeTypeInferenceFailure); n != 1 {
		t.Fatalf("inference-failure count wrong. expected=1, got=%d", n)
	}
	if !types.IsUnknown(letStmt.Type()) {
		t.Fatalf("recovery type wrong. expected unknown, got=%q", letStmt.Type())
	}
}

func TestLetTypeMismatchIsOneDiagnostic(t *testing.T) {
	// let y: int = "hello"
	letStmt := ast.NewLetStmt("y", namedType("int"), strLit(`"hello"`), tok(lexer.LET, "let"))
	h := checkFileWith(t, letStmt)

	if n := countCode(h, diag.CodeTypeMismatch); n != 1 {
		t.Fatalf("mismatch count wrong. expected=1, got=%d", n)
	}
	// The declared type still wins for downstream consumers.
	if letStmt.Type().String() != "int" {
		t.Fatalf("declared type must win. expected=%q, got=%q", "int", letStmt.Type())
	}
}

func TestLetNumericWidening(t *testing.T) {
	tests := []struct {
		typeName string
		value    ast.Expr
		wantErrs int
	}{
		{"float", intLit("1"), 0},
		{"float64", floatLit("1.5"), 0},
		{"float64", intLit("3"), 0},
		{"int", floatLit("1.5"), 1},
	}

	for i, tt := range tests {
		letStmt := ast.NewLetStmt("v", namedType(tt.typeName), tt.value, tok(lexer.LET, "let"))
		h := checkFileWith(t, letStmt)
		if n := countCode(h, diag.CodeTypeMismatch); n != tt.wantErrs {
			t.Fatalf("tests[%d] - mismatch count wrong. expected=%d, got=%d", i, tt.wantErrs, n)
		}
	}
}

func TestUndefinedName(t *testing.T) {
	h := checkFileWith(t, ast.NewExprStmt(ident("nope"), tok(lexer.IDENT, "nope")))

	if n := countCode(h, diag.CodeTypeUndefinedName); n != 1 {
		t.Fatalf("undefined-name count wrong. expected=1, got=%d", n)
	}
}

func TestBinaryArithmeticWidens(t *testing.T) {
	tests := []struct {
		left, right ast.Expr
		expected    string
	}{
		{intLit("1"), intLit("2"), "int"},
		{intLit("1"), floatLit("2.0"), "float"},
		{floatLit("1.0"), intLit("2"), "float"},
	}

	for i, tt := range tests {
		h := diag.NewHandler()
		c := New(h)
		expr := ast.NewBinaryExpr(lexer.PLUS, tt.left, tt.right, tok(lexer.PLUS, "+"))
		if got := c.checkExpr(expr); got.String() != tt.expected {
			t.Fatalf("tests[%d] - result type wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestBinaryArithmeticRejectsStrings(t *testing.T) {
	h := diag.NewHandler()
	c := New(h)

	expr := ast.NewBinaryExpr(lexer.MINUS, strLit(`"a"`), intLit("1"), tok(lexer.MINUS, "-"))
	got := c.checkExpr(expr)

	if n := countCode(h, diag.CodeTypeBadOperand); n != 1 {
		t.Fatalf("bad-operand count wrong. expected=1, got=%d", n)
	}
	if !types.IsUnknown(got) {
		t.Fatalf("recovery type wrong. expected unknown, got=%q", got)
	}
}

func TestComparisonYieldsBool(t *testing.T) {
	h := diag.NewHandler()
	c := New(h)

	expr := ast.NewBinaryExpr(lexer.LT, intLit("1"), floatLit("2.0"), tok(lexer.LT, "<"))
	if got := c.checkExpr(expr); got.String() != "bool" {
		t.Fatalf("comparison type wrong. expected=%q, got=%q", "bool", got)
	}
}

func TestReturnTypeChecked(t *testing.T) {
	// fn f() -> int: return "no"
	body := ast.NewBlockStmt([]ast.Stmt{
		ast.NewReturnStmt(strLit(`"no"`), tok(lexer.RETURN, "return")),
	}, tok(lexer.COLON, ":"))
	fn := ast.NewFnDecl("f", nil, namedType("int"), body, tok(lexer.FN, "fn"))

	h := checkFileWith(t, fn)
	if n := countCode(h, diag.CodeTypeBadReturn); n != 1 {
		t.Fatalf("bad-return count wrong. expected=1, got=%d", n)
	}
}

func TestFunctionParamsInScope(t *testing.T) {
	// fn add(a: int, b: int) -> int: return a + b
	params := []*ast.Param{
		ast.NewParam("a", namedType("int"), tok(lexer.IDENT, "a")),
		ast.NewParam("b", namedType("int"), tok(lexer.IDENT, "b")),
	}
	body := ast.NewBlockStmt([]ast.Stmt{
		ast.NewReturnStmt(
			ast.NewBinaryExpr(lexer.PLUS, ident("a"), ident("b"), tok(lexer.PLUS, "+")),
			tok(lexer.RETURN, "return")),
	}, tok(lexer.COLON, ":"))
	fn := ast.NewFnDecl("add", params, namedType("int"), body, tok(lexer.FN, "fn"))

	h := checkFileWith(t, fn)
	if h.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.Diagnostics())
	}
	if fn.Type().String() != "fn(int, int) -> int" {
		t.Fatalf("signature wrong. got=%q", fn.Type())
	}
}

func TestOrPatternBindingSets(t *testing.T) {
	subject := ast.NewLetStmt("s", namedType("int"), intLit("1"), tok(lexer.LET, "let"))

	arm := func(p ast.Pattern) *ast.MatchArm {
		return ast.NewMatchArm(p, ast.NewBlockStmt(nil, tok(lexer.COLON, ":")), p.Tok())
	}
	identPat := func(name string) ast.Pattern {
		return ast.NewIdentPattern(name, tok(lexer.IDENT, name))
	}

	// a | a is fine; a | b is not.
	okMatch := ast.NewMatchStmt(ident("s"), []*ast.MatchArm{
		arm(ast.NewOrPattern(identPat("a"), identPat("a"), tok(lexer.PIPE, "|"))),
	}, tok(lexer.MATCH, "match"))
	badMatch := ast.NewMatchStmt(ident("s"), []*ast.MatchArm{
		arm(ast.NewOrPattern(identPat("a"), identPat("b"), tok(lexer.PIPE, "|"))),
	}, tok(lexer.MATCH, "match"))

	h := checkFileWith(t, subject, okMatch)
	if n := countCode(h, diag.CodeTypeOrPatternBindings); n != 0 {
		t.Fatalf("matching sets must not be diagnosed. got=%d", n)
	}

	h = checkFileWith(t, subject, badMatch)
	if n := countCode(h, diag.CodeTypeOrPatternBindings); n != 1 {
		t.Fatalf("or-pattern diagnostic count wrong. expected=1, got=%d", n)
	}
}

func TestMatchArmBindingsInScope(t *testing.T) {
	// match s: Some(v): let u = v
	subject := ast.NewLetStmt("s", nil,
		ast.NewOptionExpr(true, intLit("7"), tok(lexer.SOME, "Some")),
		tok(lexer.LET, "let"))

	armBody := ast.NewBlockStmt([]ast.Stmt{
		ast.NewLetStmt("u", nil, ident("v"), tok(lexer.LET, "let")),
	}, tok(lexer.COLON, ":"))
	pat := ast.NewCtorPattern("Some",
		[]ast.Pattern{ast.NewIdentPattern("v", tok(lexer.IDENT, "v"))},
		tok(lexer.SOME, "Some"))
	m := ast.NewMatchStmt(ident("s"),
		[]*ast.MatchArm{ast.NewMatchArm(pat, armBody, pat.Tok())},
		tok(lexer.MATCH, "match"))

	h := checkFileWith(t, subject, m)
	if h.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.Diagnostics())
	}
}

func TestUnimplementedConstructsWarn(t *testing.T) {
	ch := ast.NewLetStmt("ch", ast.NewNamedTypeExpr("chan",
		[]ast.TypeExpr{namedType("int")}, tok(lexer.CHAN, "chan")), nil, tok(lexer.LET, "let"))

	recv := ast.NewLetStmt("v", nil,
		ast.NewRecvExpr(ident("ch"), tok(lexer.ARROW, "<-")), tok(lexer.LET, "let"))
	send := ast.NewExprStmt(
		ast.NewSendExpr(ident("ch"), intLit("1"), tok(lexer.ARROW, "<-")),
		tok(lexer.ARROW, "<-"))
	spawn := ast.NewExprStmt(
		ast.NewGoExpr(ast.NewCallExpr(ident("f"), nil, tok(lexer.LPAREN, "(")), tok(lexer.GO, "go")),
		tok(lexer.GO, "go"))

	fn := ast.NewFnDecl("f", nil, nil,
		ast.NewBlockStmt(nil, tok(lexer.COLON, ":")), tok(lexer.FN, "fn"))

	h := checkFileWith(t, fn, ch, recv, send, spawn)

	if n := countCode(h, diag.CodeSemNotImplemented); n != 3 {
		t.Fatalf("not-implemented warning count wrong. expected=3, got=%d", n)
	}
	if h.HasErrors() {
		t.Fatalf("warnings must not count as errors: %v", h.Diagnostics())
	}
	// Receive recovers as unknown, so the let still checks.
	if !types.IsUnknown(recv.Type()) {
		t.Fatalf("receive recovery type wrong. got=%q", recv.Type())
	}
}

func TestAwaitPassesTypeThrough(t *testing.T) {
	h := diag.NewHandler()
	c := New(h)

	expr := ast.NewAwaitExpr(intLit("5"), tok(lexer.AWAIT, "await"))
	if got := c.checkExpr(expr); got.String() != "int" {
		t.Fatalf("await type wrong. expected=%q, got=%q", "int", got)
	}
	if h.Count() != 0 {
		t.Fatalf("await must not produce diagnostics. got=%d", h.Count())
	}
}

func TestIncompleteImplDiagnosed(t *testing.T) {
	show := ast.NewFnDecl("show", nil, namedType("string"), nil, tok(lexer.FN, "fn"))
	trait := ast.NewTraitDecl("Display", nil, []*ast.FnDecl{show}, nil, tok(lexer.TRAIT, "trait"))
	cls := ast.NewClassDecl("Point", nil, nil, tok(lexer.CLASS, "class"))
	impl := ast.NewImplDecl("Display", namedType("Point"), nil, nil, tok(lexer.IMPL, "impl"))

	h := checkFileWith(t, trait, cls, impl)
	if n := countCode(h, diag.CodeTypeTraitIncomplete); n != 1 {
		t.Fatalf("trait-incomplete count wrong. expected=1, got=%d", n)
	}

	showImpl := ast.NewFnDecl("show", nil, namedType("string"),
		ast.NewBlockStmt([]ast.Stmt{
			ast.NewReturnStmt(strLit(`"p"`), tok(lexer.RETURN, "return")),
		}, tok(lexer.COLON, ":")), tok(lexer.FN, "fn"))
	complete := ast.NewImplDecl("Display", namedType("Point"),
		[]*ast.FnDecl{showImpl}, nil, tok(lexer.IMPL, "impl"))

	h = checkFileWith(t, trait, cls, complete)
	if n := countCode(h, diag.CodeTypeTraitIncomplete); n != 0 {
		t.Fatalf("complete implementation must not be diagnosed. got=%d", n)
	}
}

func TestConditionMustBeBool(t *testing.T) {
	bad := ast.NewIfStmt(intLit("1"),
		ast.NewBlockStmt(nil, tok(lexer.COLON, ":")), nil, tok(lexer.IF, "if"))
	h := checkFileWith(t, bad)
	if n := countCode(h, diag.CodeTypeBadCondition); n != 1 {
		t.Fatalf("bad-condition count wrong. expected=1, got=%d", n)
	}
}

func TestCallArityAndArguments(t *testing.T) {
	fn := ast.NewFnDecl("f",
		[]*ast.Param{ast.NewParam("a", namedType("int"), tok(lexer.IDENT, "a"))},
		namedType("int"),
		ast.NewBlockStmt([]ast.Stmt{
			ast.NewReturnStmt(ident("a"), tok(lexer.RETURN, "return")),
		}, tok(lexer.COLON, ":")),
		tok(lexer.FN, "fn"))

	badArity := ast.NewExprStmt(
		ast.NewCallExpr(ident("f"), nil, tok(lexer.LPAREN, "(")), tok(lexer.LPAREN, "("))
	h := checkFileWith(t, fn, badArity)
	if n := countCode(h, diag.CodeTypeBadCall); n != 1 {
		t.Fatalf("bad-call count wrong. expected=1, got=%d", n)
	}

	badArg := ast.NewExprStmt(
		ast.NewCallExpr(ident("f"), []ast.Expr{strLit(`"x"`)}, tok(lexer.LPAREN, "(")),
		tok(lexer.LPAREN, "("))
	h = checkFileWith(t, fn, badArg)
	if n := countCode(h, diag.CodeTypeMismatch); n != 1 {
		t.Fatalf("argument mismatch count wrong. expected=1, got=%d", n)
	}
}
