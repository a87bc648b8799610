package ast

import "github.com/sable-lang/sable/internal/lexer"

// BlockStmt represents an indented statement block.
type BlockStmt struct {
	base
	Stmts []Stmt
}

// NewBlockStmt constructs a block statement.
func NewBlockStmt(stmts []Stmt, tok lexer.Token) *BlockStmt {
	return &BlockStmt{base: at(tok), Stmts: stmts}
}

func (*BlockStmt) stmtNode() {}

// LetStmt represents a variable declaration. TypeAnn is nil when the type is
// inferred from the initializer; Value is nil for a bare declaration.
type LetStmt struct {
	base
	Name    string
	TypeAnn TypeExpr
	Value   Expr
}

// NewLetStmt constructs a variable declaration.
func NewLetStmt(name string, typeAnn TypeExpr, value Expr, tok lexer.Token) *LetStmt {
	return &LetStmt{base: at(tok), Name: name, TypeAnn: typeAnn, Value: value}
}

func (*LetStmt) stmtNode() {}

// Param represents a function or lambda parameter.
type Param struct {
	base
	Name    string
	TypeAnn TypeExpr
}

// NewParam constructs a parameter.
func NewParam(name string, typeAnn TypeExpr, tok lexer.Token) *Param {
	return &Param{base: at(tok), Name: name, TypeAnn: typeAnn}
}

// FnDecl represents a named function declaration. A nil Body declares a
// signature only, as inside a trait.
type FnDecl struct {
	base
	Name       string
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockStmt
}

// NewFnDecl constructs a function declaration.
func NewFnDecl(name string, params []*Param, returnType TypeExpr, body *BlockStmt, tok lexer.Token) *FnDecl {
	return &FnDecl{base: at(tok), Name: name, Params: params, ReturnType: returnType, Body: body}
}

func (*FnDecl) stmtNode() {}

// ClassDecl represents a class declaration with fields and methods.
type ClassDecl struct {
	base
	Name    string
	Fields  []*Param
	Methods []*FnDecl
}

// NewClassDecl constructs a class declaration.
func NewClassDecl(name string, fields []*Param, methods []*FnDecl, tok lexer.Token) *ClassDecl {
	return &ClassDecl{base: at(tok), Name: name, Fields: fields, Methods: methods}
}

func (*ClassDecl) stmtNode() {}

// TraitDecl represents a trait declaration. Methods carry signatures only;
// Parents names the traits this one extends; Associated names the associated
// types an implementation must bind.
type TraitDecl struct {
	base
	Name       string
	Parents    []string
	Methods    []*FnDecl
	Associated []string
}

// NewTraitDecl constructs a trait declaration.
func NewTraitDecl(name string, parents []string, methods []*FnDecl, associated []string, tok lexer.Token) *TraitDecl {
	return &TraitDecl{base: at(tok), Name: name, Parents: parents, Methods: methods, Associated: associated}
}

func (*TraitDecl) stmtNode() {}

// ImplDecl represents an `impl Trait for Type` block.
type ImplDecl struct {
	base
	TraitName  string
	ForType    TypeExpr
	Methods    []*FnDecl
	Associated map[string]TypeExpr
}

// NewImplDecl constructs a trait implementation block.
func NewImplDecl(traitName string, forType TypeExpr, methods []*FnDecl, associated map[string]TypeExpr, tok lexer.Token) *ImplDecl {
	return &ImplDecl{base: at(tok), TraitName: traitName, ForType: forType, Methods: methods, Associated: associated}
}

func (*ImplDecl) stmtNode() {}

// IfStmt represents a conditional. Else is nil, a *BlockStmt, or another
// *IfStmt for an else-if chain.
type IfStmt struct {
	base
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

// NewIfStmt constructs a conditional statement.
func NewIfStmt(cond Expr, then *BlockStmt, els Stmt, tok lexer.Token) *IfStmt {
	return &IfStmt{base: at(tok), Cond: cond, Then: then, Else: els}
}

func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	base
	Cond Expr
	Body *BlockStmt
}

// NewWhileStmt constructs a while loop.
func NewWhileStmt(cond Expr, body *BlockStmt, tok lexer.Token) *WhileStmt {
	return &WhileStmt{base: at(tok), Cond: cond, Body: body}
}

func (*WhileStmt) stmtNode() {}

// ForStmt represents `for name in iterable`.
type ForStmt struct {
	base
	Name     string
	Iterable Expr
	Body     *BlockStmt
}

// NewForStmt constructs a for-in loop.
func NewForStmt(name string, iterable Expr, body *BlockStmt, tok lexer.Token) *ForStmt {
	return &ForStmt{base: at(tok), Name: name, Iterable: iterable, Body: body}
}

func (*ForStmt) stmtNode() {}

// ReturnStmt represents a return, with a nil Value for a bare return.
type ReturnStmt struct {
	base
	Value Expr
}

// NewReturnStmt constructs a return statement.
func NewReturnStmt(value Expr, tok lexer.Token) *ReturnStmt {
	return &ReturnStmt{base: at(tok), Value: value}
}

func (*ReturnStmt) stmtNode() {}

// BreakStmt represents a break.
type BreakStmt struct {
	base
}

// NewBreakStmt constructs a break statement.
func NewBreakStmt(tok lexer.Token) *BreakStmt {
	return &BreakStmt{base: at(tok)}
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt represents a continue.
type ContinueStmt struct {
	base
}

// NewContinueStmt constructs a continue statement.
func NewContinueStmt(tok lexer.Token) *ContinueStmt {
	return &ContinueStmt{base: at(tok)}
}

func (*ContinueStmt) stmtNode() {}

// ImportStmt represents an import of a module path.
type ImportStmt struct {
	base
	Path string
}

// NewImportStmt constructs an import statement.
func NewImportStmt(path string, tok lexer.Token) *ImportStmt {
	return &ImportStmt{base: at(tok), Path: path}
}

func (*ImportStmt) stmtNode() {}

// MatchArm pairs one pattern with the block it guards.
type MatchArm struct {
	base
	Pattern Pattern
	Body    *BlockStmt
}

// NewMatchArm constructs a match arm.
func NewMatchArm(pattern Pattern, body *BlockStmt, tok lexer.Token) *MatchArm {
	return &MatchArm{base: at(tok), Pattern: pattern, Body: body}
}

// MatchStmt represents a match over a subject expression.
type MatchStmt struct {
	base
	Subject Expr
	Arms    []*MatchArm
}

// NewMatchStmt constructs a match statement.
func NewMatchStmt(subject Expr, arms []*MatchArm, tok lexer.Token) *MatchStmt {
	return &MatchStmt{base: at(tok), Subject: subject, Arms: arms}
}

func (*MatchStmt) stmtNode() {}

// SelectCase pairs one channel operation with the block it guards.
type SelectCase struct {
	base
	Comm Expr // SendExpr or RecvExpr
	Body *BlockStmt
}

// NewSelectCase constructs a select case.
func NewSelectCase(comm Expr, body *BlockStmt, tok lexer.Token) *SelectCase {
	return &SelectCase{base: at(tok), Comm: comm, Body: body}
}

// SelectStmt represents a select over channel operations.
type SelectStmt struct {
	base
	Cases []*SelectCase
}

// NewSelectStmt constructs a select statement.
func NewSelectStmt(cases []*SelectCase, tok lexer.Token) *SelectStmt {
	return &SelectStmt{base: at(tok), Cases: cases}
}

func (*SelectStmt) stmtNode() {}

// ExprStmt wraps an expression evaluated for its effect.
type ExprStmt struct {
	base
	Expr Expr
}

// NewExprStmt constructs an expression statement.
func NewExprStmt(expr Expr, tok lexer.Token) *ExprStmt {
	return &ExprStmt{base: at(tok), Expr: expr}
}

func (*ExprStmt) stmtNode() {}
