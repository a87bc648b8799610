package ast

import "github.com/sable-lang/sable/internal/lexer"

// NamedTypeExpr represents a type annotation by name, with optional generic
// arguments: int, string, array<int>, dict<string,float>, chan<int>,
// option<T>, result<T,E>.
type NamedTypeExpr struct {
	base
	Name string
	Args []TypeExpr
}

// NewNamedTypeExpr constructs a named type annotation.
func NewNamedTypeExpr(name string, args []TypeExpr, tok lexer.Token) *NamedTypeExpr {
	return &NamedTypeExpr{base: at(tok), Name: name, Args: args}
}

func (*NamedTypeExpr) typeExprNode() {}

// NullableTypeExpr represents a T? annotation.
type NullableTypeExpr struct {
	base
	Inner TypeExpr
}

// NewNullableTypeExpr constructs a nullable type annotation.
func NewNullableTypeExpr(inner TypeExpr, tok lexer.Token) *NullableTypeExpr {
	return &NullableTypeExpr{base: at(tok), Inner: inner}
}

func (*NullableTypeExpr) typeExprNode() {}

// FuncTypeExpr represents an fn(params) -> ret annotation.
type FuncTypeExpr struct {
	base
	Params []TypeExpr
	Return TypeExpr
}

// NewFuncTypeExpr constructs a function type annotation.
func NewFuncTypeExpr(params []TypeExpr, ret TypeExpr, tok lexer.Token) *FuncTypeExpr {
	return &FuncTypeExpr{base: at(tok), Params: params, Return: ret}
}

func (*FuncTypeExpr) typeExprNode() {}
