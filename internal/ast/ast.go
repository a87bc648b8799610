package ast

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// Node represents any AST node. Every node carries its originating token for
// diagnostics and a type slot the checker populates in place.
type Node interface {
	Tok() lexer.Token
	Type() types.Type
	SetType(types.Type)
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr represents a type annotation.
type TypeExpr interface {
	Node
	typeExprNode()
}

// base carries the originating token and the checker-written type slot shared
// by every node kind.
type base struct {
	tok lexer.Token
	typ types.Type
}

func (b *base) Tok() lexer.Token       { return b.tok }
func (b *base) Type() types.Type       { return b.typ }
func (b *base) SetType(typ types.Type) { b.typ = typ }

func at(tok lexer.Token) base { return base{tok: tok} }

// File represents one parsed compilation unit.
type File struct {
	base
	Stmts []Stmt
}

// NewFile constructs a file node.
func NewFile(stmts []Stmt, tok lexer.Token) *File {
	return &File{base: at(tok), Stmts: stmts}
}
