package ast

import "github.com/sable-lang/sable/internal/lexer"

// IntLit represents an integer literal.
type IntLit struct {
	base
	Text string
}

// NewIntLit constructs an integer literal from its token.
func NewIntLit(tok lexer.Token) *IntLit {
	return &IntLit{base: at(tok), Text: tok.Lexeme}
}

func (*IntLit) exprNode() {}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	base
	Text string
}

// NewFloatLit constructs a float literal from its token.
func NewFloatLit(tok lexer.Token) *FloatLit {
	return &FloatLit{base: at(tok), Text: tok.Lexeme}
}

func (*FloatLit) exprNode() {}

// StringLit represents a string literal. Raw is the lexeme exactly as
// scanned, surrounding quotes and escape sequences included; decoding happens
// during lowering.
type StringLit struct {
	base
	Raw string
}

// NewStringLit constructs a string literal from its token.
func NewStringLit(tok lexer.Token) *StringLit {
	return &StringLit{base: at(tok), Raw: tok.Lexeme}
}

func (*StringLit) exprNode() {}

// BoolLit represents true or false.
type BoolLit struct {
	base
	Value bool
}

// NewBoolLit constructs a boolean literal.
func NewBoolLit(value bool, tok lexer.Token) *BoolLit {
	return &BoolLit{base: at(tok), Value: value}
}

func (*BoolLit) exprNode() {}

// NullLit represents the null literal.
type NullLit struct {
	base
}

// NewNullLit constructs a null literal.
func NewNullLit(tok lexer.Token) *NullLit {
	return &NullLit{base: at(tok)}
}

func (*NullLit) exprNode() {}

// Ident represents a name reference.
type Ident struct {
	base
	Name string
}

// NewIdent constructs an identifier node.
func NewIdent(name string, tok lexer.Token) *Ident {
	return &Ident{base: at(tok), Name: name}
}

func (*Ident) exprNode() {}

// AssignExpr represents assignment, including the compound += and -= forms.
type AssignExpr struct {
	base
	Op     lexer.TokenType
	Target Expr
	Value  Expr
}

// NewAssignExpr constructs an assignment expression.
func NewAssignExpr(op lexer.TokenType, target, value Expr, tok lexer.Token) *AssignExpr {
	return &AssignExpr{base: at(tok), Op: op, Target: target, Value: value}
}

func (*AssignExpr) exprNode() {}

// BinaryExpr represents an infix binary expression.
type BinaryExpr struct {
	base
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

// NewBinaryExpr constructs a binary expression.
func NewBinaryExpr(op lexer.TokenType, left, right Expr, tok lexer.Token) *BinaryExpr {
	return &BinaryExpr{base: at(tok), Op: op, Left: left, Right: right}
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix unary expression.
type UnaryExpr struct {
	base
	Op      lexer.TokenType
	Operand Expr
}

// NewUnaryExpr constructs a unary expression.
func NewUnaryExpr(op lexer.TokenType, operand Expr, tok lexer.Token) *UnaryExpr {
	return &UnaryExpr{base: at(tok), Op: op, Operand: operand}
}

func (*UnaryExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

// NewCallExpr constructs a call expression.
func NewCallExpr(callee Expr, args []Expr, tok lexer.Token) *CallExpr {
	return &CallExpr{base: at(tok), Callee: callee, Args: args}
}

func (*CallExpr) exprNode() {}

// ArrayLit represents an array literal.
type ArrayLit struct {
	base
	Elements []Expr
}

// NewArrayLit constructs an array literal.
func NewArrayLit(elements []Expr, tok lexer.Token) *ArrayLit {
	return &ArrayLit{base: at(tok), Elements: elements}
}

func (*ArrayLit) exprNode() {}

// DictLit represents a dictionary literal. Keys and Values are parallel
// slices of equal length.
type DictLit struct {
	base
	Keys   []Expr
	Values []Expr
}

// NewDictLit constructs a dictionary literal.
func NewDictLit(keys, values []Expr, tok lexer.Token) *DictLit {
	return &DictLit{base: at(tok), Keys: keys, Values: values}
}

func (*DictLit) exprNode() {}

// LambdaExpr represents an anonymous function.
type LambdaExpr struct {
	base
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockStmt
}

// NewLambdaExpr constructs a lambda expression.
func NewLambdaExpr(params []*Param, returnType TypeExpr, body *BlockStmt, tok lexer.Token) *LambdaExpr {
	return &LambdaExpr{base: at(tok), Params: params, ReturnType: returnType, Body: body}
}

func (*LambdaExpr) exprNode() {}

// AwaitExpr represents `await expr`.
type AwaitExpr struct {
	base
	Value Expr
}

// NewAwaitExpr constructs an await expression.
func NewAwaitExpr(value Expr, tok lexer.Token) *AwaitExpr {
	return &AwaitExpr{base: at(tok), Value: value}
}

func (*AwaitExpr) exprNode() {}

// OptionExpr represents option construction: Some(value) or None.
type OptionExpr struct {
	base
	Some  bool
	Value Expr // nil for None
}

// NewOptionExpr constructs an option-construction expression.
func NewOptionExpr(some bool, value Expr, tok lexer.Token) *OptionExpr {
	return &OptionExpr{base: at(tok), Some: some, Value: value}
}

func (*OptionExpr) exprNode() {}

// ResultExpr represents result construction: Ok(value) or Err(value).
type ResultExpr struct {
	base
	IsOk  bool
	Value Expr
}

// NewResultExpr constructs a result-construction expression.
func NewResultExpr(isOk bool, value Expr, tok lexer.Token) *ResultExpr {
	return &ResultExpr{base: at(tok), IsOk: isOk, Value: value}
}

func (*ResultExpr) exprNode() {}

// SendExpr represents a channel send.
type SendExpr struct {
	base
	Channel Expr
	Value   Expr
}

// NewSendExpr constructs a channel-send expression.
func NewSendExpr(channel, value Expr, tok lexer.Token) *SendExpr {
	return &SendExpr{base: at(tok), Channel: channel, Value: value}
}

func (*SendExpr) exprNode() {}

// RecvExpr represents a channel receive.
type RecvExpr struct {
	base
	Channel Expr
}

// NewRecvExpr constructs a channel-receive expression.
func NewRecvExpr(channel Expr, tok lexer.Token) *RecvExpr {
	return &RecvExpr{base: at(tok), Channel: channel}
}

func (*RecvExpr) exprNode() {}

// GoExpr represents a goroutine launch.
type GoExpr struct {
	base
	Call Expr
}

// NewGoExpr constructs a goroutine-launch expression.
func NewGoExpr(call Expr, tok lexer.Token) *GoExpr {
	return &GoExpr{base: at(tok), Call: call}
}

func (*GoExpr) exprNode() {}

// MoveExpr represents `move expr`.
type MoveExpr struct {
	base
	Value Expr
}

// NewMoveExpr constructs a move expression.
func NewMoveExpr(value Expr, tok lexer.Token) *MoveExpr {
	return &MoveExpr{base: at(tok), Value: value}
}

func (*MoveExpr) exprNode() {}
