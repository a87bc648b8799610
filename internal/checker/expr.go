package checker

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// checkExpr computes and records the type of an expression. It never returns
// nil: errors produce unknown so the pass continues.
func (c *Checker) checkExpr(expr ast.Expr) types.Type {
	t := c.exprType(expr)
	if t == nil {
		t = types.TypeUnknown
	}
	expr.SetType(t)
	return t
}

func (c *Checker) exprType(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return types.TypeInt
	case *ast.FloatLit:
		return types.TypeFloat
	case *ast.StringLit:
		return types.TypeString
	case *ast.BoolLit:
		return types.TypeBool
	case *ast.NullLit:
		return types.TypeNull

	case *ast.Ident:
		if t, ok := c.scope.Lookup(e.Name); ok {
			return t
		}
		if sig, ok := c.funcs[e.Name]; ok {
			return sig
		}
		c.errorf(diag.CodeTypeUndefinedName, e.Tok(), "undefined name %s", e.Name)
		return types.TypeUnknown

	case *ast.AssignExpr:
		return c.checkAssign(e)

	case *ast.BinaryExpr:
		return c.checkBinary(e)

	case *ast.UnaryExpr:
		return c.checkUnary(e)

	case *ast.CallExpr:
		return c.checkCall(e)

	case *ast.ArrayLit:
		return c.checkArrayLit(e)

	case *ast.DictLit:
		return c.checkDictLit(e)

	case *ast.LambdaExpr:
		return c.checkLambda(e)

	case *ast.AwaitExpr:
		// Pass-through seam for the future runtime.
		return c.checkExpr(e.Value)

	case *ast.OptionExpr:
		if !e.Some {
			return &types.Option{Inner: types.TypeUnknown}
		}
		return &types.Option{Inner: c.checkExpr(e.Value)}

	case *ast.ResultExpr:
		inner := c.checkExpr(e.Value)
		if e.IsOk {
			return &types.Result{Ok: inner, Err: types.TypeUnknown}
		}
		return &types.Result{Ok: types.TypeUnknown, Err: inner}

	case *ast.SendExpr:
		c.checkExpr(e.Channel)
		c.checkExpr(e.Value)
		c.warningf(diag.CodeSemNotImplemented, e.Tok(), "channel send is not implemented")
		return types.TypeVoid

	case *ast.RecvExpr:
		c.checkExpr(e.Channel)
		c.warningf(diag.CodeSemNotImplemented, e.Tok(), "channel receive is not implemented")
		return types.TypeUnknown

	case *ast.GoExpr:
		c.checkExpr(e.Call)
		c.warningf(diag.CodeSemNotImplemented, e.Tok(), "go is not implemented")
		return types.TypeVoid

	case *ast.MoveExpr:
		c.checkExpr(e.Value)
		c.warningf(diag.CodeSemNotImplemented, e.Tok(), "move is not implemented")
		return types.TypeUnknown
	}
	return types.TypeUnknown
}

func (c *Checker) checkAssign(e *ast.AssignExpr) types.Type {
	target := c.checkExpr(e.Target)
	value := c.checkExpr(e.Value)

	if e.Op == lexer.PLUS_ASSIGN || e.Op == lexer.MINUS_ASSIGN {
		if !types.IsNumeric(target) && !types.IsUnknown(target) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(),
				"operator %s needs a numeric target, got %s", e.Op, target)
			return target
		}
	}
	if !types.AssignableTo(value, target) {
		c.errorf(diag.CodeTypeMismatch, e.Tok(), "cannot assign %s to %s", value, target)
	}
	return target
}

func (c *Checker) checkBinary(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	switch e.Op {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT:
		if e.Op == lexer.PLUS &&
			types.Equal(left, types.TypeString) && types.Equal(right, types.TypeString) {
			return types.TypeString
		}
		if types.IsUnknown(left) || types.IsUnknown(right) {
			return types.TypeUnknown
		}
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(),
				"operator %s needs numeric operands, got %s and %s", e.Op, left, right)
			return types.TypeUnknown
		}
		return widen(left, right)

	case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		if !types.IsUnknown(left) && !types.IsUnknown(right) &&
			(!types.IsNumeric(left) || !types.IsNumeric(right)) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(),
				"operator %s needs numeric operands, got %s and %s", e.Op, left, right)
		}
		return types.TypeBool

	case lexer.EQ, lexer.NOT_EQ:
		if !types.AssignableTo(left, right) && !types.AssignableTo(right, left) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(),
				"cannot compare %s with %s", left, right)
		}
		return types.TypeBool

	case lexer.AMPERSAND, lexer.PIPE:
		if !isBoolish(left) || !isBoolish(right) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(),
				"operator %s needs bool operands, got %s and %s", e.Op, left, right)
		}
		return types.TypeBool
	}

	c.errorf(diag.CodeTypeBadOperand, e.Tok(), "unsupported binary operator %s", e.Op)
	return types.TypeUnknown
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) types.Type {
	operand := c.checkExpr(e.Operand)

	switch e.Op {
	case lexer.MINUS:
		if !types.IsNumeric(operand) && !types.IsUnknown(operand) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(), "cannot negate %s", operand)
			return types.TypeUnknown
		}
		return operand
	case lexer.BANG:
		if !isBoolish(operand) {
			c.errorf(diag.CodeTypeBadOperand, e.Tok(), "operator ! needs bool, got %s", operand)
		}
		return types.TypeBool
	}
	c.errorf(diag.CodeTypeBadOperand, e.Tok(), "unsupported unary operator %s", e.Op)
	return types.TypeUnknown
}

func (c *Checker) checkCall(e *ast.CallExpr) types.Type {
	callee := c.checkExpr(e.Callee)

	var args []types.Type
	for _, a := range e.Args {
		args = append(args, c.checkExpr(a))
	}

	sig, ok := callee.(*types.Function)
	if !ok {
		if !types.IsUnknown(callee) {
			c.errorf(diag.CodeTypeBadCall, e.Tok(), "cannot call a value of type %s", callee)
		}
		return types.TypeUnknown
	}

	if len(args) != len(sig.Params) {
		c.errorf(diag.CodeTypeBadCall, e.Tok(),
			"wrong argument count: expected %d, got %d", len(sig.Params), len(args))
	} else {
		for i, arg := range args {
			if !types.AssignableTo(arg, sig.Params[i]) {
				c.errorf(diag.CodeTypeMismatch, e.Args[i].Tok(),
					"argument %d: cannot use %s as %s", i+1, arg, sig.Params[i])
			}
		}
	}
	if sig.Return == nil {
		return types.TypeVoid
	}
	return sig.Return
}

// checkArrayLit applies the seed-and-widen rule: the first element seeds the
// running element type; each later element either fits the running type,
// widens it, or is a mismatch that stops widening.
func (c *Checker) checkArrayLit(e *ast.ArrayLit) types.Type {
	if len(e.Elements) == 0 {
		return types.NewArray(types.TypeInt)
	}

	elem := c.checkExpr(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := c.checkExpr(el)
		next, ok := mergeElem(elem, t)
		if !ok {
			c.errorf(diag.CodeTypeMismatch, el.Tok(),
				"array element of type %s does not fit element type %s", t, elem)
			break
		}
		elem = next
	}
	return types.NewArray(elem)
}

func (c *Checker) checkDictLit(e *ast.DictLit) types.Type {
	if len(e.Keys) == 0 {
		return types.NewDict(types.TypeString, types.TypeInt)
	}

	key := c.checkExpr(e.Keys[0])
	value := c.checkExpr(e.Values[0])
	for i := 1; i < len(e.Keys); i++ {
		kt := c.checkExpr(e.Keys[i])
		vt := c.checkExpr(e.Values[i])
		if next, ok := mergeElem(key, kt); ok {
			key = next
		} else {
			c.errorf(diag.CodeTypeMismatch, e.Keys[i].Tok(),
				"dict key of type %s does not fit key type %s", kt, key)
			break
		}
		if next, ok := mergeElem(value, vt); ok {
			value = next
		} else {
			c.errorf(diag.CodeTypeMismatch, e.Values[i].Tok(),
				"dict value of type %s does not fit value type %s", vt, value)
			break
		}
	}
	return types.NewDict(key, value)
}

func (c *Checker) checkLambda(e *ast.LambdaExpr) types.Type {
	sig := &types.Function{Return: types.TypeVoid}
	for _, p := range e.Params {
		sig.Params = append(sig.Params, c.resolveType(p.TypeAnn, p.Tok()))
	}
	if e.ReturnType != nil {
		sig.Return = c.resolveType(e.ReturnType, e.Tok())
	}

	outer := c.scope
	outerRet := c.retType
	c.scope = NewScope(outer)
	c.retType = sig.Return
	for i, p := range e.Params {
		c.scope.Define(p.Name, sig.Params[i])
		p.SetType(sig.Params[i])
	}
	c.checkStmt(e.Body)
	c.scope = outer
	c.retType = outerRet

	return sig
}

// mergeElem combines a running element type with the next element's type.
// It keeps the running type when the new element fits into it, widens to the
// new type when the running type fits the other way, and fails otherwise.
func mergeElem(running, next types.Type) (types.Type, bool) {
	if types.AssignableTo(next, running) {
		return running, true
	}
	if types.AssignableTo(running, next) {
		return next, true
	}
	return nil, false
}

// widen returns the wider of two numeric types.
func widen(a, b types.Type) types.Type {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func rank(t types.Type) int {
	basic, ok := t.(*types.Basic)
	if !ok {
		return 0
	}
	switch basic.Kind {
	case types.Int:
		return 1
	case types.Float32:
		return 2
	case types.Float:
		return 3
	case types.Float64:
		return 4
	default:
		return 0
	}
}

func isBoolish(t types.Type) bool {
	return types.Equal(t, types.TypeBool) || types.IsUnknown(t)
}
