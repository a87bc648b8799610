package ir

import (
	"strconv"
	"strings"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// Generator lowers a type-annotated AST into an ir.Module. Every lowering
// returns a tagged result: a nil value with ok=false means a diagnostic was
// recorded and the caller short-circuits. A nil value is never consumed as
// valid.
type Generator struct {
	handler *diag.Handler
	mod     *Module
	fn      *Function
	block   *Block
}

// NewGenerator creates a generator building a module with the given name.
func NewGenerator(moduleName string, handler *diag.Handler) *Generator {
	return &Generator{
		handler: handler,
		mod:     NewModule(moduleName),
	}
}

// Module returns the module built so far.
func (g *Generator) Module() *Module { return g.mod }

// GenFile lowers one compilation unit. Function declarations lower to their
// own functions; any remaining top-level statements are gathered into a main
// function so module-level lets have a home.
func (g *Generator) GenFile(file *ast.File) *Module {
	var topLevel []ast.Stmt
	for _, stmt := range file.Stmts {
		switch s := stmt.(type) {
		case *ast.FnDecl:
			g.genFunction(s)
		case *ast.ClassDecl, *ast.TraitDecl, *ast.ImplDecl:
			// Type-level declarations produce no code here.
		default:
			topLevel = append(topLevel, s)
		}
	}
	if len(topLevel) > 0 {
		g.genMain(topLevel)
	}
	return g.mod
}

func (g *Generator) genMain(stmts []ast.Stmt) {
	fn := g.mod.NewFunction("main", TypeVoid, nil, nil)
	g.fn = fn
	g.block = fn.Entry
	for _, stmt := range stmts {
		if !g.genStmt(stmt) {
			return
		}
	}
	g.emit(&Value{Op: OpRet})
}

// genFunction lowers one function declaration. Any failure to resolve its
// signature or a fatal inside the body aborts this function only; the module
// keeps whatever was built before the abort.
func (g *Generator) genFunction(decl *ast.FnDecl) {
	if decl.Body == nil {
		return
	}
	sig, ok := decl.Type().(*types.Function)
	if !ok {
		g.handler.Fatalf(diag.CodeInternalNilType, decl.Tok().File, decl.Tok().Line, decl.Tok().Column,
			"internal: function %s has no resolved signature", decl.Name)
		return
	}

	ret, ok := g.mapType(sig.Return, decl.Tok())
	if !ok {
		return
	}
	var paramNames []string
	var paramTypes []Type
	for i, p := range decl.Params {
		pt, ok := g.mapType(sig.Params[i], p.Tok())
		if !ok {
			return
		}
		paramNames = append(paramNames, p.Name)
		paramTypes = append(paramTypes, pt)
	}

	fn := g.mod.NewFunction(decl.Name, ret, paramNames, paramTypes)
	g.fn = fn
	g.block = fn.Entry

	// One slot per parameter so parameters and locals are indistinguishable
	// to the rest of the lowering.
	for i, p := range fn.Params {
		slot := fn.AddAlloca(paramNames[i], p.Type)
		g.emit(&Value{Op: OpStore, Args: []*Value{p, slot}})
	}

	for _, stmt := range decl.Body.Stmts {
		if !g.genStmt(stmt) {
			return
		}
	}
	if ret.String() == "void" {
		g.emit(&Value{Op: OpRet})
	}
}

func (g *Generator) emit(v *Value) *Value {
	g.block.Instrs = append(g.block.Instrs, v)
	return v
}

func (g *Generator) inst(op Op, typ Type, args ...*Value) *Value {
	v := g.fn.newValue(op, typ)
	v.Args = args
	return g.emit(v)
}

func (g *Generator) errorf(code diag.Code, tok lexer.Token, format string, args ...any) {
	g.handler.Errorf(code, tok.File, tok.Line, tok.Column, format, args...)
}

// genStmt lowers one statement. A false return means a fatal diagnostic was
// recorded and the current function's lowering stops.
func (g *Generator) genStmt(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			if !g.genStmt(inner) {
				return false
			}
		}
		return true

	case *ast.LetStmt:
		return g.genLet(s)

	case *ast.ExprStmt:
		g.genExpr(s.Expr)
		return true

	case *ast.ReturnStmt:
		return g.genReturn(s)

	case *ast.FnDecl:
		outerFn, outerBlock := g.fn, g.block
		g.genFunction(s)
		g.fn, g.block = outerFn, outerBlock
		return true

	case *ast.IfStmt, *ast.WhileStmt, *ast.ForStmt, *ast.BreakStmt, *ast.ContinueStmt:
		// The op set has no branches yet; structured control flow waits on
		// the block-terminator design.
		g.deferStmt(s, "control flow")
		return true

	case *ast.MatchStmt:
		g.deferStmt(s, "match")
		return true

	case *ast.SelectStmt:
		g.deferStmt(s, "select")
		return true

	case *ast.ImportStmt:
		g.deferStmt(s, "import")
		return true
	}
	return true
}

func (g *Generator) deferStmt(stmt ast.Stmt, what string) {
	tok := stmt.Tok()
	g.handler.Warningf(diag.CodeSemLoweringDeferred, tok.File, tok.Line, tok.Column,
		"%s lowering is not implemented", what)
}

func (g *Generator) genLet(s *ast.LetStmt) bool {
	target, ok := g.mapType(s.Type(), s.Tok())
	if !ok {
		return false
	}
	slot := g.fn.AddAlloca(s.Name, target)

	if s.Value == nil {
		return true
	}
	v, ok := g.genExpr(s.Value)
	if !ok {
		// Already diagnosed; the slot stays unstored and the pass continues.
		return true
	}
	cast, ok := g.coerce(v, target)
	if !ok {
		g.errorf(diag.CodeTypeBadCast, s.Tok(),
			"cannot store %s into %s slot %s", v.Type, target, s.Name)
		return true
	}
	g.emit(&Value{Op: OpStore, Args: []*Value{cast, slot}})
	return true
}

func (g *Generator) genReturn(s *ast.ReturnStmt) bool {
	if s.Value == nil {
		g.emit(&Value{Op: OpRet})
		return true
	}
	v, ok := g.genExpr(s.Value)
	if !ok {
		return true
	}
	cast, ok := g.coerce(v, g.fn.Ret)
	if !ok {
		g.errorf(diag.CodeTypeBadCast, s.Tok(),
			"cannot return %s from a function returning %s", v.Type, g.fn.Ret)
		return true
	}
	g.emit(&Value{Op: OpRet, Args: []*Value{cast}})
	return true
}

// coerce adapts v to dst, inserting a numeric cast when only the width or
// kind differs: integers sign-extend, everything else float-casts. Any
// non-numeric difference fails.
func (g *Generator) coerce(v *Value, dst Type) (*Value, bool) {
	if v.Type.String() == dst.String() {
		return v, true
	}
	_, srcInt := v.Type.(*Int)
	_, srcFloat := v.Type.(*Float)
	_, dstInt := dst.(*Int)
	_, dstFloat := dst.(*Float)

	switch {
	case srcInt && dstInt:
		return g.inst(OpSExt, dst, v), true
	case srcFloat && dstFloat:
		return g.inst(OpFPCast, dst, v), true
	case srcInt && dstFloat:
		return g.inst(OpFPCast, dst, v), true
	}
	return nil, false
}

// mapType converts a checker type into an IR type. A nil type reaching this
// point is an internal error: fatal, and the caller aborts the current
// function's lowering. The checker's unknown recovery type is user-reachable
// (receive, move, and diagnosed subtrees all produce it), so it lowers behind
// an opaque pointer instead.
func (g *Generator) mapType(t types.Type, tok lexer.Token) (Type, bool) {
	if t == nil {
		g.handler.Fatalf(diag.CodeInternalNilType, tok.File, tok.Line, tok.Column,
			"internal: nil type reached lowering")
		return nil, false
	}
	if types.IsUnknown(t) {
		return TypePtr, true
	}
	return g.mapResolved(t), true
}

// mapResolved maps without the nil/unknown guard, for placeholder values
// whose type may legitimately be missing.
func (g *Generator) mapResolved(t types.Type) Type {
	switch typ := t.(type) {
	case *types.Basic:
		switch typ.Kind {
		case types.Void:
			return TypeVoid
		case types.Bool:
			return TypeI1
		case types.Int:
			return TypeI64
		case types.Float, types.Float64:
			return TypeDouble
		case types.Float32:
			return TypeFloat
		case types.Char:
			return TypeI8
		case types.String:
			g.mod.DefineStruct("string", []Type{TypePtr, TypeI64})
			return TypePtr
		}
		return TypePtr
	case *types.Generic:
		switch typ.Name {
		case "array", "list":
			g.mod.DefineStruct("list", []Type{TypePtr, TypeI64, TypeI64})
		case "dict":
			g.mod.DefineStruct("dict", []Type{TypePtr, TypeI64, TypeI64})
		}
		return TypePtr
	}
	// Functions, options, results, nullables, traits: all behind a pointer.
	return TypePtr
}

func (g *Generator) placeholderType(e ast.Expr) Type {
	t := e.Type()
	if t == nil || types.IsUnknown(t) {
		return TypePtr
	}
	return g.mapResolved(t)
}

// deferExpr records one non-fatal deferred-lowering diagnostic and produces a
// typed zero placeholder so downstream consumers have a value to hold.
func (g *Generator) deferExpr(e ast.Expr, what string) (*Value, bool) {
	tok := e.Tok()
	g.handler.Warningf(diag.CodeSemLoweringDeferred, tok.File, tok.Line, tok.Column,
		"%s lowering is not implemented", what)
	return g.inst(OpZero, g.placeholderType(e)), true
}

func (g *Generator) genExpr(expr ast.Expr) (*Value, bool) {
	switch e := expr.(type) {
	case *ast.IntLit:
		n, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			g.errorf(diag.CodeGeneric, e.Tok(), "bad integer literal %q", e.Text)
			return nil, false
		}
		v := g.fn.constValue(OpConstInt, TypeI64)
		v.IntVal = n
		return v, true

	case *ast.FloatLit:
		f, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			g.errorf(diag.CodeGeneric, e.Tok(), "bad float literal %q", e.Text)
			return nil, false
		}
		v := g.fn.constValue(OpConstFloat, TypeDouble)
		v.FloatVal = f
		return v, true

	case *ast.StringLit:
		g.mod.DefineStruct("string", []Type{TypePtr, TypeI64})
		v := g.fn.constValue(OpConstString, TypePtr)
		v.StrVal = DecodeString(e.Raw)
		return v, true

	case *ast.BoolLit:
		v := g.fn.constValue(OpConstBool, TypeI1)
		v.BoolVal = e.Value
		return v, true

	case *ast.NullLit:
		return g.fn.constValue(OpConstNull, TypePtr), true

	case *ast.Ident:
		slot, ok := g.fn.Slot(e.Name)
		if !ok {
			g.errorf(diag.CodeSemUndefinedVariable, e.Tok(), "undefined variable %s", e.Name)
			return nil, false
		}
		return g.inst(OpLoad, slot.Elem, slot), true

	case *ast.AssignExpr:
		return g.genAssign(e)

	case *ast.BinaryExpr:
		return g.genBinary(e)

	case *ast.UnaryExpr:
		return g.genUnary(e)

	case *ast.CallExpr:
		return g.genCall(e)

	case *ast.ArrayLit:
		return g.deferExpr(e, "list literal")
	case *ast.DictLit:
		return g.deferExpr(e, "dict literal")
	case *ast.LambdaExpr:
		return g.deferExpr(e, "lambda")
	case *ast.AwaitExpr:
		return g.deferExpr(e, "await")
	case *ast.OptionExpr:
		return g.deferExpr(e, "option construction")
	case *ast.ResultExpr:
		return g.deferExpr(e, "result construction")
	case *ast.SendExpr:
		return g.deferExpr(e, "channel send")
	case *ast.RecvExpr:
		return g.deferExpr(e, "channel receive")
	case *ast.GoExpr:
		return g.deferExpr(e, "go")
	case *ast.MoveExpr:
		return g.deferExpr(e, "move")
	}
	return g.deferExpr(expr, "expression")
}

func (g *Generator) genAssign(e *ast.AssignExpr) (*Value, bool) {
	target, ok := e.Target.(*ast.Ident)
	if !ok {
		return g.deferExpr(e, "compound target assignment")
	}
	slot, ok := g.fn.Slot(target.Name)
	if !ok {
		g.errorf(diag.CodeSemUndefinedVariable, target.Tok(), "undefined variable %s", target.Name)
		return nil, false
	}
	v, ok := g.genExpr(e.Value)
	if !ok {
		return nil, false
	}
	cast, ok := g.coerce(v, slot.Elem)
	if !ok {
		g.errorf(diag.CodeTypeBadCast, e.Tok(),
			"cannot store %s into %s slot %s", v.Type, slot.Elem, target.Name)
		return nil, false
	}
	g.emit(&Value{Op: OpStore, Args: []*Value{cast, slot}})
	return cast, true
}

var cmpPreds = map[lexer.TokenType]string{
	lexer.EQ:     "eq",
	lexer.NOT_EQ: "ne",
	lexer.LT:     "slt",
	lexer.GT:     "sgt",
	lexer.LE:     "sle",
	lexer.GE:     "sge",
}

func (g *Generator) genBinary(e *ast.BinaryExpr) (*Value, bool) {
	left, ok := g.genExpr(e.Left)
	if !ok {
		return nil, false
	}
	right, ok := g.genExpr(e.Right)
	if !ok {
		return nil, false
	}

	left, right, isFloat, ok := g.unifyNumeric(left, right)
	if !ok {
		return g.deferExpr(e, "non-numeric operator")
	}

	if pred, isCmp := cmpPreds[e.Op]; isCmp {
		op := OpICmp
		if isFloat {
			op = OpFCmp
			pred = strings.TrimPrefix(pred, "s")
		}
		v := g.inst(op, TypeI1, left, right)
		v.Pred = pred
		return v, true
	}

	var op Op
	switch e.Op {
	case lexer.PLUS:
		op = OpAdd
	case lexer.MINUS:
		op = OpSub
	case lexer.ASTERISK:
		op = OpMul
	case lexer.SLASH:
		op = OpDiv
	case lexer.PERCENT:
		if isFloat {
			return g.deferExpr(e, "float remainder")
		}
		op = OpRem
	default:
		return g.deferExpr(e, "operator "+string(e.Op))
	}
	if isFloat {
		op = Op("f" + strings.TrimPrefix(string(op), "s"))
	}
	return g.inst(op, left.Type, left, right), true
}

// unifyNumeric brings two numeric operands to a common type, casting the
// narrower side. Non-numeric operands fail.
func (g *Generator) unifyNumeric(left, right *Value) (*Value, *Value, bool, bool) {
	lf, lIsFloat := left.Type.(*Float)
	rf, rIsFloat := right.Type.(*Float)
	li, lIsInt := left.Type.(*Int)
	ri, rIsInt := right.Type.(*Int)

	switch {
	case lIsInt && rIsInt:
		if li.Bits < ri.Bits {
			left = g.inst(OpSExt, right.Type, left)
		} else if ri.Bits < li.Bits {
			right = g.inst(OpSExt, left.Type, right)
		}
		return left, right, false, true
	case lIsFloat && rIsFloat:
		if lf.Bits < rf.Bits {
			left = g.inst(OpFPCast, right.Type, left)
		} else if rf.Bits < lf.Bits {
			right = g.inst(OpFPCast, left.Type, right)
		}
		return left, right, true, true
	case lIsInt && rIsFloat:
		left = g.inst(OpFPCast, right.Type, left)
		return left, right, true, true
	case lIsFloat && rIsInt:
		right = g.inst(OpFPCast, left.Type, right)
		return left, right, true, true
	}
	return left, right, false, false
}

func (g *Generator) genUnary(e *ast.UnaryExpr) (*Value, bool) {
	operand, ok := g.genExpr(e.Operand)
	if !ok {
		return nil, false
	}

	switch e.Op {
	case lexer.MINUS:
		if _, isFloat := operand.Type.(*Float); isFloat {
			zero := g.fn.constValue(OpConstFloat, operand.Type)
			return g.inst(OpFSub, operand.Type, zero, operand), true
		}
		if _, isInt := operand.Type.(*Int); isInt {
			zero := g.fn.constValue(OpConstInt, operand.Type)
			return g.inst(OpSub, operand.Type, zero, operand), true
		}
		return g.deferExpr(e, "negation of non-numeric value")
	case lexer.BANG:
		if b, isInt := operand.Type.(*Int); !isInt || b.Bits != 1 {
			return g.deferExpr(e, "logical negation of non-bool value")
		}
		f := g.fn.constValue(OpConstBool, TypeI1)
		v := g.inst(OpICmp, TypeI1, operand, f)
		v.Pred = "eq"
		return v, true
	}
	return g.deferExpr(e, "operator "+string(e.Op))
}

func (g *Generator) genCall(e *ast.CallExpr) (*Value, bool) {
	callee, ok := e.Callee.(*ast.Ident)
	if !ok {
		return g.deferExpr(e, "indirect call")
	}
	target := g.mod.FuncNamed(callee.Name)
	if target == nil {
		g.errorf(diag.CodeSemUndefinedVariable, callee.Tok(), "undefined function %s", callee.Name)
		return nil, false
	}

	var args []*Value
	for i, a := range e.Args {
		v, ok := g.genExpr(a)
		if !ok {
			return nil, false
		}
		if i < len(target.Params) {
			cast, ok := g.coerce(v, target.Params[i].Type)
			if !ok {
				g.errorf(diag.CodeTypeBadCast, a.Tok(),
					"cannot pass %s as %s argument %d of %s",
					v.Type, target.Params[i].Type, i+1, target.Name)
				return nil, false
			}
			v = cast
		}
		args = append(args, v)
	}

	v := g.fn.newValue(OpCall, target.Ret)
	v.Name = target.Name
	v.Args = args
	return g.emit(v), true
}

// DecodeString strips the surrounding quotes from a raw string lexeme and
// decodes the escapes \n \t \r \\ \" \'. Any other escape keeps the
// backslash and the character unchanged.
func DecodeString(raw string) string {
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
