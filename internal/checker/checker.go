package checker

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// Scope is one lexical scope in the chain.
type Scope struct {
	parent *Scope
	vars   map[string]types.Type
}

// NewScope creates a scope nested inside parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]types.Type)}
}

// Define binds a name in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, typ types.Type) {
	s.vars[name] = typ
}

// Lookup resolves a name, walking outward through enclosing scopes.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Checker annotates the AST with types in place. It visits every node exactly
// once, never unwinds on error, and substitutes unknown (or void) so multiple
// independent errors surface in one pass. All diagnostics go to the shared
// handler.
type Checker struct {
	handler *diag.Handler
	scope   *Scope
	traits  map[string]*types.Trait
	classes map[string]*types.Basic
	funcs   map[string]*types.Function
	reg     *types.Registry

	// retType is the declared return type of the function body being checked.
	retType types.Type
}

// New creates a checker reporting to handler.
func New(handler *diag.Handler) *Checker {
	return &Checker{
		handler: handler,
		scope:   NewScope(nil),
		traits:  make(map[string]*types.Trait),
		classes: make(map[string]*types.Basic),
		funcs:   make(map[string]*types.Function),
		reg:     types.NewRegistry(),
	}
}

// Registry exposes the trait registry for completeness queries.
func (c *Checker) Registry() *types.Registry { return c.reg }

// CheckFile checks one compilation unit. Declarations are registered first so
// order within the file does not matter, then every statement is checked.
func (c *Checker) CheckFile(file *ast.File) {
	for _, stmt := range file.Stmts {
		c.registerDecl(stmt)
	}
	for _, stmt := range file.Stmts {
		c.checkStmt(stmt)
	}
	file.SetType(types.TypeVoid)
}

func (c *Checker) errorf(code diag.Code, tok lexer.Token, format string, args ...any) {
	c.handler.Errorf(code, tok.File, tok.Line, tok.Column, format, args...)
}

func (c *Checker) warningf(code diag.Code, tok lexer.Token, format string, args ...any) {
	c.handler.Warningf(code, tok.File, tok.Line, tok.Column, format, args...)
}

// registerDecl records top-level names before bodies are checked.
func (c *Checker) registerDecl(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FnDecl:
		sig := c.signatureOf(s)
		s.SetType(sig)
		c.funcs[s.Name] = sig
	case *ast.ClassDecl:
		c.classes[s.Name] = types.NewClass(s.Name)
	case *ast.TraitDecl:
		c.traits[s.Name] = c.buildTrait(s)
	case *ast.ImplDecl:
		c.registerImpl(s)
	}
}

func (c *Checker) signatureOf(fn *ast.FnDecl) *types.Function {
	sig := &types.Function{Return: types.TypeVoid}
	for _, p := range fn.Params {
		sig.Params = append(sig.Params, c.resolveType(p.TypeAnn, p.Tok()))
	}
	if fn.ReturnType != nil {
		sig.Return = c.resolveType(fn.ReturnType, fn.Tok())
	}
	return sig
}

func (c *Checker) buildTrait(decl *ast.TraitDecl) *types.Trait {
	tr := &types.Trait{
		Name:            decl.Name,
		Methods:         make(map[string]*types.Function),
		AssociatedTypes: decl.Associated,
	}
	for _, m := range decl.Methods {
		tr.Methods[m.Name] = c.signatureOf(m)
	}
	for _, parent := range decl.Parents {
		p, ok := c.traits[parent]
		if !ok {
			c.errorf(diag.CodeTypeUndefinedType, decl.Tok(), "unknown parent trait %s", parent)
			continue
		}
		tr.Parents = append(tr.Parents, p)
	}
	return tr
}

func (c *Checker) registerImpl(decl *ast.ImplDecl) {
	tr, ok := c.traits[decl.TraitName]
	if !ok {
		c.errorf(diag.CodeTypeUndefinedType, decl.Tok(), "unknown trait %s", decl.TraitName)
		return
	}
	forType := c.resolveType(decl.ForType, decl.Tok())

	impl := &types.Implementation{
		Trait:           tr,
		For:             forType,
		Methods:         make(map[string]*types.Function),
		AssociatedTypes: make(map[string]types.Type),
	}
	for _, m := range decl.Methods {
		impl.Methods[m.Name] = c.signatureOf(m)
	}
	for name, te := range decl.Associated {
		impl.AssociatedTypes[name] = c.resolveType(te, decl.Tok())
	}
	c.reg.Register(impl)

	if !impl.IsComplete() {
		c.errorf(diag.CodeTypeTraitIncomplete, decl.Tok(),
			"incomplete implementation of trait %s for %s", tr.Name, forType)
	}
}

// resolveType converts a type annotation into a types.Type. A nil annotation
// yields nil; unknown names yield unknown after a diagnostic.
func (c *Checker) resolveType(te ast.TypeExpr, tok lexer.Token) types.Type {
	if te == nil {
		return nil
	}
	t := c.resolveTypeExpr(te, tok)
	te.SetType(t)
	return t
}

func (c *Checker) resolveTypeExpr(te ast.TypeExpr, tok lexer.Token) types.Type {
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		switch t.Name {
		case "void":
			return types.TypeVoid
		case "bool":
			return types.TypeBool
		case "int":
			return types.TypeInt
		case "float":
			return types.TypeFloat
		case "float32":
			return types.TypeFloat32
		case "float64":
			return types.TypeFloat64
		case "char":
			return types.TypeChar
		case "string":
			return types.TypeString
		case "array":
			return types.NewArray(c.typeArg(t, 0, tok))
		case "dict":
			return types.NewDict(c.typeArg(t, 0, tok), c.typeArg(t, 1, tok))
		case "list", "chan":
			return &types.Generic{Name: t.Name, Args: []types.Type{c.typeArg(t, 0, tok)}}
		case "option":
			return &types.Option{Inner: c.typeArg(t, 0, tok)}
		case "result":
			return &types.Result{Ok: c.typeArg(t, 0, tok), Err: c.typeArg(t, 1, tok)}
		}
		if cls, ok := c.classes[t.Name]; ok {
			return cls
		}
		c.errorf(diag.CodeTypeUndefinedType, tok, "unknown type %s", t.Name)
		return types.TypeUnknown
	case *ast.NullableTypeExpr:
		return &types.Nullable{Inner: c.resolveType(t.Inner, tok)}
	case *ast.FuncTypeExpr:
		fn := &types.Function{Return: types.TypeVoid}
		for _, p := range t.Params {
			fn.Params = append(fn.Params, c.resolveType(p, tok))
		}
		if t.Return != nil {
			fn.Return = c.resolveType(t.Return, tok)
		}
		return fn
	}
	return types.TypeUnknown
}

func (c *Checker) typeArg(t *ast.NamedTypeExpr, i int, tok lexer.Token) types.Type {
	if i < len(t.Args) {
		return c.resolveType(t.Args[i], tok)
	}
	return types.TypeUnknown
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		c.scope = NewScope(c.scope)
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.scope = c.scope.parent
		s.SetType(types.TypeVoid)

	case *ast.LetStmt:
		c.checkLet(s)

	case *ast.FnDecl:
		c.checkFn(s, nil)

	case *ast.ClassDecl:
		c.checkClass(s)

	case *ast.TraitDecl:
		// Registered up front; signatures were resolved then.
		s.SetType(types.TypeVoid)

	case *ast.ImplDecl:
		c.checkImplBodies(s)

	case *ast.IfStmt:
		c.checkCondition(s.Cond)
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}
		s.SetType(types.TypeVoid)

	case *ast.WhileStmt:
		c.checkCondition(s.Cond)
		c.checkStmt(s.Body)
		s.SetType(types.TypeVoid)

	case *ast.ForStmt:
		c.checkFor(s)

	case *ast.ReturnStmt:
		c.checkReturn(s)

	case *ast.BreakStmt:
		s.SetType(types.TypeVoid)

	case *ast.ContinueStmt:
		s.SetType(types.TypeVoid)

	case *ast.ImportStmt:
		s.SetType(types.TypeVoid)

	case *ast.MatchStmt:
		c.checkMatch(s)

	case *ast.SelectStmt:
		c.warningf(diag.CodeSemNotImplemented, s.Tok(), "select is not implemented")
		for _, cs := range s.Cases {
			c.checkExpr(cs.Comm)
			c.checkStmt(cs.Body)
		}
		s.SetType(types.TypeVoid)

	case *ast.ExprStmt:
		c.checkExpr(s.Expr)
		s.SetType(types.TypeVoid)
	}
}

func (c *Checker) checkLet(s *ast.LetStmt) {
	declared := c.resolveType(s.TypeAnn, s.Tok())

	var valueType types.Type
	if s.Value != nil {
		valueType = c.checkExpr(s.Value)
	}

	target := declared
	if target == nil {
		target = valueType
	}
	if target == nil {
		c.errorf(diag.CodeTypeInferenceFailure, s.Tok(),
			"cannot infer a type for %s: no annotation and no initializer", s.Name)
		target = types.TypeUnknown
	}

	if declared != nil && valueType != nil && !types.AssignableTo(valueType, declared) {
		c.errorf(diag.CodeTypeMismatch, s.Tok(),
			"cannot assign %s to %s of type %s", valueType, s.Name, declared)
	}

	c.scope.Define(s.Name, target)
	s.SetType(target)
}

// checkFn checks a function body with its parameters in scope. self, when
// non-nil, is the receiver type of a method.
func (c *Checker) checkFn(fn *ast.FnDecl, self types.Type) {
	// Top-level functions already carry the signature from registration.
	sig, ok := fn.Type().(*types.Function)
	if !ok {
		sig = c.signatureOf(fn)
		fn.SetType(sig)
	}
	c.scope.Define(fn.Name, sig)

	if fn.Body == nil {
		return
	}

	outer := c.scope
	outerRet := c.retType
	c.scope = NewScope(outer)
	c.retType = sig.Return

	if self != nil {
		c.scope.Define("self", self)
	}
	for i, p := range fn.Params {
		c.scope.Define(p.Name, sig.Params[i])
		p.SetType(sig.Params[i])
	}
	c.checkStmt(fn.Body)

	c.scope = outer
	c.retType = outerRet
}

func (c *Checker) checkClass(s *ast.ClassDecl) {
	self := c.classes[s.Name]
	if self == nil {
		self = types.NewClass(s.Name)
		c.classes[s.Name] = self
	}
	for _, f := range s.Fields {
		f.SetType(c.resolveType(f.TypeAnn, f.Tok()))
	}
	for _, m := range s.Methods {
		c.checkFn(m, self)
	}
	s.SetType(self)
}

func (c *Checker) checkImplBodies(s *ast.ImplDecl) {
	forType := c.resolveType(s.ForType, s.Tok())
	for _, m := range s.Methods {
		c.checkFn(m, forType)
	}
	s.SetType(types.TypeVoid)
}

func (c *Checker) checkFor(s *ast.ForStmt) {
	iterType := c.checkExpr(s.Iterable)

	elem := types.Type(types.TypeUnknown)
	if g, ok := iterType.(*types.Generic); ok && len(g.Args) == 1 {
		elem = g.Args[0]
	}

	c.scope = NewScope(c.scope)
	c.scope.Define(s.Name, elem)
	c.checkStmt(s.Body)
	c.scope = c.scope.parent
	s.SetType(types.TypeVoid)
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		if c.retType != nil && !types.Equal(c.retType, types.TypeVoid) {
			c.errorf(diag.CodeTypeBadReturn, s.Tok(),
				"bare return in a function returning %s", c.retType)
		}
		s.SetType(types.TypeVoid)
		return
	}

	valueType := c.checkExpr(s.Value)
	if c.retType == nil || types.Equal(c.retType, types.TypeVoid) {
		c.errorf(diag.CodeTypeBadReturn, s.Tok(), "returning %s from a void function", valueType)
	} else if !types.AssignableTo(valueType, c.retType) {
		c.errorf(diag.CodeTypeBadReturn, s.Tok(),
			"cannot return %s from a function returning %s", valueType, c.retType)
	}
	s.SetType(valueType)
}

func (c *Checker) checkMatch(s *ast.MatchStmt) {
	subject := c.checkExpr(s.Subject)

	for _, arm := range s.Arms {
		c.scope = NewScope(c.scope)
		c.checkPattern(arm.Pattern, subject)
		c.checkStmt(arm.Body)
		c.scope = c.scope.parent
		arm.SetType(types.TypeVoid)
	}
	s.SetType(types.TypeVoid)
}

func (c *Checker) checkCondition(cond ast.Expr) {
	t := c.checkExpr(cond)
	if !types.Equal(t, types.TypeBool) && !types.IsUnknown(t) {
		c.errorf(diag.CodeTypeBadCondition, cond.Tok(), "condition must be bool, got %s", t)
	}
}
