package checker

import (
	"sort"
	"strings"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/types"
)

// checkPattern types a pattern against the subject and defines its bindings
// in the current scope.
func (c *Checker) checkPattern(pat ast.Pattern, subject types.Type) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		p.SetType(subject)

	case *ast.LiteralPattern:
		litType := c.checkExpr(p.Value)
		if !types.AssignableTo(litType, subject) && !types.AssignableTo(subject, litType) {
			c.errorf(diag.CodeTypeMismatch, p.Tok(),
				"pattern literal of type %s cannot match %s", litType, subject)
		}
		p.SetType(subject)

	case *ast.IdentPattern:
		c.scope.Define(p.Name, subject)
		p.SetType(subject)

	case *ast.CtorPattern:
		c.checkCtorPattern(p, subject)

	case *ast.TuplePattern:
		for _, el := range p.Elements {
			c.checkPattern(el, types.TypeUnknown)
		}
		p.SetType(subject)

	case *ast.StructPattern:
		for _, f := range p.Fields {
			c.checkPattern(f.Pattern, types.TypeUnknown)
			f.SetType(types.TypeUnknown)
		}
		p.SetType(subject)

	case *ast.OrPattern:
		c.checkOrPattern(p, subject)
	}
}

// checkCtorPattern handles Some/None/Ok/Err against option and result
// subjects; for any other constructor the elements match against unknown.
func (c *Checker) checkCtorPattern(p *ast.CtorPattern, subject types.Type) {
	inner := types.Type(types.TypeUnknown)

	switch p.Name {
	case "Some", "None":
		if opt, ok := subject.(*types.Option); ok {
			inner = opt.Inner
		}
	case "Ok":
		if res, ok := subject.(*types.Result); ok {
			inner = res.Ok
		}
	case "Err":
		if res, ok := subject.(*types.Result); ok {
			inner = res.Err
		}
	}

	for _, el := range p.Elements {
		c.checkPattern(el, inner)
	}
	p.SetType(subject)
}

// checkOrPattern enforces that both alternatives bind the same set of names.
// On disagreement the left alternative's set is used for recovery, so the arm
// body still checks against a consistent scope.
func (c *Checker) checkOrPattern(p *ast.OrPattern, subject types.Type) {
	left := nameSet(p.Left.BoundNames())
	right := nameSet(p.Right.BoundNames())

	if left != right {
		c.errorf(diag.CodeTypeOrPatternBindings, p.Tok(),
			"or-pattern alternatives bind different names: [%s] vs [%s]", left, right)
	}

	c.checkPattern(p.Left, subject)

	// The right alternative is typed in a throwaway scope: its bindings must
	// not shadow or duplicate the left's.
	outer := c.scope
	c.scope = NewScope(outer)
	c.checkPattern(p.Right, subject)
	c.scope = outer

	p.SetType(subject)
}

func nameSet(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
