package ast

import "github.com/sable-lang/sable/internal/lexer"

// Pattern represents a match pattern. Binds reports whether matching the
// pattern introduces variables, and BoundNames lists them in source order:
// Binds is true exactly when BoundNames is non-empty.
type Pattern interface {
	Node
	patternNode()
	Binds() bool
	BoundNames() []string
}

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct {
	base
}

// NewWildcardPattern constructs a wildcard pattern.
func NewWildcardPattern(tok lexer.Token) *WildcardPattern {
	return &WildcardPattern{base: at(tok)}
}

func (*WildcardPattern) patternNode()         {}
func (*WildcardPattern) Binds() bool          { return false }
func (*WildcardPattern) BoundNames() []string { return nil }

// LiteralPattern matches a literal value and binds nothing.
type LiteralPattern struct {
	base
	Value Expr
}

// NewLiteralPattern constructs a literal pattern.
func NewLiteralPattern(value Expr, tok lexer.Token) *LiteralPattern {
	return &LiteralPattern{base: at(tok), Value: value}
}

func (*LiteralPattern) patternNode()         {}
func (*LiteralPattern) Binds() bool          { return false }
func (*LiteralPattern) BoundNames() []string { return nil }

// IdentPattern matches anything and binds it to a name.
type IdentPattern struct {
	base
	Name string
}

// NewIdentPattern constructs an identifier pattern.
func NewIdentPattern(name string, tok lexer.Token) *IdentPattern {
	return &IdentPattern{base: at(tok), Name: name}
}

func (p *IdentPattern) patternNode()         {}
func (p *IdentPattern) Binds() bool          { return true }
func (p *IdentPattern) BoundNames() []string { return []string{p.Name} }

// CtorPattern matches a constructor such as Some(x), Ok(v), or a class name
// with positional element patterns.
type CtorPattern struct {
	base
	Name     string
	Elements []Pattern
}

// NewCtorPattern constructs a constructor pattern.
func NewCtorPattern(name string, elements []Pattern, tok lexer.Token) *CtorPattern {
	return &CtorPattern{base: at(tok), Name: name, Elements: elements}
}

func (p *CtorPattern) patternNode() {}
func (p *CtorPattern) Binds() bool  { return len(p.BoundNames()) > 0 }
func (p *CtorPattern) BoundNames() []string {
	var names []string
	for _, el := range p.Elements {
		names = appendNames(names, el.BoundNames())
	}
	return names
}

// TuplePattern matches a fixed-arity tuple of element patterns.
type TuplePattern struct {
	base
	Elements []Pattern
}

// NewTuplePattern constructs a tuple pattern.
func NewTuplePattern(elements []Pattern, tok lexer.Token) *TuplePattern {
	return &TuplePattern{base: at(tok), Elements: elements}
}

func (p *TuplePattern) patternNode() {}
func (p *TuplePattern) Binds() bool  { return len(p.BoundNames()) > 0 }
func (p *TuplePattern) BoundNames() []string {
	var names []string
	for _, el := range p.Elements {
		names = appendNames(names, el.BoundNames())
	}
	return names
}

// FieldPattern pairs a struct field name with the pattern matched against it.
type FieldPattern struct {
	base
	Name    string
	Pattern Pattern
}

// NewFieldPattern constructs a field pattern.
func NewFieldPattern(name string, pattern Pattern, tok lexer.Token) *FieldPattern {
	return &FieldPattern{base: at(tok), Name: name, Pattern: pattern}
}

// StructPattern matches a class value by field.
type StructPattern struct {
	base
	Name   string
	Fields []*FieldPattern
}

// NewStructPattern constructs a struct pattern.
func NewStructPattern(name string, fields []*FieldPattern, tok lexer.Token) *StructPattern {
	return &StructPattern{base: at(tok), Name: name, Fields: fields}
}

func (p *StructPattern) patternNode() {}
func (p *StructPattern) Binds() bool  { return len(p.BoundNames()) > 0 }
func (p *StructPattern) BoundNames() []string {
	var names []string
	for _, f := range p.Fields {
		names = appendNames(names, f.Pattern.BoundNames())
	}
	return names
}

// OrPattern matches if either alternative matches. Both sides must bind the
// same set of names; the checker enforces that.
type OrPattern struct {
	base
	Left  Pattern
	Right Pattern
}

// NewOrPattern constructs an or-pattern.
func NewOrPattern(left, right Pattern, tok lexer.Token) *OrPattern {
	return &OrPattern{base: at(tok), Left: left, Right: right}
}

func (p *OrPattern) patternNode() {}
func (p *OrPattern) Binds() bool  { return len(p.BoundNames()) > 0 }

// BoundNames returns the left alternative's bindings. When the sides
// disagree the checker reports it and recovers with this set.
func (p *OrPattern) BoundNames() []string { return p.Left.BoundNames() }

// appendNames appends src names onto dst, keeping source order and dropping
// duplicates.
func appendNames(dst, src []string) []string {
	for _, name := range src {
		dup := false
		for _, have := range dst {
			if have == name {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, name)
		}
	}
	return dst
}
