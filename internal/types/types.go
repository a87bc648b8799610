package types

import "strings"

// Type represents a type in the Sable type system. Types are shared,
// immutable values; the AST holds references into them, never exclusive
// ownership. String() is the canonical textual identity: equality and
// registry lookups compare rendered names, not structure.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// BasicKind represents the kind of a basic type.
type BasicKind string

const (
	Void      BasicKind = "void"
	Bool      BasicKind = "bool"
	Int       BasicKind = "int"
	Float     BasicKind = "float"
	Float32   BasicKind = "float32"
	Float64   BasicKind = "float64"
	Char      BasicKind = "char"
	String    BasicKind = "string"
	Array     BasicKind = "array"
	Map       BasicKind = "map"
	Func      BasicKind = "function"
	Class     BasicKind = "class"
	Interface BasicKind = "interface"
	Pointer   BasicKind = "pointer"
	Reference BasicKind = "reference"
	Unknown   BasicKind = "unknown"
)

// Basic represents a basic type. Name carries the user-visible identity for
// class and interface kinds; for the others it is empty and the kind itself
// is the identity.
type Basic struct {
	Kind BasicKind
	Name string
}

func (b *Basic) String() string {
	if b.Name != "" {
		return b.Name
	}
	return string(b.Kind)
}
func (b *Basic) IsType() {}

// Common basic instances
var (
	TypeVoid    = &Basic{Kind: Void}
	TypeBool    = &Basic{Kind: Bool}
	TypeInt     = &Basic{Kind: Int}
	TypeFloat   = &Basic{Kind: Float}
	TypeFloat32 = &Basic{Kind: Float32}
	TypeFloat64 = &Basic{Kind: Float64}
	TypeChar    = &Basic{Kind: Char}
	TypeString  = &Basic{Kind: String}
	TypeUnknown = &Basic{Kind: Unknown}
)

// NewClass creates the type of a user-defined class.
func NewClass(name string) *Basic {
	return &Basic{Kind: Class, Name: name}
}

// NewInterface creates the type of a user-defined interface.
func NewInterface(name string) *Basic {
	return &Basic{Kind: Interface, Name: name}
}

// Generic represents an instantiated generic type such as array<int>,
// list<string>, dict<string,int>, or chan<int>.
type Generic struct {
	Name string
	Args []Type
}

func (g *Generic) String() string {
	var args []string
	for _, a := range g.Args {
		args = append(args, a.String())
	}
	return g.Name + "<" + strings.Join(args, ",") + ">"
}
func (g *Generic) IsType() {}

// NewArray creates an array type with the given element type.
func NewArray(elem Type) *Generic {
	return &Generic{Name: "array", Args: []Type{elem}}
}

// NewDict creates a dict type with the given key and value types.
func NewDict(key, value Type) *Generic {
	return &Generic{Name: "dict", Args: []Type{key, value}}
}

// Function represents a function type.
type Function struct {
	Params []Type
	Return Type
}

func (f *Function) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") -> " + ret
}
func (f *Function) IsType() {}

// Option represents an optional value type.
type Option struct {
	Inner Type
}

func (o *Option) String() string { return "option<" + o.Inner.String() + ">" }
func (o *Option) IsType()        {}

// Result represents a success-or-error value type.
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) String() string { return "result<" + r.Ok.String() + "," + r.Err.String() + ">" }
func (r *Result) IsType()        {}

// Nullable represents a type that also admits null.
type Nullable struct {
	Inner Type
}

func (n *Nullable) String() string { return n.Inner.String() + "?" }
func (n *Nullable) IsType()        {}

// Equal reports whether two types have the same canonical identity.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// IsNumeric reports whether t is an integer or floating-point type.
func IsNumeric(t Type) bool {
	b, ok := t.(*Basic)
	if !ok {
		return false
	}
	switch b.Kind {
	case Int, Float, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is a floating-point type.
func IsFloat(t Type) bool {
	b, ok := t.(*Basic)
	if !ok {
		return false
	}
	switch b.Kind {
	case Float, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsUnknown reports whether t is the error-recovery placeholder type.
func IsUnknown(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == Unknown
}

// AssignableTo reports whether a value of type src can be assigned to a
// target of type dst. Identity is string-keyed; unknown is compatible in both
// directions so one error does not cascade through the whole pass. Numeric
// widening admits int into float kinds and float32 into float/float64; a
// value of type T (or null) fits a nullable T target.
func AssignableTo(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if Equal(src, dst) {
		return true
	}
	if IsUnknown(src) || IsUnknown(dst) {
		return true
	}

	if sb, ok := src.(*Basic); ok {
		if db, ok := dst.(*Basic); ok {
			switch {
			case sb.Kind == Int && (db.Kind == Float || db.Kind == Float64 || db.Kind == Float32):
				return true
			case sb.Kind == Float32 && (db.Kind == Float || db.Kind == Float64):
				return true
			// float and float64 are the same width, spelled two ways.
			case sb.Kind == Float && db.Kind == Float64:
				return true
			case sb.Kind == Float64 && db.Kind == Float:
				return true
			}
		}
	}

	if n, ok := dst.(*Nullable); ok {
		if b, ok := src.(*Basic); ok && b.Kind == Pointer && b.Name == "null" {
			return true
		}
		return AssignableTo(src, n.Inner)
	}

	return false
}

// TypeNull is the type of the null literal.
var TypeNull = &Basic{Kind: Pointer, Name: "null"}
