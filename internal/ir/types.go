package ir

import (
	"fmt"
	"strings"
)

// Type is an IR-level type. The set is closed and deliberately small: integer
// and float widths, an opaque byte pointer, void, and named struct layouts.
type Type interface {
	String() string
	irType()
}

// Int is an integer type of a fixed bit width.
type Int struct {
	Bits int
}

func (t *Int) String() string { return fmt.Sprintf("i%d", t.Bits) }
func (t *Int) irType()        {}

// Float is a floating-point type: 32 bits renders as float, 64 as double.
type Float struct {
	Bits int
}

func (t *Float) String() string {
	if t.Bits == 64 {
		return "double"
	}
	return "float"
}
func (t *Float) irType() {}

// Ptr is the opaque byte pointer.
type Ptr struct{}

func (t *Ptr) String() string { return "ptr" }
func (t *Ptr) irType()        {}

// Void is the absence of a value.
type Void struct{}

func (t *Void) String() string { return "void" }
func (t *Void) irType()        {}

// Struct is a named field layout owned by its module.
type Struct struct {
	Name   string
	Fields []Type
}

func (t *Struct) String() string { return "%" + t.Name }
func (t *Struct) irType()        {}

// Layout renders the field list for module-level type definitions.
func (t *Struct) Layout() string {
	var fields []string
	for _, f := range t.Fields {
		fields = append(fields, f.String())
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

// Shared instances for the fixed-width types.
var (
	TypeI1     = &Int{Bits: 1}
	TypeI8     = &Int{Bits: 8}
	TypeI32    = &Int{Bits: 32}
	TypeI64    = &Int{Bits: 64}
	TypeFloat  = &Float{Bits: 32}
	TypeDouble = &Float{Bits: 64}
	TypePtr    = &Ptr{}
	TypeVoid   = &Void{}
)
