package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Op identifies what an instruction or constant does.
type Op string

const (
	OpConstInt    Op = "const.int"
	OpConstFloat  Op = "const.float"
	OpConstBool   Op = "const.bool"
	OpConstString Op = "const.string"
	OpConstNull   Op = "const.null"

	OpParam  Op = "param"
	OpAlloca Op = "alloca"
	OpLoad   Op = "load"
	OpStore  Op = "store"

	OpAdd  Op = "add"
	OpSub  Op = "sub"
	OpMul  Op = "mul"
	OpDiv  Op = "sdiv"
	OpRem  Op = "srem"
	OpFAdd Op = "fadd"
	OpFSub Op = "fsub"
	OpFMul Op = "fmul"
	OpFDiv Op = "fdiv"

	OpICmp Op = "icmp"
	OpFCmp Op = "fcmp"

	OpSExt   Op = "sext"
	OpFPCast Op = "fpcast"

	OpCall Op = "call"
	OpRet  Op = "ret"

	// OpZero is the typed placeholder produced for constructs that are not
	// lowered yet.
	OpZero Op = "zero"
)

// Value is one SSA value: a constant, a parameter, or an instruction result.
// Every value has exactly one definition and is owned by its module.
type Value struct {
	ID   int
	Op   Op
	Type Type
	Args []*Value

	// Elem is the pointee type of an alloca.
	Elem Type

	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string

	// Pred is the comparison predicate of an icmp/fcmp.
	Pred string

	// Name labels params, allocas, and call targets.
	Name string
}

func (v *Value) ref() string {
	switch v.Op {
	case OpConstInt:
		return fmt.Sprintf("%d", v.IntVal)
	case OpConstFloat:
		return fmt.Sprintf("%g", v.FloatVal)
	case OpConstBool:
		if v.BoolVal {
			return "true"
		}
		return "false"
	case OpConstString:
		return fmt.Sprintf("%q", v.StrVal)
	case OpConstNull:
		return "null"
	}
	return fmt.Sprintf("%%%d", v.ID)
}

// Block is a straight-line sequence of instructions.
type Block struct {
	Name   string
	Instrs []*Value
}

// Function is one lowered function. Slots is the flat name-to-alloca table:
// one entry per name, no shadowing.
type Function struct {
	Name   string
	Params []*Value
	Ret    Type
	Blocks []*Block
	Entry  *Block

	slots  map[string]*Value
	nextID int
}

// NewBlock appends a block to the function.
func (f *Function) NewBlock(name string) *Block {
	b := &Block{Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

func (f *Function) newValue(op Op, typ Type) *Value {
	f.nextID++
	return &Value{ID: f.nextID, Op: op, Type: typ}
}

// Const values carry their payload instead of an ID and live outside blocks.
func (f *Function) constValue(op Op, typ Type) *Value {
	return &Value{Op: op, Type: typ}
}

// AddAlloca creates a stack slot in the entry block and registers it under
// name. Slots always live in the entry block so they dominate every use.
func (f *Function) AddAlloca(name string, elem Type) *Value {
	v := f.newValue(OpAlloca, TypePtr)
	v.Elem = elem
	v.Name = name
	f.Entry.Instrs = append([]*Value{v}, f.Entry.Instrs...)
	f.slots[name] = v
	return v
}

// Slot looks up the stack slot registered under name.
func (f *Function) Slot(name string) (*Value, bool) {
	v, ok := f.slots[name]
	return v, ok
}

// Module owns every function, block, value, and struct layout created for one
// compilation unit. Nothing escapes its lifetime.
type Module struct {
	Name    string
	Funcs   []*Function
	layouts map[string]*Struct
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name, layouts: make(map[string]*Struct)}
}

// DefineStruct returns the layout registered under name, creating it from
// fields on first use. Later calls ignore fields and return the first layout.
func (m *Module) DefineStruct(name string, fields []Type) *Struct {
	if s, ok := m.layouts[name]; ok {
		return s
	}
	s := &Struct{Name: name, Fields: fields}
	m.layouts[name] = s
	return s
}

// Layouts returns the defined struct layouts in name order.
func (m *Module) Layouts() []*Struct {
	names := make([]string, 0, len(m.layouts))
	for name := range m.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Struct, 0, len(names))
	for _, name := range names {
		out = append(out, m.layouts[name])
	}
	return out
}

// NewFunction creates a function with the given return type and named
// parameters, opens its entry block, and registers it in the module.
func (m *Module) NewFunction(name string, ret Type, paramNames []string, paramTypes []Type) *Function {
	f := &Function{
		Name:  name,
		Ret:   ret,
		slots: make(map[string]*Value),
	}
	f.Entry = f.NewBlock("entry")
	for i, pname := range paramNames {
		p := f.newValue(OpParam, paramTypes[i])
		p.Name = pname
		f.Params = append(f.Params, p)
	}
	m.Funcs = append(m.Funcs, f)
	return f
}

// FuncNamed returns the function registered under name, or nil.
func (m *Module) FuncNamed(name string) *Function {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// String renders a readable dump of the whole module.
func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; module %s\n", m.Name)
	for _, s := range m.Layouts() {
		fmt.Fprintf(&sb, "%%%s = type %s\n", s.Name, s.Layout())
	}
	for _, f := range m.Funcs {
		sb.WriteString("\n")
		sb.WriteString(f.String())
	}
	return sb.String()
}

// String renders one function.
func (f *Function) String() string {
	var sb strings.Builder
	var params []string
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s %%%s", p.Type, p.Name))
	}
	fmt.Fprintf(&sb, "define %s @%s(%s) {\n", f.Ret, f.Name, strings.Join(params, ", "))
	for _, b := range f.Blocks {
		fmt.Fprintf(&sb, "%s:\n", b.Name)
		for _, v := range b.Instrs {
			sb.WriteString("  " + formatInstr(v) + "\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func formatInstr(v *Value) string {
	switch v.Op {
	case OpAlloca:
		return fmt.Sprintf("%%%d = alloca %s ; %s", v.ID, v.Elem, v.Name)
	case OpStore:
		return fmt.Sprintf("store %s %s, ptr %s", v.Args[0].Type, v.Args[0].ref(), v.Args[1].ref())
	case OpLoad:
		return fmt.Sprintf("%%%d = load %s, ptr %s", v.ID, v.Type, v.Args[0].ref())
	case OpICmp, OpFCmp:
		return fmt.Sprintf("%%%d = %s %s %s %s, %s",
			v.ID, v.Op, v.Pred, v.Args[0].Type, v.Args[0].ref(), v.Args[1].ref())
	case OpRet:
		if len(v.Args) == 0 {
			return "ret void"
		}
		return fmt.Sprintf("ret %s %s", v.Args[0].Type, v.Args[0].ref())
	case OpCall:
		var args []string
		for _, a := range v.Args {
			args = append(args, fmt.Sprintf("%s %s", a.Type, a.ref()))
		}
		return fmt.Sprintf("%%%d = call %s @%s(%s)", v.ID, v.Type, v.Name, strings.Join(args, ", "))
	case OpZero:
		return fmt.Sprintf("%%%d = zero %s", v.ID, v.Type)
	case OpSExt, OpFPCast:
		return fmt.Sprintf("%%%d = %s %s %s to %s",
			v.ID, v.Op, v.Args[0].Type, v.Args[0].ref(), v.Type)
	default:
		var args []string
		for _, a := range v.Args {
			args = append(args, a.ref())
		}
		return fmt.Sprintf("%%%d = %s %s %s", v.ID, v.Op, v.Type, strings.Join(args, ", "))
	}
}
