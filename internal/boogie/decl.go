package boogie

import (
	"fmt"
	"strings"
)

// TypeName is a Boogie sort reference, e.g. "int", "bool", "bv256" or a
// map sort "[int]int".
type TypeName string

const (
	IntType  TypeName = "int"
	BoolType TypeName = "bool"
)

func BvType(bits int) TypeName {
	return TypeName(fmt.Sprintf("bv%d", bits))
}

func MapType(key, value TypeName) TypeName {
	return TypeName(fmt.Sprintf("[%s]%s", key, value))
}

// Attr is a declaration attribute such as {:inline 1} or
// {:message "transfer"}. String arguments render quoted, everything
// else raw.
type Attr struct {
	Name string
	Args []interface{}
}

func NewAttr(name string, args ...interface{}) *Attr {
	return &Attr{Name: name, Args: args}
}

func (a *Attr) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		if s, ok := arg.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
			continue
		}
		parts[i] = fmt.Sprintf("%v", arg)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("{:%s}", a.Name)
	}
	return fmt.Sprintf("{:%s %s}", a.Name, strings.Join(parts, ", "))
}

// Binding is a named, typed parameter or return value.
type Binding struct {
	Name *Ident
	Type TypeName
}

func (b Binding) String() string {
	return fmt.Sprintf("%s: %s", b.Name, b.Type)
}

// ProcDecl is a verification procedure. The built-in synthesizer builds
// one per contract run and call sites reference it by name.
type ProcDecl struct {
	Name    string
	Params  []Binding
	Returns []Binding
	Body    *Block
	Attrs   []*Attr
}

func NewProc(name string, params, returns []Binding, body *Block) *ProcDecl {
	return &ProcDecl{
		Name:    name,
		Params:  params,
		Returns: returns,
		Body:    body,
	}
}

func (p *ProcDecl) AddAttr(a *Attr) {
	p.Attrs = append(p.Attrs, a)
}

func (p *ProcDecl) String() string {
	var sb strings.Builder
	sb.WriteString("procedure ")
	for _, a := range p.Attrs {
		sb.WriteString(a.String())
		sb.WriteString(" ")
	}
	sb.WriteString(fmt.Sprintf("%s(%s)", p.Name, bindings(p.Params)))
	if len(p.Returns) > 0 {
		sb.WriteString(fmt.Sprintf(" returns (%s)", bindings(p.Returns)))
	}
	sb.WriteString("\n{\n")
	sb.WriteString(p.Body.indented("  "))
	sb.WriteString("}\n")
	return sb.String()
}

// FuncDecl is an uninterpreted function declaration, used for the
// width-parameterized bitvector primitives carrying a {:bvbuiltin ...}
// attribute.
type FuncDecl struct {
	Name   string
	Params []TypeName
	Result TypeName
	Attrs  []*Attr
}

func NewFunc(name string, params []TypeName, result TypeName, attrs ...*Attr) *FuncDecl {
	return &FuncDecl{
		Name:   name,
		Params: params,
		Result: result,
		Attrs:  attrs,
	}
}

func (f *FuncDecl) String() string {
	var sb strings.Builder
	sb.WriteString("function ")
	for _, a := range f.Attrs {
		sb.WriteString(a.String())
		sb.WriteString(" ")
	}
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = string(p)
	}
	sb.WriteString(fmt.Sprintf("%s(%s) returns (%s);", f.Name, strings.Join(parts, ", "), f.Result))
	return sb.String()
}

func bindings(bs []Binding) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}
