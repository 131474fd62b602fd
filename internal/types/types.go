// Package types holds Peak's type values and the equivalence and
// assignability relations over them. Type values are never mutated once
// analysis has finished building them.
package types

import "strings"

// Type is implemented by every Peak type
type Type interface {
	String() string
	typeNode()
}

// Primitive is one of the intrinsic types; each exists exactly once
type Primitive struct {
	Name string
}

// Intrinsic types, compared by identity
var (
	Int     = &Primitive{Name: "pump"}
	Float   = &Primitive{Name: "affogato"}
	String  = &Primitive{Name: "roast"}
	Boolean = &Primitive{Name: "boolean"}
	None    = &Primitive{Name: "none"}
	Any     = &Primitive{Name: "any"}
)

// Intrinsics lists the intrinsic types in the order the root scope binds them
var Intrinsics = []*Primitive{Int, Float, String, Boolean, None, Any}

// ArrayType is [Base]
type ArrayType struct {
	Base Type
}

// OptionalType is Base?
type OptionalType struct {
	Base Type
}

// FunctionType is (Params...) -> Return
type FunctionType struct {
	Params []Type
	Return Type
}

// ClassType is a nominal type declared with order
type ClassType struct {
	Name    string
	Fields  []*Field
	Methods []*Method
}

// Field is a typed class field
type Field struct {
	Name string
	Type Type
}

// Method is a class method; its type excludes the receiver
type Method struct {
	Name string
	Type *FunctionType
}

func (*Primitive) typeNode()    {}
func (*ArrayType) typeNode()    {}
func (*OptionalType) typeNode() {}
func (*FunctionType) typeNode() {}
func (*ClassType) typeNode()    {}

func (t *Primitive) String() string    { return Describe(t) }
func (t *ArrayType) String() string    { return Describe(t) }
func (t *OptionalType) String() string { return Describe(t) }
func (t *FunctionType) String() string { return Describe(t) }
func (t *ClassType) String() string    { return Describe(t) }

// Field returns the field with the given name, or nil
func (c *ClassType) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Method returns the method with the given name, or nil
func (c *ClassType) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Constructor is the signature of calling the class itself: one parameter
// per field in declaration order, producing an instance.
func (c *ClassType) Constructor() *FunctionType {
	params := make([]Type, len(c.Fields))
	for i, f := range c.Fields {
		params[i] = f.Type
	}
	return &FunctionType{Params: params, Return: c}
}

// Equivalent reports whether two types are the same type. Primitives and
// classes compare by identity; composite types compare structurally.
func Equivalent(t1, t2 Type) bool {
	if t1 == t2 {
		return true
	}
	switch a := t1.(type) {
	case *ArrayType:
		b, ok := t2.(*ArrayType)
		return ok && Equivalent(a.Base, b.Base)
	case *OptionalType:
		b, ok := t2.(*OptionalType)
		return ok && Equivalent(a.Base, b.Base)
	case *FunctionType:
		b, ok := t2.(*FunctionType)
		if !ok || len(a.Params) != len(b.Params) || !Equivalent(a.Return, b.Return) {
			return false
		}
		for i := range a.Params {
			if !Equivalent(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Assignable reports whether a value of type from may be stored where a
// value of type to is expected. Function types are covariant in their
// return type and contravariant in their parameters.
func Assignable(from, to Type) bool {
	if to == Any || Equivalent(from, to) {
		return true
	}
	f, ok := from.(*FunctionType)
	if !ok {
		return false
	}
	g, ok := to.(*FunctionType)
	if !ok || len(f.Params) != len(g.Params) || !Assignable(f.Return, g.Return) {
		return false
	}
	for i := range g.Params {
		if !Assignable(g.Params[i], f.Params[i]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether t is pump or affogato
func IsNumeric(t Type) bool {
	return t == Int || t == Float
}

// Describe renders a type the way it is written in Peak source. An optional
// function type is parenthesized so it cannot be read as a function
// returning an optional.
func Describe(t Type) string {
	switch t := t.(type) {
	case *Primitive:
		return t.Name
	case *ArrayType:
		return "[" + Describe(t.Base) + "]"
	case *OptionalType:
		if _, ok := t.Base.(*FunctionType); ok {
			return "(" + Describe(t.Base) + ")?"
		}
		return Describe(t.Base) + "?"
	case *FunctionType:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = Describe(p)
		}
		return "(" + strings.Join(params, ",") + ")->" + Describe(t.Return)
	case *ClassType:
		return t.Name
	default:
		return "<untyped>"
	}
}
