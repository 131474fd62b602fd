// Package scope implements the analyzer's scope chain as an arena of scope
// records. Each record names its parent by index; lookup walks the indices
// toward the root. A Chain belongs to exactly one compilation.
package scope

import (
	"fmt"

	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/types"
)

const noParent = -1

// record is one scope in the arena
type record struct {
	parent   int
	locals   map[string]ir.Entity
	inLoop   bool
	function *types.FunctionType
	class    *types.ClassType
}

// Chain is the stack of scopes active during analysis. Index 0 is the root
// scope holding the built-in library; it is never written after New returns.
type Chain struct {
	records []record
	current int
}

// DuplicateError is returned by Add when the name is already bound in the
// current scope.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Identifier %s already declared", e.Name)
}

// Overrides adjusts the context flags of a child scope. Nil fields are
// inherited from the enclosing scope. ResetClass drops the enclosing class
// before Class is applied.
type Overrides struct {
	InLoop     *bool
	Function   *types.FunctionType
	Class      *types.ClassType
	ResetClass bool
}

// Loop returns the overrides for a loop body.
func Loop() Overrides {
	in := true
	return Overrides{InLoop: &in}
}

// Function returns the overrides for a function body: the loop flag is reset
// so tamp cannot escape the function, and shot is unbound even when the
// function is nested in a method.
func Function(sig *types.FunctionType) Overrides {
	in := false
	return Overrides{InLoop: &in, Function: sig, ResetClass: true}
}

// Method is Function with the receiver class made available to shot.
func Method(class *types.ClassType, sig *types.FunctionType) Overrides {
	o := Function(sig)
	o.Class = class
	return o
}

// New creates a chain whose root holds the built-in library, with one empty
// program scope pushed on top of it.
func New() *Chain {
	c := &Chain{}
	c.records = append(c.records, record{parent: noParent, locals: Builtins()})
	c.Push(Overrides{})
	return c
}

// Add binds name in the current scope. Shadowing a binding of an enclosing
// scope is allowed.
func (c *Chain) Add(name string, entity ir.Entity) error {
	locals := c.records[c.current].locals
	if _, exists := locals[name]; exists {
		return &DuplicateError{Name: name}
	}
	locals[name] = entity
	return nil
}

// Lookup finds the innermost binding of name.
func (c *Chain) Lookup(name string) (ir.Entity, bool) {
	for i := c.current; i != noParent; i = c.records[i].parent {
		if e, ok := c.records[i].locals[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// LookupLocal finds name in the current scope only.
func (c *Chain) LookupLocal(name string) (ir.Entity, bool) {
	e, ok := c.records[c.current].locals[name]
	return e, ok
}

// Push enters a new child of the current scope.
func (c *Chain) Push(o Overrides) {
	parent := c.records[c.current]
	r := record{
		parent:   c.current,
		locals:   make(map[string]ir.Entity),
		inLoop:   parent.inLoop,
		function: parent.function,
		class:    parent.class,
	}
	if o.InLoop != nil {
		r.inLoop = *o.InLoop
	}
	if o.Function != nil {
		r.function = o.Function
	}
	if o.ResetClass {
		r.class = nil
	}
	if o.Class != nil {
		r.class = o.Class
	}
	c.records = append(c.records, r)
	c.current = len(c.records) - 1
}

// Pop leaves the current scope. Popping the program scope is a bug in the
// caller and panics.
func (c *Chain) Pop() {
	parent := c.records[c.current].parent
	if parent <= 0 {
		panic("scope: pop of program scope")
	}
	c.current = parent
}

// InLoop reports whether tamp is legal in the current scope.
func (c *Chain) InLoop() bool { return c.records[c.current].inLoop }

// Function returns the signature of the enclosing function, or nil at the top level.
func (c *Chain) Function() *types.FunctionType { return c.records[c.current].function }

// Class returns the class whose method body is being analyzed, or nil.
func (c *Chain) Class() *types.ClassType { return c.records[c.current].class }

// Depth is the number of scopes between the current one and the root.
func (c *Chain) Depth() int {
	d := 0
	for i := c.current; c.records[i].parent != noParent; i = c.records[i].parent {
		d++
	}
	return d
}
