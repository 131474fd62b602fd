package scope

import (
	"errors"
	"testing"

	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootBindings(t *testing.T) {
	c := New()
	for _, name := range []string{"pump", "affogato", "roast", "boolean", "none", "any"} {
		e, ok := c.Lookup(name)
		require.True(t, ok, name)
		tn, isType := e.(*ir.TypeName)
		require.True(t, isType, name)
		assert.Equal(t, name, types.Describe(tn.Type))
	}

	e, ok := c.Lookup("π")
	require.True(t, ok)
	assert.True(t, e.(*ir.Variable).ReadOnly)

	e, ok = c.Lookup("hypot")
	require.True(t, ok)
	fn := e.(*ir.Function)
	assert.True(t, fn.Builtin)
	assert.Equal(t, "(affogato,affogato)->affogato", types.Describe(fn.Type))

	e, _ = c.Lookup("codepoints")
	assert.Equal(t, "(roast)->[pump]", types.Describe(e.(*ir.Function).Type))

	_, ok = c.Lookup("nothing")
	assert.False(t, ok)
}

func TestChainsDoNotShareState(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("x", &ir.Variable{Name: "x", Type: types.Int}))
	b := New()
	_, ok := b.Lookup("x")
	assert.False(t, ok)

	sqrtA, _ := a.Lookup("sqrt")
	sqrtB, _ := b.Lookup("sqrt")
	assert.False(t, sqrtA == sqrtB, "each chain builds its own built-ins")
}

func TestAddDuplicate(t *testing.T) {
	c := New()
	x := &ir.Variable{Name: "x", Type: types.Int}
	require.NoError(t, c.Add("x", x))

	err := c.Add("x", &ir.Variable{Name: "x", Type: types.String})
	require.Error(t, err)
	assert.Equal(t, "Identifier x already declared", err.Error())
	var dup *DuplicateError
	assert.True(t, errors.As(err, &dup))

	got, _ := c.Lookup("x")
	assert.Same(t, x, got)
}

func TestShadowing(t *testing.T) {
	c := New()
	outer := &ir.Variable{Name: "x", Type: types.Int}
	inner := &ir.Variable{Name: "x", Type: types.Boolean}
	require.NoError(t, c.Add("x", outer))

	c.Push(Overrides{})
	require.NoError(t, c.Add("x", inner))
	got, _ := c.Lookup("x")
	assert.Same(t, inner, got)
	c.Pop()

	got, _ = c.Lookup("x")
	assert.Same(t, outer, got)

	// Built-ins live in the root, so the program scope may shadow them.
	assert.NoError(t, c.Add("sqrt", &ir.Variable{Name: "sqrt", Type: types.Int}))
}

func TestLookupLocal(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("y", &ir.Variable{Name: "y", Type: types.Int}))
	c.Push(Overrides{})
	_, ok := c.LookupLocal("y")
	assert.False(t, ok)
	_, ok = c.Lookup("y")
	assert.True(t, ok)
}

func TestContextFlags(t *testing.T) {
	c := New()
	assert.False(t, c.InLoop())
	assert.Nil(t, c.Function())
	assert.Equal(t, 1, c.Depth())

	c.Push(Loop())
	assert.True(t, c.InLoop())

	// A plain block inherits the loop flag.
	c.Push(Overrides{})
	assert.True(t, c.InLoop())
	assert.Equal(t, 3, c.Depth())

	sig := &types.FunctionType{Return: types.None}
	c.Push(Function(sig))
	assert.False(t, c.InLoop(), "function bodies reset the loop flag")
	assert.Same(t, sig, c.Function())

	c.Push(Loop())
	assert.True(t, c.InLoop())
	assert.Same(t, sig, c.Function(), "loops keep the enclosing function")

	c.Pop()
	c.Pop()
	assert.True(t, c.InLoop())
	assert.Nil(t, c.Function())
}

func TestMethodOverrides(t *testing.T) {
	car := &types.ClassType{Name: "Car"}
	sig := &types.FunctionType{Return: types.Int}
	c := New()
	c.Push(Method(car, sig))
	assert.Same(t, car, c.Class())
	assert.Same(t, sig, c.Function())
	c.Push(Loop())
	assert.Same(t, car, c.Class(), "blocks inside a method keep the class")

	inner := &types.FunctionType{Return: types.Int}
	c.Push(Function(inner))
	assert.Nil(t, c.Class(), "a function nested in a method has no shot")
	assert.Same(t, inner, c.Function())

	c.Pop()
	c.Pop()
	assert.Same(t, car, c.Class())
	c.Pop()
	assert.Nil(t, c.Class())
}

func TestPopProgramScopePanics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Pop() })
}
