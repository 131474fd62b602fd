package scope

import (
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/types"
)

func builtin(name string, ret types.Type, params ...types.Type) *ir.Function {
	return &ir.Function{
		Name:    name,
		Type:    &types.FunctionType{Params: params, Return: ret},
		Builtin: true,
	}
}

// Builtins returns a fresh binding table for the root scope: the intrinsic
// type names, the constant π and the built-in functions.
func Builtins() map[string]ir.Entity {
	locals := make(map[string]ir.Entity)
	for _, t := range types.Intrinsics {
		locals[t.Name] = &ir.TypeName{Name: t.Name, Type: t}
	}

	codepoints := &types.ArrayType{Base: types.Int}
	entities := []ir.Entity{
		&ir.Variable{Name: "π", ReadOnly: true, Type: types.Float, Builtin: true},
		builtin("sqrt", types.Float, types.Float),
		builtin("sin", types.Float, types.Float),
		builtin("cos", types.Float, types.Float),
		builtin("exp", types.Float, types.Float),
		builtin("ln", types.Float, types.Float),
		builtin("hypot", types.Float, types.Float, types.Float),
		builtin("bytes", codepoints, types.String),
		builtin("codepoints", codepoints, types.String),
	}
	for _, e := range entities {
		locals[e.EntityName()] = e
	}
	return locals
}
