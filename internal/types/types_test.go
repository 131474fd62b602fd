package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fn(ret Type, params ...Type) *FunctionType {
	return &FunctionType{Params: params, Return: ret}
}

func TestEquivalent(t *testing.T) {
	car := &ClassType{Name: "Car"}
	otherCar := &ClassType{Name: "Car"}

	tests := []struct {
		name     string
		t1, t2   Type
		expected bool
	}{
		{"same primitive", Int, Int, true},
		{"different primitives", Int, Float, false},
		{"independent arrays", &ArrayType{Base: Int}, &ArrayType{Base: Int}, true},
		{"arrays of different bases", &ArrayType{Base: Int}, &ArrayType{Base: String}, false},
		{"nested arrays", &ArrayType{Base: &ArrayType{Base: Int}}, &ArrayType{Base: &ArrayType{Base: Int}}, true},
		{"optionals", &OptionalType{Base: String}, &OptionalType{Base: String}, true},
		{"optional vs base", &OptionalType{Base: String}, String, false},
		{"array vs optional", &ArrayType{Base: Int}, &OptionalType{Base: Int}, false},
		{"functions", fn(None, Int, Boolean), fn(None, Int, Boolean), true},
		{"function arity", fn(None, Int), fn(None, Int, Int), false},
		{"function return", fn(None, Int), fn(Int, Int), false},
		{"function param", fn(None, Int), fn(None, Float), false},
		{"class identity", car, car, true},
		{"classes are nominal", car, otherCar, false},
		{"any is not everything", Int, Any, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equivalent(tt.t1, tt.t2))
			assert.Equal(t, tt.expected, Equivalent(tt.t2, tt.t1), "equivalence is symmetric")
		})
	}
}

func TestEquivalentIsReflexive(t *testing.T) {
	all := []Type{
		Int, Float, String, Boolean, None, Any,
		&ArrayType{Base: Int},
		&OptionalType{Base: &ArrayType{Base: Boolean}},
		fn(Int, String, fn(None, Int)),
		&ClassType{Name: "Car"},
	}
	for _, typ := range all {
		assert.True(t, Equivalent(typ, typ), Describe(typ))
		assert.True(t, Assignable(typ, Any), "%s should be assignable to any", Describe(typ))
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		name     string
		from, to Type
		expected bool
	}{
		{"same type", Int, Int, true},
		{"anything to any", &ArrayType{Base: Int}, Any, true},
		{"any to int", Any, Int, false},
		{"int to float", Int, Float, false},
		{"identical functions", fn(Int, Int), fn(Int, Int), true},
		{"covariant return", fn(Int, Int), fn(Any, Int), true},
		{"return not contravariant", fn(Any, Int), fn(Int, Int), false},
		{"contravariant params", fn(None, Any), fn(None, Int), true},
		{"narrower param not assignable", fn(None, Int), fn(None, Any), false},
		{"arity must match", fn(None, Int), fn(None), false},
		{"function to non-function", fn(None), Int, false},
		{"mismatched void return", fn(Int, Boolean), fn(None, Boolean), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Assignable(tt.from, tt.to))
		})
	}
}

func TestDescribe(t *testing.T) {
	car := &ClassType{Name: "Car"}
	tests := []struct {
		typ      Type
		expected string
	}{
		{Int, "pump"},
		{Float, "affogato"},
		{String, "roast"},
		{Boolean, "boolean"},
		{None, "none"},
		{Any, "any"},
		{&ArrayType{Base: Int}, "[pump]"},
		{&OptionalType{Base: Int}, "pump?"},
		{&ArrayType{Base: &OptionalType{Base: Int}}, "[pump?]"},
		{fn(None, Int, Boolean), "(pump,boolean)->none"},
		{fn(Int, fn(Boolean)), "(()->boolean)->pump"},
		{&OptionalType{Base: fn(Int, Int)}, "((pump)->pump)?"},
		{fn(&OptionalType{Base: Int}, Int), "(pump)->pump?"},
		{&ArrayType{Base: fn(None)}, "[()->none]"},
		{car, "Car"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.typ))
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
	assert.Equal(t, "<untyped>", Describe(nil))
}

func TestClassMembers(t *testing.T) {
	year := &Field{Name: "year", Type: Int}
	maker := &Field{Name: "make", Type: String}
	age := &Method{Name: "age", Type: fn(Int)}
	car := &ClassType{Name: "Car", Fields: []*Field{maker, year}, Methods: []*Method{age}}

	assert.Same(t, year, car.Field("year"))
	assert.Nil(t, car.Field("speed"))
	assert.Same(t, age, car.Method("age"))
	assert.Nil(t, car.Method("year"))

	ctor := car.Constructor()
	assert.Equal(t, "(roast,pump)->Car", Describe(ctor))
	assert.Same(t, car, ctor.Return)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(Int))
	assert.True(t, IsNumeric(Float))
	assert.False(t, IsNumeric(String))
	assert.False(t, IsNumeric(&ArrayType{Base: Int}))
}
