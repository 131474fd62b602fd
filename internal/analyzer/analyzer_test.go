package analyzer

import (
	"errors"
	"testing"

	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/parser"
	"github.com/lhaig/peak/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) (*ir.Program, error) {
	t.Helper()
	p := parser.New(src)
	prog := p.Parse()
	require.False(t, p.Diagnostics().HasErrors(), p.Diagnostics().Format("test.peak"))
	return Analyze(prog)
}

func TestAnalyzeAcceptsPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"variable declarations", `const x = 1 let y = "false"`},
		{"increment and decrement", "let x = 10 x-- x++"},
		{"initialize with empty array", "let a = [pump]()"},
		{"assign arrays", "let a = [pump]() let b=[1] a=b b=a"},
		{"assign to array element", "const a = [1,2,3] a[1]=100"},
		{"return", "item f() -> pump { serve 0 }"},
		{"return in nested if", "item f() {brew true {serve}}"},
		{"break in nested if", "blend false {brew true {tamp}}"},
		{"long if", "brew true {remake 1} pull { remake 3}"},
		{"elsif", "brew true {remake 1} pull brew true {remake 1} pull {remake 3}"},
		{"for over array", "ristretto x espresso [1, 2] { remake x }"},
		{"conditionals with ints", "remake true ? 8 : 5"},
		{"conditionals with floats", "remake 1<2 ? 8.0 : -5.22"},
		{"conditionals with strings", `remake 1<2 ? "x" : "y"`},
		{"or", "remake true or 1<2 or false or not true"},
		{"and", "remake true and 1<2 and false and not true"},
		{"relations", `remake 1<=2 and "x">"y" and 3.5<1.2`},
		{"ok to == arrays", "remake [1]==[5,8]"},
		{"ok to != arrays", "remake [1]!=[5,8]"},
		{"string concatenation", `remake "a" + "b"`},
		{"arithmetic", "let x=1 remake 2*3+5**-3/2-5%8"},
		{"assigned functions", "item f() {}\nlet g = f g = f"},
		{"call of assigned functions", "item f(x: pump) {}\nlet g=f g(1)"},
		{"call of assigned function in expression", `item f(x: pump, y: boolean) -> pump {}
			let g = f
			remake g(1, true)
			f = g // type check here`},
		{"function return types", "item square(x: pump) -> pump { serve x * x }"},
		{"array parameters", "item f(x: [pump?]) {}"},
		{"optional parameters", "item f(x: [pump], y: roast?) {}"},
		{"outer variable", "let x=1 blend false {remake 1}"},
		{"shadowing in nested scope", "let x = 1 blend false { let x = true }"},
		{"recursion", "item fact(n: pump) -> pump { serve n <= 1 ? 1 : n * fact(n - 1) }"},
		{"built-ins", `remake sqrt(π) remake hypot(3.0, 4.0) ristretto c espresso codepoints("hé") { remake c }`},
		{"shadowing a built-in", "let sqrt = 2"},
		{"function parameters", `item apply(f: (pump)->pump, x: pump) -> pump { serve f(x) }
			item twice(n: pump) -> pump { serve 2*n }
			remake apply(twice, 3)`},
		{"contravariant argument", `item apply(f: (pump)->pump) -> pump { serve f(1) }
			item g(x: any) -> pump { serve 1 }
			remake apply(g)`},
		{"classes", `order Car {
				make: roast
				year: pump
				item age(now: pump) -> pump { serve now - shot.year }
				item older(now: pump) -> boolean { serve shot.age(now) > 10 }
			}
			let c = Car("vw", 1990)
			remake c.age(2024)
			c.year = 2000
			c.year++`},
		{"self-referential class", `order Node { value: pump next: Node? }`},
		{"deep array", "let x = [[[1]]] remake x[0][0][0] + 2"},
		{"void call statement", "item hello() { remake \"hi\" } hello()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyze(t, tt.source)
			require.NoError(t, err)
			require.NotNil(t, prog)
			assert.Empty(t, ir.Validate(prog))
		})
	}
}

func TestAnalyzeRejectsPrograms(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    diagnostic.Kind
		message string
	}{
		{"non-int increment", "let x=false x++", diagnostic.TypeMismatch, "Expected an integer"},
		{"undeclared id", "remake x", diagnostic.UnresolvedIdentifier, "Identifier x not declared"},
		{"redeclared id", "let x = 1 let x = 1", diagnostic.DuplicateDeclaration, "Identifier x already declared"},
		{"assign to const", "const x = 1 x = 2", diagnostic.TypeMismatch, "Cannot assign to constant x"},
		{"const checked before type", "const x = 1 x = true", diagnostic.TypeMismatch, "Cannot assign to constant x"},
		{"bump const", "const x = 1 x++", diagnostic.TypeMismatch, "Cannot assign to constant x"},
		{"assign bad type", "let x=1 x=true", diagnostic.TypeMismatch, "Cannot assign a boolean to a pump"},
		{"assign bad array type", "let x=1 x=[true]", diagnostic.TypeMismatch, "Cannot assign a [boolean] to a pump"},
		{"break outside loop", "tamp", diagnostic.InvalidControlFlow, "Break can only appear in a loop"},
		{"break inside function", "blend true {item f() {tamp}}", diagnostic.InvalidControlFlow, "Break can only appear in a loop"},
		{"return outside function", "serve", diagnostic.InvalidControlFlow, "Return can only appear in a function"},
		{"return value from void function", "item f() {serve 1}", diagnostic.InvalidControlFlow, "Cannot return a value"},
		{"return nothing from non-void", "item f() -> pump {serve}", diagnostic.InvalidControlFlow, "Something should be returned"},
		{"return type mismatch", "item f() -> pump {serve false}", diagnostic.TypeMismatch, "Cannot assign a boolean to a pump"},
		{"non-boolean short if test", "brew 1 {}", diagnostic.TypeMismatch, "Expected a boolean"},
		{"non-boolean if test", "brew 1 {} pull {}", diagnostic.TypeMismatch, "Expected a boolean"},
		{"non-boolean while test", "blend 1 {}", diagnostic.TypeMismatch, "Expected a boolean"},
		{"non-array in for", "ristretto i espresso 100 {}", diagnostic.NotIndexable, "Expected an array"},
		{"non-boolean conditional test", "remake 1?2:3", diagnostic.TypeMismatch, "Expected a boolean"},
		{"conditional branches differ", `remake true ? 1 : "x"`, diagnostic.TypeMismatch, "Operands do not have the same type"},
		{"bad types for or", "remake 1 or true", diagnostic.TypeMismatch, "Expected a boolean"},
		{"bad types for and", "remake true and 1", diagnostic.TypeMismatch, "Expected a boolean"},
		{"bad types for +", "remake false+1", diagnostic.TypeMismatch, "Expected a number or string"},
		{"bad types for -", "remake false-1", diagnostic.TypeMismatch, "Expected a number"},
		{"bad types for *", "remake false*1", diagnostic.TypeMismatch, "Expected a number"},
		{"bad types for /", "remake false/1", diagnostic.TypeMismatch, "Expected a number"},
		{"bad types for **", "remake false**1", diagnostic.TypeMismatch, "Expected a number"},
		{"bad types for <", "remake false<1", diagnostic.TypeMismatch, "Expected a number or string"},
		{"bad types for <=", "remake false<=1", diagnostic.TypeMismatch, "Expected a number or string"},
		{"bad types for >", "remake false>1", diagnostic.TypeMismatch, "Expected a number or string"},
		{"bad types for >=", "remake false>=1", diagnostic.TypeMismatch, "Expected a number or string"},
		{"mixed numeric operands", "remake 1 + 2.0", diagnostic.TypeMismatch, "Operands do not have the same type"},
		{"bad types for ==", "remake 2==2.0", diagnostic.TypeMismatch, "Operands do not have the same type"},
		{"bad types for !=", "remake false!=1", diagnostic.TypeMismatch, "Operands do not have the same type"},
		{"arrays of different types", "remake [1]==[true]", diagnostic.TypeMismatch, "Operands do not have the same type"},
		{"bad types for negation", "remake -true", diagnostic.TypeMismatch, "Expected a number"},
		{"bad types for not", `remake not "hello"`, diagnostic.TypeMismatch, "Expected a boolean"},
		{"non-integer index", "let a=[1] remake a[false]", diagnostic.TypeMismatch, "Expected an integer"},
		{"subscript of non-array", "let a=1 remake a[0]", diagnostic.NotIndexable, "Expected an array"},
		{"diff type array elements", "remake [3,3.0]", diagnostic.TypeMismatch, "Not all elements have the same type"},
		{"untyped empty array", "remake []", diagnostic.TypeMismatch, "Empty arrays need a type"},
		{"call of uncallable", "let x = 1\nremake x()", diagnostic.NotCallable, "Call of non-function"},
		{"call of primitive type", "remake pump(1)", diagnostic.NotCallable, "Call of non-function"},
		{"too many args", "item f(x: pump) {}\nf(1,2)", diagnostic.ArityMismatch, "1 argument(s) required but 2 passed"},
		{"too few args", "item f(x: pump) {}\nf()", diagnostic.ArityMismatch, "1 argument(s) required but 0 passed"},
		{"parameter type mismatch", "item f(x: pump) {}\nf(false)", diagnostic.TypeMismatch, "Cannot assign a boolean to a pump"},
		{"function type mismatch", `item f(x: pump, y: (boolean)->none) -> pump { serve 1 }
			item g(z: boolean) -> pump { serve 5 }
			f(2, g)`, diagnostic.TypeMismatch, "Cannot assign a (boolean)->pump to a (boolean)->none"},
		{"bad param type in function assign", "item f(x: pump) {} item g(y: affogato) {} f = g",
			diagnostic.TypeMismatch, "Cannot assign a (affogato)->none to a (pump)->none"},
		{"bad call to sin", "remake sin(true)", diagnostic.TypeMismatch, "Cannot assign a boolean to a affogato"},
		{"non-type in param", "let x=1 item f(y:x){}", diagnostic.NotAType, "Type expected"},
		{"non-type in return type", "let x=1 item f() -> x { serve 1 }", diagnostic.NotAType, "Type expected"},
		{"non-type in field type", "let x=1 order S { y: x }", diagnostic.NotAType, "Type expected"},
		{"undeclared type", "item f(y: Bogus) {}", diagnostic.UnresolvedIdentifier, "Identifier Bogus not declared"},
		{"empty array of non-array type", "let a = [pump]?()", diagnostic.NotAType, "Must be an array type"},
		{"type used as value", "let p = pump", diagnostic.TypeMismatch, "Expected a value, found type pump"},
		{"no such field", "order S { y: pump } let s = S(1) remake s.z", diagnostic.NoSuchMember, "No such field"},
		{"member of non-object", "let n = 1 remake n.x", diagnostic.TypeMismatch, "Expected an object, found pump"},
		{"constructor arity", "order S { y: pump } let s = S()", diagnostic.ArityMismatch, "1 argument(s) required but 0 passed"},
		{"constructor argument type", `order S { y: pump } let s = S("one")`, diagnostic.TypeMismatch, "Cannot assign a roast to a pump"},
		{"shot outside method", "remake shot", diagnostic.InvalidControlFlow, "Shot can only appear in a method"},
		{"shot in function nested in method",
			"order P { x: pump item get() -> pump { item inner() -> pump { serve shot.x } serve inner() } }",
			diagnostic.InvalidControlFlow, "Shot can only appear in a method"},
		{"duplicate field", "order S { y: pump y: roast }", diagnostic.DuplicateDeclaration, "Identifier y already declared"},
		{"duplicate parameter", "item f(x: pump, x: pump) {}", diagnostic.DuplicateDeclaration, "Identifier x already declared"},
		{"assign to loop variable", "ristretto i espresso [1] { i = 2 }", diagnostic.TypeMismatch, "Cannot assign to constant i"},
		{"assign to π", "π = 3.0", diagnostic.TypeMismatch, "Cannot assign to constant π"},
		{"assign to built-in", "sqrt = sin", diagnostic.TypeMismatch, "Cannot assign to constant sqrt"},
		{"assign to method", "order S { item m() {} } let s = S() s.m = s.m", diagnostic.TypeMismatch, "Cannot assign to method m"},
		{"assign to call", "item f() -> pump { serve 1 } f() = 2", diagnostic.TypeMismatch, "Cannot assign to this expression"},
		{"loop variable shares body scope", "ristretto i espresso [1] { let i = 2 }", diagnostic.DuplicateDeclaration, "Identifier i already declared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyze(t, tt.source)
			require.Error(t, err)
			assert.Nil(t, prog, "no partial IR on failure")
			assert.Contains(t, err.Error(), tt.message)

			var semErr *diagnostic.SemanticError
			require.True(t, errors.As(err, &semErr))
			assert.Equal(t, tt.kind, semErr.Kind)
		})
	}
}

func TestErrorLocations(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"let x = 1\nlet x = 1", "Line 2, col 5: Identifier x already declared"},
		{"item f(x: pump) {}\nf(1,2)", "Line 2, col 2: 1 argument(s) required but 2 passed"},
		{"remake 1\n  tamp", "Line 2, col 3: Break can only appear in a loop"},
	}
	for _, tt := range tests {
		_, err := analyze(t, tt.source)
		require.Error(t, err)
		assert.Equal(t, tt.expected, err.Error())
	}
}

func TestDeclarationsAreTyped(t *testing.T) {
	prog, err := analyze(t, `const x = 1 let y = "text"`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	x := prog.Statements[0].(*ir.VarDecl)
	assert.Equal(t, "x", x.Var.Name)
	assert.True(t, x.Var.ReadOnly)
	assert.Equal(t, types.Int, x.Var.Type)

	y := prog.Statements[1].(*ir.VarDecl)
	assert.False(t, y.Var.ReadOnly)
	assert.Equal(t, types.String, y.Var.Type)
	assert.Equal(t, "text", y.Init.(*ir.StringLit).Value)
}

func TestReferencesShareEntities(t *testing.T) {
	prog, err := analyze(t, "let x = 1 x = x item f(n: pump) -> pump { serve f(n) }")
	require.NoError(t, err)

	decl := prog.Statements[0].(*ir.VarDecl)
	assign := prog.Statements[1].(*ir.Assignment)
	assert.Same(t, decl.Var, assign.Target.(*ir.VarRef).Var)
	assert.True(t, ir.SameEntity(assign.Target, assign.Source))

	fn := prog.Statements[2].(*ir.FuncDecl)
	ret := fn.Body[0].(*ir.ReturnStmt)
	call := ret.Value.(*ir.CallExpr)
	assert.Same(t, fn.Fun, call.Callee.(*ir.FuncRef).Fun)
	assert.Same(t, fn.Params[0], call.Args[0].(*ir.VarRef).Var)
	assert.Equal(t, "(pump)->pump", types.Describe(fn.Fun.Type))
}

func TestIfChainShape(t *testing.T) {
	prog, err := analyze(t, "brew true {remake 1} pull brew false {remake 2} pull {remake 3} brew true {}")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	outer := prog.Statements[0].(*ir.IfStmt)
	require.Len(t, outer.Alternate, 1)
	inner := outer.Alternate[0].(*ir.IfStmt)
	assert.Len(t, inner.Alternate, 1)
	assert.IsType(t, &ir.ShortIfStmt{}, prog.Statements[1])
}

func TestForIterator(t *testing.T) {
	prog, err := analyze(t, `ristretto s espresso ["a", "b"] { remake s }`)
	require.NoError(t, err)
	loop := prog.Statements[0].(*ir.ForStmt)
	assert.True(t, loop.Iterator.ReadOnly)
	assert.Equal(t, types.String, loop.Iterator.Type)
	assert.Equal(t, "[roast]", types.Describe(loop.Collection.ExprType()))
	assert.Same(t, loop.Iterator, loop.Body[0].(*ir.PrintStmt).Value.(*ir.VarRef).Var)
}

func TestClassDeclaration(t *testing.T) {
	prog, err := analyze(t, `order Car {
		year: pump
		item age(now: pump) -> pump { serve now - shot.year }
	}
	let c = Car(1990)
	remake c.age(2024)`)
	require.NoError(t, err)

	decl := prog.Statements[0].(*ir.ClassDecl)
	class := decl.Class
	assert.Equal(t, "Car", class.Name)
	require.Len(t, class.Fields, 1)
	require.Len(t, decl.Methods, 1)
	assert.Equal(t, "(pump)->pump", types.Describe(decl.Methods[0].Method.Type))

	v := prog.Statements[1].(*ir.VarDecl)
	assert.Same(t, class, v.Var.Type)
	ctor := v.Init.(*ir.CallExpr).Callee.(*ir.ClassRef)
	assert.Equal(t, "(pump)->Car", types.Describe(ctor.Type))

	call := prog.Statements[2].(*ir.PrintStmt).Value.(*ir.CallExpr)
	member := call.Callee.(*ir.MemberExpr)
	assert.Same(t, class.Methods[0], member.Method)
	assert.Equal(t, types.Int, call.Type)

	body := decl.Methods[0].Body[0].(*ir.ReturnStmt).Value.(*ir.BinaryExpr)
	field := body.Right.(*ir.MemberExpr)
	assert.IsType(t, &ir.SelfExpr{}, field.Object)
	assert.Same(t, class.Fields[0], field.Field)
}

func TestBinaryResultTypes(t *testing.T) {
	tests := []struct {
		source   string
		expected types.Type
	}{
		{"remake 1 + 2", types.Int},
		{"remake 1.0 * 2.0", types.Float},
		{`remake "a" + "b"`, types.String},
		{"remake 1 < 2", types.Boolean},
		{"remake [1] == [2]", types.Boolean},
		{"remake -3.5", types.Float},
		{"remake not false", types.Boolean},
	}
	for _, tt := range tests {
		prog, err := analyze(t, tt.source)
		require.NoError(t, err, tt.source)
		value := prog.Statements[0].(*ir.PrintStmt).Value
		assert.Equal(t, tt.expected, value.ExprType(), tt.source)
	}
}

func TestAnalysesAreIndependent(t *testing.T) {
	_, err := analyze(t, "let x = 1")
	require.NoError(t, err)
	_, err = analyze(t, "let x = 1")
	assert.NoError(t, err, "a second compilation starts from a fresh root scope")
}
