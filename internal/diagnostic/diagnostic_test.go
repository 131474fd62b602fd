package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsCounts(t *testing.T) {
	d := New()
	d.Errorf(1, 2, "expected %s, got %s", "RPAREN", "EOF")
	d.Warningf(3, 4, "unused parameter %s", "x")
	d.WarningWithHint(5, 1, "let never reassigned", "use const")

	assert.Equal(t, 3, d.Count())
	assert.Equal(t, 1, d.ErrorCount())
	assert.Equal(t, 2, d.WarningCount())
	assert.True(t, d.HasErrors())
	require.Len(t, d.Errors(), 1)
	assert.Equal(t, "expected RPAREN, got EOF", d.Errors()[0].Message)
	assert.Equal(t, "Line 1, col 2: expected RPAREN, got EOF", d.Errors()[0].String())
}

func TestDiagnosticsFormat(t *testing.T) {
	d := New()
	d.WarningWithHint(5, 1, "let y is never reassigned", "declare it with const")
	d.Errorf(1, 2, "bad token")

	expected := "main.peak: Line 1, col 2: error: bad token\n" +
		"main.peak: Line 5, col 1: warning: let y is never reassigned\n" +
		"  hint: declare it with const"
	assert.Equal(t, expected, d.Format("main.peak"))
	assert.Equal(t, "", New().Format("main.peak"))
}

func TestDiagnosticsSorted(t *testing.T) {
	d := New()
	d.Warningf(4, 1, "c")
	d.Warningf(2, 9, "b")
	d.Warningf(2, 3, "a")
	d.Errorf(2, 3, "a2")

	var got []string
	for _, item := range d.Sorted() {
		got = append(got, item.Message)
	}
	assert.Equal(t, []string{"a", "a2", "b", "c"}, got)
	assert.Equal(t, "c", d.All()[0].Message, "Sorted must not reorder the collection")
}

func TestDiagnosticsFirst(t *testing.T) {
	d := New()
	d.Warningf(1, 1, "just a warning")
	assert.NoError(t, d.First())

	d.Errorf(2, 3, "expected RBRACE, got EOF")
	d.Errorf(4, 1, "second")
	err := d.First()
	require.Error(t, err)
	assert.Equal(t, "Line 2, col 3: expected RBRACE, got EOF", err.Error())

	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 2, syn.Count)
}

func TestDiagnosticsFirstUsesSourceOrder(t *testing.T) {
	d := New()
	d.Errorf(7, 1, "later in the file")
	d.Warningf(1, 1, "a warning comes first")
	d.Errorf(3, 5, "earlier in the file")

	err := d.First()
	require.Error(t, err)
	assert.Equal(t, "Line 3, col 5: earlier in the file", err.Error())
}

func TestSemanticError(t *testing.T) {
	err := Errorf(ArityMismatch, 2, 2, "%d argument(s) required but %d passed", 1, 2)
	assert.Equal(t, "Line 2, col 2: 1 argument(s) required but 2 passed", err.Error())

	wrapped := fmt.Errorf("analyze: %w", err)
	var semErr *SemanticError
	require.True(t, errors.As(wrapped, &semErr))
	assert.Equal(t, ArityMismatch, semErr.Kind)
	assert.Equal(t, "ArityMismatch", semErr.Kind.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
