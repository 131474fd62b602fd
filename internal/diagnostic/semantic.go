package diagnostic

import "fmt"

// Kind classifies a semantic error
type Kind int

const (
	UnresolvedIdentifier Kind = iota
	DuplicateDeclaration
	TypeMismatch
	ArityMismatch
	InvalidControlFlow
	NotCallable
	NotIndexable
	NotAType
	NoSuchMember
)

var kindNames = map[Kind]string{
	UnresolvedIdentifier: "UnresolvedIdentifier",
	DuplicateDeclaration: "DuplicateDeclaration",
	TypeMismatch:         "TypeMismatch",
	ArityMismatch:        "ArityMismatch",
	InvalidControlFlow:   "InvalidControlFlow",
	NotCallable:          "NotCallable",
	NotIndexable:         "NotIndexable",
	NotAType:             "NotAType",
	NoSuchMember:         "NoSuchMember",
}

// String returns the string representation of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// SemanticError is the single error a failed analysis produces.
type SemanticError struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

// Errorf builds a SemanticError at the given location
func Errorf(kind Kind, line, col int, format string, args ...interface{}) *SemanticError {
	return &SemanticError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
	}
}

// Error formats the error with its source locator prefix
func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s%s", Locator(e.Line, e.Column), e.Message)
}

// Locator renders the "Line L, col C: " prefix used by every compiler error
func Locator(line, col int) string {
	return fmt.Sprintf("Line %d, col %d: ", line, col)
}

// First returns the error-level diagnostic nearest the start of the source
// as an error, or nil.
func (d *Diagnostics) First() error {
	for _, item := range d.Sorted() {
		if item.Severity == Error {
			return &SyntaxError{Diagnostic: item, Count: d.ErrorCount()}
		}
	}
	return nil
}

// SyntaxError reports the first of the parser's errors
type SyntaxError struct {
	Diagnostic Diagnostic
	Count      int // total number of syntax errors found
}

func (e *SyntaxError) Error() string {
	return Locator(e.Diagnostic.Line, e.Diagnostic.Column) + e.Diagnostic.Message
}
