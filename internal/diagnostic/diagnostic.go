// Package diagnostic collects positioned compiler messages. The parser and
// linter accumulate Diagnostics; the analyzer stops at one SemanticError.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

// Severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one message anchored to a source position.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
	Hint     string
}

func (d Diagnostic) String() string {
	return Locator(d.Line, d.Column) + d.Message
}

// Diagnostics is an ordered collection of messages.
type Diagnostics struct {
	items []Diagnostic
}

func New() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) add(sev Severity, line, col int, msg, hint string) {
	d.items = append(d.items, Diagnostic{
		Severity: sev,
		Message:  msg,
		Line:     line,
		Column:   col,
		Hint:     hint,
	})
}

func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.add(Error, line, col, fmt.Sprintf(format, args...), "")
}

func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.add(Warning, line, col, fmt.Sprintf(format, args...), "")
}

// WarningWithHint records a warning followed by a suggested fix.
func (d *Diagnostics) WarningWithHint(line, col int, msg, hint string) {
	d.add(Warning, line, col, msg, hint)
}

func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns the error-level diagnostics in the order they were found.
func (d *Diagnostics) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, item := range d.items {
		if item.Severity == Error {
			errs = append(errs, item)
		}
	}
	return errs
}

func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

func (d *Diagnostics) Count() int {
	return len(d.items)
}

func (d *Diagnostics) ErrorCount() int {
	return len(d.Errors())
}

func (d *Diagnostics) WarningCount() int {
	return len(d.items) - d.ErrorCount()
}

// Sorted returns a copy ordered by source position. Diagnostics found at the
// same position keep the order they were recorded in.
func (d *Diagnostics) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Format renders every diagnostic in source order, one per line:
//
//	main.peak: Line 3, col 10: error: expected RPAREN, got EOF
//	main.peak: Line 5, col 1: warning: let y is never reassigned
//	  hint: declare it with const
func (d *Diagnostics) Format(filename string) string {
	lines := make([]string, 0, len(d.items))
	for _, item := range d.Sorted() {
		line := fmt.Sprintf("%s: %s%s: %s", filename, Locator(item.Line, item.Column), item.Severity, item.Message)
		if item.Hint != "" {
			line += "\n  hint: " + item.Hint
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
