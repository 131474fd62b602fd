// Package backend defines the output stages a checked Peak program can be
// rendered to.
package backend

import "github.com/lhaig/peak/internal/ir"

// Backend is the interface that all IR renderers implement.
type Backend interface {
	// Name returns the backend name (e.g., "js", "ir")
	Name() string
	// Extension is the file extension for written output, including the dot.
	Extension() string
	// Generate renders an analyzed program.
	Generate(prog *ir.Program) string
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, bool) {
	switch name {
	case "js":
		return &JSBackend{}, true
	case "ir":
		return &IRBackend{}, true
	default:
		return nil, false
	}
}
