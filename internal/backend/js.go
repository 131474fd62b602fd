package backend

import (
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/jsgen"
)

// JSBackend wraps jsgen as a Backend implementation.
type JSBackend struct{}

// Name returns the backend name.
func (b *JSBackend) Name() string {
	return "js"
}

func (b *JSBackend) Extension() string {
	return ".js"
}

// Generate produces JavaScript source code from an analyzed program.
func (b *JSBackend) Generate(prog *ir.Program) string {
	return jsgen.Generate(prog)
}
