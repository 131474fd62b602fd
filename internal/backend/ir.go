package backend

import "github.com/lhaig/peak/internal/ir"

// IRBackend dumps the analyzed tree, before or after optimization.
type IRBackend struct{}

func (b *IRBackend) Name() string {
	return "ir"
}

func (b *IRBackend) Extension() string {
	return ".ir"
}

// Generate renders prog with the IR printer.
func (b *IRBackend) Generate(prog *ir.Program) string {
	return ir.Print(prog)
}
