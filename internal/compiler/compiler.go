// Package compiler drives the Peak pipeline: parse, analyze, optimize and
// render one of the pipeline stages.
package compiler

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/lhaig/peak/internal/analyzer"
	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/optimizer"
	"github.com/lhaig/peak/internal/parser"
)

// Options controls a compilation.
type Options struct {
	Emit       Stage
	Optimize   bool
	ValidateIR bool
	// Logger receives stage timings; nil disables tracing.
	Logger *log.Logger
}

// DefaultOptions emits optimized JavaScript.
func DefaultOptions() Options {
	return Options{Emit: StageJS, Optimize: true}
}

// Result holds the output of a compilation
type Result struct {
	Stage   Stage
	Output  string
	Tree    *ast.Program
	Program *ir.Program
}

// InvalidIRError reports structural problems found in an analyzed program.
type InvalidIRError struct {
	Issues []string
}

func (e *InvalidIRError) Error() string {
	return "invalid IR:\n  " + strings.Join(e.Issues, "\n  ")
}

// Compile runs the pipeline up to opts.Emit and renders that stage.
// The first syntax or semantic error stops compilation.
func Compile(source string, opts Options) (*Result, error) {
	if opts.Emit == "" {
		opts.Emit = StageJS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	res := &Result{Stage: opts.Emit}

	start := time.Now()
	tree, err := parse(source)
	if err != nil {
		return nil, err
	}
	res.Tree = tree
	logger.Printf("parsed in %s", time.Since(start))
	if opts.Emit == StageParsed {
		res.Output = ast.Print(tree)
		return res, nil
	}

	start = time.Now()
	prog, err := analyzer.Analyze(tree)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	logger.Printf("analyzed in %s", time.Since(start))

	if opts.Emit == StageOptimized || (opts.Emit == StageJS && opts.Optimize) {
		start = time.Now()
		prog = optimizer.Optimize(prog)
		logger.Printf("optimized in %s", time.Since(start))
	}

	if opts.ValidateIR {
		if issues := ir.Validate(prog); len(issues) > 0 {
			return nil, &InvalidIRError{Issues: issues}
		}
		logger.Printf("validated IR")
	}
	res.Program = prog

	be, err := getBackend(opts.Emit)
	if err != nil {
		return nil, err
	}
	start = time.Now()
	res.Output = be.Generate(prog)
	logger.Printf("generated %s output in %s", be.Name(), time.Since(start))
	return res, nil
}

// Check runs parse + analyze only (no codegen).
func Check(source string) error {
	tree, err := parse(source)
	if err != nil {
		return err
	}
	if _, err := analyzer.Analyze(tree); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return nil
}

func parse(source string) (*ast.Program, error) {
	p := parser.New(source)
	tree := p.Parse()
	if err := p.Diagnostics().First(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return tree, nil
}
