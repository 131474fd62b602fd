package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lhaig/peak/internal/compiler"
	"github.com/lhaig/peak/internal/config"
	"github.com/lhaig/peak/internal/formatter"
	"github.com/lhaig/peak/internal/linter"
	"github.com/lhaig/peak/internal/parser"
)

const usage = `peakc - The Peak language compiler

Usage:
  peakc build [options] [file.peak]   Compile to JavaScript (or another stage)
  peakc check <file.peak>             Parse and type-check only
  peakc lint <file.peak>              Run lint checks for style/best practices
  peakc fmt [-w] <file.peak>          Print canonical source (-w rewrites the file)

Build options:
  -o path        Output file (default: input name with the stage's extension)
  -emit stage    parsed, analyzed, optimized or js (default js)
  -no-opt        Skip the optimizer
  -validate      Check the analyzed tree for structural problems
  -verbose       Trace each pipeline stage on stderr

Without a file argument, build reads peak.yml from the working directory.
Command-line options override the manifest.

Examples:
  peakc build hello.peak              Build hello.peak -> hello.js
  peakc build -emit optimized a.peak  Write the optimized tree to a.ir
  peakc check hello.peak              Check for errors without building
  peakc lint hello.peak               Lint for style/best practice issues
  peakc fmt -w hello.peak             Reformat hello.peak in place
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "build":
		err = handleBuild(os.Args[2:])
	case "check":
		err = handleCheck(os.Args[2:])
	case "lint":
		err = handleLint(os.Args[2:])
	case "fmt":
		err = handleFmt(os.Args[2:])
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

// stageFlag parses -emit values as they are set.
type stageFlag struct {
	stage *compiler.Stage
}

func (f stageFlag) String() string {
	if f.stage == nil {
		return ""
	}
	return string(*f.stage)
}

func (f stageFlag) Set(s string) error {
	st, err := compiler.ParseStage(s)
	if err != nil {
		return err
	}
	*f.stage = st
	return nil
}

func handleBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	outPath := fs.String("o", "", "output file")
	stage := compiler.StageJS
	fs.Var(stageFlag{&stage}, "emit", "stage to emit: parsed, analyzed, optimized or js")
	noOpt := fs.Bool("no-opt", false, "skip the optimizer")
	validate := fs.Bool("validate", false, "validate the analyzed tree")
	verbose := fs.Bool("verbose", false, "trace pipeline stages")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	opts := compiler.DefaultOptions()
	var filePath, output string

	if fs.NArg() == 1 {
		filePath = fs.Arg(0)
	} else {
		m, err := config.Load(config.FileName)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no input file specified and no %s found", config.FileName)
			}
			return err
		}
		if m.Entry == "" {
			return fmt.Errorf("%s does not name an entry file", config.FileName)
		}
		filePath = m.EntryPath()
		opts = m.Options()
		if m.Output != "" {
			output = m.OutputPath()
		}
	}

	// Flags given explicitly win over the manifest.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			output = *outPath
		case "emit":
			opts.Emit = stage
		case "no-opt":
			opts.Optimize = !*noOpt
		case "validate":
			opts.ValidateIR = *validate
		}
	})
	if output == "" {
		output = compiler.OutputPath(filePath, opts.Emit)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "peakc: ", log.Lmsgprefix)
	}
	opts.Logger = logger

	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	logger.Printf("compiling %s (emit %s, optimize %t)", filePath, opts.Emit, opts.Optimize)

	if err := compiler.EmitFile(string(source), opts, output); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

func handleCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no input file specified")
	}

	filePath := fs.Arg(0)
	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if err := compiler.Check(string(source)); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	fmt.Println("No errors found.")
	return nil
}

func handleLint(args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no input file specified")
	}

	filePath := fs.Arg(0)
	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	p := parser.New(string(source))
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		fmt.Fprintln(os.Stderr, p.Diagnostics().Format(filePath))
		return errors.New("lint aborted: syntax errors")
	}

	diag := linter.Lint(prog)

	if diag.Count() == 0 {
		fmt.Println("No lint warnings.")
		return nil
	}

	fmt.Print(diag.Format(filePath))
	fmt.Println()
	fmt.Printf("%d warning(s) found.\n", diag.Count())
	return nil
}

func handleFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result to the source file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no input file specified")
	}

	filePath := fs.Arg(0)
	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	p := parser.New(string(source))
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		fmt.Fprintln(os.Stderr, p.Diagnostics().Format(filePath))
		return errors.New("fmt aborted: syntax errors")
	}

	formatted := formatter.Format(prog)
	if !*write {
		fmt.Print(formatted)
		return nil
	}
	if formatted == string(source) {
		return nil
	}
	if err := os.WriteFile(filePath, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	fmt.Printf("Formatted %s\n", filePath)
	return nil
}
