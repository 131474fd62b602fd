package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lhaig/peak/internal/backend"
)

// Stage names a point in the pipeline whose result can be emitted.
type Stage string

const (
	StageParsed    Stage = "parsed"
	StageAnalyzed  Stage = "analyzed"
	StageOptimized Stage = "optimized"
	StageJS        Stage = "js"
)

// Stages lists every emit stage in pipeline order.
var Stages = []Stage{StageParsed, StageAnalyzed, StageOptimized, StageJS}

// ParseStage validates a stage name
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q (want parsed, analyzed, optimized or js)", s)
}

// Extension returns the file extension for output of the given stage
func (s Stage) Extension() string {
	switch s {
	case StageParsed:
		return ".ast"
	case StageAnalyzed, StageOptimized:
		return ".ir"
	case StageJS:
		return ".js"
	default:
		return ""
	}
}

// getBackend returns the IR renderer for the given stage
func getBackend(stage Stage) (backend.Backend, error) {
	name := "ir"
	switch stage {
	case StageJS:
		name = "js"
	case StageAnalyzed, StageOptimized:
	default:
		return nil, fmt.Errorf("unknown stage: %s", stage)
	}
	be, ok := backend.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no backend for stage %s", stage)
	}
	return be, nil
}

// OutputPath derives the default output file for a source file.
func OutputPath(sourcePath string, stage Stage) string {
	return sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + stage.Extension()
}

// EmitFile compiles source and writes the requested stage to outPath.
func EmitFile(source string, opts Options, outPath string) error {
	res, err := Compile(source, opts)
	if err != nil {
		return err
	}

	outDir := filepath.Dir(outPath)
	if outDir != "." && outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(res.Output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
