// Package config loads the optional peak.yml project manifest.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/peak/internal/compiler"
)

// FileName is the manifest looked up in the working directory.
const FileName = "peak.yml"

// Manifest represents the parsed contents of peak.yml.
type Manifest struct {
	Path       string
	Name       string
	Entry      string
	Output     string
	Optimize   bool
	Emit       compiler.Stage
	ValidateIR bool
}

type manifestFile struct {
	Name       string `yaml:"name"`
	Entry      string `yaml:"entry"`
	Output     string `yaml:"output"`
	Optimize   *bool  `yaml:"optimize"`
	Emit       string `yaml:"emit"`
	ValidateIR bool   `yaml:"validate_ir"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses a manifest from disk, returning a validated manifest.
func Load(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return Decode(file, absPath)
}

// Decode reads a manifest from r; path is recorded and used for messages.
func Decode(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest, issues := raw.toManifest(path)
	issues = append(issues, manifest.validate()...)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return manifest, nil
}

func (raw manifestFile) toManifest(path string) (*Manifest, []string) {
	m := &Manifest{
		Path:       path,
		Name:       strings.TrimSpace(raw.Name),
		Entry:      strings.TrimSpace(raw.Entry),
		Output:     strings.TrimSpace(raw.Output),
		Optimize:   true,
		Emit:       compiler.StageJS,
		ValidateIR: raw.ValidateIR,
	}
	if raw.Optimize != nil {
		m.Optimize = *raw.Optimize
	}

	var issues []string
	if raw.Emit != "" {
		stage, err := compiler.ParseStage(raw.Emit)
		if err != nil {
			issues = append(issues, fmt.Sprintf("emit: %v", err))
		} else {
			m.Emit = stage
		}
	}
	return m, issues
}

func (m *Manifest) validate() []string {
	var issues []string
	if m.Name != "" && m.Entry == "" {
		issues = append(issues, fmt.Sprintf("project %q must name an entry file", m.Name))
	}
	if m.Entry != "" && filepath.Ext(m.Entry) != ".peak" {
		issues = append(issues, fmt.Sprintf("entry %q must be a .peak file", m.Entry))
	}
	if m.Output != "" && strings.HasSuffix(m.Output, "/") {
		issues = append(issues, fmt.Sprintf("output %q must be a file, not a directory", m.Output))
	}
	if m.Emit == compiler.StageOptimized && !m.Optimize {
		issues = append(issues, "emit: optimized requires optimize to be enabled")
	}
	return issues
}

// EntryPath resolves the entry file relative to the manifest's directory.
func (m *Manifest) EntryPath() string {
	return m.resolve(m.Entry)
}

// OutputPath resolves the output file relative to the manifest's directory.
// Without an explicit output, it is the entry path with the stage's extension.
func (m *Manifest) OutputPath() string {
	if m.Output != "" {
		return m.resolve(m.Output)
	}
	return compiler.OutputPath(m.EntryPath(), m.Emit)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(m.Path), p)
}

// Options converts the manifest into compiler options.
func (m *Manifest) Options() compiler.Options {
	return compiler.Options{
		Emit:       m.Emit,
		Optimize:   m.Optimize,
		ValidateIR: m.ValidateIR,
	}
}
