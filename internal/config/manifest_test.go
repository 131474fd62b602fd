package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/peak/internal/compiler"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: hello
entry: src/main.peak
output: build/main.js
emit: optimized
validate_ir: true
`)
	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hello", m.Name)
	assert.Equal(t, compiler.StageOptimized, m.Emit)
	assert.True(t, m.Optimize, "optimize defaults to true")
	assert.True(t, m.ValidateIR)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "src", "main.peak"), m.EntryPath())
	assert.Equal(t, filepath.Join(dir, "build", "main.js"), m.OutputPath())

	opts := m.Options()
	assert.Equal(t, compiler.StageOptimized, opts.Emit)
	assert.True(t, opts.Optimize)
	assert.True(t, opts.ValidateIR)
}

func TestManifestDefaults(t *testing.T) {
	m, err := Decode(strings.NewReader("entry: app.peak\n"), "/work/peak.yml")
	require.NoError(t, err)

	assert.Equal(t, compiler.StageJS, m.Emit)
	assert.True(t, m.Optimize)
	assert.False(t, m.ValidateIR)
	assert.Equal(t, filepath.Join("/work", "app.peak"), m.EntryPath())
	assert.Equal(t, filepath.Join("/work", "app.js"), m.OutputPath())
}

func TestManifestDisablesOptimizer(t *testing.T) {
	m, err := Decode(strings.NewReader("entry: app.peak\noptimize: false\n"), "peak.yml")
	require.NoError(t, err)
	assert.False(t, m.Optimize)
	assert.False(t, m.Options().Optimize)
}

func TestManifestValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		issues   []string
	}{
		{
			name:     "unknown stage",
			contents: "entry: a.peak\nemit: wasm\n",
			issues:   []string{`emit: unknown stage "wasm"`},
		},
		{
			name:     "project without entry",
			contents: "name: hello\n",
			issues:   []string{`project "hello" must name an entry file`},
		},
		{
			name:     "wrong extension",
			contents: "entry: main.js\n",
			issues:   []string{`entry "main.js" must be a .peak file`},
		},
		{
			name:     "directory output",
			contents: "entry: a.peak\noutput: build/\n",
			issues:   []string{`output "build/" must be a file`},
		},
		{
			name:     "optimized stage without optimizer",
			contents: "entry: a.peak\nemit: optimized\noptimize: false\n",
			issues:   []string{"emit: optimized requires optimize"},
		},
		{
			name:     "several issues",
			contents: "name: x\nemit: tokens\n",
			issues:   []string{"unknown stage", "must name an entry file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.contents), "peak.yml")
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			require.Len(t, verr.Issues, len(tt.issues))
			for i, want := range tt.issues {
				assert.Contains(t, verr.Issues[i], want)
			}
			assert.True(t, strings.HasPrefix(err.Error(), "manifest validation failed:"))
		})
	}
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("entry: a.peak\ntarget: rust\n"), "peak.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest: parse peak.yml")
}

func TestManifestEmpty(t *testing.T) {
	_, err := Decode(strings.NewReader(""), "peak.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load("")
	assert.Error(t, err)
}

func TestValidationErrorWithoutIssues(t *testing.T) {
	assert.Equal(t, "manifest: invalid configuration", (&ValidationError{}).Error())
}
