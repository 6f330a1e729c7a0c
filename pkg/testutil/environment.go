package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlunden/ordna/pkg/filesystem"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/types"
)

// Environment is an isolated base directory on the real filesystem, wired
// with the production FS implementation and a guard confined to it. Cleanup
// is handled by t.TempDir.
type Environment struct {
	BaseDir string
	FS      types.FS
	Guard   *paths.Guard
}

// NewEnvironment creates an isolated test environment rooted in a fresh
// temp directory.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	dir := t.TempDir()
	guard, err := paths.NewGuard(dir, nil)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}

	return &Environment{
		BaseDir: guard.Base(),
		FS:      filesystem.NewOS(),
		Guard:   guard,
	}
}

// CreateFile writes a file under the base directory, creating parent
// directories as needed. The path is relative to the base directory.
func (e *Environment) CreateFile(t *testing.T, rel, content string) string {
	t.Helper()

	full := filepath.Join(e.BaseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create parent directories for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return full
}

// CreateDir creates a directory under the base directory.
func (e *Environment) CreateDir(t *testing.T, rel string) string {
	t.Helper()

	full := filepath.Join(e.BaseDir, rel)
	if err := os.MkdirAll(full, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", rel, err)
	}
	return full
}

// Exists reports whether a path relative to the base directory exists.
func (e *Environment) Exists(rel string) bool {
	_, err := os.Lstat(filepath.Join(e.BaseDir, rel))
	return err == nil
}

// ReadFile returns the content of a file relative to the base directory.
func (e *Environment) ReadFile(t *testing.T, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(e.BaseDir, rel))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
