package paths

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mlunden/ordna/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for empty paths, null bytes and excessive length.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ExpandHome expands a leading ~ to the current user's home directory.
// Paths that cannot be expanded are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			return path
		}
	}

	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user form is not supported
	return path
}

// Canonicalize returns the absolute, cleaned, symlink-resolved form of path.
// Components that do not exist yet are allowed: symlinks are resolved on the
// longest existing prefix and the remainder is appended lexically, so a
// destination inside a directory that will only be created later can still be
// canonicalized.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveExistingPrefix(filepath.Clean(abs))
}

func resolveExistingPrefix(abs string) (string, error) {
	remainder := ""
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		// A component that does not exist, or exists as a plain file where a
		// directory is needed, just means this prefix cannot resolve yet;
		// keep walking up. Whether the path is actually writable is decided
		// later, at mkdir time.
		if !os.IsNotExist(err) && !stderrors.Is(err, syscall.ENOTDIR) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Nothing along the path exists; keep the lexical form
			return abs, nil
		}
		remainder = filepath.Join(filepath.Base(current), remainder)
		current = parent
	}
}

// IsWithin reports whether path is root itself or a descendant of root.
// Both arguments must already be absolute and cleaned. The check is
// separator-aware, so /base2 is not considered inside /base.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
