package types

import "io/fs"

// FS abstracts the filesystem operations ordna needs, allowing both the real
// OS filesystem and in-memory implementations for testing.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.FileInfo, error)

	// Mutation
	Rename(oldpath, newpath string) error
	Remove(name string) error
}
