// Package filesystem provides implementations of the types.FS interface.
//
// NewOS returns the production implementation backed by the os package.
// NewAferoFS adapts any afero.Fs, which tests use to run the scanner and
// executor against an in-memory filesystem.
package filesystem
