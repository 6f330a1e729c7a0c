// Package types defines the core data model shared across ordna: the
// inventory snapshot produced by the scanner, the actions proposed by the
// planner, and the per-action results produced by the executor.
//
// Values in this package are plain data. Construction and validation live
// with their producers (scanner, planner); the executor consumes them
// read-only and owns the results it returns.
package types
