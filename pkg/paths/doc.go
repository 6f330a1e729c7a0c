// Package paths provides path canonicalization helpers and the Guard, the
// safety predicate that decides whether a destination may be written to.
//
// The Guard confines every write to a single base directory and a set of
// canonicalized exclusion roots. It is a pure predicate: it never mutates the
// filesystem and any resolution failure is answered with "not safe" rather
// than an error.
package paths
