// Package executor applies a validated plan to the real filesystem.
//
// The executor takes an ordered list of actions together with the inventory
// snapshot the plan was generated against, applies them strictly one after
// another, and produces one result per action in input order. Every failure
// is contained at the single-action boundary: a failing action never aborts
// the rest of the plan and never leaves shared state behind for the next
// action to trip over.
//
// All reads and writes are confined to the base directory the executor was
// constructed with; destination safety is delegated to a paths.Guard and
// destination collisions are resolved by deterministic renaming.
//
// The executor does not serialize against other processes mutating the same
// tree, and completed plans cannot be undone.
package executor
