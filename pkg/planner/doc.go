// Package planner turns a natural-language instruction and an inventory
// snapshot into a validated plan of file operations.
//
// The text-generation service behind it is untrusted and unreliable: its
// output is treated as an opaque string until the strict parse step has
// produced typed actions. Structurally invalid or disallowed actions are
// dropped with a log; an unparsable response is an error, never a partial
// plan. The executor consumes the planner's output and never calls the
// service itself.
package planner
