// Package testutil provides test environments and helpers shared across
// ordna's test suites: an isolated temp-dir environment wired with the real
// filesystem implementation and a guard, plus file creation and assertion
// helpers.
package testutil
