package executor

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/types"
)

// Config carries the policy an executor is constructed with. It is explicit
// constructor input; the executor never reads process-wide state.
type Config struct {
	// AllowedActions is the set of action kinds the executor will apply.
	// Empty means the default policy: move only.
	AllowedActions []types.ActionType
}

// Executor applies actions to the filesystem, confined to one base
// directory. The base directory and policy are fixed for its lifetime.
type Executor struct {
	base    string
	fs      types.FS
	guard   *paths.Guard
	allowed map[types.ActionType]bool
}

// New creates an executor confined to the guard's base directory.
func New(fsys types.FS, guard *paths.Guard, cfg Config) *Executor {
	allowed := make(map[types.ActionType]bool)
	if len(cfg.AllowedActions) == 0 {
		allowed[types.ActionMove] = true
	}
	for _, t := range cfg.AllowedActions {
		allowed[t] = true
	}

	return &Executor{
		base:    guard.Base(),
		fs:      fsys,
		guard:   guard,
		allowed: allowed,
	}
}

// Execute applies the actions strictly in input order, one after another,
// and returns one result per action plus the summary derived from them.
// Later actions see the filesystem state left by earlier ones, which is what
// makes their collision and safety checks meaningful. An empty plan yields
// an empty result list.
func (e *Executor) Execute(actions []types.Action, inventory []types.FileEntry) ([]types.ActionResult, types.ExecutionSummary) {
	logger := logging.GetLogger("executor")
	done := logging.LogOperationStart(logger, "execute plan")
	defer done()

	known := make(map[string]bool, len(inventory))
	for _, entry := range inventory {
		known[entry.RelativePath] = true
	}

	results := make([]types.ActionResult, 0, len(actions))
	for i, action := range actions {
		logger.Info().
			Int("index", i+1).
			Int("total", len(actions)).
			Str("source", action.Source).
			Str("destination", action.Destination).
			Msg("Applying action")

		result := e.executeOne(action, known)
		results = append(results, result)

		if result.Success {
			logger.Info().Str("source", action.Source).Str("destination", result.Destination).Msg("Action succeeded")
		} else {
			logger.Warn().Str("source", action.Source).Err(result.Err).Msg("Action failed")
		}
	}

	summary := types.Summarize(results)
	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Plan execution complete")

	return results, summary
}

// executeOne applies a single action. Every failure, including a panic, is
// converted into a failure result at this boundary so the caller's loop can
// carry on with the next action.
func (e *Executor) executeOne(action types.Action, known map[string]bool) (result types.ActionResult) {
	logger := logging.GetLogger("executor")

	result = types.ActionResult{
		Type:        action.Type,
		Source:      action.Source,
		Destination: action.Destination,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Err = errors.Newf(errors.ErrInternal, "unexpected failure applying %s: %v", action.Source, r)
		}
	}()

	if !e.allowed[action.Type] || action.Type != types.ActionMove {
		result.Err = errors.Newf(errors.ErrUnsupportedOperation, "unsupported operation type: %s", action.Type)
		return result
	}

	// The snapshot may be stale; the disk is re-checked below either way.
	if !known[action.Source] {
		logger.Debug().Str("source", action.Source).Msg("Source not present in inventory snapshot")
	}

	source := e.resolve(action.Source)
	destination := e.resolve(action.Destination)

	// Reads are confined to the base directory just like writes; a source
	// that resolves elsewhere does not exist as far as this plan is
	// concerned.
	if canonical, err := paths.Canonicalize(source); err != nil || !paths.IsWithin(e.base, canonical) {
		result.Err = errors.Newf(errors.ErrSourceMissing, "source is outside the base directory: %s", action.Source)
		return result
	}

	info, err := e.fs.Stat(source)
	if err != nil {
		result.Err = errors.Wrapf(err, errors.ErrSourceMissing, "source file does not exist: %s", action.Source)
		return result
	}
	if !info.Mode().IsRegular() {
		result.Err = errors.Newf(errors.ErrSourceNotAFile, "source is not a regular file: %s", action.Source)
		return result
	}

	if !e.guard.IsSafe(destination) {
		result.Err = errors.Newf(errors.ErrUnsafeDestination, "unsafe destination: %s", action.Destination)
		return result
	}

	if err := e.fs.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrDirCreate, "cannot create destination directory for %s", action.Destination)
		return result
	}

	finalDest := destination
	if exists(e.fs, destination) {
		finalDest, err = UniqueDestination(e.fs, destination)
		if err != nil {
			result.Err = err
			return result
		}
		result.Warning = fmt.Sprintf("destination already exists, renamed to %s", filepath.Base(finalDest))
		logger.Warn().Str("destination", action.Destination).Str("renamed", filepath.Base(finalDest)).Msg("Destination collision")
	}

	if err := e.move(source, finalDest, info.Mode().Perm()); err != nil {
		result.Err = errors.Wrapf(err, errors.ErrMoveFailed, "failed to move %s", action.Source)
		return result
	}

	if rel, err := filepath.Rel(e.base, finalDest); err == nil {
		result.Destination = rel
	} else {
		result.Destination = finalDest
	}
	result.Success = true
	return result
}

// resolve turns a plan-relative path into an absolute one. Absolute inputs
// are kept as-is so the guard can judge them rather than silently nesting
// them under the base directory.
func (e *Executor) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.base, path)
}

// move renames source to destination, falling back to copy-then-remove when
// the rename cannot cross a device boundary. The source is removed only
// after the destination write has completed.
func (e *Executor) move(source, destination string, perm fs.FileMode) error {
	err := e.fs.Rename(source, destination)
	if err == nil || !stderrors.Is(err, syscall.EXDEV) {
		return err
	}

	data, readErr := e.fs.ReadFile(source)
	if readErr != nil {
		return readErr
	}
	if writeErr := e.fs.WriteFile(destination, data, perm); writeErr != nil {
		return writeErr
	}
	return e.fs.Remove(source)
}
