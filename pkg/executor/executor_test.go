package executor_test

import (
	"path/filepath"
	"testing"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/executor"
	"github.com/mlunden/ordna/pkg/testutil"
	"github.com/mlunden/ordna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) (*executor.Executor, *testutil.Environment) {
	t.Helper()
	env := testutil.NewEnvironment(t)
	return executor.New(env.FS, env.Guard, executor.Config{}), env
}

func move(source, destination string) types.Action {
	return types.Action{
		Type:        types.ActionMove,
		Source:      source,
		Destination: destination,
		Reason:      "test",
	}
}

func TestExecuteMoveIntoNewSubdirectory(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")

	results, summary := exec.Execute([]types.Action{
		move("a.txt", "sub/a.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, filepath.Join("sub", "a.txt"), results[0].Destination)
	assert.Empty(t, results[0].Warning)
	assert.Equal(t, types.ExecutionSummary{Total: 1, Succeeded: 1}, summary)

	assert.False(t, env.Exists("a.txt"))
	assert.Equal(t, "hello", env.ReadFile(t, "sub/a.txt"))
}

func TestExecuteCollisionRenames(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "new")
	env.CreateFile(t, "sub/a.txt", "existing")

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "sub/a.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, filepath.Join("sub", "a_1.txt"), results[0].Destination)
	assert.NotEmpty(t, results[0].Warning)

	// Original destination file is untouched
	assert.Equal(t, "existing", env.ReadFile(t, "sub/a.txt"))
	assert.Equal(t, "new", env.ReadFile(t, "sub/a_1.txt"))
	assert.False(t, env.Exists("a.txt"))
}

func TestExecuteSourceMissing(t *testing.T) {
	exec, _ := newExecutor(t)

	results, summary := exec.Execute([]types.Action{
		move("missing.txt", "x/missing.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrSourceMissing))
	assert.Equal(t, 1, summary.Failed)
}

func TestExecuteSourceIsDirectory(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateDir(t, "folder")

	results, _ := exec.Execute([]types.Action{
		move("folder", "sub/folder"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrSourceNotAFile))
	assert.True(t, env.Exists("folder"))
}

func TestExecuteUnsafeDestination(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "../outside.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrUnsafeDestination))

	// Source stays in place on failure
	assert.Equal(t, "hello", env.ReadFile(t, "a.txt"))
	assert.False(t, env.Exists(filepath.Join("..", "outside.txt")))
}

func TestExecuteAbsoluteDestinationOutsideBase(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "/tmp/override.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrUnsafeDestination))
	assert.True(t, env.Exists("a.txt"))
}

func TestExecuteSourceEscapingBase(t *testing.T) {
	exec, env := newExecutor(t)
	outside := testutil.NewEnvironment(t)
	outside.CreateFile(t, "loot.txt", "secret")

	results, _ := exec.Execute([]types.Action{
		move(filepath.Join("..", filepath.Base(outside.BaseDir), "loot.txt"), "stolen.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrSourceMissing))
	assert.True(t, outside.Exists("loot.txt"))
	assert.False(t, env.Exists("stolen.txt"))
}

func TestExecuteUnsupportedActionType(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")

	results, _ := exec.Execute([]types.Action{
		{Type: types.ActionType(99), Source: "a.txt", Destination: "-"},
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrUnsupportedOperation))
	assert.True(t, env.Exists("a.txt"))
}

func TestExecuteDirCreateFailure(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")
	// A plain file where a path component must become a directory
	env.CreateFile(t, "blocker", "in the way")

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "blocker/a.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrDirCreate))
	assert.True(t, env.Exists("a.txt"))
}

func TestExecuteOrderPreservedAndFailuresDoNotInterfere(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "a")
	env.CreateFile(t, "c.txt", "c")

	actions := []types.Action{
		move("a.txt", "docs/a.txt"),
		move("missing.txt", "docs/missing.txt"),
		move("c.txt", "docs/c.txt"),
	}

	results, summary := exec.Execute(actions, nil)

	require.Len(t, results, 3)
	for i, action := range actions {
		assert.Equal(t, action.Source, results[i].Source, "result %d must match input order", i)
	}
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success, "a failing action must not prevent the next one")

	assert.Equal(t, types.ExecutionSummary{Total: 3, Succeeded: 2, Failed: 1}, summary)
	assert.True(t, env.Exists("docs/a.txt"))
	assert.True(t, env.Exists("docs/c.txt"))
}

func TestExecuteLaterActionSeesEarlierResult(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "first")
	env.CreateFile(t, "b.txt", "second")

	// Both actions target the same destination; the second must collide
	// with the file the first one just wrote.
	results, _ := exec.Execute([]types.Action{
		move("a.txt", "docs/same.txt"),
		move("b.txt", "docs/same.txt"),
	}, nil)

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, filepath.Join("docs", "same.txt"), results[0].Destination)
	assert.Equal(t, filepath.Join("docs", "same_1.txt"), results[1].Destination)
	assert.NotEmpty(t, results[1].Warning)

	assert.Equal(t, "first", env.ReadFile(t, "docs/same.txt"))
	assert.Equal(t, "second", env.ReadFile(t, "docs/same_1.txt"))
}

func TestExecuteEmptyPlan(t *testing.T) {
	exec, _ := newExecutor(t)

	results, summary := exec.Execute(nil, nil)
	assert.Empty(t, results)
	assert.Equal(t, types.ExecutionSummary{}, summary)
}

func TestExecuteSummaryMatchesResults(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "a")

	results, summary := exec.Execute([]types.Action{
		move("a.txt", "docs/a.txt"),
		move("gone.txt", "docs/gone.txt"),
	}, nil)

	assert.Equal(t, types.Summarize(results), summary)
}

func TestExecuteInventoryIsAdvisoryOnly(t *testing.T) {
	exec, env := newExecutor(t)
	env.CreateFile(t, "a.txt", "hello")

	// The snapshot claims a file that is gone and omits one that exists;
	// the executor must trust the disk, not the snapshot.
	inventory := []types.FileEntry{
		{Name: "ghost.txt", RelativePath: "ghost.txt"},
	}

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "docs/a.txt"),
		move("ghost.txt", "docs/ghost.txt"),
	}, inventory)

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, errors.IsErrorCode(results[1].Err, errors.ErrSourceMissing))
}

func TestExecuteDisallowedMovePolicy(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.CreateFile(t, "a.txt", "hello")

	// An executor whose policy allows nothing rejects even moves
	exec := executor.New(env.FS, env.Guard, executor.Config{
		AllowedActions: []types.ActionType{types.ActionType(99)},
	})

	results, _ := exec.Execute([]types.Action{
		move("a.txt", "docs/a.txt"),
	}, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrUnsupportedOperation))
}
