package types

import (
	"fmt"
	"time"
)

// FileEntry describes one file found by the scanner. Entries are a
// point-in-time snapshot: the file may have moved or disappeared by the time
// a plan executes, so consumers must re-check the filesystem before acting.
type FileEntry struct {
	Name         string    `json:"name"`
	RelativePath string    `json:"relative_path"`
	Extension    string    `json:"extension"`
	SizeBytes    uint64    `json:"size_bytes"`
	ModifiedAt   time.Time `json:"modified_at"`
	IsDirectory  bool      `json:"is_directory"`
}

// ActionType identifies the kind of a proposed file operation. It is a
// closed set: new kinds are added here and in the executor's dispatch, never
// by widening accepted strings at runtime.
type ActionType int

const (
	// ActionMove relocates a regular file within the base directory.
	// It is the only kind the current policy permits; delete and copy are
	// deliberately excluded.
	ActionMove ActionType = iota
)

// String returns the wire name of the action type.
func (t ActionType) String() string {
	switch t {
	case ActionMove:
		return "move"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseActionType converts a wire name into an ActionType. Unknown names are
// an error, never a silently accepted value.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "move":
		return ActionMove, nil
	default:
		return 0, fmt.Errorf("unknown action type %q", s)
	}
}

// Action is one validated, proposed file relocation. Source and Destination
// are relative to the base directory the executor was constructed with.
// Source must name a plain file, never a directory.
type Action struct {
	Type        ActionType `json:"action_type"`
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Reason      string     `json:"reason"`
}

// Plan is an ordered list of actions generated against one inventory
// snapshot.
type Plan struct {
	Actions []Action `json:"actions"`
}
