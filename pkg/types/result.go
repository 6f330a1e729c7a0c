package types

import "encoding/json"

// ActionResult records the outcome of applying one Action. Results are
// produced 1:1 with the input actions, in input order.
type ActionResult struct {
	Success bool
	Type    ActionType
	Source  string

	// Destination is the final path relative to the base directory. It may
	// differ from the action's requested destination when collision
	// resolution renamed the target.
	Destination string

	// Err is set on failure. Warning is set when the action succeeded but
	// something noteworthy happened, e.g. a collision rename.
	Err     error
	Warning string
}

// MarshalJSON renders the result with the action type's wire name and the
// error flattened to its message, so serialized results carry plain strings
// rather than a nested error structure.
func (r ActionResult) MarshalJSON() ([]byte, error) {
	var errMsg string
	if r.Err != nil {
		errMsg = r.Err.Error()
	}
	return json.Marshal(struct {
		Success     bool   `json:"success"`
		Type        string `json:"action_type"`
		Source      string `json:"source"`
		Destination string `json:"destination"`
		Error       string `json:"error,omitempty"`
		Warning     string `json:"warning,omitempty"`
	}{r.Success, r.Type.String(), r.Source, r.Destination, errMsg, r.Warning})
}

// ExecutionSummary aggregates a result list. It is derived from the results
// by Summarize, never computed independently, so it cannot disagree with
// them.
type ExecutionSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize derives the success/failure counts from a result list.
func Summarize(results []ActionResult) ExecutionSummary {
	summary := ExecutionSummary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}
