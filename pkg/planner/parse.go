package planner

import (
	"encoding/json"
	"strings"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/types"
)

// planEnvelope mirrors the JSON contract the model is instructed to follow.
type planEnvelope struct {
	Actions []actionPayload `json:"actions"`
}

type actionPayload struct {
	ActionType  string `json:"action_type"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

// parsePlan converts raw model output into typed actions. This is the strict
// boundary between untrusted text and the executor's input: only actions
// that parse into the closed type set and pass path validation survive.
func parsePlan(raw string, allowed map[types.ActionType]bool) (types.Plan, error) {
	logger := logging.GetLogger("planner.parse")

	payload := extractJSON(raw)
	if payload == "" {
		return types.Plan{}, errors.New(errors.ErrPlanMalformed, "response contains no JSON object")
	}

	var envelope planEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return types.Plan{}, errors.Wrap(err, errors.ErrPlanParse, "response is not valid JSON")
	}

	var actions []types.Action
	for _, payload := range envelope.Actions {
		actionType, err := types.ParseActionType(payload.ActionType)
		if err != nil {
			logger.Warn().Str("action_type", payload.ActionType).Str("source", payload.Source).Msg("Dropping action with unknown type")
			continue
		}
		if !allowed[actionType] {
			logger.Warn().Str("action_type", payload.ActionType).Str("source", payload.Source).Msg("Dropping disallowed action")
			continue
		}
		if err := paths.ValidatePath(payload.Source); err != nil {
			logger.Warn().Str("source", payload.Source).Err(err).Msg("Dropping action with invalid source")
			continue
		}
		if err := paths.ValidatePath(payload.Destination); err != nil {
			logger.Warn().Str("destination", payload.Destination).Err(err).Msg("Dropping action with invalid destination")
			continue
		}

		actions = append(actions, types.Action{
			Type:        actionType,
			Source:      payload.Source,
			Destination: payload.Destination,
			Reason:      payload.Reason,
		})
	}

	return types.Plan{Actions: actions}, nil
}

// extractJSON pulls the JSON object out of the model response. Models often
// wrap the payload in a markdown code fence or surround it with commentary,
// so the fence is stripped first and the outermost braces are used as a
// fallback.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if start := strings.Index(raw, "```"); start != -1 {
		rest := raw[start+3:]
		// Skip a language tag like "json" on the fence line
		if newline := strings.Index(rest, "\n"); newline != -1 {
			rest = rest[newline+1:]
		}
		if end := strings.Index(rest, "```"); end != -1 {
			raw = rest[:end]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
