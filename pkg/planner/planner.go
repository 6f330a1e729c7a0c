package planner

import (
	"context"

	llmdomain "github.com/lexlapax/go-llms/pkg/llm/domain"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/types"
)

// Generation is deliberately cold: the plan should be reproducible, not
// creative.
const (
	planTemperature = 0.1
	planMaxTokens   = 4096
)

// Planner generates organization plans through an LLM provider.
type Planner struct {
	provider llmdomain.Provider
	allowed  map[types.ActionType]bool
}

// New creates a Planner. allowedOps is the action-kind policy actions must
// satisfy to survive parsing; empty means move only.
func New(provider llmdomain.Provider, allowedOps []types.ActionType) *Planner {
	allowed := make(map[types.ActionType]bool)
	if len(allowedOps) == 0 {
		allowed[types.ActionMove] = true
	}
	for _, t := range allowedOps {
		allowed[t] = true
	}
	return &Planner{provider: provider, allowed: allowed}
}

// Plan asks the provider for an organization plan for the given instruction
// and inventory. An empty inventory short-circuits to an empty plan without
// calling the provider.
func (p *Planner) Plan(ctx context.Context, instruction string, inventory []types.FileEntry) (types.Plan, error) {
	logger := logging.GetLogger("planner")
	logger.Info().Str("instruction", instruction).Int("files", len(inventory)).Msg("Generating organization plan")

	if len(inventory) == 0 {
		logger.Warn().Msg("Inventory is empty, returning empty plan")
		return types.Plan{}, nil
	}

	messages := []llmdomain.Message{
		llmdomain.NewTextMessage(llmdomain.RoleSystem, systemPrompt),
		llmdomain.NewTextMessage(llmdomain.RoleUser, buildUserPrompt(instruction, inventory)),
	}

	response, err := p.provider.GenerateMessage(ctx, messages,
		llmdomain.WithTemperature(planTemperature),
		llmdomain.WithMaxTokens(planMaxTokens))
	if err != nil {
		return types.Plan{}, errors.Wrap(err, errors.ErrPlanTransport, "text generation request failed")
	}

	plan, err := parsePlan(response.Content, p.allowed)
	if err != nil {
		return types.Plan{}, err
	}

	logger.Info().Int("actions", len(plan.Actions)).Msg("Plan generated")
	return plan, nil
}
