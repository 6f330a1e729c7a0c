package planner

import (
	llmdomain "github.com/lexlapax/go-llms/pkg/llm/domain"
	"github.com/lexlapax/go-llms/pkg/llm/provider"

	"github.com/mlunden/ordna/pkg/config"
	"github.com/mlunden/ordna/pkg/errors"
)

// OpenRouter and Ollama both speak the OpenAI chat-completion protocol, so
// they run through the OpenAI provider pointed at their endpoints.
const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	ollamaBaseURL     = "http://localhost:11434/v1"
)

// NewProviderFromSettings builds the go-llms provider selected by the
// configuration, falling back to the first usable one when the configured
// provider is not.
func NewProviderFromSettings(settings config.Settings) (llmdomain.Provider, error) {
	name, ps, err := settings.ActiveProvider()
	if err != nil {
		return nil, err
	}

	var opts []llmdomain.ProviderOption
	if ps.BaseURL != "" {
		opts = append(opts, llmdomain.NewBaseURLOption(ps.BaseURL))
	}

	switch name {
	case "anthropic":
		return provider.NewAnthropicProvider(ps.APIKey, ps.Model, opts...), nil
	case "openai":
		return provider.NewOpenAIProvider(ps.APIKey, ps.Model, opts...), nil
	case "openrouter":
		if ps.BaseURL == "" {
			opts = append(opts, llmdomain.NewBaseURLOption(openRouterBaseURL))
		}
		return provider.NewOpenAIProvider(ps.APIKey, ps.Model, opts...), nil
	case "ollama":
		if ps.BaseURL == "" {
			opts = append(opts, llmdomain.NewBaseURLOption(ollamaBaseURL))
		}
		return provider.NewOpenAIProvider(ps.APIKey, ps.Model, opts...), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unknown provider %q", name)
	}
}
