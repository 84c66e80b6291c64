package llm

import (
	"fmt"
	"strings"

	"github.com/stellarlinkco/capeval/internal/claude"
	"github.com/stellarlinkco/capeval/internal/config"
)

// NewRegistryFromConfig builds a registry containing one provider per
// configured entry. Unknown provider names in the config are an error.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm: config is nil")
	}
	reg := NewRegistry()
	for name, pc := range cfg.LLM.Providers {
		p, err := newProvider(name, pc)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(name, p); err != nil {
			return nil, err
		}
	}
	if len(reg.Names()) == 0 {
		return nil, fmt.Errorf("llm: no providers configured")
	}
	return reg, nil
}

// GenerationFromConfig maps the configured sampling defaults onto a
// GenerationConfig.
func GenerationFromConfig(cfg *config.Config) GenerationConfig {
	if cfg == nil {
		return GenerationConfig{}
	}
	return GenerationConfig{
		MaxTokens:         cfg.Generation.MaxTokens,
		Temperature:       cfg.Generation.Temperature,
		TopP:              cfg.Generation.TopP,
		RepetitionPenalty: cfg.Generation.RepetitionPenalty,
	}
}

// DefaultProviderFromConfig builds the provider named by
// llm.default_provider.
func DefaultProviderFromConfig(cfg *config.Config) (Provider, error) {
	reg, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return reg.Get(cfg.LLM.DefaultProvider)
}

func newProvider(name string, pc config.ProviderConfig) (Provider, error) {
	switch normalizeName(name) {
	case "claude":
		opts := []claude.Option{}
		if pc.BaseURL != "" {
			opts = append(opts, claude.WithBaseURL(pc.BaseURL))
		}
		if pc.Model != "" {
			opts = append(opts, claude.WithModel(pc.Model))
		}
		return NewClaudeProvider(claude.NewClient(pc.APIKey, opts...), pc.Model)
	case "openai":
		model := pc.Model
		if strings.TrimSpace(model) == "" {
			model = "gpt-4o-mini"
		}
		return NewOpenAIProvider(pc.APIKey, pc.BaseURL, model)
	default:
		return nil, fmt.Errorf("llm: unknown provider type %q", name)
	}
}
