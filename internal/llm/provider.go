package llm

import (
	"context"
	"fmt"
	"strings"
)

// Chat roles accepted by Provider.Chat.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is a text-generation backend. Implementations wrap a hosted
// model API and translate GenerationConfig into the backend's request
// parameters.
type Provider interface {
	// Name returns the provider's registry name, e.g. "claude".
	Name() string

	// Generate produces a single completion for prompt.
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)

	// GenerateMany produces one completion per prompt, in order. The
	// returned slice has the same length and ordering as prompts.
	GenerateMany(ctx context.Context, prompts []string, cfg GenerationConfig) ([]string, error)

	// Chat produces a completion for a multi-turn conversation.
	Chat(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error)
}

// generateMany is the shared sequential implementation of GenerateMany.
// Providers without a native batch endpoint delegate here.
func generateMany(ctx context.Context, p Provider, prompts []string, cfg GenerationConfig) ([]string, error) {
	outputs := make([]string, 0, len(prompts))
	for i, prompt := range prompts {
		out, err := p.Generate(ctx, prompt, cfg)
		if err != nil {
			return nil, fmt.Errorf("llm: generate prompt %d: %w", i, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// validMessages checks that a chat transcript is well formed.
func validMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("llm: chat requires at least one message")
	}
	for i, m := range messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("llm: message %d has unknown role %q", i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("llm: message %d has empty content", i)
		}
	}
	return nil
}
