package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/stellarlinkco/capeval/internal/claude"
)

const defaultMaxTokens = 300

// ClaudeProvider serves generation requests through the Anthropic
// messages API. RepetitionPenalty has no Claude equivalent and is
// ignored.
type ClaudeProvider struct {
	client *claude.Client
	model  string
}

// NewClaudeProvider wraps an existing claude.Client. model may be empty,
// in which case the client's default model is used.
func NewClaudeProvider(client *claude.Client, model string) (*ClaudeProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("llm: claude client is nil")
	}
	return &ClaudeProvider{client: client, model: strings.TrimSpace(model)}, nil
}

// Name implements Provider.
func (p *ClaudeProvider) Name() string { return "claude" }

// Generate implements Provider.
func (p *ClaudeProvider) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("llm: prompt is empty")
	}
	req := p.newRequest(cfg)
	req.Messages = []claude.Message{{Role: RoleUser, Content: prompt}}
	out, err := p.client.CompleteText(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: claude generate: %w", err)
	}
	return out, nil
}

// GenerateMany implements Provider.
func (p *ClaudeProvider) GenerateMany(ctx context.Context, prompts []string, cfg GenerationConfig) ([]string, error) {
	return generateMany(ctx, p, prompts, cfg)
}

// Chat implements Provider. System messages are folded into the
// request's system prompt, preserving their relative order.
func (p *ClaudeProvider) Chat(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error) {
	if err := validMessages(messages); err != nil {
		return "", err
	}
	req := p.newRequest(cfg)
	var system []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		req.Messages = append(req.Messages, claude.Message{Role: m.Role, Content: m.Content})
	}
	req.System = strings.Join(system, "\n\n")
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("llm: chat requires a non-system message")
	}
	out, err := p.client.CompleteText(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: claude chat: %w", err)
	}
	return out, nil
}

func (p *ClaudeProvider) newRequest(cfg GenerationConfig) *claude.Request {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &claude.Request{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}
}
