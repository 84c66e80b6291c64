package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider serves generation requests through an OpenAI-compatible
// chat completions endpoint. A custom base URL allows pointing at local
// servers (vLLM, Ollama, llama.cpp) that speak the same protocol.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds a provider for the given endpoint. baseURL may
// be empty for the hosted OpenAI API.
func NewOpenAIProvider(apiKey, baseURL, model string) (*OpenAIProvider, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("llm: openai model is required")
	}
	cfg := openai.DefaultConfig(strings.TrimSpace(apiKey))
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("llm: prompt is empty")
	}
	return p.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, cfg)
}

// GenerateMany implements Provider.
func (p *OpenAIProvider) GenerateMany(ctx context.Context, prompts []string, cfg GenerationConfig) ([]string, error) {
	return generateMany(ctx, p, prompts, cfg)
}

// Chat implements Provider.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error) {
	if err := validMessages(messages); err != nil {
		return "", err
	}
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return p.complete(ctx, converted, cfg)
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessage, cfg GenerationConfig) (string, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(cfg.Temperature),
		TopP:        float32(cfg.TopP),
	}
	// HF-style repetition_penalty has no direct chat-completions field;
	// the closest analogue is frequency_penalty above 1.0.
	if cfg.RepetitionPenalty > 1 {
		req.FrequencyPenalty = float32(cfg.RepetitionPenalty - 1)
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: openai completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
