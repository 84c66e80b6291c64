package llm

// GenerationConfig carries sampling parameters for a backend call. The
// evaluation engine passes these through to the provider without
// interpreting them.
type GenerationConfig struct {
	MaxTokens         int     `json:"max_tokens,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	TopP              float64 `json:"top_p,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

// Message is a single turn in a chat-style exchange. Role is one of
// "system", "user", or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
