package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Defaults applied when the config file leaves a field unset.
const (
	DefaultPassThreshold = 0.70
	DefaultMaxTokens     = 300
	DefaultTemperature   = 0.7
	DefaultTopP          = 0.9
	DefaultRepetition    = 1.1
	DefaultOutputDir     = "eval_results"
)

type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Storage    StorageConfig    `yaml:"storage"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// GenerationConfig holds default sampling parameters handed to the backend.
// The engine passes these through without interpreting them.
type GenerationConfig struct {
	MaxTokens         int     `yaml:"max_tokens,omitempty"`
	Temperature       float64 `yaml:"temperature,omitempty"`
	TopP              float64 `yaml:"top_p,omitempty"`
	RepetitionPenalty float64 `yaml:"repetition_penalty,omitempty"`
}

type EvaluationConfig struct {
	PassThreshold float64 `yaml:"pass_threshold,omitempty"`
	OutputDir     string  `yaml:"output_dir,omitempty"`
	OutputFormat  string  `yaml:"output_format,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	applyDefaults(&cfg)

	if cfg.Evaluation.PassThreshold < 0 || cfg.Evaluation.PassThreshold > 1 {
		return nil, fmt.Errorf("config: pass_threshold must be between 0 and 1 (got %v)", cfg.Evaluation.PassThreshold)
	}

	return &cfg, nil
}

// Default returns a config with all defaults applied, for callers that run
// without a config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "claude"
	}

	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}

	if cfg.Generation.MaxTokens <= 0 {
		cfg.Generation.MaxTokens = DefaultMaxTokens
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = DefaultTemperature
	}
	if cfg.Generation.TopP == 0 {
		cfg.Generation.TopP = DefaultTopP
	}
	if cfg.Generation.RepetitionPenalty == 0 {
		cfg.Generation.RepetitionPenalty = DefaultRepetition
	}

	if cfg.Evaluation.PassThreshold == 0 {
		cfg.Evaluation.PassThreshold = DefaultPassThreshold
	}
	if strings.TrimSpace(cfg.Evaluation.OutputDir) == "" {
		cfg.Evaluation.OutputDir = DefaultOutputDir
	}
}
