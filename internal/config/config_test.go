package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
llm:
  default_provider: openai
  providers:
    openai:
      api_key: sk-test
      model: gpt-4o-mini
generation:
  max_tokens: 512
  temperature: 0.2
evaluation:
  pass_threshold: 0.8
  output_dir: out
storage:
  type: memory
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.DefaultProvider != "openai" {
		t.Fatalf("DefaultProvider: got %q", cfg.LLM.DefaultProvider)
	}
	if cfg.Generation.MaxTokens != 512 {
		t.Fatalf("MaxTokens: got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Temperature != 0.2 {
		t.Fatalf("Temperature: got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.TopP != DefaultTopP {
		t.Fatalf("TopP default: got %v", cfg.Generation.TopP)
	}
	if cfg.Evaluation.PassThreshold != 0.8 {
		t.Fatalf("PassThreshold: got %v", cfg.Evaluation.PassThreshold)
	}
	if cfg.Evaluation.OutputDir != "out" {
		t.Fatalf("OutputDir: got %q", cfg.Evaluation.OutputDir)
	}
	if cfg.Storage.Type != "memory" {
		t.Fatalf("Storage.Type: got %q", cfg.Storage.Type)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, "llm: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.DefaultProvider != "claude" {
		t.Fatalf("DefaultProvider: got %q", cfg.LLM.DefaultProvider)
	}
	if cfg.Generation.MaxTokens != DefaultMaxTokens {
		t.Fatalf("MaxTokens: got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Evaluation.PassThreshold != DefaultPassThreshold {
		t.Fatalf("PassThreshold: got %v", cfg.Evaluation.PassThreshold)
	}
	if cfg.Evaluation.OutputDir != DefaultOutputDir {
		t.Fatalf("OutputDir: got %q", cfg.Evaluation.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := writeTempConfig(t, "llm: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Providers["openai"].APIKey != "sk-env" {
		t.Fatalf("openai api key: got %q", cfg.LLM.Providers["openai"].APIKey)
	}
}

func TestLoadInvalidThreshold(t *testing.T) {
	path := writeTempConfig(t, "evaluation:\n  pass_threshold: 1.5\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("Load: expected error for out-of-range threshold")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load: expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Evaluation.PassThreshold != DefaultPassThreshold {
		t.Fatalf("PassThreshold: got %v", cfg.Evaluation.PassThreshold)
	}
	if cfg.Generation.RepetitionPenalty != DefaultRepetition {
		t.Fatalf("RepetitionPenalty: got %v", cfg.Generation.RepetitionPenalty)
	}
}
