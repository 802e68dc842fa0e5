package llm

import (
	"context"
	"testing"
)

func TestWithSelection_OverridesProvider(t *testing.T) {
	cfg := DefaultConfig().WithSelection("openai", "")
	if cfg.Provider != "openai" {
		t.Fatalf("expected provider openai, got %q", cfg.Provider)
	}
}

func TestWithSelection_ModelFollowsSelectedProvider(t *testing.T) {
	cfg := DefaultConfig().WithSelection("gemini", "gemini-pro")
	if cfg.Provider != "gemini" {
		t.Fatalf("expected provider gemini, got %q", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("expected gemini model override, got %q", cfg.Gemini.Model)
	}
	// Other providers keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("openai model changed unexpectedly: %q", cfg.OpenAI.Model)
	}
}

func TestWithSelection_EmptyArgsKeepConfig(t *testing.T) {
	base := DefaultConfig()
	cfg := base.WithSelection("", "")
	if cfg.Provider != base.Provider {
		t.Fatalf("provider changed: %q", cfg.Provider)
	}
	if cfg.Anthropic.Model != base.Anthropic.Model {
		t.Fatalf("anthropic model changed: %q", cfg.Anthropic.Model)
	}
}

func TestWithSelection_ModelOnlyAppliesToCurrentProvider(t *testing.T) {
	cfg := DefaultConfig().WithSelection("", "claude-sonnet")
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("expected default provider's model overridden, got %q", cfg.Anthropic.Model)
	}
}

func TestNewProvider_HonorsFileSelectedProvider(t *testing.T) {
	// A provider chosen through the config file must construct without
	// any KEYZ_* env vars being set.
	cfg := DefaultConfig().WithSelection("mock", "")
	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected a provider")
	}
}
