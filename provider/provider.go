package provider

import (
	"context"
	"errors"

	"github.com/prepmate/prepmate/config"
	openai_provider "github.com/prepmate/prepmate/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
)

// Provider is the interface that all LLM implementations must satisfy.
// Complete takes fully assembled system and user prompts; prompt building
// stays with the caller so each step is independently testable.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.ProvidersConfig) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, errors.New("providers.openai.api_key not set")
		}
		return openai_provider.NewOpenAIClient(cfg), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
