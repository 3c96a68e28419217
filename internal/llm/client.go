package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// Error is returned when a provider call fails or yields no usable text.
type Error struct {
	Provider Provider
	Model    string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Provider, e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Provider, e.Model, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI, "":
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
