// Package llm provides the summarizer client abstraction and its providers.
// Callers pick a model tier; the provider config maps tiers to concrete models.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-context analysis such as company briefings
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint (OpenAI-compatible servers only).
	BaseURL string
}

// DefaultConfig returns the default configuration (OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4.1-mini",
			TierStandard: "gpt-4.1",
			TierAdvanced: "o3",
		},
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ConfigFor returns the default configuration for a provider name.
// Unrecognized names fall back to DefaultConfig.
func ConfigFor(provider string) *Config {
	switch Provider(provider) {
	case ProviderGemini:
		return DefaultGeminiConfig()
	default:
		return DefaultConfig()
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
		BaseURL:  c.BaseURL,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
