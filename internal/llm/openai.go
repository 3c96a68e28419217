package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}

	transportCfg := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		transportCfg.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(transportCfg),
		config: config,
	}, nil
}

// GenerateContent sends the prompt as a single user message.
// Temperature is left unset; reasoning models reject anything but the default.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &Error{Provider: ProviderOpenAI, Model: modelName, Message: "chat completion failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Provider: ProviderOpenAI, Model: modelName, Message: "no choices in response"}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Provider: ProviderOpenAI, Model: modelName, Message: "empty completion"}
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the underlying HTTP client holds no per-client resources.
func (c *OpenAIClient) Close() error {
	return nil
}
