package llm

import (
	"context"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("# Acme"), genai.Text(" briefing")}}},
		},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "# Acme briefing", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(nil)
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultGeminiConfig(), "")
	require.Error(t, err)
}

func TestGeminiClient_GenerateContent_Live(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live Gemini test in short mode")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := NewGeminiClient(context.Background(), DefaultGeminiConfig(), apiKey)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	text, err := client.GenerateContent(context.Background(), "Reply with the single word: ok", TierLite)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
