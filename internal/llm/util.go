// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// StripCodeFence removes a code fence wrapping the whole response.
// Models often return a Markdown briefing inside ```markdown ... ``` even
// when asked for plain Markdown. Fences inside the text are kept.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}

	inner := strings.TrimPrefix(text, "```")
	inner = strings.TrimSuffix(inner, "```")

	// Skip a language identifier on the opening line
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		firstLine := inner[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			inner = inner[idx+1:]
		}
	} else {
		return text
	}

	// A fence in the middle means the response was not wrapped as a whole
	if strings.Contains(inner, "\n```") {
		return text
	}
	return strings.TrimSpace(inner)
}
