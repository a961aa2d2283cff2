package llm

import (
	"context"
	"fmt"
	"sort"
)

// Request is a single system/user exchange with fixed sampling parameters.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client generates text through a chat-completion provider.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrUnsupportedProvider is returned by New for unknown provider names.
var ErrUnsupportedProvider = fmt.Errorf("unsupported provider")

var defaultModels = map[string]string{
	"anthropic": "claude-sonnet-4-20250514",
	"openai":    "gpt-4o",
	"google":    "gemini-pro",
	"groq":      "llama3-8b-8192",
}

// Supported returns the provider names accepted by New, sorted.
func Supported() []string {
	names := make([]string, 0, len(defaultModels))
	for name := range defaultModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultModel returns the default model for a provider, or "" when the
// provider is unknown.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// New builds a client for the named provider. An empty model selects the
// provider's default.
func New(provider, model, apiKey string) (Client, error) {
	if model == "" {
		model = defaultModels[provider]
	}
	switch provider {
	case "anthropic":
		return NewAnthropicClient(apiKey, model), nil
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "groq":
		return NewGroqClient(apiKey, model), nil
	case "google":
		return NewGoogleClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}
