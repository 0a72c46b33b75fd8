package llm

import (
	"context"
	"fmt"
)

// Request is one two-message conversation: a fixed system persona and the rendered prompt.
type Request struct {
	System string
	User   string
	Params Params
}

// Completion is the generated text of the first choice plus reported token usage.
type Completion struct {
	Text        string
	TotalTokens int
	Model       string
}

// Client is an abstraction over completion providers
type Client interface {
	// Complete issues exactly one completion request. There is no retry.
	Complete(ctx context.Context, req Request) (*Completion, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration.
// It returns ErrMissingAPIKey when the configuration carries no key.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(config)
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderAnthropic:
		return NewAnthropicClient(config)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
