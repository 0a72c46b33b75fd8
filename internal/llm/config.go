// Package llm provides the completion-API client used by the request handlers.
// A single Client interface hides the provider (OpenAI, Gemini or Anthropic) so the
// handlers only deal with prompts, fixed per-task parameters and token usage.
package llm

import (
	"fmt"
	"strings"
)

// Task identifies which handler a completion is made for. Each task has its own
// fixed sampling parameters.
type Task string

const (
	// TaskCareerPath generates a career roadmap from a profession
	TaskCareerPath Task = "career_path"
	// TaskParseResume extracts structured resume data from free-form text
	TaskParseResume Task = "parse_resume"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions API (default)
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// Params are the fixed sampling parameters sent with every completion request.
type Params struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

var defaultModels = map[Provider]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-sonnet-4-20250514",
}

var taskParams = map[Task]Params{
	TaskCareerPath:  {Temperature: 0.7, MaxTokens: 2000},
	TaskParseResume: {Temperature: 0.2, MaxTokens: 3000},
}

// Config holds the completion-API configuration for the application
type Config struct {
	Provider Provider
	APIKey   string
	// BaseURL overrides the provider endpoint (proxies, compatible gateways, tests).
	BaseURL string
	// Models overrides the provider default model per task.
	Models map[Task]string
}

// DefaultConfig returns the default configuration (OpenAI, no key)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models:   map[Task]string{},
	}
}

// ParseProvider converts a configuration string into a Provider.
// An empty string selects OpenAI.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (expected openai, gemini or anthropic)", s)
	}
}

// DefaultModel returns the model used for a provider when no override is configured
func DefaultModel(p Provider) string {
	if model, ok := defaultModels[p]; ok {
		return model
	}
	return defaultModels[ProviderOpenAI]
}

// Params returns the sampling parameters for a task
func (c *Config) Params(task Task) Params {
	params := taskParams[task]
	params.Model = DefaultModel(c.Provider)
	if model, ok := c.Models[task]; ok && model != "" {
		params.Model = model
	}
	return params
}

// WithModel returns a new Config with a specific model for a task
func (c *Config) WithModel(task Task, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Models:   make(map[Task]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[task] = model
	return newConfig
}
