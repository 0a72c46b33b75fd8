package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Empty(t, config.APIKey)
}

func TestParams_FixedPerTask(t *testing.T) {
	config := DefaultConfig()

	career := config.Params(TaskCareerPath)
	assert.Equal(t, "gpt-4o-mini", career.Model)
	assert.Equal(t, float32(0.7), career.Temperature)
	assert.Equal(t, 2000, career.MaxTokens)

	resume := config.Params(TaskParseResume)
	assert.Equal(t, "gpt-4o-mini", resume.Model)
	assert.Equal(t, float32(0.2), resume.Temperature)
	assert.Equal(t, 3000, resume.MaxTokens)
}

func TestParams_ProviderDefaultModel(t *testing.T) {
	config := &Config{Provider: ProviderGemini}
	assert.Equal(t, "gemini-2.5-flash", config.Params(TaskCareerPath).Model)

	config = &Config{Provider: ProviderAnthropic}
	assert.Equal(t, "claude-sonnet-4-20250514", config.Params(TaskParseResume).Model)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TaskParseResume, "gpt-4.1")

	// Original should be unchanged
	assert.Equal(t, "gpt-4o-mini", config.Params(TaskParseResume).Model)

	// New config should have custom model, other tasks keep the default
	assert.Equal(t, "gpt-4.1", newConfig.Params(TaskParseResume).Model)
	assert.Equal(t, "gpt-4o-mini", newConfig.Params(TaskCareerPath).Model)

	// Sampling parameters are not affected by the override
	assert.Equal(t, float32(0.2), newConfig.Params(TaskParseResume).Temperature)
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in   string
		want Provider
	}{
		{"", ProviderOpenAI},
		{"openai", ProviderOpenAI},
		{" Gemini ", ProviderGemini},
		{"ANTHROPIC", ProviderAnthropic},
	}
	for _, tt := range tests {
		got, err := ParseProvider(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseProvider("llama")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}
