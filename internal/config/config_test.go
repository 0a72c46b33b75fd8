package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable ApplyEnv and ResolveAPIKey read
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "DATABASE_URL", "LLM_PROVIDER", "LLM_API_KEY",
		"LLM_BASE_URL", "CAREER_PATH_MODEL", "RESUME_MODEL", "LOG_LEVEL", "LOG_FORMAT",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"port": 9090,
		"llm_provider": "gemini",
		"career_path_model": "gemini-2.5-pro",
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-pro", cfg.CareerPathModel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: 7070
database_url: postgres://localhost/resume_builder
llm_provider: anthropic
resume_model: claude-3-5-haiku-latest
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres://localhost/resume_builder", cfg.DatabaseURL)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.ResumeModel)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "port: [unterminated")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.json", `{"port": 9090, "llm_provider": "gemini", "log_level": "warn"}`)
	t.Setenv("PORT", "3000")
	t.Setenv("LLM_PROVIDER", "anthropic")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "warn", cfg.LogLevel, "file value kept when env is unset")
	assert.Equal(t, "text", cfg.LogFormat, "default fills the rest")
}

func TestLoad_InvalidPortFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load("")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "unknown provider", cfg: Config{LLMProvider: "cohere"}, wantErr: "unknown LLM provider"},
		{name: "unknown log level", cfg: Config{LogLevel: "verbose"}, wantErr: "log level"},
		{name: "unknown log format", cfg: Config{LogFormat: "xml"}, wantErr: "log format"},
		{name: "mixed case provider", cfg: Config{LLMProvider: "OpenAI"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Port: 9000, ResumeModel: "gpt-4o"}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "gpt-4o", merged.ResumeModel)
	assert.Equal(t, "openai", merged.LLMProvider)
	assert.Equal(t, "*", merged.AllowedOrigins)
	assert.Empty(t, cfg.LLMProvider, "receiver is not modified")
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		env      map[string]string
		expected string
	}{
		{
			name:     "explicit key wins",
			cfg:      Config{APIKey: "explicit", LLMProvider: "openai"},
			env:      map[string]string{"OPENAI_API_KEY": "from-env"},
			expected: "explicit",
		},
		{
			name:     "openai fallback",
			cfg:      Config{LLMProvider: "openai"},
			env:      map[string]string{"OPENAI_API_KEY": "sk-openai"},
			expected: "sk-openai",
		},
		{
			name:     "gemini fallback",
			cfg:      Config{LLMProvider: "gemini"},
			env:      map[string]string{"GEMINI_API_KEY": "gm-key", "OPENAI_API_KEY": "sk-openai"},
			expected: "gm-key",
		},
		{
			name:     "anthropic fallback",
			cfg:      Config{LLMProvider: "anthropic"},
			env:      map[string]string{"ANTHROPIC_API_KEY": "sk-ant"},
			expected: "sk-ant",
		},
		{
			name:     "nothing configured",
			cfg:      Config{LLMProvider: "openai"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, tt.cfg.ResolveAPIKey())
		})
	}
}

func TestLLMConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg := &Config{
		LLMProvider:     "anthropic",
		LLMBaseURL:      "http://localhost:9999",
		CareerPathModel: "claude-3-5-haiku-latest",
	}

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderAnthropic, llmCfg.Provider)
	assert.Equal(t, "sk-ant", llmCfg.APIKey)
	assert.Equal(t, "http://localhost:9999", llmCfg.BaseURL)
	assert.Equal(t, "claude-3-5-haiku-latest", llmCfg.Params(llm.TaskCareerPath).Model)
	assert.Equal(t, llm.DefaultModel(llm.ProviderAnthropic), llmCfg.Params(llm.TaskParseResume).Model)
}
