// Package config provides configuration loading and validation for the server,
// the Lambda entrypoint and the tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration that can be loaded from a JSON
// or YAML file. All fields are optional; environment variables override file values
// and anything left empty is filled from Defaults.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty" yaml:"port,omitempty"`
	AllowedOrigins string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"` // CORS Access-Control-Allow-Origin value

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Completion API
	LLMProvider     string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"`           // openai, gemini or anthropic
	APIKey          string `json:"api_key,omitempty" yaml:"api_key,omitempty"`                     // Provider API key
	LLMBaseURL      string `json:"llm_base_url,omitempty" yaml:"llm_base_url,omitempty"`           // Provider endpoint override
	CareerPathModel string `json:"career_path_model,omitempty" yaml:"career_path_model,omitempty"` // Model override for career paths
	ResumeModel     string `json:"resume_model,omitempty" yaml:"resume_model,omitempty"`           // Model override for resume parsing

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json
}

// providerKeyEnv maps each provider to its dedicated API key variable
var providerKeyEnv = map[llm.Provider]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// Defaults returns the built-in configuration values
func Defaults() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: "*",
		LLMProvider:    string(llm.ProviderOpenAI),
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds the effective configuration: the optional file at path, then
// environment overrides, then defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any environment variables that are set.
// An unparseable PORT is kept as -1 so Validate reports it.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			port = -1
		}
		c.Port = port
	}
	setFromEnv(&c.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setFromEnv(&c.DatabaseURL, "DATABASE_URL")
	setFromEnv(&c.LLMProvider, "LLM_PROVIDER")
	setFromEnv(&c.APIKey, "LLM_API_KEY")
	setFromEnv(&c.LLMBaseURL, "LLM_BASE_URL")
	setFromEnv(&c.CareerPathModel, "CAREER_PATH_MODEL")
	setFromEnv(&c.ResumeModel, "RESUME_MODEL")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
	setFromEnv(&c.LogFormat, "LOG_FORMAT")
}

func setFromEnv(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

// Validate checks that the configuration has valid values.
// A missing API key is not an error: the handlers report it per request.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log format %q (expected text or json)", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AllowedOrigins == "" {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.CareerPathModel == "" {
		result.CareerPathModel = defaults.CareerPathModel
	}
	if result.ResumeModel == "" {
		result.ResumeModel = defaults.ResumeModel
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	return result
}

// ResolveAPIKey returns the configured key, falling back to the provider's own
// environment variable (OPENAI_API_KEY, GEMINI_API_KEY or ANTHROPIC_API_KEY).
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return ""
	}
	return os.Getenv(providerKeyEnv[provider])
}

// LLMConfig converts the configuration into the completion client configuration
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return nil, err
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.APIKey = c.ResolveAPIKey()
	cfg.BaseURL = c.LLMBaseURL
	if c.CareerPathModel != "" {
		cfg.Models[llm.TaskCareerPath] = c.CareerPathModel
	}
	if c.ResumeModel != "" {
		cfg.Models[llm.TaskParseResume] = c.ResumeModel
	}
	return cfg, nil
}
