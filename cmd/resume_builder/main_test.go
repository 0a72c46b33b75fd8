package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath, logLevel, logFormat = "", "", ""
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	out, err := executeCommand(t, "token", "--user", "user-7")
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	assert.Len(t, strings.Split(token, "."), 3)
}

func TestTokenCommand_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := executeCommand(t, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm_provider: cohere\n"), 0644))
	t.Setenv("LLM_PROVIDER", "")

	_, err := executeCommand(t, "token", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}

func TestRootCommand_InvalidLogLevelFlag(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	_, err := executeCommand(t, "token", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestBuildDependencies_WithoutKeyOrDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	for _, key := range []string{"LLM_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := config.Defaults()
	deps, err := buildDependencies(context.Background(), &cfg, slog.Default())
	require.NoError(t, err)
	defer deps.close()

	assert.NotNil(t, deps.Verifier)
	assert.Nil(t, deps.LLM, "missing key leaves the client unset")
	assert.Nil(t, deps.Usage, "no DATABASE_URL leaves usage recording off")
}

func TestBuildDependencies_WithKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg := config.Defaults()
	cfg.APIKey = "sk-test"
	deps, err := buildDependencies(context.Background(), &cfg, slog.Default())
	require.NoError(t, err)
	defer deps.close()

	assert.NotNil(t, deps.LLM)
	assert.Equal(t, "sk-test", deps.LLMConfig.APIKey)
}

func TestBuildDependencies_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := config.Defaults()
	_, err := buildDependencies(context.Background(), &cfg, slog.Default())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
}
