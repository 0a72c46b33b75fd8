package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server"
)

// dependencies are built once per process and shared by every request
type dependencies struct {
	server.Dependencies
	close func()
}

// buildDependencies constructs the token verifier, the completion client and the
// usage store from configuration. A missing API key or DATABASE_URL is not fatal:
// the handlers report the former and usage recording is skipped for the latter.
func buildDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	llmConfig, err := cfg.LLMConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM config: %w", err)
	}

	deps := &dependencies{
		Dependencies: server.Dependencies{
			Verifier:  server.NewTokenService(jwtConfig, logger),
			LLMConfig: llmConfig,
			Logger:    logger,
		},
	}
	var closers []func()

	client, err := llm.NewClient(ctx, llmConfig)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Warn("no completion API key configured; requests will fail until one is set", "provider", llmConfig.Provider)
	case err != nil:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	default:
		deps.LLM = client
		closers = append(closers, func() { _ = client.Close() })
	}

	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; token usage will not be recorded")
	} else {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.Usage = database
		closers = append(closers, database.Close)
	}

	deps.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return deps, nil
}
