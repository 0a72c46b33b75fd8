package server

import (
	"context"
	"log/slog"
)

// UsageStore persists per-principal token usage
type UsageStore interface {
	IncrementTotalTokens(ctx context.Context, userID string, n int) error
}

// recordUsage adds the completion's tokens to the principal's counter.
// Failures are logged and never reach the client. The write is detached from
// the request's cancellation so a client disconnect does not drop it.
func (s *Server) recordUsage(ctx context.Context, logger *slog.Logger, userID string, tokens int) {
	if s.usage == nil {
		logger.Debug("usage store not configured, skipping usage update", "user_id", userID)
		return
	}
	if err := s.usage.IncrementTotalTokens(context.WithoutCancel(ctx), userID, tokens); err != nil {
		logger.Warn("failed to record token usage", "user_id", userID, "tokens", tokens, "error", err)
		return
	}
	logger.Debug("recorded token usage", "user_id", userID, "tokens", tokens)
}
