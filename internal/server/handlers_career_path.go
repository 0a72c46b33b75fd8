package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// careerPathResponse is the success body of POST /api/career-path
type careerPathResponse struct {
	Steps       []json.RawMessage `json:"steps"`
	TotalTokens int               `json:"total_tokens"`
}

// handleCareerPath generates a roadmap of career steps for a profession
func (s *Server) handleCareerPath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.requestLogger(r).With("handler", "career_path")

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, ErrUnauthorized, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Info("failed to read request body", "error", err)
		s.writeError(w, &ErrValidation{Field: "body", Message: "Invalid request body"}, nil)
		return
	}

	req, err := types.ParseCareerPathRequest(body)
	if err != nil {
		logger.Info("invalid career path request", "error", err)
		if errors.Is(err, types.ErrMalformedBody) {
			s.writeError(w, &ErrValidation{Field: "body", Message: "Invalid request body"}, nil)
			return
		}
		s.writeError(w, &ErrValidation{Field: "profession", Message: "No profession provided."}, nil)
		return
	}

	if s.llm == nil {
		logger.Error("completion API key not configured")
		s.writeError(w, &ErrConfiguration{Setting: "OPENAI_API_KEY", Message: msgMissingAPIKey}, nil)
		return
	}

	conv := prompts.CareerPath(req.Profession)
	params := s.llmConfig.Params(llm.TaskCareerPath)
	logger.Debug("requesting career path", "profession", req.Profession, "model", params.Model)

	completion, err := s.llm.Complete(ctx, llm.Request{System: conv.System, User: conv.User, Params: params})
	if err != nil {
		logger.Error("completion request failed", "error", err)
		s.writeError(w, err, nil)
		return
	}

	steps, err := llm.ExtractArray(completion.Text)
	if err != nil {
		logger.Error("failed to extract career path", "error", err, "output", truncate(completion.Text, 500))
		s.writeError(w, err, nil)
		return
	}
	logCareerPathShape(logger, steps)

	s.recordUsage(ctx, logger, userID, completion.TotalTokens)

	s.jsonResponse(w, http.StatusOK, careerPathResponse{
		Steps:       steps,
		TotalTokens: completion.TotalTokens,
	})
}

// logCareerPathShape logs the roadmap structure. Cross-references are not enforced,
// so dangling ids are reported but the steps are returned as generated.
func logCareerPathShape(logger *slog.Logger, raw []json.RawMessage) {
	steps := make([]types.CareerStep, 0, len(raw))
	for _, r := range raw {
		var step types.CareerStep
		if err := json.Unmarshal(r, &step); err != nil {
			logger.Debug("career step does not match the expected shape", "error", err)
			continue
		}
		steps = append(steps, step)
	}
	logger.Info("generated career path",
		"steps", len(raw),
		"roots", len(types.RootSteps(steps)),
		"dangling_refs", len(types.DanglingReferences(steps)),
	)
}

// truncate shortens s to at most n bytes for logging
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
