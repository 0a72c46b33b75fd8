package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleParseResume extracts structured resume data from free-form text.
// Every failure after authentication carries the request's debugLog.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.requestLogger(r).With("handler", "parse_resume")
	debug := &debugLog{}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, ErrUnauthorized, nil)
		return
	}
	debug.Add("authenticated", "userId", userID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		debug.Add("read body failed", "error", err.Error())
		s.writeError(w, err, debug)
		return
	}

	req, err := types.ParseResumeRequest(body)
	if err != nil {
		logger.Info("invalid parse resume request", "error", err)
		if errors.Is(err, types.ErrMissingField) {
			debug.Add("validation failed", "error", err.Error())
			s.writeError(w, &ErrValidation{Field: "text", Message: "No resume text provided."}, debug)
			return
		}
		debug.Add("parse body failed", "error", err.Error())
		s.writeError(w, err, debug)
		return
	}
	debug.Add("received resume text", "length", len(req.Text))

	if s.llm == nil {
		logger.Error("completion API key not configured")
		debug.Add("configuration check failed", "setting", "OPENAI_API_KEY")
		s.writeError(w, &ErrConfiguration{Setting: "OPENAI_API_KEY", Message: msgMissingAPIKey}, debug)
		return
	}

	conv := prompts.ParseResume(req.Text)
	params := s.llmConfig.Params(llm.TaskParseResume)
	debug.Add("calling completion API", "model", params.Model)

	completion, err := s.llm.Complete(ctx, llm.Request{System: conv.System, User: conv.User, Params: params})
	if err != nil {
		logger.Error("completion request failed", "error", err)
		debug.Add("completion failed", "error", err.Error())
		s.writeError(w, err, debug)
		return
	}
	debug.Add("completion received", "totalTokens", completion.TotalTokens, "length", len(completion.Text))

	fields, err := llm.ExtractObject(completion.Text)
	if err != nil {
		logger.Error("failed to extract resume data", "error", err, "output", truncate(completion.Text, 500))
		debug.Add("extraction failed", "error", err.Error(), "output", truncate(completion.Text, 500))
		s.writeError(w, err, debug)
		return
	}

	s.recordUsage(ctx, logger, userID, completion.TotalTokens)

	fields["total_tokens"] = json.RawMessage(strconv.Itoa(completion.TotalTokens))
	s.jsonResponse(w, http.StatusOK, fields)
}
