package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusAndPublicMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "unauthorized",
			err:         ErrUnauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized",
		},
		{
			name:        "method not allowed",
			err:         ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "validation",
			err:         &ErrValidation{Field: "profession", Message: "No profession provided."},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No profession provided.",
		},
		{
			name:        "wrapped validation",
			err:         fmt.Errorf("parse: %w", &ErrValidation{Field: "body", Message: "Invalid request body"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "missing api key",
			err:         &ErrConfiguration{Setting: "OPENAI_API_KEY", Message: msgMissingAPIKey},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "OpenAI API key not configured",
		},
		{
			name:        "upstream with message",
			err:         &llm.UpstreamError{Provider: llm.ProviderOpenAI, StatusCode: 429, Message: "rate limited"},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "rate limited",
		},
		{
			name:        "upstream without message",
			err:         &llm.UpstreamError{Provider: llm.ProviderOpenAI, StatusCode: 502},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgUpstreamFallback,
		},
		{
			name:        "upstream unavailable",
			err:         fmt.Errorf("%w: dial tcp: connection refused", llm.ErrUpstreamUnavailable),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgUpstreamFallback,
		},
		{
			name:        "invalid model output",
			err:         fmt.Errorf("%w: no '[' found", llm.ErrInvalidModelOutput),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "AI did not return valid JSON.",
		},
		{
			name:        "anything else",
			err:         errors.New("unexpected end of JSON input"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantMessage, PublicMessage(tt.err))
		})
	}
}
