// Package server provides the HTTP API for the resume builder: career-path generation
// and resume parsing behind bearer-token authentication.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Public messages for upstream failures
const (
	msgUpstreamFallback   = "Failed to get a response from the AI service."
	msgInvalidModelOutput = "AI did not return valid JSON."
	msgMissingAPIKey      = "OpenAI API key not configured"
)

// ErrUnauthorized indicates a missing, malformed or rejected bearer token
var ErrUnauthorized = errors.New("Unauthorized") //nolint:staticcheck // public message

// ErrMethodNotAllowed indicates a non-POST request to a handler
var ErrMethodNotAllowed = errors.New("Method Not Allowed") //nolint:staticcheck // public message

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrConfiguration indicates the server is missing a setting it needs to serve the request
type ErrConfiguration struct {
	Setting string
	Message string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s - %s", e.Setting, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message placed in the "error" field of the response body
func PublicMessage(err error) string {
	var (
		validationErr *ErrValidation
		configErr     *ErrConfiguration
		upstreamErr   *llm.UpstreamError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.Is(err, ErrMethodNotAllowed):
		return ErrMethodNotAllowed.Error()
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &configErr):
		return configErr.Message
	case errors.As(err, &upstreamErr):
		if upstreamErr.Message != "" {
			return upstreamErr.Message
		}
		return msgUpstreamFallback
	case errors.Is(err, llm.ErrUpstreamUnavailable), errors.Is(err, llm.ErrEmptyCompletion):
		return msgUpstreamFallback
	case errors.Is(err, llm.ErrInvalidModelOutput):
		return msgInvalidModelOutput
	default:
		return err.Error()
	}
}
