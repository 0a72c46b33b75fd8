package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("API key is required")

// ErrUpstreamUnavailable indicates the completion request could not be made at all
// (DNS, connection refused, TLS, timeout).
var ErrUpstreamUnavailable = errors.New("completion API unavailable")

// ErrEmptyCompletion indicates a success response that carried no choices.
var ErrEmptyCompletion = errors.New("completion API returned no choices")

// ErrInvalidModelOutput indicates the generated text did not contain a parsable JSON literal.
var ErrInvalidModelOutput = errors.New("model did not return valid JSON")

// UpstreamError is a non-success response from the completion API.
// Message carries the provider's own error message when it sent one.
type UpstreamError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s completion API returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s completion API returned status %d", e.Provider, e.StatusCode)
}
