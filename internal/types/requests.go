//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedBody indicates the request body is not valid JSON.
var ErrMalformedBody = errors.New("malformed request body")

// ErrMissingField indicates a required field is absent, empty or of the wrong type.
var ErrMissingField = errors.New("missing required field")

var validate = validator.New()

// CareerPathRequest is the body of a career-path request.
type CareerPathRequest struct {
	Profession string `json:"profession" validate:"required"`
}

// ResumeRequest is the body of a parse-resume request.
type ResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

// Validate validates the CareerPathRequest using the validator.
func (r *CareerPathRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ResumeRequest using the validator.
func (r *ResumeRequest) Validate() error {
	return validate.Struct(r)
}

// ParseCareerPathRequest decodes and validates a career-path request body.
// The profession must be a string that is non-empty once trimmed; the trimmed
// value is returned.
func ParseCareerPathRequest(body []byte) (*CareerPathRequest, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}

	profession, _ := stringField(fields, "profession")
	req := &CareerPathRequest{Profession: strings.TrimSpace(profession)}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: profession: %v", ErrMissingField, err)
	}
	return req, nil
}

// ParseResumeRequest decodes and validates a parse-resume request body.
// Only presence is checked: an empty string is rejected but whitespace is kept as-is.
// A non-string text (number, bool, object) is also rejected as missing rather than
// being stringified into the prompt; the field must be a JSON string.
func ParseResumeRequest(body []byte) (*ResumeRequest, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}

	text, _ := stringField(fields, "text")
	req := &ResumeRequest{Text: text}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: text: %v", ErrMissingField, err)
	}
	return req, nil
}

// decodeFields parses the body as JSON. A valid JSON value that is not an object
// yields no fields rather than an error.
func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	if !json.Valid(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil
	}
	return fields, nil
}

// stringField returns the named field when it holds a JSON string.
func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
