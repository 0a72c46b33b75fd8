package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete generates content with the system persona as system instruction
func (c *GeminiClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := c.client.GenerativeModel(req.Params.Model)
	model.SetTemperature(req.Params.Temperature)
	model.SetMaxOutputTokens(int32(req.Params.MaxTokens))
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	return completionFromResponse(resp, req.Params.Model)
}

// completionFromResponse maps a Gemini response onto a Completion.
// Missing usage metadata counts as zero tokens.
func completionFromResponse(resp *genai.GenerateContentResponse, model string) (*Completion, error) {
	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	completion := &Completion{Text: text, Model: model}
	if resp.UsageMetadata != nil {
		completion.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return completion, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

func classifyGeminiError(err error) error {
	var httpErr *googleapi.Error
	if errors.As(err, &httpErr) {
		return &UpstreamError{Provider: ProviderGemini, StatusCode: httpErr.Code, Message: httpErr.Message}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if st := apiErr.GRPCStatus(); st != nil {
			if st.Code() == codes.Unavailable || st.Code() == codes.DeadlineExceeded {
				return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			return &UpstreamError{Provider: ProviderGemini, StatusCode: apiErr.HTTPCode(), Message: st.Message()}
		}
		return &UpstreamError{Provider: ProviderGemini, StatusCode: apiErr.HTTPCode(), Message: apiErr.Reason()}
	}

	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
