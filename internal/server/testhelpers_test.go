package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/require"
)

const (
	validToken    = "valid-token"
	testPrincipal = "user-123"
)

// fakeVerifier accepts a fixed set of tokens
type fakeVerifier struct {
	mu     sync.Mutex
	tokens map[string]string
	calls  int
}

func (v *fakeVerifier) Verify(token string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	principal, ok := v.tokens[token]
	return principal, ok
}

// fakeLLM returns a canned completion and records every request
type fakeLLM struct {
	mu         sync.Mutex
	completion *llm.Completion
	err        error
	panicWith  any
	requests   []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (*llm.Completion, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeUsage records increments
type fakeUsage struct {
	mu      sync.Mutex
	err     error
	calls   []usageCall
	ctxErrs []error
}

type usageCall struct {
	userID string
	tokens int
}

func (f *fakeUsage) IncrementTotalTokens(ctx context.Context, userID string, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, usageCall{userID: userID, tokens: n})
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.err
}

// testServer bundles a server with its fakes
type testServer struct {
	*Server
	verifier *fakeVerifier
	llm      *fakeLLM
	usage    *fakeUsage
}

type testOption func(*Dependencies)

func withoutLLM() testOption {
	return func(d *Dependencies) { d.LLM = nil }
}

func withoutUsage() testOption {
	return func(d *Dependencies) { d.Usage = nil }
}

func withLLMConfig(cfg *llm.Config) testOption {
	return func(d *Dependencies) { d.LLMConfig = cfg }
}

func newTestServer(t *testing.T, modelText string, opts ...testOption) *testServer {
	t.Helper()
	ts := &testServer{
		verifier: &fakeVerifier{tokens: map[string]string{validToken: testPrincipal}},
		llm:      &fakeLLM{completion: &llm.Completion{Text: modelText, TotalTokens: 150, Model: "gpt-4o-mini"}},
		usage:    &fakeUsage{},
	}

	deps := Dependencies{
		Verifier:  ts.verifier,
		LLM:       ts.llm,
		LLMConfig: llm.DefaultConfig(),
		Usage:     ts.usage,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	s, err := New(Config{Port: 0}, deps)
	require.NoError(t, err)
	ts.Server = s
	return ts
}

// do sends a request through the full middleware chain
func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

