package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

const (
	pathCareerPath  = "/api/career-path"
	pathParseResume = "/api/parse-resume"

	// maxBodyBytes bounds request bodies; resumes are plain text.
	maxBodyBytes = 1 << 20
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	verifier   middleware.TokenVerifier
	llm        llm.Client
	llmConfig  *llm.Config
	usage      UsageStore
	logger     *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins string
}

// Dependencies are the long-lived collaborators injected into the server.
// LLM may be nil when no API key is configured; Usage may be nil to skip usage recording.
type Dependencies struct {
	Verifier  middleware.TokenVerifier
	LLM       llm.Client
	LLMConfig *llm.Config
	Usage     UsageStore
	Logger    *slog.Logger
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Verifier == nil {
		return nil, fmt.Errorf("token verifier is required")
	}
	if deps.LLMConfig == nil {
		deps.LLMConfig = llm.DefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = "*"
	}

	s := &Server{
		verifier:  deps.Verifier,
		llm:       deps.LLM,
		llmConfig: deps.LLMConfig,
		usage:     deps.Usage,
		logger:    deps.Logger.With("component", "server"),
	}

	auth := middleware.AuthMiddleware(s.verifier)

	// Setup router. The API paths accept every method so that the
	// handlers can answer non-POST requests with a JSON 405.
	mux := http.NewServeMux()
	mux.Handle(pathCareerPath, s.requirePOST(auth(http.HandlerFunc(s.handleCareerPath))))
	mux.Handle(pathParseResume, s.requirePOST(auth(http.HandlerFunc(s.handleParseResume))))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.withRequestID(s.withLogging(s.withRecover(s.withCORS(cfg.AllowedOrigins, mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Completion calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

type loggerKey struct{}

// requestLogger returns the request-scoped logger set by withRequestID
func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	if logger, ok := r.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return s.logger
}

// withRequestID propagates or assigns X-Request-ID and attaches it to the request logger
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger := s.logger.With("request_id", requestID)
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.requestLogger(r).Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withRecover turns a panic into a 500 JSON response
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.requestLogger(r).Error("panic serving request", "panic", rec, "path", r.URL.Path)
				s.errorResponse(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers. OPTIONS on the API paths falls through to
// requirePOST and gets the JSON 405; other paths answer preflight with 200.
func (s *Server) withCORS(allowedOrigins string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions && !isAPIPath(r.URL.Path) {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAPIPath(path string) bool {
	return path == pathCareerPath || path == pathParseResume
}

// requirePOST answers anything but POST with 405 before authentication runs
func (s *Server) requirePOST(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			s.writeError(w, ErrMethodNotAllowed, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Error: message})
}

// errorBody is the JSON shape of every non-200 response
type errorBody struct {
	Error    string       `json:"error"`
	DebugLog []debugEntry `json:"debugLog,omitempty"`
}

// writeError maps err to its status and public message. A non-nil debug log is
// included in the body.
func (s *Server) writeError(w http.ResponseWriter, err error, debug *debugLog) {
	body := errorBody{Error: PublicMessage(err)}
	if debug != nil {
		body.DebugLog = debug.Entries()
	}
	s.jsonResponse(w, HTTPStatus(err), body)
}
