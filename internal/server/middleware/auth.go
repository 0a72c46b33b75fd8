// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// userIDKey is the context key for storing the authenticated principal.
const userIDKey ContextKey = "userID"

// TokenVerifier checks a bearer token and returns the principal it identifies.
// Implementations never return an error: any failure is reported as ok == false.
type TokenVerifier interface {
	Verify(tokenString string) (principal string, ok bool)
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively and the header must have exactly two fields.
func BearerToken(authHeader string) (string, bool) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Authenticate verifies the request's bearer token
func Authenticate(verifier TokenVerifier, r *http.Request) (string, bool) {
	token, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return "", false
	}
	return verifier.Verify(token)
}

// AuthMiddleware creates middleware that verifies bearer tokens and adds the principal
// to the request context. Unauthenticated requests get 401 {"error":"Unauthorized"}.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := Authenticate(verifier, r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			ctx := WithUserID(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// WithUserID returns a context carrying the authenticated principal.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID extracts the authenticated principal from the request context.
func GetUserID(r *http.Request) (string, error) {
	userID, ok := r.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}
