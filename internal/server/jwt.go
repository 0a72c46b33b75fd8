package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// Claims represents JWT claims. The principal is UserID when present,
// otherwise the registered subject.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal returns the identity the token was issued for.
func (c *Claims) Principal() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

var _ middleware.TokenVerifier = (*TokenService)(nil)

// TokenService verifies bearer tokens against a shared HS256 secret and can mint
// tokens for development.
type TokenService struct {
	config *config.JWTConfig
	parser *jwt.Parser
	logger *slog.Logger
}

// NewTokenService creates a token service with the given configuration.
// Construct it once per process and share it.
func NewTokenService(cfg *config.JWTConfig, logger *slog.Logger) *TokenService {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &TokenService{
		config: cfg,
		parser: jwt.NewParser(opts...),
		logger: logger.With("component", "auth"),
	}
}

// GenerateToken generates a JWT token for the given principal.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is empty")
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Principal() == "" {
		return nil, fmt.Errorf("token carries no principal")
	}

	return claims, nil
}

// Verify implements middleware.TokenVerifier. Failures are logged at debug level
// and reported as absent.
func (s *TokenService) Verify(tokenString string) (string, bool) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		s.logger.Debug("token rejected", "error", err)
		return "", false
	}
	return claims.Principal(), true
}
