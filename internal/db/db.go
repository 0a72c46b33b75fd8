// Package db provides PostgreSQL access for the document store: per-user documents
// holding the token usage counter, resume documents and the analytics singleton.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// ErrUserNotFound is returned when no user document exists for a principal.
var ErrUserNotFound = errors.New("user not found")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the document tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// IncrementTotalTokens atomically adds n to the user's token counter.
// It returns ErrUserNotFound when the user document does not exist.
func (db *DB) IncrementTotalTokens(ctx context.Context, userID string, n int) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET total_tokens = total_tokens + $1, updated_at = NOW() WHERE id = $2`,
		n, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment total tokens: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}

// GetUser retrieves a user document by ID. Returns nil, nil when it does not exist.
func (db *DB) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, display_name, resume_id, total_tokens, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.ResumeID, &user.TotalTokens, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUser creates or replaces the user document at user.ID.
// The token counter is left untouched on conflict.
func (db *DB) UpsertUser(ctx context.Context, user *User) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, resume_id, total_tokens)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET email = $2, display_name = $3, resume_id = $4, updated_at = NOW()`,
		user.ID, user.Email, user.DisplayName, user.ResumeID, user.TotalTokens,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// CreateResume stores a resume document under a freshly generated ID
func (db *DB) CreateResume(ctx context.Context, title string, data *types.ResumeData) (uuid.UUID, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, title, content) VALUES ($1, $2, $3)`,
		id, title, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume document by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var resume Resume
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, content, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&resume.ID, &resume.Title, &content, &resume.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(content, &resume.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	return &resume, nil
}

// UpsertAnalytics writes the analytics singleton document
func (db *DB) UpsertAnalytics(ctx context.Context, analytics *Analytics) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO analytics (id, total_users, total_resumes, total_career_paths)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET total_users = $2, total_resumes = $3, total_career_paths = $4, updated_at = NOW()`,
		AnalyticsID, analytics.TotalUsers, analytics.TotalResumes, analytics.TotalCareerPaths,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert analytics: %w", err)
	}
	return nil
}

// GetAnalytics retrieves the analytics singleton. Returns nil, nil when it has not been seeded.
func (db *DB) GetAnalytics(ctx context.Context) (*Analytics, error) {
	var a Analytics
	err := db.pool.QueryRow(ctx,
		`SELECT total_users, total_resumes, total_career_paths, updated_at FROM analytics WHERE id = $1`,
		AnalyticsID,
	).Scan(&a.TotalUsers, &a.TotalResumes, &a.TotalCareerPaths, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}
	return &a, nil
}
