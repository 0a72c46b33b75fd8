package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// AnalyticsID is the fixed key of the analytics singleton document
const AnalyticsID = "global"

// User is the per-principal document. TotalTokens is only ever changed by
// IncrementTotalTokens.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	ResumeID    *uuid.UUID `json:"resume_id,omitempty"`
	TotalTokens int64      `json:"total_tokens"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Resume is a stored resume document
type Resume struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Data      types.ResumeData `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
}

// Analytics is the application-wide counters document
type Analytics struct {
	TotalUsers       int       `json:"total_users"`
	TotalResumes     int       `json:"total_resumes"`
	TotalCareerPaths int       `json:"total_career_paths"`
	UpdatedAt        time.Time `json:"updated_at"`
}
