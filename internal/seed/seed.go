// Package seed writes the fixed sample documents used by local development and demos.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// DemoUserID is the fixed id of the seeded user document
const DemoUserID = "demo-user"

// Store is the subset of the document store the seed needs
type Store interface {
	CreateResume(ctx context.Context, title string, data *types.ResumeData) (uuid.UUID, error)
	UpsertUser(ctx context.Context, user *db.User) error
	UpsertAnalytics(ctx context.Context, analytics *db.Analytics) error
}

// Result reports the ids written by Run
type Result struct {
	ResumeID    uuid.UUID
	UserID      string
	AnalyticsID string
}

// SampleResume returns the resume document written by the seed
func SampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FullName: "Alex Morgan",
			Title:    "Software Engineer",
			Email:    "alex.morgan@example.com",
			Phone:    "+1 555 0100",
			Location: "San Francisco, CA",
		},
		Profile: "Software engineer with five years of experience building web services and developer tooling.",
		Experience: []types.ExperienceItem{
			{
				Title:     "Software Engineer",
				Company:   "Acme Corp",
				StartDate: "2021-03",
				EndDate:   "Present",
				Description: []string{
					"Built and operated REST APIs serving two million requests per day",
					"Led the migration of batch jobs to a queue-based worker pool",
				},
			},
			{
				Title:     "Junior Developer",
				Company:   "Initech",
				StartDate: "2019-06",
				EndDate:   "2021-02",
				Description: []string{
					"Maintained the internal reporting dashboard",
				},
			},
		},
		Education: []types.EducationItem{
			{Degree: "B.S. Computer Science", School: "State University", StartDate: "2015", EndDate: "2019"},
		},
		Websites: []types.LinkItem{
			{Label: "GitHub", URL: "https://github.com/alexmorgan"},
		},
	}
}

// SampleAnalytics returns the analytics singleton written by the seed
func SampleAnalytics() *db.Analytics {
	return &db.Analytics{
		TotalUsers:       1,
		TotalResumes:     1,
		TotalCareerPaths: 0,
	}
}

// Run writes one resume, the demo user referencing it and the analytics singleton.
// The resume and user writes are ordered; analytics is written concurrently.
// Re-running creates another resume document.
func Run(ctx context.Context, store Store, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := &Result{UserID: DemoUserID, AnalyticsID: db.AnalyticsID}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resumeID, err := store.CreateResume(gCtx, "Sample Resume", SampleResume())
		if err != nil {
			return fmt.Errorf("failed to seed resume: %w", err)
		}
		logger.Info("seeded resume", "resume_id", resumeID)

		user := &db.User{
			ID:          DemoUserID,
			Email:       "alex.morgan@example.com",
			DisplayName: "Alex Morgan",
			ResumeID:    &resumeID,
		}
		if err := store.UpsertUser(gCtx, user); err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		logger.Info("seeded user", "user_id", user.ID)

		result.ResumeID = resumeID
		return nil
	})

	g.Go(func() error {
		if err := store.UpsertAnalytics(gCtx, SampleAnalytics()); err != nil {
			return fmt.Errorf("failed to seed analytics: %w", err)
		}
		logger.Info("seeded analytics", "analytics_id", db.AnalyticsID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
