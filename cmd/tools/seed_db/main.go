// Command seed_db writes the sample documents used for local development:
// one resume, the demo-user document referencing it and the analytics singleton.
//
// Usage:
//
//	go run cmd/tools/seed_db/main.go
//
// Requires DATABASE_URL environment variable to be set. Re-running creates
// another resume document and points demo-user at it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL environment variable not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	result, err := seed.Run(ctx, database, logger)
	if err != nil {
		return err
	}

	fmt.Println("=== Seed complete ===")
	fmt.Printf("resume:    %s\n", result.ResumeID)
	fmt.Printf("user:      %s\n", result.UserID)
	fmt.Printf("analytics: %s\n", result.AnalyticsID)
	return nil
}
