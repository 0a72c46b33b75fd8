package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /api/career-path and POST /api/parse-resume.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		appConfig.Port = servePort
	}

	logger := slog.Default()
	deps, err := buildDependencies(cmd.Context(), appConfig, logger)
	if err != nil {
		return err
	}
	defer deps.close()

	srv, err := server.New(server.Config{
		Port:           appConfig.Port,
		AllowedOrigins: appConfig.AllowedOrigins,
	}, deps.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
