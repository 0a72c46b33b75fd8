package main

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function behind an API Gateway HTTP API",
	Long: `Start the AWS Lambda runtime loop. Each API Gateway (payload v2) event is routed
through the same handlers as the HTTP server. Logs are written as JSON unless
--log-format is given.`,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("log-format") {
		setupLogging(cmd.ErrOrStderr(), appConfig.LogLevel, "json")
	}

	logger := slog.Default()
	deps, err := buildDependencies(cmd.Context(), appConfig, logger)
	if err != nil {
		return err
	}
	defer deps.close()

	srv, err := server.New(server.Config{AllowedOrigins: appConfig.AllowedOrigins}, deps.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	lambda.Start(srv.LambdaHandler())
	return nil
}
