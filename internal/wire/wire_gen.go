// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/app"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/jobs"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/llm"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	loggerConfig := provideLoggerConfig(cfg)
	logWriter, logCleanup, err := provideLogWriter(loggerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	slogLogger := provideSlogLogger(loggerConfig, logWriter)

	// Reviewer
	reviewer, err := provideReviewer(ctx, cfg, slogLogger)
	if err != nil {
		logCleanup()
		return nil, nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		logCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Review service
	service := llm.NewService(promptMgr, reviewer, slogLogger)

	// Review Job
	reviewJob := jobs.NewReviewJob(service, slogLogger)

	// Dispatcher
	dispatcher, dispatcherCleanup := provideDispatcher(cfg, reviewJob, slogLogger)

	// Sessions
	sessions := provideSessionManager(cfg, slogLogger)

	// Server
	srv := server.NewServer(ctx, cfg, sessions, dispatcher, slogLogger)

	// App
	application := app.NewApp(cfg, srv, dispatcher, slogLogger)

	cleanup := func() {
		dispatcherCleanup()
		logCleanup()
	}

	return application, cleanup, nil
}

// InitializeService builds the review requestor for cfg.
func InitializeService(ctx context.Context, cfg *config.Config) (*llm.Service, func(), error) {
	// Setup logger
	loggerConfig := provideLoggerConfig(cfg)
	logWriter, logCleanup, err := provideLogWriter(loggerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	slogLogger := provideSlogLogger(loggerConfig, logWriter)

	// Reviewer
	reviewer, err := provideReviewer(ctx, cfg, slogLogger)
	if err != nil {
		logCleanup()
		return nil, nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		logCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	service := llm.NewService(promptMgr, reviewer, slogLogger)
	return service, logCleanup, nil
}
