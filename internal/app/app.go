// Package app orchestrates the main components of the code review server.
// It wires together the configuration, server, and job dispatcher.
package app

import (
	"log/slog"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/server"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher core.JobDispatcher
}

// NewApp sets up the application with its dependencies.
func NewApp(cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, logger *slog.Logger) *App {
	logger.Info("initializing code review assistant",
		"llm_provider", cfg.AI.LLMProvider,
		"generator_model", cfg.AI.GeneratorModel,
		"max_workers", cfg.MaxWorkers)

	return &App{
		cfg:        cfg,
		server:     srv,
		logger:     logger,
		dispatcher: dispatcher,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting code review assistant",
		"server_port", a.cfg.Server.Port,
		"max_workers", a.cfg.MaxWorkers)

	err := a.server.Start()
	if err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}

	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down code review assistant")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	// Stop the job dispatcher, allowing in-flight jobs to finish.
	a.dispatcher.Stop()

	if serverErr != nil {
		a.logger.Error("code review assistant stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("code review assistant stopped successfully")
	return nil
}
