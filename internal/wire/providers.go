package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/wire"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/app"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/jobs"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/llm"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/logger"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/server"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/session"
)

// ServiceSet builds the review requestor shared by every front end.
var ServiceSet = wire.NewSet(
	llm.NewPromptManager,
	llm.NewService,
	provideReviewer,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
)

// AppSet builds the HTTP application.
var AppSet = wire.NewSet(
	ServiceSet,
	config.LoadConfig,
	app.NewApp,
	server.NewServer,
	jobs.NewReviewJob,
	provideDispatcher,
	provideSessionManager,
	wire.Bind(new(core.Requestor), new(*llm.Service)),
)

func provideReviewer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Reviewer, error) {
	httpClient := llm.NewHTTPClient(cfg.AI.RequestTimeout)

	switch cfg.AI.LLMProvider {
	case config.ProviderAnthropic:
		logger.Info("using Anthropic messages API", "model", cfg.AI.GeneratorModel, "endpoint", cfg.AI.AnthropicAPIURL)
		return llm.NewAnthropicClient(cfg.AI.GeneratorModel, cfg.AI.MaxTokens,
			llm.WithEndpoint(cfg.AI.AnthropicAPIURL),
			llm.WithAPIKey(cfg.AI.AnthropicAPIKey),
			llm.WithAPIVersion(cfg.AI.AnthropicVersion),
			llm.WithHTTPClient(httpClient),
			llm.WithLogger(logger),
		)
	case config.ProviderGemini:
		logger.Info("using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		model, err := gemini.New(ctx, gemini.WithModel(cfg.AI.GeneratorModel), gemini.WithAPIKey(cfg.AI.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return llm.NewGoframeReviewer(config.ProviderGemini, model, logger)
	case config.ProviderOllama:
		logger.Info("using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(httpClient),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return llm.NewGoframeReviewer(config.ProviderOllama, model, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

func provideDispatcher(cfg *config.Config, job core.Job, logger *slog.Logger) (core.JobDispatcher, func()) {
	d := jobs.NewDispatcher(job, cfg.MaxWorkers, cfg.QueueSize, logger)
	return d, d.Stop
}

func provideSessionManager(cfg *config.Config, logger *slog.Logger) *session.Manager {
	return session.NewManager(cfg.Server.SessionTTL, logger)
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg logger.Config) (io.Writer, func(), error) {
	w, closeFn, err := logger.OpenOutput(cfg)
	if err != nil {
		return nil, nil, err
	}
	return w, func() { _ = closeFn() }, nil
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}
