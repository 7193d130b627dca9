//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/app"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/llm"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

func InitializeService(ctx context.Context, cfg *config.Config) (*llm.Service, func(), error) {
	wire.Build(ServiceSet)
	return &llm.Service{}, nil, nil
}
