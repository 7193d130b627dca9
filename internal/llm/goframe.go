package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/goframe/llms"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
)

// GoframeReviewer adapts a goframe llms.Model (ollama, gemini) to core.Reviewer.
type GoframeReviewer struct {
	provider string
	model    llms.Model
	logger   *slog.Logger
}

// NewGoframeReviewer wraps model under the given provider name.
func NewGoframeReviewer(provider string, model llms.Model, logger *slog.Logger) (*GoframeReviewer, error) {
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoframeReviewer{provider: provider, model: model, logger: logger}, nil
}

func (g *GoframeReviewer) Name() string { return g.provider }

// Review issues a single completion call.
func (g *GoframeReviewer) Review(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.Call(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp) == "" {
		g.logger.Warn("model returned an empty completion", "provider", g.provider)
		return "", core.ErrNoReviewContent
	}
	return resp, nil
}
