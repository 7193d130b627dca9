// Package llm builds review prompts and sends them to a language model provider.
// Replies are treated as opaque text and are never parsed back into fields.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

// Service is the review requestor: one submission, one prompt, one model call.
type Service struct {
	promptMgr *PromptManager
	reviewer  core.Reviewer
	logger    *slog.Logger
}

// NewService creates a Service. All collaborators are required.
func NewService(promptMgr *PromptManager, reviewer core.Reviewer, logger *slog.Logger) *Service {
	if promptMgr == nil {
		panic("prompt manager cannot be nil")
	}
	if reviewer == nil {
		panic("reviewer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service{promptMgr: promptMgr, reviewer: reviewer, logger: logger}
}

// BuildPrompt renders the review prompt for sub.
func (s *Service) BuildPrompt(sub *core.Submission) (string, error) {
	tag := sub.Language
	if tag == "" {
		tag = language.Default
	}
	return s.promptMgr.Render(CodeReviewPrompt, ModelProvider(s.reviewer.Name()), CodeReviewData{
		Language: tag,
		Code:     sub.SourceText,
	})
}

// Submit validates sub, then performs exactly one remote call. Blank source
// fails with core.ErrEmptySource before any network activity. Transport
// failures are wrapped in *core.RequestError.
func (s *Service) Submit(ctx context.Context, sub *core.Submission) (string, error) {
	if sub == nil || strings.TrimSpace(sub.SourceText) == "" {
		return "", core.ErrEmptySource
	}

	prompt, err := s.BuildPrompt(sub)
	if err != nil {
		return "", fmt.Errorf("failed to build review prompt: %w", err)
	}

	s.logger.Info("requesting code review",
		"provider", s.reviewer.Name(),
		"language", sub.Language,
		"file", sub.FileName,
		"prompt_chars", len(prompt),
	)

	start := time.Now()
	review, err := s.reviewer.Review(ctx, prompt)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		s.logger.Error("code review request failed", "provider", s.reviewer.Name(), "duration", elapsed, "error", err)
		if errors.Is(err, core.ErrNoReviewContent) {
			return "", err
		}
		return "", &core.RequestError{Err: err}
	}
	if review == "" {
		s.logger.Error("code review reply was empty", "provider", s.reviewer.Name(), "duration", elapsed)
		return "", core.ErrNoReviewContent
	}

	s.logger.Info("code review received", "provider", s.reviewer.Name(), "duration", elapsed, "review_chars", len(review))
	return review, nil
}
