package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

// ReviewJob is a job that performs one AI-assisted code review.
type ReviewJob struct {
	requestor core.Requestor
	logger    *slog.Logger
}

// NewReviewJob creates a new ReviewJob around a requestor.
func NewReviewJob(requestor core.Requestor, logger *slog.Logger) core.Job {
	if requestor == nil {
		panic("requestor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{requestor: requestor, logger: logger}
}

// Run executes the review for a submission.
func (j *ReviewJob) Run(ctx context.Context, sub *core.Submission) (string, error) {
	if err := j.validateInputs(ctx, sub); err != nil {
		j.logger.Error("input validation failed", "error", err)
		return "", fmt.Errorf("input validation failed: %w", err)
	}

	start := time.Now()
	review, err := j.requestor.Submit(ctx, sub)
	if err != nil {
		return "", err
	}

	j.logger.Info("review job completed", "language", sub.Language, "file", sub.FileName, "duration", time.Since(start).Round(time.Millisecond))
	return review, nil
}

// validateInputs checks the fields a job needs. Blank source is left to the
// requestor so it reports the user-facing validation error.
func (j *ReviewJob) validateInputs(ctx context.Context, sub *core.Submission) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if sub == nil {
		return fmt.Errorf("submission cannot be nil")
	}
	if sub.Language != "" {
		if _, err := language.Parse(string(sub.Language)); err != nil {
			return err
		}
	}
	return nil
}
