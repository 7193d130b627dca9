package core

import (
	"context"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

// Submission is one snippet sent for review.
type Submission struct {
	SourceText string
	Language   language.Tag
	// FileName is empty when the code was pasted rather than uploaded.
	FileName string
}

// Result carries the outcome of a single dispatched review.
type Result struct {
	Review string
	Err    error
}

// Reviewer sends one fully rendered prompt to a language model and returns its
// first text reply verbatim.
//
//go:generate mockgen -destination=../../mocks/mock_reviewer.go -package=mocks . Reviewer
type Reviewer interface {
	Review(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider, e.g. "anthropic".
	Name() string
}

// Requestor turns a Submission into review text.
//
//go:generate mockgen -destination=../../mocks/mock_requestor.go -package=mocks . Requestor
type Requestor interface {
	Submit(ctx context.Context, sub *Submission) (string, error)
}
