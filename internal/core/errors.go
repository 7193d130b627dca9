package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySource is returned when the submitted text is blank after trimming.
	ErrEmptySource = errors.New("source text is empty")
	// ErrNoReviewContent is returned when the model reply has no text content.
	ErrNoReviewContent = errors.New("response contained no review content")
)

// User-facing messages shown in the error panel.
const (
	MsgEmptySource   = "Please upload a code file or paste code first"
	MsgNoReview      = "Failed to get review from AI"
	msgRequestPrefix = "Error analyzing code: "
)

// RequestError wraps any transport failure raised during the remote call.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("review request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// UserMessage maps a submission error to the message displayed to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptySource) {
		return MsgEmptySource
	}
	if errors.Is(err, ErrNoReviewContent) {
		return MsgNoReview
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		return msgRequestPrefix + reqErr.Err.Error()
	}
	return msgRequestPrefix + err.Error()
}
