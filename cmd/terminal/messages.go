package main

import "github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"

// Indicates that the review service has been initialized.
type serviceReadyMsg struct {
	requestor core.Requestor
	cleanup   func()
	provider  string
	err       error
}

// Delivers the outcome of the request started at generation.
type reviewDoneMsg struct {
	generation uint64
	review     string
	err        error
}

type reportSavedMsg struct {
	path string
	err  error
}
