// Package core defines the essential interfaces and data structures that form the
// backbone of the application: the submission model, the session reducer that owns
// UI state, and the contracts between front ends and the review pipeline.
package core

import (
	"context"
)

// JobDispatcher accepts review submissions for bounded asynchronous processing.
// This interface decouples the front ends from the job execution mechanism.
type JobDispatcher interface {
	// Dispatch queues sub and returns a channel that receives exactly one Result.
	// It returns an error if the job cannot be queued, for example if the queue
	// is full, providing a mechanism for backpressure. The job observes ctx; a
	// job whose context is done before a worker picks it up is not executed.
	Dispatch(ctx context.Context, sub *Submission) (<-chan Result, error)
	// Stop closes the queue and waits for in-flight jobs.
	Stop()
}

// Job represents a single, executable unit of work processed by a dispatcher.
type Job interface {
	Run(ctx context.Context, sub *Submission) (string, error)
}
