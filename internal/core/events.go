package core

import (
	"strings"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

// Event is a single transition applied to a Session by Reduce.
type Event interface {
	apply(s Session) Session
}

// FileLoaded records a file whose full text content has been read.
type FileLoaded struct {
	Name    string
	Content string
}

// SourceEdited replaces the source text with a direct edit.
type SourceEdited struct {
	Text string
}

// LanguageSelected is an explicit user choice from the language selector.
type LanguageSelected struct {
	Tag language.Tag
}

// SubmitRequested asks to start a review of the current source text.
type SubmitRequested struct{}

// ReviewSucceeded delivers the review for the request started at Generation.
type ReviewSucceeded struct {
	Generation uint64
	Review     string
}

// ReviewFailed delivers a failure for the request started at Generation.
type ReviewFailed struct {
	Generation uint64
	Message    string
}

// Cleared resets the session.
type Cleared struct{}

func (e FileLoaded) apply(s Session) Session {
	s = supersede(s)
	tag, _ := language.FromFileName(e.Name)
	s.FileName = e.Name
	s.SourceText = e.Content
	s.Language = tag
	s.Review = ""
	s.ErrorMessage = ""
	return s
}

func (e SourceEdited) apply(s Session) Session {
	if e.Text != s.SourceText {
		s = supersede(s)
	}
	s.SourceText = e.Text
	return s
}

// supersede drops the review in flight for source that is being replaced.
func supersede(s Session) Session {
	if s.Busy {
		s.Busy = false
		s.Generation++
	}
	return s
}

func (e LanguageSelected) apply(s Session) Session {
	if e.Tag != "" {
		s.Language = e.Tag
	}
	return s
}

func (SubmitRequested) apply(s Session) Session {
	s.Review = ""
	s.ErrorMessage = ""
	if strings.TrimSpace(s.SourceText) == "" {
		s.Busy = false
		s.ErrorMessage = MsgEmptySource
		return s
	}
	s.Busy = true
	s.Generation++
	return s
}

func (e ReviewSucceeded) apply(s Session) Session {
	if !s.Busy || e.Generation != s.Generation {
		return s // stale
	}
	s.Busy = false
	s.Review = e.Review
	s.ErrorMessage = ""
	return s
}

func (e ReviewFailed) apply(s Session) Session {
	if !s.Busy || e.Generation != s.Generation {
		return s
	}
	s.Busy = false
	s.Review = ""
	s.ErrorMessage = e.Message
	return s
}

func (Cleared) apply(s Session) Session {
	next := NewSession()
	next.Language = s.Language
	next.Generation = s.Generation + 1
	return next
}
