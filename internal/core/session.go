package core

import "github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"

// Session is an immutable snapshot of one user's form state. It is only ever
// changed by Reduce, which keeps Review, ErrorMessage and Busy mutually exclusive.
type Session struct {
	SourceText   string
	Language     language.Tag
	FileName     string
	Review       string
	ErrorMessage string
	Busy         bool
	// Generation identifies the most recent request. Responses carrying an older
	// generation are discarded.
	Generation uint64
}

// NewSession returns the empty startup state.
func NewSession() Session {
	return Session{Language: language.Default}
}

// Reduce applies ev to s and returns the next snapshot.
func Reduce(s Session, ev Event) Session {
	if ev == nil {
		return s
	}
	return ev.apply(s)
}

// Submission builds the request for the current snapshot.
func (s Session) Submission() *Submission {
	return &Submission{
		SourceText: s.SourceText,
		Language:   s.Language,
		FileName:   s.FileName,
	}
}

// HasReview reports whether a review is available for export.
func (s Session) HasReview() bool { return s.Review != "" }

// View is the single panel the result area shows for a Session.
type View int

const (
	ViewEmpty View = iota
	ViewLoading
	ViewReview
	ViewError
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewReview:
		return "review"
	case ViewError:
		return "error"
	default:
		return "empty"
	}
}

// Render maps a snapshot to the panel to display.
func Render(s Session) View {
	switch {
	case s.ErrorMessage != "":
		return ViewError
	case s.Busy:
		return ViewLoading
	case s.Review != "":
		return ViewReview
	default:
		return ViewEmpty
	}
}
