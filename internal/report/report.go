// Package report builds the plain-text export of a completed review.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

// ErrNoReview is returned when there is nothing to export yet.
var ErrNoReview = errors.New("no review available to export")

const (
	pastedCodeLabel = "Pasted Code"
	dateLayout      = "1/2/2006, 3:04:05 PM"
	ContentType     = "text/plain; charset=utf-8"
)

var separator = strings.Repeat("=", 60)

// Report is everything a review export contains.
type Report struct {
	FileName string
	Language language.Tag
	Review   string
	Source   string
	Time     time.Time
}

// FromSession captures the exportable fields of a session at time t.
func FromSession(s core.Session, t time.Time) Report {
	return Report{
		FileName: s.FileName,
		Language: s.Language,
		Review:   s.Review,
		Source:   s.SourceText,
		Time:     t,
	}
}

// Build renders the report text. The review and source are copied verbatim.
func Build(r Report) (string, error) {
	if r.Review == "" {
		return "", ErrNoReview
	}

	name := r.FileName
	if name == "" {
		name = pastedCodeLabel
	}

	var b strings.Builder
	b.WriteString("Code Review Report\n")
	fmt.Fprintf(&b, "File: %s\n", name)
	fmt.Fprintf(&b, "Language: %s\n", r.Language)
	fmt.Fprintf(&b, "Date: %s\n", r.Time.Format(dateLayout))
	b.WriteString("\n")
	b.WriteString(separator + "\n\n")
	b.WriteString(r.Review)
	b.WriteString("\n\n")
	b.WriteString(separator + "\n\n")
	b.WriteString("Original Code:\n")
	b.WriteString(r.Source)
	b.WriteString("\n")
	return b.String(), nil
}

// FileName is the download name for a report generated at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("code-review-%d.txt", t.UnixMilli())
}

// Write saves the report into dir and returns the written path.
func Write(dir string, r Report) (string, error) {
	content, err := Build(r)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(r.Time))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
