package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/report"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/wire"
)

func initializeServiceCmd(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		svc, cleanup, err := wire.InitializeService(context.Background(), cfg)
		if err != nil {
			return serviceReadyMsg{err: err}
		}
		return serviceReadyMsg{requestor: svc, cleanup: cleanup, provider: cfg.AI.LLMProvider}
	}
}

// reviewCmd runs one request; the result is tagged with gen so late replies
// can be recognised.
func reviewCmd(ctx context.Context, requestor core.Requestor, sub *core.Submission, gen uint64) tea.Cmd {
	return func() tea.Msg {
		review, err := requestor.Submit(ctx, sub)
		return reviewDoneMsg{generation: gen, review: review, err: err}
	}
}

func saveReportCmd(dir string, s core.Session) tea.Cmd {
	return func() tea.Msg {
		path, err := report.Write(dir, report.FromSession(s, time.Now()))
		return reportSavedMsg{path: path, err: err}
	}
}
