// Package handler provides HTTP handlers for the code review form and its JSON API.
package handler

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/report"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/session"
)

const maxUploadBytes = 10 << 20

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Session   core.Session
	View      string
	Languages []language.Info
	Accept    string
	CanExport bool
}

// FormHandler serves the browser form. Each browser gets its own session.
type FormHandler struct {
	sessions   *session.Manager
	dispatcher core.JobDispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewFormHandler creates a new form handler.
func NewFormHandler(sessions *session.Manager, dispatcher core.JobDispatcher, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// sessionID returns the caller's session id, issuing a new cookie when needed.
func (h *FormHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(session.CookieName); err == nil && session.Valid(c.Value) {
		return c.Value
	}
	id := h.sessions.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Index renders the form for the current session state.
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(h.sessionID(w, r))
	data := pageData{
		Session:   s,
		View:      core.Render(s).String(),
		Languages: language.All(),
		Accept:    language.AcceptAttribute(),
		CanExport: s.HasReview(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}

// Upload loads the chosen file into the session.
func (h *FormHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("upload without a readable file", "error", err)
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !language.IsAccepted(header.Filename) {
		h.logger.Info("rejected upload", "file", header.Filename)
		http.Error(w, "Unsupported file type, accepted: "+language.AcceptAttribute(), http.StatusUnsupportedMediaType)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read upload", "error", err, "file", header.Filename)
		http.Error(w, "Could not read file", http.StatusBadRequest)
		return
	}

	s := h.sessions.Apply(id, core.FileLoaded{Name: header.Filename, Content: string(content)})
	h.logger.Info("file loaded", "file", header.Filename, "language", s.Language, "bytes", len(content))
	redirectHome(w, r)
}

// Review submits the form's code and language and waits for the outcome.
func (h *FormHandler) Review(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	// Browsers submit textarea lines with CRLF endings.
	code := strings.ReplaceAll(r.PostFormValue("code"), "\r\n", "\n")
	edits := []core.Event{core.SourceEdited{Text: code}}
	if raw := r.PostFormValue("language"); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			h.logger.Warn("ignoring unknown language selection", "language", raw)
		} else {
			edits = append(edits, core.LanguageSelected{Tag: tag})
		}
	}

	ctx, s, ok := h.sessions.Begin(r.Context(), id, edits...)
	if !ok {
		redirectHome(w, r)
		return
	}

	results, err := h.dispatcher.Dispatch(ctx, s.Submission())
	if err != nil {
		h.logger.Error("failed to dispatch review job", "error", err)
		h.sessions.Finish(id, s.Generation, "", &core.RequestError{Err: err})
		redirectHome(w, r)
		return
	}

	res := <-results
	h.sessions.Finish(id, s.Generation, res.Review, res.Err)
	redirectHome(w, r)
}

// Clear resets the session and cancels an in-flight review.
func (h *FormHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(h.sessionID(w, r))
	redirectHome(w, r)
}

// Report downloads the plain-text export. Without a review it is a no-op.
func (h *FormHandler) Report(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(h.sessionID(w, r))
	t := h.now()

	content, err := report.Build(report.FromSession(s, t))
	if errors.Is(err, report.ErrNoReview) {
		redirectHome(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to build report", "error", err)
		http.Error(w, "Could not build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(t)+`"`)
	_, _ = io.WriteString(w, content)
}
