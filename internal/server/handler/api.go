package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/jobs"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

const maxAPIBodyBytes = 10 << 20

// ReviewRequest is the JSON body of POST /api/v1/review.
type ReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// ReviewResponse is a successful review.
type ReviewResponse struct {
	Review   string       `json:"review"`
	Language language.Tag `json:"language"`
}

// ErrorResponse carries the user-facing failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIHandler serves the stateless JSON review API.
type APIHandler struct {
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(dispatcher core.JobDispatcher, logger *slog.Logger) *APIHandler {
	return &APIHandler{dispatcher: dispatcher, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func resolveLanguage(req ReviewRequest) (language.Tag, error) {
	if req.Language != "" {
		return language.Parse(req.Language)
	}
	if req.FileName != "" {
		tag, _ := language.FromFileName(req.FileName)
		return tag, nil
	}
	return language.Default, nil
}

// Review runs one review synchronously.
func (h *APIHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	tag, err := resolveLanguage(req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: core.MsgEmptySource})
		return
	}

	sub := &core.Submission{SourceText: req.Code, Language: tag, FileName: req.FileName}
	results, err := h.dispatcher.Dispatch(r.Context(), sub)
	if err != nil {
		h.logger.Error("failed to dispatch review job", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, jobs.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, ErrorResponse{Error: core.UserMessage(err)})
		return
	}

	res := <-results
	switch {
	case res.Err == nil:
		writeJSON(w, http.StatusOK, ReviewResponse{Review: res.Review, Language: tag})
	case errors.Is(res.Err, core.ErrEmptySource):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: core.UserMessage(res.Err)})
	default:
		h.logger.Warn("review request failed", "error", res.Err, "language", tag)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: core.UserMessage(res.Err)})
	}
}

// Languages lists the supported languages.
func (h *APIHandler) Languages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, language.All())
}
