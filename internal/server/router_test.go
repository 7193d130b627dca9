package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/jobs"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/llm"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/logger"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/server/handler"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/session"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/mocks"
)

type testEnv struct {
	router   http.Handler
	reviewer *mocks.MockReviewer
	cookie   *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Discard()

	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)
	reviewer.EXPECT().Name().Return(config.ProviderAnthropic).AnyTimes()

	pm, err := llm.NewPromptManager()
	require.NoError(t, err)
	svc := llm.NewService(pm, reviewer, log)
	dispatcher := jobs.NewDispatcher(jobs.NewReviewJob(svc, log), 2, 10, log)
	t.Cleanup(dispatcher.Stop)

	cfg := &config.Config{Server: config.ServerConfig{Port: "0"}}
	return &testEnv{
		router:   NewRouter(cfg, session.NewManager(time.Minute, log), dispatcher, log),
		reviewer: reviewer,
	}
}

// do sends req with the env's session cookie and remembers any new one.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			e.cookie = c
		}
	}
	return rec
}

func (e *testEnv) page(t *testing.T) string {
	t.Helper()
	rec := e.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (e *testEnv) postForm(values url.Values, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) upload(t *testing.T, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestIndexIssuesSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	body := env.page(t)

	require.NotNil(t, env.cookie)
	assert.True(t, session.Valid(env.cookie.Value))
	assert.Contains(t, body, "Upload or paste code to get started")
	assert.Contains(t, body, `accept="`+language.AcceptAttribute()+`"`)
	assert.Contains(t, body, `<option value="javascript" selected>`)
	assert.NotContains(t, body, "Export Report")
}

func TestUploadDetectsLanguage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "calc.py", "def add(a, b):\n    return a + b\n")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := env.page(t)
	assert.Contains(t, body, `<option value="python" selected>`)
	assert.Contains(t, body, "def add(a, b):")
	assert.Contains(t, body, "calc.py")
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	rec := env.upload(t, "notes.txt", "hello")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestReviewBlankSource(t *testing.T) {
	env := newTestEnv(t)
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).Times(0)

	rec := env.postForm(url.Values{"code": {"   "}, "language": {"go"}}, "/review")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, env.page(t), core.MsgEmptySource)
}

func TestReviewAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).Return("Overall Score: 9/10", nil)

	rec := env.postForm(url.Values{"code": {"package main"}, "language": {"go"}}, "/review")
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := env.page(t)
	assert.Contains(t, body, "Overall Score: 9/10")
	assert.Contains(t, body, "Export Report")
	assert.Contains(t, body, `<option value="go" selected>`)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="code-review-\d+\.txt"$`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Code Review Report\nFile: Pasted Code\nLanguage: go\n"))
	assert.Contains(t, rec.Body.String(), "Original Code:\npackage main")
}

func TestReviewSelectorOverridesUpload(t *testing.T) {
	env := newTestEnv(t)
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "typescript")
			return "ok", nil
		})

	env.upload(t, "app.js", "let x = 1")
	env.postForm(url.Values{"code": {"let x = 1"}, "language": {"typescript"}}, "/review")
	assert.Contains(t, env.page(t), `<option value="typescript" selected>`)
}

func TestReviewNormalizesLineEndings(t *testing.T) {
	env := newTestEnv(t)
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "a := 1\nb := 2")
			assert.NotContains(t, prompt, "\r")
			return "ok", nil
		})

	rec := env.postForm(url.Values{"code": {"a := 1\r\nb := 2"}, "language": {"go"}}, "/review")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestIndexKeepsLeadingNewline(t *testing.T) {
	env := newTestEnv(t)
	env.upload(t, "main.go", "\npackage main")

	// The first newline after <textarea> is dropped by the HTML parser.
	assert.Contains(t, env.page(t), "spellcheck=\"false\">\n\npackage main</textarea>")
}

func TestUploadDuringReviewSupersedesIt(t *testing.T) {
	env := newTestEnv(t)
	env.page(t)

	started := make(chan struct{})
	release := make(chan struct{})
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (string, error) {
			close(started)
			select {
			case <-release:
			case <-ctx.Done():
			}
			return "review of old.py", nil
		})

	done := make(chan int)
	go func() {
		values := url.Values{"code": {"print('old')"}, "language": {"python"}}
		req := httptest.NewRequest(http.MethodPost, "/review", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(env.cookie)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		done <- rec.Code
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("review never started")
	}
	rec := env.upload(t, "new.py", "print('new')")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	close(release)
	assert.Equal(t, http.StatusSeeOther, <-done)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/report", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code, "the old review is not exported for the new file")

	body := env.page(t)
	assert.Contains(t, body, "new.py")
	assert.Contains(t, body, "print(&#39;new&#39;)")
	assert.NotContains(t, body, "review of old.py")
}

func TestReviewFailureShowsMessage(t *testing.T) {
	env := newTestEnv(t)
	env.reviewer.EXPECT().Review(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))

	env.postForm(url.Values{"code": {"x"}, "language": {"c"}}, "/review")
	body := env.page(t)
	assert.Contains(t, body, "Error analyzing code: connection refused")
	assert.NotContains(t, body, "Export Report")
}

func TestReportWithoutReviewRedirects(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/report", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestClearKeepsLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.upload(t, "Main.java", "class Main {}")

	rec := env.postForm(url.Values{}, "/clear")
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := env.page(t)
	assert.NotContains(t, body, "class Main {}")
	assert.NotContains(t, body, "Main.java")
	assert.Contains(t, body, `<option value="java" selected>`)
}

func TestSessionsAreIsolatedPerCookie(t *testing.T) {
	alice := newTestEnv(t)
	alice.upload(t, "a.rb", "puts :alice")

	bob := &testEnv{router: alice.router}
	assert.NotContains(t, bob.page(t), "puts :alice")
	assert.Contains(t, alice.page(t), "puts :alice")
}

func postJSON(env *testEnv, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/review", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return env.do(req)
}

func TestAPIReview(t *testing.T) {
	testCases := []struct {
		name       string
		body       handler.ReviewRequest
		mockSetup  func(r *mocks.MockReviewer)
		wantStatus int
		wantReview string
		wantError  string
	}{
		{
			name: "Success",
			body: handler.ReviewRequest{Code: "<?php echo 1;", Language: "php"},
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return("fine", nil)
			},
			wantStatus: http.StatusOK,
			wantReview: "fine",
		},
		{
			name: "Language from file name",
			body: handler.ReviewRequest{Code: "int x;", FileName: "x.cs"},
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, prompt string) (string, error) {
					assert.Contains(t, prompt, "c#")
					return "fine", nil
				})
			},
			wantStatus: http.StatusOK,
			wantReview: "fine",
		},
		{
			name:       "Unknown language",
			body:       handler.ReviewRequest{Code: "x", Language: "cobol"},
			mockSetup:  func(*mocks.MockReviewer) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "Blank code",
			body:       handler.ReviewRequest{Code: "\n\t"},
			mockSetup:  func(*mocks.MockReviewer) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  core.MsgEmptySource,
		},
		{
			name: "No review content",
			body: handler.ReviewRequest{Code: "x"},
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return("", core.ErrNoReviewContent)
			},
			wantStatus: http.StatusBadGateway,
			wantError:  core.MsgNoReview,
		},
		{
			name: "Transport failure",
			body: handler.ReviewRequest{Code: "x"},
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "Error analyzing code: timeout",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			tc.mockSetup(env.reviewer)

			rec := postJSON(env, tc.body)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantStatus == http.StatusOK {
				var resp handler.ReviewResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantReview, resp.Review)
				return
			}
			var resp handler.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, resp.Error)
			} else {
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestAPIReviewInvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/review", strings.NewReader("{"))
	rec := env.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPILanguages(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/languages", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []language.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 10)
	assert.Equal(t, language.JavaScript, got[0].Tag)
}
