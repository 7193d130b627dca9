package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

type fakeRequestor struct {
	review string
	err    error
	got    *core.Submission
}

func (f *fakeRequestor) Submit(_ context.Context, sub *core.Submission) (string, error) {
	f.got = sub
	return f.review, f.err
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	langFlag, exportDir, rawOutput = "", "", false
	languagesJSON, languagesYAML = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func withRequestor(t *testing.T, f *fakeRequestor) {
	t.Helper()
	orig := newRequestor
	newRequestor = func(context.Context, *config.Config) (core.Requestor, func(), error) {
		return f, func() {}, nil
	}
	t.Cleanup(func() { newRequestor = orig })
}

func TestRootCommandName(t *testing.T) {
	assert.Equal(t, "review-cli", rootCmd.Name())
}

func TestReadSubmissionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rb")
	require.NoError(t, os.WriteFile(path, []byte("puts 1"), 0o600))

	s, err := readSubmission(path, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "lib.rb", s.FileName)
	assert.Equal(t, language.Ruby, s.Language)
	assert.Equal(t, "puts 1", s.SourceText)
}

func TestReadSubmissionFromStdin(t *testing.T) {
	s, err := readSubmission("-", "c#", strings.NewReader("class A {}"))
	require.NoError(t, err)
	assert.Empty(t, s.FileName)
	assert.Equal(t, language.CSharp, s.Language)
}

func TestReadSubmissionUnknownLanguage(t *testing.T) {
	_, err := readSubmission("-", "cobol", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestReviewCommand(t *testing.T) {
	fake := &fakeRequestor{review: "**Overall Score:** 7/10"}
	withRequestor(t, fake)

	dir := t.TempDir()
	out, err := execute(t, "print('hi')", "review", "-", "--language", "python", "--raw", "--export", dir)
	require.NoError(t, err)

	require.NotNil(t, fake.got)
	assert.Equal(t, language.Python, fake.got.Language)
	assert.Equal(t, "print('hi')", fake.got.SourceText)
	assert.Contains(t, out, "**Overall Score:** 7/10")
	assert.Contains(t, out, "Report saved to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^code-review-\d+\.txt$`, entries[0].Name())
}

func TestReviewCommandBlankInput(t *testing.T) {
	fake := &fakeRequestor{}
	withRequestor(t, fake)

	_, err := execute(t, "   ", "review", "-")
	require.Error(t, err)
	assert.Equal(t, core.MsgEmptySource, err.Error())
	assert.Nil(t, fake.got, "no request is made for blank input")
}

func TestReviewCommandFailure(t *testing.T) {
	withRequestor(t, &fakeRequestor{err: &core.RequestError{Err: errors.New("timeout")}})

	out, err := execute(t, "x", "review", "-")
	require.Error(t, err)
	assert.Contains(t, out, "Error analyzing code: timeout")
}

func TestLanguagesCommand(t *testing.T) {
	out, err := execute(t, "", "languages")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "\n"))
	assert.Contains(t, out, "typescript")

	out, err = execute(t, "", "languages", "--json")
	require.NoError(t, err)
	var got []language.Info
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, language.All(), got)

	out, err = execute(t, "", "languages", "--yaml")
	require.NoError(t, err)
	got = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 10)
}
