package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

func TestPromptManagerRender(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	code := "func main() {\n\tfmt.Println(\"<b>&amp;</b> {{.Code}}\")\n}"
	out, err := pm.Render(CodeReviewPrompt, DefaultProvider, CodeReviewData{Language: language.Go, Code: code})
	require.NoError(t, err)

	assert.Contains(t, out, code, "source must be embedded verbatim")
	assert.Contains(t, out, "Analyze the following go code")
	assert.Contains(t, out, "```go\n")
	for _, section := range []string{"**Overall Score:**", "**Key Issues:**", "**Suggestions:**", "**Positive Points:**"} {
		assert.Contains(t, out, section)
	}
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestPromptManagerProviderFallback(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	def, err := pm.Get(CodeReviewPrompt, DefaultProvider)
	require.NoError(t, err)

	fallback, err := pm.Get(CodeReviewPrompt, ModelProvider("anthropic"))
	require.NoError(t, err)
	assert.Same(t, def, fallback)

	specific, err := pm.Get(CodeReviewPrompt, ModelProvider("ollama"))
	require.NoError(t, err)
	assert.NotSame(t, def, specific)

	_, err = pm.Get(PromptKey("missing"), DefaultProvider)
	assert.Error(t, err)
}
