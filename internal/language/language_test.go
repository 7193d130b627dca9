package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		want   Tag
		wantOK bool
	}{
		{"js", JavaScript, true},
		{"jsx", JavaScript, true},
		{"py", Python, true},
		{"java", Java, true},
		{"cpp", CPP, true},
		{"c", C, true},
		{"cs", CSharp, true},
		{"rb", Ruby, true},
		{"go", Go, true},
		{"php", PHP, true},
		{"ts", TypeScript, true},
		{"tsx", TypeScript, true},
		{".PY", Python, true},
		{"GO", Go, true},
		{"rs", Default, false},
		{"", Default, false},
		{"txt", Default, false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := FromExtension(tt.ext)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFromFileName(t *testing.T) {
	tests := []struct {
		name string
		want Tag
	}{
		{"main.py", Python},
		{"src/app/Component.TSX", TypeScript},
		{"archive.tar.go", Go},
		{`C:\work\Program.cs`, CSharp},
		{"Makefile", Default},
		{"go", Go},
		{"notes.md", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := FromFileName(tt.name)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	tag, err := Parse(" Python ")
	require.NoError(t, err)
	assert.Equal(t, Python, tag)

	tag, err = Parse("C#")
	require.NoError(t, err)
	assert.Equal(t, CSharp, tag)

	_, err = Parse("cobol")
	assert.Error(t, err)
}

func TestEveryExtensionIsAccepted(t *testing.T) {
	for _, info := range All() {
		for _, ext := range info.Extensions {
			assert.True(t, IsAccepted("file."+ext), "extension %s should be accepted", ext)
		}
	}
	assert.False(t, IsAccepted("file.rs"))
	assert.False(t, IsAccepted("README"))
	assert.Equal(t, ".js,.jsx,.ts,.tsx,.py,.java,.cpp,.c,.cs,.rb,.go,.php", AcceptAttribute())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "C++", CPP.Label())
	assert.Equal(t, "unknown", Tag("unknown").Label())
}
