// Package language maps uploaded file names to the closed set of language tags
// used when building review prompts.
package language

import (
	"fmt"
	"path"
	"strings"
)

// Tag is a language label attached to a snippet. It is only used for prompt
// construction and is never checked against the snippet's content.
type Tag string

const (
	JavaScript Tag = "javascript"
	Python     Tag = "python"
	Java       Tag = "java"
	CPP        Tag = "c++"
	C          Tag = "c"
	CSharp     Tag = "c#"
	Ruby       Tag = "ruby"
	Go         Tag = "go"
	PHP        Tag = "php"
	TypeScript Tag = "typescript"
)

// Default is used whenever an extension lookup misses.
const Default = JavaScript

// Info describes a tag for selectors and listings.
type Info struct {
	Tag        Tag      `json:"tag" yaml:"tag"`
	Label      string   `json:"label" yaml:"label"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// ordered drives All() and selector rendering.
var ordered = []Info{
	{Tag: JavaScript, Label: "JavaScript", Extensions: []string{"js", "jsx"}},
	{Tag: Python, Label: "Python", Extensions: []string{"py"}},
	{Tag: Java, Label: "Java", Extensions: []string{"java"}},
	{Tag: CPP, Label: "C++", Extensions: []string{"cpp"}},
	{Tag: C, Label: "C", Extensions: []string{"c"}},
	{Tag: CSharp, Label: "C#", Extensions: []string{"cs"}},
	{Tag: TypeScript, Label: "TypeScript", Extensions: []string{"ts", "tsx"}},
	{Tag: Ruby, Label: "Ruby", Extensions: []string{"rb"}},
	{Tag: Go, Label: "Go", Extensions: []string{"go"}},
	{Tag: PHP, Label: "PHP", Extensions: []string{"php"}},
}

var byExtension = func() map[string]Tag {
	m := make(map[string]Tag)
	for _, info := range ordered {
		for _, ext := range info.Extensions {
			m[ext] = info.Tag
		}
	}
	return m
}()

// acceptedExtensions is the file picker allow-list, in picker order.
var acceptedExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".cpp", ".c", ".cs", ".rb", ".go", ".php"}

// All returns every known tag in display order.
func All() []Info {
	out := make([]Info, len(ordered))
	copy(out, ordered)
	return out
}

// FromExtension resolves an extension (with or without the leading dot).
// Unknown extensions resolve to Default with ok=false.
func FromExtension(ext string) (Tag, bool) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if tag, ok := byExtension[ext]; ok {
		return tag, true
	}
	return Default, false
}

// FromFileName resolves the tag for a file name using the text after its last
// dot. A name without a dot is looked up as a whole.
func FromFileName(name string) (Tag, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.LastIndex(base, "."); i >= 0 {
		return FromExtension(base[i+1:])
	}
	return FromExtension(base)
}

// Parse validates a user-selected tag.
func Parse(s string) (Tag, error) {
	candidate := Tag(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range ordered {
		if info.Tag == candidate {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

// Label returns the display label for t, or the raw tag when unknown.
func (t Tag) Label() string {
	for _, info := range ordered {
		if info.Tag == t {
			return info.Label
		}
	}
	return string(t)
}

func (t Tag) String() string { return string(t) }

// AcceptedExtensions returns the upload allow-list, dot-prefixed.
func AcceptedExtensions() []string {
	out := make([]string, len(acceptedExtensions))
	copy(out, acceptedExtensions)
	return out
}

// AcceptAttribute renders the allow-list for an HTML file input.
func AcceptAttribute() string {
	return strings.Join(acceptedExtensions, ",")
}

// IsAccepted reports whether name carries an allow-listed extension.
func IsAccepted(name string) bool {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
	for _, a := range acceptedExtensions {
		if a == ext {
			return true
		}
	}
	return false
}
