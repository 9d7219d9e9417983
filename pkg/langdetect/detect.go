// Package langdetect guesses the language of unlabelled code blocks.
//
// Infer tries, in order, a shebang lookup, a table of cheap content
// heuristics, and finally go-enry's classifier restricted to common
// languages. It answers "" whenever none of them is confident, so callers
// can fall back to an unlabelled block.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Fence tags produced by the heuristics.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates bounds go-enry's classifier to languages that show up
// in prose documents.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "Lua", "SQL",
	"JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// sample is a code block prepared once for every heuristic.
type sample struct {
	raw     []byte
	text    string
	trimmed []byte
}

// heuristic returns a fence tag, or "" to defer to the next one.
type heuristic func(s sample) string

// heuristics run most specific first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var heuristics = []heuristic{
	goPackage,
	python,
	html,
	jsonDocument,
	dockerfile,
	sqlStatement,
	rust,
	javascript,
	yamlMapping,
}

// Infer returns a lowercase fence tag for code, or "" when unsure.
func Infer(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang)
	}

	s := sample{raw: code, text: string(code), trimmed: trimmed}
	for _, h := range heuristics {
		if lang := h(s); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// Known reports whether lang names a language with a known syntax
// highlighter, by name or alias.
func Known(lang string) bool {
	if strings.TrimSpace(lang) == "" {
		return false
	}
	return lexers.Get(lang) != nil
}

func goPackage(s sample) string {
	if bytes.HasPrefix(s.trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func python(s sample) string {
	switch {
	case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
		return langPython
	case strings.Contains(s.text, "__name__"), strings.Contains(s.text, "__main__"):
		return langPython
	case strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import ("):
		if strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import ")) {
			return langPython
		}
	}
	return ""
}

func html(s sample) string {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func jsonDocument(s sample) string {
	first := s.trimmed[0]
	if (first == '{' || first == '[') && bytes.ContainsRune(s.trimmed, '"') {
		return langJSON
	}
	return ""
}

func dockerfile(s sample) string {
	if bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
		(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func sqlStatement(s sample) string {
	upper := strings.ToUpper(string(s.trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return langSQL
		}
	}
	return ""
}

func rust(s sample) string {
	if strings.Contains(s.text, "fn main()") ||
		strings.Contains(s.text, "println!") ||
		strings.Contains(s.text, "let mut ") {
		return langRust
	}
	return ""
}

func javascript(s sample) string {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(s.text, marker) {
			return langJavaScript
		}
	}
	return ""
}

// yamlMapping needs at least two key/value or list lines that do not look like code.
func yamlMapping(s sample) string {
	count := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return langYAML
	}
	return ""
}

// normalize maps go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
