package rules

import (
	"regexp"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	fencedCodePattern = regexp.MustCompile("```(\\w+)?\\n([\\s\\S]*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

// LanguageFunc names the language of a code block, or returns "" when unsure.
type LanguageFunc func(code string) string

// CodeRule converts fenced code blocks and inline code spans.
type CodeRule struct {
	pipeline.BaseRule

	language LanguageFunc
}

// NewCodeRule creates a new code rule. When language is non-nil, unlabelled
// fences in the extended dialect are tagged with its answer.
func NewCodeRule(language LanguageFunc) *CodeRule {
	return &CodeRule{
		BaseRule: pipeline.NewBaseRule(NameCode, "fenced and inline code to [code] or [code:lang]"),
		language: language,
	}
}

// Transform rewrites fenced blocks first so their backticks are gone before
// inline spans are matched.
func (r *CodeRule) Transform(text string, dialect config.Dialect) string {
	text = replaceSubmatch(fencedCodePattern, text, func(groups []string) string {
		lang, body := groups[1], strings.TrimSpace(groups[2])

		if dialect != config.DialectExtended {
			return "[code]" + body + "[/code]"
		}

		if lang == "" && r.language != nil {
			lang = r.language(body)
		}
		if lang == "" {
			return "[code]" + body + "[/code]"
		}
		return "[code:" + lang + "]" + body + "[/code]"
	})

	return inlineCodePattern.ReplaceAllString(text, "[code]${1}[/code]")
}
