package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	backslashBreakPattern = regexp.MustCompile(`\\\r?\n`)
	spaceBreakPattern     = regexp.MustCompile(` {2}\r?\n`)
)

// LineBreakRule converts hard line breaks to [br].
type LineBreakRule struct {
	pipeline.BaseRule
}

// NewLineBreakRule creates a new line break rule.
func NewLineBreakRule() *LineBreakRule {
	return &LineBreakRule{
		BaseRule: pipeline.NewBaseRule(NameLineBreak, "trailing backslash or two spaces to [br]").
			After(NameCode, NameQuote, NameList, NameTable),
	}
}

// Transform replaces the break marker and its newline.
func (r *LineBreakRule) Transform(text string, _ config.Dialect) string {
	text = backslashBreakPattern.ReplaceAllLiteralString(text, "[br]")
	return spaceBreakPattern.ReplaceAllLiteralString(text, "[br]")
}
