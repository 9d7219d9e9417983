package rules

import (
	"regexp"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var hrLinePattern = regexp.MustCompile(`^\s*(?:-{3,}|\*{3,})\s*$`)

// HorizontalRuleRule converts thematic breaks.
type HorizontalRuleRule struct {
	pipeline.BaseRule
}

// NewHorizontalRuleRule creates a new horizontal rule rule.
func NewHorizontalRuleRule() *HorizontalRuleRule {
	return &HorizontalRuleRule{
		BaseRule: pipeline.NewBaseRule(NameHorizontalRule, "--- or *** lines to [hr]").
			Before(NameEmphasis),
	}
}

// Transform replaces whole lines of three or more dashes or asterisks.
// Underscore rules are not recognized.
func (r *HorizontalRuleRule) Transform(text string, _ config.Dialect) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if hrLinePattern.MatchString(line) {
			lines[i] = "[hr]"
		}
	}
	return strings.Join(lines, "\n")
}
