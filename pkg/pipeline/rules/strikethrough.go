package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var strikethroughPattern = regexp.MustCompile(`~~([^\r\n]*?)~~`)

// StrikethroughRule converts ~~text~~ to [s].
type StrikethroughRule struct {
	pipeline.BaseRule
}

// NewStrikethroughRule creates a new strikethrough rule.
func NewStrikethroughRule() *StrikethroughRule {
	return &StrikethroughRule{
		BaseRule: pipeline.NewBaseRule(NameStrikethrough, "~~text~~ to [s]"),
	}
}

// Transform rewrites strikethrough spans.
func (r *StrikethroughRule) Transform(text string, _ config.Dialect) string {
	return strikethroughPattern.ReplaceAllString(text, "[s]${1}[/s]")
}
