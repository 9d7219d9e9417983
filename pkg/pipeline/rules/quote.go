package rules

import (
	"regexp"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var quoteLinePattern = regexp.MustCompile(`(?m)^>\s*([^\r\n]+)`)

// QuoteRule converts block quotes.
type QuoteRule struct {
	pipeline.BaseRule
}

// NewQuoteRule creates a new quote rule.
func NewQuoteRule() *QuoteRule {
	return &QuoteRule{
		BaseRule: pipeline.NewBaseRule(NameQuote, "> lines to [quote], adjacent lines merged"),
	}
}

// Transform wraps each quoted line, then joins adjacent ones into one block.
// Lines separated by CRLF are not joined.
func (r *QuoteRule) Transform(text string, _ config.Dialect) string {
	text = quoteLinePattern.ReplaceAllString(text, "[quote]${1}[/quote]")
	return strings.ReplaceAll(text, "[/quote]\n[quote]", "\n")
}
