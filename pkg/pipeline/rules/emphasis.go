package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// emphasisPass is one delimiter rewrite.
type emphasisPass struct {
	re   *regexp.Regexp
	repl string
}

// emphasisPasses run in order: bold delimiters must be consumed before the
// single-character italic patterns see them.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var emphasisPasses = []emphasisPass{
	{regexp.MustCompile(`\*\*([^\r\n]*?)\*\*`), "[b]${1}[/b]"},
	{regexp.MustCompile(`__([^\r\n]*?)__`), "[b]${1}[/b]"},
	{regexp.MustCompile(`\*([^\r\n]*?)\*`), "[i]${1}[/i]"},
	{regexp.MustCompile(`_([^\r\n]*?)_`), "[i]${1}[/i]"},
}

// EmphasisRule converts bold and italic spans.
type EmphasisRule struct {
	pipeline.BaseRule
}

// NewEmphasisRule creates a new emphasis rule.
func NewEmphasisRule() *EmphasisRule {
	return &EmphasisRule{
		BaseRule: pipeline.NewBaseRule(NameEmphasis, "**bold**, __bold__, *italic*, _italic_ to [b] and [i]"),
	}
}

// Transform rewrites emphasis. The first closing delimiter wins.
func (r *EmphasisRule) Transform(text string, _ config.Dialect) string {
	for _, pass := range emphasisPasses {
		text = pass.re.ReplaceAllString(text, pass.repl)
	}
	return text
}
