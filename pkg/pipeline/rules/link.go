package rules

import (
	"regexp"

	"github.com/dlclark/regexp2"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// inlineLinkPattern needs a negative lookbehind, which RE2 cannot express.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var inlineLinkPattern = regexp2.MustCompile(`(?<!!)\[([^\]]+)\]\(([^)]+)\)`, regexp2.None)

//nolint:gochecknoglobals // Compiled once, read-only.
var autolinkPattern = regexp.MustCompile(`<(https?://[^>]+)>`)

// LinkRule converts inline links and autolinks.
type LinkRule struct {
	pipeline.BaseRule
}

// NewLinkRule creates a new link rule.
func NewLinkRule() *LinkRule {
	return &LinkRule{
		BaseRule: pipeline.NewBaseRule(NameLink, "[text](url) and <https://...> to [url]").
			After(NameImage),
	}
}

// Transform rewrites links.
func (r *LinkRule) Transform(text string, _ config.Dialect) string {
	// Without a match timeout regexp2 cannot fail here; keep the input if it ever does.
	if out, err := inlineLinkPattern.Replace(text, "[url=$2]$1[/url]", -1, -1); err == nil {
		text = out
	}
	return autolinkPattern.ReplaceAllString(text, "[url]${1}[/url]")
}
