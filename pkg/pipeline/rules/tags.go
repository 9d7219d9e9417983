package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// HTMLTagRule converts one inline HTML element to a BBCode tag.
type HTMLTagRule struct {
	pipeline.BaseRule

	pattern *regexp.Regexp
	repl    string
}

func newHTMLTagRule(name, element, tag string) *HTMLTagRule {
	return &HTMLTagRule{
		BaseRule: pipeline.NewBaseRule(name, "<"+element+"> to ["+tag+"]"),
		pattern:  regexp.MustCompile(`<` + element + `>([^\r\n]*?)</` + element + `>`),
		repl:     "[" + tag + "]${1}[/" + tag + "]",
	}
}

// NewSuperscriptRule converts <sup> to [sup].
func NewSuperscriptRule() *HTMLTagRule {
	return newHTMLTagRule(NameSuperscript, "sup", "sup")
}

// NewSubscriptRule converts <sub> to [sub].
func NewSubscriptRule() *HTMLTagRule {
	return newHTMLTagRule(NameSubscript, "sub", "sub")
}

// NewUnderlineRule converts <ins> to [u].
func NewUnderlineRule() *HTMLTagRule {
	return newHTMLTagRule(NameUnderline, "ins", "u")
}

// Transform rewrites the element. Attributes are not supported.
func (r *HTMLTagRule) Transform(text string, _ config.Dialect) string {
	return r.pattern.ReplaceAllString(text, r.repl)
}
