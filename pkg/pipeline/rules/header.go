package rules

import (
	"fmt"
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// maxHeadingLevel is the deepest ATX heading level.
const maxHeadingLevel = 6

// headingPatterns holds `^#{N}\s+(text)` for N = 1..6 at index N-1. The text
// stops at a carriage return, which stays outside the tag.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var headingPatterns = func() [maxHeadingLevel]*regexp.Regexp {
	var patterns [maxHeadingLevel]*regexp.Regexp
	for level := 1; level <= maxHeadingLevel; level++ {
		patterns[level-1] = regexp.MustCompile(fmt.Sprintf(`(?m)^#{%d}\s+([^\r\n]+)`, level))
	}
	return patterns
}()

// headingSizes are the generic [size] values for levels 1..6.
//
//nolint:gochecknoglobals // Read-only lookup table.
var headingSizes = [maxHeadingLevel]string{"28", "24", "20", "18", "16", "14"}

// HeaderRule converts ATX headings.
type HeaderRule struct {
	pipeline.BaseRule
}

// NewHeaderRule creates a new header rule.
func NewHeaderRule() *HeaderRule {
	return &HeaderRule{
		BaseRule: pipeline.NewBaseRule(NameHeader, "ATX headings to [size][b] (generic) or [hN] (extended)"),
	}
}

// Transform rewrites headings deepest level first, so a level-1 pattern never
// sees the leading hashes of a deeper heading.
func (r *HeaderRule) Transform(text string, dialect config.Dialect) string {
	for level := maxHeadingLevel; level >= 1; level-- {
		var repl string
		if dialect == config.DialectExtended {
			repl = fmt.Sprintf("[h%d]${1}[/h%d]", level, level)
		} else {
			repl = "[size=" + headingSizes[level-1] + "][b]${1}[/b][/size]"
		}
		text = headingPatterns[level-1].ReplaceAllString(text, repl)
	}
	return text
}
