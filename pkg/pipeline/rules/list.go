package rules

import (
	"regexp"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// Item patterns treat a carriage return as a line start as well as a line
// end: group 1 holds that "\r" and group 2 the indentation after it, which may
// include the "\n" of a CRLF pair.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var (
	unorderedItemPattern = regexp.MustCompile(`(?m)(^|\r)(\s*)[-*+]\s+([^\r\n]+)`)
	orderedItemPattern   = regexp.MustCompile(`(?m)(^|\r)(\s*)\d+\.\s+([^\r\n]+)`)

	// orderedLinePattern is orderedItemPattern for a single line split on
	// "\n". A line still ending in "\r" does not match.
	orderedLinePattern = regexp.MustCompile(`^(\s*)\d+\.\s+([^\r\n]+)$`)

	// itemRunPattern matches a run of consecutive [*] lines and the line
	// break (or text start) before it.
	itemRunPattern = regexp.MustCompile(`(\n|^)((?:\s*\[\*\][^\n]*(?:\n|$))+)`)
)

// ListRule converts unordered and ordered lists.
type ListRule struct {
	pipeline.BaseRule
}

// NewListRule creates a new list rule.
func NewListRule() *ListRule {
	return &ListRule{
		BaseRule: pipeline.NewBaseRule(NameList, "list items to [list][*] (generic) or dash depth and [ol][li] (extended)").
			After(NameEmphasis),
	}
}

// Transform rewrites list items. Task items already normalized by the
// checklist rule for the same dialect are left untouched.
func (r *ListRule) Transform(text string, dialect config.Dialect) string {
	if dialect == config.DialectExtended {
		return r.extended(text)
	}
	return r.generic(text)
}

func (r *ListRule) generic(text string) string {
	text = replaceSubmatch(unorderedItemPattern, text, func(groups []string) string {
		if isChecklistContent(groups[3], config.DialectGeneric) {
			return groups[0]
		}
		return groups[1] + groups[2] + "[*] " + groups[3]
	})
	text = orderedItemPattern.ReplaceAllString(text, "${1}${2}[*] ${3}")

	return replaceSubmatch(itemRunPattern, text, func(groups []string) string {
		return groups[1] + "[list]\n" + strings.TrimSpace(groups[2]) + "\n[/list]\n"
	})
}

func (r *ListRule) extended(text string) string {
	text = wrapOrderedRuns(text)

	return replaceSubmatch(unorderedItemPattern, text, func(groups []string) string {
		if isChecklistContent(groups[3], config.DialectExtended) {
			return groups[0]
		}
		return groups[1] + strings.Repeat("-", len(groups[2])/2+1) + " " + groups[3]
	})
}

// wrapOrderedRuns wraps each run of same-indent ordered items in [ol] and
// turns the items into [li] lines. An indentation change closes the current
// run and opens a new one; any other line closes it.
func wrapOrderedRuns(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	inList := false
	indent := ""

	for _, line := range lines {
		m := orderedLinePattern.FindStringSubmatch(line)
		if m == nil {
			if inList {
				out = append(out, "[/ol]")
				inList = false
			}
			out = append(out, line)
			continue
		}

		if !inList || m[1] != indent {
			if inList {
				out = append(out, "[/ol]")
			}
			out = append(out, "[ol]")
			inList = true
			indent = m[1]
		}
		out = append(out, "  [li]"+m[2]+"[/li]")
	}

	if inList {
		out = append(out, "[/ol]")
	}

	return strings.Join(out, "\n")
}
