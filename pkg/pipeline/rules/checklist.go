package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	uncheckedItemPattern = regexp.MustCompile(`(?m)(^|\r)(\s*)[-*+]\s+\[\s*\]\s+([^\r\n]+)`)
	checkedItemPattern   = regexp.MustCompile(`(?m)(^|\r)(\s*)[-*+]\s+\[[xX]\]\s+([^\r\n]+)`)

	// genericTaskContent and extendedTaskContent match list item content that
	// starts with the marker the checklist rule emits for that dialect.
	genericTaskContent  = regexp.MustCompile(`^\[[ X]\]\s`)
	extendedTaskContent = regexp.MustCompile(`^\[c?\]\s`)
)

// ChecklistRule normalizes task list items.
type ChecklistRule struct {
	pipeline.BaseRule
}

// NewChecklistRule creates a new checklist rule.
func NewChecklistRule() *ChecklistRule {
	return &ChecklistRule{
		BaseRule: pipeline.NewBaseRule(NameChecklist, "task items to - [ ]/- [X] (generic) or - []/- [c] (extended)").
			Before(NameList),
	}
}

// Transform rewrites task items, keeping their indentation.
func (r *ChecklistRule) Transform(text string, dialect config.Dialect) string {
	unchecked, checked := "${1}${2}- [ ] ${3}", "${1}${2}- [X] ${3}"
	if dialect == config.DialectExtended {
		unchecked, checked = "${1}${2}- [] ${3}", "${1}${2}- [c] ${3}"
	}

	text = uncheckedItemPattern.ReplaceAllString(text, unchecked)
	return checkedItemPattern.ReplaceAllString(text, checked)
}

// isChecklistContent reports whether list item content is a task item already
// normalized for dialect.
func isChecklistContent(content string, dialect config.Dialect) bool {
	if dialect == config.DialectExtended {
		return extendedTaskContent.MatchString(content)
	}
	return genericTaskContent.MatchString(content)
}
