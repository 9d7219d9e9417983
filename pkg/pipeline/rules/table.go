package rules

import (
	"regexp"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// tablePattern matches a header row, a separator row, and any body rows.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var tablePattern = regexp.MustCompile(`(?m)^\|([^\r\n]+)\|\s*\n\|[-\s|:]+\|\s*\n((?:\|[^\r\n]+\|\s*\n?)*)`)

// TableRule converts pipe tables.
type TableRule struct {
	pipeline.BaseRule
}

// NewTableRule creates a new table rule.
func NewTableRule() *TableRule {
	return &TableRule{
		BaseRule: pipeline.NewBaseRule(NameTable, "pipe tables to [table][tr][th]/[td]").
			Before(NameLineBreak),
	}
}

// Transform rewrites tables. Column alignment in the separator row is ignored.
func (r *TableRule) Transform(text string, _ config.Dialect) string {
	return replaceSubmatch(tablePattern, text, func(groups []string) string {
		var b strings.Builder

		b.WriteString("[table]\n")
		writeTableRow(&b, "th", splitTableRow(groups[1]))

		for _, row := range strings.Split(strings.TrimSpace(groups[2]), "\n") {
			if strings.TrimSpace(row) == "" || !strings.Contains(row, "|") {
				continue
			}
			writeTableRow(&b, "td", splitTableRow(row))
		}

		b.WriteString("[/table]\n")
		return b.String()
	})
}

func writeTableRow(b *strings.Builder, tag string, cells []string) {
	b.WriteString("[tr]\n")
	for _, cell := range cells {
		b.WriteString("[" + tag + "]" + cell + "[/" + tag + "]\n")
	}
	b.WriteString("[/tr]\n")
}

// splitTableRow drops one leading and one trailing pipe, then splits on the
// rest and trims each cell.
func splitTableRow(row string) []string {
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")

	cells := strings.Split(row, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}
