package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cerealean/wabbc/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFlexWidth     = 30
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow is one finding in the findings table.
type TableRow struct {
	File     string
	Line     string
	Kind     string
	Message  string
	Severity analysis.Severity
}

// RuleRow is one rule in the rules table.
type RuleRow struct {
	Position    int
	Name        string
	Description string
	After       []string
	Before      []string
}

// TableFormatter renders column-aligned tables sized to the terminal.
// Widths are display widths, so wide runes in messages keep columns aligned.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatFindings formats the findings of reports as a table grouped by file.
// It returns "" when no report has findings.
func (t *TableFormatter) FormatFindings(reports []*analysis.Report) string {
	var groups [][]TableRow
	for _, report := range reports {
		if !report.HasFindings() {
			continue
		}
		rows := make([]TableRow, 0, len(report.Findings))
		for _, finding := range report.Findings {
			rows = append(rows, FindingToTableRow(report.Path, finding))
		}
		groups = append(groups, rows)
	}
	if len(groups) == 0 {
		return ""
	}

	layout := newLayout([]string{"FILE", "LINE", "KIND", "MESSAGE"}, 3)
	for _, group := range groups {
		for _, row := range group {
			layout.measure([]string{row.File, row.Line, row.Kind, row.Message})
		}
	}
	layout.fit(t.termWidth)

	var builder strings.Builder
	builder.WriteString(t.styles.Heading.Render(layout.header()) + "\n")
	builder.WriteString(t.separator(layout, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.separator(layout, lightSeparator) + "\n")
		}
		for _, row := range group {
			line := layout.row([]string{row.File, row.Line, row.Kind, row.Message}, 0)
			builder.WriteString(t.styles.Row(row.Severity).Render(line) + "\n")
		}
	}

	builder.WriteString(t.separator(layout, heavySeparator) + "\n")
	builder.WriteString(t.legend() + "\n")

	return builder.String()
}

// FormatRules formats a resolved pipeline as a table.
func (t *TableFormatter) FormatRules(title string, rows []RuleRow) string {
	layout := newLayout([]string{"#", "RULE", "DESCRIPTION", "CONSTRAINTS"}, 2)
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := []string{strconv.Itoa(row.Position), row.Name, row.Description, constraints(row)}
		layout.measure(cell)
		cells = append(cells, cell)
	}
	layout.fit(t.termWidth)

	var builder strings.Builder
	if title != "" {
		builder.WriteString(t.styles.Strong.Render(title) + "\n")
	}
	builder.WriteString(t.styles.Heading.Render(layout.header()) + "\n")
	builder.WriteString(t.separator(layout, heavySeparator) + "\n")
	for _, cell := range cells {
		builder.WriteString(layout.row(cell, -1) + "\n")
	}
	builder.WriteString(t.separator(layout, heavySeparator) + "\n")

	return builder.String()
}

// FindingToTableRow converts a preflight finding to a table row.
func FindingToTableRow(path string, finding analysis.Finding) TableRow {
	line := "-"
	if finding.Line > 0 {
		line = strconv.Itoa(finding.Line)
	}
	return TableRow{
		File:     path,
		Line:     line,
		Kind:     string(finding.Kind),
		Message:  finding.Message,
		Severity: finding.Severity,
	}
}

func constraints(row RuleRow) string {
	var parts []string
	if len(row.After) > 0 {
		parts = append(parts, "after "+strings.Join(row.After, ", "))
	}
	if len(row.Before) > 0 {
		parts = append(parts, "before "+strings.Join(row.Before, ", "))
	}
	return strings.Join(parts, "; ")
}

func (t *TableFormatter) separator(l *layout, char string) string {
	return t.styles.Rule.Render(strings.Repeat(char, l.totalWidth()))
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.Legend.Render(" Legend: warning = converts incorrectly | info = passes through unconverted")
	}
	return t.styles.Legend.Render(fmt.Sprintf(" Legend: %s = converts incorrectly  %s = passes through unconverted",
		t.styles.Row(analysis.SeverityWarning).Render(" warning "), t.styles.Row(analysis.SeverityInfo).Render(" info ")))
}

// layout tracks column widths. The flex column shrinks to fit the terminal.
type layout struct {
	titles []string
	widths []int
	flex   int
}

func newLayout(titles []string, flex int) *layout {
	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = runewidth.StringWidth(title)
	}
	return &layout{titles: titles, widths: widths, flex: flex}
}

func (l *layout) measure(cells []string) {
	for i, cell := range cells {
		l.widths[i] = max(l.widths[i], runewidth.StringWidth(cell))
	}
}

func (l *layout) totalWidth() int {
	total := 1
	for _, w := range l.widths {
		total += w + tablePadding
	}
	return total
}

// fit narrows the flex column, then the first column, to termWidth.
func (l *layout) fit(termWidth int) {
	if excess := l.totalWidth() - termWidth; excess > 0 {
		l.widths[l.flex] = max(min(minFlexWidth, l.widths[l.flex]), l.widths[l.flex]-excess)
	}
	if excess := l.totalWidth() - termWidth; excess > 0 && l.flex != 0 {
		l.widths[0] = max(min(minFlexWidth, l.widths[0]), l.widths[0]-excess)
	}
}

func (l *layout) header() string {
	return l.row(l.titles, -1)
}

// row pads each cell to its column. leftTruncate is the column index whose
// overflow is cut from the left (file paths keep their file name), or -1.
func (l *layout) row(cells []string, leftTruncate int) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, cell := range cells {
		width := l.widths[i]
		if runewidth.StringWidth(cell) > width {
			if i == leftTruncate {
				cell = runewidth.TruncateLeft(cell, runewidth.StringWidth(cell)-width+len(ellipsis), ellipsis)
			} else {
				cell = runewidth.Truncate(cell, width, ellipsis)
			}
		}
		if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, width) + strings.Repeat(" ", tablePadding)
		}
		builder.WriteString(cell)
	}
	return builder.String()
}
