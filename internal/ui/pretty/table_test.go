package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerealean/wabbc/internal/ui/pretty"
	"github.com/cerealean/wabbc/pkg/analysis"
)

func sampleReports() []*analysis.Report {
	return []*analysis.Report{
		{
			Path: "docs/a.md",
			Findings: []analysis.Finding{
				{Kind: analysis.KindSetextHeading, Severity: analysis.SeverityWarning, Line: 3, Message: "setext heading is not converted"},
				{Kind: analysis.KindThematicBreak, Severity: analysis.SeverityWarning, Message: "thematic break is not converted"},
			},
		},
		{Path: "docs/clean.md"},
		{
			Path: "b.md",
			Findings: []analysis.Finding{
				{Kind: analysis.KindRawHTML, Severity: analysis.SeverityInfo, Line: 7, Message: "raw HTML passes through"},
			},
		},
	}
}

func TestTableFormatter_FormatFindings(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 200)
	out := formatter.FormatFindings(sampleReports())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 7)

	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "LINE")
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[0], "MESSAGE")
	assert.True(t, strings.HasPrefix(lines[1], "="))

	assert.Contains(t, out, "docs/a.md")
	assert.Contains(t, out, "setext-heading")
	assert.Contains(t, out, "raw HTML passes through")
	assert.NotContains(t, out, "docs/clean.md")
	assert.Contains(t, out, "Legend: warning")

	// Unknown lines render as a dash.
	assert.Contains(t, out, "  -  ")
}

func TestTableFormatter_GroupSeparator(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 200)
	out := formatter.FormatFindings(sampleReports())

	var light int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "---") {
			light++
		}
	}
	assert.Equal(t, 1, light)
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatFindings(nil))
	assert.Empty(t, formatter.FormatFindings([]*analysis.Report{{Path: "a.md"}}))
}

func TestTableFormatter_TruncatesMessage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 20)
	reports := []*analysis.Report{{
		Path: "a.md",
		Findings: []analysis.Finding{
			{Kind: analysis.KindSetextHeading, Severity: analysis.SeverityWarning, Line: 1, Message: long},
		},
	}}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)
	out := formatter.FormatFindings(reports)

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}

func TestTableFormatter_AlignsColumns(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 200)
	out := formatter.FormatFindings(sampleReports())

	var kindColumns []int
	for _, line := range strings.Split(out, "\n") {
		for _, kind := range []string{"KIND", "setext-heading", "thematic-break", "raw-html"} {
			if idx := strings.Index(line, kind); idx >= 0 {
				kindColumns = append(kindColumns, idx)
			}
		}
	}
	require.Len(t, kindColumns, 4)
	for _, col := range kindColumns {
		assert.Equal(t, kindColumns[0], col)
	}
}

func TestTableFormatter_FormatRules(t *testing.T) {
	t.Parallel()

	rows := []pretty.RuleRow{
		{Position: 1, Name: "header", Description: "ATX headings"},
		{Position: 2, Name: "emphasis", Description: "bold and italic", After: []string{"header"}},
		{Position: 3, Name: "list", Description: "bullet lists", After: []string{"checklist"}, Before: []string{"quote"}},
	}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)
	out := formatter.FormatRules("generic", rows)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "generic", lines[0])
	assert.Contains(t, lines[1], "RULE")
	assert.Contains(t, lines[1], "CONSTRAINTS")
	assert.Contains(t, lines[3], "header")
	assert.Contains(t, lines[4], "after header")
	assert.Contains(t, lines[5], "after checklist; before quote")
}

func TestFindingToTableRow(t *testing.T) {
	t.Parallel()

	row := pretty.FindingToTableRow("a.md", analysis.Finding{
		Kind:     analysis.KindTable,
		Severity: analysis.SeverityWarning,
		Line:     12,
		Message:  "tables need the extended dialect",
	})

	assert.Equal(t, pretty.TableRow{
		File:     "a.md",
		Line:     "12",
		Kind:     "table",
		Message:  "tables need the extended dialect",
		Severity: analysis.SeverityWarning,
	}, row)
}
