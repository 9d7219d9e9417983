package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cerealean/wabbc/pkg/analysis"
	"github.com/cerealean/wabbc/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted (2 written, 1 unchanged), 1 failed in 12ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool, elapsed time.Duration) string {
	if stats.Discovered == 0 {
		return s.Muted.Render("No Markdown files found") + "\n"
	}

	verb := "converted"
	if dryRun {
		verb = "converted (dry run)"
	}

	head := fmt.Sprintf("%d %s %s", stats.Converted, plural(stats.Converted, "file", "files"), verb)
	var detail []string
	if stats.Written > 0 {
		detail = append(detail, s.Clean.Render(fmt.Sprintf("%d written", stats.Written)))
	}
	if stats.Unchanged > 0 {
		detail = append(detail, fmt.Sprintf("%d unchanged", stats.Unchanged))
	}
	if len(detail) > 0 {
		head += " (" + strings.Join(detail, ", ") + ")"
	}

	parts := []string{head}
	if stats.Skipped > 0 {
		parts = append(parts, s.Muted.Render(fmt.Sprintf("%d skipped", stats.Skipped)))
	}
	if stats.Findings > 0 {
		parts = append(parts, s.Badge(analysis.SeverityWarning).Render(fmt.Sprintf("%d %s in %d %s",
			stats.Findings, plural(stats.Findings, "finding", "findings"),
			stats.FilesWithFindings, plural(stats.FilesWithFindings, "file", "files"))))
	}
	if stats.Errored > 0 {
		parts = append(parts, s.Failed.Render(fmt.Sprintf("%d failed", stats.Errored)))
	}

	line := strings.Join(parts, ", ")
	if elapsed > 0 {
		line += s.Muted.Render(" in " + elapsed.Round(time.Millisecond).String())
	}
	return line + "\n"
}

// FormatPreflightSummary formats aggregated preflight findings as a block.
func (s *Styles) FormatPreflightSummary(summary analysis.Summary) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.Heading.Render("Preflight"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:       " + strconv.Itoa(summary.Files) + "\n")
	if summary.FilesWithFindings > 0 {
		builder.WriteString("  Files with findings: " + s.Badge(analysis.SeverityWarning).Render(strconv.Itoa(summary.FilesWithFindings)) + "\n")
	}
	builder.WriteString("  Total findings:      " + strconv.Itoa(summary.Findings) + "\n")

	for _, kind := range summary.ByKind {
		builder.WriteString(fmt.Sprintf("    %-22s %s\n", string(kind.Kind)+":", s.Badge(kind.Severity).Render(strconv.Itoa(kind.Count))))
	}

	builder.WriteString("\n")
	if summary.Findings == 0 {
		builder.WriteString(s.Clean.Render("Everything converts cleanly"))
	} else {
		builder.WriteString(s.Badge(analysis.SeverityWarning).Render("Some content will not convert faithfully"))
	}
	builder.WriteString("\n")

	return builder.String()
}
