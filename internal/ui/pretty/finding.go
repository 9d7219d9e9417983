package pretty

import (
	"fmt"

	"github.com/cerealean/wabbc/pkg/analysis"
)

// FormatFinding formats a single preflight finding for terminal output:
// location, severity, message, and kind.
func (s *Styles) FormatFinding(path string, finding analysis.Finding) string {
	location := s.Path.Render(path)
	if finding.Line > 0 {
		location += s.Muted.Render(fmt.Sprintf(":%d", finding.Line))
	}

	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(finding.Severity),
		finding.Message,
		s.Muted.Render("("+string(finding.Kind)+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev analysis.Severity) string {
	return s.Badge(sev).Render(string(sev))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.Path.Render(path)
	if findingCount > 0 {
		header += s.Muted.Render(fmt.Sprintf(" (%d %s)", findingCount, plural(findingCount, "finding", "findings")))
	}
	return header
}

// FormatReport formats every finding of report under a file header.
// It returns "" for a report without findings.
func (s *Styles) FormatReport(report *analysis.Report) string {
	if !report.HasFindings() {
		return ""
	}

	out := s.FormatFileHeader(report.Path, len(report.Findings)) + "\n"
	for _, finding := range report.Findings {
		out += s.FormatFinding(report.Path, finding)
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
