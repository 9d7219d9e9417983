// Package pretty renders preflight findings, run summaries, and help text
// for the terminal with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/cerealean/wabbc/pkg/analysis"
)

// ANSI palette indexes.
const (
	colorMuted   = "8"
	colorFailed  = "9"
	colorClean   = "10"
	colorWarning = "11"
	colorInfo    = "12"
)

// Styles holds the renderers shared by the finding, summary, table, and
// help output. Every style is plain when color is disabled.
type Styles struct {
	// Path renders file paths and command names.
	Path lipgloss.Style
	// Muted renders secondary detail: line numbers, finding kinds, timings.
	Muted lipgloss.Style
	// Heading renders section titles.
	Heading lipgloss.Style
	Strong  lipgloss.Style

	// Clean marks written files and a preflight without warnings.
	Clean lipgloss.Style
	// Failed marks files that could not be converted.
	Failed lipgloss.Style

	// Rule draws table separators; Legend explains the row colors.
	Rule   lipgloss.Style
	Legend lipgloss.Style

	badges map[analysis.Severity]lipgloss.Style
	rows   map[analysis.Severity]lipgloss.Style
}

// NewStyles returns the styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	paint := func(color string) lipgloss.Style {
		style := lipgloss.NewStyle()
		if colorEnabled && color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		return style
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		return style.Bold(colorEnabled)
	}

	return &Styles{
		Path:    bold(paint("")),
		Muted:   paint(colorMuted),
		Heading: bold(paint("")),
		Strong:  bold(paint("")),
		Clean:   bold(paint(colorClean)),
		Failed:  bold(paint(colorFailed)),
		Rule:    paint(colorMuted),
		Legend:  paint(colorMuted).Italic(colorEnabled),
		badges: map[analysis.Severity]lipgloss.Style{
			analysis.SeverityWarning: bold(paint(colorWarning)),
			analysis.SeverityInfo:    bold(paint(colorInfo)),
		},
		rows: map[analysis.Severity]lipgloss.Style{
			analysis.SeverityWarning: paint(colorWarning),
			analysis.SeverityInfo:    paint(colorInfo),
		},
	}
}

// Badge returns the style for a severity label or count. Unknown
// severities render plain.
func (s *Styles) Badge(sev analysis.Severity) lipgloss.Style {
	if style, ok := s.badges[sev]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Row returns the style for a table row of the given severity.
func (s *Styles) Row(sev analysis.Severity) lipgloss.Style {
	if style, ok := s.rows[sev]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled reports whether output to writer should be colored.
// "always" and "never" force the answer; any other mode is treated as
// "auto", which requires a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	// https://no-color.org/
	return os.Getenv("NO_COLOR") == "" && isTerminal(writer)
}

func isTerminal(writer io.Writer) bool {
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
