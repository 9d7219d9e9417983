package analysis

import (
	"cmp"
	"slices"

	"github.com/cerealean/wabbc/pkg/config"
)

// Severity grades a finding.
type Severity string

const (
	// SeverityWarning marks content that converts incorrectly.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks content that passes through unconverted.
	SeverityInfo Severity = "info"
)

// Kind identifies the construct behind a finding.
type Kind string

// Finding kinds.
const (
	KindSetextHeading   Kind = "setext-heading"
	KindNestedEmphasis  Kind = "nested-emphasis"
	KindMarkersInCode   Kind = "emphasis-in-code"
	KindReference       Kind = "reference-definition"
	KindRawHTML         Kind = "raw-html"
	KindHTMLBlock       Kind = "html-block"
	KindTable           Kind = "table"
	KindThematicBreak   Kind = "thematic-break"
	KindUnknownLanguage Kind = "unknown-language"
	KindIndentedCode    Kind = "indented-code"
	KindFenceSyntax     Kind = "fence-syntax"
)

// Finding is a construct the conversion pipeline will not render faithfully.
// Line is 1-based; 0 means the position is unknown.
type Finding struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// Counts tallies the constructs seen in a document.
type Counts struct {
	Headings       int `json:"headings"`
	Emphasis       int `json:"emphasis"`
	Strikethrough  int `json:"strikethrough"`
	Links          int `json:"links"`
	Images         int `json:"images"`
	CodeBlocks     int `json:"codeBlocks"`
	CodeSpans      int `json:"codeSpans"`
	Lists          int `json:"lists"`
	TaskItems      int `json:"taskItems"`
	Blockquotes    int `json:"blockquotes"`
	Tables         int `json:"tables"`
	ThematicBreaks int `json:"thematicBreaks"`
	RawHTML        int `json:"rawHtml"`
}

// Report is the preflight result for one document.
type Report struct {
	// Path is set by callers that analyze files.
	Path     string         `json:"path,omitempty"`
	Dialect  config.Dialect `json:"dialect"`
	Counts   Counts         `json:"counts"`
	Findings []Finding      `json:"findings,omitempty"`
}

// HasFindings returns true if the report has any findings.
func (r *Report) HasFindings() bool {
	return r != nil && len(r.Findings) > 0
}

// KindSummary aggregates findings of one kind.
type KindSummary struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
	Files    int      `json:"files"`
}

// Summary aggregates many reports.
type Summary struct {
	Files             int           `json:"filesChecked"`
	FilesWithFindings int           `json:"filesWithFindings"`
	Findings          int           `json:"totalFindings"`
	Warnings          int           `json:"warnings"`
	Infos             int           `json:"infos"`
	ByKind            []KindSummary `json:"byKind,omitempty"`
}

// Summarize folds reports into a Summary. Nil reports are ignored.
func Summarize(reports []*Report, sortBy SortField) Summary {
	var summary Summary
	byKind := make(map[Kind]*KindSummary)

	for _, report := range reports {
		if report == nil {
			continue
		}
		summary.Files++
		if !report.HasFindings() {
			continue
		}
		summary.FilesWithFindings++

		seen := make(map[Kind]bool)
		for _, finding := range report.Findings {
			summary.Findings++
			switch finding.Severity {
			case SeverityWarning:
				summary.Warnings++
			case SeverityInfo:
				summary.Infos++
			}

			entry, ok := byKind[finding.Kind]
			if !ok {
				entry = &KindSummary{Kind: finding.Kind, Severity: finding.Severity}
				byKind[finding.Kind] = entry
			}
			entry.Count++
			if !seen[finding.Kind] {
				seen[finding.Kind] = true
				entry.Files++
			}
		}
	}

	for _, entry := range byKind {
		summary.ByKind = append(summary.ByKind, *entry)
	}
	sortKinds(summary.ByKind, sortBy)

	return summary
}

func sortKinds(kinds []KindSummary, sortBy SortField) {
	slices.SortFunc(kinds, func(left, right KindSummary) int {
		if sortBy == SortByCount {
			if result := cmp.Compare(right.Count, left.Count); result != 0 {
				return result
			}
		}
		return cmp.Compare(left.Kind, right.Kind)
	})
}
