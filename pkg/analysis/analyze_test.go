package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerealean/wabbc/pkg/analysis"
	"github.com/cerealean/wabbc/pkg/config"
)

func kinds(report *analysis.Report) []analysis.Kind {
	var out []analysis.Kind
	for _, finding := range report.Findings {
		out = append(out, finding.Kind)
	}
	return out
}

func TestAnalyze_Findings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		dialect   config.Dialect
		wantKinds []analysis.Kind
		wantLine  int
	}{
		{
			name:      "setext heading",
			input:     "Title\n=====\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindSetextHeading},
			wantLine:  1,
		},
		{
			name:    "atx heading is fine",
			input:   "## Title\n",
			dialect: config.DialectGeneric,
		},
		{
			name:      "nested emphasis",
			input:     "***both***\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindNestedEmphasis},
			wantLine:  1,
		},
		{
			name:      "emphasis markers in code span",
			input:     "text\n\n`a*b*c`\n",
			dialect:   config.DialectExtended,
			wantKinds: []analysis.Kind{analysis.KindMarkersInCode},
			wantLine:  3,
		},
		{
			name:    "single marker in code span is fine",
			input:   "`a*b`\n",
			dialect: config.DialectExtended,
		},
		{
			name:      "reference definition",
			input:     "See [x][r].\n\n[r]: https://example.com\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindReference},
			wantLine:  3,
		},
		{
			name:    "supported html in extended",
			input:   "x<sup>2</sup> H<sub>2</sub>O <ins>u</ins>\n",
			dialect: config.DialectExtended,
		},
		{
			name:      "html in generic",
			input:     "x<sup>2</sup>\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindRawHTML, analysis.KindRawHTML},
			wantLine:  1,
		},
		{
			name:      "unsupported html in extended",
			input:     "a <span>b</span>\n",
			dialect:   config.DialectExtended,
			wantKinds: []analysis.Kind{analysis.KindRawHTML, analysis.KindRawHTML},
			wantLine:  1,
		},
		{
			name:      "html block",
			input:     "<div>\nx\n</div>\n",
			dialect:   config.DialectExtended,
			wantKinds: []analysis.Kind{analysis.KindHTMLBlock},
			wantLine:  1,
		},
		{
			name:      "table in generic",
			input:     "| a | b |\n|---|---|\n| 1 | 2 |\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindTable},
			wantLine:  1,
		},
		{
			name:    "table in extended",
			input:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			dialect: config.DialectExtended,
		},
		{
			name:      "unknown fence language in extended",
			input:     "```notalang\nx\n```\n",
			dialect:   config.DialectExtended,
			wantKinds: []analysis.Kind{analysis.KindUnknownLanguage},
			wantLine:  1,
		},
		{
			name:    "known fence language",
			input:   "```go\nx\n```\n",
			dialect: config.DialectExtended,
		},
		{
			name:    "fence language ignored in generic",
			input:   "```notalang\nx\n```\n",
			dialect: config.DialectGeneric,
		},
		{
			name:      "tilde fence",
			input:     "~~~\nx\n~~~\n",
			dialect:   config.DialectExtended,
			wantKinds: []analysis.Kind{analysis.KindFenceSyntax},
			wantLine:  1,
		},
		{
			name:      "fence info with attributes",
			input:     "para\n\n```go title\nx\n```\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindFenceSyntax},
			wantLine:  3,
		},
		{
			name:      "indented code",
			input:     "    code\n",
			dialect:   config.DialectGeneric,
			wantKinds: []analysis.Kind{analysis.KindIndentedCode},
			wantLine:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := analysis.Options{
				Dialect:       tt.dialect,
				KnownLanguage: func(lang string) bool { return lang == "go" },
			}
			report := analysis.AnalyzeWithOptions([]byte(tt.input), opts)
			require.NotNil(t, report)
			assert.Equal(t, tt.dialect, report.Dialect)
			assert.Equal(t, tt.wantKinds, kinds(report))

			if len(tt.wantKinds) == 0 {
				assert.False(t, report.HasFindings())
				return
			}
			assert.True(t, report.HasFindings())
			assert.Equal(t, tt.wantLine, report.Findings[0].Line)
			assert.NotEmpty(t, report.Findings[0].Message)
		})
	}
}

func TestAnalyze_ThematicBreak(t *testing.T) {
	t.Parallel()

	input := []byte("a\n\n***\n\nb\n")

	generic := analysis.Analyze(input, config.DialectGeneric)
	assert.Equal(t, []analysis.Kind{analysis.KindThematicBreak}, kinds(generic))
	assert.Equal(t, 1, generic.Counts.ThematicBreaks)

	extended := analysis.Analyze(input, config.DialectExtended)
	assert.False(t, extended.HasFindings())
}

func TestAnalyze_Counts(t *testing.T) {
	t.Parallel()

	input := "# T\n\n**b** [l](https://e.com) ![i](s.png)\n\n- [ ] task\n- item\n\n> q\n\n`c` ~~s~~\n\n```go\nx\n```\n"
	report := analysis.Analyze([]byte(input), config.DialectExtended)

	assert.Equal(t, analysis.Counts{
		Headings:      1,
		Emphasis:      1,
		Strikethrough: 1,
		Links:         1,
		Images:        1,
		CodeBlocks:    1,
		CodeSpans:     1,
		Lists:         1,
		TaskItems:     1,
		Blockquotes:   1,
	}, report.Counts)
	assert.Empty(t, report.Findings)
}

func TestAnalyze_FindingsSortedByLine(t *testing.T) {
	t.Parallel()

	input := "[r]: https://example.com\n\nTitle\n-----\n\n`x_y_z`\n"
	report := analysis.Analyze([]byte(input), config.DialectGeneric)

	require.Len(t, report.Findings, 3)
	assert.Equal(t, []analysis.Kind{
		analysis.KindReference,
		analysis.KindSetextHeading,
		analysis.KindMarkersInCode,
	}, kinds(report))
	assert.Equal(t, []int{1, 3, 6}, []int{
		report.Findings[0].Line,
		report.Findings[1].Line,
		report.Findings[2].Line,
	})
}

func TestAnalyze_EmptyInput(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, config.DialectGeneric)
	require.NotNil(t, report)
	assert.Equal(t, analysis.Counts{}, report.Counts)
	assert.False(t, report.HasFindings())
}
