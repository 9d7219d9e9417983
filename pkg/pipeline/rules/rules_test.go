package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

type transformCase struct {
	name    string
	dialect config.Dialect
	input   string
	want    string
}

func runTransformCases(t *testing.T, rule pipeline.Rule, tests []transformCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dialect := tt.dialect
			if dialect == "" {
				dialect = config.DialectGeneric
			}
			assert.Equal(t, tt.want, rule.Transform(tt.input, dialect))
		})
	}
}

func TestHeaderRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewHeaderRule(), []transformCase{
		{name: "generic h1", input: "# Title", want: "[size=28][b]Title[/b][/size]"},
		{name: "generic h3", input: "### Third", want: "[size=20][b]Third[/b][/size]"},
		{name: "generic h6", input: "###### Six", want: "[size=14][b]Six[/b][/size]"},
		{name: "extended h1", dialect: config.DialectExtended, input: "# Title", want: "[h1]Title[/h1]"},
		{name: "extended h2", dialect: config.DialectExtended, input: "## Sub", want: "[h2]Sub[/h2]"},
		{
			name:    "multiple headings",
			dialect: config.DialectExtended,
			input:   "# A\ntext\n## B",
			want:    "[h1]A[/h1]\ntext\n[h2]B[/h2]",
		},
		{name: "requires space", input: "#NoSpace", want: "#NoSpace"},
		{name: "seven hashes untouched", input: "####### seven", want: "####### seven"},
		{name: "hash mid-line untouched", input: "issue # 5", want: "issue # 5"},
		{name: "crlf stays outside tag", dialect: config.DialectExtended, input: "# Title\r\nText", want: "[h1]Title[/h1]\r\nText"},
		{name: "generic crlf", input: "## Sub\r\n", want: "[size=24][b]Sub[/b][/size]\r\n"},
	})
}

func TestEmphasisRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewEmphasisRule(), []transformCase{
		{name: "bold and italic", input: "**bold** and *italic*", want: "[b]bold[/b] and [i]italic[/i]"},
		{name: "underscore forms", input: "__b__ _i_", want: "[b]b[/b] [i]i[/i]"},
		{name: "adjacent spans", input: "**a** **b**", want: "[b]a[/b] [b]b[/b]"},
		{name: "first closer wins", input: "*a* b*", want: "[i]a[/i] b*"},
		{name: "underscores inside words", input: "snake_case_name", want: "snake[i]case[/i]name"},
		{name: "no markers", input: "plain", want: "plain"},
		{name: "carriage return ends span", input: "*a\rb*", want: "*a\rb*"},
		{name: "crlf between spans", input: "**a**\r\n_b_", want: "[b]a[/b]\r\n[i]b[/i]"},
	})
}

func TestImageRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewImageRule(), []transformCase{
		{name: "generic drops alt", input: "![alt](a.png)", want: "[img]a.png[/img]"},
		{name: "extended keeps alt", dialect: config.DialectExtended, input: "![alt](a.png)", want: "[img:alt]a.png[/img]"},
		{name: "extended empty alt", dialect: config.DialectExtended, input: "![](a.png)", want: "[img:]a.png[/img]"},
		{name: "plain link untouched", input: "[text](url)", want: "[text](url)"},
	})
}

func TestLinkRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewLinkRule(), []transformCase{
		{name: "inline link", input: "[text](http://x)", want: "[url=http://x]text[/url]"},
		{name: "autolink", input: "<https://example.com>", want: "[url]https://example.com[/url]"},
		{name: "image syntax untouched", input: "![alt](a.png)", want: "![alt](a.png)"},
		{name: "non-http autolink untouched", input: "<ftp://x>", want: "<ftp://x>"},
		{
			name:  "two links",
			input: "[a](1) and [b](2)",
			want:  "[url=1]a[/url] and [url=2]b[/url]",
		},
	})
}

func TestCodeRule(t *testing.T) {
	t.Parallel()

	goLang := func(string) string { return "go" }
	unsure := func(string) string { return "" }

	tests := []struct {
		name     string
		dialect  config.Dialect
		language LanguageFunc
		input    string
		want     string
	}{
		{
			name:    "generic drops language",
			dialect: config.DialectGeneric,
			input:   "```go\nfmt.Println()\n```",
			want:    "[code]fmt.Println()[/code]",
		},
		{
			name:    "extended keeps language",
			dialect: config.DialectExtended,
			input:   "```go\nfmt.Println()\n```",
			want:    "[code:go]fmt.Println()[/code]",
		},
		{
			name:    "extended unlabelled without inference",
			dialect: config.DialectExtended,
			input:   "```\nx := 1\n```",
			want:    "[code]x := 1[/code]",
		},
		{
			name:     "extended unlabelled with inference",
			dialect:  config.DialectExtended,
			language: goLang,
			input:    "```\nx := 1\n```",
			want:     "[code:go]x := 1[/code]",
		},
		{
			name:     "inference unsure",
			dialect:  config.DialectExtended,
			language: unsure,
			input:    "```\nx := 1\n```",
			want:     "[code]x := 1[/code]",
		},
		{
			name:     "generic never infers",
			dialect:  config.DialectGeneric,
			language: goLang,
			input:    "```\nx := 1\n```",
			want:     "[code]x := 1[/code]",
		},
		{
			name:    "empty block",
			dialect: config.DialectGeneric,
			input:   "```\n\n```",
			want:    "[code][/code]",
		},
		{
			name:    "body trimmed",
			dialect: config.DialectGeneric,
			input:   "```\n\n  a\n  b\n\n```",
			want:    "[code]a\n  b[/code]",
		},
		{
			name:    "inline span",
			dialect: config.DialectGeneric,
			input:   "use `x` here",
			want:    "use [code]x[/code] here",
		},
		{
			name:    "fence then inline",
			dialect: config.DialectGeneric,
			input:   "```\nblock\n```\nand `span`",
			want:    "[code]block[/code]\nand [code]span[/code]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := NewCodeRule(tt.language)
			assert.Equal(t, tt.want, rule.Transform(tt.input, tt.dialect))
		})
	}
}

func TestChecklistRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewChecklistRule(), []transformCase{
		{name: "generic", input: "- [ ] todo\n- [x] done", want: "- [ ] todo\n- [X] done"},
		{
			name:    "extended",
			dialect: config.DialectExtended,
			input:   "- [ ] todo\n- [x] done",
			want:    "- [] todo\n- [c] done",
		},
		{name: "keeps indent", input: "  * [X] nested", want: "  - [X] nested"},
		{name: "empty brackets", input: "+ [] empty", want: "- [ ] empty"},
		{name: "plain item untouched", input: "- item", want: "- item"},
		{name: "crlf", input: "- [x] done\r\n- [ ] todo", want: "- [X] done\r\n- [ ] todo"},
		{
			name:    "extended crlf keeps indent",
			dialect: config.DialectExtended,
			input:   "- [x] a\r\n  * [ ] b",
			want:    "- [c] a\r\n  - [] b",
		},
	})
}

func TestListRule_Generic(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewListRule(), []transformCase{
		{name: "unordered", input: "- A\n- B", want: "[list]\n[*] A\n[*] B\n[/list]\n"},
		{name: "ordered", input: "1. one\n2. two", want: "[list]\n[*] one\n[*] two\n[/list]\n"},
		{name: "surrounded by text", input: "text\n- A\nmore", want: "text\n[list]\n[*] A\n[/list]\nmore"},
		{name: "nested stays in one list", input: "- A\n  - B", want: "[list]\n[*] A\n  [*] B\n[/list]\n"},
		{name: "blank line joins runs", input: "- A\n\n- B", want: "[list]\n[*] A\n\n[*] B\n[/list]\n"},
		{name: "checklist item untouched", input: "- [X] done", want: "- [X] done"},
		{name: "open checklist item untouched", input: "- [ ] todo", want: "- [ ] todo"},
		{name: "mixed kinds share one block", input: "- A\n1. B\n- C", want: "[list]\n[*] A\n[*] B\n[*] C\n[/list]\n"},
		{name: "extended task marker wrapped", input: "- [c] note\n- B", want: "[list]\n[*] [c] note\n[*] B\n[/list]\n"},
		{name: "empty brackets wrapped", input: "- [] note", want: "[list]\n[*] [] note\n[/list]\n"},
		{name: "crlf", input: "- A\r\n- B", want: "[list]\n[*] A\r\n[*] B\n[/list]\n"},
		{name: "ordered crlf", input: "1. one\r\n2. two", want: "[list]\n[*] one\r\n[*] two\n[/list]\n"},
	})
}

func TestListRule_Extended(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewListRule(), []transformCase{
		{name: "dash depth", dialect: ext, input: "- A\n  - B\n    - C", want: "- A\n-- B\n--- C"},
		{name: "ordered", dialect: ext, input: "1. one\n2. two", want: "[ol]\n  [li]one[/li]\n  [li]two[/li]\n[/ol]"},
		{
			name:    "indent change opens new block",
			dialect: ext,
			input:   "1. a\n   1. b\n2. c",
			want:    "[ol]\n  [li]a[/li]\n[/ol]\n[ol]\n  [li]b[/li]\n[/ol]\n[ol]\n  [li]c[/li]\n[/ol]",
		},
		{name: "text closes block", dialect: ext, input: "1. a\ntext", want: "[ol]\n  [li]a[/li]\n[/ol]\ntext"},
		{name: "blank line absorbed by indent", dialect: ext, input: "- A\n\n- B", want: "- A\n- B"},
		{name: "checklist item untouched", dialect: ext, input: "- [c] done", want: "- [c] done"},
		{name: "open checklist item untouched", dialect: ext, input: "  - [] todo", want: "  - [] todo"},
		{name: "generic task marker rewritten", dialect: ext, input: "  - [X] done", want: "-- [X] done"},
		{name: "crlf indent counts the line feed", dialect: ext, input: "- A\r\n  - B", want: "- A\r-- B"},
		{
			name:    "crlf ordered line left unwrapped",
			dialect: ext,
			input:   "1. a\r\n2. b",
			want:    "1. a\r\n[ol]\n  [li]b[/li]\n[/ol]",
		},
	})
}

func TestQuoteRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewQuoteRule(), []transformCase{
		{name: "single line", input: "> a", want: "[quote]a[/quote]"},
		{name: "adjacent lines merge", input: "> a\n> b", want: "[quote]a\nb[/quote]"},
		{name: "blank line separates", input: "> a\n\n> b", want: "[quote]a[/quote]\n\n[quote]b[/quote]"},
		{name: "no space after marker", input: ">tight", want: "[quote]tight[/quote]"},
		{name: "empty marker untouched", input: ">", want: ">"},
		{name: "crlf lines stay separate", input: "> a\r\n> b", want: "[quote]a[/quote]\r\n[quote]b[/quote]"},
	})
}

func TestStrikethroughRule(t *testing.T) {
	t.Parallel()

	runTransformCases(t, NewStrikethroughRule(), []transformCase{
		{name: "span", input: "~~gone~~ stays", want: "[s]gone[/s] stays"},
		{name: "single tilde untouched", input: "~x~", want: "~x~"},
		{name: "carriage return ends span", input: "~~a\rb~~", want: "~~a\rb~~"},
	})
}

func TestTableRule(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewTableRule(), []transformCase{
		{
			name:    "header and body",
			dialect: ext,
			input:   "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n",
			want: "[table]\n" +
				"[tr]\n[th]A[/th]\n[th]B[/th]\n[/tr]\n" +
				"[tr]\n[td]1[/td]\n[td]2[/td]\n[/tr]\n" +
				"[tr]\n[td]3[/td]\n[td]4[/td]\n[/tr]\n" +
				"[/table]\n",
		},
		{
			name:    "header only",
			dialect: ext,
			input:   "| A |\n|---|\n",
			want:    "[table]\n[tr]\n[th]A[/th]\n[/tr]\n[/table]\n",
		},
		{
			name:    "alignment row",
			dialect: ext,
			input:   "| L | R |\n|:--|--:|\n| x | y |",
			want: "[table]\n" +
				"[tr]\n[th]L[/th]\n[th]R[/th]\n[/tr]\n" +
				"[tr]\n[td]x[/td]\n[td]y[/td]\n[/tr]\n" +
				"[/table]\n",
		},
		{name: "no separator untouched", dialect: ext, input: "| A |\n| B |", want: "| A |\n| B |"},
	})
}

func TestSplitTableRow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitTableRow("| a | b |"))
	assert.Equal(t, []string{"a", "b"}, splitTableRow(" a | b "))
	assert.Equal(t, []string{""}, splitTableRow("|"))
	assert.Equal(t, []string{"", "x", ""}, splitTableRow("|| x ||"))
}

func TestHTMLTagRules(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewSuperscriptRule(), []transformCase{
		{name: "sup", dialect: ext, input: "mc<sup>2</sup>", want: "mc[sup]2[/sup]"},
	})
	runTransformCases(t, NewSubscriptRule(), []transformCase{
		{name: "sub", dialect: ext, input: "H<sub>2</sub>O", want: "H[sub]2[/sub]O"},
	})
	runTransformCases(t, NewUnderlineRule(), []transformCase{
		{name: "ins", dialect: ext, input: "<ins>new</ins>", want: "[u]new[/u]"},
		{name: "attributes untouched", dialect: ext, input: `<ins class="x">new</ins>`, want: `<ins class="x">new</ins>`},
		{name: "carriage return ends span", dialect: ext, input: "<sup>a\rb</sup>", want: "<sup>a\rb</sup>"},
	})
}

func TestDiceRule(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewDiceRule(), []transformCase{
		{name: "simple", dialect: ext, input: "roll 3d6", want: "roll [dice]3d6[/dice]"},
		{name: "modifier", dialect: ext, input: "1d20+5", want: "[dice]1d20+5[/dice]"},
		{name: "negative modifier", dialect: ext, input: "2d8-1 damage", want: "[dice]2d8-1[/dice] damage"},
		{name: "inside a word", dialect: ext, input: "variable3d6name", want: "variable3d6name"},
		{name: "no count", dialect: ext, input: "d6", want: "d6"},
		{name: "inside url", dialect: ext, input: "http://x/2d6", want: "http://x/[dice]2d6[/dice]"},
	})
}

func TestHorizontalRuleRule(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewHorizontalRuleRule(), []transformCase{
		{name: "dashes", dialect: ext, input: "a\n---\nb", want: "a\n[hr]\nb"},
		{name: "asterisks", dialect: ext, input: "***", want: "[hr]"},
		{name: "padded", dialect: ext, input: "  ----  ", want: "[hr]"},
		{name: "too short", dialect: ext, input: "--", want: "--"},
		{name: "underscores untouched", dialect: ext, input: "___", want: "___"},
		{name: "mixed untouched", dialect: ext, input: "-*-", want: "-*-"},
	})
}

func TestLineBreakRule(t *testing.T) {
	t.Parallel()

	ext := config.DialectExtended
	runTransformCases(t, NewLineBreakRule(), []transformCase{
		{name: "backslash", dialect: ext, input: "a\\\nb", want: "a[br]b"},
		{name: "backslash crlf", dialect: ext, input: "a\\\r\nb", want: "a[br]b"},
		{name: "two spaces", dialect: ext, input: "a  \nb", want: "a[br]b"},
		{name: "one space untouched", dialect: ext, input: "a \nb", want: "a \nb"},
		{name: "plain newline untouched", dialect: ext, input: "a\nb", want: "a\nb"},
	})
}

func TestRuleMetadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{NameImage}, NewLinkRule().RunAfter())
	assert.Equal(t, []string{NameList}, NewChecklistRule().RunBefore())
	assert.Equal(t, []string{NameEmphasis}, NewListRule().RunAfter())
	assert.Equal(t, []string{NameEmphasis}, NewHorizontalRuleRule().RunBefore())
	assert.Equal(t, []string{NameLineBreak}, NewTableRule().RunBefore())
	assert.Equal(t, []string{NameCode, NameQuote, NameList, NameTable}, NewLineBreakRule().RunAfter())

	for _, rule := range Extended(Options{}) {
		assert.NotEmpty(t, rule.Description(), rule.Name())
	}
}
