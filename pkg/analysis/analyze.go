// Package analysis inspects Markdown with a real CommonMark parser and reports
// constructs the regex conversion pipeline will not render faithfully.
package analysis

import (
	"bytes"
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/cerealean/wabbc/pkg/config"
)

//nolint:gochecknoglobals // Parser and patterns are immutable after init.
var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	htmlTagName = regexp.MustCompile(`^</?([A-Za-z][A-Za-z0-9-]*)`)
	fenceLabel  = regexp.MustCompile(`^\w*$`)
)

// extendedHTMLTags are the inline tags the extended dialect converts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extendedHTMLTags = map[string]bool{"sup": true, "sub": true, "ins": true}

// Analyze parses content and reports findings for dialect.
func Analyze(content []byte, dialect config.Dialect) *Report {
	return AnalyzeWithOptions(content, DefaultOptions(dialect))
}

// AnalyzeWithOptions parses content and reports findings.
func AnalyzeWithOptions(content []byte, opts Options) *Report {
	if opts.KnownLanguage == nil {
		opts.KnownLanguage = DefaultOptions(opts.Dialect).KnownLanguage
	}

	pc := parser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(content), parser.WithContext(pc))

	a := &analyzer{
		src:    content,
		opts:   opts,
		lines:  lineStarts(content),
		report: &Report{Dialect: opts.Dialect},
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			a.visit(n)
		}
		return ast.WalkContinue, nil
	})

	for _, ref := range pc.References() {
		a.addReference(ref)
	}

	slices.SortStableFunc(a.report.Findings, func(left, right Finding) int {
		return cmp.Or(
			cmp.Compare(left.Line, right.Line),
			cmp.Compare(left.Kind, right.Kind),
			cmp.Compare(left.Message, right.Message),
		)
	})

	return a.report
}

type analyzer struct {
	src    []byte
	opts   Options
	lines  []int
	report *Report
}

func (a *analyzer) visit(n ast.Node) {
	counts := &a.report.Counts

	switch node := n.(type) {
	case *ast.Heading:
		counts.Headings++
		a.checkHeading(node)
	case *ast.Emphasis:
		counts.Emphasis++
		if hasEmphasisAncestor(node) {
			a.add(KindNestedEmphasis, SeverityWarning, node,
				"nested emphasis is converted pass by pass and may produce misnested tags")
		}
	case *east.Strikethrough:
		counts.Strikethrough++
	case *ast.Link, *ast.AutoLink:
		counts.Links++
	case *ast.Image:
		counts.Images++
	case *ast.CodeSpan:
		counts.CodeSpans++
		a.checkCodeSpan(node)
	case *ast.FencedCodeBlock:
		counts.CodeBlocks++
		a.checkFence(node)
	case *ast.CodeBlock:
		counts.CodeBlocks++
		a.add(KindIndentedCode, SeverityInfo, node,
			"indented code block passes through unconverted; use a fenced block")
	case *ast.List:
		counts.Lists++
	case *east.TaskCheckBox:
		counts.TaskItems++
	case *ast.Blockquote:
		counts.Blockquotes++
	case *east.Table:
		counts.Tables++
		if a.opts.Dialect == config.DialectGeneric {
			a.add(KindTable, SeverityWarning, node, "tables are not converted in the generic dialect")
		}
	case *ast.ThematicBreak:
		counts.ThematicBreaks++
		if a.opts.Dialect == config.DialectGeneric {
			a.add(KindThematicBreak, SeverityWarning, node,
				"thematic breaks are not converted in the generic dialect")
		}
	case *ast.RawHTML:
		counts.RawHTML++
		a.checkRawHTML(node)
	case *ast.HTMLBlock:
		a.add(KindHTMLBlock, SeverityInfo, node, "HTML block passes through unconverted")
	}
}

func (a *analyzer) checkHeading(node *ast.Heading) {
	offset := startOffset(node)
	if offset < 0 {
		return
	}

	lineStart := a.lines[a.lineOf(offset)-1]
	line := strings.TrimLeft(string(a.src[lineStart:offset]), " \t>")
	if !strings.HasPrefix(line, "#") {
		a.add(KindSetextHeading, SeverityWarning, node,
			fmt.Sprintf("setext heading (level %d) is not converted; use %s", node.Level, strings.Repeat("#", node.Level)))
	}
}

func (a *analyzer) checkCodeSpan(node *ast.CodeSpan) {
	body := inlineText(node, a.src)
	if strings.Count(body, "*") >= 2 || strings.Count(body, "_") >= 2 {
		a.add(KindMarkersInCode, SeverityWarning, node,
			fmt.Sprintf("emphasis markers inside inline code %q will be converted", body))
	}
}

func (a *analyzer) checkFence(node *ast.FencedCodeBlock) {
	fenceLine := 0
	switch {
	case node.Info != nil:
		fenceLine = a.lineOf(node.Info.Segment.Start)
	case node.Lines().Len() > 0:
		fenceLine = a.lineOf(node.Lines().At(0).Start) - 1
	}

	if fenceLine > 0 {
		line := strings.TrimSpace(a.lineText(fenceLine))
		if strings.HasPrefix(line, "~") {
			a.addAt(KindFenceSyntax, SeverityWarning, fenceLine,
				"tilde fences are not converted; use backticks")
			return
		}
	}

	if node.Info != nil {
		info := strings.TrimSpace(string(node.Info.Segment.Value(a.src)))
		if !fenceLabel.MatchString(info) {
			a.addAt(KindFenceSyntax, SeverityWarning, fenceLine,
				fmt.Sprintf("fence info %q is not a single word; the block will not convert", info))
			return
		}
	}

	if a.opts.Dialect != config.DialectExtended {
		return
	}
	lang := string(node.Language(a.src))
	if lang != "" && !a.opts.KnownLanguage(lang) {
		a.addAt(KindUnknownLanguage, SeverityInfo, fenceLine,
			fmt.Sprintf("code language %q is not a known language", lang))
	}
}

func (a *analyzer) checkRawHTML(node *ast.RawHTML) {
	var raw []byte
	for i := range node.Segments.Len() {
		seg := node.Segments.At(i)
		raw = append(raw, seg.Value(a.src)...)
	}

	name := ""
	if match := htmlTagName.FindSubmatch(raw); match != nil {
		name = string(match[1])
	}
	if a.opts.Dialect == config.DialectExtended && extendedHTMLTags[name] {
		return
	}
	a.add(KindRawHTML, SeverityInfo, node, fmt.Sprintf("raw HTML %q passes through unconverted", raw))
}

func (a *analyzer) addReference(ref parser.Reference) {
	label := ref.Label()
	line := 0
	if idx := bytes.Index(a.src, []byte("["+string(label)+"]:")); idx >= 0 {
		line = a.lineOf(idx)
	}
	a.addAt(KindReference, SeverityWarning, line,
		fmt.Sprintf("reference definition [%s] is not converted; use inline links", label))
}

func (a *analyzer) add(kind Kind, severity Severity, node ast.Node, message string) {
	line := 0
	if offset := startOffset(node); offset >= 0 {
		line = a.lineOf(offset)
	}
	a.addAt(kind, severity, line, message)
}

func (a *analyzer) addAt(kind Kind, severity Severity, line int, message string) {
	a.report.Findings = append(a.report.Findings, Finding{
		Kind:     kind,
		Severity: severity,
		Line:     line,
		Message:  message,
	})
}

// lineOf returns the 1-based line containing offset.
func (a *analyzer) lineOf(offset int) int {
	idx, found := slices.BinarySearch(a.lines, offset)
	if found {
		return idx + 1
	}
	return idx
}

func (a *analyzer) lineText(line int) string {
	if line < 1 || line > len(a.lines) {
		return ""
	}
	start := a.lines[line-1]
	end := len(a.src)
	if line < len(a.lines) {
		end = a.lines[line]
	}
	return string(a.src[start:end])
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// startOffset returns the first source byte covered by n, or -1.
func startOffset(n ast.Node) int {
	switch node := n.(type) {
	case *ast.Text:
		return node.Segment.Start
	case *ast.RawHTML:
		if node.Segments.Len() > 0 {
			return node.Segments.At(0).Start
		}
	}

	// Inline nodes panic on Lines().
	if n.Type() != ast.TypeInline {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset := startOffset(child); offset >= 0 {
			return offset
		}
	}
	return -1
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
		case *ast.String:
			sb.Write(node.Value)
		}
	}
	return sb.String()
}

func hasEmphasisAncestor(n ast.Node) bool {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		if _, ok := parent.(*ast.Emphasis); ok {
			return true
		}
	}
	return false
}
