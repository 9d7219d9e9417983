package rules

import (
	"fmt"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// Rule names.
const (
	NameHeader         = "header"
	NameEmphasis       = "emphasis"
	NameImage          = "image"
	NameLink           = "link"
	NameCode           = "code"
	NameChecklist      = "checklist"
	NameList           = "list"
	NameQuote          = "quote"
	NameStrikethrough  = "strikethrough"
	NameTable          = "table"
	NameHorizontalRule = "horizontal-rule"
	NameSuperscript    = "superscript"
	NameSubscript      = "subscript"
	NameUnderline      = "underline"
	NameDice           = "dice"
	NameLineBreak      = "line-break"
)

// Options tunes rule construction.
type Options struct {
	// CodeLanguage, when set, labels unlabelled fenced code in the extended dialect.
	CodeLanguage LanguageFunc
}

// Generic returns the generic dialect's rules in declaration order.
func Generic(opts Options) []pipeline.Rule {
	return []pipeline.Rule{
		NewHeaderRule(),
		NewEmphasisRule(),
		NewImageRule(),
		NewLinkRule(),
		NewCodeRule(opts.CodeLanguage),
		NewListRule(),
		NewQuoteRule(),
		NewStrikethroughRule(),
		NewChecklistRule(),
	}
}

// Extended returns the extended dialect's rules in declaration order.
func Extended(opts Options) []pipeline.Rule {
	return append(Generic(opts),
		NewTableRule(),
		NewHorizontalRuleRule(),
		NewSuperscriptRule(),
		NewSubscriptRule(),
		NewUnderlineRule(),
		NewDiceRule(),
		NewLineBreakRule(),
	)
}

// ForDialect returns the declared rules for dialect.
func ForDialect(dialect config.Dialect, opts Options) ([]pipeline.Rule, error) {
	switch dialect {
	case config.DialectGeneric:
		return Generic(opts), nil
	case config.DialectExtended:
		return Extended(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDialect, string(dialect))
	}
}

// NewRegistry returns a registry holding dialect's rules.
func NewRegistry(dialect config.Dialect, opts Options) (*pipeline.Registry, error) {
	declared, err := ForDialect(dialect, opts)
	if err != nil {
		return nil, err
	}

	reg := pipeline.NewRegistry()
	for _, rule := range declared {
		if err := reg.Register(rule); err != nil {
			return nil, fmt.Errorf("register %s rules: %w", dialect, err)
		}
	}
	return reg, nil
}

// NewPipeline resolves dialect's rules into an ordered pipeline.
func NewPipeline(dialect config.Dialect, opts Options) (*pipeline.Pipeline, error) {
	reg, err := NewRegistry(dialect, opts)
	if err != nil {
		return nil, err
	}
	return reg.Resolve()
}
