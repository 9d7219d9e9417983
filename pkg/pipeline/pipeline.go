package pipeline

import (
	"slices"

	"github.com/cerealean/wabbc/pkg/config"
)

// Pipeline is an ordered, immutable sequence of rules.
// It is safe for concurrent use once built.
type Pipeline struct {
	rules []Rule
}

// New resolves rules into a Pipeline.
func New(rules ...Rule) (*Pipeline, error) {
	ordered, err := Resolve(rules)
	if err != nil {
		return nil, err
	}
	return &Pipeline{rules: ordered}, nil
}

// Rules returns the rules in execution order.
func (p *Pipeline) Rules() []Rule {
	return slices.Clone(p.rules)
}

// Names returns the rule names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.rules))
	for _, rule := range p.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Len returns the number of rules in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.rules)
}

// Apply folds every rule over text, left to right.
func (p *Pipeline) Apply(text string, dialect config.Dialect) string {
	for _, rule := range p.rules {
		text = rule.Transform(text, dialect)
	}
	return text
}

// Step records the effect of one rule during a traced fold.
type Step struct {
	// Rule is the name of the rule that ran.
	Rule string

	// Changed is true if the rule modified the text.
	Changed bool

	// Before and After hold the text around the rule.
	Before string
	After  string
}

// Trace folds like Apply and reports every step to fn.
// A nil fn makes Trace equivalent to Apply.
func (p *Pipeline) Trace(text string, dialect config.Dialect, fn func(Step)) string {
	for _, rule := range p.rules {
		out := rule.Transform(text, dialect)
		if fn != nil {
			fn(Step{
				Rule:    rule.Name(),
				Changed: out != text,
				Before:  text,
				After:   out,
			})
		}
		text = out
	}
	return text
}
