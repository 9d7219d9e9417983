// Package pipeline provides the rule contract, the rule registry, and the
// dependency resolver that orders rules into a conversion pipeline.
package pipeline

import "github.com/cerealean/wabbc/pkg/config"

// Rule defines the interface that all conversion rules must implement.
type Rule interface {
	// Name returns the stable identifier of the rule (e.g., "emphasis").
	Name() string

	// Description returns a short human-readable summary of what the rule rewrites.
	Description() string

	// RunAfter lists rule names that must execute before this rule.
	RunAfter() []string

	// RunBefore lists rule names that must execute after this rule.
	RunBefore() []string

	// Transform rewrites text for the given dialect.
	//
	// Rules must:
	//   - Be pure: no shared mutable state, safe for concurrent use.
	//   - Operate on the whole text in a single pass.
	//   - Leave text they do not recognize untouched.
	Transform(text string, dialect config.Dialect) string
}
