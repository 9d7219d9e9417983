package pipeline

import "slices"

// BaseRule carries the identity and ordering metadata shared by all rules.
// Embed it in rule implementations and provide Transform.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	name      string
	desc      string
	runAfter  []string
	runBefore []string
}

// NewBaseRule creates a BaseRule with no ordering constraints.
func NewBaseRule(name, desc string) BaseRule {
	return BaseRule{name: name, desc: desc}
}

// After returns a copy of r that must run after the named rules.
func (r BaseRule) After(names ...string) BaseRule {
	r.runAfter = append(slices.Clone(r.runAfter), names...)
	return r
}

// Before returns a copy of r that must run before the named rules.
func (r BaseRule) Before(names ...string) BaseRule {
	r.runBefore = append(slices.Clone(r.runBefore), names...)
	return r
}

// Name returns the stable identifier of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a short summary of the rule.
func (r *BaseRule) Description() string {
	return r.desc
}

// RunAfter returns the names of rules that must run earlier.
func (r *BaseRule) RunAfter() []string {
	return slices.Clone(r.runAfter)
}

// RunBefore returns the names of rules that must run later.
func (r *BaseRule) RunBefore() []string {
	return slices.Clone(r.runBefore)
}
