package pipeline

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds the rules of one rule set in declaration order.
// Declaration order is the tie-breaker used by Resolve for unconstrained rules.
type Registry struct {
	mu     sync.RWMutex
	order  []Rule
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Rule),
	}
}

// Register appends a rule to the registry.
// Registering a second rule with the same name fails with ErrDuplicateRule.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := rule.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	r.byName[name] = rule
	r.order = append(r.order, rule)
	return nil
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Rules returns all registered rules in declaration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Names returns all registered rule names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, rule := range r.order {
		names = append(names, rule.Name())
	}
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Resolve orders the registered rules into a Pipeline.
func (r *Registry) Resolve() (*Pipeline, error) {
	ordered, err := Resolve(r.Rules())
	if err != nil {
		return nil, err
	}
	return &Pipeline{rules: ordered}, nil
}
