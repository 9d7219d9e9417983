package pipeline

import (
	"errors"
	"fmt"
)

// Resolution errors. These indicate a broken rule set, not bad input.
var (
	// ErrDuplicateRule indicates two rules share a name.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrMissingDependency indicates a constraint names a rule outside the set.
	ErrMissingDependency = errors.New("missing rule dependency")

	// ErrCircularDependency indicates the ordering constraints form a cycle.
	ErrCircularDependency = errors.New("circular rule dependency")
)

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// Resolve returns rules in an order satisfying every RunAfter and RunBefore
// constraint. Rules with no relationship keep their relative input order.
//
// A rule's predecessors are visited depth-first: its RunAfter names in
// declared order, then every rule whose RunBefore names it, in input order.
func Resolve(rules []Rule) ([]Rule, error) {
	index := make(map[string]int, len(rules))
	for i, rule := range rules {
		name := rule.Name()
		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, name)
		}
		index[name] = i
	}

	preds := make([][]int, len(rules))
	for i, rule := range rules {
		for _, dep := range rule.RunAfter() {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: rule %q runs after %q, which is not in the rule set",
					ErrMissingDependency, rule.Name(), dep)
			}
			preds[i] = append(preds[i], j)
		}
	}
	for i, rule := range rules {
		for _, target := range rule.RunBefore() {
			j, ok := index[target]
			if !ok {
				return nil, fmt.Errorf("%w: rule %q runs before %q, which is not in the rule set",
					ErrMissingDependency, rule.Name(), target)
			}
			preds[j] = append(preds[j], i)
		}
	}

	state := make([]visitState, len(rules))
	ordered := make([]Rule, 0, len(rules))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w: involving rule %q", ErrCircularDependency, rules[i].Name())
		case unvisited:
		}

		state[i] = visiting
		for _, p := range preds[i] {
			if err := visit(p); err != nil {
				return err
			}
		}
		state[i] = visited
		ordered = append(ordered, rules[i])
		return nil
	}

	for i := range rules {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}
