package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var dicePattern = regexp.MustCompile(`\b(\d+d\d+(?:[+-]\d+)?)\b`)

// DiceRule wraps dice notation such as 3d6 or 1d20+5.
type DiceRule struct {
	pipeline.BaseRule
}

// NewDiceRule creates a new dice rule.
func NewDiceRule() *DiceRule {
	return &DiceRule{
		BaseRule: pipeline.NewBaseRule(NameDice, "NdM[+-K] to [dice]"),
	}
}

// Transform wraps dice expressions that stand on word boundaries.
func (r *DiceRule) Transform(text string, _ config.Dialect) string {
	return dicePattern.ReplaceAllString(text, "[dice]${1}[/dice]")
}
