package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cerealean/wabbc/internal/ui/pretty"
	"github.com/cerealean/wabbc/pkg/bbcode"
	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
	"github.com/cerealean/wabbc/pkg/pipeline/rules"
)

type rulesFlags struct {
	dialect string
	format  string
}

const (
	formatText = "text"
	formatJSON = "json"
)

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Position    int      `json:"position"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RunAfter    []string `json:"runAfter,omitempty"`
	RunBefore   []string `json:"runBefore,omitempty"`
}

// dialectRules is the resolved pipeline of one dialect in JSON output.
type dialectRules struct {
	Dialect config.Dialect `json:"dialect"`
	Rules   []ruleInfo     `json:"rules"`
}

func newRulesCommand(converter *bbcode.Converter) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [names...]",
		Short: "List the conversion rules of each dialect",
		Long: `List the conversion rules of each dialect in execution order, with their
descriptions and ordering constraints. Naming rules limits the listing to
them; positions still refer to the full pipeline.

Examples:
  wabbc rules                      # both dialects
  wabbc rules --dialect extended   # one dialect
  wabbc rules image link           # where two rules run
  wabbc rules --format json        # machine-readable`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, flags, converter)
		},
	}

	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "only list this dialect: generic, extended")
	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, names []string, flags *rulesFlags, converter *bbcode.Converter) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("%w: --format must be text or json, got %q", ErrInvalidUsage, flags.format)
	}

	dialects := config.Dialects()
	if cmd.Flags().Changed("dialect") {
		dialect, err := config.ParseDialect(flags.dialect)
		if err != nil {
			return fmt.Errorf("%w: --dialect: %w", ErrInvalidUsage, err)
		}
		dialects = []config.Dialect{dialect}
	}

	if err := checkRuleNames(dialects, names); err != nil {
		return err
	}

	listings := make([]dialectRules, 0, len(dialects))
	for _, dialect := range dialects {
		listing, err := describeDialect(converter, dialect, names)
		if err != nil {
			return err
		}
		if len(listing.Rules) > 0 {
			listings = append(listings, listing)
		}
	}

	if flags.format == formatJSON {
		return outputRulesJSON(cmd.OutOrStdout(), listings)
	}
	return outputRulesText(cmd, listings)
}

// checkRuleNames fails when a name belongs to none of dialects.
func checkRuleNames(dialects []config.Dialect, names []string) error {
	registries := make([]*pipeline.Registry, 0, len(dialects))
	for _, dialect := range dialects {
		reg, err := rules.NewRegistry(dialect, rules.Options{})
		if err != nil {
			return fmt.Errorf("register %s rules: %w", dialect, err)
		}
		registries = append(registries, reg)
	}

	for _, name := range names {
		known := slices.ContainsFunc(registries, func(reg *pipeline.Registry) bool {
			_, ok := reg.Get(name)
			return ok
		})
		if !known {
			return fmt.Errorf("%w: unknown rule %q", ErrInvalidUsage, name)
		}
	}
	return nil
}

// describeDialect lists dialect's resolved rules, limited to names when given.
func describeDialect(converter *bbcode.Converter, dialect config.Dialect, names []string) (dialectRules, error) {
	ordered, err := converter.Rules(string(dialect))
	if err != nil {
		return dialectRules{}, fmt.Errorf("resolve %s rules: %w", dialect, err)
	}

	listing := dialectRules{Dialect: dialect, Rules: make([]ruleInfo, 0, len(ordered))}
	for i, rule := range ordered {
		if len(names) > 0 && !slices.Contains(names, rule.Name()) {
			continue
		}
		listing.Rules = append(listing.Rules, ruleInfo{
			Position:    i + 1,
			Name:        rule.Name(),
			Description: rule.Description(),
			RunAfter:    rule.RunAfter(),
			RunBefore:   rule.RunBefore(),
		})
	}
	return listing, nil
}

func outputRulesText(cmd *cobra.Command, listings []dialectRules) error {
	out := cmd.OutOrStdout()
	colored := colorEnabled(cmd, out)
	table := pretty.NewTableFormatter(pretty.NewStyles(colored), colored, terminalWidth(out))

	for i, listing := range listings {
		if i > 0 {
			fmt.Fprintln(out)
		}
		rows := make([]pretty.RuleRow, 0, len(listing.Rules))
		for _, rule := range listing.Rules {
			rows = append(rows, pretty.RuleRow{
				Position:    rule.Position,
				Name:        rule.Name,
				Description: rule.Description,
				After:       rule.RunAfter,
				Before:      rule.RunBefore,
			})
		}
		title := fmt.Sprintf("%s (%d rules)", listing.Dialect, len(rows))
		if _, err := fmt.Fprint(out, table.FormatRules(title, rows)); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
	}
	return nil
}

// outputRulesJSON outputs the listings as a JSON array.
func outputRulesJSON(w io.Writer, listings []dialectRules) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
