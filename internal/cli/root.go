// Package cli provides the Cobra command structure for wabbc.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cerealean/wabbc/internal/configloader"
	"github.com/cerealean/wabbc/internal/logging"
	"github.com/cerealean/wabbc/pkg/bbcode"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

const rootLongDescription = `wabbc converts Markdown to BBCode.

Two dialects are supported: generic, the tag set understood by most forums,
and extended, the World Anvil flavor with heading tags, tables, dice rolls,
and superscript. Files can be converted one at a time through stdin, or in
batches written next to their sources.`

// environmentHelp lists the WABBC_* variables for the root help text.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:\n")
	for _, v := range vars {
		fmt.Fprintf(&builder, "  %-*s  %s\n", width, v.Name, v.Description)
	}
	return builder.String()
}

// NewRootCommand creates the root wabbc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	converter := bbcode.NewConverter()

	rootCmd := &cobra.Command{
		Use:   "wabbc",
		Short: "Convert Markdown to BBCode",
		Long:  rootLongDescription + environmentHelp(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			switch color {
			case colorAuto, colorAlways, colorNever:
			default:
				return fmt.Errorf("%w: --color must be auto, always, or never, got %q", ErrInvalidUsage, color)
			}
			if err := converter.Preload(); err != nil {
				return fmt.Errorf("resolve conversion pipelines: %w", err)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", colorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newConvertCommand(converter))
	rootCmd.AddCommand(newRulesCommand(converter))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter(color).ApplyToCommand(rootCmd)

	return rootCmd
}
