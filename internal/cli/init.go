package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cerealean/wabbc/internal/configloader"
	"github.com/cerealean/wabbc/internal/logging"
	"github.com/cerealean/wabbc/pkg/config"
)

// defaultConfigFile is the file written by init when --output is not given.
const defaultConfigFile = ".wabbc.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	full    bool
	dialect string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wabbc configuration file",
		Long: `Create a commented .wabbc.yml configuration file in the current directory.

Examples:
  wabbc init                        Create a minimal .wabbc.yml
  wabbc init --full                 Document every option
  wabbc init --dialect extended     Default to World Anvil output
  wabbc init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every option documented")
	cmd.Flags().StringVar(&flags.dialect, "dialect", string(config.DialectGeneric), "Dialect written to the template: generic, extended")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	dialect, err := config.ParseDialect(flags.dialect)
	if err != nil {
		return fmt.Errorf("%w: --dialect: %w", ErrInvalidUsage, err)
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Dialect: dialect,
		Full:    flags.full,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'wabbc rules' to see the conversion rules of each dialect")

	return nil
}
