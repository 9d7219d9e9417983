package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cerealean/wabbc/internal/configloader"
	"github.com/cerealean/wabbc/internal/logging"
	"github.com/cerealean/wabbc/pkg/config"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration convert would use from the current directory, after
merging config files and WABBC_* environment variables, as YAML. The files
that contributed are listed in a leading comment.

Examples:
  wabbc config                       # effective settings
  wabbc config --config ci.yml       # with an explicit file
  WABBC_DIALECT=extended wabbc config`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	workDir, err := workingDir()
	if err != nil {
		return err
	}

	result, err := loadConfigResult(cmd, workDir, nil)
	if err != nil {
		return err
	}

	data, err := result.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}

	var out strings.Builder
	if len(result.LoadedFrom) == 0 {
		out.WriteString("# Resolved from defaults\n")
	} else {
		out.WriteString("# Resolved from:\n")
		for _, path := range result.LoadedFrom {
			out.WriteString("#   " + configloader.DisplayPath(path) + "\n")
		}
	}
	out.Write(data)

	if _, err := fmt.Fprint(cmd.OutOrStdout(), out.String()); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// loadConfig resolves the layered configuration for cmd, with cliCfg on top.
func loadConfig(cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	result, err := loadConfigResult(cmd, workDir, cliCfg)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func loadConfigResult(cmd *cobra.Command, workDir string, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(cmd.Context())

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	for _, path := range loadResult.LoadedFrom {
		logger.Debug("loaded configuration", logging.FieldConfig, configloader.DisplayPath(path))
	}

	return loadResult, nil
}

// workingDir returns the process working directory.
func workingDir() (string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workDir, nil
}
