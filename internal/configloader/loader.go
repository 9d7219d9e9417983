// Package configloader resolves wabbc configuration from files, environment
// variables, and CLI flags. It implements XDG-compliant discovery, layered
// merging, and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cerealean/wabbc/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading WABBC_* environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (WABBC_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.wabbc.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/wabbc/config.yaml)
//  6. System config (/etc/wabbc/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{name: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, warnings, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		// Validate each file on its own so errors name the file.
		if validation := ValidateWithFile(fileCfg, layer.path); !validation.Valid() {
			return nil, fmt.Errorf("load %s config: %w", layer.name, &validation.Errors[0])
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	// Aliases resolve to their canonical dialect once validated.
	cfg.Dialect, _ = config.ParseDialect(string(cfg.Dialect))

	result.Config = cfg
	return result, nil
}

// knownKeys lists the keys a config file may set, with their child keys.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = map[string][]string{
	"dialect":             nil,
	"infer_code_language": nil,
	"preflight":           nil,
	"output":              {"extension", "dir"},
	"ignore":              nil,
}

// loadConfigFile loads a configuration from a YAML file. Unknown keys are
// reported as warnings.
func loadConfigFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	var raw map[string]any
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	return cfg, unknownKeyWarnings(path, raw), nil
}

func unknownKeyWarnings(path string, raw map[string]any) []string {
	var warnings []string
	for key, value := range raw {
		children, known := knownKeys[key]
		if !known {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q; it will be ignored", path, key))
			continue
		}
		nested, ok := value.(map[string]any)
		if !ok || children == nil {
			continue
		}
		for child := range nested {
			if !slices.Contains(children, child) {
				warnings = append(warnings, fmt.Sprintf("%s: unknown key %q; it will be ignored", path, key+"."+child))
			}
		}
	}
	slices.Sort(warnings)
	return warnings
}

// WriteConfig writes content to path, refusing to replace an existing file
// unless force is set.
func WriteConfig(path string, content []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, configFilePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite): %w", path, err)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// DisplayPath shortens path for messages by replacing the home directory with ~.
func DisplayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}
	return path
}
