// Package config defines core configuration types for wabbc.
// These types are pure data structures with no dependency on the loader that fills them.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect selects the BBCode flavor a conversion targets.
type Dialect string

const (
	// DialectGeneric is plain forum BBCode ([size], [list], [*]).
	DialectGeneric Dialect = "generic"
	// DialectExtended is the World Anvil flavor ([h1], [ol], [dice], [table]).
	DialectExtended Dialect = "extended"
)

// Source-compatible aliases for the two dialects.
const (
	aliasBBCode     = "bbcode"
	aliasWorldAnvil = "worldanvil"
)

// ErrUnknownDialect is returned by ParseDialect for unrecognized names.
var ErrUnknownDialect = errors.New("unknown dialect")

// ParseDialect resolves a dialect name or alias.
// The empty string selects DialectGeneric.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(DialectGeneric), aliasBBCode:
		return DialectGeneric, nil
	case string(DialectExtended), aliasWorldAnvil:
		return DialectExtended, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownDialect, name, DialectGeneric, DialectExtended)
	}
}

// IsValid reports whether d is one of the known dialects.
func (d Dialect) IsValid() bool {
	return d == DialectGeneric || d == DialectExtended
}

// Dialects returns every supported dialect in display order.
func Dialects() []Dialect {
	return []Dialect{DialectGeneric, DialectExtended}
}

// DefaultOutputExtension is appended to converted files.
const DefaultOutputExtension = ".bbcode"

// OutputConfig controls where batch conversions are written.
type OutputConfig struct {
	// Extension replaces the Markdown extension of each converted file.
	Extension string `yaml:"extension"`

	// Dir, when set, receives all output files (mirroring input layout).
	// Empty means next to the source file.
	Dir string `yaml:"dir"`
}

// Config is the root configuration structure for wabbc.
type Config struct {
	// Dialect is the target BBCode flavor.
	Dialect Dialect `yaml:"dialect"`

	// InferCodeLanguage tags unlabelled code fences with a detected language
	// (extended dialect only).
	InferCodeLanguage bool `yaml:"infer_code_language"`

	// Preflight analyzes each document for constructs that will not convert cleanly.
	Preflight bool `yaml:"preflight"`

	// Output configures batch output placement.
	Output OutputConfig `yaml:"output"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Stdout writes conversions to standard output instead of files.
	Stdout bool `yaml:"-"`

	// DryRun converts without writing any files.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialect: DialectGeneric,
		Output: OutputConfig{
			Extension: DefaultOutputExtension,
		},
		Jobs: 0, // 0 means GOMAXPROCS
	}
}

// OutputExtension returns the configured extension, normalized to start with a dot.
func (c *Config) OutputExtension() string {
	ext := DefaultOutputExtension
	if c != nil && c.Output.Extension != "" {
		ext = c.Output.Extension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
