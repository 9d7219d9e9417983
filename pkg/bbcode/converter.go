// Package bbcode converts Markdown to BBCode.
//
// Two output dialects are supported: "generic", the common forum subset, and
// "extended", the World Anvil tag set with tables, dice, and heading tags.
// Conversion is a fixed sequence of text rewrites; see package rules for the
// constructs recognized by each dialect.
//
//	out, err := bbcode.Convert("# Title", bbcode.Options{Format: "extended"})
//	// out == "[h1]Title[/h1]"
package bbcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

// Input errors. No output is produced when either is returned.
var (
	// ErrInvalidInput indicates empty or missing Markdown.
	ErrInvalidInput = errors.New("invalid input: markdown must be a non-empty string")

	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New("invalid format")
)

// Options controls a single conversion.
type Options struct {
	// Format names the output dialect: "generic" (default) or "extended".
	Format string

	// InferCodeLanguage labels unlabelled fenced code blocks with a detected
	// language. Extended dialect only.
	InferCodeLanguage bool
}

// Converter converts Markdown using cached pipelines.
// A Converter is safe for concurrent use.
type Converter struct {
	cache *Cache
}

// NewConverter creates a converter with its own pipeline cache.
func NewConverter() *Converter {
	return &Converter{cache: NewCache()}
}

// NewConverterWithCache creates a converter that shares cache.
func NewConverterWithCache(cache *Cache) *Converter {
	return &Converter{cache: cache}
}

// Convert converts markdown to BBCode. Surrounding whitespace is trimmed from
// the result.
func (c *Converter) Convert(markdown string, opts Options) (string, error) {
	return c.ConvertTrace(markdown, opts, nil)
}

// ConvertBytes is Convert for a byte slice. A nil slice is invalid input.
func (c *Converter) ConvertBytes(markdown []byte, opts Options) (string, error) {
	if markdown == nil {
		return "", ErrInvalidInput
	}
	return c.Convert(string(markdown), opts)
}

// ConvertTrace is Convert that also reports every pipeline step to fn.
// fn may be nil.
func (c *Converter) ConvertTrace(markdown string, opts Options, fn func(pipeline.Step)) (string, error) {
	if markdown == "" {
		return "", ErrInvalidInput
	}

	dialect, err := parseFormat(opts.Format)
	if err != nil {
		return "", err
	}

	p, err := c.cache.get(profile{dialect: dialect, infer: opts.InferCodeLanguage})
	if err != nil {
		return "", fmt.Errorf("build %s pipeline: %w", dialect, err)
	}

	return strings.TrimSpace(p.Trace(markdown, dialect, fn)), nil
}

// Pipeline returns the resolved rule names for format, in execution order.
func (c *Converter) Pipeline(format string) ([]string, error) {
	p, err := c.resolved(format)
	if err != nil {
		return nil, err
	}
	return p.Names(), nil
}

// Rules returns the resolved rules for format, in execution order.
func (c *Converter) Rules(format string) ([]pipeline.Rule, error) {
	p, err := c.resolved(format)
	if err != nil {
		return nil, err
	}
	return p.Rules(), nil
}

// Preload resolves every built-in profile, so a broken rule set fails
// before any input is read.
func (c *Converter) Preload() error {
	var errs []error
	for _, dialect := range config.Dialects() {
		for _, infer := range []bool{false, true} {
			if _, err := c.cache.get(profile{dialect: dialect, infer: infer}); err != nil {
				errs = append(errs, fmt.Errorf("build %s pipeline: %w", dialect, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Converter) resolved(format string) (*pipeline.Pipeline, error) {
	dialect, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	p, err := c.cache.get(profile{dialect: dialect})
	if err != nil {
		return nil, fmt.Errorf("build %s pipeline: %w", dialect, err)
	}
	return p, nil
}

func parseFormat(format string) (config.Dialect, error) {
	dialect, err := config.ParseDialect(format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return dialect, nil
}

//nolint:gochecknoglobals // Process-wide converter behind the package-level helpers.
var defaultConverter = NewConverter()

// Convert converts markdown with a process-wide converter.
func Convert(markdown string, opts Options) (string, error) {
	return defaultConverter.Convert(markdown, opts)
}

// ConvertBytes converts markdown with a process-wide converter.
func ConvertBytes(markdown []byte, opts Options) (string, error) {
	return defaultConverter.ConvertBytes(markdown, opts)
}
