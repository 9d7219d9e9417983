package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/cerealean/wabbc/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.extension").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// markdownExtensions may never be used for output.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownExtensions = map[string]bool{".md": true, ".markdown": true}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	dialect, err := config.ParseDialect(string(cfg.Dialect))
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "dialect",
			Value:   cfg.Dialect,
			Message: fmt.Sprintf("invalid dialect %q; must be one of: generic, extended", cfg.Dialect),
		})
	}

	if cfg.InferCodeLanguage && dialect == config.DialectGeneric {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "infer_code_language",
			Value:   true,
			Message: "has no effect with the generic dialect",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateOutput(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateOutput(cfg *config.Config, result *ValidationResult) {
	ext := cfg.OutputExtension()
	switch {
	case ext == ".":
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.extension",
			Value:   cfg.Output.Extension,
			Message: "extension must not be empty",
		})
	case strings.ContainsAny(ext, `/\`):
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.extension",
			Value:   cfg.Output.Extension,
			Message: "extension must not contain a path separator",
		})
	case markdownExtensions[strings.ToLower(ext)]:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.extension",
			Value:   cfg.Output.Extension,
			Message: fmt.Sprintf("extension %q would overwrite the Markdown sources", ext),
		})
	}

	if cfg.Output.Dir != "" && strings.TrimSpace(cfg.Output.Dir) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.dir",
			Value:   cfg.Output.Dir,
			Message: "directory must not be blank",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns compile.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if strings.TrimSpace(pattern) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "empty pattern is ignored",
			})
			continue
		}
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in findings.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
