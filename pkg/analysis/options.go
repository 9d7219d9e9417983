package analysis

import (
	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/langdetect"
)

// SortField specifies how Summarize orders kinds.
type SortField string

const (
	// SortByCount sorts by finding count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts kinds alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures AnalyzeWithOptions.
type Options struct {
	// Dialect decides which constructs the converter cannot express.
	Dialect config.Dialect

	// KnownLanguage reports whether a fenced code label names a real
	// language. Nil means langdetect.Known.
	KnownLanguage func(lang string) bool
}

// DefaultOptions returns Options for dialect.
func DefaultOptions(dialect config.Dialect) Options {
	return Options{
		Dialect:       dialect,
		KnownLanguage: langdetect.Known,
	}
}
