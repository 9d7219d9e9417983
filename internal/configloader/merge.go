package configloader

import (
	"slices"

	"github.com/cerealean/wabbc/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override overwrites base if override is non-zero.
//   - Booleans: only true overrides, so a lower layer cannot be switched off
//     by a higher file layer. Environment variables set them directly.
//   - Slices: override replaces base entirely if non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Dialect != "" {
		result.Dialect = override.Dialect
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.InferCodeLanguage {
		result.InferCodeLanguage = true
	}
	if override.Preflight {
		result.Preflight = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.Stdout {
		result.Stdout = true
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}
