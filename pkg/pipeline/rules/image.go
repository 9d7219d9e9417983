package rules

import (
	"regexp"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/pipeline"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// ImageRule converts inline images.
type ImageRule struct {
	pipeline.BaseRule
}

// NewImageRule creates a new image rule.
func NewImageRule() *ImageRule {
	return &ImageRule{
		BaseRule: pipeline.NewBaseRule(NameImage, "![alt](url) to [img] (generic) or [img:alt] (extended)"),
	}
}

// Transform rewrites images. The generic dialect has nowhere to put alt text and drops it.
func (r *ImageRule) Transform(text string, dialect config.Dialect) string {
	if dialect == config.DialectExtended {
		return imagePattern.ReplaceAllString(text, "[img:${1}]${2}[/img]")
	}
	return imagePattern.ReplaceAllString(text, "[img]${2}[/img]")
}
