package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Dialect is written uncommented as the active dialect.
	// Empty means DialectGeneric.
	Dialect Dialect

	// Full documents every option, including commented examples.
	Full bool
}

// GenerateTemplate creates a commented .wabbc.yml template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = DialectGeneric
	}
	if !dialect.IsValid() {
		return nil, fmt.Errorf("generate template: %w: %q", ErrUnknownDialect, dialect)
	}

	var buf bytes.Buffer

	buf.WriteString("# wabbc configuration\n\n")
	buf.WriteString("# Target dialect: generic (forum BBCode) or extended (World Anvil)\n")
	fmt.Fprintf(&buf, "dialect: %s\n", dialect)

	if !opts.Full {
		buf.WriteString(`
# File patterns to skip (glob patterns)
# ignore:
#   - "drafts/**"
`)
		return buf.Bytes(), nil
	}

	buf.WriteString(`
# Tag unlabelled code fences with a detected language ([code:go]).
# Only affects the extended dialect.
infer_code_language: false

# Report Markdown constructs that will not convert cleanly.
preflight: false

# Where converted files are written.
output:
  # Extension replacing .md / .markdown
  extension: .bbcode
  # Directory for all output; empty writes next to each source file
  dir: ""

# File patterns to skip (glob patterns)
ignore:
  - "node_modules/**"
  - ".git/**"
`)

	return buf.Bytes(), nil
}
