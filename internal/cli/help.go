package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/cerealean/wabbc/internal/ui/pretty"
)

// HelpFormatter renders Cobra help and usage with pretty styles.
// The color mode is re-read from the --color flag when help is printed,
// so "wabbc --color never help" is honoured.
type HelpFormatter struct {
	defaultMode string
}

// NewHelpFormatter creates a help formatter falling back to colorMode.
func NewHelpFormatter(colorMode string) *HelpFormatter {
	return &HelpFormatter{defaultMode: colorMode}
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", helpTemplate+usageTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(cmd *cobra.Command, name, text string) error {
	mode := h.defaultMode
	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Changed {
		mode = flag.Value.String()
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"heading": styles.Heading.Render,
		"command": styles.Path.Render,
		"dim":     styles.Muted.Render,
		"rpad":    rpad,
		"trim":    trimTrailingWhitespace,
		"flags":   func(usages string) string { return styleFlagUsages(styles, usages) },
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`

// styleFlagUsages dims the type placeholder of each pflag usage line,
// e.g. the "string" in "--dialect string".
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		flagEnd := strings.Index(trimmed, "  ")
		if flagEnd < 0 {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		fields := strings.Fields(trimmed[:flagEnd])
		for j, field := range fields {
			if strings.HasPrefix(field, "-") {
				fields[j] = styles.Strong.Render(field)
			} else {
				fields[j] = styles.Muted.Render(field)
			}
		}
		lines[i] = indent + strings.Join(fields, " ") + trimmed[flagEnd:]
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
