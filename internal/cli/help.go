package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/ui/pretty"
)

// helpFormatter renders cobra help and usage with the diagnostic styles, so
// --color applies to help text as well.
type helpFormatter struct {
	styles *pretty.Styles
}

func newHelpFormatter(colorMode string, writer io.Writer) *helpFormatter {
	return &helpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":                 h.styles.SummaryTitle.Render,
		"command":                 h.styles.Bold.Render,
		"subcommand":              h.styles.FilePath.UnsetUnderline().Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages styles pflag's usage block: flag names highlighted, value types
// dimmed, descriptions left alone.
func (h *helpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles one "  -f, --flag type   description" line. The flag
// part ends at the first run of at least two spaces.
func (h *helpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	flagPart, desc := body[:split], strings.TrimLeft(body[split:], " ")

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if name, comma := strings.CutSuffix(token, ","); strings.HasPrefix(name, "-") {
			tokens[i] = h.styles.Info.UnsetBold().Render(name)
			if comma {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// applyHelp installs the styled templates on cmd; subcommands inherit them.
// The --color flag is read when help is rendered, after flag parsing.
func applyHelp(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return renderHelp(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := renderHelp(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func renderHelp(command *cobra.Command, name, text string) error {
	colorMode := pretty.ColorAuto
	if flag := command.Flag("color"); flag != nil {
		colorMode = flag.Value.String()
	}
	h := newHelpFormatter(colorMode, command.OutOrStdout())

	tmpl, err := template.New(name).Funcs(h.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	return tmpl.Execute(command.OutOrStdout(), command)
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
