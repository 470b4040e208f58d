package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateFormatYAML = "yaml"
	TemplateFormatJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation and default options.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Rules describes the rules to document. The lint package is not imported
	// here to avoid an import cycle; callers convert their registry.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool

	// Options holds the rule's default options, if it has any.
	Options map[string]any
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# vuelint configuration
# See: https://github.com/yaklabco/vuelint`
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	if opts.Format == TemplateFormatJSON {
		return templateJSON(rules, opts.Full)
	}
	if opts.Full {
		return fullTemplate(rules)
	}
	return minimalTemplate(), nil
}

func minimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Default severity for all rules: error, warning, or info
# severity_default: warning

# File extensions to lint when walking directories
# extensions: [".vue", ".html", ".htm"]

# File patterns to ignore (doublestar glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Rule-specific configuration (keys may be IDs, names or aliases)
# rules:
#   html-quotes:
#     severity: error
#     options:
#       style: double
`)
}

func fullTemplate(rules []RuleInfo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template includes all available rules with their default settings.

# Default severity for all rules: error, warning, or info
severity_default: warning

# File extensions to lint when walking directories
extensions:
  - ".vue"
  - ".html"
  - ".htm"

# File patterns to ignore (doublestar glob patterns)
ignore:
  - "node_modules/**"
  - "dist/**"

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar

# Rule-specific configuration
rules:
`)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)

		if len(rule.Options) > 0 {
			encoded, err := yaml.Marshal(map[string]any{"options": rule.Options})
			if err != nil {
				return nil, fmt.Errorf("encode options for %s: %w", rule.ID, err)
			}
			for _, line := range strings.Split(strings.TrimRight(string(encoded), "\n"), "\n") {
				buf.WriteString("    " + line + "\n")
			}
		}
	}

	return buf.Bytes(), nil
}

// templateJSON renders the template as JSON. JSON has no comments, so the
// minimal form only carries the top-level defaults.
func templateJSON(rules []RuleInfo, full bool) ([]byte, error) {
	doc := map[string]any{
		"severity_default": string(SeverityWarning),
		"extensions":       DefaultExtensions(),
		"ignore":           []string{"node_modules/**", "dist/**"},
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
	}

	if full {
		rulesMap := make(map[string]any, len(rules))
		for _, r := range rules {
			entry := map[string]any{
				"enabled":  r.Enabled,
				"severity": string(r.Severity),
			}
			if len(r.Options) > 0 {
				entry["options"] = r.Options
			}
			rulesMap[r.ID] = entry
		}
		doc["rules"] = rulesMap
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}
