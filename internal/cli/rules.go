package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/logging"
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Aliases     []string       `json:"aliases,omitempty"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Fixable     bool           `json:"fixable"`
	Tags        []string       `json:"tags,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, aliases, descriptions,
default severity, default options, and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func runRules(w io.Writer, registry *lint.Registry, flags *rulesFlags) error {
	rules := registry.Rules()

	switch flags.format {
	case formatJSON:
		return outputRulesJSON(w, registry, rules)
	case "text", "":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	logger := logging.NewInteractiveTo(w)

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	logger.Info("available rules")

	ruleFormat := config.RuleFormat(flags.ruleFormat)

	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
		}
		if aliases := registry.Aliases(rule.ID()); len(aliases) > 0 {
			keyvals = append(keyvals, logging.FieldAliases, strings.Join(aliases, ","))
		}
		if defaults := ruleDefaultOptions(rule); len(defaults) > 0 {
			keyvals = append(keyvals, logging.FieldOptions, formatOptions(defaults))
		}
		keyvals = append(keyvals, logging.FieldDescription, rule.Description())

		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
	}

	return nil
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, registry *lint.Registry, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Aliases:     registry.Aliases(rule.ID()),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
			Options:     ruleDefaultOptions(rule),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// ruleDefaultOptions returns the rule's documented option defaults, or nil.
func ruleDefaultOptions(rule lint.Rule) map[string]any {
	if provider, ok := rule.(lint.OptionsProvider); ok {
		return provider.DefaultOptions()
	}
	return nil
}

// formatOptions renders options as "key=value" pairs in key order.
func formatOptions(options map[string]any) string {
	keys := slices.Sorted(maps.Keys(options))

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, options[key]))
	}
	return strings.Join(parts, " ")
}
