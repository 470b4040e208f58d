package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/configloader"
	"github.com/yaklabco/vuelint/internal/logging"
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// jsonConfigName is the default output of init --format json.
const jsonConfigName = ".vuelint.json"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new vuelint configuration file",
		Long: `Create a new .vuelint.yml configuration file in the current directory
with sensible defaults. The file can be customized to pick the quote style,
change severities, and ignore paths.

Examples:
  vuelint init                      Create minimal .vuelint.yml
  vuelint init --full               Create full config with all rules documented
  vuelint init --format json        Create .vuelint.json instead
  vuelint init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateFormatYAML, "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .vuelint.yml or .vuelint.json)")

	return cmd
}

func runInit(w io.Writer, registry *lint.Registry, flags *initFlags) error {
	logger := logging.NewInteractiveTo(w)

	if flags.format != config.TemplateFormatYAML && flags.format != config.TemplateFormatJSON {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == config.TemplateFormatJSON {
			outputPath = jsonConfigName
		} else {
			outputPath = configloader.ProjectConfigName
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Rules:  templateRules(registry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}

	logger.Info("run 'vuelint rules' to see all available rules")

	return nil
}

// templateRules converts the registry's rules for template generation.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
			Options:     ruleDefaultOptions(rule),
		})
	}
	return infos
}
