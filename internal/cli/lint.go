package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/configloader"
	"github.com/yaklabco/vuelint/internal/logging"
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/lint/rules"
	"github.com/yaklabco/vuelint/pkg/parser/vue"
	"github.com/yaklabco/vuelint/pkg/reporter"
	"github.com/yaklabco/vuelint/pkg/runner"
)

type lintFlags struct {
	format     string
	quoteStyle string
	ignore     []string
	enable     []string
	disable    []string
	fixRules   []string
	strict     bool
	noContext  bool
	compact    bool
	ruleFormat string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Vue and HTML templates",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check that template attribute values are enclosed by the configured quotes.

By default, lints all .vue, .html and .htm files in the current directory
and subdirectories. Specify paths to lint specific files or directories.
Only the <template> block of a .vue file is checked.

Examples:
  vuelint lint                         # Lint current directory
  vuelint lint src/components/         # Lint a directory
  vuelint lint App.vue                 # Lint single file
  vuelint lint --fix                   # Lint and auto-fix issues
  vuelint lint --fix --dry-run         # Show fixes as a diff without applying
  vuelint lint --quote-style single    # Require single quotes
  vuelint lint --format sarif          # Output SARIF for code scanning
  vuelint lint --strict                # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Only values set on the command line override lower layers.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if cmd.Flags().Changed("quote-style") {
		cfg.SetRuleOption(rules.HTMLQuotesID, rules.OptionStyle, flags.quoteStyle)
	}
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registry := lint.DefaultRegistry

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
		Registry:     registry,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldQuoteStyle, quoteStyleOf(finalCfg),
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	engine := lint.NewEngine(vue.New(), registry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
		Registry:    registry,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	for _, runErr := range result.Errors {
		logger.Error("lint failure", logging.FieldError, runErr)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &issuesError{code: code}
	}

	return nil
}

// quoteStyleOf returns the configured html-quotes style, or the default.
func quoteStyleOf(cfg *config.Config) any {
	if style, ok := cfg.Rules[rules.HTMLQuotesID].Options[rules.OptionStyle]; ok {
		return style
	}
	return rules.NewHTMLQuotesRule().DefaultOptions()[rules.OptionStyle]
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().StringVar(&flags.quoteStyle, "quote-style", "double",
		"quotes attribute values must be enclosed by: double, single")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs or names")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}
