// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and ESLint config migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/vuelint/internal/logging"
	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// ProjectConfigName is the file written by init and migrate.
const ProjectConfigName = ".vuelint.yml"

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// IgnoreESLint skips ESLint config detection and migration.
	IgnoreESLint bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule keys and validates rule options.
	// Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded, in order.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if an ESLint config was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (VUELINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.vuelint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/vuelint/config.yaml)
//  6. System config (/etc/vuelint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	if !opts.IgnoreESLint {
		migrated, err := handleESLintMigration(ctx, result, opts, registry, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			paths.Explicit = opts.ExplicitPath
			result.Paths = paths
		}
	}

	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.name, logging.FieldPath, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// handleESLintMigration offers to convert an ESLint config when the project
// has no vuelint config yet.
func handleESLintMigration(
	ctx context.Context,
	result *LoadResult,
	opts LoadOptions,
	registry *lint.Registry,
	workDir string,
) (bool, error) {
	paths := result.Paths

	if paths.ESLint == "" || opts.ExplicitPath != "" {
		return false, nil
	}

	// An existing vuelint config wins; the ESLint one is ignored silently.
	if paths.Project != "" {
		return false, nil
	}

	if !CanMigrate(paths.ESLint) {
		result.Warnings = append(result.Warnings, GetMigrationWarning(paths.ESLint))
		return false, nil
	}

	if opts.NonInteractive || !isInteractive() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no %s; run 'vuelint migrate' to convert",
				filepath.Base(paths.ESLint), ProjectConfigName))
		return false, nil
	}

	shouldMigrate, err := promptMigration(os.Stdin, os.Stdout, paths.ESLint)
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertESLintConfigWithRegistry(paths.ESLint, registry)
	if err != nil {
		return false, fmt.Errorf("convert ESLint config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, ProjectConfigName)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.ESLint)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	logging.FromContext(ctx).Info("migrated ESLint config",
		logging.FieldInput, paths.ESLint, logging.FieldOutput, outputPath)

	result.MigrationPerformed = true
	return true, nil
}

// promptMigration asks whether eslintPath should be converted. An empty
// answer means yes.
func promptMigration(in io.Reader, out io.Writer, eslintPath string) (bool, error) {
	if _, err := fmt.Fprintf(out, "Found %s but no %s\nConvert it to vuelint format? [Y/n] ",
		filepath.Base(eslintPath), ProjectConfigName); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes cfg as YAML below header.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys rewrites rule names and aliases to canonical IDs, so
// "html-quotes" and "vue/html-quotes" both configure VT001. When several keys
// name the same rule, a warning is recorded and their settings are merged in
// key order.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	cfg.EnableRules = normalizeRuleList(cfg.EnableRules, registry)
	cfg.DisableRules = normalizeRuleList(cfg.DisableRules, registry)
	cfg.FixRules = normalizeRuleList(cfg.FixRules, registry)

	if len(cfg.Rules) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(cfg.Rules))

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		id, _, found := registry.Resolve(key)
		if !found {
			// Unknown rules are kept; validation warns about them.
			normalized[key] = ruleCfg
			continue
		}

		if first, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q where they differ",
					first, key, id, key))
			normalized[id] = mergeRuleConfig(normalized[id], ruleCfg)
			continue
		}

		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}

// normalizeRuleList maps rule names and aliases in keys to IDs. Unknown keys
// are kept as given.
func normalizeRuleList(keys []string, registry *lint.Registry) []string {
	if keys == nil {
		return nil
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, _, found := registry.Resolve(key); found {
			key = id
		}
		ids = append(ids, key)
	}
	return ids
}
