package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/configloader"
	"github.com/yaklabco/vuelint/internal/logging"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert an ESLint configuration to vuelint format",
		Long: `Convert the eslint-plugin-vue settings of an existing ESLint configuration
(.eslintrc.json, .eslintrc.yaml, .eslintrc, etc.) to vuelint format
(.vuelint.yml). Rules vuelint does not implement are skipped.

If no input file is specified, the command searches the current directory
for an ESLint configuration file.

JavaScript configuration files (.eslintrc.js, eslint.config.js, etc.) cannot
be converted automatically and require manual migration.

Examples:
  vuelint migrate                        Auto-detect and convert ESLint config
  vuelint migrate .eslintrc.json         Convert specific file
  vuelint migrate --output config.yml    Write to custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runMigrate(w io.Writer, flags *migrateFlags) error {
	logger := logging.NewInteractiveTo(w)

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindESLintConfig(cwd)
		if inputPath == "" {
			return errors.New("no ESLint configuration file found in current directory")
		}

		logger.Info("found ESLint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(inputPath))
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertESLintConfigWithRegistry(inputPath, lint.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result.Config, absOutput, configloader.GenerateMigrationHeader(inputPath)); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete",
		logging.FieldInput, inputPath,
		logging.FieldOutput, flags.output,
		logging.FieldConverted, len(result.Converted),
		logging.FieldSkipped, result.Skipped,
	)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
