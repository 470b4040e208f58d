package configloader

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// ErrJavaScriptConfig is returned for ESLint configs that must be executed
// to be read.
var ErrJavaScriptConfig = errors.New("JavaScript config cannot be converted")

// MigrationResult contains the result of converting an ESLint config.
type MigrationResult struct {
	// Config is the converted vuelint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original ESLint config.
	SourcePath string

	// Converted lists the ESLint rule keys that were carried over.
	Converted []string

	// Skipped counts ESLint rules vuelint does not implement.
	Skipped int
}

// ConvertESLintConfig converts an ESLint config file using the built-in rules.
func ConvertESLintConfig(path string) (*MigrationResult, error) {
	return ConvertESLintConfigWithRegistry(path, lint.DefaultRegistry)
}

// ConvertESLintConfigWithRegistry converts an ESLint config file. Rule keys
// are resolved through registry, so "vue/html-quotes" becomes VT001.
func ConvertESLintConfigWithRegistry(path string, registry *lint.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("%w: %s; create a .vuelint.yml manually or run 'vuelint init'", ErrJavaScriptConfig, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw, err := parseESLintConfig(path, content)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{
		Config:     config.NewConfig(),
		SourcePath: path,
	}

	processTopLevelKeys(raw, result)

	rulesValue, ok := raw["rules"]
	if !ok {
		result.Warnings = append(result.Warnings, "no rules found; defaults apply")
		return result, nil
	}
	ruleMap, ok := rulesValue.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rules must be an object, got %T", rulesValue)
	}

	for _, key := range slices.Sorted(maps.Keys(ruleMap)) {
		ruleID, _, found := registry.Resolve(key)
		if !found {
			result.Skipped++
			continue
		}

		setting, err := parseESLintSetting(ruleMap[key])
		if err != nil {
			return nil, fmt.Errorf("rules.%s: %w", key, err)
		}

		ruleCfg, warnings := setting.toRuleConfig(ruleID)
		result.Config.Rules[ruleID] = ruleCfg
		result.Warnings = append(result.Warnings, warnings...)
		result.Converted = append(result.Converted, key)
	}

	if result.Skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("skipped %d ESLint rule(s) that vuelint does not implement", result.Skipped))
	}
	if len(result.Converted) == 0 {
		result.Warnings = append(result.Warnings, "no vuelint rules configured; defaults apply")
	}

	return result, nil
}

// parseESLintConfig decodes content as JSON with comments or YAML.
func parseESLintConfig(path string, content []byte) (map[string]any, error) {
	var raw map[string]any

	if IsJSONConfig(path) {
		err := parseJSONC(content, &raw)
		if err == nil {
			return raw, nil
		}
		if filepath.Ext(path) == ".json" {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		// Legacy .eslintrc may also be YAML.
	}

	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// processTopLevelKeys carries over ignorePatterns and warns about keys whose
// effect cannot be migrated.
func processTopLevelKeys(raw map[string]any, result *MigrationResult) {
	if extends, ok := raw["extends"]; ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("extends %v is not followed; settings inherited from it are not migrated", extends))
	}

	if _, ok := raw["overrides"]; ok {
		result.Warnings = append(result.Warnings,
			"overrides are not supported; only top-level rules are migrated")
	}

	switch patterns := raw["ignorePatterns"].(type) {
	case string:
		result.Config.Ignore = []string{patterns}
	case []any:
		for _, p := range patterns {
			if s, ok := p.(string); ok {
				result.Config.Ignore = append(result.Config.Ignore, s)
			}
		}
	}
}

// parseJSONC parses JSON that may contain comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes // and /* */ comments outside string literals.
// Newlines ending line comments are kept so error offsets stay close.
func stripJSONComments(content []byte) []byte {
	const (
		code = iota
		str
		lineComment
		blockComment
	)

	out := make([]byte, 0, len(content))
	state := code

	for i := 0; i < len(content); i++ {
		c := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case str:
			out = append(out, c)
			if c == '\\' && i+1 < len(content) {
				out = append(out, next)
				i++
			} else if c == '"' {
				state = code
			}
		case lineComment:
			if c == '\n' {
				out = append(out, c)
				state = code
			}
		case blockComment:
			if c == '*' && next == '/' {
				i++
				state = code
			}
		default:
			switch {
			case c == '"':
				out = append(out, c)
				state = str
			case c == '/' && next == '/':
				i++
				state = lineComment
			case c == '/' && next == '*':
				i++
				state = blockComment
			default:
				out = append(out, c)
			}
		}
	}

	return out
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# vuelint configuration
# Migrated from: %s
# See: https://github.com/yaklabco/vuelint
`, filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning explains why path cannot be migrated, or returns "".
func GetMigrationWarning(path string) string {
	if !IsJavaScriptConfig(path) {
		return ""
	}
	return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
		"create a .vuelint.yml file manually or run 'vuelint init'", filepath.Base(path))
}

// DetectConfigFormat determines the format of a config file.
func DetectConfigFormat(path string) string {
	if filepath.Base(path) == ".eslintrc" {
		return "json"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".js", ".cjs", ".mjs":
		return "javascript"
	default:
		return "unknown"
	}
}
