package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/vuelint/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/vuelint/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.vuelint.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// ESLint is a detected ESLint config file in the working directory.
	ESLint string
}

// vuelintConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vuelintConfigFiles = []string{
	".vuelint.yml",
	".vuelint.yaml",
	"vuelint.yml",
	"vuelint.yaml",
}

// eslintConfigFiles are the ESLint config files we detect for migration.
// The JavaScript variants are detected only to explain that they cannot be
// converted.
//
//nolint:gochecknoglobals // Read-only lookup table.
var eslintConfigFiles = []string{
	".eslintrc.json",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc",
	".eslintrc.js",
	".eslintrc.cjs",
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
//   - system config at /etc/vuelint/config.{yaml,yml}
//   - user config at $XDG_CONFIG_HOME/vuelint/config.{yaml,yml}
//   - project config, searching upward from workDir for .vuelint.{yml,yaml}
//   - an ESLint config in workDir, for migration
//
// Missing files are represented as empty strings, not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findSystemConfig(),
		User:    findUserConfig(),
		Project: projectConfig,
		ESLint:  FindESLintConfig(workDir),
	}, nil
}

func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, "vuelint"))
	}
	return findConfigInDir("/etc/vuelint")
}

func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return findConfigInDir(filepath.Join(configHome, "vuelint"))
}

// findConfigInDir returns the first config.{yaml,yml} in dir, or "".
func findConfigInDir(dir string) string {
	return firstExisting(dir, []string{"config.yaml", "config.yml"})
}

// FindProjectConfig searches upward from startDir for a project config file.
// It stops at a VCS root, the home directory or the filesystem root and
// returns "" when nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstExisting(currentDir, vuelintConfigFiles); path != "" {
			return path, nil
		}

		if isVCSRoot(currentDir) || (homeDir != "" && currentDir == homeDir) {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindESLintConfig returns the first ESLint config file in dir, or "".
func FindESLintConfig(dir string) string {
	return firstExisting(dir, eslintConfigFiles)
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsJavaScriptConfig returns true for ESLint configs written in JavaScript.
// These cannot be converted and require user action.
func IsJavaScriptConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".cjs", ".mjs":
		return true
	default:
		return false
	}
}

// IsJSONConfig returns true if the path is a JSON config file. The legacy
// extensionless .eslintrc is parsed as JSON with a YAML fallback.
func IsJSONConfig(path string) bool {
	return filepath.Ext(path) == ".json" || filepath.Base(path) == ".eslintrc"
}

// IsYAMLConfig returns true if the path is a YAML config file.
func IsYAMLConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
