// Package runner discovers template files and lints them concurrently.
package runner

import "github.com/yaklabco/vuelint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir is the base for relative Paths and glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) picked up
	// when walking directories. Empty falls back to Config.Extensions and
	// then to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. Config.Ignore is
	// always added.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers; 0 or negative means
	// runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// skippedDirs are directory names never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config != nil && len(o.Config.Extensions) > 0 {
		return o.Config.Extensions
	}
	return config.DefaultExtensions()
}

func (o Options) effectiveExcludes() []string {
	if o.Config == nil || len(o.Config.Ignore) == 0 {
		return o.ExcludeGlobs
	}
	excludes := make([]string, 0, len(o.ExcludeGlobs)+len(o.Config.Ignore))
	excludes = append(excludes, o.ExcludeGlobs...)
	return append(excludes, o.Config.Ignore...)
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
