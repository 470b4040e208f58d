package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matcher holds the per-run discovery settings.
type matcher struct {
	workDir    string
	extensions []string
	includes   []string
	excludes   []string
	follow     bool
}

// Discover finds template files matching opts. It returns a sorted,
// de-duplicated list of absolute paths.
//
// Explicitly named files are returned when their extension matches and no
// exclude pattern applies, even inside hidden directories.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		includes:   opts.IncludeGlobs,
		excludes:   opts.effectiveExcludes(),
		follow:     opts.FollowSymlinks,
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.matchesFile(absPath) {
				files = append(files, absPath)
			}
			continue
		}

		found, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk collects matching files below root.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p == root {
				return nil
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || skippedDirs[name] || m.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(p)
			if !ok {
				return nil
			}
			if target.IsDir() {
				if !m.follow {
					return nil
				}
				// WalkDir does not descend into symlinks, so walk the target.
				realPath, err := filepath.EvalSymlinks(p)
				if err != nil {
					return nil //nolint:nilerr // broken links are skipped
				}
				sub, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matchesFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// resolveSymlink stats the target of a symlink. Broken links report false.
func resolveSymlink(p string) (fs.FileInfo, bool) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	return info, true
}

// matchesFile applies the extension, exclude and include filters.
func (m *matcher) matchesFile(p string) bool {
	if !hasMatchingExtension(p, m.extensions) {
		return false
	}
	if m.excluded(p) {
		return false
	}
	if len(m.includes) > 0 && !matchAny(m.relative(p), m.includes) {
		return false
	}
	return true
}

func (m *matcher) excluded(p string) bool {
	return matchAny(m.relative(p), m.excludes)
}

// relative returns p relative to the working directory with forward slashes.
func (m *matcher) relative(p string) string {
	rel, err := filepath.Rel(m.workDir, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}

func hasMatchingExtension(p string, extensions []string) bool {
	ext := filepath.Ext(p)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func matchAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// MatchGlob reports whether the slash-separated relPath matches a doublestar
// pattern. Patterns without a slash also match the base name, so "*.html"
// and "dist" apply at any depth. A pattern naming a directory also matches
// everything below it.
func MatchGlob(relPath, pattern string) bool {
	pattern = filepath.ToSlash(strings.TrimSuffix(pattern, "/"))
	if pattern == "" {
		return false
	}

	if ok, _ := doublestar.Match(pattern, relPath); ok {
		return true
	}

	if !strings.Contains(pattern, "/") {
		for _, part := range strings.Split(relPath, "/") {
			if ok, _ := doublestar.Match(pattern, part); ok {
				return true
			}
		}
		return false
	}

	ok, _ := doublestar.Match(path.Join(pattern, "**"), relPath)
	return ok
}

// ValidateGlob reports whether pattern is a well-formed doublestar pattern.
func ValidateGlob(pattern string) bool {
	return doublestar.ValidatePattern(filepath.ToSlash(pattern))
}
