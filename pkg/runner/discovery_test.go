package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/runner"
)

// makeTree creates files (with parent directories) under dir.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("<template><p></p></template>\n"), 0o644))
	}
}

// relPaths strips dir from files and converts to forward slashes.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()
	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	return relPaths(t, opts.WorkingDir, files)
}

func TestDiscover_DefaultExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "App.vue", "index.html", "legacy.htm", "main.js", "README.md", "src/components/Nav.vue")

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{"App.vue", "index.html", "legacy.htm", "src/components/Nav.vue"}, got)
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "App.vue", "main.js")

	assert.Equal(t, []string{"App.vue"}, discover(t, runner.Options{WorkingDir: dir, Paths: []string{"App.vue"}}))
	assert.Empty(t, discover(t, runner.Options{WorkingDir: dir, Paths: []string{"main.js"}}))
}

func TestDiscover_ExtensionsFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "App.vue", "index.html")

	cfg := config.NewConfig()
	cfg.Extensions = []string{".vue"}

	assert.Equal(t, []string{"App.vue"}, discover(t, runner.Options{WorkingDir: dir, Config: cfg}))

	// Explicit options win over the config.
	got := discover(t, runner.Options{WorkingDir: dir, Config: cfg, Extensions: []string{".HTML"}})
	assert.Equal(t, []string{"index.html"}, got)
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"src/App.vue",
		"src/generated/Icons.vue",
		"dist/index.html",
		"docs/a/b/page.html",
		"public/index.html",
	)

	tests := []struct {
		name     string
		excludes []string
		ignore   []string
		want     []string
	}{
		{
			name:     "directory name at any depth",
			excludes: []string{"generated"},
			want:     []string{"dist/index.html", "docs/a/b/page.html", "public/index.html", "src/App.vue"},
		},
		{
			name:     "doublestar prefix",
			excludes: []string{"docs/**"},
			want:     []string{"dist/index.html", "public/index.html", "src/App.vue", "src/generated/Icons.vue"},
		},
		{
			name:     "base name pattern",
			excludes: []string{"*.html"},
			want:     []string{"src/App.vue", "src/generated/Icons.vue"},
		},
		{
			name:   "config ignore",
			ignore: []string{"dist", "public/**"},
			want:   []string{"docs/a/b/page.html", "src/App.vue", "src/generated/Icons.vue"},
		},
		{
			name:     "nested doublestar",
			excludes: []string{"**/b/*.html"},
			want:     []string{"dist/index.html", "public/index.html", "src/App.vue", "src/generated/Icons.vue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Ignore = tt.ignore
			got := discover(t, runner.Options{WorkingDir: dir, ExcludeGlobs: tt.excludes, Config: cfg})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "src/App.vue", "src/views/Home.vue", "index.html")

	got := discover(t, runner.Options{WorkingDir: dir, IncludeGlobs: []string{"src/**/*.vue"}})
	assert.Equal(t, []string{"src/App.vue", "src/views/Home.vue"}, got)
}

func TestDiscover_SkipsHiddenAndNodeModules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"App.vue",
		".hidden.vue",
		".cache/Cached.vue",
		"node_modules/lib/Button.vue",
		"packages/ui/node_modules/x/Y.vue",
	)

	assert.Equal(t, []string{"App.vue"}, discover(t, runner.Options{WorkingDir: dir}))

	// Named explicitly, a hidden file is still linted.
	got := discover(t, runner.Options{WorkingDir: dir, Paths: []string{".cache/Cached.vue"}})
	assert.Equal(t, []string{".cache/Cached.vue"}, got)
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "b/Two.vue", "a/One.vue")

	got := discover(t, runner.Options{WorkingDir: dir, Paths: []string{"b", ".", "a/One.vue", "b/Two.vue"}})
	assert.Equal(t, []string{"a/One.vue", "b/Two.vue"}, got)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "App.vue")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	makeTree(t, dir, "App.vue")
	makeTree(t, outside, "Shared.vue")

	if err := os.Symlink(outside, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Shared.vue", filepath.Base(files[1]))
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"src/App.vue", "src/App.vue", true},
		{"src/App.vue", "*.vue", true},
		{"src/App.vue", "src/*.vue", true},
		{"src/views/Home.vue", "src/*.vue", false},
		{"src/views/Home.vue", "src/**/*.vue", true},
		{"src/views/Home.vue", "src", true},
		{"src/views/Home.vue", "src/", true},
		{"src/views/Home.vue", "src/views", true},
		{"src/views/Home.vue", "views", true},
		{"src/views/Home.vue", "dist", false},
		{"a/b/c.html", "**/c.html", true},
		{"App.vue", "", false},
		{"App.vue", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, runner.MatchGlob(tt.path, tt.pattern))
		})
	}
}

func TestValidateGlob(t *testing.T) {
	t.Parallel()

	assert.True(t, runner.ValidateGlob("src/**/*.vue"))
	assert.True(t, runner.ValidateGlob("dist"))
	assert.False(t, runner.ValidateGlob("src/[a-"))
}
