package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// GroupByFile groups text output under a header per file.
	GroupByFile bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as-is.
	WorkingDir string

	// Registry supplies rule metadata for SARIF output (may be nil).
	Registry *lint.Registry

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		RuleFormat:  config.RuleFormatName,
		ToolVersion: "dev",
	}
}

// displayPath returns path relative to the working directory when it lies
// below it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
