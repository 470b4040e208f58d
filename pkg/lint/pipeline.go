package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Conflicting edits skipped in one
// pass are retried in the next.
const DefaultMaxFixPasses = 10

// Pipeline error categories, checked with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	// FileResult is the lint result of the last pass, i.e. of the content
	// as it would be written.
	*FileResult

	Path string

	// OriginalInfo is the file state before processing (nil for in-memory content).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixes changed the content.
	Modified bool

	// ModifiedContent is the fixed content, nil when nothing changed.
	ModifiedContent []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing. Otherwise only
	// mod time and size are compared.
	StrictRaceDetection bool

	// ReParseAfterFix parses the fixed content again and refuses to keep it
	// when the template no longer ends cleanly.
	ReParseAfterFix bool

	// MaxFixPasses limits the fix loop; 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}

// Pipeline runs the lint engine on a file and, when asked, fixes it safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints the file at path and applies fixes.
//
// Steps:
//  1. Read and hash the file.
//  2. Lint and apply fixes in memory until no edits remain or the pass
//     limit is hit.
//  3. Optionally re-parse the result.
//  4. In dry-run mode, stop with a diff.
//  5. Skip the file if it changed on disk meanwhile.
//  6. Create a backup, then write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent is ProcessFile for in-memory content. Nothing is written;
// in dry-run mode the result carries a diff.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, content, cfg, opts)
}

// process runs the fix loop, the re-parse check and diff generation.
func (p *Pipeline) process(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	if opts.ReParseAfterFix {
		if reason := p.validateFixed(ctx, path, content); reason != "" {
			result.Skipped = true
			result.SkipReason = reason
			result.Modified = false
			return result, nil
		}
	}

	result.ModifiedContent = content
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}

	return result, nil
}

// validateFixed returns why fixed content must not be kept, or "".
func (p *Pipeline) validateFixed(ctx context.Context, path string, content []byte) string {
	snapshot, err := p.Engine.Parser.Parse(ctx, path, content)
	if err != nil {
		return fmt.Sprintf("re-parse failed: %v", err)
	}
	if snapshot.HasInvalidEOF() {
		return "fixed content ends inside a tag or comment"
	}
	return ""
}

func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}

	modified, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError tags read errors with a pipeline error category.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig derives the backup settings from cfg.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives pipeline options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	return opts
}
