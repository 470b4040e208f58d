package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/runner"
)

// Exit codes for vuelint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint found errors, or the command failed.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint found warnings in strict mode.
	ExitLintWarnings = 2
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

// issuesError carries the exit code for a lint run that found issues.
type issuesError struct {
	code int
}

func (e *issuesError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", ErrLintIssuesFound, e.code)
}

func (e *issuesError) Unwrap() error {
	return ErrLintIssuesFound
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Files that could not be processed count as errors.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)]

	if errs > 0 || result.Stats.FilesErrored > 0 || len(result.Errors) > 0 {
		return ExitLintErrors
	}

	if strict && warnings > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var issues *issuesError
	if errors.As(err, &issues) {
		return issues.code
	}
	return ExitLintErrors
}
