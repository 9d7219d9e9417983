package cli

import (
	"errors"
	"io/fs"

	"github.com/cerealean/wabbc/internal/configloader"
	"github.com/cerealean/wabbc/pkg/bbcode"
	"github.com/cerealean/wabbc/pkg/fsutil"
	"github.com/cerealean/wabbc/pkg/runner"
)

// Exit codes for wabbc.
const (
	// ExitSuccess indicates every input converted.
	ExitSuccess = 0

	// ExitFailures indicates the run completed but some files failed.
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFilesFailed is returned when a batch run finished with failed files.
	ErrFilesFailed = errors.New("some files failed to convert")

	// ErrInvalidUsage marks errors caused by bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFailures
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, bbcode.ErrInvalidFormat):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrBinary),
		errors.Is(err, runner.ErrOutputIsInput):
		return ExitIOError
	default:
		return ExitFailures
	}
}

// ExitCodeFromResult determines the exit code of a finished batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFailures
	}
	return ExitSuccess
}
