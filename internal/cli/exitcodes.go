package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/syntree/pkg/edit"
	"github.com/yaklabco/syntree/pkg/fsutil"
	"github.com/yaklabco/syntree/pkg/runner"
)

// Exit codes for syntree.
const (
	// ExitSuccess indicates every file parsed.
	ExitSuccess = 0

	// ExitParseFailures indicates at least one file could not be read or parsed.
	ExitParseFailures = 1

	// ExitErrorNodes indicates trees contain ERROR nodes (with --strict).
	ExitErrorNodes = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors returned by commands to select an exit code.
var (
	ErrParseFailures = errors.New("some files could not be parsed")
	ErrErrorNodes    = errors.New("syntax errors found")
	ErrUsage         = errors.New("invalid usage")
	ErrConfig        = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code of a parse run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitParseFailures
	case strict && result.HasErrorNodes():
		return ExitErrorNodes
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailures):
		return ExitParseFailures
	case errors.Is(err, ErrErrorNodes):
		return ExitErrorNodes
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case isUsage(err), errors.Is(err, edit.ErrInvalidEdit), errors.Is(err, edit.ErrEditSpansTokens),
		errors.Is(err, edit.ErrTokenChanged), errors.Is(err, edit.ErrOverlappingEdits):
		return ExitInvalidUsage
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, fsutil.ErrStale),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// resultError converts a run result into the error that carries its exit code.
func resultError(result *runner.Result, strict bool) error {
	switch ExitCodeFromResult(result, strict) {
	case ExitParseFailures:
		return ErrParseFailures
	case ExitErrorNodes:
		return ErrErrorNodes
	default:
		return nil
	}
}
