package domain

import (
	"errors"
	"fmt"

	"github.com/charliek/git-preserves/internal/constants"
)

// Sentinel errors
var (
	ErrNotInRepo      = errors.New("not in a git repository")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidArgs    = errors.New("invalid arguments")
	ErrExecFailed     = errors.New("git could not be run")
	ErrEncoding       = errors.New("git output is not valid UTF-8")
	ErrParse          = errors.New("git output could not be parsed")
	ErrOutputTooLarge = errors.New("git output exceeds size limit")
	ErrChecksFailed   = errors.New("workspace is not preserved")
)

// Source names one of the three git invocations whose output is inspected
type Source int

const (
	SourceStatus Source = iota
	SourceRefs
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceStatus:
		return "status"
	case SourceRefs:
		return "refs"
	case SourceRemote:
		return "remote"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// SourceError attributes a fetch or parse failure to the source that produced it
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	return e.Source.String() + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError wraps err with its source. A nil err stays nil
func NewSourceError(source Source, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: source, Err: err}
}

// ExitCodeError wraps an error with an exit code
type ExitCodeError struct {
	Err      error
	ExitCode int
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// NewExitCodeError creates a new ExitCodeError
func NewExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{Err: err, ExitCode: code}
}

// WrapWithExitCode wraps an error with an exit code based on the error type
func WrapWithExitCode(err error) *ExitCodeError {
	if err == nil {
		return nil
	}

	// Check if already wrapped
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := errorToExitCode(err)
	return &ExitCodeError{Err: err, ExitCode: code}
}

// errorToExitCode maps errors to exit codes
func errorToExitCode(err error) int {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return sourceExitCode(srcErr)
	}

	switch {
	case errors.Is(err, ErrNotInRepo):
		return constants.ExitNotInRepo
	case errors.Is(err, ErrInvalidConfig):
		return constants.ExitInvalidConfig
	case errors.Is(err, ErrInvalidArgs):
		return constants.ExitInvalidArgs
	case errors.Is(err, ErrExecFailed):
		return constants.ExitExecFailed
	default:
		return constants.ExitUnknownError
	}
}

// sourceExitCode separates "git failed" from "git's output changed under us"
func sourceExitCode(e *SourceError) int {
	switch {
	case errors.Is(e.Err, ErrExecFailed):
		return constants.ExitExecFailed
	case errors.Is(e.Err, ErrEncoding), errors.Is(e.Err, ErrOutputTooLarge):
		return constants.ExitEncodingFailed
	case errors.Is(e.Err, ErrParse):
		switch e.Source {
		case SourceStatus:
			return constants.ExitStatusParse
		case SourceRefs:
			return constants.ExitRefsParse
		case SourceRemote:
			return constants.ExitRemoteParse
		}
	}
	return constants.ExitUnknownError
}

// GetExitCode returns the exit code for an error
func GetExitCode(err error) int {
	if err == nil {
		return constants.ExitSuccess
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	return errorToExitCode(err)
}

// Errorf creates a formatted error wrapping a sentinel error
func Errorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...)
}
