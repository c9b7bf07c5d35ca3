package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charliek/git-preserves/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, constants.ExitSuccess},
		{"not in repo", Errorf(ErrNotInRepo, "%s", "/tmp"), constants.ExitNotInRepo},
		{"invalid config", Errorf(ErrInvalidConfig, "bad tag"), constants.ExitInvalidConfig},
		{"invalid args", fmt.Errorf("flag: %w", ErrInvalidArgs), constants.ExitInvalidArgs},
		{"exec failed", ErrExecFailed, constants.ExitExecFailed},
		{"unknown", errors.New("boom"), constants.ExitUnknownError},
		{"status parse", NewSourceError(SourceStatus, ErrParse), constants.ExitStatusParse},
		{"refs parse", NewSourceError(SourceRefs, ErrParse), constants.ExitRefsParse},
		{"remote parse", NewSourceError(SourceRemote, ErrParse), constants.ExitRemoteParse},
		{"source exec", NewSourceError(SourceRemote, Errorf(ErrExecFailed, "exit 128")), constants.ExitExecFailed},
		{"source encoding", NewSourceError(SourceStatus, ErrEncoding), constants.ExitEncodingFailed},
		{"source too large", NewSourceError(SourceRefs, ErrOutputTooLarge), constants.ExitEncodingFailed},
		{"source other", NewSourceError(SourceRefs, errors.New("boom")), constants.ExitUnknownError},
		{"explicit code", NewExitCodeError(ErrChecksFailed, 5), 5},
		{"wrapped explicit code", fmt.Errorf("run: %w", NewExitCodeError(ErrChecksFailed, 3)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestWrapWithExitCode(t *testing.T) {
	require.Nil(t, WrapWithExitCode(nil))

	wrapped := WrapWithExitCode(NewSourceError(SourceStatus, ErrParse))
	require.Equal(t, constants.ExitStatusParse, wrapped.ExitCode)
	require.ErrorIs(t, wrapped, ErrParse)

	already := NewExitCodeError(ErrChecksFailed, 2)
	require.Same(t, already, WrapWithExitCode(already))
}

func TestSourceError(t *testing.T) {
	require.NoError(t, NewSourceError(SourceRefs, nil))

	err := NewSourceError(SourceRefs, Errorf(ErrParse, "rule failed"))
	require.EqualError(t, err, "refs: git output could not be parsed: rule failed")
	require.ErrorIs(t, err, ErrParse)

	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	require.Equal(t, SourceRefs, srcErr.Source)
	require.Equal(t, "source(9)", Source(9).String())
}
