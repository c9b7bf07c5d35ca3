package git

import (
	"context"
	"errors"
	"testing"

	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/stretchr/testify/require"
)

func fakeRepoRunner(t *testing.T) *FakeRunner {
	t.Helper()
	return NewFakeRunner().
		SetOutput("status", readTestdata(t, "status-mixed.txt")).
		SetOutput("for-each-ref", readTestdata(t, "refs.txt")).
		SetOutput("ls-remote", readTestdata(t, "ls-remote.txt"))
}

func TestFetch(t *testing.T) {
	t.Run("only requested sources run", func(t *testing.T) {
		runner := fakeRepoRunner(t)
		listing, err := Fetch(context.Background(), runner, FetchOptions{Status: true})
		require.NoError(t, err)

		require.True(t, runner.Called("status"))
		require.False(t, runner.Called("for-each-ref"))
		require.False(t, runner.Called("ls-remote"))
		require.NotNil(t, listing.Status.Branch)
		require.Nil(t, listing.Refs)
		require.Nil(t, listing.Remotes)
	})

	t.Run("all sources", func(t *testing.T) {
		runner := fakeRepoRunner(t)
		listing, err := Fetch(context.Background(), runner, FetchOptions{Status: true, Refs: true, Remote: true})
		require.NoError(t, err)
		require.Len(t, listing.Status.Lines, 6)
		require.Len(t, listing.Refs, 7)
		require.Len(t, listing.Remotes, 4)
		require.Len(t, runner.Calls(), 3)
	})

	t.Run("nothing requested", func(t *testing.T) {
		runner := fakeRepoRunner(t)
		listing, err := Fetch(context.Background(), runner, FetchOptions{})
		require.NoError(t, err)
		require.Empty(t, runner.Calls())
		require.Nil(t, listing.Status.Branch)
	})

	t.Run("remote name is passed through", func(t *testing.T) {
		runner := fakeRepoRunner(t)
		_, err := Fetch(context.Background(), runner, FetchOptions{Remote: true, RemoteName: "upstream"})
		require.NoError(t, err)
		require.Equal(t, [][]string{{"ls-remote", "upstream"}}, runner.Calls())
	})

	t.Run("invocations match the parsers", func(t *testing.T) {
		runner := fakeRepoRunner(t)
		_, err := Fetch(context.Background(), runner, FetchOptions{Refs: true})
		require.NoError(t, err)
		require.Equal(t, [][]string{{"for-each-ref", "--shell", "--format", RefFormat}}, runner.Calls())
	})
}

func TestFetch_Errors(t *testing.T) {
	t.Run("exec failure is attributed", func(t *testing.T) {
		runner := fakeRepoRunner(t).SetError("ls-remote", domain.Errorf(domain.ErrExecFailed, "git ls-remote: exit status 128"))
		listing, err := Fetch(context.Background(), runner, FetchOptions{Status: true, Refs: true, Remote: true})
		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrExecFailed)

		var srcErr *domain.SourceError
		require.True(t, errors.As(err, &srcErr))
		require.Equal(t, domain.SourceRemote, srcErr.Source)
		require.Nil(t, listing.Status.Branch, "no partial listing on failure")
	})

	t.Run("parse failure is attributed", func(t *testing.T) {
		runner := fakeRepoRunner(t).SetOutput("for-each-ref", "'garbage'\n")
		_, err := Fetch(context.Background(), runner, FetchOptions{Refs: true})
		require.ErrorIs(t, err, domain.ErrParse)

		var srcErr *domain.SourceError
		require.True(t, errors.As(err, &srcErr))
		require.Equal(t, domain.SourceRefs, srcErr.Source)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
	})

	t.Run("encoding failure is attributed", func(t *testing.T) {
		runner := fakeRepoRunner(t).SetError("status", domain.Errorf(domain.ErrEncoding, "git status output is not valid UTF-8"))
		_, err := Fetch(context.Background(), runner, FetchOptions{Status: true})
		require.ErrorIs(t, err, domain.ErrEncoding)
		require.Equal(t, constants.ExitEncodingFailed, domain.GetExitCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Fetch(ctx, fakeRepoRunner(t), FetchOptions{Status: true})
		require.ErrorIs(t, err, domain.ErrExecFailed)
	})
}
