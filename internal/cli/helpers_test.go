package cli

import (
	"testing"

	"github.com/charliek/git-preserves/internal/check"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/git"
	"github.com/stretchr/testify/require"
)

func checkNames(checks []check.Check) []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	return names
}

func TestSelectChecks(t *testing.T) {
	t.Run("flags win over config", func(t *testing.T) {
		checks, err := selectChecks([]string{"merge"}, []string{"local"})
		require.NoError(t, err)
		require.Equal(t, []string{"remote_changes"}, checkNames(checks))
	})

	t.Run("config tags used without flags", func(t *testing.T) {
		checks, err := selectChecks(nil, []string{"tag"})
		require.NoError(t, err)
		require.Equal(t, []string{"untagged_commit", "unpushed_tag"}, checkNames(checks))
	})

	t.Run("nothing selects all", func(t *testing.T) {
		checks, err := selectChecks(nil, nil)
		require.NoError(t, err)
		require.Len(t, checks, 9)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := selectChecks([]string{"locl"}, nil)
		require.ErrorIs(t, err, domain.ErrInvalidArgs)
		require.Contains(t, err.Error(), `"locl"`)
	})
}

func TestResolveRemote(t *testing.T) {
	remote, err := resolveRemote("", "origin")
	require.NoError(t, err)
	require.Equal(t, "origin", remote)

	remote, err = resolveRemote("fork", "origin")
	require.NoError(t, err)
	require.Equal(t, "fork", remote)

	_, err = resolveRemote("--upload-pack=x", "")
	require.ErrorIs(t, err, domain.ErrInvalidArgs)
}

func TestInspectOptions(t *testing.T) {
	require.Equal(t,
		git.FetchOptions{Status: true, Refs: true, Remote: true, RemoteName: "origin"},
		inspectOptions(nil, "origin"))
	require.Equal(t,
		git.FetchOptions{Refs: true},
		inspectOptions([]string{"refs"}, ""))
	require.Equal(t,
		git.FetchOptions{Status: true, Remote: true, RemoteName: "up"},
		inspectOptions([]string{"remote", "status"}, "up"))
}

func TestLookupChecks(t *testing.T) {
	all := check.Default().All()

	checks, err := lookupChecks([]string{"unpushed_tag", "untracked_files"}, all)
	require.NoError(t, err)
	require.Equal(t, []string{"unpushed_tag", "untracked_files"}, checkNames(checks))

	_, err = lookupChecks([]string{"nope"}, all)
	require.ErrorIs(t, err, domain.ErrInvalidArgs)
	require.Contains(t, err.Error(), "unknown check")

	local, err := selectChecks([]string{check.TagLocal}, nil)
	require.NoError(t, err)
	_, err = lookupChecks([]string{"unpushed_tag"}, local)
	require.ErrorIs(t, err, domain.ErrInvalidArgs)
	require.Contains(t, err.Error(), "does not carry")
}

func TestInspectRows(t *testing.T) {
	const commit = "8558b6934276f1b9966c01f7b3e5aeea2902742d"
	const tagObj = "9a1f3c2b7e4d5f60718293a4b5c6d7e8f9012345"

	report, err := git.ParseStatus("# branch.oid " + commit + "\n" +
		"# branch.head main\n" +
		"# branch.upstream origin/main\n" +
		"1 .M N... 100644 100644 100644 " + commit + " " + commit + " src/main.go\n" +
		"? notes.txt\n")
	require.NoError(t, err)
	require.Equal(t, "main at 8558b69 tracking origin/main", statusHeading(report))
	require.Equal(t, [][]string{
		{"ordinary", "unmodified", "modified", "src/main.go"},
		{"untracked", "", "", "notes.txt"},
	}, statusRows(report.Lines))

	require.Equal(t, "no branch information", statusHeading(git.StatusReport{}))

	refs, err := git.ParseRefs("'" + tagObj + "' '" + commit + "' 'tag' 'refs/tags/v1.0.0' '' '' '' 'A <a@b> 1 +0000'\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"9a1f3c2", "tag", "8558b69", "refs/tags/v1.0.0"}}, refRows(refs))

	pairs, err := git.ParseRemoteRefs(tagObj + "\trefs/tags/v1.0.0\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"9a1f3c2", "refs/tags/v1.0.0"}}, remoteRows(pairs))
}
