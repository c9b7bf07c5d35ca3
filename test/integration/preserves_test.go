//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/charliek/git-preserves/internal/check"
	"github.com/charliek/git-preserves/internal/config"
	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/git"
	"github.com/charliek/git-preserves/internal/project"
	"github.com/stretchr/testify/require"
)

func runChecks(t *testing.T, work, cfgPath string) check.Summary {
	t.Helper()
	discovery, err := project.NewDiscovery(work)
	require.NoError(t, err)

	cfg, err := config.LoadWorkspace(cfgPath, discovery.Root())
	require.NoError(t, err)

	checks := check.Default().Select(cfg.Tags)
	runner := git.NewCLIRunner(cfg.Git, discovery.Root(), cfg.MaxOutputBytes, nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	summary, err := check.Run(ctx, runner, checks, cfg.Remote, nil)
	require.NoError(t, err)
	return summary
}

func itemResult(t *testing.T, s check.Summary, name string) check.CheckResult {
	t.Helper()
	for _, it := range s.Items {
		if it.Name == name {
			return it.Result
		}
	}
	t.Fatalf("no item %s", name)
	return check.CheckResult{}
}

func TestPreserves_Lifecycle(t *testing.T) {
	work := createTestProject(t)
	cfgPath := createTestConfig(t, "remote: origin\n")

	// pushed but untagged
	s := runChecks(t, work, cfgPath)
	require.Equal(t, check.ExitMask(0).With(check.GroupTag), s.ExitMask)
	require.Equal(t, check.BoolResult(false), itemResult(t, s, "untagged_commit"))

	// tagged locally
	runGit(t, work, "tag", "-a", "v1.0.0", "-m", "release")
	s = runChecks(t, work, cfgPath)
	require.True(t, itemResult(t, s, "untagged_commit").Passed())
	require.Equal(t, check.BoolResult(false), itemResult(t, s, "unpushed_tag"))

	// tag pushed
	runGit(t, work, "push", "origin", "v1.0.0")
	s = runChecks(t, work, cfgPath)
	require.True(t, s.Passed(), "%+v", s.Items)

	// dirty worktree
	writeFile(t, work, "scratch.txt", "wip\n")
	writeFile(t, work, "README.md", "changed\n")
	s = runChecks(t, work, cfgPath)
	require.Equal(t, check.CountResult(1), itemResult(t, s, "untracked_files"))
	require.Equal(t, check.CountResult(1), itemResult(t, s, "modified_files"))
	require.True(t, itemResult(t, s, "uncommitted_changes").Passed())
	require.Equal(t, check.ExitMask(0).With(check.GroupLocal), s.ExitMask)

	// committed but not pushed
	runGit(t, work, "add", "README.md", "scratch.txt")
	runGit(t, work, "commit", "-m", "more")
	s = runChecks(t, work, cfgPath)
	require.Equal(t, check.CountResult(1), itemResult(t, s, "unpushed_commit"))
	require.Equal(t, check.BoolResult(false), itemResult(t, s, "untagged_commit"))
	require.True(t, s.ExitMask.Has(check.GroupRemote))
	require.True(t, s.ExitMask.Has(check.GroupTag))
	require.False(t, s.ExitMask.Has(check.GroupLocal))
}

func TestPreserves_RepoConfigSelectsTags(t *testing.T) {
	work := createTestProject(t)
	writeFile(t, work, constants.RepoConfigFile, "tags: [local]\n")
	runGit(t, work, "add", constants.RepoConfigFile)
	runGit(t, work, "commit", "-m", "config")

	s := runChecks(t, work, createTestConfig(t, ""))
	require.Len(t, s.Items, 4)
	require.True(t, s.Passed())
}

func TestPreserves_DetachedHead(t *testing.T) {
	work := createTestProject(t)
	runGit(t, work, "checkout", "--detach")

	s := runChecks(t, work, createTestConfig(t, "tags: [branch]\n"))
	require.Equal(t, check.BoolResult(false), itemResult(t, s, "detached_head"))
	require.Equal(t, check.BoolResult(false), itemResult(t, s, "untracked_branch"))
}
