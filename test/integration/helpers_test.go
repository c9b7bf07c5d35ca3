//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// runGit runs git in dir with a fixed identity and returns trimmed stdout
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Tester",
		"GIT_AUTHOR_EMAIL=tester@example.com",
		"GIT_COMMITTER_NAME=Tester",
		"GIT_COMMITTER_EMAIL=tester@example.com",
		"GIT_CONFIG_NOSYSTEM=1",
		"HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// createTestProject creates a worktree on branch main with one commit,
// pushed to a bare origin that it tracks
func createTestProject(t *testing.T) string {
	t.Helper()
	requireGit(t)

	base := t.TempDir()
	remote := filepath.Join(base, "origin.git")
	work := filepath.Join(base, "work")
	require.NoError(t, os.MkdirAll(work, 0755))

	runGit(t, base, "init", "--bare", remote)
	runGit(t, work, "init")
	runGit(t, work, "symbolic-ref", "HEAD", "refs/heads/main")
	runGit(t, work, "config", "commit.gpgsign", "false")
	runGit(t, work, "config", "tag.gpgsign", "false")

	writeFile(t, work, "README.md", "hello\n")
	runGit(t, work, "add", "README.md")
	runGit(t, work, "commit", "-m", "initial")
	runGit(t, work, "remote", "add", "origin", remote)
	runGit(t, work, "push", "-u", "origin", "main")

	return work
}

// createTestConfig writes a global config file and returns its path
func createTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
