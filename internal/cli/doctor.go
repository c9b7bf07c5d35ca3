package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charliek/git-preserves/internal/config"
	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/git"
	"github.com/charliek/git-preserves/internal/project"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify configuration and that git output can be read",
	Long: `Verify that git-preserves can inspect the current workspace.

This command checks:
- Configuration files are valid
- The git binary can be run
- The current directory is inside a git worktree
- Each git source runs and its output parses`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// doctorSource is one git invocation doctor exercises
type doctorSource struct {
	label string
	opts  git.FetchOptions
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := GetOutput()
	log := GetLogger()
	allOK := true

	out.Println("Checking git-preserves setup...")
	out.Println()

	configPath := config.ConfigPath(cfgFile)
	cfg, err := config.Load(configPath)
	if err != nil {
		out.Check("config "+configPath, err)
		return err
	}
	if config.Exists(configPath) {
		out.Check("config "+configPath, nil)
	} else {
		out.Status("  config", "none (using defaults)")
	}

	ctx, cancel := signalContext(cfg.Timeout)
	defer cancel()

	gitVersion, err := gitBinaryVersion(ctx, cfg.Git)
	out.Check("git binary "+cfg.Git, err)
	if err != nil {
		return err
	}
	out.Verbose("  %s", gitVersion)

	discovery, err := project.NewDiscovery(dir)
	out.Check("git worktree", err)
	if err != nil {
		return err
	}
	out.Verbose("  %s", discovery.Root())

	cfg, err = config.LoadWorkspace(configPath, discovery.Root())
	out.Check(constants.RepoConfigFile, err)
	if err != nil {
		return err
	}

	ws, err := discovery.Workspace()
	if err != nil {
		return err
	}
	if !ws.HasRemotes() {
		out.Warn("no remotes configured; remote and tag checks will fail")
	} else if info, err := discovery.RepoInfo(cfg.Remote); err == nil {
		out.Verbose("  remote %s", info.String())
	}

	runner := git.NewCLIRunner(cfg.Git, discovery.Root(), cfg.MaxOutputBytes, log)
	out.Verbose("  running %s in %s", runner.Binary(), runner.Dir())
	sources := []doctorSource{
		{"status source", git.FetchOptions{Status: true}},
		{"refs source", git.FetchOptions{Refs: true}},
		{"remote source", git.FetchOptions{Remote: true, RemoteName: cfg.Remote}},
	}
	for _, src := range sources {
		_, err := git.Fetch(ctx, runner, src.opts)
		out.Check(src.label, err)
		if err != nil {
			allOK = false
		}
	}

	out.Println()
	if !allOK {
		return domain.Errorf(domain.ErrExecFailed, "some checks failed")
	}
	out.Println("All checks passed!")
	return nil
}

// gitBinaryVersion runs `git --version`
func gitBinaryVersion(ctx context.Context, binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", domain.Errorf(domain.ErrExecFailed, "%s not found: %v", binary, err)
	}
	b, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", domain.Errorf(domain.ErrExecFailed, "%s --version: %v", binary, err)
	}
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(string(b)), path), nil
}
