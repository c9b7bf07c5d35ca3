package cli

import (
	"strings"

	"github.com/charliek/git-preserves/internal/config"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/git"
	"github.com/charliek/git-preserves/internal/project"
	"go.uber.org/zap"
)

// WorkspaceContext holds the components needed to inspect one worktree
type WorkspaceContext struct {
	Config    *config.Config
	Discovery *project.Discovery
	Runner    git.Runner
}

// NewWorkspaceContext discovers the worktree enclosing startDir, loads its
// configuration and builds a git runner rooted there
func NewWorkspaceContext(startDir, cfgPath string, logger *zap.Logger) (*WorkspaceContext, error) {
	discovery, err := project.NewDiscovery(startDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWorkspace(cfgPath, discovery.Root())
	if err != nil {
		return nil, err
	}
	logger.Debug("workspace loaded",
		zap.String("root", discovery.Root()),
		zap.String("config", cfg.Path()),
		zap.Stringer("settings", cfg))

	retry := git.DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries()
	runner := git.NewRetryingRunner(
		git.NewCLIRunner(cfg.Git, discovery.Root(), cfg.MaxOutputBytes, logger),
		retry, logger)
	return &WorkspaceContext{Config: cfg, Discovery: discovery, Runner: runner}, nil
}

// resolveRemote prefers the flag value over the configured remote. Names
// that git would parse as options are rejected
func resolveRemote(flagValue, configured string) (string, error) {
	if flagValue == "" {
		return configured, nil
	}
	if strings.HasPrefix(flagValue, "-") {
		return "", domain.Errorf(domain.ErrInvalidArgs, "remote must not start with '-': %q", flagValue)
	}
	return flagValue, nil
}
