package project

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/charliek/git-preserves/internal/domain"
	"github.com/go-git/go-git/v5"
)

// PreferredRemote is used for RepoInfo when it is configured
const PreferredRemote = "origin"

// Discovery locates the worktree that contains a directory
type Discovery struct {
	root string
	repo *git.Repository
}

// NewDiscovery opens the repository enclosing startPath, or the working
// directory when startPath is empty
func NewDiscovery(startPath string) (*Discovery, error) {
	if startPath == "" {
		var err error
		startPath, err = os.Getwd()
		if err != nil {
			return nil, domain.Errorf(domain.ErrNotInRepo, "failed to get working directory: %v", err)
		}
	}

	abs, err := filepath.Abs(startPath)
	if err != nil {
		return nil, domain.Errorf(domain.ErrNotInRepo, "invalid path: %v", err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.Errorf(domain.ErrNotInRepo, "%s", abs)
		}
		return nil, domain.Errorf(domain.ErrNotInRepo, "failed to open repository at %s: %v", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have nothing to preserve
		return nil, domain.Errorf(domain.ErrNotInRepo, "%s has no worktree: %v", abs, err)
	}

	return &Discovery{root: wt.Filesystem.Root(), repo: repo}, nil
}

// Root returns the worktree root directory
func (d *Discovery) Root() string {
	return d.root
}

// Remotes returns the configured remote names, sorted
func (d *Discovery) Remotes() ([]string, error) {
	remotes, err := d.repo.Remotes()
	if err != nil {
		return nil, domain.Errorf(domain.ErrNotInRepo, "failed to get remotes: %v", err)
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// Workspace describes the discovered worktree
func (d *Discovery) Workspace() (domain.Workspace, error) {
	remotes, err := d.Remotes()
	if err != nil {
		return domain.Workspace{}, err
	}
	return domain.Workspace{Root: d.root, Remotes: remotes}, nil
}

// RepoInfo identifies the repository by its preferred remote: name when it
// is configured, then origin, then the first remote in name order
func (d *Discovery) RepoInfo(name string) (*domain.RepoInfo, error) {
	remotes, err := d.Remotes()
	if err != nil {
		return nil, err
	}
	if len(remotes) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "no remotes configured")
	}

	chosen := remotes[0]
	for _, candidate := range []string{PreferredRemote, name} {
		for _, r := range remotes {
			if candidate != "" && r == candidate {
				chosen = r
			}
		}
	}

	remote, err := d.repo.Remote(chosen)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "remote %s: %v", chosen, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "remote %s has no URL", chosen)
	}
	return ParseRemoteURL(urls[0])
}
