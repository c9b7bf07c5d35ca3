package domain

// RepoInfo identifies a repository by its preferred remote
type RepoInfo struct {
	// Owner is the repository owner (user or organization)
	Owner string `json:"owner"`
	// Name is the repository name
	Name string `json:"name"`
	// RemoteURL is the full remote URL
	RemoteURL string `json:"remote_url,omitempty"`
}

// String returns the owner/name format
func (r RepoInfo) String() string {
	return r.Owner + "/" + r.Name
}

// Workspace describes the working copy being inspected
type Workspace struct {
	// Root is the absolute path of the worktree root
	Root string `json:"root"`
	// Remotes lists the configured remote names
	Remotes []string `json:"remotes,omitempty"`
}

// HasRemotes reports whether any remote is configured
func (w Workspace) HasRemotes() bool {
	return len(w.Remotes) > 0
}
