package project

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/charliek/git-preserves/internal/domain"
)

var (
	// scp-like syntax: [user@]host:owner/repo[.git]
	scpPattern = regexp.MustCompile(`^(?:[^@/]+@)?([^:/]+):([^/]+)/(.+?)(?:\.git)?/?$`)
)

// ParseRemoteURL extracts owner/name from a remote URL. Both URL and
// scp-like remotes are accepted; local paths are not
func ParseRemoteURL(remoteURL string) (*domain.RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)

	if !strings.Contains(remoteURL, "://") {
		if m := scpPattern.FindStringSubmatch(remoteURL); m != nil {
			return &domain.RepoInfo{Owner: m[2], Name: m[3], RemoteURL: remoteURL}, nil
		}
		return nil, domain.Errorf(domain.ErrInvalidArgs, "unrecognized remote URL: %s", remoteURL)
	}

	u, err := url.Parse(remoteURL)
	if err != nil || u.Host == "" {
		return nil, domain.Errorf(domain.ErrInvalidArgs, "unrecognized remote URL: %s", remoteURL)
	}
	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" {
		return nil, domain.Errorf(domain.ErrInvalidArgs, "remote URL has no owner/name: %s", remoteURL)
	}
	return &domain.RepoInfo{Owner: owner, Name: name, RemoteURL: remoteURL}, nil
}
