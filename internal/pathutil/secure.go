package pathutil

import (
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/charliek/git-preserves/internal/domain"
)

// SecureJoin joins a worktree root with a relative path. Absolute paths and
// paths that climb out of baseDir are rejected, and symlinks are resolved
// inside baseDir
func SecureJoin(baseDir, relativePath string) (string, error) {
	cleaned := filepath.Clean(relativePath)

	if filepath.IsAbs(cleaned) {
		return "", domain.Errorf(domain.ErrInvalidArgs, "absolute path not allowed: %q", relativePath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", domain.Errorf(domain.ErrInvalidArgs, "path escapes %s: %q", baseDir, relativePath)
	}

	safePath, err := securejoin.SecureJoin(baseDir, cleaned)
	if err != nil {
		return "", domain.Errorf(domain.ErrInvalidArgs, "invalid path %q: %v", relativePath, err)
	}

	// /home/user must not match /home/user2
	if safePath != baseDir && !strings.HasPrefix(safePath, baseDir+string(filepath.Separator)) {
		return "", domain.Errorf(domain.ErrInvalidArgs, "path escapes %s: %q", baseDir, relativePath)
	}
	return safePath, nil
}
