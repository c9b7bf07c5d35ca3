package constants

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the command name
	AppName = "git-preserves"

	// ConfigFileName is the default config file name
	ConfigFileName = "config.yaml"

	// ConfigDir is the directory name for git-preserves configuration under the user config dir
	ConfigDir = "git-preserves"

	// RepoConfigFile is the repo-local config file at the worktree root
	RepoConfigFile = ".git-preserves.yaml"

	// ConfigEnvVar is the environment variable to override config path
	ConfigEnvVar = "GIT_PRESERVES_CONFIG"

	// DefaultGitBinary is the git executable looked up on PATH
	DefaultGitBinary = "git"

	// DefaultTimeout bounds all git invocations of one run
	DefaultTimeout = 30 * time.Second

	// DefaultMaxOutputBytes caps captured git output (16 MB)
	DefaultMaxOutputBytes = 16 * 1024 * 1024

	// MaxConfigFileSize is the maximum size of a config file (64 KB)
	MaxConfigFileSize = 64 * 1024

	// ObjectNameLength is the number of hex characters in a SHA-1 object id
	ObjectNameLength = 40

	// ShortHashLength is the number of characters in a short commit hash
	ShortHashLength = 7
)

// Exit codes. Values 1-7 are reserved for the check failure bitmask
const (
	ExitSuccess        = 0
	ExitInvalidArgs    = 64
	ExitNotInRepo      = 65
	ExitInvalidConfig  = 66
	ExitExecFailed     = 67
	ExitEncodingFailed = 68
	ExitStatusParse    = 69
	ExitRefsParse      = 70
	ExitRemoteParse    = 71
	ExitUnknownError   = 99
)

// DefaultConfigDir returns the default configuration directory path
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, ConfigDir)
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}
