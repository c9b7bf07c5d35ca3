package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/git"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        *Config
		errContains string
	}{
		{
			name: "full config",
			content: `git: /usr/local/bin/git
remote: upstream
tags: [local, tag]
timeout: 5s
max_output_bytes: 1024
`,
			want: &Config{
				Git:            "/usr/local/bin/git",
				Remote:         "upstream",
				Tags:           []string{"local", "tag"},
				Timeout:        5 * time.Second,
				MaxOutputBytes: 1024,
			},
		},
		{
			name:    "empty file uses defaults",
			content: ``,
			want:    Default(),
		},
		{
			name:    "partial config",
			content: `remote: origin`,
			want: &Config{
				Git:            constants.DefaultGitBinary,
				Remote:         "origin",
				Timeout:        constants.DefaultTimeout,
				MaxOutputBytes: constants.DefaultMaxOutputBytes,
			},
		},
		{
			name:        "unknown tag",
			content:     `tags: [local, bogus]`,
			errContains: `unknown tag "bogus"`,
		},
		{
			name:        "negative timeout",
			content:     `timeout: -1s`,
			errContains: "timeout must be positive",
		},
		{
			name:        "negative output cap",
			content:     `max_output_bytes: -5`,
			errContains: "max_output_bytes must be positive",
		},
		{
			name:        "negative retries",
			content:     `retries: -1`,
			errContains: "retries must not be negative",
		},
		{
			name:        "remote looks like a flag",
			content:     `remote: --upload-pack=evil`,
			errContains: "must not start with '-'",
		},
		{
			name:        "invalid yaml",
			content:     `tags: [invalid`,
			errContains: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.content)

			cfg, err := Load(path)
			if tt.errContains != "" {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrInvalidConfig)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.want.configPath = path
			require.Equal(t, tt.want, cfg)
		})
	}
}

func TestConfig_Load_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, constants.DefaultGitBinary, cfg.Git)
	require.Equal(t, path, cfg.Path())
}

func TestConfig_Load_TooLarge(t *testing.T) {
	content := "remote: origin\n" + strings.Repeat("#", constants.MaxConfigFileSize)
	path := writeConfig(t, t.TempDir(), "config.yaml", content)

	_, err := Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadWorkspace(t *testing.T) {
	globalDir := t.TempDir()
	global := writeConfig(t, globalDir, "config.yaml", "remote: origin\ntags: [local]\ntimeout: 10s\n")

	t.Run("repo file overrides global", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, constants.RepoConfigFile, "tags: [tag]\n")

		cfg, err := LoadWorkspace(global, root)
		require.NoError(t, err)
		require.Equal(t, "origin", cfg.Remote)
		require.Equal(t, []string{"tag"}, cfg.Tags)
		require.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("no repo file", func(t *testing.T) {
		cfg, err := LoadWorkspace(global, t.TempDir())
		require.NoError(t, err)
		require.Equal(t, []string{"local"}, cfg.Tags)
	})

	t.Run("no root", func(t *testing.T) {
		cfg, err := LoadWorkspace(global, "")
		require.NoError(t, err)
		require.Equal(t, "origin", cfg.Remote)
	})

	t.Run("invalid repo file", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, constants.RepoConfigFile, "tags: [nope]\n")

		_, err := LoadWorkspace(global, root)
		require.ErrorIs(t, err, domain.ErrInvalidConfig)
		require.Contains(t, err.Error(), constants.RepoConfigFile)
	})

	t.Run("repo file cannot set git binary", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, constants.RepoConfigFile, "git: ./payload.sh\ntags: [tag]\n")

		cfg, err := LoadWorkspace(global, root)
		require.ErrorIs(t, err, domain.ErrInvalidConfig)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "git may only be set in the user config")
	})
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.yaml")

	cfg := Default()
	cfg.Remote = "upstream"
	cfg.Tags = []string{"remote"}

	require.NoError(t, cfg.Save(path))
	require.Equal(t, path, cfg.Path())

	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestConfig_Merge(t *testing.T) {
	cfg := Default()
	cfg.Merge(&Config{Remote: "fork"})
	require.Equal(t, "fork", cfg.Remote)
	require.Equal(t, constants.DefaultGitBinary, cfg.Git)
	require.Equal(t, constants.DefaultTimeout, cfg.Timeout)
}

func TestConfig_MaxRetries(t *testing.T) {
	cfg := Default()
	require.Equal(t, git.DefaultMaxRetries, cfg.MaxRetries())

	zero := 0
	cfg.Merge(&Config{Retries: &zero})
	require.Equal(t, 0, cfg.MaxRetries())

	path := writeConfig(t, t.TempDir(), "config.yaml", "retries: 5\n")
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, loaded.MaxRetries())
}

func TestConfigPath(t *testing.T) {
	require.Equal(t, "/custom/path", ConfigPath("/custom/path"))

	t.Setenv(constants.ConfigEnvVar, "/env/path")
	require.Equal(t, "/env/path", ConfigPath(""))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	require.False(t, Exists(filepath.Join(dir, "config.yaml")))
	path := writeConfig(t, dir, "config.yaml", "")
	require.True(t, Exists(path))
}
