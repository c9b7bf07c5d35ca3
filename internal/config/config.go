package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charliek/git-preserves/internal/check"
	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/git"
	limitedio "github.com/charliek/git-preserves/internal/io"
	"github.com/charliek/git-preserves/internal/pathutil"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Every field is optional;
// zero values fall back to the defaults
type Config struct {
	// Git is the git executable to run
	Git string `yaml:"git,omitempty"`

	// Remote is passed to ls-remote; empty lets git choose
	Remote string `yaml:"remote,omitempty"`

	// Tags is the default check selection
	Tags []string `yaml:"tags,omitempty"`

	// Timeout bounds all git invocations of one run
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MaxOutputBytes caps the captured output of each invocation
	MaxOutputBytes int64 `yaml:"max_output_bytes,omitempty"`

	// Retries is how often ls-remote is retried on network errors; nil
	// means the default, zero disables retrying
	Retries *int `yaml:"retries,omitempty"`

	// configPath is the path this config was loaded from (not serialized)
	configPath string `yaml:"-"`
}

// Default returns a config with every default filled in
func Default() *Config {
	return &Config{
		Git:            constants.DefaultGitBinary,
		Timeout:        constants.DefaultTimeout,
		MaxOutputBytes: constants.DefaultMaxOutputBytes,
	}
}

// Load reads the global configuration from path, or from the env var or
// default location when path is empty. A missing file yields defaults
func Load(path string) (*Config, error) {
	path = ConfigPath(path)

	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWorkspace loads the global configuration and overlays the repo-local
// file at the root of the worktree, if there is one. The repo-local file
// may not set git
func LoadWorkspace(path, root string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return cfg, nil
	}

	local, err := pathutil.SecureJoin(root, constants.RepoConfigFile)
	if err != nil {
		return nil, err
	}
	overlay, err := readFile(local)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return cfg, nil
	}
	// the binary to execute is never taken from the repository
	if overlay.Git != "" {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "%s: git may only be set in the user config", local)
	}

	cfg.Merge(overlay)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", local, err)
	}
	return cfg, nil
}

// readFile parses one config file. It returns nil without error when the
// file does not exist
func readFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Errorf(domain.ErrInvalidConfig, "failed to read config: %v", err)
	}
	defer f.Close()

	data, err := limitedio.LimitedReadAll(f, constants.MaxConfigFileSize, "config file")
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "%v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "failed to parse config %s: %v", path, err)
	}
	return &cfg, nil
}

// Merge overrides c with every field set in o
func (c *Config) Merge(o *Config) {
	if o.Git != "" {
		c.Git = o.Git
	}
	if o.Remote != "" {
		c.Remote = o.Remote
	}
	if len(o.Tags) > 0 {
		c.Tags = slices.Clone(o.Tags)
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.MaxOutputBytes != 0 {
		c.MaxOutputBytes = o.MaxOutputBytes
	}
	if o.Retries != nil {
		n := *o.Retries
		c.Retries = &n
	}
}

// MaxRetries returns the configured retry count, or the default
func (c *Config) MaxRetries() int {
	if c.Retries == nil {
		return git.DefaultMaxRetries
	}
	return *c.Retries
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Git == "" {
		c.Git = d.Git
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxOutputBytes == 0 {
		c.MaxOutputBytes = d.MaxOutputBytes
	}
}

// Save writes the configuration to the specified path using atomic write
func (c *Config) Save(path string) error {
	path = ConfigPath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.Errorf(domain.ErrInvalidConfig, "failed to create config directory: %v", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return domain.Errorf(domain.ErrInvalidConfig, "failed to marshal config: %v", err)
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return domain.Errorf(domain.ErrInvalidConfig, "failed to write config: %v", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return domain.Errorf(domain.ErrInvalidConfig, "failed to save config: %v", err)
	}

	c.configPath = path
	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return domain.Errorf(domain.ErrInvalidConfig, "timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxOutputBytes <= 0 {
		return domain.Errorf(domain.ErrInvalidConfig, "max_output_bytes must be positive, got %d", c.MaxOutputBytes)
	}
	if c.Retries != nil && *c.Retries < 0 {
		return domain.Errorf(domain.ErrInvalidConfig, "retries must not be negative, got %d", *c.Retries)
	}
	// ls-remote would read it as an option
	if strings.HasPrefix(c.Remote, "-") {
		return domain.Errorf(domain.ErrInvalidConfig, "remote must not start with '-': %q", c.Remote)
	}
	return ValidateTags(c.Tags)
}

// ValidateTags rejects tags no registered check carries
func ValidateTags(tags []string) error {
	reg := check.Default()
	if unknown := reg.UnknownTags(tags); len(unknown) > 0 {
		return domain.Errorf(domain.ErrInvalidConfig, "unknown tag %q (known: %s)",
			unknown[0], strings.Join(reg.Tags(), ", "))
	}
	return nil
}

// Path returns the path this config was loaded from
func (c *Config) Path() string {
	return c.configPath
}

// getConfigPath returns the config path from env var or default
func getConfigPath() string {
	if path := os.Getenv(constants.ConfigEnvVar); path != "" {
		return path
	}
	return constants.DefaultConfigPath()
}

// Exists checks if a config file exists at the default or specified path
func Exists(path string) bool {
	_, err := os.Stat(ConfigPath(path))
	return err == nil
}

// ConfigPath returns the path that would be used for config
func ConfigPath(override string) string {
	if override != "" {
		return override
	}
	return getConfigPath()
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Git: %q, Remote: %q, Tags: %v, Timeout: %s, MaxOutputBytes: %d, Retries: %d}",
		c.Git, c.Remote, c.Tags, c.Timeout, c.MaxOutputBytes, c.MaxRetries())
}
