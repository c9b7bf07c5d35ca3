package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
	limitedio "github.com/charliek/git-preserves/internal/io"
	"go.uber.org/zap"
)

// waitDelay bounds how long Run waits for inherited stderr to close once
// the context is done
const waitDelay = 2 * time.Second

// Compile-time assertion that CLIRunner implements Runner
var _ Runner = (*CLIRunner)(nil)

// Runner runs git subcommands inside one workspace
type Runner interface {
	// Run executes git with args and returns its standard output
	Run(ctx context.Context, args ...string) (string, error)
}

// CLIRunner implements Runner by spawning the git binary
type CLIRunner struct {
	binary   string
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewCLIRunner creates a runner for the workspace at dir. Zero values
// select the default binary and output cap
func NewCLIRunner(binary, dir string, maxBytes int64, logger *zap.Logger) *CLIRunner {
	if binary == "" {
		binary = constants.DefaultGitBinary
	}
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxOutputBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIRunner{binary: binary, dir: dir, maxBytes: maxBytes, logger: logger}
}

// Run implements Runner.Run
func (r *CLIRunner) Run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", domain.Errorf(domain.ErrInvalidArgs, "no git subcommand given")
	}
	name := "git " + args[0]

	cmd := exec.CommandContext(ctx, r.binary, append([]string{"-C", r.dir}, args...)...)
	// Status must not refresh the index behind the user's back
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	// ssh spawned by ls-remote may outlive git and hold stderr open
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", domain.Errorf(domain.ErrExecFailed, "%s: %v", name, err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return "", domain.Errorf(domain.ErrExecFailed, "%s: %v", name, err)
	}

	text, readErr := limitedio.ReadText(stdout, r.maxBytes, name+" output")
	if errors.Is(readErr, domain.ErrOutputTooLarge) {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	r.logger.Debug("git finished",
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(text)),
		zap.NamedError("wait", waitErr))

	if waitErr != nil && !errors.Is(readErr, domain.ErrOutputTooLarge) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", domain.Errorf(domain.ErrExecFailed, "%s: %v", name, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", domain.Errorf(domain.ErrExecFailed, "%s: %v", name, waitErr)
		}
		return "", domain.Errorf(domain.ErrExecFailed, "%s: %v: %s", name, waitErr, msg)
	}
	if readErr != nil {
		return "", readErr
	}
	return text, nil
}

// Dir returns the workspace directory git runs in
func (r *CLIRunner) Dir() string {
	return r.dir
}

// Binary returns the git executable this runner spawns
func (r *CLIRunner) Binary() string {
	return r.binary
}
