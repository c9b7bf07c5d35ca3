package git

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/charliek/git-preserves/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultMaxRetries is the default number of retry attempts
	DefaultMaxRetries = 2
	// DefaultInitialBackoff is the initial backoff duration
	DefaultInitialBackoff = 500 * time.Millisecond
	// DefaultMaxBackoff is the maximum backoff duration
	DefaultMaxBackoff = 5 * time.Second
)

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
	}
}

// networkSubcommands talk to a remote; only they are retried
var networkSubcommands = map[string]bool{
	"ls-remote": true,
}

// transientMessages are stderr fragments git prints for failures that
// may succeed on a second attempt
var transientMessages = []string{
	"could not resolve host",
	"connection timed out",
	"connection reset",
	"operation timed out",
	"the remote end hung up unexpectedly",
	"early eof",
	"temporary failure in name resolution",
	"http 429",
	"http 502",
	"http 503",
	"http 504",
}

// isRetryableError determines if an error is transient and worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if !errors.Is(err, domain.ErrExecFailed) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// calculateBackoff calculates the backoff duration for a given attempt
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	backoff := time.Duration(float64(cfg.InitialBackoff) * math.Pow(2, float64(attempt)))
	if backoff > cfg.MaxBackoff {
		backoff = cfg.MaxBackoff
	}
	return backoff
}

// WithRetry calls fn until it succeeds, fails with a non-transient error,
// or cfg.MaxRetries retries have been made
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableError(err) || attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return zero, domain.Errorf(domain.ErrExecFailed, "%v (after %v)", ctx.Err(), err)
		case <-time.After(calculateBackoff(attempt, cfg)):
		}
	}

	return zero, lastErr
}

// Compile-time assertion that RetryingRunner implements Runner
var _ Runner = (*RetryingRunner)(nil)

// RetryingRunner retries network subcommands of an inner Runner on
// transient failures. Local subcommands run once
type RetryingRunner struct {
	inner  Runner
	cfg    RetryConfig
	logger *zap.Logger
}

// NewRetryingRunner wraps inner with retry logic
func NewRetryingRunner(inner Runner, cfg RetryConfig, logger *zap.Logger) *RetryingRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingRunner{inner: inner, cfg: cfg, logger: logger}
}

// Run implements Runner.Run
func (r *RetryingRunner) Run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 || !networkSubcommands[args[0]] {
		return r.inner.Run(ctx, args...)
	}

	attempt := 0
	return WithRetry(ctx, r.cfg, func() (string, error) {
		if attempt > 0 {
			r.logger.Debug("retrying git", zap.Strings("args", args), zap.Int("attempt", attempt))
		}
		attempt++
		return r.inner.Run(ctx, args...)
	})
}
