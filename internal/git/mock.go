package git

import (
	"context"
	"sync"

	"github.com/charliek/git-preserves/internal/domain"
)

// Compile-time assertion that FakeRunner implements Runner
var _ Runner = (*FakeRunner)(nil)

// FakeRunner implements Runner for testing. Canned output and errors are
// keyed by git subcommand ("status", "for-each-ref", "ls-remote")
type FakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

// NewFakeRunner creates a runner that knows no subcommands yet
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

// SetOutput makes subcommand succeed with out
func (f *FakeRunner) SetOutput(subcommand, out string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[subcommand] = out
	return f
}

// SetError makes subcommand fail with err
func (f *FakeRunner) SetError(subcommand string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[subcommand] = err
	return f
}

// Run implements Runner.Run
func (f *FakeRunner) Run(ctx context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string(nil), args...))
	if len(args) == 0 {
		return "", domain.Errorf(domain.ErrInvalidArgs, "no git subcommand given")
	}
	if err := ctx.Err(); err != nil {
		return "", domain.Errorf(domain.ErrExecFailed, "git %s: %v", args[0], err)
	}
	if err, ok := f.errs[args[0]]; ok {
		return "", err
	}
	out, ok := f.outputs[args[0]]
	if !ok {
		return "", domain.Errorf(domain.ErrExecFailed, "git %s: not configured", args[0])
	}
	return out, nil
}

// Calls returns every argument list Run received, in order
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Called reports whether subcommand was run at least once
func (f *FakeRunner) Called(subcommand string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if len(c) > 0 && c[0] == subcommand {
			return true
		}
	}
	return false
}
