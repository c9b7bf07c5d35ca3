package git

import (
	"context"

	"github.com/charliek/git-preserves/internal/domain"
	"golang.org/x/sync/errgroup"
)

// FetchOptions selects the sources Fetch runs
type FetchOptions struct {
	Status bool
	Refs   bool
	Remote bool
	// RemoteName is passed to ls-remote; empty lets git pick the default remote
	RemoteName string
}

// Listing holds the parsed output of every requested source. Sources that
// were not requested keep their zero value
type Listing struct {
	Status  StatusReport    `json:"status"`
	Refs    []RefRecord     `json:"refs"`
	Remotes []RemoteRefPair `json:"remotes"`
}

// StatusArgs is the status invocation ParseStatus expects
func StatusArgs() []string {
	return []string{"status", "--branch", "--porcelain=v2"}
}

// RefsArgs is the for-each-ref invocation ParseRefs expects
func RefsArgs() []string {
	return []string{"for-each-ref", "--shell", "--format", RefFormat}
}

// RemoteArgs is the ls-remote invocation ParseRemoteRefs expects
func RemoteArgs(remote string) []string {
	if remote == "" {
		return []string{"ls-remote"}
	}
	return []string{"ls-remote", remote}
}

// Fetch runs the selected git invocations concurrently and parses their
// output. The first failure cancels the rest; nothing is returned unless
// every requested source ran and parsed. Errors carry their source as a
// *domain.SourceError
func Fetch(ctx context.Context, runner Runner, opts FetchOptions) (Listing, error) {
	var listing Listing
	g, ctx := errgroup.WithContext(ctx)

	if opts.Status {
		g.Go(func() error {
			out, err := runner.Run(ctx, StatusArgs()...)
			if err != nil {
				return domain.NewSourceError(domain.SourceStatus, err)
			}
			report, err := ParseStatus(out)
			if err != nil {
				return domain.NewSourceError(domain.SourceStatus, err)
			}
			listing.Status = report
			return nil
		})
	}

	if opts.Refs {
		g.Go(func() error {
			out, err := runner.Run(ctx, RefsArgs()...)
			if err != nil {
				return domain.NewSourceError(domain.SourceRefs, err)
			}
			refs, err := ParseRefs(out)
			if err != nil {
				return domain.NewSourceError(domain.SourceRefs, err)
			}
			listing.Refs = refs
			return nil
		})
	}

	if opts.Remote {
		g.Go(func() error {
			out, err := runner.Run(ctx, RemoteArgs(opts.RemoteName)...)
			if err != nil {
				return domain.NewSourceError(domain.SourceRemote, err)
			}
			pairs, err := ParseRemoteRefs(out)
			if err != nil {
				return domain.NewSourceError(domain.SourceRemote, err)
			}
			listing.Remotes = pairs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Listing{}, err
	}
	return listing, nil
}
