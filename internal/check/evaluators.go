package check

import (
	"fmt"

	"github.com/charliek/git-preserves/internal/git"
)

// countLines counts status lines matching pred
func countLines(d Dataset, pred func(git.StatusLine) bool) uint64 {
	var n uint64
	for _, line := range d.Status.Lines {
		if pred(line) {
			n++
		}
	}
	return n
}

func untrackedFiles(d Dataset) CheckResult {
	return CountResult(countLines(d, func(line git.StatusLine) bool {
		switch line.(type) {
		case git.UntrackedLine:
			return true
		case git.OrdinaryLine, git.RenameCopyLine, git.UnmergedLine, git.IgnoredLine:
			return false
		default:
			panic(fmt.Sprintf("check: unhandled status line %T", line))
		}
	}))
}

func modifiedFiles(d Dataset) CheckResult {
	return CountResult(countLines(d, func(line git.StatusLine) bool {
		pair, ok := git.Changes(line)
		return ok && pair.Unstaged != git.Unmodified
	}))
}

func uncommittedChanges(d Dataset) CheckResult {
	return CountResult(countLines(d, func(line git.StatusLine) bool {
		pair, ok := git.Changes(line)
		return ok && pair.Staged != git.Unmodified
	}))
}

func detachedHead(d Dataset) CheckResult {
	b := d.Status.Branch
	return BoolResult(b != nil && !b.Head.Detached)
}

func untrackedBranch(d Dataset) CheckResult {
	b := d.Status.Branch
	return BoolResult(b != nil && b.Upstream != nil)
}

// Unknown counts are reported as Bad(1), never as Passed
func remoteChanges(d Dataset) CheckResult {
	b := d.Status.Branch
	if b == nil || b.Commits == nil {
		return CountResult(1)
	}
	return CountResult(b.Commits.Behind)
}

func unpushedCommit(d Dataset) CheckResult {
	b := d.Status.Branch
	if b == nil || b.Commits == nil {
		return CountResult(1)
	}
	return CountResult(b.Commits.Ahead)
}

// HeadTag returns the first annotated tag, in listing order, whose peeled
// target is the commit HEAD points at
func HeadTag(d Dataset) (git.RefRecord, bool) {
	if d.Status.Branch == nil {
		return git.RefRecord{}, false
	}
	commit, ok := d.Status.Branch.Oid.CommitName()
	if !ok {
		return git.RefRecord{}, false
	}
	for _, ref := range d.Refs {
		if ref.PeelsTo(commit) {
			return ref, true
		}
	}
	return git.RefRecord{}, false
}

func untaggedCommit(d Dataset) CheckResult {
	_, ok := HeadTag(d)
	return BoolResult(ok)
}

func unpushedTag(d Dataset) CheckResult {
	if !d.Fetched.Includes(RefData | RemoteData) {
		return BoolResult(false)
	}
	tag, ok := HeadTag(d)
	if !ok {
		return BoolResult(false)
	}
	for _, pair := range d.Remotes {
		if pair.Path == tag.LocalRef {
			return BoolResult(true)
		}
	}
	return BoolResult(false)
}
