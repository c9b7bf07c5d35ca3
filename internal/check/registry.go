package check

import (
	"slices"
	"sort"

	"github.com/charliek/git-preserves/internal/git"
)

// Dataset is everything checks evaluate over. Sources that were not
// fetched hold their zero value; Fetched records which ones were
type Dataset struct {
	Status  git.StatusReport
	Refs    []git.RefRecord
	Remotes []git.RemoteRefPair
	Fetched RequirementGroup
}

// NewDataset wraps a listing with the group it was fetched for
func NewDataset(l git.Listing, fetched RequirementGroup) Dataset {
	return Dataset{Status: l.Status, Refs: l.Refs, Remotes: l.Remotes, Fetched: fetched}
}

// Check is one static rule of the registry. Threshold is reserved; every
// shipped check uses zero
type Check struct {
	Name      string                    `json:"name"`
	Label     string                    `json:"label"`
	Tags      []string                  `json:"tags"`
	Glyph     string                    `json:"glyph"`
	Group     StatusGroup               `json:"group"`
	Requires  RequirementGroup          `json:"requires"`
	Threshold uint64                    `json:"threshold"`
	Eval      func(Dataset) CheckResult `json:"-"`
}

// HasAnyTag reports whether c carries at least one of tags
func (c Check) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(c.Tags, t) {
			return true
		}
	}
	return false
}

// Registry is an ordered, immutable list of checks
type Registry struct {
	checks []Check
}

// NewRegistry builds a registry that keeps checks in the given order
func NewRegistry(checks ...Check) *Registry {
	return &Registry{checks: slices.Clone(checks)}
}

// All returns every check in registry order
func (r *Registry) All() []Check {
	return slices.Clone(r.checks)
}

// Select returns the checks carrying any of tags, in registry order. No
// tags selects everything
func (r *Registry) Select(tags []string) []Check {
	if len(tags) == 0 {
		return r.All()
	}
	var out []Check
	for _, c := range r.checks {
		if c.HasAnyTag(tags) {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds a check by name
func (r *Registry) Lookup(name string) (Check, bool) {
	for _, c := range r.checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Tags lists every tag used by the registry, sorted
func (r *Registry) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, c := range r.checks {
		for _, t := range c.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// UnknownTags returns the entries of tags that no check carries
func (r *Registry) UnknownTags(tags []string) []string {
	known := r.Tags()
	var unknown []string
	for _, t := range tags {
		if !slices.Contains(known, t) {
			unknown = append(unknown, t)
		}
	}
	return unknown
}

// Requirements folds the sources needed by checks into one group
func Requirements(checks []Check) RequirementGroup {
	g := NoData
	for _, c := range checks {
		g = g.Union(c.Requires)
	}
	return g
}

// Tags used by the default registry
const (
	TagLocal  = "local"
	TagRemote = "remote"
	TagFiles  = "files"
	TagBranch = "branch"
	TagMerge  = "merge"
	TagPush   = "push"
	TagTag    = "tag"
)

var defaultRegistry = NewRegistry(
	Check{
		Name:     "untracked_files",
		Label:    "no untracked files",
		Tags:     []string{TagLocal, TagFiles},
		Glyph:    "?",
		Group:    GroupLocal,
		Requires: StatusData,
		Eval:     untrackedFiles,
	},
	Check{
		Name:     "modified_files",
		Label:    "no unstaged changes",
		Tags:     []string{TagLocal, TagFiles},
		Glyph:    "M",
		Group:    GroupLocal,
		Requires: StatusData,
		Eval:     modifiedFiles,
	},
	Check{
		Name:     "uncommitted_changes",
		Label:    "no uncommitted changes",
		Tags:     []string{TagLocal, TagFiles},
		Glyph:    "+",
		Group:    GroupLocal,
		Requires: StatusData,
		Eval:     uncommittedChanges,
	},
	Check{
		Name:     "detached_head",
		Label:    "commit tracked by local ref",
		Tags:     []string{TagLocal, TagBranch},
		Glyph:    "@",
		Group:    GroupLocal,
		Requires: StatusData,
		Eval:     detachedHead,
	},
	Check{
		Name:     "untracked_branch",
		Label:    "branch tracks remote",
		Tags:     []string{TagRemote, TagBranch},
		Glyph:    "T",
		Group:    GroupRemote,
		Requires: StatusData,
		Eval:     untrackedBranch,
	},
	Check{
		Name:     "remote_changes",
		Label:    "all commits merged from remote",
		Tags:     []string{TagRemote, TagMerge},
		Glyph:    "↓",
		Group:    GroupRemote,
		Requires: StatusData,
		Eval:     remoteChanges,
	},
	Check{
		Name:     "unpushed_commit",
		Label:    "all commits pushed to remote",
		Tags:     []string{TagRemote, TagPush},
		Glyph:    "↑",
		Group:    GroupRemote,
		Requires: StatusData,
		Eval:     unpushedCommit,
	},
	Check{
		Name:     "untagged_commit",
		Label:    "current commit is tagged",
		Tags:     []string{TagTag},
		Glyph:    "#",
		Group:    GroupTag,
		Requires: StatusData | RefData,
		Eval:     untaggedCommit,
	},
	Check{
		Name:     "unpushed_tag",
		Label:    "tag pushed to remote",
		Tags:     []string{TagTag, TagRemote, TagPush},
		Glyph:    "⇡",
		Group:    GroupTag,
		Requires: StatusData | RefData | RemoteData,
		Eval:     unpushedTag,
	},
)

// Default returns the built-in registry
func Default() *Registry {
	return defaultRegistry
}
