package check

import (
	"strings"

	"github.com/charliek/git-preserves/internal/git"
)

// RequirementGroup is a set of the data sources a check reads. Each
// source is one bit
type RequirementGroup uint8

const (
	// StatusData is `git status` output
	StatusData RequirementGroup = 1 << iota
	// RefData is `git for-each-ref` output
	RefData
	// RemoteData is `git ls-remote` output
	RemoteData

	// NoData is the empty group
	NoData RequirementGroup = 0
	// AllData names every source
	AllData = StatusData | RefData | RemoteData
)

var groupNames = []struct {
	group RequirementGroup
	name  string
}{
	{StatusData, "status"},
	{RefData, "refs"},
	{RemoteData, "remote"},
}

// Union returns the group holding every source in g or any of others
func (g RequirementGroup) Union(others ...RequirementGroup) RequirementGroup {
	for _, o := range others {
		g |= o
	}
	return g
}

// Includes reports whether every source in o is also in g
func (g RequirementGroup) Includes(o RequirementGroup) bool {
	return g&o == o
}

func (g RequirementGroup) String() string {
	if g == NoData {
		return "none"
	}
	var names []string
	for _, n := range groupNames {
		if g.Includes(n.group) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// MarshalText renders the group the way String does
func (g RequirementGroup) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// FetchOptions converts the group to the sources git.Fetch should run
func (g RequirementGroup) FetchOptions(remote string) git.FetchOptions {
	return git.FetchOptions{
		Status:     g.Includes(StatusData),
		Refs:       g.Includes(RefData),
		Remote:     g.Includes(RemoteData),
		RemoteName: remote,
	}
}
