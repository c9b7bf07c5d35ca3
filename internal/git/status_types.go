package git

import (
	"encoding/json"
	"fmt"
)

// LineStatus is one half of the XY status field of a porcelain v2 entry
type LineStatus int

const (
	Unmodified LineStatus = iota
	Modified
	Added
	Deleted
	Renamed
	Copied
	Unmerged
	Untracked
	Ignored
)

var lineStatusCodes = map[byte]LineStatus{
	'.': Unmodified,
	'M': Modified,
	'A': Added,
	'D': Deleted,
	'R': Renamed,
	'C': Copied,
	'U': Unmerged,
	'?': Untracked,
	'!': Ignored,
}

func (s LineStatus) String() string {
	switch s {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	case Unmerged:
		return "unmerged"
	case Untracked:
		return "untracked"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("linestatus(%d)", int(s))
	}
}

func (s LineStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusPair holds the index (staged) and worktree (unstaged) halves
type StatusPair struct {
	Staged   LineStatus `json:"staged"`
	Unstaged LineStatus `json:"unstaged"`
}

// SubmoduleStatus is the zero value for entries that are not submodules
type SubmoduleStatus struct {
	Submodule        bool `json:"submodule"`
	CommitChanged    bool `json:"commit_changed,omitempty"`
	HasModifications bool `json:"has_modifications,omitempty"`
	HasUntracked     bool `json:"has_untracked,omitempty"`
}

// ChangeKind says whether a two-path entry was a rename or a copy
type ChangeKind int

const (
	ChangeRename ChangeKind = iota
	ChangeCopy
)

func (k ChangeKind) String() string {
	if k == ChangeCopy {
		return "copy"
	}
	return "rename"
}

func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ChangeScore is git's similarity percentage for a rename or copy
type ChangeScore struct {
	Kind    ChangeKind `json:"kind"`
	Percent uint8      `json:"percent"`
}

// StatusLine is one body line of porcelain v2 output. The concrete types
// are OrdinaryLine, RenameCopyLine, UnmergedLine, UntrackedLine and
// IgnoredLine; switches over it must handle all five.
//
//sumtype:decl
type StatusLine interface {
	statusLine()
}

// OrdinaryLine is a "1" entry
type OrdinaryLine struct {
	Status       StatusPair      `json:"status"`
	Sub          SubmoduleStatus `json:"sub"`
	HeadMode     Mode            `json:"head_mode"`
	IndexMode    Mode            `json:"index_mode"`
	WorktreeMode Mode            `json:"worktree_mode"`
	HeadObj      ObjectName      `json:"head_obj"`
	IndexObj     ObjectName      `json:"index_obj"`
	Path         WorkPath        `json:"path"`
}

// RenameCopyLine is a "2" entry; it carries both the new and original path
type RenameCopyLine struct {
	Status       StatusPair      `json:"status"`
	Sub          SubmoduleStatus `json:"sub"`
	HeadMode     Mode            `json:"head_mode"`
	IndexMode    Mode            `json:"index_mode"`
	WorktreeMode Mode            `json:"worktree_mode"`
	HeadObj      ObjectName      `json:"head_obj"`
	IndexObj     ObjectName      `json:"index_obj"`
	ChangeScore  ChangeScore     `json:"change_score"`
	Path         WorkPath        `json:"path"`
	OrigPath     WorkPath        `json:"orig_path"`
}

// UnmergedLine is a "u" entry for a path with a merge conflict
type UnmergedLine struct {
	Status       StatusPair      `json:"status"`
	Sub          SubmoduleStatus `json:"sub"`
	Stage1Mode   Mode            `json:"stage1_mode"`
	Stage2Mode   Mode            `json:"stage2_mode"`
	Stage3Mode   Mode            `json:"stage3_mode"`
	WorktreeMode Mode            `json:"worktree_mode"`
	Stage1Obj    ObjectName      `json:"stage1_obj"`
	Stage2Obj    ObjectName      `json:"stage2_obj"`
	Stage3Obj    ObjectName      `json:"stage3_obj"`
	Path         WorkPath        `json:"path"`
}

// UntrackedLine is a "?" entry
type UntrackedLine struct {
	Path WorkPath `json:"path"`
}

// IgnoredLine is a "!" entry
type IgnoredLine struct {
	Path WorkPath `json:"path"`
}

func (OrdinaryLine) statusLine()   {}
func (RenameCopyLine) statusLine() {}
func (UnmergedLine) statusLine()   {}
func (UntrackedLine) statusLine()  {}
func (IgnoredLine) statusLine()    {}

// Changes returns the XY pair of entries that have one. Untracked and
// ignored entries have none
func Changes(line StatusLine) (StatusPair, bool) {
	switch l := line.(type) {
	case OrdinaryLine:
		return l.Status, true
	case RenameCopyLine:
		return l.Status, true
	case UnmergedLine:
		return l.Status, true
	case UntrackedLine, IgnoredLine:
		return StatusPair{}, false
	default:
		panic(fmt.Sprintf("git: unhandled status line %T", line))
	}
}

// LinePath returns the (new) path named by any status line
func LinePath(line StatusLine) WorkPath {
	switch l := line.(type) {
	case OrdinaryLine:
		return l.Path
	case RenameCopyLine:
		return l.Path
	case UnmergedLine:
		return l.Path
	case UntrackedLine:
		return l.Path
	case IgnoredLine:
		return l.Path
	default:
		panic(fmt.Sprintf("git: unhandled status line %T", line))
	}
}

// LineKind names the variant of a status line
func LineKind(line StatusLine) string {
	switch line.(type) {
	case OrdinaryLine:
		return "ordinary"
	case RenameCopyLine:
		return "renamed"
	case UnmergedLine:
		return "unmerged"
	case UntrackedLine:
		return "untracked"
	case IgnoredLine:
		return "ignored"
	default:
		panic(fmt.Sprintf("git: unhandled status line %T", line))
	}
}

// Oid is the commit HEAD points at, or Initial on an unborn branch
type Oid struct {
	Initial bool       `json:"initial,omitempty"`
	Commit  ObjectName `json:"commit,omitempty"`
}

// CommitName returns the commit id when there is one
func (o Oid) CommitName() (ObjectName, bool) {
	if o.Initial {
		return "", false
	}
	return o.Commit, true
}

// Head is the checked out branch, or Detached
type Head struct {
	Detached bool   `json:"detached,omitempty"`
	Branch   string `json:"branch,omitempty"`
}

// BranchState is the "# branch.*" header block
type BranchState struct {
	Oid      Oid             `json:"oid"`
	Head     Head            `json:"head"`
	Upstream *string         `json:"upstream,omitempty"`
	Commits  *TrackingCounts `json:"commits,omitempty"`
}

// StatusReport is a fully parsed porcelain v2 status
type StatusReport struct {
	Branch *BranchState `json:"branch,omitempty"`
	Lines  []StatusLine `json:"-"`
}

// MarshalJSON tags every line with its variant
func (r StatusReport) MarshalJSON() ([]byte, error) {
	type taggedLine struct {
		Kind string     `json:"kind"`
		Line StatusLine `json:"line"`
	}
	lines := make([]taggedLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, taggedLine{Kind: LineKind(l), Line: l})
	}
	return json.Marshal(struct {
		Branch *BranchState `json:"branch,omitempty"`
		Lines  []taggedLine `json:"lines"`
	}{r.Branch, lines})
}
