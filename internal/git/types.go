package git

import (
	"fmt"
	"time"

	"github.com/charliek/git-preserves/internal/constants"
)

// ObjectName is a 40 character hexadecimal object id
type ObjectName string

// Short returns the abbreviated form used in human output
func (o ObjectName) Short() string {
	if len(o) > constants.ShortHashLength {
		return string(o[:constants.ShortHashLength])
	}
	return string(o)
}

// WorkPath is a path exactly as git printed it. It is never cleaned or
// re-encoded
type WorkPath string

// TrackingCounts holds commits only present locally (Ahead) and only
// present upstream (Behind)
type TrackingCounts struct {
	Ahead  uint64 `json:"ahead"`
	Behind uint64 `json:"behind"`
}

// Add sums two counts clause by clause
func (c TrackingCounts) Add(o TrackingCounts) TrackingCounts {
	return TrackingCounts{Ahead: c.Ahead + o.Ahead, Behind: c.Behind + o.Behind}
}

// Mode is a six digit octal file mode, digit by digit
type Mode [6]uint8

func (m Mode) String() string {
	b := make([]byte, len(m))
	for i, d := range m {
		b[i] = '0' + d
	}
	return string(b)
}

// MarshalText keeps the textual representation in JSON output
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ObjectType is the type of the object a ref points at
type ObjectType int

const (
	ObjectBlob ObjectType = iota
	ObjectTree
	ObjectCommit
	ObjectTag
)

func (t ObjectType) String() string {
	switch t {
	case ObjectBlob:
		return "blob"
	case ObjectTree:
		return "tree"
	case ObjectCommit:
		return "commit"
	case ObjectTag:
		return "tag"
	default:
		return fmt.Sprintf("objecttype(%d)", int(t))
	}
}

func (t ObjectType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SyncState classifies a ref's relationship with its upstream
type SyncState int

const (
	SyncUntracked SyncState = iota
	SyncTrack
	SyncGone
)

func (s SyncState) String() string {
	switch s {
	case SyncUntracked:
		return "untracked"
	case SyncTrack:
		return "track"
	case SyncGone:
		return "gone"
	default:
		return fmt.Sprintf("syncstate(%d)", int(s))
	}
}

func (s SyncState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TrackSync is derived from a ref's upstream name, the upstream's remote
// nickname, and git's tracking annotation. Remote, RemoteRef and Counts are
// only meaningful for the states that carry them
type TrackSync struct {
	State     SyncState      `json:"state"`
	Remote    string         `json:"remote,omitempty"`
	RemoteRef string         `json:"remote_ref,omitempty"`
	Counts    TrackingCounts `json:"counts"`
}

// RefRecord is one line of for-each-ref output
type RefRecord struct {
	ObjectName ObjectName `json:"object_name"`
	ObjectType ObjectType `json:"object_type"`
	// ReferredObject is the peeled target of an annotated tag
	ReferredObject *ObjectName `json:"referred_object,omitempty"`
	LocalRef       string      `json:"local_ref"`
	Upstream       TrackSync   `json:"upstream"`
	CreatorName    string      `json:"creator_name"`
	CreatorEmail   string      `json:"creator_email"`
	CreationDate   time.Time   `json:"creation_date"`
}

// PeelsTo reports whether r is an annotated tag whose target is c
func (r RefRecord) PeelsTo(c ObjectName) bool {
	return r.ObjectType == ObjectTag && r.ReferredObject != nil && *r.ReferredObject == c
}

// RemoteRefPair is one line of ls-remote output. RefName is the object id
// the remote ref points at and Path is the full ref name
type RemoteRefPair struct {
	RefName ObjectName `json:"refname"`
	Path    string     `json:"path"`
}
