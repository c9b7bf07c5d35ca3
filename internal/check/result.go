package check

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome is the kind of a CheckResult
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Bad
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Bad:
		return "bad"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// CheckResult is Passed, Failed, or Bad with the number of offending items
type CheckResult struct {
	Outcome Outcome
	Count   uint64
}

// CountResult is Passed when n is zero and Bad(n) otherwise
func CountResult(n uint64) CheckResult {
	if n == 0 {
		return CheckResult{Outcome: Passed}
	}
	return CheckResult{Outcome: Bad, Count: n}
}

// BoolResult maps true to Passed and false to Failed
func BoolResult(ok bool) CheckResult {
	if ok {
		return CheckResult{Outcome: Passed}
	}
	return CheckResult{Outcome: Failed}
}

// Passed reports whether the result is Passed
func (r CheckResult) Passed() bool {
	return r.Outcome == Passed
}

func (r CheckResult) String() string {
	if r.Outcome == Bad {
		return fmt.Sprintf("bad(%d)", r.Count)
	}
	return r.Outcome.String()
}

func (r CheckResult) MarshalJSON() ([]byte, error) {
	type result struct {
		Outcome string `json:"outcome"`
		Count   uint64 `json:"count,omitempty"`
	}
	return json.Marshal(result{Outcome: r.Outcome.String(), Count: r.Count})
}

// StatusGroup is the exit-mask bit a check reports into. Checks sharing a
// group are equivalent for exit status purposes
type StatusGroup uint8

const (
	GroupLocal StatusGroup = iota
	GroupRemote
	GroupTag
)

func (g StatusGroup) String() string {
	switch g {
	case GroupLocal:
		return "local"
	case GroupRemote:
		return "remote"
	case GroupTag:
		return "tag"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

func (g StatusGroup) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ExitMask has bit 1<<group set for every group with a failing check
type ExitMask uint8

// With returns m with group's bit set
func (m ExitMask) With(group StatusGroup) ExitMask {
	return m | ExitMask(1)<<group
}

// Has reports whether group failed
func (m ExitMask) Has(group StatusGroup) bool {
	return m&(ExitMask(1)<<group) != 0
}

func (m ExitMask) String() string {
	if m == 0 {
		return "none"
	}
	var names []string
	for _, g := range []StatusGroup{GroupLocal, GroupRemote, GroupTag} {
		if m.Has(g) {
			names = append(names, g.String())
		}
	}
	return strings.Join(names, "|")
}

// Code is the process exit status for the mask
func (m ExitMask) Code() int {
	return int(m)
}
