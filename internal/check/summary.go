package check

import (
	"context"

	"github.com/charliek/git-preserves/internal/git"
	"go.uber.org/zap"
)

// Item is the outcome of one check
type Item struct {
	Name   string      `json:"name"`
	Label  string      `json:"label"`
	Glyph  string      `json:"glyph"`
	Tags   []string    `json:"tags"`
	Group  StatusGroup `json:"group"`
	Result CheckResult `json:"result"`
	Passed bool        `json:"passed"`
}

// Summary is the evaluated result set together with the raw status it was
// computed from
type Summary struct {
	Items    []Item           `json:"items"`
	Status   git.StatusReport `json:"status"`
	ExitMask ExitMask         `json:"exit_mask"`
}

// Passed reports whether every item passed
func (s Summary) Passed() bool {
	return s.ExitMask == 0
}

// Evaluate runs checks over d in order. Every failing check sets its
// group's bit in the exit mask
func Evaluate(d Dataset, checks []Check) Summary {
	s := Summary{Status: d.Status, Items: make([]Item, 0, len(checks))}
	for _, c := range checks {
		result := c.Eval(d)
		item := Item{
			Name:   c.Name,
			Label:  c.Label,
			Glyph:  c.Glyph,
			Tags:   c.Tags,
			Group:  c.Group,
			Result: result,
			Passed: result.Passed(),
		}
		if !item.Passed {
			s.ExitMask = s.ExitMask.With(c.Group)
		}
		s.Items = append(s.Items, item)
	}
	return s
}

// Load fetches the sources in needs. A source outside needs is never run
// and stays empty in the dataset
func Load(ctx context.Context, runner git.Runner, needs RequirementGroup, remote string) (Dataset, error) {
	listing, err := git.Fetch(ctx, runner, needs.FetchOptions(remote))
	if err != nil {
		return Dataset{}, err
	}
	return NewDataset(listing, needs), nil
}

// Run loads what checks need and evaluates them
func Run(ctx context.Context, runner git.Runner, checks []Check, remote string, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	needs := Requirements(checks)
	logger.Debug("selected checks",
		zap.Int("count", len(checks)),
		zap.Stringer("requires", needs))

	d, err := Load(ctx, runner, needs, remote)
	if err != nil {
		return Summary{}, err
	}

	s := Evaluate(d, checks)
	logger.Debug("checks evaluated",
		zap.Int("failed", countFailed(s.Items)),
		zap.Uint8("exit_mask", uint8(s.ExitMask)))
	return s, nil
}

func countFailed(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.Passed {
			n++
		}
	}
	return n
}
