package cli

import (
	"strings"

	"github.com/charliek/git-preserves/internal/check"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/spf13/cobra"
)

var checksTags []string

var checksCmd = &cobra.Command{
	Use:   "checks [name]...",
	Short: "List the available checks",
	Long: `List every check with its tags, glyph, exit status group and the git
sources it reads. With --tag, list only the checks that selection would run.
Naming checks lists just those.`,
	RunE:              runChecks,
	ValidArgsFunction: completeCheckNames,
}

func init() {
	checksCmd.Flags().StringSliceVarP(&checksTags, "tag", "t", nil, "list only checks carrying this tag (repeatable)")
}

func runChecks(cmd *cobra.Command, args []string) error {
	out := GetOutput()

	checks, err := selectChecks(checksTags, nil)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if checks, err = lookupChecks(args, checks); err != nil {
			return err
		}
	}

	if out.IsJSON() {
		return out.JSON(struct {
			Checks   []check.Check          `json:"checks"`
			Requires check.RequirementGroup `json:"requires"`
		}{checks, check.Requirements(checks)})
	}

	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []string{
			c.Glyph,
			c.Name,
			c.Group.String(),
			strings.Join(c.Tags, ","),
			c.Requires.String(),
			c.Label,
		})
	}
	out.Table([]string{"", "NAME", "GROUP", "TAGS", "READS", "PASSES WHEN"}, rows)
	return nil
}

// lookupChecks returns the named checks, in the order given, from the
// registry; every name must also be in selected
func lookupChecks(names []string, selected []check.Check) ([]check.Check, error) {
	reg := check.NewRegistry(selected...)
	out := make([]check.Check, 0, len(names))
	for _, name := range names {
		c, ok := reg.Lookup(name)
		if !ok {
			if _, known := check.Default().Lookup(name); known {
				return nil, domain.Errorf(domain.ErrInvalidArgs, "check %q does not carry any of the given tags", name)
			}
			return nil, domain.Errorf(domain.ErrInvalidArgs, "unknown check %q", name)
		}
		out = append(out, c)
	}
	return out, nil
}

// completeCheckNames offers registry check names
func completeCheckNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, c := range check.Default().All() {
		names = append(names, c.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
