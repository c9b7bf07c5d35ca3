package cli

import (
	"github.com/charliek/git-preserves/internal/check"
	"github.com/charliek/git-preserves/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	summaryTags   []string
	summaryRemote string
	summaryShort  bool
)

func addSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&summaryTags, "tag", "t", nil, "run only checks carrying this tag (repeatable)")
	cmd.Flags().StringVarP(&summaryRemote, "remote", "r", "", "remote to compare tags against (default: config, then git's default)")
	cmd.Flags().BoolVarP(&summaryShort, "short", "s", false, "print only the glyphs of failing checks")
}

// selectChecks resolves the check selection from flags, falling back to
// the configured default tags
func selectChecks(flagTags, cfgTags []string) ([]check.Check, error) {
	reg := check.Default()
	tags := flagTags
	if len(tags) == 0 {
		tags = cfgTags
	}
	if unknown := reg.UnknownTags(tags); len(unknown) > 0 {
		return nil, domain.Errorf(domain.ErrInvalidArgs, "unknown tag %q", unknown[0])
	}
	return reg.Select(tags), nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	out := GetOutput()
	log := GetLogger()

	wc, err := NewWorkspaceContext(dir, cfgFile, log)
	if err != nil {
		return err
	}

	checks, err := selectChecks(summaryTags, wc.Config.Tags)
	if err != nil {
		return err
	}

	remote, err := resolveRemote(summaryRemote, wc.Config.Remote)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(wc.Config.Timeout)
	defer cancel()

	summary, err := check.Run(ctx, wc.Runner, checks, remote, log)
	if err != nil {
		return err
	}

	switch {
	case out.IsJSON():
		if err := out.JSON(summary); err != nil {
			return err
		}
	case summaryShort:
		out.Glyphs(summary)
	default:
		out.Summary(summary)
	}

	if !summary.Passed() {
		log.Debug("workspace not preserved", zap.Stringer("failed", summary.ExitMask))
		return domain.NewExitCodeError(domain.ErrChecksFailed, summary.ExitMask.Code())
	}
	return nil
}
