package cli

import (
	"fmt"

	"github.com/charliek/git-preserves/internal/git"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [status|refs|remote]...",
	Short: "Print the parsed git sources",
	Long: `Run the git invocations the checks read and print the parsed records,
as tables or as JSON with --json. With no arguments every source is printed.

  status  git status --branch --porcelain=v2
  refs    git for-each-ref --shell
  remote  git ls-remote`,
	ValidArgs: []string{"status", "refs", "remote"},
	Args:      cobra.OnlyValidArgs,
	RunE:      runInspect,
}

var inspectRemote string

func init() {
	inspectCmd.Flags().StringVarP(&inspectRemote, "remote", "r", "", "remote to list (default: config, then git's default)")
}

// inspectOptions maps source names to the fetch that produces them
func inspectOptions(sources []string, remote string) git.FetchOptions {
	if len(sources) == 0 {
		return git.FetchOptions{Status: true, Refs: true, Remote: true, RemoteName: remote}
	}
	opts := git.FetchOptions{RemoteName: remote}
	for _, s := range sources {
		switch s {
		case "status":
			opts.Status = true
		case "refs":
			opts.Refs = true
		case "remote":
			opts.Remote = true
		}
	}
	return opts
}

func runInspect(cmd *cobra.Command, args []string) error {
	wc, err := NewWorkspaceContext(dir, cfgFile, GetLogger())
	if err != nil {
		return err
	}

	remote, err := resolveRemote(inspectRemote, wc.Config.Remote)
	if err != nil {
		return err
	}
	opts := inspectOptions(args, remote)

	ctx, cancel := signalContext(wc.Config.Timeout)
	defer cancel()

	listing, err := git.Fetch(ctx, wc.Runner, opts)
	if err != nil {
		return err
	}

	out := GetOutput()
	if out.IsJSON() {
		data := map[string]interface{}{}
		if opts.Status {
			data["status"] = listing.Status
		}
		if opts.Refs {
			data["refs"] = listing.Refs
		}
		if opts.Remote {
			data["remote"] = listing.Remotes
		}
		return out.JSON(data)
	}

	if opts.Status {
		out.Println(statusHeading(listing.Status))
		out.Table([]string{"KIND", "STAGED", "UNSTAGED", "PATH"}, statusRows(listing.Status.Lines))
	}
	if opts.Refs {
		out.Println()
		out.Table([]string{"OBJECT", "TYPE", "PEELED", "REF"}, refRows(listing.Refs))
	}
	if opts.Remote {
		out.Println()
		out.Table([]string{"OBJECT", "REMOTE REF"}, remoteRows(listing.Remotes))
	}
	return nil
}

// statusHeading describes the branch header of a status report
func statusHeading(r git.StatusReport) string {
	b := r.Branch
	if b == nil {
		return "no branch information"
	}
	head := b.Head.Branch
	if b.Head.Detached {
		head = "(detached)"
	}
	commit := "(initial)"
	if c, ok := b.Oid.CommitName(); ok {
		commit = c.Short()
	}
	if b.Upstream == nil {
		return fmt.Sprintf("%s at %s", head, commit)
	}
	return fmt.Sprintf("%s at %s tracking %s", head, commit, *b.Upstream)
}

func statusRows(lines []git.StatusLine) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		staged, unstaged := "", ""
		if pair, ok := git.Changes(line); ok {
			staged, unstaged = pair.Staged.String(), pair.Unstaged.String()
		}
		rows = append(rows, []string{git.LineKind(line), staged, unstaged, string(git.LinePath(line))})
	}
	return rows
}

func refRows(refs []git.RefRecord) [][]string {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		peeled := ""
		if ref.ReferredObject != nil {
			peeled = ref.ReferredObject.Short()
		}
		rows = append(rows, []string{ref.ObjectName.Short(), ref.ObjectType.String(), peeled, ref.LocalRef})
	}
	return rows
}

func remoteRows(pairs []git.RemoteRefPair) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.RefName.Short(), p.Path})
	}
	return rows
}
