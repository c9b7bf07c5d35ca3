package cli

import (
	"strconv"
	"strings"

	"github.com/charliek/git-preserves/internal/config"
	"github.com/charliek/git-preserves/internal/domain"
	limitedio "github.com/charliek/git-preserves/internal/io"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage git-preserves configuration",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding the defaults to the global config
path (or --config). An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration for the current workspace",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := GetOutput()
	path := config.ConfigPath(cfgFile)

	if config.Exists(path) && !configForce {
		return domain.Errorf(domain.ErrInvalidArgs, "%s already exists (use --force to overwrite)", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	out.Verbose("wrote %s", path)
	out.Println(path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := GetOutput()
	wc, err := NewWorkspaceContext(dir, cfgFile, GetLogger())
	if err != nil {
		return err
	}
	cfg := wc.Config

	if out.IsJSON() {
		return out.JSON(map[string]interface{}{
			"path":             cfg.Path(),
			"git":              cfg.Git,
			"remote":           cfg.Remote,
			"tags":             cfg.Tags,
			"timeout":          cfg.Timeout.String(),
			"max_output_bytes": cfg.MaxOutputBytes,
			"retries":          cfg.MaxRetries(),
		})
	}
	out.Status("Config", cfg.Path())
	out.Status("Worktree", wc.Discovery.Root())
	out.Status("Git", cfg.Git)
	out.Status("Remote", cfg.Remote)
	out.Status("Tags", joinOrNone(cfg.Tags))
	out.Status("Timeout", cfg.Timeout.String())
	out.Status("Max output", limitedio.FormatSize(cfg.MaxOutputBytes))
	out.Status("Retries", strconv.Itoa(cfg.MaxRetries()))
	return nil
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "(all)"
	}
	return strings.Join(s, ", ")
}
