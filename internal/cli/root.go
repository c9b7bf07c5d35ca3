package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charliek/git-preserves/internal/domain"
	"github.com/charliek/git-preserves/internal/logging"
	"github.com/charliek/git-preserves/internal/ui"
	"github.com/charliek/git-preserves/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	dir     string
	verbose bool
	jsonOut bool

	// Shared state
	output *ui.Output
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "git-preserves",
	Short: "Check that a git workspace is fully preserved",
	Long: `git-preserves checks whether the work in a git workspace is safely
preserved: no untracked or uncommitted files, a branch that tracks a remote
with nothing left to push or merge, and a pushed tag on the current commit.

Each failing group of checks sets one bit of the exit status:
  1  local    (files, detached HEAD)
  2  remote   (tracking, push, merge)
  4  tag      (tagged and pushed)

Use --tag to run only the checks carrying a tag; see 'git-preserves checks'.`,
	Version: version.Version,
	Args:    cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output = ui.NewOutput(verbose, jsonOut)

		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	// failing checks were already reported
	if !errors.Is(err, domain.ErrChecksFailed) {
		if output == nil {
			output = ui.NewOutput(false, false)
		}
		output.Error("%v", err)
	}
	return domain.WrapWithExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/git-preserves/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")

	addSummaryFlags(rootCmd)
	_ = rootCmd.RegisterFlagCompletionFunc("tag", completeTags)
	_ = checksCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.SetVersionTemplate("git-preserves {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return domain.Errorf(domain.ErrInvalidArgs, "%v", err)
	})

	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// GetOutput returns the output handler (for use by subcommands)
func GetOutput() *ui.Output {
	return output
}

// GetLogger returns the process logger, or a no-op logger before startup
func GetLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// signalContext returns a context that is cancelled on SIGINT, SIGTERM, or timeout
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, timeoutCancel := context.WithTimeout(context.Background(), timeout)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return ctx, func() {
		stop()
		timeoutCancel()
	}
}
