package cli

import (
	"github.com/charliek/git-preserves/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := GetOutput()
		if out.IsJSON() {
			return out.JSON(map[string]string{
				"version":    version.Version,
				"commit":     version.GitCommit,
				"build_date": version.BuildDate,
			})
		}
		out.Println("git-preserves " + version.Full())
		return nil
	},
}
