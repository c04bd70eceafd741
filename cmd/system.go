package cmd

import (
	"fmt"

	"github.com/gamesathi/sathi/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version and check for updates",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprint(out, versionStr)
			return
		}

		fmt.Fprintf(out, "sathi version %s\n", versionStr)

		checkUpdates, _ := cmd.Flags().GetBool("check")
		if !checkUpdates || version.IsDevelopmentVersion(versionStr) {
			return
		}

		s, err := openStore()
		if err != nil {
			return
		}
		result := version.CheckCached(cmd.Context(), s, version.NewChecker(), versionStr)
		if result.Error != nil {
			// Network errors are not worth reporting here
			logger.Debug("update check failed", "err", result.Error)
			return
		}
		if result.HasUpdate {
			fmt.Fprintf(out, "\nUpdate available: %s → %s\n", versionStr, result.LatestVersion)
			if c := version.UpdateCommand(result.LatestVersion); c != "" {
				fmt.Fprintf(out, "Run: %s\n", c)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "Print only the version number")
	versionCmd.Flags().Bool("check", true, "Check GitHub for a newer release")
}
