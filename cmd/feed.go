package cmd

import (
	"fmt"

	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/spf13/cobra"
)

// The backend has no feed endpoints yet; these commands show the same
// sample data as the app's Home, Leaderboard and Inbox tabs.

var homeCmd = &cobra.Command{
	Use:     "home",
	Short:   "Show the player home feed",
	GroupID: "player",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(output.FormatHomeFeed(models.MockHomeFeed()))
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Show the coins leaderboard",
	GroupID: "player",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := models.SortLeaderboard(models.MockLeaderboard())
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(entries)
		}
		fmt.Println(output.FormatLeaderboard(entries))
		return nil
	},
}

var matchesCmd = &cobra.Command{
	Use:     "matches",
	Aliases: []string{"inbox"},
	Short:   "Show upcoming and completed matches",
	GroupID: "player",
	RunE: func(cmd *cobra.Command, args []string) error {
		upcomingOnly, _ := cmd.Flags().GetBool("upcoming")
		completedOnly, _ := cmd.Flags().GetBool("completed")
		if upcomingOnly && completedOnly {
			err := fmt.Errorf("--upcoming and --completed are mutually exclusive")
			output.Error("%v", err)
			return err
		}

		matches := models.MockMatches()
		upcoming, completed := models.SplitMatches(matches)
		switch {
		case upcomingOnly:
			matches = upcoming
		case completedOnly:
			matches = completed
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if matches == nil {
				matches = []models.Match{}
			}
			return output.JSON(matches)
		}

		if !upcomingOnly && !completedOnly {
			fmt.Println(output.FormatMatches(matches))
			return nil
		}
		if len(matches) == 0 {
			fmt.Println(output.Subtle("No matches."))
			return nil
		}
		for _, m := range matches {
			fmt.Println(output.FormatMatch(m))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(matchesCmd)

	leaderboardCmd.Flags().Bool("json", false, "JSON output")
	matchesCmd.Flags().Bool("upcoming", false, "Only upcoming matches")
	matchesCmd.Flags().Bool("completed", false, "Only completed matches")
	matchesCmd.Flags().Bool("json", false, "JSON output")
}
