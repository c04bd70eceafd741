package cmd

import (
	"fmt"

	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/spf13/cobra"
)

var tournamentsCmd = &cobra.Command{
	Use:     "tournaments",
	Aliases: []string{"my-tournaments"},
	Short:   "List the tournaments you host (coaches)",
	GroupID: "coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := signedInClient(cmd.Context())
		if err != nil {
			return err
		}

		ts, err := client.MyTournaments(cmd.Context())
		if err != nil {
			output.Error("%s", api.UserMessage(err, "Failed to load tournaments"))
			return err
		}

		if q, _ := cmd.Flags().GetString("search"); q != "" {
			ts = models.FilterTournaments(q, ts)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if ts == nil {
				ts = []models.Tournament{}
			}
			return output.JSON(ts)
		}

		fmt.Println(output.SectionHeader("My Tournaments"))
		fmt.Println()
		fmt.Println(output.FormatTournaments(ts))
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Show your profile",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, flags, err := signedInClient(cmd.Context())
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if flags.UserType != string(models.RoleCoach) {
			// The backend has no player profile endpoint
			p := models.MockPlayerProfile()
			if jsonOutput {
				return output.JSON(p)
			}
			fmt.Println(output.FormatPlayerProfile(p))
			return nil
		}

		p, err := client.CoachProfile(cmd.Context())
		if err != nil {
			output.Error("%s", api.UserMessage(err, "Failed to load profile"))
			return err
		}
		if jsonOutput {
			return output.JSON(p)
		}
		fmt.Println(output.SectionHeader("Coach Profile"))
		fmt.Println(output.FormatCoachProfile(*p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(profileCmd)

	tournamentsCmd.Flags().StringP("search", "s", "", "Fuzzy filter by title or location")
	tournamentsCmd.Flags().Bool("json", false, "JSON output")
	profileCmd.Flags().Bool("json", false, "JSON output")
}
