package cmd

import (
	"fmt"
	"strings"

	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/dateparse"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Check a tournament before hosting it (coaches)",
	Long: `Validate a tournament. Hosting is not yet accepted by the backend, so
nothing is uploaded.

Date accepts YYYY-MM-DD, today, tomorrow, next-week, +Nd, +Nw or a weekday.`,
	Example: `  sathi host --title "Spring Cup" --description "5-a-side" --location "City Stadium" --date saturday --banner cup.png`,
	GroupID: "coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		var d models.TournamentDraft
		d.Title, _ = cmd.Flags().GetString("title")
		d.Description, _ = cmd.Flags().GetString("description")
		d.Location, _ = cmd.Flags().GetString("location")
		d.Banner, _ = cmd.Flags().GetString("banner")

		if raw, _ := cmd.Flags().GetString("date"); strings.TrimSpace(raw) != "" {
			date, err := dateparse.ParseDate(raw)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			d.Date = date
		}

		if err := api.ValidateDraft(d); err != nil {
			output.Alert("Error", err.Error())
			return err
		}

		logger.Info("tournament draft accepted", "title", d.Title, "date", d.Date)
		output.Alert("Success", "Tournament hosted successfully!")
		fmt.Printf("  %s · %s · %s\n", d.Title, d.Location, d.Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hostCmd)

	hostCmd.Flags().String("title", "", "Tournament title")
	hostCmd.Flags().String("description", "", "Description")
	hostCmd.Flags().String("location", "", "Venue")
	hostCmd.Flags().String("date", "", "Date")
	hostCmd.Flags().String("banner", "", "Banner image path")
}
