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

var playersCmd = &cobra.Command{
	Use:     "players",
	Short:   "Find players near you",
	GroupID: "player",
}

var playersFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Notify nearby players of a game",
	Long: `Notify players near your location that you want a game.

Time accepts 24h ("18:30"), 12h ("6:30pm", "6pm"), "now" or an offset
("+45m", "+2h"). Location defaults to location.latitude and
location.longitude from the config.`,
	Example: `  sathi players find --game Tennis --time 6pm --address "Court 3, Riverside"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.NearbyRequest{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		}
		req.Game, _ = cmd.Flags().GetString("game")
		req.Address, _ = cmd.Flags().GetString("address")
		if cmd.Flags().Changed("lat") {
			req.Latitude, _ = cmd.Flags().GetFloat64("lat")
		}
		if cmd.Flags().Changed("lon") {
			req.Longitude, _ = cmd.Flags().GetFloat64("lon")
		}

		if raw, _ := cmd.Flags().GetString("time"); strings.TrimSpace(raw) != "" {
			t, err := dateparse.ParseClock(raw)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			req.Time = t
		}

		if err := api.ValidateNearby(req); err != nil {
			output.Alert("Error", api.UserMessage(err, err.Error()))
			return err
		}

		if _, err := openStore(); err != nil {
			return err
		}
		resp, err := newClient("").NotifyNearby(cmd.Context(), req)
		if err != nil {
			logger.Warn("nearby search failed", "game", req.Game, "err", err)
			output.Alert("Error", "An error occurred while finding players.")
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(resp)
		}
		output.Alert("Players Found", fmt.Sprintf("Found %d players for %s at %s.", len(resp.Players), req.Game, req.Time))
		for _, p := range resp.Players {
			fmt.Printf("  %s\n", p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playersCmd)
	playersCmd.AddCommand(playersFindCmd)

	playersFindCmd.Flags().StringP("game", "g", "", "Game: "+strings.Join(models.Games, ", "))
	playersFindCmd.Flags().StringP("time", "t", "", "Time of the game")
	playersFindCmd.Flags().StringP("address", "a", "", "Where to play")
	playersFindCmd.Flags().Float64("lat", 0, "Latitude (default from config)")
	playersFindCmd.Flags().Float64("lon", 0, "Longitude (default from config)")
	playersFindCmd.Flags().Bool("json", false, "JSON output")
}
