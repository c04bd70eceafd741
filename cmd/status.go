package cmd

import (
	"fmt"

	"github.com/gamesathi/sathi/internal/config"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/gamesathi/sathi/internal/session"
	"github.com/spf13/cobra"
)

// statusReport is the --json shape of sathi status
type statusReport struct {
	Route      string `json:"route"`
	SignedIn   bool   `json:"signed_in"`
	Role       string `json:"role,omitempty"`
	InstallID  string `json:"install_id,omitempty"`
	ConfigPath string `json:"config_path"`
	DataPath   string `json:"data_path"`
	APIURL     string `json:"api_url"`
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show the saved session and where the app would open",
	Long: `Show the saved session without changing it. Unlike starting the app,
status never marks the first launch as done.`,
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		flags, err := session.Load(cmd.Context(), s)
		if err != nil {
			output.Error("read session: %v", err)
			return err
		}

		report := statusReport{
			Route:      string(flags.Route()),
			SignedIn:   flags.HasToken(),
			Role:       flags.UserType,
			InstallID:  flags.InstallID,
			ConfigPath: config.Path(),
			DataPath:   s.Path(),
			APIURL:     cfg.API.URL,
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(report)
		}

		if report.SignedIn {
			role := report.Role
			if role == "" {
				role = "unknown role"
			}
			output.Success("Signed in (%s)", role)
		} else {
			fmt.Println("Not signed in")
		}
		fmt.Printf("Opens on:   %s\n", report.Route)
		if report.InstallID != "" {
			fmt.Printf("Install ID: %s\n", report.InstallID)
		}
		fmt.Println(output.Subtle(fmt.Sprintf("Config:     %s", report.ConfigPath)))
		fmt.Println(output.Subtle(fmt.Sprintf("Data:       %s", report.DataPath)))
		fmt.Println(output.Subtle(fmt.Sprintf("API:        %s", report.APIURL)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("json", false, "JSON output")
}
