package cmd

import (
	"fmt"

	"github.com/gamesathi/sathi/internal/gesture"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/spf13/cobra"
)

var gestureCmd = &cobra.Command{
	Use:   "gesture <x,y>...",
	Short: "Check whether a drag path is the hidden Z pattern",
	Long: `Classify a path of points the way the login screen classifies a
mouse drag. y grows downward, as on screen.`,
	Example: `  sathi gesture 0,10 5,20 10,15   # Z
  sathi gesture 0,0 1,1`,
	Args:    cobra.MinimumNArgs(1),
	GroupID: "system",
	Hidden:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := gesture.ParsePath(args)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var r gesture.Recorder
		for _, p := range path {
			r.Add(p)
		}
		if r.End() {
			fmt.Fprintln(cmd.OutOrStdout(), "Z pattern: opens Coach Login")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No match")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gestureCmd)
}
