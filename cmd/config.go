package cmd

import (
	"fmt"
	"strings"

	"github.com/gamesathi/sathi/internal/config"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/spf13/cobra"
)

// configValue returns the current value of a dotted key as text
func configValue(c config.Config, key string) string {
	switch key {
	case "api.url":
		return c.API.URL
	case "api.timeout":
		return c.API.Timeout.String()
	case "data.path":
		return c.Data.Path
	case "log.path":
		return c.Log.Path
	case "log.level":
		return c.Log.Level
	case "log.format":
		return c.Log.Format
	case "startup.timeout":
		return c.Startup.Timeout.String()
	case "location.latitude":
		return fmt.Sprintf("%g", c.Location.Latitude)
	case "location.longitude":
		return fmt.Sprintf("%g", c.Location.Longitude)
	}
	return ""
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage sathi configuration",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		if !config.IsKnownKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := config.Set(key, val); err != nil {
			output.Error("%v", err)
			return err
		}
		logger.Info("config updated", "key", key)
		output.Success("%s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !config.IsKnownKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
			return fmt.Errorf("unknown config key: %s", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), configValue(cfg, key))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(output.Subtle(config.Path()))
		for _, key := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", key, configValue(cfg, key))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
