package cmd

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/gamesathi/sathi/pkg/shell"
	"github.com/spf13/cobra"
)

// errNoTerminal is returned when the TUI is started without a terminal
var errNoTerminal = errors.New("stdout is not a terminal")

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"app", "ui"},
	Short:   "Open the interactive app",
	Long: `Open the full-screen app. The first screen depends on the saved session:
Welcome on a new install, the player or coach home when signed in, and
Login otherwise.

Key bindings:
  Tab/Shift+Tab  Switch tabs (Ctrl+N/Ctrl+P inside forms)
  1-5            Jump to tab
  Ctrl+R         Toggle register on the login screens
  Ctrl+F         Forgot password
  /              Filter tournaments
  L              Log out (Profile tab)
  q              Quit`,
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func runShell(cmd *cobra.Command) error {
	if !output.IsTerminal() {
		output.Error("%v", errNoTerminal)
		return errNoTerminal
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	timeout := cfg.Startup.Timeout
	if f := cmd.Flags().Lookup("startup-timeout"); f != nil && f.Changed {
		timeout, _ = cmd.Flags().GetDuration("startup-timeout")
	}

	backend := func(token string) shell.Backend {
		return newClient(token)
	}
	model := shell.New(shell.Options{
		Store:          s,
		NewBackend:     backend,
		Logger:         logger.With("component", "shell"),
		StartupTimeout: timeout,
		Latitude:       cfg.Location.Latitude,
		Longitude:      cfg.Location.Longitude,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().Duration("startup-timeout", time.Duration(0), "Bound the session read on startup (0 waits forever)")
}
