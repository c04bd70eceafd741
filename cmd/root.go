package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/config"
	"github.com/gamesathi/sathi/internal/kv"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/gamesathi/sathi/internal/session"
	"github.com/spf13/cobra"
)

var (
	versionStr string

	cfg     config.Config
	logger  = slog.New(slog.DiscardHandler)
	logFile *os.File
	store   *kv.Store
)

// SetVersion sets the version string
func SetVersion(v string) {
	versionStr = v
}

var rootCmd = &cobra.Command{
	Use:   "sathi",
	Short: "Find local players and tournaments from the terminal",
	Long: `sathi - a terminal client for GameSathi.

Run without arguments to open the interactive app. Players find nearby
athletes and climb the leaderboard; coaches host tournaments.`,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !output.IsTerminal() {
			return cmd.Help()
		}
		return runShell(cmd)
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		os.Exit(1)
	}
}

// nameWithAliases returns "name, alias1, alias2" if aliases exist, else just "name"
func nameWithAliases(cmd *cobra.Command) string {
	if len(cmd.Aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(cmd.Aliases, ", ")
	}
	return cmd.Name()
}

func init() {
	cobra.AddTemplateFunc("nameWithAliases", nameWithAliases)
	cobra.AddTemplateFunc("add", func(a, b int) int { return a + b })

	// Same layout as cobra's default, with aliases shown inline
	usageTemplate := `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddGroup(
		&cobra.Group{ID: "account", Title: "Account Commands:"},
		&cobra.Group{ID: "player", Title: "Player Commands:"},
		&cobra.Group{ID: "coach", Title: "Coach Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

// setup loads config and opens the log file. The store is opened lazily
// by the commands that need it.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		output.Error("%v", err)
		return err
	}
	cfg = c

	w, err := openLogFile(cfg.Log.Path)
	if err != nil {
		// Logging is best effort; the command still runs
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		w = io.Discard
	}
	logger = newLogger(w, cfg.Log.Level, cfg.Log.Format).With("cmd", cmd.Name())
	slog.SetDefault(logger)
	return nil
}

// teardown releases what setup and openStore acquired
func teardown() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("close store", "err", err)
		}
		store = nil
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func openLogFile(path string) (io.Writer, error) {
	if path == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	return f, nil
}

// newLogger builds the slog logger for level ("debug", "info", "warn",
// "error") and format ("text" or "json")
func newLogger(w io.Writer, levelName, format string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// openStore opens the session store at data.path once per process
func openStore() (*kv.Store, error) {
	if store != nil {
		return store, nil
	}
	s, err := kv.Open(cfg.Data.Path)
	if err != nil {
		output.Error("%v", err)
		return nil, err
	}
	store = s
	return store, nil
}

// newClient returns a backend client sending token, tagged with the
// install id when one has been recorded
func newClient(token string) *api.Client {
	c := api.New(cfg.API.URL, token).WithTimeout(cfg.API.Timeout)
	if store != nil {
		id, ok, err := store.Get(context.Background(), session.KeyInstallID)
		if err != nil {
			logger.Warn("read install id", "err", err)
		} else if ok {
			c.InstallID = id
		}
	}
	return c
}

// signedInClient returns a client for the stored session
func signedInClient(ctx context.Context) (*api.Client, session.Flags, error) {
	s, err := openStore()
	if err != nil {
		return nil, session.Flags{}, err
	}
	flags, err := session.Load(ctx, s)
	if err != nil {
		output.Error("read session: %v", err)
		return nil, flags, err
	}
	if !flags.HasToken() {
		output.Error("not logged in. Run 'sathi login' first")
		return nil, flags, api.ErrNotSignedIn
	}
	return newClient(flags.Token), flags, nil
}
