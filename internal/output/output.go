// Package output provides styled terminal output helpers (success, error,
// warning, tournament and leaderboard formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gamesathi/sathi/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	matchStyles  = map[models.MatchStatus]lipgloss.Style{
		models.MatchUpcoming:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.MatchCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// Alert prints a titled message the way the app's dialogs read,
// e.g. "Login Failed: Invalid credentials".
func Alert(title, message string) {
	fmt.Println(accentStyle.Render(title+":") + " " + message)
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// SectionHeader renders a bold section title
func SectionHeader(title string) string {
	return titleStyle.Render(title)
}

// Subtle renders de-emphasised text
func Subtle(s string) string {
	return subtleStyle.Render(s)
}

// FormatTournamentDate renders a tournament date like "Sat May 10 2025".
// Unparseable dates are shown as-is.
func FormatTournamentDate(t models.Tournament) string {
	d, ok := t.ParsedDate()
	if !ok {
		return t.Date
	}
	return d.Format("Mon Jan 02 2006")
}

// FormatTournament renders one tournament card
func FormatTournament(t models.Tournament) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(t.Title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Date: %s\n", FormatTournamentDate(t)))
	sb.WriteString(fmt.Sprintf("  Location: %s\n", t.Location))
	sb.WriteString(fmt.Sprintf("  Teams: %d", len(t.Teams)))
	return sb.String()
}

// FormatTournaments renders a list of tournament cards, or the empty message
func FormatTournaments(ts []models.Tournament) string {
	if len(ts) == 0 {
		return subtleStyle.Render("No tournaments found.")
	}
	cards := make([]string, len(ts))
	for i, t := range ts {
		cards[i] = FormatTournament(t)
	}
	return strings.Join(cards, "\n\n")
}

// FormatLeaderboard renders entries in the order given. The first entry is
// crowned and announced as Top Player of the Month.
func FormatLeaderboard(entries []models.LeaderboardEntry) string {
	if len(entries) == 0 {
		return subtleStyle.Render("No players yet.")
	}

	var sb strings.Builder
	top := entries[0]
	sb.WriteString(accentStyle.Render(fmt.Sprintf("🎁 %s is the Top Player of the Month!", top.Name)))
	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render("We'll send a special gift to their registered address."))
	sb.WriteString("\n\n")

	for i, e := range entries {
		name := e.Name
		if i == 0 {
			name += " 🏆"
		}
		sb.WriteString(fmt.Sprintf("%2d. %-20s %5d coins", i+1, name, e.Coins))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatMatch renders one inbox match card
func FormatMatch(m models.Match) string {
	style, ok := matchStyles[m.Status]
	if !ok {
		style = subtleStyle
	}
	return fmt.Sprintf("vs %s\n  🗓️ %s at %s\n  %s\n  %s",
		titleStyle.Render(m.Opponent), m.Date, m.Time, m.Location,
		style.Render(strings.ToUpper(string(m.Status))))
}

// FormatMatches renders the inbox: upcoming first, then completed
func FormatMatches(matches []models.Match) string {
	upcoming, completed := models.SplitMatches(matches)

	var sb strings.Builder
	section := func(title, empty string, ms []models.Match) {
		sb.WriteString(SectionHeader(title))
		sb.WriteString("\n")
		if len(ms) == 0 {
			sb.WriteString(subtleStyle.Render(empty))
			sb.WriteString("\n")
			return
		}
		for _, m := range ms {
			sb.WriteString(FormatMatch(m))
			sb.WriteString("\n")
		}
	}
	section("Upcoming Matches", "No upcoming matches.", upcoming)
	sb.WriteString("\n")
	section("Completed Matches", "No completed matches.", completed)
	return strings.TrimRight(sb.String(), "\n")
}

// FormatCoachProfile renders the coach profile as label/value rows
func FormatCoachProfile(p models.CoachProfile) string {
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Specialization", p.Specialization},
		{"Experience", p.Experience + " years"},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s %s", subtleStyle.Render(r[0]+":"), r[1])
	}
	return strings.Join(lines, "\n")
}

// IndentString indents every line of s
func IndentString(s string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// FormatHomeFeed renders the player home screen
func FormatHomeFeed(f models.HomeFeed) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(f.Greeting))
	sb.WriteString("\n\n")
	sb.WriteString(SectionHeader(f.Challenge.Title))
	sb.WriteString(fmt.Sprintf("\n  %.1f km  ·  %d kcal\n\n", f.Challenge.DistanceKM, f.Challenge.Calories))
	for _, m := range f.Metrics {
		sb.WriteString(fmt.Sprintf("%s %s   ", subtleStyle.Render(m.Label), m.Value))
	}
	sb.WriteString("\n\n")
	sb.WriteString(SectionHeader("Categories"))
	sb.WriteString("\n  ")
	sb.WriteString(strings.Join(f.Categories, "  ·  "))
	return sb.String()
}

// FormatPlayerProfile renders the player profile tab
func FormatPlayerProfile(p models.PlayerProfile) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Username))
	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render(p.Email))
	sb.WriteString("\n\n")
	sb.WriteString(SectionHeader("Favorite Games"))
	for _, g := range p.FavoriteGames {
		sb.WriteString("\n  " + g)
	}
	sb.WriteString("\n\n")
	sb.WriteString(SectionHeader("Skill Level"))
	sb.WriteString("\n  " + p.SkillLevel)
	return sb.String()
}
