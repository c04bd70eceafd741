package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/output"
	"github.com/gamesathi/sathi/internal/session"
)

var (
	playerTabs = []string{"Home", "Bookings", "Leaderboard", "Inbox", "Profile"}
	coachTabs  = []string{"Dashboard", "Host", "My Tournaments", "Profile"}
)

// Player tabs
const (
	tabHome = iota
	tabBookings
	tabLeaderboard
	tabInbox
	tabPlayerProfile
)

// Coach tabs
const (
	tabDashboard = iota
	tabHost
	tabMyTournaments
	tabCoachProfile
)

func (m Model) tabNames() []string {
	if m.Route() == session.RouteMainCoach {
		return coachTabs
	}
	return playerTabs
}

func (m Model) isCoach() bool {
	return m.Route() == session.RouteMainCoach
}

// formFocused reports whether the current tab is a form that owns the keyboard
func (m Model) formFocused() bool {
	switch m.Route() {
	case session.RouteMain:
		return m.tab == tabBookings && m.booking != nil
	case session.RouteMainCoach:
		return m.tab == tabHost && m.host != nil
	}
	return false
}

func (m Model) onProfileTab() bool {
	switch m.Route() {
	case session.RouteMain:
		return m.tab == tabPlayerProfile
	case session.RouteMainCoach:
		return m.tab == tabCoachProfile
	}
	return false
}

// selectTab switches tabs, wrapping at both ends, and starts whatever the
// new tab needs
func (m *Model) selectTab(i int) tea.Cmd {
	n := len(m.tabNames())
	m.tab = ((i % n) + n) % n
	m.filtering = false

	if !m.isCoach() {
		if m.tab == tabBookings {
			return m.booking.Form.Init()
		}
		return nil
	}

	switch m.tab {
	case tabHost:
		return m.host.Form.Init()
	case tabMyTournaments:
		if !m.tournamentsLoaded {
			return m.fetchTournaments()
		}
	case tabCoachProfile:
		if m.profile == nil {
			return m.fetchCoachProfile()
		}
	}
	return nil
}

func (m Model) handleTabsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formFocused() {
		switch {
		case key.Matches(msg, m.keys.FormNextTab):
			return m, m.selectTab(m.tab + 1)
		case key.Matches(msg, m.keys.FormPrevTab):
			return m, m.selectTab(m.tab - 1)
		}
		return m.updateForm(msg)
	}

	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.ClearFilter):
			m.filtering = false
			m.filter.Reset()
			m.filter.Blur()
			return m, nil
		case key.Matches(msg, m.keys.ApplyFilter):
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m, m.selectTab(m.tab + 1)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.selectTab(m.tab - 1)
	case key.Matches(msg, m.keys.JumpTab):
		if i := int(msg.String()[0] - '1'); i < len(m.tabNames()) {
			return m, m.selectTab(i)
		}
		return m, nil
	case key.Matches(msg, m.keys.Logout) && m.onProfileTab():
		m.busy = "Signing out..."
		return m, tea.Batch(m.spinner.Tick, m.logout())
	}

	if !m.isCoach() {
		return m, nil
	}

	switch m.tab {
	case tabDashboard:
		switch {
		case key.Matches(msg, m.keys.HostTournament):
			return m, m.selectTab(tabHost)
		case key.Matches(msg, m.keys.ViewTournaments):
			return m, m.selectTab(tabMyTournaments)
		}
	case tabMyTournaments:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetchTournaments()
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, m.filter.Focus()
		}
	case tabCoachProfile:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.fetchCoachProfile()
		}
	}
	return m, nil
}

// updateForm forwards msg to the active form and submits it once complete
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var form *huh.Form
	if m.isCoach() {
		form = m.host.Form
	} else {
		form = m.booking.Form
	}

	next, cmd := form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		form = f
	}
	if m.isCoach() {
		m.host.Form = form
	} else {
		m.booking.Form = form
	}

	if form.State == huh.StateCompleted {
		if m.isCoach() {
			return m.submitHost()
		}
		return m.submitBooking()
	}
	return m, cmd
}

func (m Model) submitBooking() (tea.Model, tea.Cmd) {
	req, err := m.booking.request(m.opts.Latitude, m.opts.Longitude)
	if err != nil {
		m.alert = errorAlert(api.UserMessage(err, err.Error()))
		m.booking = m.booking.retry()
		return m, m.booking.Form.Init()
	}
	m.busy = "Finding players..."
	return m, tea.Batch(m.spinner.Tick, m.findPlayers(req))
}

func (m Model) handleNearby(msg nearbyMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Warn("nearby search", "game", msg.req.Game, "err", msg.err)
		m.alert = errorAlert(api.UserMessage(msg.err, "An error occurred while finding players."))
		if m.booking != nil {
			m.booking = m.booking.retry()
			if m.tab == tabBookings {
				return m, m.booking.Form.Init()
			}
		}
		return m, nil
	}

	m.logger.Info("nearby search", "game", msg.req.Game, "players", msg.players)
	m.alert = &alert{
		Title:   "Players Found",
		Message: fmt.Sprintf("Found %d players for %s at %s.", msg.players, msg.req.Game, msg.req.Address),
	}
	if m.Route() != session.RouteMain {
		return m, nil
	}
	m.booking = newBookingForm()
	if m.tab == tabBookings {
		return m, m.booking.Form.Init()
	}
	return m, nil
}

func (m Model) submitHost() (tea.Model, tea.Cmd) {
	d, err := m.host.draft()
	if err != nil {
		m.alert = errorAlert(api.UserMessage(err, err.Error()))
		m.host = m.host.retry()
		return m, m.host.Form.Init()
	}
	m.logger.Info("tournament hosted", "title", d.Title, "date", d.Date)
	m.alert = &alert{Title: "Success", Message: "Tournament hosted successfully!"}
	m.host = newHostForm()
	return m, m.host.Form.Init()
}

func (m Model) viewTabBar() string {
	names := m.tabNames()
	cells := make([]string, len(names))
	for i, n := range names {
		label := fmt.Sprintf("%d %s", i+1, n)
		if i == m.tab {
			cells[i] = activeTabStyle.Render(label)
		} else {
			cells[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewPlayer() string {
	var body string
	switch m.tab {
	case tabHome:
		body = output.FormatHomeFeed(models.MockHomeFeed())
	case tabBookings:
		body = m.booking.Form.View()
	case tabLeaderboard:
		body = output.FormatLeaderboard(models.SortLeaderboard(models.MockLeaderboard()))
	case tabInbox:
		body = output.FormatMatches(models.MockMatches())
	case tabPlayerProfile:
		body = output.FormatPlayerProfile(models.MockPlayerProfile())
	}
	return m.viewTabBar() + "\n" + panelStyle.Render(body)
}

func (m Model) viewCoach() string {
	var body string
	switch m.tab {
	case tabDashboard:
		body = strings.Join([]string{
			titleStyle.Render("Coach Dashboard"),
			"",
			successStyle.Render("c") + "  Create Tournament",
			"",
			titleStyle.Render("Dashboard Options"),
			successStyle.Render("t") + "  View My Tournaments",
			subtleStyle.Render("   Manage Players"),
			subtleStyle.Render("   View Notifications"),
		}, "\n")
	case tabHost:
		body = m.host.Form.View()
	case tabMyTournaments:
		body = m.viewMyTournaments()
	case tabCoachProfile:
		body = m.viewCoachProfile()
	}
	return m.viewTabBar() + "\n" + panelStyle.Render(body)
}

func (m Model) viewMyTournaments() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("My Tournaments"))
	sb.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		sb.WriteString(m.filter.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch {
	case !m.tournamentsLoaded:
		sb.WriteString(subtleStyle.Render("Loading..."))
	case m.tournamentsErr != "":
		sb.WriteString(errorStyle.Render(m.tournamentsErr))
	default:
		sb.WriteString(output.FormatTournaments(models.FilterTournaments(m.filter.Value(), m.tournaments)))
	}
	return sb.String()
}

func (m Model) viewCoachProfile() string {
	var body string
	switch {
	case m.profileErr != "":
		body = errorStyle.Render(m.profileErr)
	case m.profile == nil:
		body = subtleStyle.Render("Loading...")
	default:
		body = output.FormatCoachProfile(*m.profile)
	}
	return titleStyle.Render("Coach Profile") + "\n\n" + body
}

// renderWelcome renders the welcome markdown, or "" if rendering fails
func renderWelcome(width int) string {
	out, err := output.RenderMarkdownWithWidth(output.WelcomeMarkdown, width-4)
	if err != nil {
		return ""
	}
	return out + "\n\n" + subtleStyle.Render("Press enter to get started")
}
