// Package shell is the interactive terminal client. It opens on the screen
// the session resolver picks and navigates between the welcome, login,
// player and coach screens.
package shell

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/session"
)

// Backend is the part of the API client the shell calls
type Backend interface {
	Login(ctx context.Context, role models.Role, creds api.Credentials) (*api.TokenResponse, error)
	Register(ctx context.Context, role models.Role, req api.RegisterRequest, confirm string) (*api.MessageResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	MyTournaments(ctx context.Context) ([]models.Tournament, error)
	CoachProfile(ctx context.Context) (*models.CoachProfile, error)
	NotifyNearby(ctx context.Context, req models.NearbyRequest) (*models.NearbyResponse, error)
}

// Options configures a Model
type Options struct {
	Store session.Store
	// NewBackend returns a client sending token as bearer ("" for none)
	NewBackend func(token string) Backend
	Logger     *slog.Logger
	// StartupTimeout bounds the bootstrap read. Zero waits forever.
	StartupTimeout time.Duration
	// Latitude and Longitude are sent with nearby-player searches
	Latitude  float64
	Longitude float64
}

type alert struct {
	Title   string
	Message string
}

func errorAlert(msg string) *alert {
	return &alert{Title: "Error", Message: msg}
}

// Model is the bubbletea model for the whole client
type Model struct {
	opts   Options
	logger *slog.Logger
	keys   keyMap
	help   help.Model

	spinner spinner.Model
	busy    string // non-empty while a request is in flight
	alert   *alert

	stack []session.Route
	token string

	Width  int
	Height int

	login *loginScreen
	tab   int

	// Player
	booking *bookingForm

	// Coach
	host              *hostForm
	tournaments       []models.Tournament
	tournamentsLoaded bool
	tournamentsErr    string
	filter            textinput.Model
	filtering         bool
	profile           *models.CoachProfile
	profileErr        string
}

// New creates a shell model. The first screen is resolved in Init.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "title or location"
	filter.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		opts:    opts,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		busy:    "Loading...",
		filter:  filter,
		Width:   80,
		Height:  24,
	}
}

// Init starts the bootstrap read
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.resolveRoute(), m.spinner.Tick)
}

// Route returns the current screen, or "" while bootstrapping
func (m Model) Route() session.Route {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1]
}

// resetRoute replaces the navigation stack with r
func (m *Model) resetRoute(r session.Route) tea.Cmd {
	m.stack = []session.Route{r}
	return m.enter(r)
}

// pushRoute opens r on top of the current screen
func (m *Model) pushRoute(r session.Route) tea.Cmd {
	m.stack = append(slices.Clip(m.stack), r)
	return m.enter(r)
}

// popRoute returns to the previous screen, if any
func (m *Model) popRoute() tea.Cmd {
	if len(m.stack) < 2 {
		return nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	return m.enter(m.Route())
}

// enter sets up fresh state for screen r
func (m *Model) enter(r session.Route) tea.Cmd {
	m.logger.Debug("navigate", "route", r)
	m.tab = 0
	m.filtering = false

	switch r {
	case session.RouteLogin:
		m.login = newLoginScreen(models.RoleUser, modeLogin)
		return m.login.focusField(0)
	case session.RouteCoachLogin:
		m.login = newLoginScreen(models.RoleCoach, modeRegister)
		return m.login.focusField(0)
	case session.RouteMain:
		m.login = nil
		m.booking = newBookingForm()
	case session.RouteMainCoach:
		m.login = nil
		m.host = newHostForm()
		m.tournaments, m.tournamentsLoaded, m.tournamentsErr = nil, false, ""
		m.profile, m.profileErr = nil, ""
		m.filter.Reset()
	default:
		m.login = nil
	}
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case routeResolvedMsg:
		m.busy = ""
		m.token = msg.token
		m.logger.Info("session resolved", "route", msg.route)
		return m, m.resetRoute(msg.route)

	case loggedInMsg:
		return m.handleLoggedIn(msg)

	case registeredMsg:
		return m.handleRegistered(msg)

	case resetSentMsg:
		return m.handleResetSent(msg)

	case loggedOutMsg:
		m.busy = ""
		if msg.err != nil {
			m.logger.Error("logout", "err", msg.err)
			m.alert = errorAlert("Could not log out. Please try again.")
			return m, nil
		}
		m.token = ""
		m.logger.Info("signed out")
		return m, m.resetRoute(session.RouteLogin)

	case tournamentsMsg:
		m.tournamentsLoaded = true
		if msg.err != nil {
			m.logger.Warn("fetch tournaments", "err", msg.err)
			m.tournamentsErr = api.UserMessage(msg.err, "Failed to fetch tournaments.")
			return m, nil
		}
		m.tournaments, m.tournamentsErr = msg.items, ""
		return m, nil

	case coachProfileMsg:
		if msg.err != nil {
			m.logger.Warn("fetch coach profile", "err", msg.err)
			m.profileErr = api.UserMessage(msg.err, "Failed to fetch profile.")
			return m, nil
		}
		m.profile, m.profileErr = msg.profile, ""
		return m, nil

	case nearbyMsg:
		return m.handleNearby(msg)
	}

	return m.forward(msg)
}

// forward passes internal messages (cursor, form navigation) to whatever
// component currently has focus
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.formFocused():
		return m.updateForm(msg)
	case m.login != nil:
		return m, m.login.updateFocused(msg)
	case m.filtering:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses. Alerts are modal and swallow everything
// except the dismiss keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.alert != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = nil
		}
		return m, nil
	}
	if m.busy != "" {
		return m, nil
	}

	switch m.Route() {
	case session.RouteWelcome:
		switch {
		case key.Matches(msg, m.keys.Start):
			return m, m.resetRoute(session.RouteLogin)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	case session.RouteLogin, session.RouteCoachLogin:
		return m.handleLoginKey(msg)
	case session.RouteMain, session.RouteMainCoach:
		return m.handleTabsKey(msg)
	}
	return m, nil
}

// View renders the current screen
func (m Model) View() string {
	parts := []string{headerStyle.Render("GameSathi")}

	switch m.Route() {
	case session.RouteWelcome:
		parts = append(parts, m.viewWelcome())
	case session.RouteLogin, session.RouteCoachLogin:
		parts = append(parts, m.viewLogin())
	case session.RouteMain:
		parts = append(parts, m.viewPlayer())
	case session.RouteMainCoach:
		parts = append(parts, m.viewCoach())
	}

	if m.busy != "" {
		parts = append(parts, m.spinner.View()+" "+m.busy)
	}
	if m.alert != nil {
		parts = append(parts, alertStyle.Render(titleStyle.Render(m.alert.Title)+"\n"+m.alert.Message))
	}
	parts = append(parts, m.help.ShortHelpView(m.shortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) shortHelp() []key.Binding {
	k := m.keys
	if m.alert != nil {
		return []key.Binding{k.Dismiss}
	}

	switch m.Route() {
	case session.RouteWelcome:
		return []key.Binding{k.Start, k.Quit}
	case session.RouteLogin:
		return []key.Binding{k.Submit, k.NextField, k.ToggleRegister, k.Forgot, k.ForceQuit}
	case session.RouteCoachLogin:
		return []key.Binding{k.Submit, k.NextField, k.ToggleRegister, k.Back, k.ForceQuit}
	case session.RouteMain, session.RouteMainCoach:
		if m.formFocused() {
			return []key.Binding{k.FormNextTab, k.FormPrevTab, k.ForceQuit}
		}
		if m.filtering {
			return []key.Binding{k.ApplyFilter, k.ClearFilter}
		}
		bindings := []key.Binding{k.NextTab, k.JumpTab}
		if m.Route() == session.RouteMainCoach {
			switch m.tab {
			case tabDashboard:
				bindings = append(bindings, k.HostTournament, k.ViewTournaments)
			case tabMyTournaments:
				bindings = append(bindings, k.Filter, k.Refresh)
			case tabCoachProfile:
				bindings = append(bindings, k.Refresh)
			}
		}
		if m.onProfileTab() {
			bindings = append(bindings, k.Logout)
		}
		return append(bindings, k.Quit)
	}
	return nil
}

func (m Model) viewWelcome() string {
	if rendered := renderWelcome(m.Width); rendered != "" {
		return rendered
	}
	return strings.Join([]string{
		titleStyle.Render("Player Finder"),
		subtleStyle.Render("Connect with local athletes"),
	}, "\n")
}
