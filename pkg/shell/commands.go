package shell

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/session"
)

// routeResolvedMsg carries the bootstrap decision
type routeResolvedMsg struct {
	route session.Route
	token string
}

type loggedInMsg struct {
	role  models.Role
	token string
	err   error
}

type registeredMsg struct {
	role models.Role
	err  error
}

type resetSentMsg struct {
	email string
	err   error
}

type loggedOutMsg struct {
	err error
}

type tournamentsMsg struct {
	items []models.Tournament
	err   error
}

type coachProfileMsg struct {
	profile *models.CoachProfile
	err     error
}

type nearbyMsg struct {
	req     models.NearbyRequest
	players int
	err     error
}

// resolveRoute reads the session flags and picks the first screen.
// A session token is loaded alongside so signed-in screens can call the API.
func (m Model) resolveRoute() tea.Cmd {
	store, logger, timeout := m.opts.Store, m.logger, m.opts.StartupTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		msg := routeResolvedMsg{route: session.Resolve(ctx, store, logger)}
		if msg.route == session.RouteMain || msg.route == session.RouteMainCoach {
			token, err := session.Token(ctx, store)
			if err != nil {
				logger.Warn("read token", "err", err)
			}
			msg.token = token
		}
		return msg
	}
}

func (m Model) signIn(role models.Role, creds api.Credentials) tea.Cmd {
	backend, store := m.opts.NewBackend(""), m.opts.Store
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := backend.Login(ctx, role, creds)
		if err != nil {
			return loggedInMsg{role: role, err: err}
		}
		if err := session.Login(ctx, store, resp.Token, role); err != nil {
			return loggedInMsg{role: role, err: fmt.Errorf("save session: %w", err)}
		}
		return loggedInMsg{role: role, token: resp.Token}
	}
}

func (m Model) register(role models.Role, req api.RegisterRequest, confirm string) tea.Cmd {
	backend := m.opts.NewBackend("")
	return func() tea.Msg {
		_, err := backend.Register(context.Background(), role, req, confirm)
		return registeredMsg{role: role, err: err}
	}
}

func (m Model) forgotPassword(email string) tea.Cmd {
	backend := m.opts.NewBackend("")
	return func() tea.Msg {
		return resetSentMsg{email: email, err: backend.ForgotPassword(context.Background(), email)}
	}
}

func (m Model) logout() tea.Cmd {
	store := m.opts.Store
	return func() tea.Msg {
		return loggedOutMsg{err: session.Logout(context.Background(), store)}
	}
}

func (m Model) fetchTournaments() tea.Cmd {
	backend := m.opts.NewBackend(m.token)
	return func() tea.Msg {
		items, err := backend.MyTournaments(context.Background())
		return tournamentsMsg{items: items, err: err}
	}
}

func (m Model) fetchCoachProfile() tea.Cmd {
	backend := m.opts.NewBackend(m.token)
	return func() tea.Msg {
		p, err := backend.CoachProfile(context.Background())
		return coachProfileMsg{profile: p, err: err}
	}
}

func (m Model) findPlayers(req models.NearbyRequest) tea.Cmd {
	backend := m.opts.NewBackend(m.token)
	return func() tea.Msg {
		resp, err := backend.NotifyNearby(context.Background(), req)
		if err != nil {
			return nearbyMsg{req: req, err: err}
		}
		return nearbyMsg{req: req, players: len(resp.Players)}
	}
}
