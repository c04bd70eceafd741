package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/gesture"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/session"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
	modeForgot
)

const (
	fieldName           = "name"
	fieldEmail          = "email"
	fieldPassword       = "password"
	fieldConfirm        = "confirm"
	fieldPhone          = "phone"
	fieldSpecialization = "specialization"
	fieldExperience     = "experience"
)

var fieldLabels = map[string]string{
	fieldName:           "Name",
	fieldEmail:          "Email",
	fieldPassword:       "Password",
	fieldConfirm:        "Confirm Password",
	fieldPhone:          "Phone Number",
	fieldSpecialization: "Specialization",
	fieldExperience:     "Experience (years)",
}

// fieldsFor lists the inputs shown for a role and mode
func fieldsFor(role models.Role, mode loginMode) []string {
	switch {
	case mode == modeForgot:
		return []string{fieldEmail}
	case mode == modeLogin:
		return []string{fieldEmail, fieldPassword}
	case role == models.RoleCoach:
		return []string{fieldName, fieldEmail, fieldPassword, fieldPhone, fieldSpecialization, fieldExperience}
	default:
		return []string{fieldName, fieldEmail, fieldPassword, fieldConfirm, fieldPhone}
	}
}

type loginField struct {
	key   string
	input textinput.Model
}

// loginScreen backs both the player Login and the CoachLogin screens
type loginScreen struct {
	role   models.Role
	mode   loginMode
	fields []loginField
	focus  int
	values map[string]string // survives mode switches

	gesture  gesture.Recorder
	dragging bool
}

func newLoginScreen(role models.Role, mode loginMode) *loginScreen {
	s := &loginScreen{role: role, values: map[string]string{}}
	s.setMode(mode)
	return s
}

func (s *loginScreen) title() string {
	prefix := ""
	if s.role == models.RoleCoach {
		prefix = "Coach "
	}
	switch s.mode {
	case modeRegister:
		return prefix + "Register"
	case modeForgot:
		return "Reset Password"
	}
	return prefix + "Login"
}

// setMode rebuilds the inputs for mode, carrying over typed values
func (s *loginScreen) setMode(mode loginMode) tea.Cmd {
	for _, f := range s.fields {
		s.values[f.key] = f.input.Value()
	}
	s.mode = mode

	keys := fieldsFor(s.role, mode)
	s.fields = make([]loginField, len(keys))
	for i, k := range keys {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabels[k]
		ti.CharLimit = 128
		ti.Cursor.SetMode(cursor.CursorStatic)
		if k == fieldPassword || k == fieldConfirm {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(s.values[k])
		s.fields[i] = loginField{key: k, input: ti}
	}
	return s.focusField(0)
}

func (s *loginScreen) focusField(i int) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	for j := range s.fields {
		s.fields[j].input.Blur()
	}
	n := len(s.fields)
	s.focus = ((i % n) + n) % n
	return s.fields[s.focus].input.Focus()
}

func (s *loginScreen) updateFocused(msg tea.Msg) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	s.fields[s.focus].input, cmd = s.fields[s.focus].input.Update(msg)
	return cmd
}

// value returns a field's input. Passwords are returned verbatim,
// everything else trimmed.
func (s *loginScreen) value(k string) string {
	for _, f := range s.fields {
		if f.key != k {
			continue
		}
		if k == fieldPassword || k == fieldConfirm {
			return f.input.Value()
		}
		return strings.TrimSpace(f.input.Value())
	}
	return ""
}

func (s *loginScreen) setValue(k, v string) {
	for i := range s.fields {
		if s.fields[i].key == k {
			s.fields[i].input.SetValue(v)
		}
	}
}

func (s *loginScreen) clear() {
	s.values = map[string]string{}
	for i := range s.fields {
		s.fields[i].input.Reset()
	}
}

func (s *loginScreen) registerRequest() api.RegisterRequest {
	return api.RegisterRequest{
		Name:           s.value(fieldName),
		Email:          s.value(fieldEmail),
		Password:       s.value(fieldPassword),
		Phone:          s.value(fieldPhone),
		Specialization: s.value(fieldSpecialization),
		Experience:     s.value(fieldExperience),
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.login
	if s == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.Route() == session.RouteCoachLogin {
			return m, m.popRoute()
		}
		if s.mode != modeLogin {
			return m, s.setMode(modeLogin)
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitLogin()
	case key.Matches(msg, m.keys.NextField):
		return m, s.focusField(s.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, s.focusField(s.focus - 1)
	case key.Matches(msg, m.keys.ToggleRegister):
		if s.mode == modeRegister {
			return m, s.setMode(modeLogin)
		}
		return m, s.setMode(modeRegister)
	case key.Matches(msg, m.keys.Forgot):
		// Coaches have no reset flow
		if s.role != models.RoleUser {
			return m, nil
		}
		if s.mode == modeForgot {
			return m, s.setMode(modeLogin)
		}
		return m, s.setMode(modeForgot)
	}
	return m, s.updateFocused(msg)
}

// submitLogin validates locally, then starts the request for the current mode
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	s := m.login

	switch s.mode {
	case modeForgot:
		email := s.value(fieldEmail)
		if email == "" {
			m.alert = errorAlert("Please enter your email to reset your password.")
			return m, nil
		}
		m.busy = "Sending reset link..."
		return m, tea.Batch(m.spinner.Tick, m.forgotPassword(email))

	case modeRegister:
		req, confirm := s.registerRequest(), s.value(fieldConfirm)
		if err := api.ValidateRegister(s.role, req, confirm); err != nil {
			m.alert = errorAlert(err.Error())
			return m, nil
		}
		m.busy = "Creating account..."
		return m, tea.Batch(m.spinner.Tick, m.register(s.role, req, confirm))
	}

	creds := api.Credentials{Email: s.value(fieldEmail), Password: s.value(fieldPassword)}
	if err := api.ValidateLogin(creds); err != nil {
		m.alert = errorAlert(err.Error())
		return m, nil
	}
	m.busy = "Signing in..."
	return m, tea.Batch(m.spinner.Tick, m.signIn(s.role, creds))
}

func (m Model) handleLoggedIn(msg loggedInMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Warn("login failed", "role", msg.role, "err", msg.err)
		fallback := "An error occurred"
		if msg.role == models.RoleCoach {
			fallback = "An error occurred during login"
		}
		m.alert = &alert{Title: "Login Failed", Message: api.UserMessage(msg.err, fallback)}
		return m, nil
	}

	m.token = msg.token
	m.logger.Info("signed in", "role", msg.role)
	if msg.role == models.RoleCoach {
		m.alert = &alert{Title: "Success", Message: "Logged in successfully"}
	}
	return m, m.resetRoute(session.RouteForRole(msg.role))
}

func (m Model) handleRegistered(msg registeredMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Warn("registration failed", "role", msg.role, "err", msg.err)
		fallback := "An error occurred"
		if msg.role == models.RoleCoach {
			fallback = "An error occurred during registration"
		}
		m.alert = &alert{Title: "Registration Failed", Message: api.UserMessage(msg.err, fallback)}
		return m, nil
	}

	m.logger.Info("registered", "role", msg.role)
	text := "Account registered successfully"
	if msg.role == models.RoleCoach {
		text = "Coach registered successfully"
	}
	m.alert = &alert{Title: "Success", Message: text}
	if m.login == nil {
		return m, nil
	}
	if msg.role == models.RoleCoach {
		m.login.clear()
	}
	return m, m.login.setMode(modeLogin)
}

func (m Model) handleResetSent(msg resetSentMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Warn("password reset failed", "err", msg.err)
		m.alert = &alert{Title: "Password Reset Failed", Message: api.UserMessage(msg.err, "An error occurred")}
		return m, nil
	}
	m.alert = &alert{
		Title:   "Password Reset",
		Message: fmt.Sprintf("A password reset link has been sent to %s. Please check your inbox.", msg.email),
	}
	if m.login == nil {
		return m, nil
	}
	return m, m.login.setMode(modeLogin)
}

// handleMouse feeds left-button drags on the player login screen to the
// gesture recorder. Terminal rows grow downward, like touch coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Route() != session.RouteLogin || m.login == nil {
		return m, nil
	}
	// A release always ends the gesture, even when it cannot be acted on
	if msg.Action == tea.MouseActionRelease && (m.alert != nil || m.busy != "") {
		m.login.gesture.Reset()
		m.login.dragging = false
		return m, nil
	}
	if m.alert != nil || m.busy != "" {
		return m, nil
	}

	s := m.login
	p := gesture.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		s.gesture.Reset()
		s.gesture.Add(p)
		s.dragging = true

	case tea.MouseActionMotion:
		if s.dragging {
			s.gesture.Add(p)
		}

	case tea.MouseActionRelease:
		if !s.dragging {
			return m, nil
		}
		s.dragging = false
		if s.gesture.End() {
			m.logger.Info("hidden pattern detected")
			m.alert = &alert{Title: "Hidden Pattern Detected", Message: "Navigating to Coach Login..."}
			return m, m.pushRoute(session.RouteCoachLogin)
		}
	}
	return m, nil
}

func (m Model) viewLogin() string {
	s := m.login
	if s == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(s.title()))
	sb.WriteString("\n")
	for i, f := range s.fields {
		label := labelStyle
		if i == s.focus {
			label = focusedLabelStyle
		}
		sb.WriteString("\n")
		sb.WriteString(label.Render(fieldLabels[f.key]))
		sb.WriteString("\n")
		sb.WriteString(f.input.View())
	}
	return panelStyle.Render(sb.String())
}
