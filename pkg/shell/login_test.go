package shell

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/session"
)

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// drag presses at the first point, moves through the rest and releases
func drag(t *testing.T, m Model, pts ...[2]int) Model {
	t.Helper()
	m = send(t, m, mouse(tea.MouseActionPress, pts[0][0], pts[0][1]))
	for _, p := range pts[1:] {
		m = send(t, m, mouse(tea.MouseActionMotion, p[0], p[1]))
	}
	last := pts[len(pts)-1]
	return send(t, m, mouse(tea.MouseActionRelease, last[0], last[1]))
}

func TestZDragOpensCoachLogin(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteLogin)

	// down-right to the middle, then up-right
	m = drag(t, m, [2]int{2, 2}, [2]int{6, 6}, [2]int{10, 10}, [2]int{14, 6}, [2]int{18, 2})

	if m.Route() != session.RouteCoachLogin {
		t.Fatalf("route = %q, want CoachLogin", m.Route())
	}
	if m.alert == nil || m.alert.Title != "Hidden Pattern Detected" {
		t.Errorf("alert = %+v", m.alert)
	}
	if m.login.role != models.RoleCoach || m.login.mode != modeRegister {
		t.Errorf("coach screen role=%q mode=%d", m.login.role, m.login.mode)
	}
}

func TestNonZDragStaysOnLogin(t *testing.T) {
	tests := []struct {
		name string
		pts  [][2]int
	}{
		{"straight right", [][2]int{{0, 5}, {5, 5}, {10, 5}, {15, 5}}},
		{"down only", [][2]int{{5, 0}, {5, 5}, {5, 10}}},
		{"two points", [][2]int{{0, 0}, {20, 20}}},
		{"reverse z", [][2]int{{18, 2}, {14, 6}, {10, 10}, {6, 6}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, &fakeBackend{})
			m = at(t, m, session.RouteLogin)

			m = drag(t, m, tt.pts...)
			if m.Route() != session.RouteLogin {
				t.Fatalf("route = %q, want Login", m.Route())
			}
			if m.alert != nil {
				t.Errorf("unexpected alert %+v", m.alert)
			}
			if n := m.login.gesture.Len(); n != 0 {
				t.Errorf("recorder holds %d points after release", n)
			}
		})
	}
}

func TestGesturePathResetsBetweenDrags(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteLogin)

	// First half of a Z, released early
	m = drag(t, m, [2]int{2, 2}, [2]int{6, 6}, [2]int{10, 10})
	// Second half alone is not a Z either
	m = drag(t, m, [2]int{10, 10}, [2]int{14, 6}, [2]int{18, 2})

	if m.Route() != session.RouteLogin {
		t.Fatalf("separate drags combined into a Z: route = %q", m.Route())
	}
}

func TestReleaseUnderAlertClearsGesture(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteLogin)

	m = send(t, m, mouse(tea.MouseActionPress, 2, 2))
	m = send(t, m, mouse(tea.MouseActionMotion, 6, 6))
	m.alert = errorAlert("Please fill all fields")
	m = send(t, m, mouse(tea.MouseActionRelease, 6, 6))

	if m.login.dragging {
		t.Error("still dragging after release")
	}
	if n := m.login.gesture.Len(); n != 0 {
		t.Errorf("recorder holds %d points after release", n)
	}
	if m.Route() != session.RouteLogin {
		t.Errorf("route = %q, want Login", m.Route())
	}
}

func TestGestureOnlyOnPlayerLogin(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteLogin)
	m.pushRoute(session.RouteCoachLogin)

	m = drag(t, m, [2]int{2, 2}, [2]int{6, 6}, [2]int{10, 10}, [2]int{14, 6}, [2]int{18, 2})
	if len(m.stack) != 2 || m.alert != nil {
		t.Errorf("gesture handled on coach login: stack=%v alert=%+v", m.stack, m.alert)
	}
}

func TestEscLeavesCoachLogin(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteLogin)
	m.pushRoute(session.RouteCoachLogin)

	m = send(t, m, keyPress("esc"))
	if m.Route() != session.RouteLogin {
		t.Fatalf("route = %q, want Login", m.Route())
	}
	if m.login.role != models.RoleUser {
		t.Errorf("login role = %q", m.login.role)
	}
}

func TestPlayerLoginStoresSession(t *testing.T) {
	fb := &fakeBackend{loginToken: "tok-user"}
	m, store := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)

	m = send(t, m, keyPress("a@b.c"))
	m = send(t, m, keyPress("tab"))
	m = send(t, m, keyPress("secret"))
	if got := m.login.value(fieldEmail); got != "a@b.c" {
		t.Fatalf("email field = %q", got)
	}

	m = send(t, m, keyPress("enter"))
	if m.Route() != session.RouteMain {
		t.Fatalf("route = %q, want Main (alert %+v)", m.Route(), m.alert)
	}
	if m.token != "tok-user" {
		t.Errorf("token = %q", m.token)
	}

	flags, err := session.Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	if flags.Token != "tok-user" || flags.UserType != string(models.RoleUser) {
		t.Errorf("stored flags = %+v", flags)
	}
}

func TestLoginValidation(t *testing.T) {
	fb := &fakeBackend{loginToken: "tok"}
	m, _ := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)

	m = send(t, m, keyPress("enter"))
	if m.alert == nil || m.alert.Message != "Please enter email and password" {
		t.Fatalf("alert = %+v", m.alert)
	}
	if len(fb.logins) != 0 {
		t.Error("backend called with empty form")
	}
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	fb := &fakeBackend{loginErr: &api.Error{Status: 400, Message: "Invalid credentials"}}
	m, _ := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)
	m.login.setValue(fieldEmail, "a@b.c")
	m.login.setValue(fieldPassword, "bad")

	m = send(t, m, keyPress("enter"))
	if m.Route() != session.RouteLogin {
		t.Fatalf("route = %q", m.Route())
	}
	if m.alert == nil || m.alert.Title != "Login Failed" || m.alert.Message != "Invalid credentials" {
		t.Errorf("alert = %+v", m.alert)
	}
	if m.busy != "" {
		t.Error("still busy after failure")
	}
}

func TestCoachLoginOpensMainCoach(t *testing.T) {
	fb := &fakeBackend{loginToken: "tok-coach"}
	m, store := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)
	m.pushRoute(session.RouteCoachLogin)

	m = send(t, m, keyPress("ctrl+r"))
	if m.login.mode != modeLogin {
		t.Fatalf("mode = %d, want login", m.login.mode)
	}
	m.login.setValue(fieldEmail, "coach@b.c")
	m.login.setValue(fieldPassword, "pw")

	m = send(t, m, keyPress("enter"))
	if m.Route() != session.RouteMainCoach {
		t.Fatalf("route = %q, want MainCoach", m.Route())
	}
	if len(m.stack) != 1 {
		t.Errorf("stack not reset: %v", m.stack)
	}
	if m.alert == nil || m.alert.Message != "Logged in successfully" {
		t.Errorf("alert = %+v", m.alert)
	}
	if fb.logins[0] != models.RoleCoach {
		t.Errorf("login role = %q", fb.logins[0])
	}

	// A later launch lands on the coach screens
	if err := store.Set(context.Background(), session.KeyFirstLaunch, "false"); err != nil {
		t.Fatal(err)
	}
	m2 := boot(t, New(Options{Store: store, NewBackend: fb.client}))
	if m2.Route() != session.RouteMainCoach {
		t.Errorf("relaunch route = %q, want MainCoach", m2.Route())
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	fb := &fakeBackend{}
	m, _ := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)

	m = send(t, m, keyPress("ctrl+r"))
	for k, v := range map[string]string{
		fieldName: "Asha", fieldEmail: "a@b.c", fieldPassword: "one", fieldConfirm: "two", fieldPhone: "99",
	} {
		m.login.setValue(k, v)
	}

	m = send(t, m, keyPress("enter"))
	if m.alert == nil || m.alert.Message != "Passwords do not match" {
		t.Fatalf("alert = %+v", m.alert)
	}
	if len(fb.registered) != 0 {
		t.Error("backend called despite mismatch")
	}
}

func TestRegisterSwitchesToLogin(t *testing.T) {
	fb := &fakeBackend{}
	m, _ := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)

	m = send(t, m, keyPress("ctrl+r"))
	for k, v := range map[string]string{
		fieldName: "Asha", fieldEmail: "a@b.c", fieldPassword: "pw", fieldConfirm: "pw", fieldPhone: "99",
	} {
		m.login.setValue(k, v)
	}

	m = send(t, m, keyPress("enter"))
	if len(fb.registered) != 1 || fb.registered[0].Name != "Asha" {
		t.Fatalf("registered = %+v", fb.registered)
	}
	if m.alert == nil || m.alert.Message != "Account registered successfully" {
		t.Errorf("alert = %+v", m.alert)
	}
	if m.login.mode != modeLogin {
		t.Errorf("mode = %d, want login", m.login.mode)
	}
	if got := m.login.value(fieldEmail); got != "a@b.c" {
		t.Errorf("email not carried over: %q", got)
	}
}

func TestForgotPassword(t *testing.T) {
	fb := &fakeBackend{}
	m, _ := newTestModel(t, fb)
	m = at(t, m, session.RouteLogin)

	m = send(t, m, keyPress("ctrl+f"))
	if m.login.mode != modeForgot {
		t.Fatalf("mode = %d", m.login.mode)
	}
	m = send(t, m, keyPress("enter"))
	if m.alert == nil || !strings.Contains(m.alert.Message, "Please enter your email") {
		t.Fatalf("alert = %+v", m.alert)
	}
	m.alert = nil

	m.login.setValue(fieldEmail, "a@b.c")
	m = send(t, m, keyPress("enter"))
	if len(fb.resetEmails) != 1 || fb.resetEmails[0] != "a@b.c" {
		t.Fatalf("reset emails = %v", fb.resetEmails)
	}
	if m.alert == nil || m.alert.Title != "Password Reset" {
		t.Errorf("alert = %+v", m.alert)
	}
}

func TestCoachHasNoForgotPassword(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m = at(t, m, session.RouteCoachLogin)

	m = send(t, m, keyPress("ctrl+f"))
	if m.login.mode != modeRegister {
		t.Errorf("mode = %d, want register", m.login.mode)
	}
}
