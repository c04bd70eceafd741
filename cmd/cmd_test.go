package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/kv"
	"github.com/gamesathi/sathi/internal/models"
	"github.com/gamesathi/sathi/internal/session"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// backend is a fake GameSathi API that records what it was sent
type backend struct {
	mu      sync.Mutex
	bodies  map[string]map[string]any
	headers map[string]http.Header
}

func (b *backend) record(name string, h func(w http.ResponseWriter, body map[string]any)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.ContentLength != 0 {
			json.NewDecoder(r.Body).Decode(&body)
		}
		b.mu.Lock()
		b.bodies[name] = body
		b.headers[name] = r.Header.Clone()
		b.mu.Unlock()
		h(w, body)
	}
}

func (b *backend) body(name string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[name]
}

func (b *backend) header(name string) http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.headers[name]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type env struct {
	dir      string
	dataPath string
	backend  *backend
}

// setupEnv points config, data and the API at a temp dir and a fake backend
func setupEnv(t *testing.T) *env {
	t.Helper()
	b := &backend{bodies: map[string]map[string]any{}, headers: map[string]http.Header{}}

	r := mux.NewRouter()
	a := r.PathPrefix("/api").Subrouter()
	login := func(token string) func(http.ResponseWriter, map[string]any) {
		return func(w http.ResponseWriter, body map[string]any) {
			if body["password"] != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"token": token})
		}
	}
	a.HandleFunc("/users/login", b.record("user-login", login("user-token"))).Methods(http.MethodPost)
	a.HandleFunc("/coaches/login", b.record("coach-login", login("coach-token"))).Methods(http.MethodPost)
	a.HandleFunc("/users/register", b.record("user-register", func(w http.ResponseWriter, body map[string]any) {
		writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	})).Methods(http.MethodPost)
	a.HandleFunc("/users/forgot-password", b.record("forgot", func(w http.ResponseWriter, body map[string]any) {
		w.WriteHeader(http.StatusOK)
	})).Methods(http.MethodPost)
	a.HandleFunc("/tournaments/my/tournaments", b.record("my-tournaments", func(w http.ResponseWriter, body map[string]any) {
		writeJSON(w, http.StatusOK, []models.Tournament{
			{ID: "t1", Title: "Spring Cup", Location: "City Stadium", Date: "2025-05-10"},
			{ID: "t2", Title: "Summer Smash", Location: "Riverside Park", Date: "2025-07-01"},
		})
	})).Methods(http.MethodGet)
	a.HandleFunc("/coaches/profile", b.record("profile", func(w http.ResponseWriter, body map[string]any) {
		writeJSON(w, http.StatusOK, models.CoachProfile{Name: "Kiran", Experience: "7"})
	})).Methods(http.MethodGet)
	a.HandleFunc("/nearby-players/notify", b.record("nearby", func(w http.ResponseWriter, body map[string]any) {
		writeJSON(w, http.StatusOK, models.NearbyResponse{Players: []models.Player{{Name: "Ravi"}}})
	})).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	e := &env{dir: dir, dataPath: filepath.Join(dir, "sathi.db"), backend: b}
	t.Setenv("HOME", dir)
	t.Setenv("SATHI_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("SATHI_DATA_PATH", e.dataPath)
	t.Setenv("SATHI_LOG_PATH", filepath.Join(dir, "sathi.log"))
	t.Setenv("SATHI_API_URL", srv.URL+"/api")
	return e
}

// resetFlags restores every flag to its default. cobra keeps flag values
// between Execute calls on the same command tree.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and returns what commands wrote to out
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	err := rootCmd.ExecuteContext(context.Background())
	teardown()
	return out.String(), err
}

// flags reads the session back from the data file
func (e *env) flags(t *testing.T) session.Flags {
	t.Helper()
	s, err := kv.Open(e.dataPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	f, err := session.Load(context.Background(), s)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return f
}

func (e *env) set(t *testing.T, key, value string) {
	t.Helper()
	s, err := kv.Open(e.dataPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	if err := s.Set(context.Background(), key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func TestLoginStoresPlayerSession(t *testing.T) {
	e := setupEnv(t)

	if _, err := run(t, "login", "--email", "a@b.c", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	f := e.flags(t)
	if f.Token != "user-token" || f.UserType != string(models.RoleUser) {
		t.Fatalf("session = %+v", f)
	}
	if got := e.backend.body("user-login")["email"]; got != "a@b.c" {
		t.Errorf("login body email = %v", got)
	}
}

func TestLoginCoach(t *testing.T) {
	e := setupEnv(t)
	e.set(t, session.KeyFirstLaunch, "false")

	if _, err := run(t, "login", "--coach", "--email", "k@b.c", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	f := e.flags(t)
	if f.Token != "coach-token" || f.UserType != string(models.RoleCoach) {
		t.Fatalf("session = %+v", f)
	}
	if f.Route() != session.RouteMainCoach {
		t.Errorf("route after coach login = %s", f.Route())
	}
}

func TestLoginFailureLeavesSignedOut(t *testing.T) {
	e := setupEnv(t)

	_, err := run(t, "login", "--email", "a@b.c", "--password", "wrong")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if f := e.flags(t); f.HasToken() {
		t.Errorf("token stored after failed login: %+v", f)
	}
}

func TestLogoutClearsTokenAndRole(t *testing.T) {
	e := setupEnv(t)
	e.set(t, session.KeyFirstLaunch, "false")

	if _, err := run(t, "login", "--email", "a@b.c", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	f := e.flags(t)
	if f.HasToken() || f.UserType != "" {
		t.Fatalf("session after logout = %+v", f)
	}
	if !f.FirstLaunchDone {
		t.Error("logout must keep the first-launch marker")
	}
	if f.Route() != session.RouteLogin {
		t.Errorf("route after logout = %s", f.Route())
	}
}

func TestRegisterPasswordMismatchSendsNothing(t *testing.T) {
	e := setupEnv(t)

	_, err := run(t, "register", "--name", "A", "--email", "a@b.c", "--phone", "1",
		"--password", "pw", "--confirm", "other")
	if err == nil || err.Error() != "Passwords do not match" {
		t.Fatalf("err = %v", err)
	}
	if e.backend.body("user-register") != nil {
		t.Error("register request sent despite validation failure")
	}
}

func TestForgotPassword(t *testing.T) {
	e := setupEnv(t)

	if _, err := run(t, "forgot-password", "a@b.c"); err != nil {
		t.Fatalf("forgot-password: %v", err)
	}
	if got := e.backend.body("forgot")["email"]; got != "a@b.c" {
		t.Errorf("body email = %v", got)
	}
}

func TestTournamentsRequiresLogin(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "tournaments")
	if !errors.Is(err, api.ErrNotSignedIn) {
		t.Fatalf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestTournamentsSendsTokenAndInstallID(t *testing.T) {
	e := setupEnv(t)
	e.set(t, session.KeyInstallID, "install-1")

	if _, err := run(t, "login", "--coach", "--email", "k@b.c", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := run(t, "tournaments", "--search", "river"); err != nil {
		t.Fatalf("tournaments: %v", err)
	}

	h := e.backend.header("my-tournaments")
	if got := h.Get("Authorization"); got != "Bearer coach-token" {
		t.Errorf("Authorization = %q", got)
	}
	if got := h.Get("X-Install-ID"); got != "install-1" {
		t.Errorf("X-Install-ID = %q", got)
	}
}

func TestPlayersFindUsesConfiguredLocation(t *testing.T) {
	e := setupEnv(t)
	t.Setenv("SATHI_LOCATION_LATITUDE", "12.5")
	t.Setenv("SATHI_LOCATION_LONGITUDE", "77.25")

	if _, err := run(t, "players", "find", "--game", "Tennis", "--time", "6pm", "--address", "Court 3"); err != nil {
		t.Fatalf("players find: %v", err)
	}

	body := e.backend.body("nearby")
	if body["time"] != "18:00" || body["game"] != "Tennis" || body["address"] != "Court 3" {
		t.Errorf("body = %v", body)
	}
	if body["latitude"] != 12.5 || body["longitude"] != 77.25 {
		t.Errorf("position = %v, %v", body["latitude"], body["longitude"])
	}
}

func TestPlayersFindLocationFlagsOverride(t *testing.T) {
	e := setupEnv(t)
	t.Setenv("SATHI_LOCATION_LATITUDE", "12.5")

	if _, err := run(t, "players", "find", "-g", "Cricket", "-t", "07:00", "-a", "Oval", "--lat", "1.5"); err != nil {
		t.Fatalf("players find: %v", err)
	}
	if got := e.backend.body("nearby")["latitude"]; got != 1.5 {
		t.Errorf("latitude = %v", got)
	}
}

func TestPlayersFindValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no game", []string{"--time", "07:00", "--address", "x"}, "Please select a game."},
		{"no time", []string{"--game", "Tennis", "--address", "x"}, "Please select a time."},
		{"no address", []string{"--game", "Tennis", "--time", "07:00"}, "Please enter a location."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupEnv(t)
			_, err := run(t, append([]string{"players", "find"}, tt.args...)...)
			if err == nil || err.Error() != tt.want {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			if e.backend.body("nearby") != nil {
				t.Error("request sent despite validation failure")
			}
		})
	}
}

func TestHost(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "host", "--title", "Cup", "--description", "Fun", "--location", "Park", "--date", "2026-03-01")
	if err == nil || err.Error() != "Please fill in all fields and upload a banner." {
		t.Fatalf("missing banner: err = %v", err)
	}

	if _, err := run(t, "host", "--title", "Cup", "--description", "Fun", "--location", "Park",
		"--date", "2026-03-01", "--banner", "cup.png"); err != nil {
		t.Fatalf("valid draft: %v", err)
	}

	if _, err := run(t, "host", "--date", "someday"); err == nil {
		t.Fatal("bad date accepted")
	}
}

func TestGesture(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "gesture", "0,10", "5,20", "10,15")
	if err != nil || !strings.Contains(out, "Z pattern") {
		t.Fatalf("Z path: out=%q err=%v", out, err)
	}

	out, err = run(t, "gesture", "0,0", "1,1")
	if err != nil || !strings.Contains(out, "No match") {
		t.Fatalf("short path: out=%q err=%v", out, err)
	}

	if _, err := run(t, "gesture", "nope"); err == nil {
		t.Fatal("malformed point accepted")
	}
}

func TestStatusLeavesFirstLaunchUnset(t *testing.T) {
	e := setupEnv(t)

	if _, err := run(t, "status", "--json"); err != nil {
		t.Fatalf("status: %v", err)
	}
	f := e.flags(t)
	if f.FirstLaunchDone {
		t.Error("status marked the first launch as done")
	}
	if f.Route() != session.RouteWelcome {
		t.Errorf("route = %s, want Welcome", f.Route())
	}
}

func TestConfigSetGet(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "config", "set", "location.latitude", "1.5"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := run(t, "config", "get", "location.latitude")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "1.5" {
		t.Errorf("config get = %q", out)
	}

	if _, err := run(t, "config", "set", "nope", "1"); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestVersionShort(t *testing.T) {
	setupEnv(t)
	SetVersion("v1.2.3")
	t.Cleanup(func() { SetVersion("") })

	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "v1.2.3" {
		t.Errorf("version --short = %q", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", "json")

	l.Info("quiet")
	l.Warn("loud", "k", "v")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info logged at warn level: %s", out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("not JSON: %q", out)
	}
	if rec["msg"] != "loud" || rec["k"] != "v" {
		t.Errorf("record = %v", rec)
	}

	buf.Reset()
	newLogger(&buf, "bogus", "text").Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("unknown level should default to info: %q", buf.String())
	}
}
