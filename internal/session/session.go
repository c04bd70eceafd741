// Package session decides which screen the client opens on and owns the
// persisted session flags: the first-launch marker, the bearer token and
// the account role.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gamesathi/sathi/internal/models"
	"github.com/google/uuid"
)

// Storage keys. The names match the keys the mobile client used so an
// exported store can be read by either.
const (
	KeyFirstLaunch = "isFirstLaunch"
	KeyToken       = "userToken"
	KeyUserType    = "userType"
	KeyInstallID   = "installId"
)

// firstLaunchDone is the only value ever written under KeyFirstLaunch
const firstLaunchDone = "false"

// Reader is the read side of the key-value store
type Reader interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Store is the key-value store the session flags live in
type Store interface {
	Reader
	SetMany(ctx context.Context, pairs map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// Route is the symbolic name of a top-level screen
type Route string

const (
	RouteWelcome    Route = "Welcome"
	RouteLogin      Route = "Login"
	RouteMain       Route = "Main"
	RouteMainCoach  Route = "MainCoach"
	RouteCoachLogin Route = "CoachLogin"
)

// Flags is a snapshot of the persisted session values.
// Empty strings are treated as absent.
type Flags struct {
	FirstLaunchDone bool
	Token           string
	UserType        string
	InstallID       string
}

// HasToken reports whether a bearer token is stored
func (f Flags) HasToken() bool {
	return f.Token != ""
}

// Route picks the initial screen for f. Rules are checked in order:
// an unseen install goes to Welcome, then a token with a known role goes
// to that role's home, and everything else goes to Login.
func (f Flags) Route() Route {
	switch {
	case !f.FirstLaunchDone:
		return RouteWelcome
	case f.HasToken() && f.UserType == string(models.RoleUser):
		return RouteMain
	case f.HasToken() && f.UserType == string(models.RoleCoach):
		return RouteMainCoach
	default:
		return RouteLogin
	}
}

// RouteForRole returns the home route of a freshly signed-in role
func RouteForRole(role models.Role) Route {
	if role == models.RoleCoach {
		return RouteMainCoach
	}
	return RouteMain
}

// Load reads the session flags without side effects
func Load(ctx context.Context, r Reader) (Flags, error) {
	f, err := loadRouteFlags(ctx, r)
	if err != nil {
		return Flags{}, err
	}
	if f.InstallID, err = get(ctx, r, KeyInstallID); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// loadRouteFlags reads only the three keys the route depends on
func loadRouteFlags(ctx context.Context, r Reader) (Flags, error) {
	var f Flags

	marker, err := get(ctx, r, KeyFirstLaunch)
	if err != nil {
		return Flags{}, err
	}
	f.FirstLaunchDone = marker != ""

	if f.Token, err = get(ctx, r, KeyToken); err != nil {
		return Flags{}, err
	}
	if f.UserType, err = get(ctx, r, KeyUserType); err != nil {
		return Flags{}, err
	}
	return f, nil
}

func get(ctx context.Context, r Reader, key string) (string, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

// Resolve chooses the initial route from the stored flags. On the first
// launch it also marks the install as seen so Welcome is shown only once.
//
// Resolve never fails: a failed read of the route keys, or a failed write
// of the first-launch marker, is logged and the user lands on Login.
// Nothing is cached; every call reads the store again.
func Resolve(ctx context.Context, store Store, logger *slog.Logger) Route {
	if logger == nil {
		logger = slog.Default()
	}

	flags, err := loadRouteFlags(ctx, store)
	if err != nil {
		logger.Warn("session bootstrap: read failed, falling back to login", "err", err)
		return RouteLogin
	}

	route := flags.Route()
	if route == RouteWelcome {
		// The install id is not part of the route; a failed read just mints a new one
		installID, err := get(ctx, store, KeyInstallID)
		if err != nil {
			logger.Warn("session bootstrap: could not read install id", "err", err)
		}
		if installID == "" {
			installID = uuid.NewString()
		}
		if err := store.SetMany(ctx, map[string]string{
			KeyFirstLaunch: firstLaunchDone,
			KeyInstallID:   installID,
		}); err != nil {
			logger.Warn("session bootstrap: could not mark first launch, falling back to login", "err", err)
			return RouteLogin
		}
	}

	logger.Debug("session bootstrap", "route", string(route), "has_token", flags.HasToken(), "user_type", flags.UserType)
	return route
}

// ErrEmptyToken is returned when a login response carries no token
var ErrEmptyToken = errors.New("empty token")

// Login persists a successful sign-in. Token and role are written in one
// transaction so a crash cannot leave a token without a role.
func Login(ctx context.Context, store Store, token string, role models.Role) error {
	if token == "" {
		return ErrEmptyToken
	}
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}
	if err := store.SetMany(ctx, map[string]string{
		KeyToken:    token,
		KeyUserType: string(role),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout removes the token and role together. The first-launch marker stays.
func Logout(ctx context.Context, store Store) error {
	if err := store.DeleteMany(ctx, KeyToken, KeyUserType); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out
func Token(ctx context.Context, r Reader) (string, error) {
	return get(ctx, r, KeyToken)
}
