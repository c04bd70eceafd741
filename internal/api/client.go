// Package api is the HTTP client for the GameSathi backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamesathi/sathi/internal/models"
)

// Client is an HTTP client for the GameSathi backend.
type Client struct {
	BaseURL   string
	Token     string
	InstallID string
	HTTP      *http.Client
}

// New creates a new backend client. token may be empty for the
// unauthenticated endpoints.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithTimeout sets the HTTP timeout and returns c
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.HTTP.Timeout = d
	}
	return c
}

// accountPath returns the path prefix for a role's account endpoints
func accountPath(role models.Role) string {
	if role == models.RoleCoach {
		return "/coaches"
	}
	return "/users"
}

// --- Auth types ---

// Credentials is the body of a login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of a register request. Coach-only fields are
// omitted for players.
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
}

// TokenResponse is returned by the login endpoints
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is returned by endpoints that only acknowledge
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// --- Auth methods ---

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, role models.Role, creds Credentials) (*TokenResponse, error) {
	if err := ValidateLogin(creds); err != nil {
		return nil, err
	}
	var resp TokenResponse
	if err := c.doNoAuth(ctx, http.MethodPost, accountPath(role)+"/login", creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	return &resp, nil
}

// Register creates an account. confirm is the repeated password; it is
// checked for players only, as the coach form has no confirmation field.
func (c *Client) Register(ctx context.Context, role models.Role, req RegisterRequest, confirm string) (*MessageResponse, error) {
	if err := ValidateRegister(role, req, confirm); err != nil {
		return nil, err
	}
	var resp MessageResponse
	if err := c.doNoAuth(ctx, http.MethodPost, accountPath(role)+"/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to mail a reset link
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return &ValidationError{Message: "Please enter your email to reset your password."}
	}
	body := map[string]string{"email": email}
	return c.doNoAuth(ctx, http.MethodPost, "/users/forgot-password", body, nil)
}

// GoogleLogin exchanges a Google ID token, obtained elsewhere, for a player token
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*TokenResponse, error) {
	if idToken == "" {
		return nil, &ValidationError{Message: "Google ID token required"}
	}
	body := map[string]string{"idToken": idToken}
	var resp TokenResponse
	if err := c.doNoAuth(ctx, http.MethodPost, "/users/google-login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	return &resp, nil
}

// --- Coach methods ---

// MyTournaments lists the tournaments hosted by the signed-in coach
func (c *Client) MyTournaments(ctx context.Context) ([]models.Tournament, error) {
	var resp []models.Tournament
	if err := c.do(ctx, http.MethodGet, "/tournaments/my/tournaments", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CoachProfile returns the signed-in coach's profile
func (c *Client) CoachProfile(ctx context.Context) (*models.CoachProfile, error) {
	var resp models.CoachProfile
	if err := c.do(ctx, http.MethodGet, "/coaches/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Player search ---

// NotifyNearby notifies players near the given position and returns them
func (c *Client) NotifyNearby(ctx context.Context, req models.NearbyRequest) (*models.NearbyResponse, error) {
	if err := ValidateNearby(req); err != nil {
		return nil, err
	}
	var resp models.NearbyResponse
	if err := c.doNoAuth(ctx, http.MethodPost, "/nearby-players/notify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- HTTP helpers ---

// do executes an authenticated HTTP request.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	if c.Token == "" {
		return ErrNotSignedIn
	}
	return c.doRequest(ctx, method, path, body, result, true)
}

// doNoAuth executes an unauthenticated HTTP request.
func (c *Client) doNoAuth(ctx context.Context, method, path string, body, result any) error {
	return c.doRequest(ctx, method, path, body, result, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any, auth bool) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.InstallID != "" {
		req.Header.Set("X-Install-ID", c.InstallID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
