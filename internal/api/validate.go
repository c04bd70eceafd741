package api

import (
	"strings"

	"github.com/gamesathi/sathi/internal/models"
)

// ValidationError is a form error caught before any request is sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateLogin checks a login form
func ValidateLogin(c Credentials) error {
	if blank(c.Email) || c.Password == "" {
		return invalid("Please enter email and password")
	}
	return nil
}

// ValidateRegister checks a registration form for role
func ValidateRegister(role models.Role, r RegisterRequest, confirm string) error {
	if role == models.RoleCoach {
		if blank(r.Name) || blank(r.Email) || r.Password == "" || blank(r.Phone) ||
			blank(r.Specialization) || blank(r.Experience) {
			return invalid("Please fill all fields")
		}
		return nil
	}

	if blank(r.Name) || blank(r.Email) || r.Password == "" || confirm == "" || blank(r.Phone) {
		return invalid("Please fill all fields")
	}
	if r.Password != confirm {
		return invalid("Passwords do not match")
	}
	return nil
}

// ValidateNearby checks a nearby-player search
func ValidateNearby(r models.NearbyRequest) error {
	switch {
	case blank(r.Game):
		return invalid("Please select a game.")
	case !models.IsGame(r.Game):
		return invalid("Unknown game " + r.Game + ". Choose one of: " + strings.Join(models.Games, ", "))
	case blank(r.Time):
		return invalid("Please select a time.")
	case blank(r.Address):
		return invalid("Please enter a location.")
	}
	return nil
}

// ValidateDraft checks a tournament host form
func ValidateDraft(d models.TournamentDraft) error {
	if blank(d.Title) || blank(d.Description) || blank(d.Location) || blank(d.Date) || blank(d.Banner) {
		return invalid("Please fill in all fields and upload a banner.")
	}
	return nil
}
