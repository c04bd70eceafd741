package api

import (
	"testing"

	"github.com/gamesathi/sathi/internal/models"
)

func TestValidateRegister(t *testing.T) {
	full := RegisterRequest{Name: "A", Email: "a@b.c", Password: "pw", Phone: "1"}
	coach := RegisterRequest{Name: "A", Email: "a@b.c", Password: "pw", Phone: "1", Specialization: "Tennis", Experience: "3"}

	tests := []struct {
		name    string
		role    models.Role
		req     RegisterRequest
		confirm string
		wantMsg string
	}{
		{"player ok", models.RoleUser, full, "pw", ""},
		{"player missing phone", models.RoleUser, RegisterRequest{Name: "A", Email: "a@b.c", Password: "pw"}, "pw", "Please fill all fields"},
		{"player missing confirm", models.RoleUser, full, "", "Please fill all fields"},
		{"player mismatch", models.RoleUser, full, "other", "Passwords do not match"},
		{"coach ok without confirm", models.RoleCoach, coach, "", ""},
		{"coach missing experience", models.RoleCoach, full, "", "Please fill all fields"},
		{"whitespace name", models.RoleUser, RegisterRequest{Name: "  ", Email: "a@b.c", Password: "pw", Phone: "1"}, "pw", "Please fill all fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.role, tt.req, tt.confirm)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("err = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateNearby(t *testing.T) {
	ok := models.NearbyRequest{Game: "Tennis", Time: "07:00", Address: "Court 3"}
	if err := ValidateNearby(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		req  models.NearbyRequest
		want string
	}{
		{models.NearbyRequest{Time: "07:00", Address: "x"}, "Please select a game."},
		{models.NearbyRequest{Game: "Tennis", Address: "x"}, "Please select a time."},
		{models.NearbyRequest{Game: "Tennis", Time: "07:00"}, "Please enter a location."},
	}
	for _, tt := range tests {
		if err := ValidateNearby(tt.req); err == nil || err.Error() != tt.want {
			t.Errorf("ValidateNearby(%+v) = %v, want %q", tt.req, err, tt.want)
		}
	}

	if err := ValidateNearby(models.NearbyRequest{Game: "Chess", Time: "07:00", Address: "x"}); err == nil {
		t.Error("unknown game should be rejected")
	}
}

func TestValidateDraft(t *testing.T) {
	d := models.TournamentDraft{Title: "Cup", Description: "Fun", Location: "Park", Date: "2025-06-01", Banner: "banner.png"}
	if err := ValidateDraft(d); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	d.Banner = ""
	if err := ValidateDraft(d); err == nil || err.Error() != "Please fill in all fields and upload a banner." {
		t.Fatalf("err = %v", err)
	}
}
