package models

import (
	"sort"
	"time"
)

// Role identifies which kind of account is signed in
type Role string

const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleCoach
}

// ParseRole converts a stored string into a Role. Unknown values return ok=false.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// Tournament is a tournament as returned by the backend
type Tournament struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Banner      string `json:"banner"`
	HostedBy    string `json:"hostedBy"`
	Teams       []Team `json:"teams,omitempty"`
}

// Team is an entry in a tournament's team list. The backend does not
// document its shape; only the name is rendered.
type Team struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ParsedDate returns the tournament date, accepting RFC 3339 or a bare
// YYYY-MM-DD. ok is false when neither layout matches.
func (t Tournament) ParsedDate() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02"} {
		if d, err := time.Parse(layout, t.Date); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// TournamentDraft is the locally validated input of the host form
type TournamentDraft struct {
	Title       string
	Description string
	Location    string
	Date        string // YYYY-MM-DD
	Banner      string // path or URL of the banner image
}

// CoachProfile is the signed-in coach's profile
type CoachProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
}

// Player is a nearby player returned by a search
type Player struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Games lists the sports offered by the nearby-player search
var Games = []string{"Badminton", "Football", "Cricket", "Volleyball", "Tennis"}

// IsGame reports whether name is one of Games
func IsGame(name string) bool {
	for _, g := range Games {
		if g == name {
			return true
		}
	}
	return false
}

// NearbyRequest is the body of a nearby-player notification
type NearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Game      string  `json:"game"`
	Time      string  `json:"time"` // HH:MM
	Address   string  `json:"address"`
}

// NearbyResponse lists the players notified by a search
type NearbyResponse struct {
	Players []Player `json:"players"`
}

// LeaderboardEntry is one row of the coins leaderboard
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Coins int    `json:"coins"`
}

// SortLeaderboard returns a copy of entries ordered by coins, highest first.
// Ties keep their input order.
func SortLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	sorted := make([]LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Coins > sorted[j].Coins
	})
	return sorted
}

// MatchStatus is the state of a scheduled match
type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchCompleted MatchStatus = "completed"
)

// Match is a scheduled or played match shown in the inbox
type Match struct {
	ID       string      `json:"id"`
	Opponent string      `json:"opponent"`
	Date     string      `json:"date"`
	Time     string      `json:"time"`
	Status   MatchStatus `json:"status"`
	Location string      `json:"location"`
}

// SplitMatches partitions matches into upcoming and completed, keeping order
func SplitMatches(matches []Match) (upcoming, completed []Match) {
	for _, m := range matches {
		switch m.Status {
		case MatchUpcoming:
			upcoming = append(upcoming, m)
		case MatchCompleted:
			completed = append(completed, m)
		}
	}
	return upcoming, completed
}

// Challenge is the featured activity card on the home feed
type Challenge struct {
	Title      string
	DistanceKM float64
	Calories   int
}

// Metric is a small labelled value on the home feed
type Metric struct {
	Label string
	Value string
}

// HomeFeed is the content of the player home screen
type HomeFeed struct {
	Greeting   string
	Challenge  Challenge
	Metrics    []Metric
	Categories []string
}

// PlayerProfile is what the player profile tab shows
type PlayerProfile struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	FavoriteGames []string `json:"favoriteGames"`
	SkillLevel    string   `json:"skillLevel"`
}
