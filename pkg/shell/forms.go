package shell

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/gamesathi/sathi/internal/api"
	"github.com/gamesathi/sathi/internal/dateparse"
	"github.com/gamesathi/sathi/internal/models"
)

// bookingForm is the nearby-player search on the Bookings tab
type bookingForm struct {
	Form *huh.Form

	Game    string
	Time    string // loose input, see dateparse.ParseClock
	Address string
}

func newBookingForm() *bookingForm {
	f := &bookingForm{Game: models.Games[0]}
	f.build()
	return f
}

func (f *bookingForm) build() {
	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Game").
				Options(huh.NewOptions(models.Games...)...).
				Value(&f.Game),
			huh.NewInput().
				Title("Select Time").
				Placeholder("18:30, 6pm, +2h").
				Value(&f.Time).
				Validate(validClockOrBlank),
			huh.NewInput().
				Title("Enter Location").
				Placeholder("Enter location").
				Value(&f.Address),
		).Title("Find Players"),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

// retry rebuilds the form keeping the entered values
func (f *bookingForm) retry() *bookingForm {
	next := &bookingForm{Game: f.Game, Time: f.Time, Address: f.Address}
	next.build()
	return next
}

// request builds the search for the given position
func (f *bookingForm) request(lat, lon float64) (models.NearbyRequest, error) {
	req := models.NearbyRequest{
		Latitude:  lat,
		Longitude: lon,
		Game:      f.Game,
		Address:   strings.TrimSpace(f.Address),
	}
	if strings.TrimSpace(f.Time) != "" {
		clock, err := dateparse.ParseClock(f.Time)
		if err != nil {
			return req, err
		}
		req.Time = clock
	}
	return req, api.ValidateNearby(req)
}

// Blank inputs pass so the missing-field alert wins over an inline error
func validClockOrBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := dateparse.ParseClock(s); err != nil {
		return errors.New("use 18:30, 6pm or +2h")
	}
	return nil
}

func validDateOrBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := dateparse.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD, tomorrow, saturday or +2w")
	}
	return nil
}

// hostForm is the coach's tournament form. It is validated locally only;
// there is no create endpoint.
type hostForm struct {
	Form *huh.Form

	Title       string
	Description string
	Location    string
	Date        string
	Banner      string // path or URL of the banner image
}

func newHostForm() *hostForm {
	f := &hostForm{}
	f.build()
	return f
}

func (f *hostForm) build() {
	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tournament Title").
				Value(&f.Title),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&f.Description),
			huh.NewInput().
				Title("Location").
				Value(&f.Location),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validDateOrBlank),
			huh.NewInput().
				Title("Banner").
				Placeholder("path or URL of banner image").
				Value(&f.Banner),
		).Title("Host a Tournament"),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

func (f *hostForm) retry() *hostForm {
	next := &hostForm{Title: f.Title, Description: f.Description, Location: f.Location, Date: f.Date, Banner: f.Banner}
	next.build()
	return next
}

func (f *hostForm) draft() (models.TournamentDraft, error) {
	d := models.TournamentDraft{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Banner:      strings.TrimSpace(f.Banner),
	}
	if strings.TrimSpace(f.Date) != "" {
		date, err := dateparse.ParseDate(f.Date)
		if err != nil {
			return d, err
		}
		d.Date = date
	}
	return d, api.ValidateDraft(d)
}
