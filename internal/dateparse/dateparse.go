// Package dateparse turns loose user input into the date and clock formats
// the backend expects: YYYY-MM-DD for tournament dates and 24h HH:MM for
// booking times.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate parses a date relative to now. See ParseDateFrom.
func ParseDate(input string) (string, error) {
	return ParseDateFrom(input, time.Now())
}

// ParseDateFrom parses a date input string relative to the given reference time.
//
// Supported formats:
//   - Exact dates: "2026-03-01"
//   - Keywords: "today", "tomorrow", "next-week" (next Monday)
//   - Relative offsets: "+3d", "+2w"
//   - Day names: "saturday" (next occurrence, never today)
func ParseDateFrom(input string, now time.Time) (string, error) {
	t, err := resolveDate(strings.ToLower(strings.TrimSpace(input)), now)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

func resolveDate(input string, now time.Time) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	if t, err := time.Parse(dateLayout, input); err == nil {
		return t, nil
	}

	switch input {
	case "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "next-week":
		return nextWeekday(now, time.Monday), nil
	}

	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("bad offset %q", input)
		}
		switch input[len(input)-1] {
		case 'd':
			return now.AddDate(0, 0, n), nil
		case 'w':
			return now.AddDate(0, 0, 7*n), nil
		default:
			return time.Time{}, fmt.Errorf("unknown offset unit in %q (use d or w)", input)
		}
	}

	if wd, ok := weekdays[input]; ok {
		return nextWeekday(now, wd), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

// nextWeekday returns the next wd strictly after now
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}

// ParseClock parses a time of day relative to now and returns it as HH:MM.
//
// Supported formats:
//   - 24h: "18:30", "7:05"
//   - 12h: "6:30pm", "6pm", "10:00 AM"
//   - "now", or an offset from now: "+45m", "+2h"
func ParseClock(input string) (string, error) {
	return ParseClockFrom(input, time.Now())
}

// ParseClockFrom is ParseClock with an explicit reference time
func ParseClockFrom(input string, now time.Time) (string, error) {
	in := strings.ToLower(strings.Join(strings.Fields(input), ""))
	if in == "" {
		return "", fmt.Errorf("empty time input")
	}

	if in == "now" {
		return now.Format(clockLayout), nil
	}

	if strings.HasPrefix(in, "+") {
		d, err := time.ParseDuration(in[1:])
		if err != nil || d < 0 {
			return "", fmt.Errorf("bad time offset %q", input)
		}
		return now.Add(d).Format(clockLayout), nil
	}

	for _, layout := range []string{"15:04", "3:04pm", "3pm"} {
		if t, err := time.Parse(layout, in); err == nil {
			return t.Format(clockLayout), nil
		}
	}

	return "", fmt.Errorf("unrecognized time format: %q", input)
}
