// Package hours evaluates venue opening-hours strings ("HH:MM-HH:MM",
// 24-hour clock, possibly wrapping past midnight) against an instant.
package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// Unknown is returned for absent or malformed opening hours. Unknown
// hours never claim to be open: the badge must always render something.
const Unknown = "Unknown"

// Status is the derived open/closed state at some instant.
// Computed on demand, never persisted.
type Status struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

// Evaluate computes the open/closed state for the given opening-hours
// string at the given instant. The window is half-open: the instant
// equal to start is open, the instant equal to end is closed. A window
// whose end precedes its start crosses midnight and covers
// [start,24:00) plus [00:00,end).
func Evaluate(spec string, now time.Time) Status {
	start, end, ok := parseWindow(spec)
	if !ok {
		return Status{Open: false, Message: Unknown}
	}

	nowMin := now.Hour()*60 + now.Minute()

	var open bool
	if end >= start {
		open = nowMin >= start && nowMin < end
	} else { // wraps past midnight
		open = nowMin >= start || nowMin < end
	}

	if open {
		left := (end - nowMin + minutesPerDay) % minutesPerDay
		return Status{Open: true, Message: "Open · closes in " + formatMinutes(left)}
	}
	left := (start - nowMin + minutesPerDay) % minutesPerDay
	return Status{Open: false, Message: "Closed · opens in " + formatMinutes(left)}
}

// IsOpen returns just the boolean half of Evaluate, for sort
// comparators. Agrees with Evaluate for all inputs.
func IsOpen(spec string, now time.Time) bool {
	return Evaluate(spec, now).Open
}

// Valid reports whether the string parses as an opening-hours window.
func Valid(spec string) bool {
	_, _, ok := parseWindow(spec)
	return ok
}

// parseWindow splits "HH:MM-HH:MM" into minutes-since-midnight halves.
// Whitespace around either half is tolerated ("21:00 - 04:00" appears
// in stored data).
func parseWindow(spec string) (start, end int, ok bool) {
	first, second, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}
	start, ok = parseClock(strings.TrimSpace(first))
	if !ok {
		return 0, 0, false
	}
	end, ok = parseClock(strings.TrimSpace(second))
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
