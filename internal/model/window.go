package model

import (
	"fmt"
	"strings"
	"time"
)

// Window is a fixed time-of-day interval [Start, End) on a 24h clock,
// expressed as "HH:MM" strings. A window may wrap across midnight
// (Start > End). Start == End means the window is empty.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (w Window) validate(param string) error {
	if _, err := parseHHMM(w.Start); err != nil {
		return configErr(param+".start", w.Start, err.Error())
	}
	if _, err := parseHHMM(w.End); err != nil {
		return configErr(param+".end", w.End, err.Error())
	}
	return nil
}

// Contains reports whether the time-of-day of t falls inside the window.
// Only hour and minute are considered; the date and seconds are ignored.
func (w Window) Contains(t time.Time) bool {
	mins := t.Hour()*60 + t.Minute()
	start, _ := parseHHMM(w.Start)
	end, _ := parseHHMM(w.End)
	return inWindow(mins, start, end)
}

// Overlaps reports whether two windows share any minute of the day.
func (w Window) Overlaps(other Window) bool {
	ws, _ := parseHHMM(w.Start)
	we, _ := parseHHMM(w.End)
	for m := 0; m < 24*60; m++ {
		if inWindow(m, ws, we) && other.containsMinute(m) {
			return true
		}
	}
	return false
}

func (w Window) containsMinute(m int) bool {
	start, _ := parseHHMM(w.Start)
	end, _ := parseHHMM(w.End)
	return inWindow(m, start, end)
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// inWindow checks whether tMins is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start > end, it wraps across midnight.
func inWindow(tMins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return tMins >= start && tMins < end
	}
	// wrap
	return tMins >= start || tMins < end
}
