// Package parse turns assistant reply text into structured scheduling data:
// a compact day/time token grammar and a fenced action block format.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var timePartRe = regexp.MustCompile(`^(\d{1,2})(?:[H:](\d{2}))?(AM|PM)?$`)

var weekdays = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// ParseTimeToken resolves a time token against now.
//
// ISO timestamps are tried first. Otherwise the token follows the grammar
// <TODAY|TOMORROW|NEXT_<WEEKDAY>>[_<TIME>] where TIME is 1-2 hour digits with
// an optional H- or colon-separated minute pair and an optional AM/PM suffix,
// e.g. TODAY_18H30, TOMORROW_9AM, NEXT_MONDAY_14:30. A missing TIME defaults
// to 9:00. NEXT always lands strictly in the future: a weekday matching today
// means one week out, not today. Anything unrecognized degrades to today at
// 9:00 rather than failing, and seconds are always truncated.
func ParseTimeToken(token string, now time.Time) time.Time {
	token = strings.TrimSpace(token)

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, token, now.Location()); err == nil {
			return t.Truncate(time.Minute)
		}
	}

	parts := strings.Split(strings.ToUpper(token), "_")

	var day time.Time
	var timePart string
	switch parts[0] {
	case "TODAY":
		day = now
		timePart = rest(parts, 1)
	case "TOMORROW":
		day = now.AddDate(0, 0, 1)
		timePart = rest(parts, 1)
	case "NEXT":
		if len(parts) < 2 {
			return fallback(now)
		}
		target, ok := weekdays[parts[1]]
		if !ok {
			return fallback(now)
		}
		delta := int(target - now.Weekday())
		if delta <= 0 {
			delta += 7
		}
		day = now.AddDate(0, 0, delta)
		timePart = rest(parts, 2)
	default:
		return fallback(now)
	}

	hour, minute := 9, 0
	if timePart != "" {
		h, m, ok := parseTimePart(timePart)
		if !ok {
			return fallback(now)
		}
		hour, minute = h, m
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
}

func rest(parts []string, from int) string {
	if len(parts) <= from {
		return ""
	}
	return strings.Join(parts[from:], "_")
}

func parseTimePart(s string) (int, int, bool) {
	m := timePartRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch m[3] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour >= 1 && hour <= 11 {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}

func fallback(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
}
