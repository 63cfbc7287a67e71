package usecase

import (
	"fmt"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

const dueAtLayout = "Mon, Jan 2 2006 at 3:04 PM"

// leadPhrase renders a lead time as the phrase used in subjects and bodies.
// The unit is the largest one that fits; counts are floored, never rounded.
func leadPhrase(minutes int32) string {
	switch {
	case minutes <= 0:
		return "now"
	case minutes < 60:
		return pluralize(int(minutes), "minute")
	case minutes < 1440:
		return pluralize(int(minutes/60), "hour")
	default:
		return pluralize(int(minutes/1440), "day")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("in 1 %s", unit)
	}
	return fmt.Sprintf("in %d %ss", n, unit)
}

// formatDueAt renders the item due time in the recipient timezone, falling
// back to UTC when the stored zone name does not resolve.
func formatDueAt(dueAt time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if timezone == "" || err != nil {
		loc = time.UTC
	}
	return dueAt.In(loc).Format(dueAtLayout)
}

func composeSubject(item *entity.Item, leadTimeMinutes int32) string {
	kind := "Reminder"
	if item.Target.EventID != nil {
		kind = "Event"
	}

	return fmt.Sprintf("%s: %s is due %s", kind, item.Title, leadPhrase(leadTimeMinutes))
}

func composeBody(item *entity.Item, recipient *entity.Recipient, leadTimeMinutes int32) string {
	body := fmt.Sprintf("%s is due %s (%s).",
		item.Title, leadPhrase(leadTimeMinutes), formatDueAt(item.DueAt, recipient.Timezone))

	if item.Location != "" {
		body += fmt.Sprintf(" Location: %s.", item.Location)
	}
	if item.Description != "" {
		body += " " + item.Description
	}

	return body
}

// composeSMSBody keeps texts short: title, phrase, and the due time only.
func composeSMSBody(item *entity.Item, recipient *entity.Recipient, leadTimeMinutes int32) string {
	return fmt.Sprintf("%s is due %s (%s)",
		item.Title, leadPhrase(leadTimeMinutes), formatDueAt(item.DueAt, recipient.Timezone))
}
