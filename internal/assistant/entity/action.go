package entity

import "time"

// ScheduleAction is a machine directive extracted from assistant reply text.
// TimeToken is kept verbatim; resolving it against the clock happens later so
// extraction stays deterministic.
type ScheduleAction struct {
	Title       string
	Description string
	TimeToken   string
	Recurrence  string
	Priority    string
	LeadTimes   []int32
	Channels    []string
	Tags        []string
	Location    string
}

// Reminder is a reminder row created from an applied schedule action.
// Recurrence is stored as-is; this pipeline never expands it into future
// instances.
type Reminder struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DueAt       time.Time
	Priority    string
	Recurrence  string
	CreatedAt   time.Time
}
