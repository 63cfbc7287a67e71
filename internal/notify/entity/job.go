package entity

import "time"

// TargetRef points a delivery job at the reminder or event it notifies about.
// Exactly one of ReminderID/EventID must be set.
type TargetRef struct {
	ReminderID *int64
	EventID    *int64
}

func (t TargetRef) Valid() bool {
	return (t.ReminderID != nil) != (t.EventID != nil)
}

// DeliveryJob is one scheduled notification for one lead time of one item.
// A single item with three lead times produces three independent jobs.
type DeliveryJob struct {
	ID              int64
	UserID          int64
	Target          TargetRef
	FireAt          time.Time
	LeadTimeMinutes int32
	Channels        []Channel
	Status          JobStatus
	RetryCount      int32
	ErrorDetail     string
	AttemptedAt     *time.Time
	CreatedAt       time.Time
}

// LogEntry records one channel-send attempt for one job.
type LogEntry struct {
	ID        int64
	JobID     int64
	UserID    int64
	Channel   Channel
	Outcome   Outcome
	Detail    string
	CreatedAt time.Time
}

// SweepSummary is the aggregate result of one worker sweep.
type SweepSummary struct {
	Processed  int       `json:"processed"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Timestamp  time.Time `json:"timestamp"`
}

// Recipient is the user snapshot a sweep reads alongside each due job.
// PushToken and Phone are optional; their absence makes those channels skip.
type Recipient struct {
	ID        int64
	Email     string
	PushToken string
	Phone     string
	Timezone  string
}

// Item is the reminder or event snapshot joined to a due job.
type Item struct {
	Target      TargetRef
	Title       string
	Description string
	DueAt       time.Time
	EndAt       *time.Time
	Priority    string
	Location    string
}

// DueJob bundles a claimed job with its recipient and item. Recipient or
// Item is nil when the underlying row was deleted after scheduling; such
// orphaned jobs are dropped by the sweep without sending anything.
type DueJob struct {
	Job       DeliveryJob
	Recipient *Recipient
	Item      *Item
}
