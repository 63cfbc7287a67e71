package event

const NotificationDispatchedDestination string = "notification.dispatched"

// NotificationDispatchedMessage reports the final outcome of one delivery job
// after a worker sweep, for downstream analytics.
type NotificationDispatchedMessage struct {
	JobID       int64    `json:"job_id"`
	UserID      int64    `json:"user_id"`
	ReminderID  *int64   `json:"reminder_id,omitempty"`
	EventID     *int64   `json:"event_id,omitempty"`
	Channels    []string `json:"channels"`
	Status      string   `json:"status"`
	RetryCount  int32    `json:"retry_count"`
	AttemptedAt string   `json:"attempted_at"` // RFC 3339
}
