package event

const ItemSyncedDestination string = "item.synced"
const ItemSyncedConsumerNotify string = "item_synced_notify"

// ItemSyncedMessage announces a reminder or event row written by the
// calendar-sync collaborator. Exactly one of ReminderID/EventID is set.
type ItemSyncedMessage struct {
	UserID     int64  `json:"user_id"`
	ReminderID *int64 `json:"reminder_id,omitempty"`
	EventID    *int64 `json:"event_id,omitempty"`
	DueAt      string `json:"due_at"` // RFC 3339
}
