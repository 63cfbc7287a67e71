package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

func TestLeadPhrase(t *testing.T) {
	tests := []struct {
		minutes int32
		want    string
	}{
		{0, "now"},
		{1, "in 1 minute"},
		{59, "in 59 minutes"},
		{60, "in 1 hour"},
		{119, "in 1 hour"},
		{120, "in 2 hours"},
		{1439, "in 23 hours"},
		{1440, "in 1 day"},
		{2880, "in 2 days"},
		{10080, "in 7 days"},
	}

	for _, tt := range tests {
		if got := leadPhrase(tt.minutes); got != tt.want {
			t.Errorf("leadPhrase(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatDueAt(t *testing.T) {
	dueAt := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{
			name:     "known timezone",
			timezone: "Asia/Jakarta",
			want:     "Thu, Mar 5 2026 at 12:30 AM",
		},
		{
			name:     "empty timezone falls back to utc",
			timezone: "",
			want:     "Wed, Mar 4 2026 at 5:30 PM",
		},
		{
			name:     "bogus timezone falls back to utc",
			timezone: "Mars/Olympus_Mons",
			want:     "Wed, Mar 4 2026 at 5:30 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDueAt(dueAt, tt.timezone); got != tt.want {
				t.Fatalf("formatDueAt(%q) = %q, want %q", tt.timezone, got, tt.want)
			}
		})
	}
}

func TestComposeSubject(t *testing.T) {
	// Arrange
	reminderID, eventID := int64(1), int64(2)
	reminder := &entity.Item{Target: entity.TargetRef{ReminderID: &reminderID}, Title: "Pay rent"}
	meeting := &entity.Item{Target: entity.TargetRef{EventID: &eventID}, Title: "Board meeting"}

	// Assert
	if got := composeSubject(reminder, 10); got != "Reminder: Pay rent is due in 10 minutes" {
		t.Fatalf("unexpected reminder subject: %q", got)
	}
	if got := composeSubject(meeting, 0); got != "Event: Board meeting is due now" {
		t.Fatalf("unexpected event subject: %q", got)
	}
}

func TestComposeBody(t *testing.T) {
	// Arrange
	eventID := int64(2)
	item := &entity.Item{
		Target:      entity.TargetRef{EventID: &eventID},
		Title:       "Board meeting",
		Description: "Bring the Q1 numbers.",
		DueAt:       time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC),
		Location:    "Room 4B",
	}
	recipient := &entity.Recipient{Timezone: "UTC"}

	// Act
	body := composeBody(item, recipient, 60)

	// Assert
	want := "Board meeting is due in 1 hour (Wed, Mar 4 2026 at 5:30 PM). Location: Room 4B. Bring the Q1 numbers."
	if body != want {
		t.Fatalf("unexpected body:\n got %q\nwant %q", body, want)
	}
}

func TestComposeSMSBodyIsShort(t *testing.T) {
	// Arrange
	reminderID := int64(1)
	item := &entity.Item{
		Target:      entity.TargetRef{ReminderID: &reminderID},
		Title:       "Pay rent",
		Description: "a very long description that must never end up in a text message",
		DueAt:       time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC),
	}
	recipient := &entity.Recipient{Timezone: "UTC"}

	// Act
	body := composeSMSBody(item, recipient, 10)

	// Assert
	if body != "Pay rent is due in 10 minutes (Wed, Mar 4 2026 at 5:30 PM)" {
		t.Fatalf("unexpected sms body: %q", body)
	}
	if strings.Contains(body, item.Description) {
		t.Fatal("sms body must not carry the description")
	}
}
