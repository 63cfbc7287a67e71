package parse

import (
	"testing"
	"time"
)

func TestParseTimeToken(t *testing.T) {
	// Wednesday, 2026-03-04 10:15:42 UTC
	now := time.Date(2026, 3, 4, 10, 15, 42, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  time.Time
	}{
		{
			name:  "iso timestamp",
			token: "2026-03-10T14:30:00Z",
			want:  time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "iso timestamp seconds truncated",
			token: "2026-03-10T14:30:59Z",
			want:  time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "today with 24h time",
			token: "TODAY_18H30",
			want:  time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC),
		},
		{
			name:  "today with colon time",
			token: "TODAY_18:30",
			want:  time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC),
		},
		{
			name:  "today without time defaults to nine",
			token: "TODAY",
			want:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "tomorrow morning meridiem",
			token: "TOMORROW_9AM",
			want:  time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "afternoon meridiem adds twelve",
			token: "TOMORROW_2PM",
			want:  time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "noon stays twelve",
			token: "TODAY_12PM",
			want:  time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "midnight is hour zero",
			token: "TOMORROW_12AM",
			want:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "next weekday later this week",
			token: "NEXT_FRIDAY_14H30",
			want:  time.Date(2026, 3, 6, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "next weekday wraps to following week",
			token: "NEXT_MONDAY_8AM",
			want:  time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "next same weekday is a week out",
			token: "NEXT_WEDNESDAY",
			want:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "lowercase accepted",
			token: "tomorrow_9am",
			want:  time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "unrecognized degrades to today nine",
			token: "WHENEVER",
			want:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "invalid hour degrades",
			token: "TODAY_25H00",
			want:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "next without weekday degrades",
			token: "NEXT",
			want:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "empty token degrades",
			token: "",
			want:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimeToken(tt.token, now)

			if !got.Equal(tt.want) {
				t.Fatalf("ParseTimeToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseTimeTokenKeepsLocation(t *testing.T) {
	// Arrange
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)

	// Act
	got := ParseTimeToken("TOMORROW_9AM", now)

	// Assert
	want := time.Date(2026, 3, 5, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
