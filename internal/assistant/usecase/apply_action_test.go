package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/assistant/entity"
	notifyuc "github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUID struct {
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeConfig struct {
	values map[string]string
}

func (f *fakeConfig) Close() error                   { return nil }
func (f *fakeConfig) GetBool(key string) bool        { return f.values[key] == "true" }
func (f *fakeConfig) GetString(key string) string    { return f.values[key] }
func (f *fakeConfig) GetInt(string) int              { return 0 }
func (f *fakeConfig) GetInt32(string) int32          { return 0 }
func (f *fakeConfig) GetInt64(string) int64          { return 0 }
func (f *fakeConfig) GetFloat64(string) float64      { return 0 }
func (f *fakeConfig) GetSecond(string) time.Duration { return 0 }
func (f *fakeConfig) GetMinute(string) time.Duration { return 0 }

func (f *fakeConfig) GetArray(key string) []string {
	if f.values[key] == "" {
		return nil
	}
	return []string{f.values[key]}
}

type fakeRepo struct {
	created []entity.Reminder
}

func (f *fakeRepo) CreateReminder(_ context.Context, reminder entity.Reminder) error {
	f.created = append(f.created, reminder)
	return nil
}

type fakeScheduler struct {
	inputs []notifyuc.ScheduleInput
}

func (f *fakeScheduler) Schedule(_ context.Context, in notifyuc.ScheduleInput) (*notifyuc.ScheduleOutput, error) {
	f.inputs = append(f.inputs, in)
	return &notifyuc.ScheduleOutput{Scheduled: len(in.LeadTimes)}, nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepo, *fakeScheduler) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	repo := &fakeRepo{}
	sched := &fakeScheduler{}

	uc := NewAssistant(Dependency{
		RepoDB:     repo,
		Scheduler:  sched,
		Config:     &fakeConfig{values: map[string]string{}},
		UID:        &fakeUID{},
		Clock:      &fakeClock{now: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)},
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, repo, sched
}

func TestApplyActionCreatesReminderWithActionFields(t *testing.T) {
	// Arrange
	uc, repo, sched := newTestUsecase(t)
	text := "Done!\n\n```schedule-action\n" +
		`{"action":"create_reminder","title":"Water plants","time":"TOMORROW_8AM",` +
		`"recurrence":"weekly","priority":"high","lead_times":[15],"channels":["push"]}` +
		"\n```"

	// Act
	out, err := uc.ApplyAction(context.Background(), ApplyActionInput{UserID: 7, Text: text})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Applied {
		t.Fatal("expected the action to be applied")
	}
	if out.CleanedText != "Done!" {
		t.Fatalf("unexpected cleaned text: %q", out.CleanedText)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one reminder, got %d", len(repo.created))
	}
	reminder := repo.created[0]
	if reminder.Title != "Water plants" {
		t.Fatalf("unexpected title: %q", reminder.Title)
	}
	if reminder.Priority != "high" {
		t.Fatalf("priority not carried onto the reminder: %q", reminder.Priority)
	}
	if reminder.Recurrence != "weekly" {
		t.Fatalf("recurrence not carried onto the reminder: %q", reminder.Recurrence)
	}
	if want := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC); !reminder.DueAt.Equal(want) {
		t.Fatalf("unexpected due time: %v", reminder.DueAt)
	}

	if len(sched.inputs) != 1 {
		t.Fatalf("expected one schedule call, got %d", len(sched.inputs))
	}
	in := sched.inputs[0]
	if in.ReminderID == nil || *in.ReminderID != reminder.ID {
		t.Fatalf("schedule not targeted at the created reminder: %+v", in.ReminderID)
	}
	if len(in.LeadTimes) != 1 || in.LeadTimes[0] != 15 {
		t.Fatalf("unexpected lead times: %v", in.LeadTimes)
	}
	if len(in.Channels) != 1 || in.Channels[0] != "push" {
		t.Fatalf("unexpected channels: %v", in.Channels)
	}
}

func TestApplyActionNoBlockPassesThrough(t *testing.T) {
	// Act
	uc, repo, sched := newTestUsecase(t)
	out, err := uc.ApplyAction(context.Background(), ApplyActionInput{UserID: 7, Text: "just chatting"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Applied {
		t.Fatal("expected no action to be applied")
	}
	if out.CleanedText != "just chatting" {
		t.Fatalf("unexpected cleaned text: %q", out.CleanedText)
	}
	if len(repo.created) != 0 || len(sched.inputs) != 0 {
		t.Fatal("nothing must be created for plain text")
	}
}
