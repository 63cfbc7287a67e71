package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

func TestScheduleFanOut(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	dueAt := deps.clock.now.Add(2 * time.Hour)

	// Act: the 3000 minute lead time fires in the past and must be dropped,
	// the duplicated 10 minute lead time must produce two separate jobs.
	out, err := uc.Schedule(context.Background(), ScheduleInput{
		UserID:     7,
		ReminderID: ptrInt64(42),
		DueAt:      dueAt,
		LeadTimes:  []int32{0, 10, 10, 3000},
		Channels:   []string{"email", "push", "email"},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Scheduled != 3 {
		t.Fatalf("expected 3 scheduled jobs, got %d", out.Scheduled)
	}
	if len(deps.repo.replacedJobs) != 3 {
		t.Fatalf("expected 3 jobs handed to repo, got %d", len(deps.repo.replacedJobs))
	}
	if deps.repo.replacedUser != 7 {
		t.Fatalf("expected user 7, got %d", deps.repo.replacedUser)
	}

	for _, job := range deps.repo.replacedJobs {
		if job.Status != entity.JobStatusPending {
			t.Fatalf("expected pending status, got %s", job.Status)
		}
		if !job.FireAt.After(deps.clock.now) {
			t.Fatalf("job fire time %v is not in the future", job.FireAt)
		}
		if len(job.Channels) != 2 {
			t.Fatalf("expected deduplicated channels, got %v", job.Channels)
		}
		if job.Target.ReminderID == nil || *job.Target.ReminderID != 42 {
			t.Fatalf("unexpected target: %+v", job.Target)
		}
	}

	if deps.repo.replacedJobs[0].FireAt != dueAt {
		t.Fatalf("zero lead time should fire at the due time, got %v", deps.repo.replacedJobs[0].FireAt)
	}
	if got := deps.repo.replacedJobs[1].FireAt; got != dueAt.Add(-10*time.Minute) {
		t.Fatalf("unexpected fire time for 10 minute lead: %v", got)
	}
}

func TestScheduleAllLeadTimesInPast(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)

	// Act: due in 5 minutes with a 60 minute lead, nothing is deliverable,
	// but the replace still runs so stale pending jobs are cleared.
	out, err := uc.Schedule(context.Background(), ScheduleInput{
		UserID:    7,
		EventID:   ptrInt64(9),
		DueAt:     deps.clock.now.Add(5 * time.Minute),
		LeadTimes: []int32{60},
		Channels:  []string{"email"},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Scheduled != 0 {
		t.Fatalf("expected 0 scheduled jobs, got %d", out.Scheduled)
	}
	if deps.repo.replacedUser != 7 || len(deps.repo.replacedJobs) != 0 {
		t.Fatal("expected replace to run with an empty job set")
	}
}

func TestScheduleEmptyLeadTimesClearsPending(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)

	// Act: an empty lead-time set clears the item's pending jobs and
	// schedules nothing, without erroring.
	out, err := uc.Schedule(context.Background(), ScheduleInput{
		UserID:     7,
		ReminderID: ptrInt64(42),
		DueAt:      deps.clock.now.Add(2 * time.Hour),
		LeadTimes:  []int32{},
		Channels:   []string{"email"},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Scheduled != 0 {
		t.Fatalf("expected 0 scheduled jobs, got %d", out.Scheduled)
	}
	if deps.repo.replacedUser != 7 || len(deps.repo.replacedJobs) != 0 {
		t.Fatal("expected replace to run with an empty job set")
	}
}

func TestScheduleTargetValidation(t *testing.T) {
	uc, deps := newTestUsecase(t)
	dueAt := deps.clock.now.Add(time.Hour)

	tests := []struct {
		name string
		in   ScheduleInput
	}{
		{
			name: "no target",
			in: ScheduleInput{
				UserID: 7, DueAt: dueAt,
				LeadTimes: []int32{10}, Channels: []string{"email"},
			},
		},
		{
			name: "both targets",
			in: ScheduleInput{
				UserID: 7, ReminderID: ptrInt64(1), EventID: ptrInt64(2), DueAt: dueAt,
				LeadTimes: []int32{10}, Channels: []string{"email"},
			},
		},
		{
			name: "only unknown channels",
			in: ScheduleInput{
				UserID: 7, ReminderID: ptrInt64(1), DueAt: dueAt,
				LeadTimes: []int32{10}, Channels: []string{"carrier-pigeon"},
			},
		},
		{
			name: "no channels",
			in: ScheduleInput{
				UserID: 7, ReminderID: ptrInt64(1), DueAt: dueAt,
				LeadTimes: []int32{10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Schedule(context.Background(), tt.in); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestCancelPendingJobs(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	deps.repo.cancelledPending = 3

	// Act
	out, err := uc.Cancel(context.Background(), CancelInput{UserID: 7, ReminderID: ptrInt64(42)})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cancelled != 3 {
		t.Fatalf("expected 3 cancelled, got %d", out.Cancelled)
	}
}
