package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/shared/event"
)

func dueJobFixture(id int64, channels ...entity.Channel) entity.DueJob {
	reminderID := int64(42)
	return entity.DueJob{
		Job: entity.DeliveryJob{
			ID:              id,
			UserID:          7,
			Target:          entity.TargetRef{ReminderID: &reminderID},
			FireAt:          time.Date(2026, 3, 4, 9, 55, 0, 0, time.UTC),
			LeadTimeMinutes: 10,
			Channels:        channels,
			Status:          entity.JobStatusProcessing,
		},
		Recipient: &entity.Recipient{
			ID:        7,
			Email:     "user@example.com",
			PushToken: "device-token",
			Phone:     "+15550100",
			Timezone:  "UTC",
		},
		Item: &entity.Item{
			Target: entity.TargetRef{ReminderID: &reminderID},
			Title:  "Standup",
			DueAt:  time.Date(2026, 3, 4, 10, 5, 0, 0, time.UTC),
		},
	}
}

func TestSweepAllChannelsSucceed(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	deps.repo.dueJobs = []entity.DueJob{dueJobFixture(1, entity.ChannelEmail, entity.ChannelPush)}

	// Act
	summary, err := uc.Sweep(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 || summary.Successful != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !summary.Timestamp.Equal(deps.clock.now) {
		t.Fatalf("summary timestamp should be the sweep time, got %v", summary.Timestamp)
	}
	if deps.repo.finalizedStatus[1] != entity.JobStatusSent {
		t.Fatalf("expected job sent, got %s", deps.repo.finalizedStatus[1])
	}
	if len(deps.repo.logs) != 2 {
		t.Fatalf("expected one log entry per channel, got %d", len(deps.repo.logs))
	}
	for _, entry := range deps.repo.logs {
		if entry.Outcome != entity.OutcomeSent {
			t.Fatalf("expected sent outcome, got %s", entry.Outcome)
		}
	}
	if len(deps.mail.sent) != 1 || len(deps.push.sent) != 1 {
		t.Fatal("expected one email and one push delivery")
	}
	if len(deps.publisher.published) != 1 || deps.publisher.published[0] != event.NotificationDispatchedDestination {
		t.Fatalf("expected one dispatched event, got %v", deps.publisher.published)
	}
}

func TestSweepChannelFailureSchedulesRetry(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	deps.repo.dueJobs = []entity.DueJob{dueJobFixture(1, entity.ChannelEmail, entity.ChannelPush)}
	deps.mail.err = errors.New("smtp connection refused")

	// Act
	summary, err := uc.Sweep(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 || summary.Successful != 0 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if deps.repo.finalizedStatus[1] != entity.JobStatusFailed {
		t.Fatalf("expected job failed, got %s", deps.repo.finalizedStatus[1])
	}
	if deps.repo.finalizedDetail[1] == "" {
		t.Fatal("expected failure detail to be recorded")
	}

	// The push channel is independent and must still have been attempted.
	if len(deps.push.sent) != 1 {
		t.Fatal("expected push delivery despite email failure")
	}

	// The retry is a brand-new pending row firing after the backoff.
	if len(deps.repo.inserted) != 1 {
		t.Fatalf("expected one retry job, got %d", len(deps.repo.inserted))
	}
	retry := deps.repo.inserted[0]
	if retry.Status != entity.JobStatusPending {
		t.Fatalf("expected pending retry, got %s", retry.Status)
	}
	if retry.RetryCount != 1 {
		t.Fatalf("expected retry count 1, got %d", retry.RetryCount)
	}
	if want := deps.clock.now.Add(5 * time.Minute); !retry.FireAt.Equal(want) {
		t.Fatalf("expected retry fire at %v, got %v", want, retry.FireAt)
	}
}

func TestSweepRetriesExhausted(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	job := dueJobFixture(1, entity.ChannelEmail)
	job.Job.RetryCount = 3
	deps.repo.dueJobs = []entity.DueJob{job}
	deps.mail.err = errors.New("smtp connection refused")

	// Act
	if _, err := uc.Sweep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if len(deps.repo.inserted) != 0 {
		t.Fatalf("expected no retry beyond the limit, got %d", len(deps.repo.inserted))
	}
	if deps.repo.finalizedStatus[1] != entity.JobStatusFailed {
		t.Fatalf("expected job failed, got %s", deps.repo.finalizedStatus[1])
	}
}

func TestSweepSkipsAreNotFailures(t *testing.T) {
	// Arrange: no device token and no phone number, so push and sms skip.
	uc, deps := newTestUsecase(t)
	job := dueJobFixture(1, entity.ChannelEmail, entity.ChannelPush, entity.ChannelSMS)
	job.Recipient.PushToken = ""
	job.Recipient.Phone = ""
	deps.repo.dueJobs = []entity.DueJob{job}

	// Act
	summary, err := uc.Sweep(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Successful != 1 || summary.Failed != 0 {
		t.Fatalf("skips must not fail the job: %+v", summary)
	}
	if deps.repo.finalizedStatus[1] != entity.JobStatusSent {
		t.Fatalf("expected job sent, got %s", deps.repo.finalizedStatus[1])
	}

	outcomes := map[entity.Channel]entity.Outcome{}
	for _, entry := range deps.repo.logs {
		outcomes[entry.Channel] = entry.Outcome
	}
	if outcomes[entity.ChannelEmail] != entity.OutcomeSent {
		t.Fatalf("expected email sent, got %s", outcomes[entity.ChannelEmail])
	}
	if outcomes[entity.ChannelPush] != entity.OutcomeSkipped {
		t.Fatalf("expected push skipped, got %s", outcomes[entity.ChannelPush])
	}
	if outcomes[entity.ChannelSMS] != entity.OutcomeSkipped {
		t.Fatalf("expected sms skipped, got %s", outcomes[entity.ChannelSMS])
	}

	if len(deps.push.sent) != 0 || len(deps.sms.sent) != 0 {
		t.Fatal("skipped channels must not reach the provider")
	}
}

func TestSweepOrphanedJobCancelled(t *testing.T) {
	// Arrange: recipient row deleted after scheduling.
	uc, deps := newTestUsecase(t)
	job := dueJobFixture(1, entity.ChannelEmail)
	job.Recipient = nil
	deps.repo.dueJobs = []entity.DueJob{job}

	// Act
	summary, err := uc.Sweep(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 || summary.Successful != 0 || summary.Failed != 0 {
		t.Fatalf("orphans count as processed only: %+v", summary)
	}
	if len(deps.repo.cancelledClaimed) != 1 || deps.repo.cancelledClaimed[0] != 1 {
		t.Fatalf("expected orphan to be cancelled, got %v", deps.repo.cancelledClaimed)
	}
	if len(deps.mail.sent) != 0 {
		t.Fatal("nothing must be sent for an orphaned job")
	}
}

func TestSweepClaimErrorPropagates(t *testing.T) {
	// Arrange
	uc, deps := newTestUsecase(t)
	deps.repo.claimErr = errors.New("connection reset by peer")

	// Act
	_, err := uc.Sweep(context.Background())

	// Assert
	if err == nil {
		t.Fatal("expected infrastructure error to propagate")
	}
}

func TestSweepEmptyBatch(t *testing.T) {
	// Act
	uc, deps := newTestUsecase(t)
	summary, err := uc.Sweep(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 0 || summary.Successful != 0 || summary.Failed != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if len(deps.publisher.published) != 0 {
		t.Fatal("nothing to publish for an empty batch")
	}
}
