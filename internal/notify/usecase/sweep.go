package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/idempotency"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/mail"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/sms"
	"github.com/macthedonald/trynotifi-sub000/internal/shared/event"
	"github.com/samber/lo"
)

const (
	defaultBatchSize       = 100
	defaultMaxRetries      = 3
	defaultRetryBackoff    = 5 * time.Minute
	defaultStaleProcessing = 10 * time.Minute
)

// Sweep claims every job due for delivery and sends it over its channels.
//
// The sweep is guarded by a Redis lock keyed on the current minute, so
// overlapping cron triggers within the same minute yield an empty summary
// instead of double-delivering. Stale processing rows left behind by a
// crashed instance are reclaimed once they are older than the configured
// threshold.
func (s *Usecase) Sweep(ctx context.Context) (*entity.SweepSummary, error) {
	ctx, span := s.startSpan(ctx, "Sweep")
	defer span.End()

	now := s.clock.Now()

	var summary *entity.SweepSummary
	key := "notify:sweep:" + now.UTC().Format("200601021504")
	err := s.idem.Exec(ctx, key, func(ctx context.Context) error {
		out, err := s.runSweep(ctx, now)
		if err != nil {
			return err
		}
		summary = out
		return nil
	}, idempotency.WithLockDuration(50*time.Second), idempotency.WithStateTTL(2*time.Minute))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "sweep already handled for this minute", "key", key)
		return &entity.SweepSummary{Timestamp: now}, nil
	case err != nil:
		slog.ErrorContext(ctx, "sweep failed", "error", err)
		return nil, goerror.NewServer(err)
	}

	return summary, nil
}

func (s *Usecase) runSweep(ctx context.Context, now time.Time) (*entity.SweepSummary, error) {
	batchSize := s.cfg.GetInt32("modules.notify.batch_size")
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	stale := s.cfg.GetMinute("modules.notify.stale_processing_minutes")
	if stale <= 0 {
		stale = defaultStaleProcessing
	}

	jobs, err := s.repoDB.ClaimDueJobs(ctx, now, batchSize, now.Add(-stale))
	if err != nil {
		return nil, err
	}

	// Jobs are independent after the claim, so they are processed
	// concurrently. Orphans land in neither counter.
	const (
		jobOrphaned = iota
		jobSucceeded
		jobFailed
	)

	results := make([]int, len(jobs))
	var wg sync.WaitGroup
	for i, dueJob := range jobs {
		wg.Go(func() {
			if dueJob.Recipient == nil || dueJob.Item == nil {
				s.dropOrphanedJob(ctx, dueJob.Job)
				return
			}

			if s.processJob(ctx, dueJob, now) {
				results[i] = jobSucceeded
			} else {
				results[i] = jobFailed
			}
		})
	}
	wg.Wait()

	summary := &entity.SweepSummary{Timestamp: now, Processed: len(jobs)}
	for _, result := range results {
		switch result {
		case jobSucceeded:
			summary.Successful++
		case jobFailed:
			summary.Failed++
		}
	}

	slog.InfoContext(ctx, "sweep finished",
		"processed", summary.Processed,
		"successful", summary.Successful,
		"failed", summary.Failed,
	)

	return summary, nil
}

// dropOrphanedJob cancels a claimed job whose reminder, event, or user row
// was deleted after scheduling. Nothing is sent and nothing is retried.
func (s *Usecase) dropOrphanedJob(ctx context.Context, job entity.DeliveryJob) {
	slog.WarnContext(ctx, "dropping orphaned job", "job_id", job.ID, "user_id", job.UserID)

	if err := s.repoDB.CancelClaimedJob(ctx, job.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo cancel claimed job", "job_id", job.ID, "error", err)
	}
}

// processJob sends one claimed job over all of its channels and finalizes it.
// The job counts as successful only when no channel failed; skipped channels
// do not count against it.
func (s *Usecase) processJob(ctx context.Context, dueJob entity.DueJob, now time.Time) bool {
	entries := s.deliver(ctx, dueJob)

	if err := s.repoDB.AppendLogEntries(ctx, entries); err != nil {
		slog.ErrorContext(ctx, "failed to repo append log entries", "job_id", dueJob.Job.ID, "error", err)
	}

	failures := lo.FilterMap(entries, func(e entity.LogEntry, _ int) (string, bool) {
		return e.Channel.String() + ": " + e.Detail, e.Outcome == entity.OutcomeFailed
	})

	status := entity.JobStatusSent
	errorDetail := ""
	if len(failures) > 0 {
		status = entity.JobStatusFailed
		errorDetail = strings.Join(failures, "; ")
	}

	if err := s.repoDB.FinalizeJob(ctx, dueJob.Job.ID, status, errorDetail, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo finalize job", "job_id", dueJob.Job.ID, "error", err)
	}

	if status == entity.JobStatusFailed {
		s.scheduleRetry(ctx, dueJob.Job, errorDetail, now)
	}

	s.publishDispatched(ctx, dueJob.Job, status, now)

	return status == entity.JobStatusSent
}

// deliver sends over each channel concurrently and returns one log entry per
// channel attempt.
func (s *Usecase) deliver(ctx context.Context, dueJob entity.DueJob) []entity.LogEntry {
	entries := make([]entity.LogEntry, len(dueJob.Job.Channels))

	var wg sync.WaitGroup
	for i, channel := range dueJob.Job.Channels {
		wg.Go(func() {
			outcome, detail := s.sendChannel(ctx, channel, dueJob)
			entries[i] = entity.LogEntry{
				ID:        s.uid.Generate(),
				JobID:     dueJob.Job.ID,
				UserID:    dueJob.Job.UserID,
				Channel:   channel,
				Outcome:   outcome,
				Detail:    detail,
				CreatedAt: s.clock.Now(),
			}

			slog.InfoContext(ctx, "channel delivery attempted",
				"job_id", dueJob.Job.ID,
				"channel", channel.String(),
				"outcome", outcome.String(),
			)
		})
	}
	wg.Wait()

	return entries
}

func (s *Usecase) sendChannel(ctx context.Context, channel entity.Channel, dueJob entity.DueJob) (entity.Outcome, string) {
	item, recipient := dueJob.Item, dueJob.Recipient
	leadTime := dueJob.Job.LeadTimeMinutes

	switch channel {
	case entity.ChannelEmail:
		err := s.repoMail.Send(ctx, mail.Message{
			To:       []string{recipient.Email},
			Subject:  composeSubject(item, leadTime),
			TextBody: composeBody(item, recipient, leadTime),
		})
		if err != nil {
			return entity.OutcomeFailed, err.Error()
		}
		return entity.OutcomeSent, ""

	case entity.ChannelPush:
		if recipient.PushToken == "" {
			return entity.OutcomeSkipped, "user has no device token"
		}
		err := s.repoPush.Send(ctx, push.Notification{
			Token: recipient.PushToken,
			Title: composeSubject(item, leadTime),
			Body:  composeBody(item, recipient, leadTime),
		})
		if errors.Is(err, push.ErrNotConfigured) {
			return entity.OutcomeSkipped, "push provider is not configured"
		}
		if err != nil {
			return entity.OutcomeFailed, err.Error()
		}
		return entity.OutcomeSent, ""

	case entity.ChannelSMS:
		if recipient.Phone == "" {
			return entity.OutcomeSkipped, "user has no phone number"
		}
		err := s.repoSMS.Send(ctx, sms.Message{
			To:   recipient.Phone,
			Body: composeSMSBody(item, recipient, leadTime),
		})
		if errors.Is(err, sms.ErrNotConfigured) {
			return entity.OutcomeSkipped, "sms provider is not configured"
		}
		if err != nil {
			return entity.OutcomeFailed, err.Error()
		}
		return entity.OutcomeSent, ""

	default:
		return entity.OutcomeSkipped, "unknown channel"
	}
}

// scheduleRetry inserts a brand-new pending job for a failed delivery, up to
// the configured retry limit. The original row keeps its failed status.
func (s *Usecase) scheduleRetry(ctx context.Context, job entity.DeliveryJob, errorDetail string, now time.Time) {
	maxRetries := s.cfg.GetInt32("modules.notify.max_retries")
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if job.RetryCount >= maxRetries {
		slog.WarnContext(ctx, "job exhausted retries", "job_id", job.ID, "retry_count", job.RetryCount)
		return
	}

	backoff := s.cfg.GetMinute("modules.notify.retry_backoff_minutes")
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	retry := entity.DeliveryJob{
		ID:              s.uid.Generate(),
		UserID:          job.UserID,
		Target:          job.Target,
		FireAt:          now.Add(backoff),
		LeadTimeMinutes: job.LeadTimeMinutes,
		Channels:        job.Channels,
		Status:          entity.JobStatusPending,
		RetryCount:      job.RetryCount + 1,
		ErrorDetail:     errorDetail,
		CreatedAt:       now,
	}

	if err := s.repoDB.InsertJob(ctx, retry); err != nil {
		slog.ErrorContext(ctx, "failed to repo insert retry job", "job_id", job.ID, "error", err)
		return
	}

	slog.InfoContext(ctx, "retry scheduled",
		"job_id", job.ID, "retry_job_id", retry.ID, "retry_count", retry.RetryCount)
}

func (s *Usecase) publishDispatched(ctx context.Context, job entity.DeliveryJob, status entity.JobStatus, now time.Time) {
	msg := event.NotificationDispatchedMessage{
		JobID:      job.ID,
		UserID:     job.UserID,
		ReminderID: job.Target.ReminderID,
		EventID:    job.Target.EventID,
		Channels: lo.Map(job.Channels, func(ch entity.Channel, _ int) string {
			return ch.String()
		}),
		Status:      status.String(),
		RetryCount:  job.RetryCount,
		AttemptedAt: now.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal dispatched message", "job_id", job.ID, "error", err)
		return
	}

	if _, err := s.publisher.Publish(ctx, event.NotificationDispatchedDestination, messaging.OutgoingMessage{Body: body}); err != nil {
		slog.ErrorContext(ctx, "failed to publish dispatched message", "job_id", job.ID, "error", err)
	}
}
