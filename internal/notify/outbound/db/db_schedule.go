package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

const insertJobQuery = `
INSERT INTO delivery_jobs
	(id, user_id, reminder_id, event_id, fire_at, lead_time_minutes, channels, status, retry_count, error_detail, created_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// ReplacePendingJobs swaps the pending jobs of one item for the given set in
// a single transaction. Rescheduling therefore never merges old and new lead
// times; the previous fan-out is gone once this commits.
func (s *DB) ReplacePendingJobs(ctx context.Context, userID int64, target entity.TargetRef, jobs []entity.DeliveryJob) (err error) {
	ctx, span := s.startSpan(ctx, "ReplacePendingJobs")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	_, err = tx.Exec(ctx, `
		DELETE FROM delivery_jobs
		WHERE user_id = $1
			AND reminder_id IS NOT DISTINCT FROM $2
			AND event_id IS NOT DISTINCT FROM $3
			AND status = $4`,
		userID, target.ReminderID, target.EventID, entity.JobStatusPending.String(),
	)
	if err != nil {
		return s.mapError(err)
	}

	for _, job := range jobs {
		_, err = tx.Exec(ctx, insertJobQuery,
			job.ID, job.UserID, job.Target.ReminderID, job.Target.EventID, job.FireAt,
			job.LeadTimeMinutes, channelStrings(job.Channels), job.Status.String(),
			job.RetryCount, job.ErrorDetail, job.CreatedAt,
		)
		if err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) InsertJob(ctx context.Context, job entity.DeliveryJob) (err error) {
	ctx, span := s.startSpan(ctx, "InsertJob")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertJobQuery,
		job.ID, job.UserID, job.Target.ReminderID, job.Target.EventID, job.FireAt,
		job.LeadTimeMinutes, channelStrings(job.Channels), job.Status.String(),
		job.RetryCount, job.ErrorDetail, job.CreatedAt,
	)
	return s.mapError(err)
}
