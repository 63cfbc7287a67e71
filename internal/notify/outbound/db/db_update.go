package db

import (
	"context"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

func (s *DB) FinalizeJob(ctx context.Context, jobID int64, status entity.JobStatus, errorDetail string, attemptedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "FinalizeJob")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE delivery_jobs
		SET status = $2, error_detail = $3, attempted_at = $4
		WHERE id = $1`,
		jobID, status.String(), errorDetail, attemptedAt,
	)
	return s.mapError(err)
}

func (s *DB) CancelClaimedJob(ctx context.Context, jobID int64) (err error) {
	ctx, span := s.startSpan(ctx, "CancelClaimedJob")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE delivery_jobs
		SET status = $2
		WHERE id = $1 AND status = $3`,
		jobID, entity.JobStatusCancelled.String(), entity.JobStatusProcessing.String(),
	)
	return s.mapError(err)
}

func (s *DB) CancelPendingJobs(ctx context.Context, userID int64, target entity.TargetRef) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CancelPendingJobs")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE delivery_jobs
		SET status = $4
		WHERE user_id = $1
			AND reminder_id IS NOT DISTINCT FROM $2
			AND event_id IS NOT DISTINCT FROM $3
			AND status = $5`,
		userID, target.ReminderID, target.EventID,
		entity.JobStatusCancelled.String(), entity.JobStatusPending.String(),
	)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
