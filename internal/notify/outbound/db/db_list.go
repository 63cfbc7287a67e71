package db

import (
	"context"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/samber/lo"
)

func (s *DB) ListJobs(ctx context.Context, userID int64, target entity.TargetRef, statuses []entity.JobStatus, limit, offset int32) (_ []entity.DeliveryJob, err error) {
	ctx, span := s.startSpan(ctx, "ListJobs")
	defer func() { s.endSpan(span, err) }()

	statusFilter := lo.Map(statuses, func(st entity.JobStatus, _ int) string {
		return st.String()
	})

	rows, err := s.conn.Query(ctx, `
		SELECT id, user_id, reminder_id, event_id, fire_at, lead_time_minutes,
			channels, status, retry_count, error_detail, attempted_at, created_at
		FROM delivery_jobs
		WHERE user_id = $1
			AND ($2::bigint IS NULL OR reminder_id = $2)
			AND ($3::bigint IS NULL OR event_id = $3)
			AND (cardinality($4::text[]) = 0 OR status = ANY($4::text[]))
		ORDER BY fire_at
		LIMIT $5 OFFSET $6`,
		userID, target.ReminderID, target.EventID, statusFilter, limit, offset,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var jobs []entity.DeliveryJob
	for rows.Next() {
		var (
			job      entity.DeliveryJob
			channels []string
			status   string
		)

		err = rows.Scan(
			&job.ID, &job.UserID, &job.Target.ReminderID, &job.Target.EventID,
			&job.FireAt, &job.LeadTimeMinutes, &channels, &status,
			&job.RetryCount, &job.ErrorDetail, &job.AttemptedAt, &job.CreatedAt,
		)
		if err != nil {
			return nil, s.mapError(err)
		}

		job.Channels = channelsFromStrings(channels)
		job.Status = entity.JobStatus(status)
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return jobs, nil
}
