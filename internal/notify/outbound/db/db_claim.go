package db

import (
	"context"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

const claimDueJobsQuery = `
WITH claimed AS (
	UPDATE delivery_jobs
	SET status = 'processing', attempted_at = $1
	WHERE id IN (
		SELECT id FROM delivery_jobs
		WHERE (status = 'pending' AND fire_at <= $1)
			OR (status = 'processing' AND attempted_at <= $2)
		ORDER BY fire_at
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	)
	RETURNING id, user_id, reminder_id, event_id, fire_at, lead_time_minutes,
		channels, status, retry_count, error_detail, attempted_at, created_at
)
SELECT
	c.id, c.user_id, c.reminder_id, c.event_id, c.fire_at, c.lead_time_minutes,
	c.channels, c.status, c.retry_count, c.error_detail, c.attempted_at, c.created_at,
	u.id, u.email, u.push_token, u.phone, u.timezone,
	r.title, r.description, r.due_at, r.priority,
	e.title, e.description, e.start_at, e.end_at, e.location
FROM claimed c
LEFT JOIN users u ON u.id = c.user_id
LEFT JOIN reminders r ON r.id = c.reminder_id
LEFT JOIN events e ON e.id = c.event_id
ORDER BY c.fire_at`

// ClaimDueJobs atomically moves due pending jobs to processing and returns
// them joined with their recipient and item. FOR UPDATE SKIP LOCKED keeps
// concurrent sweeps from claiming the same rows; processing rows older than
// staleBefore are reclaimed so a crashed instance cannot strand its batch.
func (s *DB) ClaimDueJobs(ctx context.Context, now time.Time, limit int32, staleBefore time.Time) (_ []entity.DueJob, err error) {
	ctx, span := s.startSpan(ctx, "ClaimDueJobs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, claimDueJobsQuery, now, staleBefore, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var dueJobs []entity.DueJob
	for rows.Next() {
		var (
			job      entity.DeliveryJob
			channels []string
			status   string

			userID                *int64
			email, token, phone   *string
			timezone              *string
			rTitle, rDesc, rPrio  *string
			rDueAt                *time.Time
			eTitle, eDesc, eWhere *string
			eStartAt, eEndAt      *time.Time
		)

		err = rows.Scan(
			&job.ID, &job.UserID, &job.Target.ReminderID, &job.Target.EventID,
			&job.FireAt, &job.LeadTimeMinutes, &channels, &status,
			&job.RetryCount, &job.ErrorDetail, &job.AttemptedAt, &job.CreatedAt,
			&userID, &email, &token, &phone, &timezone,
			&rTitle, &rDesc, &rDueAt, &rPrio,
			&eTitle, &eDesc, &eStartAt, &eEndAt, &eWhere,
		)
		if err != nil {
			return nil, s.mapError(err)
		}

		job.Channels = channelsFromStrings(channels)
		job.Status = entity.JobStatus(status)

		dueJob := entity.DueJob{Job: job}
		if userID != nil {
			dueJob.Recipient = &entity.Recipient{
				ID:        *userID,
				Email:     deref(email),
				PushToken: deref(token),
				Phone:     deref(phone),
				Timezone:  deref(timezone),
			}
		}

		switch {
		case job.Target.ReminderID != nil && rDueAt != nil:
			dueJob.Item = &entity.Item{
				Target:      job.Target,
				Title:       deref(rTitle),
				Description: deref(rDesc),
				DueAt:       *rDueAt,
				Priority:    deref(rPrio),
			}
		case job.Target.EventID != nil && eStartAt != nil:
			dueJob.Item = &entity.Item{
				Target:      job.Target,
				Title:       deref(eTitle),
				Description: deref(eDesc),
				DueAt:       *eStartAt,
				EndAt:       eEndAt,
				Location:    deref(eWhere),
			}
		}

		dueJobs = append(dueJobs, dueJob)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return dueJobs, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
