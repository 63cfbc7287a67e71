package db

import (
	"context"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
)

func (s *DB) AppendLogEntries(ctx context.Context, entries []entity.LogEntry) (err error) {
	ctx, span := s.startSpan(ctx, "AppendLogEntries")
	defer func() { s.endSpan(span, err) }()

	for _, entry := range entries {
		_, err = s.conn.Exec(ctx, `
			INSERT INTO notification_logs (id, job_id, user_id, channel, outcome, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			entry.ID, entry.JobID, entry.UserID, entry.Channel.String(),
			entry.Outcome.String(), entry.Detail, entry.CreatedAt,
		)
		if err != nil {
			return s.mapError(err)
		}
	}

	return nil
}

func (s *DB) ListLogEntries(ctx context.Context, userID int64, limit, offset int32) (_ []entity.LogEntry, err error) {
	ctx, span := s.startSpan(ctx, "ListLogEntries")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, job_id, user_id, channel, outcome, detail, created_at
		FROM notification_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var entries []entity.LogEntry
	for rows.Next() {
		var (
			entry   entity.LogEntry
			channel string
			outcome string
		)

		err = rows.Scan(&entry.ID, &entry.JobID, &entry.UserID, &channel, &outcome, &entry.Detail, &entry.CreatedAt)
		if err != nil {
			return nil, s.mapError(err)
		}

		entry.Channel = entity.Channel(channel)
		entry.Outcome = entity.Outcome(outcome)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return entries, nil
}
