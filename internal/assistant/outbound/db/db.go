package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("assistant.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) CreateReminder(ctx context.Context, reminder entity.Reminder) (err error) {
	ctx, span := s.startSpan(ctx, "CreateReminder")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO reminders (id, user_id, title, description, due_at, priority, recurrence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reminder.ID, reminder.UserID, reminder.Title, reminder.Description,
		reminder.DueAt, reminder.Priority, reminder.Recurrence, reminder.CreatedAt,
	)
	return s.mapError(err)
}
