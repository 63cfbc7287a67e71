package usecase

import (
	"context"
	"log/slog"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
)

type (
	CancelInput struct {
		UserID     int64 `validate:"required,gt=0"`
		ReminderID *int64
		EventID    *int64
	}

	CancelOutput struct {
		Cancelled int64
	}
)

// Cancel moves every pending job of one item to cancelled. Jobs already
// claimed, sent, or failed are left untouched.
func (s *Usecase) Cancel(ctx context.Context, in CancelInput) (*CancelOutput, error) {
	ctx, span := s.startSpan(ctx, "Cancel")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	target := entity.TargetRef{ReminderID: in.ReminderID, EventID: in.EventID}
	if !target.Valid() {
		return nil, goerror.NewInvalidInput(nil, "target", "exactly one of reminder_id or event_id is required")
	}

	cancelled, err := s.repoDB.CancelPendingJobs(ctx, in.UserID, target)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo cancel pending jobs", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CancelOutput{Cancelled: cancelled}, nil
}
