package usecase

import (
	"context"
	"log/slog"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
)

type (
	HistoryInput struct {
		UserID int64 `validate:"required,gt=0"`
		Limit  int32 `validate:"gte=0,lte=100"`
		Offset int32 `validate:"gte=0"`
	}

	HistoryOutput struct {
		Entries []entity.LogEntry
	}
)

// History lists the per-channel delivery attempts recorded for a user, most
// recent first.
func (s *Usecase) History(ctx context.Context, in HistoryInput) (*HistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "History")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	entries, err := s.repoDB.ListLogEntries(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list log entries", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HistoryOutput{Entries: entries}, nil
}
