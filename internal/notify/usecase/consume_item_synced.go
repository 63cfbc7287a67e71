package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
)

type (
	ConsumeItemSyncedInput struct {
		UserID     int64 `validate:"required,gt=0"`
		ReminderID *int64
		EventID    *int64
		DueAt      string `validate:"required"`
	}
)

// ConsumeItemSynced schedules the default notification fan-out for an item
// written by the calendar-sync collaborator. Malformed messages are logged
// and acked; only server-side failures bubble up for redelivery.
func (s *Usecase) ConsumeItemSynced(ctx context.Context, in ConsumeItemSyncedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeItemSynced")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	dueAt, err := time.Parse(time.RFC3339, in.DueAt)
	if err != nil {
		slog.ErrorContext(ctx, "invalid due_at in item synced message", "due_at", in.DueAt, "error", err)
		return nil
	}

	_, err = s.Schedule(ctx, ScheduleInput{
		UserID:     in.UserID,
		ReminderID: in.ReminderID,
		EventID:    in.EventID,
		DueAt:      dueAt,
		LeadTimes:  s.defaultLeadTimes(),
		Channels:   s.defaultChannels(),
	})

	var ge *goerror.Error
	if errors.As(err, &ge) && ge.Type() == goerror.TypeValidation {
		slog.ErrorContext(ctx, "dropping unschedulable item synced message", "user_id", in.UserID, "error", err)
		return nil
	}

	return err
}

func (s *Usecase) defaultLeadTimes() []int32 {
	raw := s.cfg.GetArray("modules.notify.default_lead_times")

	leadTimes := make([]int32, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			continue
		}
		leadTimes = append(leadTimes, int32(n))
	}

	if len(leadTimes) == 0 {
		return []int32{10}
	}
	return leadTimes
}

func (s *Usecase) defaultChannels() []string {
	channels := s.cfg.GetArray("modules.notify.default_channels")
	if len(channels) == 0 {
		return []string{"email"}
	}
	return channels
}
