package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/samber/lo"
)

type (
	ScheduleInput struct {
		UserID     int64 `validate:"required,gt=0"`
		ReminderID *int64
		EventID    *int64
		DueAt      time.Time `validate:"required"`
		LeadTimes  []int32   `validate:"dive,gte=0"`
		Channels   []string  `validate:"required,min=1"`
	}

	ScheduleOutput struct {
		Scheduled int
	}
)

// Schedule replaces the pending jobs of one item with a fresh fan-out: one job
// per lead time, all sharing the same channel set. Lead times whose fire time
// is already in the past are dropped without error, so an item rescheduled at
// the last minute still gets whatever notifications remain deliverable. An
// empty lead-time set clears the item's pending jobs and creates none.
func (s *Usecase) Schedule(ctx context.Context, in ScheduleInput) (*ScheduleOutput, error) {
	ctx, span := s.startSpan(ctx, "Schedule")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	target := entity.TargetRef{ReminderID: in.ReminderID, EventID: in.EventID}
	if !target.Valid() {
		return nil, goerror.NewInvalidInput(nil, "target", "exactly one of reminder_id or event_id is required")
	}

	channels := lo.FilterMap(lo.Uniq(in.Channels), func(raw string, _ int) (entity.Channel, bool) {
		ch := entity.ChannelFromString(raw)
		return ch, ch != entity.ChannelUnknown
	})
	if len(channels) == 0 {
		return nil, goerror.NewInvalidInput(nil, "channels", "at least one of email, push, sms is required")
	}

	now := s.clock.Now()
	jobs := make([]entity.DeliveryJob, 0, len(in.LeadTimes))
	for _, leadTime := range in.LeadTimes {
		fireAt := in.DueAt.Add(-time.Duration(leadTime) * time.Minute)
		if !fireAt.After(now) {
			slog.DebugContext(ctx, "dropping lead time already in the past",
				"user_id", in.UserID, "lead_time_minutes", leadTime, "fire_at", fireAt)
			continue
		}

		jobs = append(jobs, entity.DeliveryJob{
			ID:              s.uid.Generate(),
			UserID:          in.UserID,
			Target:          target,
			FireAt:          fireAt,
			LeadTimeMinutes: leadTime,
			Channels:        channels,
			Status:          entity.JobStatusPending,
			CreatedAt:       now,
		})
	}

	if err := s.repoDB.ReplacePendingJobs(ctx, in.UserID, target, jobs); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace pending jobs", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ScheduleOutput{Scheduled: len(jobs)}, nil
}
