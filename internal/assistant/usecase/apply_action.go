package usecase

import (
	"context"
	"log/slog"

	"github.com/macthedonald/trynotifi-sub000/internal/assistant/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/parse"
	notifyuc "github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
)

type (
	ApplyActionInput struct {
		UserID int64  `validate:"required,gt=0"`
		Text   string `validate:"required"`
	}

	ApplyActionOutput struct {
		CleanedText string
		Applied     bool
		ReminderID  int64
		Scheduled   int
	}
)

// ApplyAction extracts the schedule-action block from assistant reply text
// and, when one is present and well formed, creates the reminder and its
// notification fan-out. Text without a usable block passes through cleaned
// but otherwise untouched.
func (s *Usecase) ApplyAction(ctx context.Context, in ApplyActionInput) (*ApplyActionOutput, error) {
	ctx, span := s.startSpan(ctx, "ApplyAction")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	action, cleaned := parse.ExtractAction(in.Text)
	if action == nil {
		return &ApplyActionOutput{CleanedText: cleaned}, nil
	}

	now := s.clock.Now()
	reminder := entity.Reminder{
		ID:          s.uid.Generate(),
		UserID:      in.UserID,
		Title:       action.Title,
		Description: action.Description,
		DueAt:       parse.ParseTimeToken(action.TimeToken, now),
		Priority:    action.Priority,
		Recurrence:  action.Recurrence,
		CreatedAt:   now,
	}

	if err := s.repoDB.CreateReminder(ctx, reminder); err != nil {
		slog.ErrorContext(ctx, "failed to repo create reminder", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	leadTimes := action.LeadTimes
	if len(leadTimes) == 0 {
		leadTimes = []int32{10}
	}
	channels := action.Channels
	if len(channels) == 0 {
		channels = s.cfg.GetArray("modules.notify.default_channels")
	}
	if len(channels) == 0 {
		channels = []string{"email"}
	}

	out, err := s.scheduler.Schedule(ctx, notifyuc.ScheduleInput{
		UserID:     in.UserID,
		ReminderID: &reminder.ID,
		DueAt:      reminder.DueAt,
		LeadTimes:  leadTimes,
		Channels:   channels,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to schedule reminder fan-out", "reminder_id", reminder.ID, "error", err)
		return nil, err
	}

	return &ApplyActionOutput{
		CleanedText: cleaned,
		Applied:     true,
		ReminderID:  reminder.ID,
		Scheduled:   out.Scheduled,
	}, nil
}
