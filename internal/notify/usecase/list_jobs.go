package usecase

import (
	"context"
	"log/slog"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/samber/lo"
)

type (
	ListJobsInput struct {
		UserID     int64 `validate:"required,gt=0"`
		ReminderID *int64
		EventID    *int64
		Statuses   []string
		Limit      int32 `validate:"gte=0,lte=100"`
		Offset     int32 `validate:"gte=0"`
	}

	ListJobsOutput struct {
		Jobs []entity.DeliveryJob
	}
)

func (s *Usecase) ListJobs(ctx context.Context, in ListJobsInput) (*ListJobsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListJobs")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	statuses := lo.Map(lo.Uniq(in.Statuses), func(raw string, _ int) entity.JobStatus {
		return entity.JobStatus(raw)
	})

	target := entity.TargetRef{ReminderID: in.ReminderID, EventID: in.EventID}
	jobs, err := s.repoDB.ListJobs(ctx, in.UserID, target, statuses, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list jobs", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListJobsOutput{Jobs: jobs}, nil
}
