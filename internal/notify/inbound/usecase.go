package inbound

import (
	"context"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
)

type ucConsumer interface {
	ConsumeItemSynced(ctx context.Context, in usecase.ConsumeItemSyncedInput) error
}

type uc interface {
	ucConsumer

	Schedule(ctx context.Context, in usecase.ScheduleInput) (*usecase.ScheduleOutput, error)
	Cancel(ctx context.Context, in usecase.CancelInput) (*usecase.CancelOutput, error)
	ListJobs(ctx context.Context, in usecase.ListJobsInput) (*usecase.ListJobsOutput, error)
	History(ctx context.Context, in usecase.HistoryInput) (*usecase.HistoryOutput, error)
	Sweep(ctx context.Context) (*entity.SweepSummary, error)
}
