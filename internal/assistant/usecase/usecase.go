package usecase

import (
	"context"

	"github.com/macthedonald/trynotifi-sub000/internal/assistant/entity"
	notifyuc "github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/clock"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateReminder(ctx context.Context, reminder entity.Reminder) error
}

type scheduler interface {
	Schedule(ctx context.Context, in notifyuc.ScheduleInput) (*notifyuc.ScheduleOutput, error)
}

type Usecase struct {
	repoDB    repoDB
	scheduler scheduler
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Scheduler  scheduler
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewAssistant(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		scheduler: dep.Scheduler,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("assistant.usecase").Start(ctx, name)
}
