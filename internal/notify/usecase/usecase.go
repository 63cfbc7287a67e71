package usecase

import (
	"context"
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/clock"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/idempotency"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/mail"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/sms"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	ReplacePendingJobs(ctx context.Context, userID int64, target entity.TargetRef, jobs []entity.DeliveryJob) error
	CancelPendingJobs(ctx context.Context, userID int64, target entity.TargetRef) (int64, error)

	ClaimDueJobs(ctx context.Context, now time.Time, limit int32, staleBefore time.Time) ([]entity.DueJob, error)
	FinalizeJob(ctx context.Context, jobID int64, status entity.JobStatus, errorDetail string, attemptedAt time.Time) error
	CancelClaimedJob(ctx context.Context, jobID int64) error
	InsertJob(ctx context.Context, job entity.DeliveryJob) error
	AppendLogEntries(ctx context.Context, entries []entity.LogEntry) error

	ListJobs(ctx context.Context, userID int64, target entity.TargetRef, statuses []entity.JobStatus, limit, offset int32) ([]entity.DeliveryJob, error)
	ListLogEntries(ctx context.Context, userID int64, limit, offset int32) ([]entity.LogEntry, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoPush interface {
	Send(ctx context.Context, n push.Notification) error
}

type repoSMS interface {
	Send(ctx context.Context, msg sms.Message) error
}

type publisher interface {
	Publish(ctx context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error)
}

type Usecase struct {
	repoDB    repoDB
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	idem      idempotency.Idempotency
	repoMail  repoMail
	repoPush  repoPush
	repoSMS   repoSMS
	publisher publisher
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Validator   validator.Validator
	Idempotency idempotency.Idempotency
	RepoMail    repoMail
	RepoPush    repoPush
	RepoSMS     repoSMS
	Publisher   publisher
	Instrument  instrument.Instrumentation
}

func NewNotify(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		idem:      dep.Idempotency,
		repoMail:  dep.RepoMail,
		repoPush:  dep.RepoPush,
		repoSMS:   dep.RepoSMS,
		publisher: dep.Publisher,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notify.usecase").Start(ctx, name)
}
