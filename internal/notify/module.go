package notify

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/inbound"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/outbound/db"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/outbound/email"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/outbound/pushout"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/outbound/smsout"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/clock"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goroutine"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/idempotency"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/mail"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/sms"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Idempotency idempotency.Idempotency
	Router      *router.Router
	Mail        mail.Mail
	Push        push.Push
	SMS         sms.SMS
}

// New wires the notify module and returns its usecase so other modules can
// schedule notifications directly.
func New(dep Dependency) (*usecase.Usecase, error) {
	dbNotify := db.NewDB(dep.DBConn, dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)
	repoPush := pushout.New(dep.Push, dep.Instrument)
	repoSMS := smsout.New(dep.SMS, dep.Instrument)

	uc := usecase.NewNotify(usecase.Dependency{
		RepoDB:      dbNotify,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Idempotency: dep.Idempotency,
		RepoMail:    repoMail,
		RepoPush:    repoPush,
		RepoSMS:     repoSMS,
		Publisher:   dep.Messaging,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, dep.Config, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return uc, nil
}
