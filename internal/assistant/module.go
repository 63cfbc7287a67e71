package assistant

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/inbound"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/outbound/db"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/usecase"
	notifyuc "github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/clock"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Router     *router.Router
	Scheduler  *notifyuc.Usecase
}

func New(dep Dependency) error {
	dbAssistant := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.NewAssistant(usecase.Dependency{
		RepoDB:     dbAssistant,
		Scheduler:  dep.Scheduler,
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
