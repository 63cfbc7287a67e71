package app

import (
	"log/slog"
	"os"

	"github.com/macthedonald/trynotifi-sub000/internal/assistant"
	"github.com/macthedonald/trynotifi-sub000/internal/notify"
	notifyuc "github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
)

func (a *App) initModules() {
	var scheduler *notifyuc.Usecase

	if a.config.GetBool("modules.notify.enabled") {
		uc, err := notify.New(notify.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Idempotency: a.idemp,
			Router:      a.router,
			Mail:        a.mail,
			Push:        a.push,
			SMS:         a.sms,
		})
		if err != nil {
			slog.Error("failed to init module notify", "error", err)
			os.Exit(1)
		}
		scheduler = uc
	}

	if a.config.GetBool("modules.assistant.enabled") {
		if scheduler == nil {
			slog.Error("module assistant requires module notify to be enabled")
			os.Exit(1)
		}

		if err := assistant.New(assistant.Dependency{
			DBConn:     a.dbConn,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			Scheduler:  scheduler,
		}); err != nil {
			slog.Error("failed to init module assistant", "error", err)
			os.Exit(1)
		}
	}
}
