package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/clock"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goroutine"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/idempotency"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/jwt"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/mail"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/sms"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	push      push.Push
	sms       sms.SMS
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initPush()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
