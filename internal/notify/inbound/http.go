package inbound

import (
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/config"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, cfg config.Config, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/notifications/schedule", end.Schedule)
	r.POST("/api/v1/notifications/cancel", end.Cancel)
	r.GET("/api/v1/notifications/jobs", end.ListJobs)
	r.GET("/api/v1/notifications/history", end.History)

	r.POST("/internal/worker/sweep", end.Sweep,
		router.MiddlewareCronSecret(cfg.GetString("modules.notify.cron_secret")))
}
