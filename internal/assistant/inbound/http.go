package inbound

import (
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/assistant/actions", end.ApplyAction)
}
