package inbound

import (
	"context"

	"github.com/macthedonald/trynotifi-sub000/internal/assistant/usecase"
)

type uc interface {
	ApplyAction(ctx context.Context, in usecase.ApplyActionInput) (*usecase.ApplyActionOutput, error)
}
