package pushout

import (
	"context"
	"errors"

	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/push"
	"go.opentelemetry.io/otel/codes"
)

type Push struct {
	client push.Push
	ins    instrument.Instrumentation
}

func New(client push.Push, ins instrument.Instrumentation) *Push {
	return &Push{client: client, ins: ins}
}

func (p *Push) Send(ctx context.Context, n push.Notification) error {
	ctx, span := p.ins.Tracer("notify.outbound.push").Start(ctx, "Send")
	defer span.End()

	if err := p.client.Send(ctx, n); err != nil {
		// Missing credentials is a skip condition, not a provider outage.
		if !errors.Is(err, push.ErrNotConfigured) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}

	return nil
}
