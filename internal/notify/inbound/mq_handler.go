package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/instrument"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/messaging"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/uid"
	"github.com/macthedonald/trynotifi-sub000/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) ItemSynced(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notify.inbound.mq").Start(ctx, "ItemSynced")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: item synced", "msg_body", string(body))

	var payload event.ItemSyncedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of item synced", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeItemSynced(ctx, usecase.ConsumeItemSyncedInput{
		UserID:     payload.UserID,
		ReminderID: payload.ReminderID,
		EventID:    payload.EventID,
		DueAt:      payload.DueAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume item synced", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
