package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
)

const recordTimeout = 2 * time.Second

// ActivityRecorder es lo que el consumidor necesita del servicio.
type ActivityRecorder interface {
	Record(ctx context.Context, evt sharedEvents.IntegrationEvent) (bool, error)
}

// ActivityConsumer guarda en el registro de actividad cada evento del bus.
type ActivityConsumer struct {
	service ActivityRecorder
	log     *zap.Logger
}

var _ sharedBus.MessageHandler = (*ActivityConsumer)(nil)

func NewActivityConsumer(service ActivityRecorder, logger *zap.Logger) *ActivityConsumer {
	return &ActivityConsumer{service: service, log: logger}
}

// HandleMessage nunca devuelve error: un mensaje que no se puede guardar se registra y se descarta.
func (c *ActivityConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var evt sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	ctxRecord, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	stored, err := c.service.Record(ctxRecord, evt)
	if err != nil {
		c.log.Warn("Failed to record activity",
			zap.String("key", key),
			zap.String("event_id", evt.ID),
			zap.String("type", evt.Type),
			zap.Error(err),
		)
		return
	}
	if stored {
		c.log.Debug("Activity recorded",
			zap.String("event_id", evt.ID),
			zap.String("type", evt.Type),
			zap.String("aggregate_id", evt.AggregateID),
		)
	}
}
