package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedDomainEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
)

// Worker procesa eventos pendientes de la tabla outbox de forma genérica.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventBus
	eventRegistry map[string]sharedDomainEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventBus,
	registry map[string]sharedDomainEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start inicia el bucle de polling del worker. Bloquea hasta que se cancele ctx.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker stopped")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica un lote de eventos pendientes y devuelve cuántos quedaron marcados.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Failed to fetch pending outbox events", zap.Error(err))
		return 0
	}
	if len(events) > 0 {
		w.log.Debug(fmt.Sprintf("📬 %d outbox events to process", len(events)))
	}

	published := 0
	for _, evt := range events {
		if w.publishAndMark(ctx, evt) {
			published++
		}
	}
	return published
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	logger := w.log.With(zap.String("event_id", evt.ID.String()), zap.String("event_type", evt.EventType))

	// 1. El registro dice a qué tipo debe ajustarse el payload
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		// Se queda pendiente hasta que algún dominio registre el tipo.
		logger.Error("Unknown event type in registry")
		return false
	}

	envelope, err := buildEnvelope(evt, metadata)
	if err != nil {
		logger.Error("Failed to decode event payload", zap.Error(err))
		return false
	}

	// 2. Publicar el sobre
	if err := w.publisher.Publish(ctx, envelope); err != nil {
		logger.Warn("⚠️ Could not publish event", zap.Error(err))
		return false // no se marca para que se reintente
	}

	// 3. Marcar como procesado en la DB
	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		logger.Warn("⚠️ Could not mark event as processed", zap.Error(err))
		return false
	}
	logger.Debug("✅ Event published and marked")
	return true
}

// buildEnvelope valida el payload contra el tipo registrado y lo empaqueta.
func buildEnvelope(evt sharedDomain.OutboxEvent, metadata sharedDomainEvents.EventMetadata) (sharedDomainEvents.IntegrationEvent, error) {
	typed := reflect.New(metadata.Type).Interface()

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}
	if err := json.Unmarshal(raw, typed); err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}
	data, err := json.Marshal(typed)
	if err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}

	return sharedDomainEvents.IntegrationEvent{
		ID:            evt.ID.String(),
		Type:          evt.EventType,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		Timestamp:     evt.CreatedAt,
		Data:          data,
		Topic:         metadata.Topic,
	}, nil
}
