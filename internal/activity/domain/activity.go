package domain

import (
	"encoding/json"
	"errors"
	"time"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

const Kind = "activity"

// Campos filtrables del registro de actividad.
const (
	FieldEventType     = "event_type"
	FieldAggregateType = "aggregate_type"
	FieldAggregateID   = "aggregate_id"
	FieldOccurredAt    = "occurred_at"
)

var SearchFields = []string{FieldEventType, FieldAggregateType, FieldAggregateID}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Desc(FieldOccurredAt)}

var ErrInvalidEvent = errors.New("invalid integration event")

// Activity es un evento de dominio ya publicado, tal como llegó al consumidor.
type Activity struct {
	ID            string          `json:"id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// FromEvent convierte el sobre de integración; exige id y tipo.
func FromEvent(evt sharedEvents.IntegrationEvent) (*Activity, error) {
	if evt.ID == "" || evt.Type == "" {
		return nil, ErrInvalidEvent
	}
	occurred := evt.Timestamp.UTC()
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &Activity{
		ID:            evt.ID,
		EventType:     evt.Type,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		OccurredAt:    occurred,
		Payload:       evt.Data,
	}, nil
}
