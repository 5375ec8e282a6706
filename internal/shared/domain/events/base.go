package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Data          json.RawMessage `json:"data"` // contenido específico del evento
	Topic         string          `json:"-"`
}

// PartitionKey agrupa en la misma partición los eventos de un mismo agregado.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}

func (e IntegrationEvent) EventName() string {
	return e.Type
}

func (e IntegrationEvent) EventTopic() string {
	return e.Topic
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// MergeRegistries une los registros de cada dominio en uno solo.
func MergeRegistries(registries ...map[string]EventMetadata) map[string]EventMetadata {
	merged := make(map[string]EventMetadata)
	for _, r := range registries {
		for k, v := range r {
			merged[k] = v
		}
	}
	return merged
}
