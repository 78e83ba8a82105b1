package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"` // contenido específico del evento
}

// NewIntegrationEvent serializa el payload y rellena los metadatos.
func NewIntegrationEvent(eventType, aggregateID string, payload interface{}) (IntegrationEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return IntegrationEvent{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return IntegrationEvent{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
		Data:        data,
	}, nil
}

// PartitionKey agrupa en la misma partición los eventos del mismo agregado.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}
