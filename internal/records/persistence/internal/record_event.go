package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"upkeep-server/internal/infra/pubsub"
	"upkeep-server/internal/records/usecases"
)

const recordEventSchema = `{
	"type": "record",
	"name": "RecordEvent",
	"namespace": "upkeep.records",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "entity", "type": "string"},
		{"name": "record_id", "type": "string"},
		{"name": "values", "type": ["null", "string"], "default": null},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// AvroRecordEvent carries the record values as a JSON document since they
// have no fixed shape.
type AvroRecordEvent struct {
	Type       string    `avro:"type"`
	Entity     string    `avro:"entity"`
	RecordID   string    `avro:"record_id"`
	Values     *string   `avro:"values"`
	OccurredAt time.Time `avro:"occurred_at"`
}

var _ pubsub.AvroAdapter = RecordEventAvroAdapter{}

type RecordEventAvroAdapter struct{}

func (RecordEventAvroAdapter) Schema() string {
	return recordEventSchema
}

func (RecordEventAvroAdapter) Wire() any {
	return &AvroRecordEvent{}
}

func (RecordEventAvroAdapter) ToWire(message pubsub.Message) (any, error) {
	event, ok := message.(usecases.RecordEvent)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T", message)
	}

	wire := AvroRecordEvent{
		Type:       string(event.Type),
		Entity:     event.Entity,
		RecordID:   event.RecordID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.Values != nil {
		data, err := json.Marshal(event.Values)
		if err != nil {
			return nil, fmt.Errorf("marshaling values: %w", err)
		}
		values := string(data)
		wire.Values = &values
	}
	return wire, nil
}

func (RecordEventAvroAdapter) FromWire(wire any) (pubsub.Message, error) {
	w, ok := wire.(*AvroRecordEvent)
	if !ok {
		return nil, fmt.Errorf("unexpected wire value %T", wire)
	}

	event := usecases.RecordEvent{
		Type:       usecases.RecordEventType(w.Type),
		Entity:     w.Entity,
		RecordID:   w.RecordID,
		OccurredAt: w.OccurredAt,
	}
	if w.Values != nil {
		if err := json.Unmarshal([]byte(*w.Values), &event.Values); err != nil {
			return nil, fmt.Errorf("unmarshaling values: %w", err)
		}
	}
	return event, nil
}
