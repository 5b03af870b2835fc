package pubsub

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// AvroAdapter maps a message onto the struct that travels as avro and back.
// Wire returns a pointer to a fresh wire value for decoding.
type AvroAdapter interface {
	Schema() string
	Wire() any
	ToWire(Message) (any, error)
	FromWire(any) (Message, error)
}

var _ Codec = (*AvroCodec)(nil)

type AvroCodec struct {
	schema  avro.Schema
	adapter AvroAdapter
}

func NewAvroCodec(adapter AvroAdapter) (*AvroCodec, error) {
	schema, err := avro.Parse(adapter.Schema())
	if err != nil {
		return nil, fmt.Errorf("parsing avro schema: %w", err)
	}
	return &AvroCodec{schema: schema, adapter: adapter}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	wire, err := c.adapter.ToWire(value)
	if err != nil {
		return nil, fmt.Errorf("converting to avro: %w", err)
	}
	data, err := avro.Marshal(c.schema, wire)
	if err != nil {
		return nil, fmt.Errorf("marshaling to avro: %w", err)
	}
	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	wire := c.adapter.Wire()
	if err := avro.Unmarshal(c.schema, data, wire); err != nil {
		return nil, fmt.Errorf("unmarshaling from avro: %w", err)
	}
	message, err := c.adapter.FromWire(wire)
	if err != nil {
		return nil, fmt.Errorf("converting from avro: %w", err)
	}
	return message, nil
}

// AvroAdapters resolves the codec of a topic. Topics without an adapter
// travel as JSON.
type AvroAdapters map[Topic]AvroAdapter

func (a AvroAdapters) codecFor(topic Topic, prototype any) (Codec, error) {
	adapter, ok := a[topic]
	if !ok {
		return NewJSONCodec(prototype), nil
	}
	return NewAvroCodec(adapter)
}
