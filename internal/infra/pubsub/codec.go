package pubsub

import (
	"encoding/json"
	"fmt"
	"reflect"
)

type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

var _ Codec = (*JSONCodec)(nil)

// JSONCodec decodes into values of the prototype's type.
type JSONCodec struct {
	prototype reflect.Type
}

func NewJSONCodec(prototype any) *JSONCodec {
	return &JSONCodec{prototype: reflect.TypeOf(prototype)}
}

func (c *JSONCodec) Encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshaling data: %w", err)
	}
	return data, nil
}

func (c *JSONCodec) Decode(data []byte) (any, error) {
	if c.prototype == nil {
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("unmarshaling data: %w", err)
		}
		return value, nil
	}

	instance := reflect.New(c.prototype)
	if err := json.Unmarshal(data, instance.Interface()); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}
	return instance.Elem().Interface(), nil
}
