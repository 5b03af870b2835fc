package domain

import (
	"errors"

	"upkeep-server/internal/infra/utils"
)

type ID string

// IDKey is the accessor key under which a record exposes its id.
const IDKey = "id"

type Values map[string]any

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

type Record struct {
	ID        ID
	Entity    string
	Values    Values
	CreatedAt utils.Time
	UpdatedAt utils.Time
}

// Value looks up an accessor key on the record.
func (r Record) Value(key string) (any, bool) {
	if key == IDKey {
		return string(r.ID), r.ID != ""
	}
	v, ok := r.Values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *Record) Replace(values Values) {
	r.Values = values.Clone()
	delete(r.Values, IDKey)
	r.UpdatedAt = utils.Now()
}

var ErrRecordEntityRequired = errors.New("record entity is required")

func NewRecordBuilder() *recordBuilder {
	return &recordBuilder{}
}

type recordBuilder struct {
	actions []recordHandler
}

type recordHandler func(v *Record) error

func (b *recordBuilder) WithID(value ID) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.ID = value
		return nil
	})
	return b
}

func (b *recordBuilder) WithEntity(value string) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.Entity = value
		return nil
	})
	return b
}

func (b *recordBuilder) WithValues(value Values) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.Values = value.Clone()
		if id, ok := r.Values[IDKey].(string); ok && r.ID == "" {
			r.ID = ID(id)
		}
		delete(r.Values, IDKey)
		return nil
	})
	return b
}

func (b *recordBuilder) Build() (Record, error) {
	now := utils.Now()
	result := Record{
		Values:    Values{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Record{}, err
		}
	}

	if result.Entity == "" {
		return Record{}, ErrRecordEntityRequired
	}
	if result.ID == "" {
		result.ID = ID(utils.GenerateUUID())
	}

	return result, nil
}
