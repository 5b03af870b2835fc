package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"upkeep-server/internal/infra/utils"
	"upkeep-server/internal/records/domain"
)

// Record is one row of any entity. Field values are stored as a JSON
// document so every entity shares the table.
type Record struct {
	Entity    string    `gorm:"primaryKey;size:64"`
	ID        string    `gorm:"primaryKey;size:64"`
	Position  int64     `gorm:"index:idx_records_entity_position;not null"`
	Values    Values    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (Record) TableName() string {
	return "records"
}

type Values map[string]any

func (v Values) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (v *Values) Scan(src any) error {
	var data []byte

	switch val := src.(type) {
	case string:
		data = []byte(val)
	case []byte:
		data = val
	case nil:
		*v = Values{}
		return nil
	default:
		return errors.New("invalid type for values")
	}

	return json.Unmarshal(data, v)
}

func FromRecord(r domain.Record) Record {
	return Record{
		Entity:    r.Entity,
		ID:        string(r.ID),
		Values:    Values(r.Values.Clone()),
		CreatedAt: r.CreatedAt.Time.UTC(),
		UpdatedAt: r.UpdatedAt.Time.UTC(),
	}
}

func (m Record) ToDomain() domain.Record {
	values := domain.Values(m.Values)
	if values == nil {
		values = domain.Values{}
	}
	return domain.Record{
		ID:        domain.ID(m.ID),
		Entity:    m.Entity,
		Values:    values,
		CreatedAt: utils.Time{Time: m.CreatedAt},
		UpdatedAt: utils.Time{Time: m.UpdatedAt},
	}
}
