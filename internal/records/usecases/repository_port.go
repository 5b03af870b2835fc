package usecases

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/records/usecases/repository_port_mock.go -package=usecases -mock_names=RecordRepository=MockRecordRepository

import (
	"context"
	"strings"
	"time"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

type Pagination struct {
	Limit  int
	Offset int
}

// Filter narrows a record listing. Query matches any value case
// insensitively; Equals requires exact matches on the rendered value.
type Filter struct {
	Query      string
	Equals     map[string]string
	Pagination Pagination
}

func (f Filter) HasPredicates() bool {
	return strings.TrimSpace(f.Query) != "" || len(f.Equals) > 0
}

func (f Filter) Matches(r domain.Record) bool {
	for key, want := range f.Equals {
		got, ok := r.Value(key)
		if !ok || table.Stringify(got) != want {
			return false
		}
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(string(r.ID)), q) {
		return true
	}
	for _, v := range r.Values {
		if strings.Contains(strings.ToLower(table.Stringify(v)), q) {
			return true
		}
	}
	return false
}

// RecordRepository stores the records of every entity. List returns
// records in insertion order; Update keeps a record's position.
type RecordRepository interface {
	List(ctx context.Context, entity string, filter Filter) ([]domain.Record, int, error)
	Get(ctx context.Context, entity string, id domain.ID) (domain.Record, error)
	IDs(ctx context.Context, entity string) ([]domain.ID, error)
	Create(ctx context.Context, record domain.Record) error
	Update(ctx context.Context, record domain.Record) error
	Delete(ctx context.Context, entity string, id domain.ID) error
}

type RecordEventType string

const (
	RecordCreated RecordEventType = "record_created"
	RecordUpdated RecordEventType = "record_updated"
	RecordDeleted RecordEventType = "record_deleted"
)

// RecordEvent is published on every successful mutation.
type RecordEvent struct {
	Type       RecordEventType `json:"type"`
	Entity     string          `json:"entity"`
	RecordID   string          `json:"record_id"`
	Values     map[string]any  `json:"values,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
