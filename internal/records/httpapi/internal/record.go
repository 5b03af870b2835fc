package internal

import (
	"time"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

type RecordResponse struct {
	ID        string         `json:"id"`
	Entity    string         `json:"entity"`
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RecordRequest carries the field values of a create or replace call.
type RecordRequest struct {
	Values map[string]any `json:"values"`
}

func ToRecordResponse(r domain.Record) RecordResponse {
	values := r.Values
	if values == nil {
		values = domain.Values{}
	}
	return RecordResponse{
		ID:        string(r.ID),
		Entity:    r.Entity,
		Values:    values,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func ToRecordResponses(records []domain.Record) []RecordResponse {
	result := make([]RecordResponse, len(records))
	for i, r := range records {
		result[i] = ToRecordResponse(r)
	}
	return result
}

type TableResponse struct {
	Entity  string         `json:"entity"`
	Headers []table.Header `json:"headers"`
	Rows    []table.Row    `json:"rows"`
	Actions table.Actions  `json:"actions"`
}

func ToTableResponse(entity string, view table.View, actions table.Actions) TableResponse {
	return TableResponse{
		Entity:  entity,
		Headers: view.Headers,
		Rows:    view.Rows,
		Actions: actions,
	}
}
