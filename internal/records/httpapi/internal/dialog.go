package internal

import (
	"upkeep-server/internal/records/usecases"
)

// DialogOpenRequest opens a create dialog when RecordID is empty and an
// edit dialog for that record otherwise.
type DialogOpenRequest struct {
	RecordID string `json:"record_id"`
}

type DialogChangeRequest struct {
	Values map[string]any `json:"values"`
}

type DialogResponse struct {
	ID        string              `json:"id"`
	Entity    string              `json:"entity"`
	State     string              `json:"state"`
	Mode      string              `json:"mode"`
	RecordID  string              `json:"record_id,omitempty"`
	Values    map[string]any      `json:"values"`
	Errors    map[string][]string `json:"errors"`
	Submitted bool                `json:"submitted"`
	Fields    []FieldResponse     `json:"fields"`
	Record    *RecordResponse     `json:"record,omitempty"`
}

func ToDialogResponse(v usecases.DialogView) DialogResponse {
	errs := map[string][]string(v.Errors)
	if errs == nil {
		errs = map[string][]string{}
	}

	response := DialogResponse{
		ID:        v.ID,
		Entity:    v.Entity,
		State:     v.State.String(),
		Mode:      string(v.Mode),
		RecordID:  string(v.RecordID),
		Values:    v.Values,
		Errors:    errs,
		Submitted: v.Submitted,
		Fields:    ToFieldResponses(v.Fields),
	}
	if v.Record != nil {
		record := ToRecordResponse(*v.Record)
		response.Record = &record
	}
	return response
}
