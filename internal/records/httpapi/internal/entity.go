package internal

import (
	"upkeep-server/internal/records/domain"
)

type EntityResponse struct {
	Name              string           `json:"name"`
	DisplayName       string           `json:"display_name"`
	DisplayNamePlural string           `json:"display_name_plural"`
	Fields            []FieldResponse  `json:"fields"`
	Columns           []ColumnResponse `json:"columns"`
	Defaults          map[string]any   `json:"defaults,omitempty"`
}

type FieldResponse struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        string           `json:"type"`
	Required    bool             `json:"required"`
	Placeholder string           `json:"placeholder,omitempty"`
	Section     string           `json:"section,omitempty"`
	Rows        int              `json:"rows,omitempty"`
	Options     []OptionResponse `json:"options,omitempty"`
}

type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ColumnResponse struct {
	ID          string `json:"id"`
	Header      string `json:"header"`
	AccessorKey string `json:"accessor_key"`
}

func ToEntityResponse(schema domain.EntitySchema) EntityResponse {
	columns := make([]ColumnResponse, len(schema.Columns))
	for i, c := range schema.Columns {
		columns[i] = ColumnResponse{ID: c.ID, Header: c.Header, AccessorKey: c.AccessorKey}
	}

	return EntityResponse{
		Name:              schema.Name,
		DisplayName:       schema.DisplayName,
		DisplayNamePlural: schema.DisplayNamePlural,
		Fields:            ToFieldResponses(schema.Fields),
		Columns:           columns,
		Defaults:          schema.Defaults,
	}
}

func ToFieldResponses(fields []domain.Field) []FieldResponse {
	result := make([]FieldResponse, len(fields))
	for i, f := range fields {
		base := f.Base()
		response := FieldResponse{
			Name:        base.Name,
			Label:       base.Label,
			Type:        string(f.Type()),
			Required:    base.Required,
			Placeholder: base.Placeholder,
			Section:     base.Section,
		}

		switch v := f.(type) {
		case domain.TextareaField:
			response.Rows = v.Rows
		case domain.SelectField:
			response.Options = make([]OptionResponse, len(v.Options))
			for j, o := range v.Options {
				response.Options[j] = OptionResponse{Value: o.Value, Label: o.Label}
			}
		}
		result[i] = response
	}
	return result
}
