package httpapi_test

import (
	"upkeep-server/internal/records/domain"
)

func facilitySchema() domain.EntitySchema {
	return domain.EntitySchema{
		Name:              "facilities",
		DisplayName:       "Facility",
		DisplayNamePlural: "Facilities",
		Fields: []domain.Field{
			domain.TextField{FieldBase: domain.FieldBase{Name: "code", Label: "Code", Required: true}},
			domain.SelectField{
				FieldBase: domain.FieldBase{Name: "status", Label: "Status", Required: true},
				Options: []domain.Option{
					{Value: "Active", Label: "Active"},
					{Value: "Inactive", Label: "Inactive"},
				},
			},
		},
		Columns: []domain.Column{
			{ID: "code", Header: "Code", AccessorKey: "code"},
			{ID: "status", Header: "Status", AccessorKey: "status"},
		},
		Defaults:   domain.Values{"status": "Active"},
		IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "F", Width: 3},
	}
}

func facility(id, code string) domain.Record {
	return domain.Record{
		ID:     domain.ID(id),
		Entity: "facilities",
		Values: domain.Values{"code": code, "status": "Active"},
	}
}
