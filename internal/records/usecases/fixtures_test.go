package usecases_test

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

func facilitySchema() domain.EntitySchema {
	return domain.EntitySchema{
		Name:              "facilities",
		DisplayName:       "Facility",
		DisplayNamePlural: "Facilities",
		Fields: []domain.Field{
			domain.TextField{FieldBase: domain.FieldBase{Name: "code", Label: "Code", Required: true}},
			domain.TextField{FieldBase: domain.FieldBase{Name: "name", Label: "Name", Required: true}},
			domain.NumberField{FieldBase: domain.FieldBase{Name: "area", Label: "Area"}},
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
			{ID: "name", Header: "Name", AccessorKey: "name"},
			{ID: "status", Header: "Status", AccessorKey: "status"},
		},
		Defaults:   domain.Values{"status": "Active"},
		IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "F", Width: 3},
	}
}

func facilityValidator() validation.Schema {
	return validation.FromFields(facilitySchema().Fields)
}

func facility(id, code, name string) domain.Record {
	record, _ := domain.NewRecordBuilder().
		WithEntity("facilities").
		WithID(domain.ID(id)).
		WithValues(domain.Values{"code": code, "name": name, "status": "Active"}).
		Build()
	return record
}
