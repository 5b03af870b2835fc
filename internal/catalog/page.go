package catalog

import (
	"errors"
	"fmt"
	"strings"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

var ErrPageInvalid = errors.New("invalid page")

// Page binds an entity to the dashboard route that lists it. DetailPath is
// empty for pages without a detail view; otherwise it ends with "/:id".
// Constraints is CUE source checked against the normalized values; Rules
// are further checks applied after the field descriptors.
type Page struct {
	Schema      domain.EntitySchema
	Section     string
	Path        string
	DetailPath  string
	Constraints string
	Rules       []validation.Schema
	Seed        []domain.Values
}

func (p Page) Validate() error {
	if err := p.Schema.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(p.Path, "/") {
		return fmt.Errorf("%w: %s path %q must be absolute", ErrPageInvalid, p.Schema.Name, p.Path)
	}
	if p.DetailPath != "" && p.DetailPath != p.Path+"/:id" {
		return fmt.Errorf("%w: %s detail path %q must extend %q", ErrPageInvalid, p.Schema.Name, p.DetailPath, p.Path)
	}
	return nil
}

func text(name, label string, required bool, placeholder string) domain.Field {
	return domain.TextField{FieldBase: domain.FieldBase{Name: name, Label: label, Required: required, Placeholder: placeholder}}
}

func number(name, label string, required bool) domain.Field {
	return domain.NumberField{FieldBase: domain.FieldBase{Name: name, Label: label, Required: required}}
}

func date(name, label string, required bool) domain.Field {
	return domain.DateField{FieldBase: domain.FieldBase{Name: name, Label: label, Required: required}}
}

func textarea(name, label string, rows int) domain.Field {
	return domain.TextareaField{FieldBase: domain.FieldBase{Name: name, Label: label}, Rows: rows}
}

func selectOf(name, label string, required bool, values ...string) domain.Field {
	options := make([]domain.Option, len(values))
	for i, v := range values {
		options[i] = domain.Option{Value: v, Label: v}
	}
	return domain.SelectField{FieldBase: domain.FieldBase{Name: name, Label: label, Required: required}, Options: options}
}

func column(key, header string, cell domain.CellFormatter) domain.Column {
	return domain.Column{ID: key, Header: header, AccessorKey: key, Cell: cell}
}
