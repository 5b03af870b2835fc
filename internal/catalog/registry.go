package catalog

import (
	"fmt"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/usecases"
	"upkeep-server/internal/records/validation"
)

// DefaultPages returns every page of the dashboard in menu order.
func DefaultPages() []Page {
	return []Page{
		facilitiesPage(),
		assetClassesPage(),
		assetsPage(),
		systemsPage(),
		workOrdersPage(),
		plansPage(),
		inspectionsPage(),
		vendorsPage(),
	}
}

type Registry struct {
	pages      []Page
	byEntity   map[string]int
	validators map[string]validation.Schema
}

var _ usecases.SchemaRegistry = (*Registry)(nil)

func NewRegistry(pages []Page) (*Registry, error) {
	r := &Registry{
		pages:      pages,
		byEntity:   make(map[string]int, len(pages)),
		validators: make(map[string]validation.Schema, len(pages)),
	}

	paths := make(map[string]string, len(pages))
	for i, p := range pages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byEntity[p.Schema.Name]; dup {
			return nil, fmt.Errorf("%w: entity %s registered twice", ErrPageInvalid, p.Schema.Name)
		}
		if other, dup := paths[p.Path]; dup {
			return nil, fmt.Errorf("%w: path %s used by %s and %s", ErrPageInvalid, p.Path, other, p.Schema.Name)
		}
		paths[p.Path] = p.Schema.Name

		validator, err := buildValidator(p)
		if err != nil {
			return nil, err
		}
		r.byEntity[p.Schema.Name] = i
		r.validators[p.Schema.Name] = validator
	}

	return r, nil
}

func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultPages())
}

func buildValidator(p Page) (validation.Schema, error) {
	schemas := []validation.Schema{validation.FromFields(p.Schema.Fields)}
	if p.Constraints != "" {
		cue, err := validation.NewCueSchema(p.Schema.Fields, p.Constraints)
		if err != nil {
			return nil, fmt.Errorf("%s constraints: %w", p.Schema.Name, err)
		}
		schemas = append(schemas, cue)
	}
	schemas = append(schemas, p.Rules...)
	return validation.Compose(schemas...), nil
}

func (r *Registry) Pages() []Page {
	return append([]Page(nil), r.pages...)
}

func (r *Registry) Page(entity string) (Page, error) {
	i, ok := r.byEntity[entity]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, entity)
	}
	return r.pages[i], nil
}

func (r *Registry) Entities() []domain.EntitySchema {
	result := make([]domain.EntitySchema, len(r.pages))
	for i, p := range r.pages {
		result[i] = p.Schema
	}
	return result
}

func (r *Registry) Entity(name string) (domain.EntitySchema, validation.Schema, error) {
	page, err := r.Page(name)
	if err != nil {
		return domain.EntitySchema{}, nil, err
	}
	return page.Schema, r.validators[name], nil
}
