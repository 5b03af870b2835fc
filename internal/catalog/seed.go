package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

// Seeder stores the initial records of an entity that has none.
type Seeder interface {
	Seed(ctx context.Context, entity string, records []domain.Record) (bool, error)
}

// SeedRecords builds the page's sample records with normalized values and
// ids from the entity's strategy where the sample has none.
func SeedRecords(p Page) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(p.Seed))
	ids := make([]domain.ID, 0, len(p.Seed))

	for _, values := range p.Seed {
		normalized := validation.Normalize(p.Schema.Fields, values)

		id := domain.ID(fmt.Sprint(normalized[domain.IDKey]))
		if _, ok := normalized[domain.IDKey]; !ok {
			next, err := p.Schema.IDs().NextID(ids)
			if err != nil {
				return nil, err
			}
			id = next
		}
		delete(normalized, domain.IDKey)

		record, err := domain.NewRecordBuilder().
			WithEntity(p.Schema.Name).
			WithID(id).
			WithValues(normalized).
			Build()
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", p.Schema.Name, err)
		}
		ids = append(ids, record.ID)
		records = append(records, record)
	}

	return records, nil
}

func (r *Registry) Seed(ctx context.Context, seeder Seeder) error {
	for _, p := range r.pages {
		records, err := SeedRecords(p)
		if err != nil {
			return err
		}

		seeded, err := seeder.Seed(ctx, p.Schema.Name, records)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", p.Schema.Name, err)
		}
		if seeded {
			slog.Info("entity seeded", slog.String("entity", p.Schema.Name), slog.Int("records", len(records)))
		}
	}
	return nil
}
