package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"upkeep-server/internal/infra/pubsub"
	"upkeep-server/internal/infra/sql"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/persistence/internal"
	"upkeep-server/internal/records/usecases"
)

const RecordsTopic pubsub.Topic = "records"

func NewRecordRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleRecordRepository, error) {
	publisher, err := publisherFactory.New(RecordsTopic, usecases.RecordEvent{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.Record{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRecordRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.RecordRepository = (*SimpleRecordRepository)(nil)

type SimpleRecordRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

// List returns the entity's records in insertion order. Without predicates
// the page is cut by the database; otherwise the whole list is scanned.
func (r *SimpleRecordRepository) List(ctx context.Context, entity string, filter usecases.Filter) ([]domain.Record, int, error) {
	if filter.HasPredicates() {
		return r.listMatching(ctx, entity, filter)
	}

	var total int64
	err := r.orm.WithContext(ctx).
		Model(&internal.Record{}).
		Where("entity = ?", entity).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	query := r.orm.WithContext(ctx).Where("entity = ?", entity).Order("position")
	if filter.Pagination.Limit > 0 {
		query = query.Limit(filter.Pagination.Limit)
	}
	if filter.Pagination.Offset > 0 {
		query = query.Offset(filter.Pagination.Offset)
	}

	var rows []internal.Record
	if err := query.Find(&rows).Error(); err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	return toDomain(rows), int(total), nil
}

func (r *SimpleRecordRepository) listMatching(ctx context.Context, entity string, filter usecases.Filter) ([]domain.Record, int, error) {
	var rows []internal.Record
	err := r.orm.WithContext(ctx).
		Where("entity = ?", entity).
		Order("position").
		Find(&rows).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	matched := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		record := row.ToDomain()
		if filter.Matches(record) {
			matched = append(matched, record)
		}
	}

	return paginate(matched, filter.Pagination), len(matched), nil
}

func (r *SimpleRecordRepository) Get(ctx context.Context, entity string, id domain.ID) (domain.Record, error) {
	var row internal.Record
	err := r.orm.
		WithContext(ctx).
		First(&row, "entity = ? AND id = ?", entity, string(id)).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Record{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("database query: %w", err)
	}

	return row.ToDomain(), nil
}

func (r *SimpleRecordRepository) IDs(ctx context.Context, entity string) ([]domain.ID, error) {
	var ids []string
	err := r.orm.WithContext(ctx).
		Model(&internal.Record{}).
		Where("entity = ?", entity).
		Pluck("id", &ids).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.ID, len(ids))
	for i, id := range ids {
		result[i] = domain.ID(id)
	}
	return result, nil
}

// Create appends the record after the entity's last one.
func (r *SimpleRecordRepository) Create(ctx context.Context, record domain.Record) error {
	row := internal.FromRecord(record)

	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		position, err := nextPosition(tx, record.Entity)
		if err != nil {
			return err
		}
		row.Position = position
		return tx.Create(&row).Error()
	})
	if errors.Is(err, sql.ErrDuplicatedKey) {
		return domain.ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("creating record in database: %w", err)
	}

	r.publish(ctx, usecases.RecordCreated, record)
	return nil
}

func (r *SimpleRecordRepository) Update(ctx context.Context, record domain.Record) error {
	row := internal.FromRecord(record)

	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		var existing internal.Record
		err := tx.First(&existing, "entity = ? AND id = ?", row.Entity, row.ID).Error()
		if err != nil {
			return err
		}
		row.Position = existing.Position
		row.CreatedAt = existing.CreatedAt
		return tx.Save(&row).Error()
	})
	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("updating record in database: %w", err)
	}

	r.publish(ctx, usecases.RecordUpdated, record)
	return nil
}

func (r *SimpleRecordRepository) Delete(ctx context.Context, entity string, id domain.ID) error {
	var deleted internal.Record

	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		err := tx.First(&deleted, "entity = ? AND id = ?", entity, string(id)).Error()
		if err != nil {
			return err
		}
		return tx.Delete(&internal.Record{}, "entity = ? AND id = ?", entity, string(id)).Error()
	})
	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting record in database: %w", err)
	}

	r.publish(ctx, usecases.RecordDeleted, deleted.ToDomain())
	return nil
}

// Seed stores the records of an entity that has none yet. No events are
// published for seeded records.
func (r *SimpleRecordRepository) Seed(ctx context.Context, entity string, records []domain.Record) (bool, error) {
	var total int64
	err := r.orm.WithContext(ctx).
		Model(&internal.Record{}).
		Where("entity = ?", entity).
		Count(&total).
		Error()
	if err != nil {
		return false, fmt.Errorf("count query: %w", err)
	}
	if total > 0 {
		return false, nil
	}

	err = r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		for i, record := range records {
			row := internal.FromRecord(record)
			row.Entity = entity
			row.Position = int64(i + 1)
			if err := tx.Create(&row).Error(); err != nil {
				return fmt.Errorf("seeding %s %s: %w", entity, record.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// publish reports the mutation. The row is already committed, so a failed
// publish is logged rather than returned.
func (r *SimpleRecordRepository) publish(ctx context.Context, eventType usecases.RecordEventType, record domain.Record) {
	event := usecases.RecordEvent{
		Type:       eventType,
		Entity:     record.Entity,
		RecordID:   string(record.ID),
		Values:     record.Values,
		OccurredAt: time.Now().UTC(),
	}

	slog.Debug("publishing record event",
		slog.String("type", string(eventType)),
		slog.String("entity", record.Entity),
		slog.String("record_id", string(record.ID)))

	key := pubsub.Key(record.Entity + "/" + string(record.ID))
	if err := r.publisher.Publish(ctx, key, event); err != nil {
		slog.Error("publishing record event",
			slog.String("entity", record.Entity),
			slog.String("record_id", string(record.ID)),
			slog.String("error", err.Error()))
	}
}

func nextPosition(tx sql.ORM, entity string) (int64, error) {
	var last []internal.Record
	err := tx.Where("entity = ?", entity).
		Order("position desc").
		Limit(1).
		Find(&last).
		Error()
	if err != nil {
		return 0, fmt.Errorf("reading last position: %w", err)
	}
	if len(last) == 0 {
		return 1, nil
	}
	return last[0].Position + 1, nil
}

func paginate(records []domain.Record, p usecases.Pagination) []domain.Record {
	if p.Offset >= len(records) {
		return []domain.Record{}
	}
	records = records[max(p.Offset, 0):]
	if p.Limit > 0 && p.Limit < len(records) {
		records = records[:p.Limit]
	}
	return records
}

func toDomain(rows []internal.Record) []domain.Record {
	result := make([]domain.Record, len(rows))
	for i, row := range rows {
		result[i] = row.ToDomain()
	}
	return result
}

// AvroAdapters lists the avro wire formats of the topics this package
// publishes.
func AvroAdapters() pubsub.AvroAdapters {
	return pubsub.AvroAdapters{RecordsTopic: internal.RecordEventAvroAdapter{}}
}
