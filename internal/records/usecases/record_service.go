package usecases

//go:generate mockgen -source=./record_service.go -destination=../../../test/unit/doubles/records/usecases/record_service_mock.go -package=usecases -mock_names=RecordService=MockRecordService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"upkeep-server/internal/infra/cache"
	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
	"upkeep-server/internal/records/validation"
)

type RecordService interface {
	Entities() []domain.EntitySchema
	Entity(name string) (domain.EntitySchema, error)
	Validator(name string) (validation.Schema, error)
	ListRecords(ctx context.Context, entity string, filter Filter) ([]domain.Record, int, error)
	GetRecord(ctx context.Context, entity string, id domain.ID) (domain.Record, error)
	CreateRecord(ctx context.Context, entity string, values domain.Values) (domain.Record, error)
	UpdateRecord(ctx context.Context, entity string, id domain.ID, values domain.Values) (domain.Record, error)
	DeleteRecord(ctx context.Context, entity string, id domain.ID) error
	TableView(ctx context.Context, entity string, filter Filter) (table.View, int, error)
	ExportCSV(ctx context.Context, entity string) ([]byte, error)
	InvalidateExport(ctx context.Context, entity string)
}

const (
	_createAttempts   = 3
	_exportKeyPrefix  = "export:"
	_defaultExportTTL = 5 * time.Minute
)

type RecordServiceOptions struct {
	ExportTTL time.Duration
}

func NewRecordService(
	registry SchemaRegistry,
	repository RecordRepository,
	notifier Notifier,
	exports cache.Cache,
	opts RecordServiceOptions,
) (*SimpleRecordService, error) {
	if opts.ExportTTL <= 0 {
		opts.ExportTTL = _defaultExportTTL
	}

	mutations, err := otel.GetMeterProvider().Meter("upkeep-server").Int64Counter(
		"upkeep_server.records.mutations",
		metric.WithDescription("Record mutations by entity and operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mutations counter: %w", err)
	}

	return &SimpleRecordService{
		registry:   registry,
		repository: repository,
		notifier:   notifier,
		exports:    exports,
		exportTTL:  opts.ExportTTL,
		mutations:  mutations,
	}, nil
}

var _ RecordService = (*SimpleRecordService)(nil)

type SimpleRecordService struct {
	registry   SchemaRegistry
	repository RecordRepository
	notifier   Notifier
	exports    cache.Cache
	exportTTL  time.Duration
	mutations  metric.Int64Counter

	// held shared while an export is built and stored, exclusively while
	// one is dropped, so a load racing a write cannot store stale rows
	exportsMu sync.RWMutex
}

func (s *SimpleRecordService) Entities() []domain.EntitySchema {
	return s.registry.Entities()
}

func (s *SimpleRecordService) Entity(name string) (domain.EntitySchema, error) {
	schema, _, err := s.registry.Entity(name)
	return schema, err
}

func (s *SimpleRecordService) Validator(name string) (validation.Schema, error) {
	_, validator, err := s.registry.Entity(name)
	return validator, err
}

func (s *SimpleRecordService) ListRecords(ctx context.Context, entity string, filter Filter) ([]domain.Record, int, error) {
	if _, _, err := s.registry.Entity(entity); err != nil {
		return nil, 0, err
	}

	records, total, err := s.repository.List(ctx, entity, filter)
	if err != nil {
		slog.Error("listing records", slog.String("entity", entity), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing %s: %w", entity, err)
	}
	return records, total, nil
}

func (s *SimpleRecordService) GetRecord(ctx context.Context, entity string, id domain.ID) (domain.Record, error) {
	if _, _, err := s.registry.Entity(entity); err != nil {
		return domain.Record{}, err
	}

	record, err := s.repository.Get(ctx, entity, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, domain.ErrRecordNotFound
		}
		slog.Error("getting record", slog.String("entity", entity), slog.String("error", err.Error()))
		return domain.Record{}, fmt.Errorf("getting %s %s: %w", entity, id, err)
	}
	return record, nil
}

// CreateRecord validates the values, allocates a fresh id and appends the
// record to the entity's list.
func (s *SimpleRecordService) CreateRecord(ctx context.Context, entity string, values domain.Values) (domain.Record, error) {
	schema, validator, err := s.registry.Entity(entity)
	if err != nil {
		return domain.Record{}, err
	}

	if errs := validator.Validate(values); errs.HasErrors() {
		return domain.Record{}, domain.NewValidationError(errs)
	}
	normalized := validation.Normalize(schema.Fields, values)
	delete(normalized, domain.IDKey)

	for range _createAttempts {
		var record domain.Record
		record, err = s.create(ctx, schema, normalized)
		if errors.Is(err, domain.ErrDuplicateID) {
			continue
		}
		if err != nil {
			break
		}

		s.recordMutation(ctx, entity, "create")
		slog.Info("record created", slog.String("entity", entity), slog.String("id", string(record.ID)))
		return record, nil
	}

	slog.Error("creating record", slog.String("entity", entity), slog.String("error", err.Error()))
	s.notifyFailure(ctx, schema, "create", err)
	return domain.Record{}, fmt.Errorf("creating %s: %w", entity, err)
}

func (s *SimpleRecordService) create(ctx context.Context, schema domain.EntitySchema, values domain.Values) (domain.Record, error) {
	existing, err := s.repository.IDs(ctx, schema.Name)
	if err != nil {
		return domain.Record{}, fmt.Errorf("loading ids: %w", err)
	}

	id, err := schema.IDs().NextID(existing)
	if err != nil {
		return domain.Record{}, err
	}

	record, err := domain.NewRecordBuilder().
		WithEntity(schema.Name).
		WithID(id).
		WithValues(values).
		Build()
	if err != nil {
		return domain.Record{}, err
	}

	if err := s.repository.Create(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

// UpdateRecord replaces the field values of the record with the given id.
// Keys that are not fields of the entity are carried over unless the
// caller sets them.
func (s *SimpleRecordService) UpdateRecord(ctx context.Context, entity string, id domain.ID, values domain.Values) (domain.Record, error) {
	schema, validator, err := s.registry.Entity(entity)
	if err != nil {
		return domain.Record{}, err
	}

	if errs := validator.Validate(values); errs.HasErrors() {
		return domain.Record{}, domain.NewValidationError(errs)
	}

	record, err := s.GetRecord(ctx, entity, id)
	if err != nil {
		return domain.Record{}, err
	}

	replacement := validation.Normalize(schema.Fields, values)
	for key, v := range record.Values {
		if _, isField := schema.Field(key); isField {
			continue
		}
		if _, set := replacement[key]; !set {
			replacement[key] = v
		}
	}
	record.Replace(replacement)

	if err := s.repository.Update(ctx, record); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, domain.ErrRecordNotFound
		}
		slog.Error("updating record", slog.String("entity", entity), slog.String("error", err.Error()))
		s.notifyFailure(ctx, schema, "update", err)
		return domain.Record{}, fmt.Errorf("updating %s %s: %w", entity, id, err)
	}

	s.recordMutation(ctx, entity, "update")
	return record, nil
}

func (s *SimpleRecordService) DeleteRecord(ctx context.Context, entity string, id domain.ID) error {
	schema, _, err := s.registry.Entity(entity)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, entity, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		slog.Error("deleting record", slog.String("entity", entity), slog.String("error", err.Error()))
		s.notifyFailure(ctx, schema, "delete", err)
		return fmt.Errorf("deleting %s %s: %w", entity, id, err)
	}

	s.recordMutation(ctx, entity, "delete")
	return nil
}

func (s *SimpleRecordService) TableView(ctx context.Context, entity string, filter Filter) (table.View, int, error) {
	schema, _, err := s.registry.Entity(entity)
	if err != nil {
		return table.View{}, 0, err
	}

	records, total, err := s.ListRecords(ctx, entity, filter)
	if err != nil {
		return table.View{}, 0, err
	}
	return table.Render(records, schema.Columns, table.Options{}), total, nil
}

// ExportCSV renders every record of the entity as CSV. The result is cached
// until the entity changes.
func (s *SimpleRecordService) ExportCSV(ctx context.Context, entity string) ([]byte, error) {
	schema, _, err := s.registry.Entity(entity)
	if err != nil {
		return nil, err
	}

	s.exportsMu.RLock()
	defer s.exportsMu.RUnlock()

	return s.exports.GetOrSet(ctx, _exportKeyPrefix+entity, s.exportTTL, func() ([]byte, error) {
		records, _, err := s.repository.List(ctx, entity, Filter{})
		if err != nil {
			return nil, fmt.Errorf("listing %s for export: %w", entity, err)
		}

		var buf bytes.Buffer
		if err := table.WriteCSV(&buf, table.Render(records, schema.Columns, table.Options{})); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// InvalidateExport drops the cached export. Writes through this service call
// it before returning; the record events handler calls it for writes made
// by other nodes.
func (s *SimpleRecordService) InvalidateExport(ctx context.Context, entity string) {
	s.exportsMu.Lock()
	defer s.exportsMu.Unlock()

	s.exports.Delete(context.WithoutCancel(ctx), _exportKeyPrefix+entity)
}

func (s *SimpleRecordService) recordMutation(ctx context.Context, entity, operation string) {
	s.InvalidateExport(ctx, entity)
	s.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
	))
}

func (s *SimpleRecordService) notifyFailure(ctx context.Context, schema domain.EntitySchema, operation string, err error) {
	s.notifier.Notify(ctx, notification.Toast{
		Level:   notification.LevelError,
		Title:   fmt.Sprintf("Could not %s %s", operation, schema.DisplayName),
		Message: err.Error(),
		Entity:  schema.Name,
	})
}
