package sql

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const _spanKey = "upkeep:span"

// instrument opens a client span around every statement gorm executes.
// Spans are children of whatever span the statement context carries.
func instrument(db *gorm.DB, system string) error {
	tracer := otel.Tracer("upkeep-server/sql")

	before := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			ctx := tx.Statement.Context
			if ctx == nil || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
				return
			}
			ctx, span := tracer.Start(ctx, "db."+operation,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("db.system", system),
					attribute.String("db.operation", operation),
				),
			)
			tx.Statement.Context = ctx
			tx.InstanceSet(_spanKey, span)
		}
	}

	after := func(tx *gorm.DB) {
		value, ok := tx.InstanceGet(_spanKey)
		if !ok {
			return
		}
		span := value.(trace.Span)
		defer span.End()

		span.SetAttributes(
			attribute.String("db.sql.table", tx.Statement.Table),
			attribute.Int64("db.rows_affected", tx.Statement.RowsAffected),
		)
		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			span.RecordError(tx.Error)
			span.SetStatus(codes.Error, tx.Error.Error())
		}
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("upkeep:before_create", before("create")),
		cb.Create().After("gorm:create").Register("upkeep:after_create", after),
		cb.Query().Before("gorm:query").Register("upkeep:before_query", before("query")),
		cb.Query().After("gorm:query").Register("upkeep:after_query", after),
		cb.Update().Before("gorm:update").Register("upkeep:before_update", before("update")),
		cb.Update().After("gorm:update").Register("upkeep:after_update", after),
		cb.Delete().Before("gorm:delete").Register("upkeep:before_delete", before("delete")),
		cb.Delete().After("gorm:delete").Register("upkeep:after_delete", after),
		cb.Row().Before("gorm:row").Register("upkeep:before_row", before("row")),
		cb.Row().After("gorm:row").Register("upkeep:after_row", after),
		cb.Raw().Before("gorm:raw").Register("upkeep:before_raw", before("raw")),
		cb.Raw().After("gorm:raw").Register("upkeep:after_raw", after),
	)
}

// open connects through the dialector and installs the shared
// instrumentation.
func open(dialector gorm.Dialector, system string, cfg *gorm.Config) (*DB, error) {
	cfg.TranslateError = true
	gormDB, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", system, err)
	}
	if err := instrument(gormDB, system); err != nil {
		return nil, fmt.Errorf("instrumenting %s: %w", system, err)
	}
	return &DB{DB: gormDB, autoMigrationEnabled: true}, nil
}
