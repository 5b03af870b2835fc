package usecases

//go:generate mockgen -source=ports.go -destination=../../../test/unit/doubles/records/usecases/ports_mock.go -package=usecases -mock_names=SchemaRegistry=MockSchemaRegistry,Notifier=MockNotifier

import (
	"context"

	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

// SchemaRegistry resolves entity names to their schema and validation rules.
type SchemaRegistry interface {
	Entities() []domain.EntitySchema
	Entity(name string) (domain.EntitySchema, validation.Schema, error)
}

type Notifier interface {
	Notify(ctx context.Context, toast notification.Toast)
}
