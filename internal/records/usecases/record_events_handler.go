package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/infra/pubsub"
)

// RecordEventsHandler reacts to record mutations: it drops the cached
// export of the entity and tells the user about the change.
type RecordEventsHandler struct {
	records  RecordService
	notifier Notifier
}

func NewRecordEventsHandler(records RecordService, notifier Notifier) *RecordEventsHandler {
	return &RecordEventsHandler{records: records, notifier: notifier}
}

func (h *RecordEventsHandler) Handle(ctx context.Context, key pubsub.Key, msg pubsub.Prototype) error {
	event, ok := msg.(RecordEvent)
	if !ok {
		return fmt.Errorf("unexpected message %T for key %s", msg, key)
	}

	h.records.InvalidateExport(ctx, event.Entity)

	schema, err := h.records.Entity(event.Entity)
	if err != nil {
		slog.Warn("record event for unknown entity", slog.String("entity", event.Entity))
		return nil
	}

	var verb string
	switch event.Type {
	case RecordCreated:
		verb = "created"
	case RecordUpdated:
		verb = "updated"
	case RecordDeleted:
		verb = "deleted"
	default:
		return fmt.Errorf("unknown record event type %q", event.Type)
	}

	h.notifier.Notify(ctx, notification.Toast{
		Level:    notification.LevelSuccess,
		Title:    fmt.Sprintf("%s %s", schema.DisplayName, verb),
		Entity:   event.Entity,
		RecordID: event.RecordID,
		At:       event.OccurredAt,
	})
	return nil
}
