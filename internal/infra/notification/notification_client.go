package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"upkeep-server/internal/infra/async"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ToastsTopic is the broker topic toast subscribers listen on.
const ToastsTopic async.BrokerTopicName = "toasts"

const _toastEvent = "toast"

// Toast is a transient user facing notification.
type Toast struct {
	Level    Level     `json:"level"`
	Title    string    `json:"title"`
	Message  string    `json:"message,omitempty"`
	Entity   string    `json:"entity,omitempty"`
	RecordID string    `json:"record_id,omitempty"`
	At       time.Time `json:"at"`
}

type NotificationClient interface {
	Notify(ctx context.Context, toast Toast)
}

var _ NotificationClient = (*BrokerNotificationClient)(nil)

// BrokerNotificationClient publishes toasts on the internal broker.
type BrokerNotificationClient struct {
	broker async.InternalBroker
}

func NewBrokerNotificationClient(broker async.InternalBroker) *BrokerNotificationClient {
	return &BrokerNotificationClient{broker: broker}
}

func (c *BrokerNotificationClient) Notify(ctx context.Context, toast Toast) {
	if toast.At.IsZero() {
		toast.At = time.Now().UTC()
	}

	err := c.broker.Publish(ctx, ToastsTopic, async.BrokerMessage{Event: _toastEvent, Value: toast})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Error("publishing toast", slog.String("title", toast.Title), slog.String("error", err.Error()))
	}
}

// ToastFrom extracts a toast from a broker message.
func ToastFrom(msg async.BrokerMessage) (Toast, bool) {
	if msg.Event != _toastEvent {
		return Toast{}, false
	}
	toast, ok := msg.Value.(Toast)
	return toast, ok
}

var _ NotificationClient = (*LogNotificationClient)(nil)

type LogNotificationClient struct{}

func (LogNotificationClient) Notify(ctx context.Context, toast Toast) {
	level := slog.LevelInfo
	switch toast.Level {
	case LevelWarning:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}
	slog.Log(ctx, level, "toast",
		slog.String("title", toast.Title),
		slog.String("message", toast.Message),
		slog.String("entity", toast.Entity),
		slog.String("record_id", toast.RecordID))
}
