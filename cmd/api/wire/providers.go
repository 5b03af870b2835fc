package wire

import (
	"fmt"
	"log/slog"
	"time"

	"upkeep-server/cmd/config"
	"upkeep-server/internal/catalog"
	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/cache"
	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/infra/pubsub"
	"upkeep-server/internal/infra/sql"
	"upkeep-server/internal/navigation"
	navigationHTTPAPI "upkeep-server/internal/navigation/httpapi"
	"upkeep-server/internal/records/dialog"
	recordsHTTPAPI "upkeep-server/internal/records/httpapi"
	"upkeep-server/internal/records/persistence"
	"upkeep-server/internal/records/usecases"
)

// Application holds the long lived components main starts and stops.
type Application struct {
	Registry      *catalog.Registry
	PubSub        *pubsub.Factory
	Repository    *persistence.SimpleRecordRepository
	Consumers     pubsub.ConsumerFactory
	EventsHandler *usecases.RecordEventsHandler
	Scheduler     *usecases.MaintenanceScheduler
	Toasts        *recordsHTTPAPI.ToastWebSocketController
	Controllers   []httpserver.Controller
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	switch cfg.Database.Driver {
	case config.DatabaseMemory, "":
		return sql.NewMemoryORM(cfg.Database.Name)
	case config.DatabasePostgres:
		return sql.NewPosgreORM(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func provideCache(cfg config.AppConfig) (cache.Cache, error) {
	var (
		c   cache.Cache
		err error
	)
	switch cfg.Cache.Driver {
	case config.CacheMemory, "":
		c, err = cache.New(cache.DefaultConfig())
	case config.CacheRedis:
		redisConfig := cache.DefaultRedisConfig()
		redisConfig.Addr = cfg.Redis.Addr
		redisConfig.Password = cfg.Redis.Password //pragma: allowlist secret
		redisConfig.DB = cfg.Redis.DB
		c, err = cache.NewRedisCache(redisConfig)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
	if err != nil {
		return nil, err
	}
	return cache.WithMetrics(c, cfg.Cache.Driver), nil
}

func provideMemoryBroker() *pubsub.MemoryBroker {
	return pubsub.NewMemoryBroker()
}

func providePubSubFactory(cfg config.AppConfig, broker *pubsub.MemoryBroker) (*pubsub.Factory, error) {
	switch cfg.PubSub.Driver {
	case config.PubSubMemory, "":
		return pubsub.NewMemoryFactory(broker, pubsub.FactoryOptions{ConsumerGroup: cfg.PubSub.ConsumerGroup}), nil
	case config.PubSubKafka:
		return pubsub.NewKafkaFactory(pubsub.KafkaOptions{
			Brokers:       cfg.Kafka.Brokers,
			ConsumerGroup: cfg.PubSub.ConsumerGroup,
			Adapters:      persistence.AvroAdapters(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown pubsub driver %q", cfg.PubSub.Driver)
	}
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideConsumerFactory(factory *pubsub.Factory) pubsub.ConsumerFactory {
	return factory.GetConsumerFactory()
}

func provideNotifier(broker async.InternalBroker) usecases.Notifier {
	return notification.NewCompositeNotificationClient(
		notification.NewBrokerNotificationClient(broker),
		notification.LogNotificationClient{},
	)
}

func provideRecordServiceOptions(cfg config.AppConfig) usecases.RecordServiceOptions {
	return usecases.RecordServiceOptions{ExportTTL: cfg.Cache.ExportTTL}
}

func provideDialogStore(c cache.Cache, cfg config.AppConfig) dialog.Store {
	return dialog.NewCacheStore(c, cfg.Cache.DialogTTL)
}

func providePages(registry *catalog.Registry) []catalog.Page {
	return registry.Pages()
}

func provideTicker(cfg config.AppConfig) *time.Ticker {
	interval := cfg.Workers.Interval
	if interval <= 0 {
		slog.Warn("invalid worker interval, using one minute", slog.Duration("interval", interval))
		interval = time.Minute
	}
	return time.NewTicker(interval)
}

func provideControllers(
	records *recordsHTTPAPI.RecordController,
	dialogs *recordsHTTPAPI.DialogController,
	pages *navigationHTTPAPI.PageController,
	toasts *recordsHTTPAPI.ToastWebSocketController,
) []httpserver.Controller {
	return []httpserver.Controller{records, dialogs, pages, toasts}
}

var _ navigation.RecordLookup = (*usecases.SimpleRecordService)(nil)
