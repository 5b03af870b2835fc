//go:build wireinject
// +build wireinject

package wire

import (
	"upkeep-server/cmd/config"
	"upkeep-server/internal/catalog"
	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/navigation"
	navigationHTTPAPI "upkeep-server/internal/navigation/httpapi"
	recordsHTTPAPI "upkeep-server/internal/records/httpapi"
	"upkeep-server/internal/records/persistence"
	"upkeep-server/internal/records/usecases"

	"github.com/google/wire"
)

var RecordServiceSet = wire.NewSet(
	provideDatabase,
	provideCache,
	provideMemoryBroker,
	providePubSubFactory,
	providePublisherFactory,
	provideConsumerFactory,
	provideNotifier,
	provideRecordServiceOptions,
	catalog.NewDefaultRegistry,
	wire.Bind(new(usecases.SchemaRegistry), new(*catalog.Registry)),
	persistence.NewRecordRepository,
	wire.Bind(new(usecases.RecordRepository), new(*persistence.SimpleRecordRepository)),
	usecases.NewRecordService,
	wire.Bind(new(usecases.RecordService), new(*usecases.SimpleRecordService)),
)

func InitializeApplication(cfg config.AppConfig, broker async.InternalBroker) (*Application, error) {
	wire.Build(
		RecordServiceSet,
		provideDialogStore,
		usecases.NewDialogService,
		wire.Bind(new(usecases.DialogService), new(*usecases.SimpleDialogService)),
		providePages,
		navigation.NewNavigator,
		wire.Bind(new(navigation.RecordLookup), new(*usecases.SimpleRecordService)),
		wire.Bind(new(navigationHTTPAPI.PageResolver), new(*navigation.Navigator)),
		recordsHTTPAPI.NewRecordController,
		recordsHTTPAPI.NewDialogController,
		recordsHTTPAPI.NewToastWebSocketController,
		navigationHTTPAPI.NewPageController,
		provideControllers,
		provideTicker,
		usecases.NewMaintenanceScheduler,
		usecases.NewRecordEventsHandler,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
