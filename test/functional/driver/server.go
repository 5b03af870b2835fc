package driver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"upkeep-server/cmd/api/wire"
	"upkeep-server/cmd/config"
	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/records/persistence"
	"upkeep-server/internal/records/usecases"
)

// Server runs the fully wired application in process on a private
// in-memory database.
type Server struct {
	URL    string
	http   *httptest.Server
	app    *wire.Application
	broker *async.LocalBroker
}

func StartServer(ctx context.Context) (*Server, error) {
	cfg := config.AppConfig{
		General:  config.GeneralConfig{LogLevel: "error"},
		Database: config.DatabaseConfig{Driver: config.DatabaseMemory, Name: "functional-" + uuid.NewString()},
		Cache:    config.CacheConfig{Driver: config.CacheMemory, DialogTTL: time.Minute, ExportTTL: time.Minute},
		Workers:  config.WorkersConfig{Interval: time.Hour},
	}

	broker := async.NewLocalBroker()
	app, err := wire.InitializeApplication(cfg, broker)
	if err != nil {
		return nil, fmt.Errorf("wiring application: %w", err)
	}
	if err := app.Registry.Seed(ctx, app.Repository); err != nil {
		return nil, fmt.Errorf("seeding: %w", err)
	}
	err = app.Consumers.New().Consume(persistence.RecordsTopic, app.EventsHandler.Handle, usecases.RecordEvent{})
	if err != nil {
		return nil, fmt.Errorf("consuming record events: %w", err)
	}

	server := httpserver.NewServer(httpserver.DefaultConfig(), app.Controllers...)
	ts := httptest.NewServer(server.Handler())

	return &Server{URL: ts.URL, http: ts, app: app, broker: broker}, nil
}

func (s *Server) Close() {
	s.http.Close()
	s.app.Toasts.Shutdown()
	s.app.Scheduler.Shutdown()
	_ = s.app.PubSub.Close()
	s.broker.Stop()
}
