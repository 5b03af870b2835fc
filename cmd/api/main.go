package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"upkeep-server/cmd/api/wire"
	"upkeep-server/cmd/config"
	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/infra/node"
	"upkeep-server/internal/records/persistence"
	"upkeep-server/internal/records/usecases"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

const _shutdownTimeout = 10 * time.Second

func main() {
	flags := pflag.NewFlagSet("upkeep-server", pflag.ExitOnError)
	flags.String("config-dir", "", "directory holding server.yaml")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("address", ":3000", "http listen address")
	_ = flags.Parse(os.Args[1:])
	if err := config.BindFlags(flags); err != nil {
		panic(err)
	}

	cfg := config.LoadConfig()
	setupLogging(cfg.General.LogLevel)
	slog.Info("🚀 upkeep is initializing")
	slog.Debug("config loaded", "data", cfg)

	telemetry, err := startTelemetry(context.Background(), cfg.Otel)
	if err != nil {
		panic(err)
	}

	internalBroker := async.NewLocalBroker()
	app := handleWireInjector(wire.InitializeApplication(cfg, internalBroker)).(*wire.Application)

	appCtx, cancelFn := context.WithCancel(context.Background())

	if err := app.Registry.Seed(appCtx, app.Repository); err != nil {
		slog.Error("seeding records", slog.String("error", err.Error()))
		panic(err)
	}

	consumer := app.Consumers.New()
	if err := consumer.Consume(persistence.RecordsTopic, app.EventsHandler.Handle, usecases.RecordEvent{}); err != nil {
		slog.Error("consuming record events", slog.String("error", err.Error()))
		panic(err)
	}

	httpServer := httpserver.NewServer(
		httpserver.Config{
			Address:        cfg.HTTP.Address,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		},
		app.Controllers...,
	)
	go httpServer.Run()
	slog.Info("http server listening", slog.String("address", cfg.HTTP.Address))

	var wg sync.WaitGroup
	workers := []async.Worker{app.Scheduler}
	for _, worker := range workers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	sig := <-signalChannel
	slog.Info("shutting down", slog.String("signal", sig.String()), slog.Duration("uptime", node.GetNodeInfo().Uptime()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancelShutdown()

	// stop accepting work before the components behind it go away
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", slog.String("error", err.Error()))
	}
	app.Toasts.Shutdown()

	cancelFn()
	wg.Wait()
	app.Scheduler.Shutdown()
	if err := app.PubSub.Close(); err != nil {
		slog.Error("closing pubsub", slog.String("error", err.Error()))
	}
	internalBroker.Stop()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutting down otel", slog.String("error", err.Error()))
	}
	slog.Info("good bye!!!")
	os.Exit(0)
}

func setupLogging(level string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       logLevelMapping[level],
		ReplaceAttr: slogReplaceAttr,
	})
	slog.SetDefault(slog.New(handler.WithAttrs(node.GetNodeInfo().LogAttrs())))
}

func slogReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
