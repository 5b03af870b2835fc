package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"upkeep-server/cmd/config"
	"upkeep-server/internal/infra/node"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	_serviceName     = "upkeep-server"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

// telemetry owns the otel providers exported over OTLP gRPC. When disabled
// the global no-op providers stay in place.
type telemetry struct {
	shutdowns []func(context.Context) error
}

func startTelemetry(ctx context.Context, cfg config.OtelConfig) (*telemetry, error) {
	t := &telemetry{}
	if !cfg.Enabled {
		return t, nil
	}
	slog.Info("starting otel providers", slog.String("endpoint", cfg.Endpoint))

	info := node.GetNodeInfo()
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(_serviceName),
		semconv.ServiceVersionKey.String(info.Version),
		semconv.ServiceInstanceIDKey.String(info.ID),
	)

	if err := t.startTraces(ctx, cfg.Endpoint, res); err != nil {
		return nil, err
	}
	if err := t.startMetrics(ctx, cfg.Endpoint, res); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	return t, nil
}

func (t *telemetry) startTraces(ctx context.Context, endpoint string, res *resource.Resource) error {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("creating trace exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(b3.New())
	t.shutdowns = append(t.shutdowns, provider.Shutdown)
	return nil
}

func (t *telemetry) startMetrics(ctx context.Context, endpoint string, res *resource.Resource) error {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("creating metric exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exporter,
			metric.WithTimeout(_collectTimeout),
			metric.WithInterval(_collectPeriod),
		)),
	)
	otel.SetMeterProvider(provider)
	t.shutdowns = append(t.shutdowns, provider.Shutdown)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval)); err != nil {
		return fmt.Errorf("starting runtime instrumentation: %w", err)
	}
	return nil
}

// Shutdown flushes the providers, last started first.
func (t *telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdowns = nil
	return errors.Join(errs...)
}
