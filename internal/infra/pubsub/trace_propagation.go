package pubsub

import (
	"context"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/propagation"
)

// TraceHeaders carries a span context across an asynchronous hop, encoded
// with the same b3 headers the http server accepts.
type TraceHeaders map[string]string

var _tracePropagator = b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader))

func ExtractTraceFromContext(ctx context.Context) TraceHeaders {
	headers := TraceHeaders{}
	_tracePropagator.Inject(ctx, propagation.MapCarrier(headers))
	return headers
}

func InjectTraceIntoContext(ctx context.Context, headers TraceHeaders) context.Context {
	if len(headers) == 0 {
		return ctx
	}
	return _tracePropagator.Extract(ctx, propagation.MapCarrier(headers))
}
