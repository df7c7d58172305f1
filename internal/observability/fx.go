// Package observability wires tracing and HTTP metrics for the application.
package observability

import (
	"github.com/btcforcorps/orangepages/internal/observability/metrics"
	"github.com/btcforcorps/orangepages/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideTracingConfig,
		tracing.NewProvider,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}
