package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tilecheck/internal/config"
)

func TestNewTracerProvider_DisabledIsNoop(t *testing.T) {
	tp, shutdown, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, tp)

	_, span := tp.Tracer("tilecheck").Start(context.Background(), "check")
	assert.False(t, span.SpanContext().IsValid(), "noop spans carry no context")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_EnabledRecordsSpans(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:1")

	tp, shutdown, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: true, ServiceName: "tilecheck"}, "test")
	require.NoError(t, err)

	_, span := tp.Tracer("tilecheck").Start(context.Background(), "check")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
