package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTelemetryConfig_Defaults(t *testing.T) {
	tp, err := NewTelemetryProvider(TelemetryConfig{})
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	assert.Equal(t, "ward", tp.cfg.ServiceName)
	assert.Equal(t, "0.0.0", tp.cfg.ServiceVersion)
	assert.Equal(t, "development", tp.cfg.Environment)
	assert.False(t, tp.cfg.tracingOn())
}

func TestTelemetryConfig_TracingFollowsTraceFile(t *testing.T) {
	cfg := TelemetryConfig{TraceFile: "spans.json"}
	assert.True(t, cfg.tracingOn())

	cfg.TracingEnabled = BoolPtr(false)
	assert.False(t, cfg.tracingOn())
}

func TestNoopTracer_RecordsNothing(t *testing.T) {
	tp, err := NewTelemetryProvider(TelemetryConfig{})
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "ward.admit")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestExporter_ReceivesSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := NewTelemetryProviderWithExporter(TelemetryConfig{ServiceName: "ward-test"}, exp)

	_, span := tp.Tracer().Start(context.Background(), "ward.discharge")
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ward.discharge", spans[0].Name)
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestTraceFile_WrittenOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")
	tp, err := NewTelemetryProvider(TelemetryConfig{TraceFile: path})
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "ward.treat")
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))
	require.NoError(t, tp.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ward.treat")
}

func TestCounters(t *testing.T) {
	tp, err := NewTelemetryProvider(TelemetryConfig{})
	require.NoError(t, err)

	tp.Count("admit", "ok")
	tp.Count("admit", "ok")
	tp.Count("admit", "no_rooms")

	assert.Equal(t, int64(2), tp.GetCounter("admit", "ok"))
	assert.Equal(t, int64(1), tp.GetCounter("admit", "no_rooms"))
	assert.Equal(t, int64(0), tp.GetCounter("discharge", "ok"))
	assert.Equal(t, []string{"admit|no_rooms", "admit|ok"}, tp.CounterKeys())
}
