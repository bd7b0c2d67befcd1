// Package telemetry wires OpenTelemetry tracing and simple operation counters
// for the ward tools. Spans go to a stdout-format exporter writing to a file
// when one is configured; otherwise the tracer is a no-op.
package telemetry

import (
	"context"
	"io"
	"os"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// TelemetryConfig holds all configuration for the telemetry provider.
type TelemetryConfig struct {
	ServiceName    string `json:"service_name"`
	ServiceVersion string `json:"service_version"`
	Environment    string `json:"environment"`
	TraceFile      string `json:"trace_file"`      // empty = tracing disabled
	TracingEnabled *bool  `json:"tracing_enabled"` // nil = on when TraceFile is set
}

func (c *TelemetryConfig) tracingOn() bool {
	if c.TracingEnabled == nil {
		return c.TraceFile != ""
	}
	return *c.TracingEnabled
}

func (c *TelemetryConfig) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "ward"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// BoolPtr is a helper to create a *bool for TelemetryConfig fields.
func BoolPtr(b bool) *bool {
	return &b
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

type counterStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func newCounterStore() *counterStore {
	return &counterStore{values: make(map[string]int64)}
}

func (s *counterStore) inc(key string) {
	s.mu.Lock()
	s.values[key]++
	s.mu.Unlock()
}

func (s *counterStore) get(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *counterStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CounterKey builds the counter key for an operation and its outcome.
func CounterKey(operation, outcome string) string {
	return operation + "|" + outcome
}

// ---------------------------------------------------------------------------
// TelemetryProvider
// ---------------------------------------------------------------------------

// TelemetryProvider owns the tracer provider and operation counters.
type TelemetryProvider struct {
	cfg      TelemetryConfig
	tp       *sdktrace.TracerProvider
	tracer   trace.Tracer
	out      io.Closer
	counters *counterStore

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewTelemetryProvider builds a provider from cfg. When tracing is on, spans
// are written as JSON to cfg.TraceFile.
func NewTelemetryProvider(cfg TelemetryConfig) (*TelemetryProvider, error) {
	cfg.applyDefaults()
	if !cfg.tracingOn() {
		return &TelemetryProvider{
			cfg:      cfg,
			tracer:   noop.NewTracerProvider().Tracer(cfg.ServiceName),
			counters: newCounterStore(),
		}, nil
	}

	f, err := os.Create(cfg.TraceFile)
	if err != nil {
		return nil, err
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	p := NewTelemetryProviderWithExporter(cfg, exporter)
	p.out = f
	return p, nil
}

// NewTelemetryProviderWithExporter installs the supplied exporter with a
// synchronous span processor.
func NewTelemetryProviderWithExporter(cfg TelemetryConfig, exporter sdktrace.SpanExporter) *TelemetryProvider {
	cfg.applyDefaults()
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	return &TelemetryProvider{
		cfg:      cfg,
		tp:       tp,
		tracer:   tp.Tracer(cfg.ServiceName),
		counters: newCounterStore(),
	}
}

func (p *TelemetryProvider) Tracer() trace.Tracer {
	return p.tracer
}

// Count records one occurrence of operation with the given outcome.
func (p *TelemetryProvider) Count(operation, outcome string) {
	p.counters.inc(CounterKey(operation, outcome))
}

func (p *TelemetryProvider) GetCounter(operation, outcome string) int64 {
	return p.counters.get(CounterKey(operation, outcome))
}

// CounterKeys lists recorded counter keys in sorted order.
func (p *TelemetryProvider) CounterKeys() []string {
	return p.counters.keys()
}

// Shutdown flushes spans and closes the trace file. Safe to call twice.
func (p *TelemetryProvider) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		if p.tp != nil {
			p.shutdownErr = p.tp.Shutdown(ctx)
		}
		if p.out != nil {
			if err := p.out.Close(); err != nil && p.shutdownErr == nil {
				p.shutdownErr = err
			}
		}
	})
	return p.shutdownErr
}
