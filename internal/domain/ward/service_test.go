package ward

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ehr/ward/internal/platform/telemetry"
)

func newTestService(t *testing.T, rooms int) (*Service, *bytes.Buffer, *tracetest.InMemoryExporter, *telemetry.TelemetryProvider) {
	t.Helper()
	reg := newRegistry(t, rooms)
	var buf bytes.Buffer
	svc := NewService(reg, zerolog.New(&buf))
	exp := tracetest.NewInMemoryExporter()
	tp := telemetry.NewTelemetryProviderWithExporter(telemetry.TelemetryConfig{}, exp)
	svc.SetTelemetry(tp)
	return svc, &buf, exp, tp
}

func TestService_AdmitLogsAndTraces(t *testing.T) {
	svc, buf, exp, tp := newTestService(t, 1)
	ctx := context.Background()

	p, err := svc.Admit(ctx, patient(1, "A", 30, ConditionCritical, "01-01-2024"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Room)

	assert.Contains(t, buf.String(), `"message":"patient admitted"`)
	assert.Contains(t, buf.String(), `"component":"ward"`)
	assert.Contains(t, buf.String(), `"room":1`)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ward.admit", spans[0].Name)
	assert.Equal(t, int64(1), tp.GetCounter("admit", "ok"))
}

func TestService_AdmitRejected(t *testing.T) {
	svc, buf, exp, tp := newTestService(t, 0)

	_, err := svc.Admit(context.Background(), patient(1, "A", 30, ConditionStable, "d"))
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Contains(t, buf.String(), "admission rejected")

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, int64(1), tp.GetCounter("admit", "no_rooms"))
}

func TestService_DischargeAndTreat(t *testing.T) {
	svc, buf, _, tp := newTestService(t, 2)
	ctx := context.Background()

	_, err := svc.Admit(ctx, patient(1, "A", 30, ConditionCritical, "d"))
	require.NoError(t, err)

	treated, err := svc.TreatNextCritical(ctx)
	require.NoError(t, err)
	assert.Equal(t, ConditionStable, treated.Condition)
	assert.Contains(t, buf.String(), "critical patient treated")

	_, err = svc.TreatNextCritical(ctx)
	assert.ErrorIs(t, err, ErrNoCriticalPatients)
	assert.Equal(t, int64(1), tp.GetCounter("treat", "empty"))

	_, err = svc.Discharge(ctx, 2)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.Equal(t, int64(1), tp.GetCounter("discharge", "not_found"))

	p, err := svc.Discharge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
	assert.Contains(t, buf.String(), "patient discharged")

	assert.Empty(t, svc.ListRecords(ctx))
	assert.Equal(t, Census{TotalRooms: 2, FreeRooms: 2}, svc.Census(ctx))
}

func TestService_WithoutTelemetry(t *testing.T) {
	reg := newRegistry(t, 1)
	svc := NewService(reg, zerolog.Nop())

	_, err := svc.Admit(context.Background(), patient(1, "A", 30, ConditionStable, "d"))
	require.NoError(t, err)
	assert.Len(t, svc.ListRecords(context.Background()), 1)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "no_rooms", outcome(ErrNoRoomsAvailable))
	assert.Equal(t, "not_found", outcome(ErrPatientNotFound))
	assert.Equal(t, "empty", outcome(ErrNoCriticalPatients))
	_, err := ParseCondition("x")
	assert.Equal(t, "invalid", outcome(err))
	assert.Equal(t, "error", outcome(assert.AnError))
}
