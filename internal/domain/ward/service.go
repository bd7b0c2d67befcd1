package ward

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ehr/ward/internal/platform/telemetry"
)

type Service struct {
	reg    *Registry
	logger zerolog.Logger
	tracer trace.Tracer
	tp     *telemetry.TelemetryProvider
}

func NewService(reg *Registry, logger zerolog.Logger) *Service {
	return &Service{
		reg:    reg,
		logger: logger.With().Str("component", "ward").Logger(),
		tracer: noop.NewTracerProvider().Tracer("ward"),
	}
}

// SetTelemetry attaches a telemetry provider for spans and counters.
func (s *Service) SetTelemetry(tp *telemetry.TelemetryProvider) {
	s.tp = tp
	s.tracer = tp.Tracer()
}

func (s *Service) Admit(ctx context.Context, p Patient) (Patient, error) {
	_, span := s.tracer.Start(ctx, "ward.admit", trace.WithAttributes(
		attribute.Int("patient.id", p.ID),
		attribute.String("patient.condition", string(p.Condition)),
	))
	defer span.End()

	admitted, err := s.reg.Admit(p)
	if err != nil {
		s.fail(span, "admit", err)
		s.logger.Warn().Err(err).
			Int("patient_id", p.ID).
			Str("condition", string(p.Condition)).
			Msg("admission rejected")
		return Patient{}, err
	}

	span.SetAttributes(attribute.Int("ward.room", admitted.Room))
	s.count("admit", "ok")
	s.logger.Info().
		Str("admission_id", admitted.AdmissionID.String()).
		Int("patient_id", admitted.ID).
		Int("room", admitted.Room).
		Str("condition", string(admitted.Condition)).
		Str("admission_date", admitted.AdmissionDate).
		Msg("patient admitted")
	return admitted, nil
}

func (s *Service) Discharge(ctx context.Context, id int) (Patient, error) {
	_, span := s.tracer.Start(ctx, "ward.discharge", trace.WithAttributes(
		attribute.Int("patient.id", id),
	))
	defer span.End()

	p, err := s.reg.Discharge(id)
	if err != nil {
		s.fail(span, "discharge", err)
		s.logger.Warn().Err(err).Int("patient_id", id).Msg("discharge rejected")
		return Patient{}, err
	}

	span.SetAttributes(attribute.Int("ward.room", p.Room))
	s.count("discharge", "ok")
	s.logger.Info().
		Str("admission_id", p.AdmissionID.String()).
		Int("patient_id", p.ID).
		Int("room", p.Room).
		Msg("patient discharged")
	return p, nil
}

func (s *Service) ListRecords(ctx context.Context) []Patient {
	_, span := s.tracer.Start(ctx, "ward.list")
	defer span.End()

	records := s.reg.Records()
	span.SetAttributes(attribute.Int("ward.records", len(records)))
	s.count("list", "ok")
	return records
}

func (s *Service) TreatNextCritical(ctx context.Context) (Patient, error) {
	_, span := s.tracer.Start(ctx, "ward.treat")
	defer span.End()

	p, err := s.reg.TreatNextCritical()
	if err != nil {
		s.fail(span, "treat", err)
		s.logger.Debug().Msg("no critical patients waiting")
		return Patient{}, err
	}

	span.SetAttributes(attribute.Int("patient.id", p.ID), attribute.Int("ward.room", p.Room))
	s.count("treat", "ok")
	s.logger.Info().
		Str("admission_id", p.AdmissionID.String()).
		Int("patient_id", p.ID).
		Msg("critical patient treated")
	return p, nil
}

func (s *Service) Census(ctx context.Context) Census {
	_, span := s.tracer.Start(ctx, "ward.census")
	defer span.End()
	return s.reg.Census()
}

func (s *Service) fail(span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.count(op, outcome(err))
}

func (s *Service) count(op, result string) {
	if s.tp != nil {
		s.tp.Count(op, result)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNoRoomsAvailable):
		return "no_rooms"
	case errors.Is(err, ErrPatientNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCriticalPatients):
		return "empty"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
