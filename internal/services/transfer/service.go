package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "apix/internal/errors"
	"apix/internal/models"
	"apix/internal/services/cep"
	"apix/internal/telemetry"
	"apix/internal/utils/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OutcomeValidated is reported for stored documents; failures and not-found
// results are reported with their apperrors.Kind.
const OutcomeValidated = "validated"

// service implements the transfer Service interface.
type service struct {
	validator Validator
	store     DocumentStore
	metrics   MetricsCollector
	logger    *slog.Logger
}

// NewService creates a new transfer service instance.
func NewService(validator Validator, store DocumentStore, metrics MetricsCollector, logger *slog.Logger) Service {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		validator: validator,
		store:     store,
		metrics:   metrics,
		logger:    logger,
	}
}

// ValidateTransfer confirms the transfer with the validator, downloads its
// confirmation document and stores it under the tracking key.
// A missing transfer is not an error: it yields a response with Success false.
func (s *service) ValidateTransfer(ctx context.Context, req *models.TransferRequest) (*models.TransferResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "transfer.validate", trace.WithAttributes(
		attribute.String("transfer.clave_rastreo", req.ClaveRastreo),
		attribute.Int64("transfer.monto", req.Monto),
	))
	defer span.End()

	log := s.logger.With(slog.String("clave_rastreo", req.ClaveRastreo))

	fecha, err := req.Date()
	if err != nil {
		return nil, s.fail(ctx, log, apperrors.Wrap(apperrors.ErrSchemaInvalid, validation.Errors{{
			Field:   "fecha",
			Tag:     "datetime",
			Message: err.Error(),
		}}))
	}

	start := time.Now()
	receipt, err := s.validator.Validate(ctx, cep.Query{
		Fecha:        fecha,
		ClaveRastreo: req.ClaveRastreo,
		Emisor:       req.Emisor,
		Receptor:     req.Receptor,
		Cuenta:       req.Cuenta,
		Monto:        req.Monto,
		PagoABanco:   req.PagoABanco,
	})
	s.metrics.RecordValidatorDuration(time.Since(start))

	if errors.Is(err, apperrors.ErrTransferNotFound) {
		s.metrics.RecordOutcome(apperrors.KindNotFound.String())
		log.InfoContext(ctx, "transfer not found", slog.String("error", err.Error()))
		return models.NewTransferResponse(false, models.MessageTransferNotFound), nil
	}
	if err != nil {
		return nil, s.fail(ctx, log, apperrors.Wrap(apperrors.ErrValidatorUnavailable, err))
	}

	pdf, err := receipt.Download(ctx)
	if err != nil {
		return nil, s.fail(ctx, log, apperrors.Wrap(apperrors.ErrValidatorUnavailable, fmt.Errorf("download document: %w", err)))
	}

	if err := s.store.Save(ctx, req.ClaveRastreo, pdf); err != nil {
		return nil, s.fail(ctx, log, apperrors.Wrap(apperrors.ErrStorageFailure, err))
	}

	d := receipt.Details()
	s.metrics.RecordDocumentSize(len(pdf))
	s.metrics.RecordOutcome(OutcomeValidated)
	log.InfoContext(ctx, "transfer validated",
		slog.Int("document_bytes", len(pdf)),
		slog.String("clave_spei", d.ClaveSPEI),
		slog.String("fecha_operacion", d.FechaOperacion.Format(models.DateLayout)),
		slog.Int64("monto", d.Monto),
		slog.String("banco_ordenante", d.Ordenante.Banco),
		slog.String("banco_beneficiario", d.Beneficiario.Banco),
	)

	return models.NewTransferResponse(true, models.MessageTransferValidated), nil
}

func (s *service) fail(ctx context.Context, log *slog.Logger, err *apperrors.DomainError) error {
	s.metrics.RecordOutcome(err.Kind.String())
	telemetry.RecordError(ctx, err)
	log.ErrorContext(ctx, "transfer validation failed",
		slog.String("code", err.Code),
		slog.String("error", err.Error()),
	)
	return err
}
