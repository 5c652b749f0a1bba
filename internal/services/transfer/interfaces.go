package transfer

import (
	"context"
	"errors"
	"time"

	apperrors "apix/internal/errors"
	"apix/internal/models"
	"apix/internal/services/cep"
)

// Receipt is a confirmed transfer whose confirmation document can be fetched.
type Receipt interface {
	Details() cep.Details
	Download(ctx context.Context) ([]byte, error)
}

// Validator confirms that a transfer exists. It returns an error matching
// apperrors.ErrTransferNotFound when it does not.
type Validator interface {
	Validate(ctx context.Context, q cep.Query) (Receipt, error)
}

// DocumentStore persists a confirmation document under a tracking key,
// replacing any previous document with the same key.
type DocumentStore interface {
	Save(ctx context.Context, key string, content []byte) error
}

// MetricsCollector receives validation metrics.
type MetricsCollector interface {
	RecordOutcome(outcome string)
	RecordValidatorDuration(d time.Duration)
	RecordDocumentSize(bytes int)
}

// Service validates transfers and stores their confirmation documents.
type Service interface {
	ValidateTransfer(ctx context.Context, req *models.TransferRequest) (*models.TransferResponse, error)
}

type cepValidator struct {
	client *cep.Client
}

// NewCEPValidator adapts a Banxico CEP client to the Validator interface.
func NewCEPValidator(client *cep.Client) Validator {
	return cepValidator{client: client}
}

func (v cepValidator) Validate(ctx context.Context, q cep.Query) (Receipt, error) {
	tr, err := v.client.Validate(ctx, q)
	if errors.Is(err, cep.ErrTransferNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrTransferNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return tr, nil
}
