package models

import "time"

// DateLayout is the calendar date format accepted for TransferRequest.Fecha.
const DateLayout = "2006-01-02"

// Response messages returned by the validate endpoint.
const (
	MessageTransferValidated = "Transfer validated successfully"
	MessageTransferNotFound  = "Transfer not found"
)

// TransferRequest is the payload of POST /api/v1/transfer/validate.
// Amounts are expressed in cents.
type TransferRequest struct {
	Fecha        string `json:"fecha" validate:"required,datetime=2006-01-02"`
	ClaveRastreo string `json:"clave_rastreo" validate:"required"`
	Emisor       string `json:"emisor" validate:"required"`
	Receptor     string `json:"receptor" validate:"required"`
	Cuenta       string `json:"cuenta" validate:"required"`
	Monto        int64  `json:"monto" validate:"gt=0"`
	PagoABanco   bool   `json:"pago_a_banco"`
}

// Date returns Fecha as a time.Time in UTC. It assumes the request passed validation.
func (r *TransferRequest) Date() (time.Time, error) {
	return time.Parse(DateLayout, r.Fecha)
}

// TransferResponse is the outcome of a validation. Message is emitted as null when unset.
type TransferResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
}

// NewTransferResponse builds a response with the given message.
func NewTransferResponse(success bool, message string) *TransferResponse {
	return &TransferResponse{Success: success, Message: &message}
}
