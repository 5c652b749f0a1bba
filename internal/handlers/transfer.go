package handlers

import (
	"errors"

	"apix/internal/models"
	"apix/internal/services/transfer"
	"apix/internal/utils/response"
	"apix/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the transfer validation endpoint.
type TransferHandler struct {
	service   transfer.Service
	validator *validation.Validator
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service, v *validation.Validator) *TransferHandler {
	if v == nil {
		v = validation.New()
	}
	return &TransferHandler{service: s, validator: v}
}

// ValidateTransfer handles POST /api/v1/transfer/validate.
// Schema failures are answered with 422 before the service runs; service
// errors go to the app ErrorHandler.
func (h *TransferHandler) ValidateTransfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.UnprocessableBody(c, err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			return response.ValidationError(c, fieldErrs)
		}
		return err
	}

	resp, err := h.service.ValidateTransfer(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return response.Success(c, resp)
}
