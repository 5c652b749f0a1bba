package handlers

import (
	"errors"
	"log/slog"

	apperrors "apix/internal/errors"
	"apix/internal/utils/response"
	"apix/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber ErrorHandler. Domain errors map to their kind's
// status; anything else becomes a 500 embedding the error text.
// Domain errors are already logged by the service that raised them.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Detail(c, fe.Code, fe.Message)
	}

	kind := apperrors.KindOf(err)
	if kind == apperrors.KindSchemaInvalid {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			return response.ValidationError(c, fieldErrs)
		}
		return response.UnprocessableBody(c, err.Error())
	}

	if status := apperrors.StatusOf(err); status < fiber.StatusInternalServerError {
		return response.Detail(c, status, err.Error())
	}

	if kind == 0 {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return response.ServerError(c, "An error occurred while validating the transfer: "+err.Error())
}
