package response

import (
	"apix/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// FieldDetail is one entry of a 422 response body.
type FieldDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Detail sends {"detail": message} with the given status.
func Detail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"detail": message,
	})
}

func ServerError(c *fiber.Ctx, message string) error {
	return Detail(c, fiber.StatusInternalServerError, message)
}

// ValidationError sends a 422 listing every rejected field.
func ValidationError(c *fiber.Ctx, errs validation.Errors) error {
	details := make([]FieldDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, FieldDetail{
			Loc:  []string{"body", e.Field},
			Msg:  e.Message,
			Type: e.Tag,
		})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": details,
	})
}

// UnprocessableBody sends a 422 for a body that could not be decoded at all.
func UnprocessableBody(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": []FieldDetail{{
			Loc:  []string{"body"},
			Msg:  message,
			Type: "json_invalid",
		}},
	})
}
