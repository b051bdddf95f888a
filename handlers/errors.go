package handlers

import (
	"errors"

	"kasif-platform/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// serviceError maps the service error taxonomy onto HTTP statuses. Every
// rejected operation carries its specific reason through to the client.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrWrongCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrForeignClass):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientGP),
		errors.Is(err, services.ErrInsufficientNP),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrDuplicatePending),
		errors.Is(err, services.ErrBadgeAlreadyHeld),
		errors.Is(err, services.ErrTaskAlreadyDone),
		errors.Is(err, services.ErrTaskAlreadyPending),
		errors.Is(err, services.ErrWrongWeekday):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrUnknownClassCode),
		errors.Is(err, services.ErrClassCodeTaken),
		errors.Is(err, services.ErrMissingField):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error", "cause": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
