package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/validation"
)

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}

func failValidation(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
