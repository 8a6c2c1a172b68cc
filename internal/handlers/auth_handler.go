package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/services"
	"github.com/dcastano/userhub-api/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			return failValidation(c, verrs)
		case errors.Is(err, services.ErrEmailTaken):
			return fail(c, fiber.StatusConflict, "Email is already registered")
		}
		return err
	}

	return success(c, fiber.StatusCreated, "User registered successfully", resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			return failValidation(c, verrs)
		case errors.Is(err, services.ErrInvalidCredentials):
			// Same status and message whether the email is unknown or the
			// password is wrong.
			return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	return success(c, fiber.StatusOK, "Login successful", resp)
}
