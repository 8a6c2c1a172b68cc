package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/middleware"
	"github.com/dcastano/userhub-api/internal/services"
	"github.com/dcastano/userhub-api/internal/validation"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _, err := middleware.CurrentUser(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return success(c, fiber.StatusOK, "", user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _, err := middleware.CurrentUser(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			return failValidation(c, verrs)
		case errors.Is(err, services.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return success(c, fiber.StatusOK, "Profile updated successfully", user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	// Non-numeric values fall back to the defaults, non-positive ones are
	// coerced in the service.
	page := c.QueryInt("page", services.DefaultPage)
	limit := c.QueryInt("limit", services.DefaultLimit)

	data, err := h.userService.ListUsers(c.UserContext(), page, limit)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "", data)
}
