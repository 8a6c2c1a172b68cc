package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/userhub-api/internal/dto"
)

type HealthHandler struct {
	ping func() error
}

// NewHealthHandler takes the database ping as a function so the handler has
// no direct dependency on the connection.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return success(c, fiber.StatusOK, "", dto.HealthData{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
