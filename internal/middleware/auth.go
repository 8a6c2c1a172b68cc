package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dcastano/userhub-api/internal/config"
	"github.com/dcastano/userhub-api/internal/dto"
)

// Protected guards a route with bearer-token verification. Missing,
// malformed, invalid and expired tokens all produce the same 401 response,
// and no handler behind the guard re-checks authentication.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false,
				Message: "Invalid or expired token",
			})
		},
	})
}

// CurrentUser extracts the verified identity claims the guard stored in the
// request context.
func CurrentUser(c *fiber.Ctx) (uuid.UUID, string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, "", errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("invalid claims")
	}

	sub, _ := claims["userId"].(string)
	email, _ := claims["email"].(string)

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.New("missing user id claim")
	}
	return id, email, nil
}
