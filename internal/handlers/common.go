package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
	"github.com/bookworm-labs/bookstore-backend/internal/session"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// serviceError maps service sentinels to HTTP responses. Infrastructure
// failures become 5xx, never 401/403.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrAuthorNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Author not found")
	case errors.Is(err, services.ErrBookNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Book not found")
	case errors.Is(err, services.ErrOrderNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, "User with this email already exists")
	case errors.Is(err, session.ErrCacheUnavailable):
		slog.Error("session cache unavailable", "error", err)
		return errorJSON(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		slog.Error("unhandled service error", "error", err, "path", c.Path())
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
