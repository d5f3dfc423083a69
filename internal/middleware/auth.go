package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/models"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
	"github.com/bookworm-labs/bookstore-backend/internal/session"
)

const userLocalsKey = "currentUser"

// BearerToken extracts the token from the Authorization header. A missing or
// non-bearer header is a scheme violation, reported as 403 before any token
// validation happens.
func BearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		return "", false
	}
	return raw, true
}

// RequireUser authenticates the bearer access token and stores the subject
// user in locals for the route handler.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := BearerToken(c)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		user, err := auth.Authenticate(c.UserContext(), raw)
		if err != nil {
			return authErrorResponse(c, err)
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireAdmin is RequireUser plus an admin role check.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := BearerToken(c)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		user, err := auth.AuthenticateAdmin(c.UserContext(), raw)
		if err != nil {
			return authErrorResponse(c, err)
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser / RequireAdmin.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

func authErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized: invalid or expired token",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	case errors.Is(err, session.ErrCacheUnavailable):
		slog.Error("auth check failed, session cache unavailable", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Service temporarily unavailable",
		})
	default:
		slog.Error("auth check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
