package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bookworm-labs/bookstore-backend/internal/config"
	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/middleware"
	"github.com/bookworm-labs/bookstore-backend/internal/models"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, access, refresh, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return serviceError(c, err)
	}

	h.setRefreshCookie(c, refresh)
	return c.JSON(h.tokenResponse(user, access, refresh))
}

// Refresh accepts the refresh token from the request body or, failing that,
// the cookie. On success both the cache entry and the cookie are rotated;
// the superseded token is permanently unusable.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	// Body is optional; cookie-only clients send none at all.
	_ = c.BodyParser(&req)

	raw := req.RefreshToken
	if raw == "" {
		raw = c.Cookies(refreshCookieName)
	}
	if raw == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	user, access, refresh, err := h.authService.Refresh(c.UserContext(), raw)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid refresh token")
		}
		return serviceError(c, err)
	}

	h.setRefreshCookie(c, refresh)
	return c.JSON(h.tokenResponse(user, access, refresh))
}

// Logout requires a bearer header but succeeds for any token it carries;
// an undecodable token simply means there is nothing to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	raw, ok := middleware.BearerToken(c)
	if !ok {
		return errorJSON(c, fiber.StatusForbidden, "Not authenticated")
	}

	if err := h.authService.Logout(c.UserContext(), raw); err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) tokenResponse(user *models.User, access, refresh string) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         dto.NewUserResponse(user),
	}
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(h.cfg.JWTRefreshExpiry.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
