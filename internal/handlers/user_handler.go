package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/middleware"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

const minPasswordLength = 8

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !strings.Contains(req.Email, "@") {
		return errorJSON(c, fiber.StatusBadRequest, "A valid email is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Full name is required")
	}
	if len(req.Password) < minPasswordLength {
		return errorJSON(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.NewUserResponse(middleware.CurrentUser(c)))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Full name must not be empty")
	}
	if req.Password != nil && len(*req.Password) < minPasswordLength {
		return errorJSON(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	user, err := h.userService.Update(c.UserContext(), middleware.CurrentUser(c).ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeleteMe deactivates the account; the user can no longer log in or
// authenticate, even with a previously valid token.
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	if err := h.userService.Deactivate(c.UserContext(), middleware.CurrentUser(c).ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
