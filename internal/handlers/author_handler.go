package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

type AuthorHandler struct {
	authorService *services.AuthorService
}

func NewAuthorHandler(authorService *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var req dto.AuthorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Author name is required")
	}

	author, err := h.authorService.Create(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

func (h *AuthorHandler) List(c *fiber.Ctx) error {
	authors, err := h.authorService.List(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(authors)
}

func (h *AuthorHandler) Get(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid author id")
	}

	author, err := h.authorService.Retrieve(c.UserContext(), authorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(author)
}

func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid author id")
	}

	var req dto.AuthorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Author name must not be empty")
	}

	author, err := h.authorService.Update(c.UserContext(), authorID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(author)
}

func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid author id")
	}

	if err := h.authorService.Delete(c.UserContext(), authorID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
