package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

type BookHandler struct {
	bookService *services.BookService
}

func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req dto.BookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Book title is required")
	}
	if req.Price <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Price must be greater than zero")
	}

	book, err := h.bookService.Create(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBookResponse(book))
}

func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.bookService.List(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}

	result := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		result = append(result, dto.NewBookResponse(&books[i]))
	}
	return c.JSON(result)
}

func (h *BookHandler) Get(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid book id")
	}

	book, err := h.bookService.Retrieve(c.UserContext(), bookID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewBookResponse(book))
}

func (h *BookHandler) Update(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var req dto.BookUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Book title must not be empty")
	}
	if req.Price != nil && *req.Price <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Price must be greater than zero")
	}

	book, err := h.bookService.Update(c.UserContext(), bookID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewBookResponse(book))
}

func (h *BookHandler) Delete(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid book id")
	}

	if err := h.bookService.Delete(c.UserContext(), bookID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
