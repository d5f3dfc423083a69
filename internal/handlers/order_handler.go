package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/middleware"
	"github.com/bookworm-labs/bookstore-backend/internal/models"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Quantity must be greater than zero")
	}
	if req.TotalAmount <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Total amount must be greater than zero")
	}

	order, err := h.orderService.Create(c.UserContext(), middleware.CurrentUser(c).ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(order))
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.orderService.ListByUser(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err)
	}

	result := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(result)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := h.orderService.Retrieve(c.UserContext(), middleware.CurrentUser(c).ID, orderID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req dto.OrderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Quantity must be greater than zero")
	}
	if req.TotalAmount != nil && *req.TotalAmount <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Total amount must be greater than zero")
	}
	if req.Status != nil && !validOrderStatus(*req.Status) {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order status")
	}

	order, err := h.orderService.Update(c.UserContext(), middleware.CurrentUser(c).ID, orderID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order id")
	}

	if err := h.orderService.Delete(c.UserContext(), middleware.CurrentUser(c).ID, orderID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validOrderStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}
