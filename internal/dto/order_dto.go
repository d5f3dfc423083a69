package dto

import (
	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/models"
)

// OrderCreateRequest leaves Quantity nullable so an omitted quantity can
// default to 1 while an explicit zero is still rejected.
type OrderCreateRequest struct {
	BookID      uuid.UUID `json:"book_id"`
	Quantity    *int      `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
}

type OrderUpdateRequest struct {
	Quantity    *int     `json:"quantity"`
	TotalAmount *float64 `json:"total_amount"`
	Status      *string  `json:"status"`
}

type OrderResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BookID      uuid.UUID `json:"book_id"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		BookID:      o.BookID,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
	}
}
