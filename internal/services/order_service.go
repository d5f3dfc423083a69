package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookworm-labs/bookstore-backend/internal/dto"
	"github.com/bookworm-labs/bookstore-backend/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService scopes every operation to the owning user; another user's
// order id behaves exactly like a missing one.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req *dto.OrderCreateRequest) (*models.Order, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).Select("id").First(&book, "id = ?", req.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	order := models.Order{
		UserID:      userID,
		BookID:      req.BookID,
		Quantity:    quantity,
		TotalAmount: req.TotalAmount,
		Status:      models.OrderStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) Retrieve(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Update(ctx context.Context, userID, orderID uuid.UUID, req *dto.OrderUpdateRequest) (*models.Order, error) {
	order, err := s.Retrieve(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.TotalAmount != nil {
		updates["total_amount"] = *req.TotalAmount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return order, nil
	}

	if err := s.db.WithContext(ctx).Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, userID, orderID uuid.UUID) error {
	order, err := s.Retrieve(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(order).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
