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

var ErrBookNotFound = errors.New("book not found")

type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

func (s *BookService) Create(ctx context.Context, req *dto.BookCreateRequest) (*models.Book, error) {
	if err := s.authorExists(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	book := models.Book{
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		Description:   req.Description,
		Price:         req.Price,
		PublishedDate: req.PublishedDate,
	}
	if err := s.db.WithContext(ctx).Create(&book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &book, nil
}

func (s *BookService) Retrieve(ctx context.Context, bookID uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	return &book, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := s.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *BookService) Update(ctx context.Context, bookID uuid.UUID, req *dto.BookUpdateRequest) (*models.Book, error) {
	book, err := s.Retrieve(ctx, bookID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.AuthorID != nil {
		if err := s.authorExists(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
		updates["author_id"] = *req.AuthorID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.PublishedDate != nil {
		updates["published_date"] = *req.PublishedDate
	}
	if len(updates) == 0 {
		return book, nil
	}

	if err := s.db.WithContext(ctx).Model(book).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, bookID uuid.UUID) error {
	book, err := s.Retrieve(ctx, bookID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(book).Error; err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

func (s *BookService) authorExists(ctx context.Context, authorID uuid.UUID) error {
	var author models.Author
	if err := s.db.WithContext(ctx).Select("id").First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return fmt.Errorf("failed to look up author: %w", err)
	}
	return nil
}
