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

var ErrAuthorNotFound = errors.New("author not found")

type AuthorService struct {
	db *gorm.DB
}

func NewAuthorService(db *gorm.DB) *AuthorService {
	return &AuthorService{db: db}
}

func (s *AuthorService) Create(ctx context.Context, req *dto.AuthorCreateRequest) (*dto.AuthorResponse, error) {
	author := models.Author{
		Name: req.Name,
		Bio:  req.Bio,
	}
	if err := s.db.WithContext(ctx).Create(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	resp := dto.NewAuthorResponse(&author, nil)
	return &resp, nil
}

func (s *AuthorService) Retrieve(ctx context.Context, authorID uuid.UUID) (*dto.AuthorResponse, error) {
	author, err := s.get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	books, err := s.books(ctx, authorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAuthorResponse(author, books)
	return &resp, nil
}

func (s *AuthorService) List(ctx context.Context) ([]dto.AuthorResponse, error) {
	var authors []models.Author
	if err := s.db.WithContext(ctx).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	result := make([]dto.AuthorResponse, 0, len(authors))
	for i := range authors {
		books, err := s.books(ctx, authors[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.NewAuthorResponse(&authors[i], books))
	}
	return result, nil
}

func (s *AuthorService) Update(ctx context.Context, authorID uuid.UUID, req *dto.AuthorUpdateRequest) (*dto.AuthorResponse, error) {
	author, err := s.get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(author).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update author: %w", err)
		}
	}

	books, err := s.books(ctx, authorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAuthorResponse(author, books)
	return &resp, nil
}

// Delete removes the author together with all of their books.
func (s *AuthorService) Delete(ctx context.Context, authorID uuid.UUID) error {
	author, err := s.get(ctx, authorID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", authorID).Delete(&models.Book{}).Error; err != nil {
			return fmt.Errorf("failed to delete author's books: %w", err)
		}
		if err := tx.Delete(author).Error; err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}
		return nil
	})
}

func (s *AuthorService) get(ctx context.Context, authorID uuid.UUID) (*models.Author, error) {
	var author models.Author
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	return &author, nil
}

func (s *AuthorService) books(ctx context.Context, authorID uuid.UUID) ([]models.Book, error) {
	var books []models.Book
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list author's books: %w", err)
	}
	return books, nil
}
