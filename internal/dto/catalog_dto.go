package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/models"
)

type AuthorCreateRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

type AuthorUpdateRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

// AuthorResponse embeds the author's books, matching the catalog read model.
type AuthorResponse struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Bio   *string        `json:"bio"`
	Books []BookResponse `json:"books"`
}

type BookCreateRequest struct {
	Title         string     `json:"title"`
	AuthorID      uuid.UUID  `json:"author_id"`
	Description   *string    `json:"description"`
	Price         float64    `json:"price"`
	PublishedDate *time.Time `json:"published_date"`
}

type BookUpdateRequest struct {
	Title         *string    `json:"title"`
	AuthorID      *uuid.UUID `json:"author_id"`
	Description   *string    `json:"description"`
	Price         *float64   `json:"price"`
	PublishedDate *time.Time `json:"published_date"`
}

type BookResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	AuthorID      uuid.UUID  `json:"author_id"`
	Description   *string    `json:"description"`
	Price         float64    `json:"price"`
	PublishedDate *time.Time `json:"published_date"`
}

func NewBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		Description:   b.Description,
		Price:         b.Price,
		PublishedDate: b.PublishedDate,
	}
}

func NewAuthorResponse(a *models.Author, books []models.Book) AuthorResponse {
	resp := AuthorResponse{
		ID:    a.ID,
		Name:  a.Name,
		Bio:   a.Bio,
		Books: make([]BookResponse, 0, len(books)),
	}
	for i := range books {
		resp.Books = append(resp.Books, NewBookResponse(&books[i]))
	}
	return resp
}
