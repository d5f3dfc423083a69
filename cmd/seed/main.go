// Seeds the catalog with a starter set of authors and books, plus an admin
// and a regular account for local use. Safe to re-run: it exits early when
// books already exist.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bookworm-labs/bookstore-backend/internal/config"
	"github.com/bookworm-labs/bookstore-backend/internal/database"
	"github.com/bookworm-labs/bookstore-backend/internal/logging"
	"github.com/bookworm-labs/bookstore-backend/internal/models"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func seed(db *gorm.DB) error {
	var existing models.Book
	if err := db.First(&existing).Error; err == nil {
		slog.Info("seed skipped: books already exist")
		return nil
	}

	if err := seedUsers(db); err != nil {
		return err
	}

	authors := []models.Author{
		{Name: "Octavia E. Butler", Bio: strPtr("Award-winning science fiction author.")},
		{Name: "Ursula K. Le Guin", Bio: strPtr("Pioneer of speculative fiction and social commentary.")},
		{Name: "Haruki Murakami", Bio: strPtr("Japanese novelist known for surreal, lyrical stories.")},
	}
	if err := db.Create(&authors).Error; err != nil {
		return err
	}

	books := []models.Book{
		{
			Title:         "Kindred",
			AuthorID:      authors[0].ID,
			Description:   strPtr("A modern classic blending historical fiction and sci-fi."),
			Price:         14.99,
			PublishedDate: datePtr(1979, 6, 1),
		},
		{
			Title:         "Parable of the Sower",
			AuthorID:      authors[0].ID,
			Description:   strPtr("A dystopian novel about resilience and community."),
			Price:         16.50,
			PublishedDate: datePtr(1993, 10, 1),
		},
		{
			Title:         "The Dispossessed",
			AuthorID:      authors[1].ID,
			Description:   strPtr("An ambivalent utopia exploring politics and freedom."),
			Price:         15.25,
			PublishedDate: datePtr(1974, 5, 1),
		},
		{
			Title:         "A Wizard of Earthsea",
			AuthorID:      authors[1].ID,
			Description:   strPtr("A coming-of-age tale set in an archipelago world."),
			Price:         12.00,
			PublishedDate: datePtr(1968, 11, 1),
		},
		{
			Title:         "Kafka on the Shore",
			AuthorID:      authors[2].ID,
			Description:   strPtr("Two intertwined odysseys of self-discovery."),
			Price:         17.75,
			PublishedDate: datePtr(2002, 9, 12),
		},
	}
	if err := db.Create(&books).Error; err != nil {
		return err
	}

	slog.Info("seed completed", "authors", len(authors), "books", len(books))
	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		email    string
		fullName string
		password string
		role     string
	}{
		{"admin@bookstore.local", "Admin", "changeme-admin", models.RoleAdmin},
		{"reader@bookstore.local", "Reader", "changeme-reader", models.RoleUser},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			ID:           uuid.New(),
			Email:        u.email,
			FullName:     u.fullName,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		slog.Info("seeded user", "email", u.email, "role", u.role)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
