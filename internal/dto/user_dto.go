package dto

import (
	"github.com/google/uuid"

	"github.com/bookworm-labs/bookstore-backend/internal/models"
)

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// UserUpdateRequest is a patch object: nil means "leave unchanged".
type UserUpdateRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
