package dto

import (
	"time"

	"github.com/taskhive/task-service/internal/domain"
)

// UserPayload is the public view of a user. Password hash and pending token
// digests never leave the service.
type UserPayload struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserPayload(u *domain.User) UserPayload {
	return UserPayload{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

// MessageResponse covers endpoints that only acknowledge an action, such as
// verify-email and the password reset pair.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MeResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}
