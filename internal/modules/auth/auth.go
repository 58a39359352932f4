package auth

import (
	"context"

	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/google/uuid"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Register(ctx context.Context, req user.RegisterRequest) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	CreateAdmin(ctx context.Context, req user.CreateAdminRequest) (*Session, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*Session, error)
}

// Session is the user profile returned together with a bearer token.
type Session struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            user.Role `json:"role"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	SupermarketName string    `json:"supermarketName"`
	Token           string    `json:"token"`
}

func newSession(u *user.User, token string) *Session {
	return &Session{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Address:         u.Address,
		Phone:           u.Phone,
		SupermarketName: u.SupermarketName,
		Token:           token,
	}
}
