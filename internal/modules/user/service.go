package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*User, error)
	// EnsureAdmin creates the admin account or promotes an existing user with
	// that email. The bool reports whether anything changed.
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
}
