package user

import (
	"time"

	"github.com/google/uuid"
)

// Role controls access to admin-only routes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

const (
	defaultAdminName       = "Admin"
	defaultSupermarketName = "SUPER_MARKET"
)

// User is an operator of the store back-office.
type User struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	SupermarketName string    `json:"supermarketName"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	SupermarketName string `json:"supermarketName"`
}

// CreateAdminRequest is the payload for creating an administrator.
type CreateAdminRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	SupermarketName string `json:"supermarketName"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	SupermarketName *string `json:"supermarketName"`
}
