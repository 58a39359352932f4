package auth

import (
	"context"

	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/google/uuid"
)

type service struct {
	users  user.Service
	issuer *Issuer
}

// NewService creates a new auth service.
func NewService(users user.Service, issuer *Issuer) Service {
	return &service{users: users, issuer: issuer}
}

func (s *service) Register(ctx context.Context, req user.RegisterRequest) (*Session, error) {
	u, err := s.users.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *service) CreateAdmin(ctx context.Context, req user.CreateAdminRequest) (*Session, error) {
	u, err := s.users.CreateAdmin(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*Session, error) {
	u, err := s.users.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *service) session(u *user.User) (*Session, error) {
	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return newSession(u, token), nil
}
