package supplier

import (
	"context"
	"strings"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, search string) ([]*Supplier, error)
	Get(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Create(ctx context.Context, req Request) (*Supplier, error)
	Update(ctx context.Context, id uuid.UUID, req Request) (*Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*Supplier, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req Request) (*Supplier, error) {
	var missing []string
	if blank(req.Name) {
		missing = append(missing, "name")
	}
	if blank(req.Phone) {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	sup := &Supplier{ID: uuid.New()}
	apply(sup, req)
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req Request) (*Supplier, error) {
	if req.Name != nil && blank(req.Name) {
		return nil, apperr.Validation("name cannot be empty")
	}
	if req.Phone != nil && blank(req.Phone) {
		return nil, apperr.Validation("phone cannot be empty")
	}

	sup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(sup, req)
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func blank(v *string) bool { return v == nil || strings.TrimSpace(*v) == "" }

func apply(sup *Supplier, req Request) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&sup.Name, req.Name)
	set(&sup.ContactPerson, req.ContactPerson)
	set(&sup.Phone, req.Phone)
	set(&sup.Email, req.Email)
	set(&sup.Address, req.Address)
	set(&sup.GSTIN, req.GSTIN)
}
