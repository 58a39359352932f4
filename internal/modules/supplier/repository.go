package supplier

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for supplier data storage.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	// List matches search against name, contact person and phone.
	List(ctx context.Context, search string) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
