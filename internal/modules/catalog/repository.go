package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines persistence for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]*Product, error)
	// ListExpiring returns products whose expiry falls in [from, to], soonest first.
	ListExpiring(ctx context.Context, from, to time.Time) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	// Create fails with a validation error if the normalized name exists.
	Create(ctx context.Context, c *Category) error
	// FindOrCreate returns the category whose normalized name matches,
	// creating it if absent. The bool reports whether it was created.
	FindOrCreate(ctx context.Context, name string) (*Category, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store hands out repositories and can scope them to one transaction.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
