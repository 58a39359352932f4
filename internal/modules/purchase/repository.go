package purchase

import (
	"context"

	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/georgemunganga/supermart-backend/internal/modules/supplier"
	"github.com/google/uuid"
)

// Repository defines data access for purchases.
type Repository interface {
	// Create inserts the purchase and its items.
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// List matches search against the invoice number and supplier name.
	List(ctx context.Context, search string) ([]*Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierLookup is the part of the supplier store a purchase needs.
type SupplierLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error)
}

// Tx is the set of repositories bound to one transaction.
type Tx struct {
	Purchases Repository
	Suppliers SupplierLookup
	Inventory inventory.Unit
}

// UnitOfWork runs fn inside a transaction, rolling back when fn fails.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Tx) error) error
}
