package billing

import (
	"context"
	"errors"

	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/google/uuid"
)

// ErrDuplicateInvoice is returned by Create when the invoice number is taken,
// which can happen when several processes issue numbers.
var ErrDuplicateInvoice = errors.New("billing: duplicate invoice number")

// Repository defines data access for bills.
type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// List returns every bill, newest first.
	List(ctx context.Context) ([]*Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Tx is the set of repositories bound to one transaction.
type Tx struct {
	Bills Repository
	Stock inventory.StockRepository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Tx) error) error
}
