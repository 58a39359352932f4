package inventory

import (
	"context"

	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/google/uuid"
)

// StockRepository mutates stock with single atomic statements so concurrent
// purchases and sales of the same product never lose updates.
type StockRepository interface {
	// Receive adds quantity and overwrites cost, the selling price when set,
	// and the supplier when non-empty.
	Receive(ctx context.Context, productID uuid.UUID, c StockChange) error
	// Withdraw subtracts quantity without an availability check.
	Withdraw(ctx context.Context, productID uuid.UUID, quantity int) (Level, error)
}

// Unit bundles the repositories a reconciliation writes through. Callers
// bind all of them to the same transaction.
type Unit struct {
	Products   catalog.ProductRepository
	Categories catalog.CategoryRepository
	Stock      StockRepository
}
