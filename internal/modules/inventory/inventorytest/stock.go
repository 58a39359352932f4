// Package inventorytest provides an in-memory StockRepository over a
// catalogtest.Store.
package inventorytest

import (
	"context"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog/catalogtest"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/google/uuid"
)

// Stock applies stock changes to products held in a catalogtest.Store.
type Stock struct {
	Catalog *catalogtest.Store

	// FailReceiveOn makes Receive fail for this product.
	FailReceiveOn uuid.UUID

	// Touched lists the products passed to Receive and Withdraw, in call
	// order.
	Touched []uuid.UUID
}

func NewStock(store *catalogtest.Store) *Stock { return &Stock{Catalog: store} }

// Unit wires the catalog store and this stock repository together.
func (s *Stock) Unit() inventory.Unit {
	return inventory.Unit{
		Products:   s.Catalog.Products(),
		Categories: s.Catalog.Categories(),
		Stock:      s,
	}
}

func (s *Stock) Receive(_ context.Context, productID uuid.UUID, c inventory.StockChange) error {
	s.Touched = append(s.Touched, productID)
	if productID == s.FailReceiveOn {
		return apperr.Internal(nil, "receive stock: injected failure")
	}
	p, ok := s.Catalog.Product(productID)
	if !ok {
		return apperr.NotFound("Product not found")
	}
	p.StockQuantity += c.Quantity
	p.CostPrice = c.CostPrice
	if c.SellingPrice != nil {
		p.SellingPrice = *c.SellingPrice
	}
	if c.Supplier != "" {
		p.Supplier = c.Supplier
	}
	s.Catalog.Put(p)
	return nil
}

func (s *Stock) Withdraw(_ context.Context, productID uuid.UUID, quantity int) (inventory.Level, error) {
	s.Touched = append(s.Touched, productID)
	p, ok := s.Catalog.Product(productID)
	if !ok {
		return inventory.Level{}, apperr.NotFound("Product not found")
	}
	p.StockQuantity -= quantity
	s.Catalog.Put(p)
	return inventory.Level{Name: p.Name, StockQuantity: p.StockQuantity}, nil
}
