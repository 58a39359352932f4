package inventory

import (
	"bytes"
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultShelfLife = 365 * 24 * time.Hour

var defaultMarkup = decimal.RequireFromString("1.2")

// Reconciler turns a purchase receipt into catalog and stock changes.
type Reconciler struct{}

func NewReconciler() *Reconciler { return &Reconciler{} }

// Apply resolves every line in order, then receives stock in LockOrder. Any
// error leaves the caller to roll back the enclosing transaction; nothing here
// compensates.
func (rc *Reconciler) Apply(ctx context.Context, u Unit, r Receipt) (*Result, error) {
	if len(r.Lines) == 0 {
		return nil, apperr.Validation("at least one item is required")
	}

	res := &Result{Lines: make([]AppliedLine, 0, len(r.Lines))}
	subtotal := decimal.Zero
	var (
		received []uuid.UUID
		changes  []StockChange
	)

	for i, line := range r.Lines {
		if err := validateLine(i+1, line); err != nil {
			return nil, err
		}

		product, sellingPrice, err := rc.resolveProduct(ctx, u, r, line, res)
		if err != nil {
			return nil, err
		}

		total := decimal.NewFromInt(int64(line.Quantity)).Mul(decimal.NewFromFloat(line.CostPrice)).Round(2)
		subtotal = subtotal.Add(total)

		if r.ApplyStock {
			received = append(received, product.ID)
			changes = append(changes, StockChange{
				Quantity:     line.Quantity,
				CostPrice:    line.CostPrice,
				SellingPrice: line.SellingPrice,
				Supplier:     r.Supplier,
			})
		}

		res.Lines = append(res.Lines, AppliedLine{
			ProductID:    product.ID,
			Name:         product.Name,
			Quantity:     line.Quantity,
			CostPrice:    line.CostPrice,
			SellingPrice: sellingPrice,
			Total:        total.InexactFloat64(),
		})
	}

	for _, i := range LockOrder(received) {
		if err := u.Stock.Receive(ctx, received[i], changes[i]); err != nil {
			return nil, err
		}
	}

	discount := decimal.Zero
	if r.Discount > 0 && !math.IsInf(r.Discount, 0) {
		discount = decimal.NewFromFloat(r.Discount)
	}

	res.Subtotal = subtotal.InexactFloat64()
	res.Discount = discount.InexactFloat64()
	res.Total = subtotal.Sub(discount).InexactFloat64()
	return res, nil
}

// resolveProduct returns the product a line refers to, creating it for new
// lines, and the selling price to record on the line.
func (rc *Reconciler) resolveProduct(ctx context.Context, u Unit, r Receipt, line Line, res *Result) (*catalog.Product, *float64, error) {
	if !line.IsNew {
		p, err := u.Products.GetByID(ctx, *line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		return p, line.SellingPrice, nil
	}

	categoryName := strings.TrimSpace(line.Category)
	if categoryName == "" {
		categoryName = catalog.DefaultCategory
	}
	category, created, err := u.Categories.FindOrCreate(ctx, categoryName)
	if err != nil {
		return nil, nil, err
	}
	if created {
		res.CreatedCategories = append(res.CreatedCategories, category.Name)
	}

	selling := decimal.NewFromFloat(line.CostPrice).Mul(defaultMarkup).Round(2).InexactFloat64()
	if line.SellingPrice != nil {
		selling = *line.SellingPrice
	}

	expiry := r.ReceivedAt.Add(defaultShelfLife)
	if line.ExpiryDate != nil {
		expiry = *line.ExpiryDate
	}

	unit := strings.TrimSpace(line.Unit)
	if unit == "" {
		unit = catalog.DefaultUnit
	}

	p := &catalog.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(line.Name),
		Brand:         strings.TrimSpace(line.Brand),
		Category:      category.Name,
		Barcode:       strings.TrimSpace(line.Barcode),
		CostPrice:     line.CostPrice,
		SellingPrice:  selling,
		GSTType:       catalog.GSTInclusive,
		StockQuantity: 0,
		Unit:          unit,
		ExpiryDate:    expiry,
		MinStockLevel: catalog.DefaultMinStockLevel,
		Supplier:      r.Supplier,
	}
	if err := u.Products.Create(ctx, p); err != nil {
		return nil, nil, err
	}
	res.CreatedProducts = append(res.CreatedProducts, p.ID)
	return p, &selling, nil
}

// LockOrder returns the indexes of ids sorted by id, keeping the given order
// among equal ids. Stock rows are touched in this order so that concurrent
// transactions over the same products cannot deadlock.
func LockOrder(ids []uuid.UUID) []int {
	idx := make([]int, len(ids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return bytes.Compare(ids[idx[a]][:], ids[idx[b]][:]) < 0
	})
	return idx
}

func validateLine(n int, line Line) error {
	switch {
	case line.Quantity <= 0:
		return apperr.Validation("item %d: quantity must be a whole number greater than 0", n)
	case line.CostPrice < 0 || math.IsNaN(line.CostPrice) || math.IsInf(line.CostPrice, 0):
		return apperr.Validation("item %d: costPrice must be a number of at least 0", n)
	case line.SellingPrice != nil && *line.SellingPrice < 0:
		return apperr.Validation("item %d: sellingPrice must not be negative", n)
	case line.IsNew && strings.TrimSpace(line.Name) == "":
		return apperr.Validation("item %d: name is required for a new product", n)
	case !line.IsNew && (line.ProductID == nil || *line.ProductID == uuid.Nil):
		return apperr.Validation("item %d: product is required", n)
	}
	return nil
}
