package billing

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxNumberAttempts = 3

// Service defines billing business logic.
type Service interface {
	// CreateBill stores the bill and takes each product line out of stock in
	// one transaction. Stock may go negative.
	CreateBill(ctx context.Context, actor *user.User, req CreateRequest) (*Bill, error)
	ListBills(ctx context.Context) ([]*Bill, error)
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	// DeleteBill removes the bill without restoring stock.
	DeleteBill(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	uow      UnitOfWork
	numberer *Numberer
}

func NewService(repo Repository, uow UnitOfWork, numberer *Numberer) Service {
	return &service{repo: repo, uow: uow, numberer: numberer}
}

func (s *service) CreateBill(ctx context.Context, actor *user.User, req CreateRequest) (*Bill, error) {
	b, err := buildBill(req)
	if err != nil {
		return nil, err
	}
	if actor != nil {
		b.User = &UserRef{ID: actor.ID, Name: actor.Name}
	}
	checkTotals(b)

	// Withdraw fills blank names; a retry starts from the requested ones.
	requested := make([]string, len(b.Items))
	for i, item := range b.Items {
		requested[i] = item.Name
	}

	for attempt := 1; ; attempt++ {
		b.ID = uuid.New()
		b.InvoiceNumber = s.numberer.Next()
		for i := range b.Items {
			b.Items[i].Name = requested[i]
		}

		var negative []string
		err = s.uow.WithinTx(ctx, func(tx Tx) error {
			negative = negative[:0]
			for _, i := range stockOrder(b.Items) {
				item := &b.Items[i]
				level, err := tx.Stock.Withdraw(ctx, *item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if item.Name == "" {
					item.Name = level.Name
				}
				if level.StockQuantity < 0 {
					negative = append(negative, level.Name)
				}
			}
			return tx.Bills.Create(ctx, b)
		})
		if errors.Is(err, ErrDuplicateInvoice) && attempt < maxNumberAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, name := range negative {
			log.Printf("billing: %s stock is below zero after invoice %s", name, b.InvoiceNumber)
		}
		return b, nil
	}
}

func (s *service) ListBills(ctx context.Context) ([]*Bill, error) {
	return s.repo.List(ctx)
}

func (s *service) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// stockOrder returns the indexes of product lines in the order their stock
// rows are locked.
func stockOrder(items []Item) []int {
	var lines []int
	var ids []uuid.UUID
	for i, item := range items {
		if item.ProductID != nil {
			lines = append(lines, i)
			ids = append(ids, *item.ProductID)
		}
	}
	order := inventory.LockOrder(ids)
	for n, i := range order {
		order[n] = lines[i]
	}
	return order
}

func buildBill(req CreateRequest) (*Bill, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("at least one item is required")
	}
	var missing []string
	if req.TotalAmount == nil {
		missing = append(missing, "totalAmount")
	}
	if req.NetAmount == nil {
		missing = append(missing, "netAmount")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	mode, ok := ParsePaymentMode(req.PaymentMode)
	if !ok {
		return nil, apperr.Validation("paymentMode must be Cash, UPI, Card or Other")
	}

	b := &Bill{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		PaymentMode:   mode,
		Items:         make([]Item, 0, len(req.Items)),
	}
	for _, f := range []struct {
		name string
		dst  *float64
		src  *httpx.Number
	}{
		{"totalAmount", &b.TotalAmount, req.TotalAmount},
		{"gstAmount", &b.GSTAmount, req.GSTAmount},
		{"discountAmount", &b.DiscountAmount, req.DiscountAmount},
		{"netAmount", &b.NetAmount, req.NetAmount},
	} {
		if f.src == nil {
			continue
		}
		if f.src.Float() < 0 {
			return nil, apperr.Validation("%s must not be negative", f.name)
		}
		*f.dst = f.src.Float()
	}

	for i, r := range req.Items {
		item, err := buildItem(i+1, r)
		if err != nil {
			return nil, err
		}
		b.Items = append(b.Items, item)
	}
	return b, nil
}

func buildItem(n int, r ItemRequest) (Item, error) {
	item := Item{Name: strings.TrimSpace(r.Name)}

	if r.ProductID != nil && strings.TrimSpace(*r.ProductID) != "" {
		id, err := httpx.ParseUUID(*r.ProductID, "Product")
		if err != nil {
			return item, err
		}
		item.ProductID = &id
	} else if item.Name == "" {
		return item, apperr.Validation("item %d: name is required without a productId", n)
	}

	if r.Quantity == nil {
		return item, apperr.Validation("item %d: quantity is required", n)
	}
	qty, ok := r.Quantity.Int()
	if !ok || qty <= 0 {
		return item, apperr.Validation("item %d: quantity must be a whole number greater than 0", n)
	}
	item.Quantity = qty

	switch {
	case r.Price == nil:
		return item, apperr.Validation("item %d: price is required", n)
	case r.Total == nil:
		return item, apperr.Validation("item %d: total is required", n)
	case r.Price.Float() < 0 || r.Total.Float() < 0 || (r.GST != nil && r.GST.Float() < 0):
		return item, apperr.Validation("item %d: amounts must not be negative", n)
	}
	item.Price = r.Price.Float()
	item.Total = r.Total.Float()
	if r.GST != nil {
		item.GST = r.GST.Float()
	}
	return item, nil
}

// checkTotals logs bills whose header total disagrees with the item totals.
// The client's figures are stored either way.
func checkTotals(b *Bill) {
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(decimal.NewFromFloat(item.Total))
	}
	if !sum.Round(2).Equal(decimal.NewFromFloat(b.TotalAmount).Round(2)) {
		log.Printf("billing: totalAmount %.2f differs from item total %s", b.TotalAmount, sum.StringFixed(2))
	}
}
