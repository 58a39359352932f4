package purchase

import (
	"context"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/google/uuid"
)

// Service defines purchase business logic.
type Service interface {
	// Create records a purchase and, when it is Completed, receives its
	// stock. Everything happens in one transaction.
	Create(ctx context.Context, req CreateRequest) (*Purchase, error)
	Get(ctx context.Context, id uuid.UUID) (*Purchase, error)
	List(ctx context.Context, search string) ([]*Purchase, error)
	// Delete removes the record only. Stock received for it stays.
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       Repository
	uow        UnitOfWork
	reconciler *inventory.Reconciler
	now        func() time.Time
}

// NewService creates a purchase service. repo serves reads and uow scopes
// creation to a transaction.
func NewService(repo Repository, uow UnitOfWork, reconciler *inventory.Reconciler) Service {
	return &service{repo: repo, uow: uow, reconciler: reconciler, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Purchase, error) {
	var missing []string
	if strings.TrimSpace(req.Supplier) == "" {
		missing = append(missing, "supplier")
	}
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		missing = append(missing, "invoiceNumber")
	}
	if len(req.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	supplierID, err := httpx.ParseUUID(req.Supplier, "Supplier")
	if err != nil {
		return nil, err
	}
	status, ok := ParseStatus(req.Status)
	if !ok {
		return nil, apperr.Validation("status must be Completed, Pending or Cancelled")
	}

	purchaseDate := s.now().UTC()
	if req.PurchaseDate != nil && strings.TrimSpace(*req.PurchaseDate) != "" {
		d, err := httpx.ParseDate(*req.PurchaseDate, time.UTC)
		if err != nil {
			return nil, apperr.Validation("purchaseDate: %v", err)
		}
		purchaseDate = d
	}

	lines := make([]inventory.Line, 0, len(req.Items))
	for i, item := range req.Items {
		line, err := toLine(i+1, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	receipt := inventory.Receipt{
		Lines:      lines,
		ApplyStock: status == StatusCompleted,
		ReceivedAt: purchaseDate,
	}
	if req.Discount != nil {
		receipt.Discount = req.Discount.Float()
	}

	p := &Purchase{
		ID:            uuid.New(),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		PurchaseDate:  purchaseDate,
		Status:        status,
		Notes:         strings.TrimSpace(req.Notes),
	}

	err = s.uow.WithinTx(ctx, func(tx Tx) error {
		sup, err := tx.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		p.Supplier = &SupplierRef{ID: sup.ID, Name: sup.Name}
		receipt.Supplier = sup.Name

		res, err := s.reconciler.Apply(ctx, tx.Inventory, receipt)
		if err != nil {
			return err
		}
		p.Discount = res.Discount
		p.TotalAmount = res.Total
		p.Items = make([]Item, len(res.Lines))
		for i, l := range res.Lines {
			p.Items[i] = Item{
				ProductID:    l.ProductID,
				ProductName:  l.Name,
				Quantity:     l.Quantity,
				CostPrice:    l.CostPrice,
				SellingPrice: l.SellingPrice,
				Total:        l.Total,
			}
		}
		return tx.Purchases.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, search string) ([]*Purchase, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// toLine validates the numeric fields of a request line. A zero selling
// price counts as not given.
func toLine(n int, item ItemRequest) (inventory.Line, error) {
	line := inventory.Line{
		IsNew:    item.IsNew,
		Name:     strings.TrimSpace(item.Name),
		Category: item.Category,
		Brand:    item.Brand,
		Unit:     item.Unit,
		Barcode:  item.Barcode,
	}

	if item.Quantity == nil {
		return line, apperr.Validation("item %d: quantity is required", n)
	}
	qty, ok := item.Quantity.Int()
	if !ok {
		return line, apperr.Validation("item %d: quantity must be a whole number greater than 0", n)
	}
	line.Quantity = qty

	if item.CostPrice == nil {
		return line, apperr.Validation("item %d: costPrice is required", n)
	}
	line.CostPrice = item.CostPrice.Float()

	if item.SellingPrice != nil && item.SellingPrice.Float() != 0 {
		v := item.SellingPrice.Float()
		line.SellingPrice = &v
	}

	if item.ExpiryDate != nil && strings.TrimSpace(*item.ExpiryDate) != "" {
		d, err := httpx.ParseDate(*item.ExpiryDate, time.UTC)
		if err != nil {
			return line, apperr.Validation("item %d: expiryDate: %v", n, err)
		}
		line.ExpiryDate = &d
	}

	if !item.IsNew {
		if item.Product == nil || strings.TrimSpace(*item.Product) == "" {
			return line, apperr.Validation("item %d: product is required", n)
		}
		id, err := httpx.ParseUUID(*item.Product, "Product")
		if err != nil {
			return line, err
		}
		line.ProductID = &id
	}
	return line, nil
}
