package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// ListExpiring returns products expiring within the next 30 days.
	ListExpiring(ctx context.Context) ([]*Product, error)
	// ImportProducts inserts every row or none, creating unseen categories.
	ImportProducts(ctx context.Context, rows []ImportRow) (int, error)

	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) Service { return &service{store: store, now: time.Now} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p := &Product{
		ID:            uuid.New(),
		GSTType:       GSTInclusive,
		Unit:          DefaultUnit,
		MinStockLevel: DefaultMinStockLevel,
	}
	if err := validateRequired(req); err != nil {
		return nil, err
	}
	if err := applyRequest(p, req); err != nil {
		return nil, err
	}

	err := s.store.WithinTx(ctx, func(tx Store) error {
		c, _, err := tx.Categories().FindOrCreate(ctx, p.Category)
		if err != nil {
			return err
		}
		p.Category = c.Name
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, f ProductFilter) ([]*Product, error) {
	return s.store.Products().List(ctx, f)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*Product, error) {
	var updated *Product
	err := s.store.WithinTx(ctx, func(tx Store) error {
		p, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.StockQuantity != nil {
			if n, ok := req.StockQuantity.Int(); !ok || n != p.StockQuantity {
				return apperr.Validation("stockQuantity changes only through purchases and billing")
			}
		}
		previous := p.Category
		if err := applyRequest(p, req); err != nil {
			return err
		}
		if CategoryKey(p.Category) != CategoryKey(previous) {
			c, _, err := tx.Categories().FindOrCreate(ctx, p.Category)
			if err != nil {
				return err
			}
			p.Category = c.Name
		}
		if err := tx.Products().Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.store.Products().Delete(ctx, id)
}

func (s *service) ListExpiring(ctx context.Context) ([]*Product, error) {
	now := s.now()
	return s.store.Products().ListExpiring(ctx, now, now.Add(ExpiryWindow))
}

func (s *service) ImportProducts(ctx context.Context, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, apperr.Validation("import file has no product rows")
	}

	err := s.store.WithinTx(ctx, func(tx Store) error {
		resolved := make(map[string]string)
		for _, row := range rows {
			p := row.Product
			key := CategoryKey(p.Category)
			name, ok := resolved[key]
			if !ok {
				c, _, err := tx.Categories().FindOrCreate(ctx, p.Category)
				if err != nil {
					return fmt.Errorf("row %d: %w", row.Line, err)
				}
				name = c.Name
				resolved[key] = name
			}
			p.ID = uuid.New()
			p.Category = name
			if err := tx.Products().Create(ctx, &p); err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.store.Categories().List(ctx)
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	c := &Category{ID: uuid.New(), Name: name}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.Categories().Delete(ctx, id)
}

// ── Validation ────────────────────────────────────────────────────────────────

func validateRequired(req ProductRequest) error {
	var missing []string
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		missing = append(missing, "name")
	}
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		missing = append(missing, "category")
	}
	if req.CostPrice == nil {
		missing = append(missing, "costPrice")
	}
	if req.SellingPrice == nil {
		missing = append(missing, "sellingPrice")
	}
	if req.StockQuantity == nil {
		missing = append(missing, "stockQuantity")
	}
	if req.ExpiryDate == nil || strings.TrimSpace(*req.ExpiryDate) == "" {
		missing = append(missing, "expiryDate")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// applyRequest copies the set fields of req onto p.
func applyRequest(p *Product, req ProductRequest) error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return apperr.Validation("name cannot be empty")
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return apperr.Validation("category cannot be empty")
		}
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Brand != nil {
		p.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Barcode != nil {
		p.Barcode = strings.TrimSpace(*req.Barcode)
	}
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.BatchNo != nil {
		p.BatchNo = strings.TrimSpace(*req.BatchNo)
	}
	if req.Supplier != nil {
		p.Supplier = strings.TrimSpace(*req.Supplier)
	}
	if req.GSTType != nil {
		t, ok := ParseGSTType(*req.GSTType)
		if !ok {
			return apperr.Validation("gstType must be Inclusive or Exclusive")
		}
		p.GSTType = t
	}
	if err := setAmount(&p.CostPrice, req.CostPrice, "costPrice"); err != nil {
		return err
	}
	if err := setAmount(&p.SellingPrice, req.SellingPrice, "sellingPrice"); err != nil {
		return err
	}
	if err := setAmount(&p.GSTPercent, req.GSTPercent, "gstPercent"); err != nil {
		return err
	}
	if req.StockQuantity != nil {
		n, ok := req.StockQuantity.Int()
		if !ok {
			return apperr.Validation("stockQuantity must be a whole number")
		}
		p.StockQuantity = n
	}
	if req.MinStockLevel != nil {
		n, ok := req.MinStockLevel.Int()
		if !ok || n < 0 {
			return apperr.Validation("minStockLevel must be a non-negative whole number")
		}
		p.MinStockLevel = n
	}
	if req.ExpiryDate != nil {
		d, err := httpx.ParseDate(*req.ExpiryDate, time.UTC)
		if err != nil {
			return apperr.Validation("expiryDate: %v", err)
		}
		p.ExpiryDate = d
	}
	return nil
}

func setAmount(dst *float64, n *httpx.Number, field string) error {
	if n == nil {
		return nil
	}
	if n.Float() < 0 {
		return apperr.Validation("%s must not be negative", field)
	}
	*dst = n.Float()
	return nil
}
