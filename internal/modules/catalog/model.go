package catalog

import (
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
)

// GSTType says whether a product's selling price already includes GST.
type GSTType string

const (
	GSTInclusive GSTType = "Inclusive"
	GSTExclusive GSTType = "Exclusive"
)

// ParseGSTType matches case-insensitively; empty means Inclusive.
func ParseGSTType(raw string) (GSTType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "inclusive":
		return GSTInclusive, true
	case "exclusive":
		return GSTExclusive, true
	default:
		return "", false
	}
}

const (
	DefaultUnit          = "Packet"
	DefaultMinStockLevel = 10
	DefaultCategory      = "Uncategorized"
	ExpiryWindow         = 30 * 24 * time.Hour
)

// Product is a sellable stock item.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	Barcode       string    `json:"barcode"`
	CostPrice     float64   `json:"costPrice"`
	SellingPrice  float64   `json:"sellingPrice"`
	GSTPercent    float64   `json:"gstPercent"`
	GSTType       GSTType   `json:"gstType"`
	StockQuantity int       `json:"stockQuantity"`
	Unit          string    `json:"unit"`
	ExpiryDate    time.Time `json:"expiryDate"`
	BatchNo       string    `json:"batchNo"`
	MinStockLevel int       `json:"minStockLevel"`
	Supplier      string    `json:"supplier"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsLowStock reports whether stock has fallen to the reorder level.
func (p *Product) IsLowStock() bool { return p.StockQuantity <= p.MinStockLevel }

// Category groups products. Names are unique ignoring case and surrounding
// whitespace.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryKey is the normalized form category names are compared by.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	Search   string
	Category string
	LowStock bool
}

// ProductRequest is used for both create and update; on update only the
// fields that are set change.
type ProductRequest struct {
	Name          *string       `json:"name"`
	Brand         *string       `json:"brand"`
	Category      *string       `json:"category"`
	Barcode       *string       `json:"barcode"`
	CostPrice     *httpx.Number `json:"costPrice"`
	SellingPrice  *httpx.Number `json:"sellingPrice"`
	GSTPercent    *httpx.Number `json:"gstPercent"`
	GSTType       *string       `json:"gstType"`
	StockQuantity *httpx.Number `json:"stockQuantity"`
	Unit          *string       `json:"unit"`
	ExpiryDate    *string       `json:"expiryDate"`
	BatchNo       *string       `json:"batchNo"`
	MinStockLevel *httpx.Number `json:"minStockLevel"`
	Supplier      *string       `json:"supplier"`
}
