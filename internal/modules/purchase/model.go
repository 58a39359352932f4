package purchase

import (
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a purchase. Stock moves only for
// purchases created as Completed.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus matches s case-insensitively. An empty s means Completed.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "completed":
		return StatusCompleted, true
	case "pending":
		return StatusPending, true
	case "cancelled":
		return StatusCancelled, true
	}
	return "", false
}

// SupplierRef is the supplier a purchase was bought from. It is nil once the
// supplier has been deleted.
type SupplierRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Item is a stored purchase line. ProductName is filled on reads and is
// empty when the product no longer exists.
type Item struct {
	ProductID    uuid.UUID `json:"product"`
	ProductName  string    `json:"productName,omitempty"`
	Quantity     int       `json:"quantity"`
	CostPrice    float64   `json:"costPrice"`
	SellingPrice *float64  `json:"sellingPrice,omitempty"`
	Total        float64   `json:"total"`
}

type Purchase struct {
	ID            uuid.UUID    `json:"id"`
	Supplier      *SupplierRef `json:"supplier"`
	InvoiceNumber string       `json:"invoiceNumber"`
	PurchaseDate  time.Time    `json:"purchaseDate"`
	Items         []Item       `json:"items"`
	Discount      float64      `json:"discount"`
	TotalAmount   float64      `json:"totalAmount"`
	Status        Status       `json:"status"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ItemRequest is one line of a create body. Lines either name an existing
// product or set IsNew and describe the product to create.
type ItemRequest struct {
	Product      *string       `json:"product"`
	IsNew        bool          `json:"isNew"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Brand        string        `json:"brand"`
	Unit         string        `json:"unit"`
	Barcode      string        `json:"barcode"`
	ExpiryDate   *string       `json:"expiryDate"`
	Quantity     *httpx.Number `json:"quantity"`
	CostPrice    *httpx.Number `json:"costPrice"`
	SellingPrice *httpx.Number `json:"sellingPrice"`
}

type CreateRequest struct {
	Supplier      string        `json:"supplier"`
	InvoiceNumber string        `json:"invoiceNumber"`
	PurchaseDate  *string       `json:"purchaseDate"`
	Items         []ItemRequest `json:"items"`
	Discount      *httpx.Number `json:"discount"`
	TotalAmount   *httpx.Number `json:"totalAmount"`
	Status        string        `json:"status"`
	Notes         string        `json:"notes"`
}
