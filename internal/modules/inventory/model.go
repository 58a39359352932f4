package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Line is one purchased item. It either references an existing product or,
// with IsNew set, describes a product to create.
type Line struct {
	ProductID    *uuid.UUID
	IsNew        bool
	Name         string
	Category     string
	Brand        string
	Unit         string
	Barcode      string
	ExpiryDate   *time.Time
	Quantity     int
	CostPrice    float64
	SellingPrice *float64
}

// Receipt is a purchase to reconcile against stock.
type Receipt struct {
	Lines []Line
	// ApplyStock is set for completed purchases. Pending and cancelled
	// purchases record lines without touching stock.
	ApplyStock bool
	Supplier   string
	ReceivedAt time.Time
	Discount   float64
}

// AppliedLine is a processed line ready to be stored on the purchase.
type AppliedLine struct {
	ProductID    uuid.UUID
	Name         string
	Quantity     int
	CostPrice    float64
	SellingPrice *float64
	Total        float64
}

// Result summarizes a reconciled receipt.
type Result struct {
	Lines             []AppliedLine
	Subtotal          float64
	Discount          float64
	Total             float64
	CreatedProducts   []uuid.UUID
	CreatedCategories []string
}

// StockChange is applied to a product when a completed purchase line lands.
type StockChange struct {
	Quantity     int
	CostPrice    float64
	SellingPrice *float64
	Supplier     string
}

// Level is a product's stock right after a withdrawal.
type Level struct {
	Name          string
	StockQuantity int
}
