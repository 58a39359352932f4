package billing

import (
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
)

// PaymentMode is how a customer settled a bill.
type PaymentMode string

const (
	PaymentCash  PaymentMode = "Cash"
	PaymentUPI   PaymentMode = "UPI"
	PaymentCard  PaymentMode = "Card"
	PaymentOther PaymentMode = "Other"
)

// ParsePaymentMode matches s case-insensitively. An empty s means Cash.
func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cash":
		return PaymentCash, true
	case "upi":
		return PaymentUPI, true
	case "card":
		return PaymentCard, true
	case "other":
		return PaymentOther, true
	}
	return "", false
}

// Item is one sold line. ProductID is nil for ad-hoc lines that do not move
// stock.
type Item struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	GST       float64    `json:"gst"`
	Total     float64    `json:"total"`
}

// UserRef is the cashier who raised a bill.
type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Bill is a customer invoice.
type Bill struct {
	ID             uuid.UUID   `json:"id"`
	InvoiceNumber  string      `json:"invoiceNumber"`
	CustomerName   string      `json:"customerName"`
	CustomerPhone  string      `json:"customerPhone"`
	Items          []Item      `json:"items"`
	TotalAmount    float64     `json:"totalAmount"`
	GSTAmount      float64     `json:"gstAmount"`
	DiscountAmount float64     `json:"discountAmount"`
	NetAmount      float64     `json:"netAmount"`
	PaymentMode    PaymentMode `json:"paymentMode"`
	User           *UserRef    `json:"user"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type ItemRequest struct {
	ProductID *string       `json:"productId"`
	Name      string        `json:"name"`
	Quantity  *httpx.Number `json:"quantity"`
	Price     *httpx.Number `json:"price"`
	GST       *httpx.Number `json:"gst"`
	Total     *httpx.Number `json:"total"`
}

// CreateRequest is the body of a new bill. Totals are computed by the
// client and stored as sent.
type CreateRequest struct {
	CustomerName   string        `json:"customerName"`
	CustomerPhone  string        `json:"customerPhone"`
	Items          []ItemRequest `json:"items"`
	TotalAmount    *httpx.Number `json:"totalAmount"`
	GSTAmount      *httpx.Number `json:"gstAmount"`
	DiscountAmount *httpx.Number `json:"discountAmount"`
	NetAmount      *httpx.Number `json:"netAmount"`
	PaymentMode    string        `json:"paymentMode"`
}
