package expense

import (
	"time"

	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
)

// Expense is money paid out of the till.
type Expense struct {
	ID        uuid.UUID  `json:"id"`
	Reason    string     `json:"reason"`
	Amount    float64    `json:"amount"`
	Date      time.Time  `json:"date"`
	UserID    *uuid.UUID `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CreateRequest struct {
	Reason string        `json:"reason"`
	Amount *httpx.Number `json:"amount"`
	Date   *string       `json:"date"`
}

// Filter narrows a listing. Nil fields do not filter.
type Filter struct {
	UserID *uuid.UUID
	From   *time.Time
	To     *time.Time
}
