package supplier

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a company stock is bought from.
type Supplier struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	GSTIN         string    `json:"gstin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Request carries supplier fields from a create or update body. Nil fields
// are left untouched on update.
type Request struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	GSTIN         *string `json:"gstin"`
}
