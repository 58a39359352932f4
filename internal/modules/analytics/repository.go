package analytics

import (
	"context"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/modules/expense"
	"github.com/georgemunganga/supermart-backend/internal/period"
)

// Repository runs the read-only aggregates behind a report. Implementations
// must be safe for concurrent use.
type Repository interface {
	SalesTotals(ctx context.Context, w period.Window) (SalesTotals, error)
	SalesByMode(ctx context.Context, w period.Window) ([]ModeTotal, error)
	// SalesTrend and ExpenseTrend bucket by g in loc, ascending by key.
	SalesTrend(ctx context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error)
	ExpenseTrend(ctx context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error)
	ExpenseTotal(ctx context.Context, w period.Window) (float64, error)
	// TopProducts ranks product names across all bills by quantity sold.
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

// ExpenseLister supplies the raw expense list.
type ExpenseLister interface {
	List(ctx context.Context, f expense.Filter) ([]*expense.Expense, error)
}
