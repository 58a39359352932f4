package expense

import "context"

// Repository defines data access for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	// List returns matching expenses, latest date first.
	List(ctx context.Context, f Filter) ([]*Expense, error)
}
