package expense

import (
	"context"
	"fmt"

	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/google/uuid"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, e *Expense) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (id, reason, amount, date, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		e.ID, e.Reason, e.Amount, e.Date, e.UserID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Expense, error) {
	query := `SELECT id, reason, amount, date, user_id, created_at, updated_at FROM expenses WHERE 1=1`
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date <= $%d", *f.To)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*Expense{}
	for rows.Next() {
		var (
			e      Expense
			userID uuid.NullUUID
		)
		if err := rows.Scan(&e.ID, &e.Reason, &e.Amount, &e.Date, &userID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if userID.Valid {
			id := userID.UUID
			e.UserID = &id
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}
