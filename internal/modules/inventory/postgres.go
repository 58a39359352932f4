package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/google/uuid"
)

type stockPostgres struct{ db database.DBTX }

func NewStockPostgresRepository(db database.DBTX) StockRepository {
	return &stockPostgres{db: db}
}

func (r *stockPostgres) Receive(ctx context.Context, productID uuid.UUID, c StockChange) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2,
		    cost_price = $3,
		    selling_price = COALESCE($4, selling_price),
		    supplier = COALESCE(NULLIF($5, ''), supplier),
		    updated_at = NOW()
		WHERE id = $1`,
		productID, c.Quantity, c.CostPrice, c.SellingPrice, c.Supplier)
	if err != nil {
		return fmt.Errorf("receive stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (r *stockPostgres) Withdraw(ctx context.Context, productID uuid.UUID, quantity int) (Level, error) {
	var level Level
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1
		RETURNING name, stock_quantity`,
		productID, quantity).Scan(&level.Name, &level.StockQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return Level{}, apperr.NotFound("Product not found")
	}
	if err != nil {
		return Level{}, fmt.Errorf("withdraw stock: %w", err)
	}
	return level, nil
}
