package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

type postgresUnit struct{ db *sql.DB }

// NewUnitOfWork binds the bill and stock repositories to one transaction per call.
func NewUnitOfWork(db *sql.DB) UnitOfWork { return &postgresUnit{db: db} }

func (u *postgresUnit) WithinTx(ctx context.Context, fn func(Tx) error) error {
	return database.WithTx(ctx, u.db, func(tx *sql.Tx) error {
		return fn(Tx{Bills: NewPostgresRepository(tx), Stock: inventory.NewStockPostgresRepository(tx)})
	})
}

func (r *postgresRepo) Create(ctx context.Context, b *Bill) error {
	var userID *uuid.UUID
	if b.User != nil {
		userID = &b.User.ID
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bills
		  (id, invoice_number, customer_name, customer_phone, total_amount, gst_amount,
		   discount_amount, net_amount, payment_mode, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		b.ID, b.InvoiceNumber, b.CustomerName, b.CustomerPhone, b.TotalAmount, b.GSTAmount,
		b.DiscountAmount, b.NetAmount, b.PaymentMode, userID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return ErrDuplicateInvoice
	}
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	for i, item := range b.Items {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO bill_items (id, bill_id, position, product_id, name, quantity, price, gst, total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			uuid.New(), b.ID, i, item.ProductID, item.Name, item.Quantity, item.Price, item.GST, item.Total)
		if err != nil {
			return fmt.Errorf("insert bill_item: %w", err)
		}
	}
	return nil
}

const billSelect = `
	SELECT b.id, b.invoice_number, b.customer_name, b.customer_phone, b.total_amount, b.gst_amount,
	       b.discount_amount, b.net_amount, b.payment_mode, b.user_id, COALESCE(u.name, ''),
	       b.created_at, b.updated_at
	FROM bills b
	LEFT JOIN users u ON u.id = b.user_id`

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	b, err := scanBill(r.db.QueryRowContext(ctx, billSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Invoice not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if err := r.attachItems(ctx, []*Bill{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Bill, error) {
	rows, err := r.db.QueryContext(ctx, billSelect+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	bills := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Invoice not found")
	}
	return nil
}

func (r *postgresRepo) attachItems(ctx context.Context, bills []*Bill) error {
	if len(bills) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*Bill, len(bills))
	ids := make([]string, 0, len(bills))
	for _, b := range bills {
		b.Items = []Item{}
		byID[b.ID] = b
		ids = append(ids, b.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT bill_id, product_id, name, quantity, price, gst, total
		FROM bill_items
		WHERE bill_id = ANY($1::uuid[])
		ORDER BY bill_id, position`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list bill_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			billID    uuid.UUID
			productID uuid.NullUUID
			item      Item
		)
		if err := rows.Scan(&billID, &productID, &item.Name, &item.Quantity, &item.Price, &item.GST, &item.Total); err != nil {
			return fmt.Errorf("scan bill_item: %w", err)
		}
		if productID.Valid {
			id := productID.UUID
			item.ProductID = &id
		}
		if b, ok := byID[billID]; ok {
			b.Items = append(b.Items, item)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*Bill, error) {
	var (
		b        Bill
		userID   uuid.NullUUID
		userName string
	)
	err := row.Scan(&b.ID, &b.InvoiceNumber, &b.CustomerName, &b.CustomerPhone, &b.TotalAmount, &b.GSTAmount,
		&b.DiscountAmount, &b.NetAmount, &b.PaymentMode, &userID, &userName, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		b.User = &UserRef{ID: userID.UUID, Name: userName}
	}
	return &b, nil
}
