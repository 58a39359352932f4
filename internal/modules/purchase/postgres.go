package purchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/georgemunganga/supermart-backend/internal/modules/supplier"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

type postgresUnit struct{ db *sql.DB }

// NewUnitOfWork binds purchase, supplier, catalog and stock repositories to
// one transaction per call.
func NewUnitOfWork(db *sql.DB) UnitOfWork { return &postgresUnit{db: db} }

func (u *postgresUnit) WithinTx(ctx context.Context, fn func(Tx) error) error {
	return database.WithTx(ctx, u.db, func(tx *sql.Tx) error {
		return fn(Tx{
			Purchases: NewPostgresRepository(tx),
			Suppliers: supplier.NewPostgresRepository(tx),
			Inventory: inventory.Unit{
				Products:   catalog.NewProductPostgresRepository(tx),
				Categories: catalog.NewCategoryPostgresRepository(tx),
				Stock:      inventory.NewStockPostgresRepository(tx),
			},
		})
	})
}

func (r *postgresRepo) Create(ctx context.Context, p *Purchase) error {
	var supplierID *uuid.UUID
	if p.Supplier != nil {
		supplierID = &p.Supplier.ID
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO purchases
		  (id, supplier_id, invoice_number, purchase_date, discount, total_amount, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		p.ID, supplierID, p.InvoiceNumber, p.PurchaseDate, p.Discount, p.TotalAmount, p.Status, p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	for i, item := range p.Items {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO purchase_items
			  (id, purchase_id, position, product_id, quantity, cost_price, selling_price, total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.New(), p.ID, i, item.ProductID, item.Quantity, item.CostPrice, item.SellingPrice, item.Total)
		if err != nil {
			return fmt.Errorf("insert purchase_item: %w", err)
		}
	}
	return nil
}

const purchaseSelect = `
	SELECT p.id, p.supplier_id, COALESCE(s.name, ''), p.invoice_number, p.purchase_date,
	       p.discount, p.total_amount, p.status, p.notes, p.created_at, p.updated_at
	FROM purchases p
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	p, err := scanPurchase(r.db.QueryRowContext(ctx, purchaseSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Purchase not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.attachItems(ctx, []*Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, search string) ([]*Purchase, error) {
	query := purchaseSelect
	var args []interface{}
	if strings.TrimSpace(search) != "" {
		query += ` WHERE p.invoice_number ILIKE $1 OR s.name ILIKE $1`
		args = append(args, database.ContainsPattern(search))
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []*Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Purchase not found")
	}
	return nil
}

// attachItems loads the items of every purchase in one query.
func (r *postgresRepo) attachItems(ctx context.Context, purchases []*Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*Purchase, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		p.Items = []Item{}
		byID[p.ID] = p
		ids = append(ids, p.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.purchase_id, i.product_id, COALESCE(pr.name, ''), i.quantity, i.cost_price, i.selling_price, i.total
		FROM purchase_items i
		LEFT JOIN products pr ON pr.id = i.product_id
		WHERE i.purchase_id = ANY($1::uuid[])
		ORDER BY i.purchase_id, i.position`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list purchase_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			purchaseID uuid.UUID
			item       Item
			selling    sql.NullFloat64
		)
		if err := rows.Scan(&purchaseID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.CostPrice, &selling, &item.Total); err != nil {
			return fmt.Errorf("scan purchase_item: %w", err)
		}
		if selling.Valid {
			item.SellingPrice = &selling.Float64
		}
		if p, ok := byID[purchaseID]; ok {
			p.Items = append(p.Items, item)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPurchase(row rowScanner) (*Purchase, error) {
	var (
		p            Purchase
		supplierID   uuid.NullUUID
		supplierName string
	)
	err := row.Scan(&p.ID, &supplierID, &supplierName, &p.InvoiceNumber, &p.PurchaseDate,
		&p.Discount, &p.TotalAmount, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID.Valid {
		p.Supplier = &SupplierRef{ID: supplierID.UUID, Name: supplierName}
	}
	return &p, nil
}
