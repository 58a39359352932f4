package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/google/uuid"
)

type postgresStore struct {
	db *sql.DB
	q  database.DBTX
}

// NewPostgresStore returns a Store backed by db.
func NewPostgresStore(db *sql.DB) Store { return &postgresStore{db: db, q: db} }

func (s *postgresStore) Products() ProductRepository    { return NewProductPostgresRepository(s.q) }
func (s *postgresStore) Categories() CategoryRepository { return NewCategoryPostgresRepository(s.q) }

func (s *postgresStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if _, inTx := s.q.(*sql.Tx); inTx {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&postgresStore{db: s.db, q: tx})
	})
}

// ── Products ──────────────────────────────────────────────────────────────────

const productColumns = `id, name, brand, category, barcode, cost_price, selling_price, gst_percent, gst_type,
	stock_quantity, unit, expiry_date, batch_no, min_stock_level, supplier, created_at, updated_at`

type productPostgres struct{ db database.DBTX }

func NewProductPostgresRepository(db database.DBTX) ProductRepository {
	return &productPostgres{db: db}
}

func (r *productPostgres) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products
		  (id, name, brand, category, barcode, cost_price, selling_price, gst_percent, gst_type,
		   stock_quantity, unit, expiry_date, batch_no, min_stock_level, supplier)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Brand, p.Category, p.Barcode, p.CostPrice, p.SellingPrice, p.GSTPercent, p.GSTType,
		p.StockQuantity, p.Unit, p.ExpiryDate, p.BatchNo, p.MinStockLevel, p.Supplier,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productPostgres) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Product not found")
	}
	return p, err
}

func (r *productPostgres) List(ctx context.Context, f ProductFilter) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	n := 1
	if strings.TrimSpace(f.Search) != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR brand ILIKE $%d OR barcode ILIKE $%d)`, n, n, n)
		args = append(args, database.ContainsPattern(f.Search))
		n++
	}
	if strings.TrimSpace(f.Category) != "" {
		query += fmt.Sprintf(` AND LOWER(BTRIM(category)) = $%d`, n)
		args = append(args, CategoryKey(f.Category))
		n++
	}
	if f.LowStock {
		query += ` AND stock_quantity <= min_stock_level`
	}
	query += ` ORDER BY created_at DESC`
	return r.query(ctx, query, args...)
}

func (r *productPostgres) ListExpiring(ctx context.Context, from, to time.Time) ([]*Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products
		WHERE expiry_date >= $1 AND expiry_date <= $2
		ORDER BY expiry_date ASC`, from, to)
}

func (r *productPostgres) Update(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name=$2, brand=$3, category=$4, barcode=$5, cost_price=$6, selling_price=$7,
		    gst_percent=$8, gst_type=$9, stock_quantity=$10, unit=$11, expiry_date=$12,
		    batch_no=$13, min_stock_level=$14, supplier=$15, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		p.ID, p.Name, p.Brand, p.Category, p.Barcode, p.CostPrice, p.SellingPrice,
		p.GSTPercent, p.GSTType, p.StockQuantity, p.Unit, p.ExpiryDate,
		p.BatchNo, p.MinStockLevel, p.Supplier,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Product not found")
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *productPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (r *productPostgres) query(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ── Categories ────────────────────────────────────────────────────────────────

type categoryPostgres struct{ db database.DBTX }

func NewCategoryPostgresRepository(db database.DBTX) CategoryRepository {
	return &categoryPostgres{db: db}
}

func (r *categoryPostgres) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgres) Create(ctx context.Context, c *Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		c.ID, c.Name).Scan(&c.CreatedAt, &c.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Validation("Category already exists")
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *categoryPostgres) FindOrCreate(ctx context.Context, name string) (*Category, bool, error) {
	name = strings.TrimSpace(name)
	c, err := scanCategory(r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT ((LOWER(BTRIM(name)))) DO NOTHING
		RETURNING id, name, created_at, updated_at`, uuid.New(), name))
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert category: %w", err)
	}

	c, err = scanCategory(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE LOWER(BTRIM(name)) = $1`,
		CategoryKey(name)))
	if err != nil {
		return nil, false, fmt.Errorf("find category: %w", err)
	}
	return c, false, nil
}

func (r *categoryPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Category not found")
	}
	return nil
}

// ── Scanners ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Barcode, &p.CostPrice, &p.SellingPrice,
		&p.GSTPercent, &p.GSTType, &p.StockQuantity, &p.Unit, &p.ExpiryDate, &p.BatchNo,
		&p.MinStockLevel, &p.Supplier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

func scanCategory(row rowScanner) (*Category, error) {
	c := &Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
