package supplier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/google/uuid"
)

const columns = `id, name, contact_person, phone, email, address, gstin, created_at, updated_at`

type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a supplier repository over a pool or a transaction.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, s *Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_person, phone, email, address, gstin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.Name, s.ContactPerson, s.Phone, s.Email, s.Address, s.GSTIN,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	s, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Supplier not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) List(ctx context.Context, search string) ([]*Supplier, error) {
	query := `SELECT ` + columns + ` FROM suppliers`
	var args []interface{}
	if strings.TrimSpace(search) != "" {
		query += ` WHERE name ILIKE $1 OR contact_person ILIKE $1 OR phone ILIKE $1`
		args = append(args, database.ContainsPattern(search))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []*Supplier{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact_person = $3, phone = $4, email = $5, address = $6, gstin = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.Name, s.ContactPerson, s.Phone, s.Email, s.Address, s.GSTIN,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Supplier not found")
	}
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Supplier not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scan(row rowScanner) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ContactPerson,
		&s.Phone,
		&s.Email,
		&s.Address,
		&s.GSTIN,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
