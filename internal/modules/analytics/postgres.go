package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/georgemunganga/supermart-backend/internal/period"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) SalesTotals(ctx context.Context, w period.Window) (SalesTotals, error) {
	var t SalesTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(net_amount), 0), COUNT(*), COALESCE(SUM(gst_amount), 0)
		FROM bills
		WHERE created_at >= $1 AND created_at <= $2`, w.Start, w.End).Scan(&t.Total, &t.Count, &t.GST)
	if err != nil {
		return SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return t, nil
}

func (r *postgresRepo) SalesByMode(ctx context.Context, w period.Window) ([]ModeTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payment_mode, SUM(net_amount)
		FROM bills
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY payment_mode
		ORDER BY payment_mode`, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("sales by mode: %w", err)
	}
	defer rows.Close()

	out := []ModeTotal{}
	for rows.Next() {
		var m ModeTotal
		if err := rows.Scan(&m.Mode, &m.Total); err != nil {
			return nil, fmt.Errorf("scan mode total: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SalesTrend(ctx context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error) {
	return r.buckets(ctx, `
		SELECT to_char(created_at AT TIME ZONE $3, $4) AS bucket, SUM(net_amount)
		FROM bills
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY bucket
		ORDER BY bucket`, w, g, loc)
}

func (r *postgresRepo) ExpenseTrend(ctx context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error) {
	return r.buckets(ctx, `
		SELECT to_char(date AT TIME ZONE $3, $4) AS bucket, SUM(amount)
		FROM expenses
		WHERE date >= $1 AND date <= $2
		GROUP BY bucket
		ORDER BY bucket`, w, g, loc)
}

func (r *postgresRepo) buckets(ctx context.Context, query string, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error) {
	rows, err := r.db.QueryContext(ctx, query, w.Start, w.End, loc.String(), g.pgFormat())
	if err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}
	defer rows.Close()

	out := []Bucket{}
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Key, &b.Value); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *postgresRepo) ExpenseTotal(ctx context.Context, w period.Window) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date >= $1 AND date <= $2`, w.Start, w.End).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("expense total: %w", err)
	}
	return total, nil
}

func (r *postgresRepo) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, SUM(quantity) AS qty, SUM(total)
		FROM bill_items
		GROUP BY name
		ORDER BY qty DESC, name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	out := []ProductSales{}
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.Name, &p.TotalQty, &p.TotalRev); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
