package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/expense"
	"github.com/georgemunganga/supermart-backend/internal/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	topProductsLimit = 20
	defaultLookback  = 7
)

// Service builds sales and expense reports.
type Service interface {
	Report(ctx context.Context, q Query) (*Report, error)
}

type service struct {
	repo     Repository
	expenses ExpenseLister
	loc      *time.Location
	now      func() time.Time
}

// NewService creates a report service. Calendar days and buckets are taken
// in loc.
func NewService(repo Repository, expenses ExpenseLister, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, expenses: expenses, loc: loc, now: time.Now}
}

func (s *service) Report(ctx context.Context, q Query) (*Report, error) {
	g, ok := ParseGranularity(q.GroupBy)
	if !ok {
		return nil, apperr.Validation("groupBy must be Daily, Weekly or Monthly")
	}
	now := s.now().In(s.loc)
	window, err := period.Parse(q.StartDate, q.EndDate, s.loc, now.AddDate(0, 0, -defaultLookback), now)
	if err != nil {
		return nil, err
	}
	day := period.Day(window.End)
	month := period.Window{Start: period.MonthStart(now), End: now}

	var (
		rangeTotals   SalesTotals
		rangeExpenses float64
		modes         []ModeTotal
		salesTrend    []Bucket
		expenseTrend  []Bucket
		dayModes      []ModeTotal
		dayExpenses   float64
		dayTotals     SalesTotals
		monthTotals   SalesTotals
		top           []ProductSales
		expenseList   []*expense.Expense
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) { rangeTotals, err = s.repo.SalesTotals(ctx, window); return })
	eg.Go(func() (err error) { rangeExpenses, err = s.repo.ExpenseTotal(ctx, window); return })
	eg.Go(func() (err error) { modes, err = s.repo.SalesByMode(ctx, window); return })
	eg.Go(func() (err error) { salesTrend, err = s.repo.SalesTrend(ctx, window, g, s.loc); return })
	eg.Go(func() (err error) { expenseTrend, err = s.repo.ExpenseTrend(ctx, window, g, s.loc); return })
	eg.Go(func() (err error) { dayModes, err = s.repo.SalesByMode(ctx, day); return })
	eg.Go(func() (err error) { dayExpenses, err = s.repo.ExpenseTotal(ctx, day); return })
	eg.Go(func() (err error) { dayTotals, err = s.repo.SalesTotals(ctx, day); return })
	eg.Go(func() (err error) { monthTotals, err = s.repo.SalesTotals(ctx, month); return })
	eg.Go(func() (err error) { top, err = s.repo.TopProducts(ctx, topProductsLimit); return })
	eg.Go(func() (err error) {
		expenseList, err = s.expenses.List(ctx, expense.Filter{From: &window.Start, To: &window.End})
		return
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	revenue := decimal.NewFromFloat(rangeTotals.Total)
	dayTotal := decimal.Zero
	for _, m := range dayModes {
		dayTotal = dayTotal.Add(decimal.NewFromFloat(m.Total))
	}

	return &Report{
		Range: RangeSummary{
			Total:     rangeTotals.Total,
			Count:     rangeTotals.Count,
			GST:       rangeTotals.GST,
			Expenses:  rangeExpenses,
			NetProfit: revenue.Sub(decimal.NewFromFloat(rangeExpenses)).InexactFloat64(),
		},
		PaymentModes: nonNil(modes),
		TrendData:    mergeTrend(salesTrend, expenseTrend),
		DayReport: DayReport{
			Date:      day.Start.Format("2006-01-02"),
			Total:     dayTotal.InexactFloat64(),
			Expenses:  dayExpenses,
			Breakdown: nonNil(dayModes),
		},
		Today:       dayTotals,
		Monthly:     MonthSummary{Total: monthTotals.Total},
		TopProducts: nonNil(top),
		Expenses:    nonNil(expenseList),
	}, nil
}

// mergeTrend returns one point per key present in either series, ascending,
// with 0 where a series has no value.
func mergeTrend(sales, expenses []Bucket) []TrendPoint {
	byKey := make(map[string]*TrendPoint)
	point := func(key string) *TrendPoint {
		p, ok := byKey[key]
		if !ok {
			p = &TrendPoint{Name: key}
			byKey[key] = p
		}
		return p
	}
	for _, b := range sales {
		p := point(b.Key)
		p.Val = decimal.NewFromFloat(p.Val).Add(decimal.NewFromFloat(b.Value)).InexactFloat64()
	}
	for _, b := range expenses {
		p := point(b.Key)
		p.Expense = decimal.NewFromFloat(p.Expense).Add(decimal.NewFromFloat(b.Value)).InexactFloat64()
	}

	out := make([]TrendPoint, 0, len(byKey))
	for _, p := range byKey {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
