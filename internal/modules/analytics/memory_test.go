package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/modules/expense"
	"github.com/georgemunganga/supermart-backend/internal/period"
)

type sale struct {
	at    time.Time
	net   float64
	gst   float64
	mode  string
	items []ProductSales
}

type spend struct {
	at     time.Time
	amount float64
}

// memoryRepo aggregates in Go over fixed slices. It is read-only, so the
// concurrent report facets need no locking.
type memoryRepo struct {
	sales  []sale
	spends []spend
	fail   error

	// topLimit is the limit TopProducts was last called with.
	topLimit int
}

func (m *memoryRepo) SalesTotals(_ context.Context, w period.Window) (SalesTotals, error) {
	var t SalesTotals
	for _, s := range m.sales {
		if w.Contains(s.at) {
			t.Total += s.net
			t.GST += s.gst
			t.Count++
		}
	}
	return t, m.fail
}

func (m *memoryRepo) SalesByMode(_ context.Context, w period.Window) ([]ModeTotal, error) {
	sums := map[string]float64{}
	for _, s := range m.sales {
		if w.Contains(s.at) {
			sums[s.mode] += s.net
		}
	}
	var out []ModeTotal
	for mode, total := range sums {
		out = append(out, ModeTotal{Mode: mode, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out, nil
}

func (m *memoryRepo) SalesTrend(_ context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error) {
	var points []spend
	for _, s := range m.sales {
		points = append(points, spend{at: s.at, amount: s.net})
	}
	return bucketize(points, w, g, loc), nil
}

func (m *memoryRepo) ExpenseTrend(_ context.Context, w period.Window, g Granularity, loc *time.Location) ([]Bucket, error) {
	return bucketize(m.spends, w, g, loc), nil
}

func (m *memoryRepo) ExpenseTotal(_ context.Context, w period.Window) (float64, error) {
	var total float64
	for _, s := range m.spends {
		if w.Contains(s.at) {
			total += s.amount
		}
	}
	return total, nil
}

func (m *memoryRepo) TopProducts(_ context.Context, limit int) ([]ProductSales, error) {
	m.topLimit = limit
	byName := map[string]*ProductSales{}
	for _, s := range m.sales {
		for _, item := range s.items {
			p, ok := byName[item.Name]
			if !ok {
				p = &ProductSales{Name: item.Name}
				byName[item.Name] = p
			}
			p.TotalQty += item.TotalQty
			p.TotalRev += item.TotalRev
		}
	}
	var out []ProductSales
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQty != out[j].TotalQty {
			return out[i].TotalQty > out[j].TotalQty
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRepo) List(_ context.Context, f expense.Filter) ([]*expense.Expense, error) {
	var out []*expense.Expense
	for _, s := range m.spends {
		if (f.From == nil || !s.at.Before(*f.From)) && (f.To == nil || !s.at.After(*f.To)) {
			out = append(out, &expense.Expense{Reason: "spend", Amount: s.amount, Date: s.at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func bucketize(points []spend, w period.Window, g Granularity, loc *time.Location) []Bucket {
	sums := map[string]float64{}
	for _, p := range points {
		if w.Contains(p.at) {
			sums[g.Key(p.at.In(loc))] += p.amount
		}
	}
	var out []Bucket
	for k, v := range sums {
		out = append(out, Bucket{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

var errStorage = errors.New("storage down")
