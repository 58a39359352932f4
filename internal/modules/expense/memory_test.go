package expense

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepo struct {
	mu       sync.Mutex
	expenses []Expense
}

func (m *memoryRepo) Create(_ context.Context, e *Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.expenses = append(m.expenses, *e)
	return nil
}

func (m *memoryRepo) List(_ context.Context, f Filter) ([]*Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Expense{}
	for _, e := range m.expenses {
		e := e
		if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
