package billing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog/catalogtest"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory/inventorytest"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.Mutex
	bills map[uuid.UUID]Bill
	seq   int

	// duplicates makes the next n creates report a taken invoice number.
	duplicates int
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{bills: make(map[uuid.UUID]Bill)} }

func (m *memoryRepo) Create(_ context.Context, b *Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.duplicates > 0 {
		m.duplicates--
		return ErrDuplicateInvoice
	}
	for _, existing := range m.bills {
		if existing.InvoiceNumber == b.InvoiceNumber {
			return ErrDuplicateInvoice
		}
	}
	m.seq++
	b.CreatedAt = time.Date(2026, 3, 1, 0, 0, m.seq, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	stored := *b
	stored.Items = append([]Item(nil), b.Items...)
	m.bills[b.ID] = stored
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bills[id]
	if !ok {
		return nil, apperr.NotFound("Invoice not found")
	}
	return &b, nil
}

func (m *memoryRepo) List(_ context.Context) ([]*Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Bill{}
	for _, b := range m.bills {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bills[id]; !ok {
		return apperr.NotFound("Invoice not found")
	}
	delete(m.bills, id)
	return nil
}

type memoryUnit struct {
	bills *memoryRepo
	stock *inventorytest.Stock
}

func (u *memoryUnit) WithinTx(_ context.Context, fn func(Tx) error) error {
	restore := u.stock.Catalog.Snapshot()
	if err := fn(Tx{Bills: u.bills, Stock: u.stock}); err != nil {
		restore()
		return err
	}
	return nil
}

type fixture struct {
	svc     Service
	repo    *memoryRepo
	catalog *catalogtest.Store
	stock   *inventorytest.Stock
}

func newFixture() *fixture {
	store := catalogtest.NewStore()
	repo := newMemoryRepo()
	stock := inventorytest.NewStock(store)
	uow := &memoryUnit{bills: repo, stock: stock}
	return &fixture{svc: NewService(repo, uow, NewNumberer()), repo: repo, catalog: store, stock: stock}
}
