package purchase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog/catalogtest"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory"
	"github.com/georgemunganga/supermart-backend/internal/modules/inventory/inventorytest"
	"github.com/georgemunganga/supermart-backend/internal/modules/supplier"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]Purchase
	seq       int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{purchases: make(map[uuid.UUID]Purchase)}
}

func (m *memoryRepo) Create(_ context.Context, p *Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.CreatedAt = time.Date(2026, 2, 1, 0, 0, m.seq, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	m.purchases[p.ID] = *p
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[id]
	if !ok {
		return nil, apperr.NotFound("Purchase not found")
	}
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, search string) ([]*Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(search))
	out := []*Purchase{}
	for _, p := range m.purchases {
		p := p
		name := ""
		if p.Supplier != nil {
			name = p.Supplier.Name
		}
		if q != "" && !strings.Contains(strings.ToLower(p.InvoiceNumber), q) && !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.purchases[id]; !ok {
		return apperr.NotFound("Purchase not found")
	}
	delete(m.purchases, id)
	return nil
}

func (m *memoryRepo) snapshot() func() {
	m.mu.Lock()
	saved := make(map[uuid.UUID]Purchase, len(m.purchases))
	for k, v := range m.purchases {
		saved[k] = v
	}
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.purchases = saved
	}
}

type supplierMap map[uuid.UUID]supplier.Supplier

func (s supplierMap) GetByID(_ context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	sup, ok := s[id]
	if !ok {
		return nil, apperr.NotFound("Supplier not found")
	}
	return &sup, nil
}

// memoryUnit restores the catalog and purchases when fn fails.
type memoryUnit struct {
	purchases *memoryRepo
	suppliers supplierMap
	stock     *inventorytest.Stock
}

func (u *memoryUnit) WithinTx(_ context.Context, fn func(Tx) error) error {
	restoreCatalog := u.stock.Catalog.Snapshot()
	restorePurchases := u.purchases.snapshot()
	err := fn(Tx{Purchases: u.purchases, Suppliers: u.suppliers, Inventory: u.stock.Unit()})
	if err != nil {
		restoreCatalog()
		restorePurchases()
	}
	return err
}

type fixture struct {
	svc      Service
	repo     *memoryRepo
	catalog  *catalogtest.Store
	stock    *inventorytest.Stock
	supplier supplier.Supplier
}

func newFixture() *fixture {
	store := catalogtest.NewStore()
	stock := inventorytest.NewStock(store)
	repo := newMemoryRepo()
	metro := supplier.Supplier{ID: uuid.New(), Name: "Metro", Phone: "111"}
	uow := &memoryUnit{purchases: repo, suppliers: supplierMap{metro.ID: metro}, stock: stock}
	s := NewService(repo, uow, inventory.NewReconciler())
	return &fixture{svc: s, repo: repo, catalog: store, stock: stock, supplier: metro}
}
