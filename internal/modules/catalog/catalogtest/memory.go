// Package catalogtest provides an in-memory catalog.Store for tests.
package catalogtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/google/uuid"
)

// Store keeps products and categories in maps. WithinTx restores the
// previous state when fn fails.
type Store struct {
	mu         sync.Mutex
	products   map[uuid.UUID]catalog.Product
	categories map[uuid.UUID]catalog.Category
	seq        int

	// FailProductCreateAfter makes the n+1th product insert fail when > 0.
	FailProductCreateAfter int
	creates                int
}

func NewStore() *Store {
	return &Store{
		products:   make(map[uuid.UUID]catalog.Product),
		categories: make(map[uuid.UUID]catalog.Category),
	}
}

func (s *Store) Products() catalog.ProductRepository    { return productRepo{s} }
func (s *Store) Categories() catalog.CategoryRepository { return categoryRepo{s} }

func (s *Store) WithinTx(_ context.Context, fn func(catalog.Store) error) error {
	restore := s.Snapshot()
	if err := fn(s); err != nil {
		restore()
		return err
	}
	return nil
}

// Snapshot captures the current state and returns a function restoring it.
func (s *Store) Snapshot() func() {
	s.mu.Lock()
	products := make(map[uuid.UUID]catalog.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	categories := make(map[uuid.UUID]catalog.Category, len(s.categories))
	for k, v := range s.categories {
		categories[k] = v
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.products = products
		s.categories = categories
	}
}

// Put inserts or replaces p.
func (s *Store) Put(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// Product returns a copy of the stored product.
func (s *Store) Product(id uuid.UUID) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// AllProducts returns every product, oldest first.
func (s *Store) AllProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// AllCategories returns every category sorted by name.
func (s *Store) AllCategories() []catalog.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Millisecond)
}

// ── Products ──────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.creates++
	if r.s.FailProductCreateAfter > 0 && r.s.creates > r.s.FailProductCreateAfter {
		return apperr.Internal(nil, "insert product: injected failure")
	}
	p.CreatedAt = r.s.tick()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, apperr.NotFound("Product not found")
	}
	return &p, nil
}

func (r productRepo) List(_ context.Context, f catalog.ProductFilter) ([]*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []*catalog.Product{}
	for _, p := range r.s.products {
		p := p
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.Barcode), search) {
			continue
		}
		if f.Category != "" && catalog.CategoryKey(p.Category) != catalog.CategoryKey(f.Category) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r productRepo) ListExpiring(_ context.Context, from, to time.Time) ([]*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*catalog.Product{}
	for _, p := range r.s.products {
		p := p
		if !p.ExpiryDate.Before(from) && !p.ExpiryDate.After(to) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r productRepo) Update(_ context.Context, p *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return apperr.NotFound("Product not found")
	}
	p.UpdatedAt = r.s.tick()
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return apperr.NotFound("Product not found")
	}
	delete(r.s.products, id)
	return nil
}

// ── Categories ────────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r categoryRepo) List(_ context.Context) ([]*catalog.Category, error) {
	all := r.s.AllCategories()
	out := make([]*catalog.Category, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r categoryRepo) Create(_ context.Context, c *catalog.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.findLocked(c.Name); ok {
		return apperr.Validation("Category already exists")
	}
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) FindOrCreate(_ context.Context, name string) (*catalog.Category, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.findLocked(name); ok {
		return &c, false, nil
	}
	c := catalog.Category{ID: uuid.New(), Name: strings.TrimSpace(name), CreatedAt: r.s.tick()}
	c.UpdatedAt = c.CreatedAt
	r.s.categories[c.ID] = c
	return &c, true, nil
}

func (r categoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return apperr.NotFound("Category not found")
	}
	delete(r.s.categories, id)
	return nil
}

func (s *Store) findLocked(name string) (catalog.Category, bool) {
	key := catalog.CategoryKey(name)
	for _, c := range s.categories {
		if catalog.CategoryKey(c.Name) == key {
			return c, true
		}
	}
	return catalog.Category{}, false
}
