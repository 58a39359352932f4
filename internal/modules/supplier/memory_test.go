package supplier

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu        sync.RWMutex
	suppliers map[uuid.UUID]Supplier
	seq       int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{suppliers: make(map[uuid.UUID]Supplier)}
}

func (m *memoryRepo) Create(_ context.Context, s *Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	s.UpdatedAt = s.CreatedAt
	m.suppliers[s.ID] = *s
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.suppliers[id]
	if !ok {
		return nil, apperr.NotFound("Supplier not found")
	}
	return &s, nil
}

func (m *memoryRepo) List(_ context.Context, search string) ([]*Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(search))
	out := []*Supplier{}
	for _, s := range m.suppliers {
		s := s
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.ContactPerson), q) &&
			!strings.Contains(strings.ToLower(s.Phone), q) {
			continue
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, s *Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[s.ID]; !ok {
		return apperr.NotFound("Supplier not found")
	}
	m.suppliers[s.ID] = *s
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return apperr.NotFound("Supplier not found")
	}
	delete(m.suppliers, id)
	return nil
}
