package storage

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"cricsaga/internal/domain"
)

// ErrNotFound is returned when a directory or archive lookup misses.
var ErrNotFound = eris.New("not found")

// MemoryDirectory keeps live matches in process memory. It backs single-node
// deployments and tests.
type MemoryDirectory struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{matches: make(map[string]*domain.Match)}
}

func (d *MemoryDirectory) Create(_ context.Context, m *domain.Match) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.matches[m.ID]; ok {
		return eris.Errorf("match id %s already registered", m.ID)
	}
	d.matches[m.ID] = m
	return nil
}

func (d *MemoryDirectory) Lookup(_ context.Context, id string) (*domain.Match, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m, ok := d.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (d *MemoryDirectory) Save(_ context.Context, m *domain.Match) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.matches[m.ID] = m
	return nil
}

func (d *MemoryDirectory) Remove(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.matches, id)
	return nil
}

func (d *MemoryDirectory) List(_ context.Context) ([]*domain.Match, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.Match, 0, len(d.matches))
	for _, m := range d.matches {
		out = append(out, m)
	}
	return out, nil
}
