package visitor

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	visitors map[string]Visitor
}

// NewMemoryRepository builds an in-memory visitor store for development
// and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{visitors: make(map[string]Visitor)}
}

func (r *memoryRepository) Create(_ context.Context, v Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visitors[v.ID] = v
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visitors[id]
	if !ok {
		return Visitor{}, ErrNotFound
	}
	return v, nil
}

func (r *memoryRepository) List(_ context.Context, f Filter, p Page) ([]Visitor, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Visitor, 0, len(r.visitors))
	for _, v := range r.visitors {
		if matches(v, f) {
			matched = append(matched, v)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (p.Number - 1) * p.PerPage
	if start > total {
		start = total
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) Update(_ context.Context, v Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visitors[v.ID]; !ok {
		return ErrNotFound
	}
	r.visitors[v.ID] = v
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visitors[id]; !ok {
		return ErrNotFound
	}
	delete(r.visitors, id)
	return nil
}

func (r *memoryRepository) Stats(_ context.Context, since time.Time) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	for _, v := range r.visitors {
		s.Total++
		if !v.CreatedAt.Before(since) {
			s.ThisWeek++
		}
		if v.Status == StatusNovo {
			s.NewContacts++
		}
	}
	return s, nil
}

func matches(v Visitor, f Filter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(v.Nome), needle) &&
			!strings.Contains(strings.ToLower(v.Telefone), needle) {
			return false
		}
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	return true
}
