package admin

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

// NewMemoryRepository builds an in-memory administrator store for
// development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{admins: make(map[string]Admin)}
}

func (r *memoryRepository) Create(_ context.Context, a Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return errors.New("email already registered")
		}
	}
	r.admins[a.ID] = a
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return a, nil
}

func (r *memoryRepository) RecordLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return ErrNotFound
	}
	at = at.UTC()
	a.LastLogin = &at
	r.admins[id] = a
	return nil
}

// remove is a test hook simulating an account deleted out of band.
func (r *memoryRepository) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, id)
}
