package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/recepcao-app/recepcao/internal/hashing"
)

// dummyHash keeps the unknown-email path doing bcrypt work comparable to
// the wrong-password path, so login timing does not enumerate accounts.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service manages administrator accounts.
type Service struct {
	repo Repository
}

// NewService creates a new administrator service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers an administrator with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, email, password string) (Admin, error) {
	hash, err := hashing.Password(password)
	if err != nil {
		return Admin{}, err
	}
	a := Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// Ensure seeds the administrator account if it does not exist yet.
func (s *Service) Ensure(ctx context.Context, email, password string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = s.Create(ctx, email, password)
	return err
}

// Authenticate verifies credentials and stamps the last login. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Admin, error) {
	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			hashing.VerifyPassword(dummyHash, password)
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, err
	}

	if !hashing.VerifyPassword(a.PasswordHash, password) {
		return Admin{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.RecordLogin(ctx, a.ID, now); err != nil {
		return Admin{}, err
	}
	a.LastLogin = &now
	return a, nil
}

// Get retrieves an administrator by identifier.
func (s *Service) Get(ctx context.Context, id string) (Admin, error) {
	return s.repo.FindByID(ctx, id)
}
