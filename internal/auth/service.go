package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/recepcao-app/recepcao/internal/admin"
)

// ErrUnauthenticated indicates the request carries no valid session.
var ErrUnauthenticated = errors.New("not authenticated")

// Service binds opaque session tokens to administrator accounts. Session
// state lives in the Store, never in process globals; handlers pass the
// token in explicitly on every call.
type Service struct {
	admins *admin.Service
	store  Store
	ttl    time.Duration
}

// NewService creates a new session service.
func NewService(admins *admin.Service, store Store, ttl time.Duration) *Service {
	return &Service{admins: admins, store: store, ttl: ttl}
}

// TTL reports the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login verifies credentials and issues a session token bound to the
// administrator. Failures surface as admin.ErrInvalidCredentials with no
// unknown-email/wrong-password distinction.
func (s *Service) Login(ctx context.Context, email, password string) (string, admin.Admin, error) {
	a, err := s.admins.Authenticate(ctx, email, password)
	if err != nil {
		return "", admin.Admin{}, err
	}

	token := uuid.New().String()
	if err := s.store.Put(ctx, token, a.ID, s.ttl); err != nil {
		return "", admin.Admin{}, err
	}
	return token, a, nil
}

// Logout revokes the session. Logging out an anonymous session succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

// CurrentAdmin resolves the session to its administrator. A session whose
// administrator no longer exists is revoked and reported as
// admin.ErrNotFound.
func (s *Service) CurrentAdmin(ctx context.Context, token string) (admin.Admin, error) {
	if token == "" {
		return admin.Admin{}, ErrUnauthenticated
	}
	adminID, err := s.store.Get(ctx, token)
	if err != nil {
		return admin.Admin{}, err
	}
	if adminID == "" {
		return admin.Admin{}, ErrUnauthenticated
	}

	a, err := s.admins.Get(ctx, adminID)
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			_ = s.store.Delete(ctx, token)
			return admin.Admin{}, admin.ErrNotFound
		}
		return admin.Admin{}, err
	}
	return a, nil
}
