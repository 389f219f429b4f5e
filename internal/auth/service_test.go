package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/recepcao-app/recepcao/internal/admin"
)

func newTestService(t *testing.T, store Store) (*Service, admin.Repository) {
	t.Helper()
	repo := admin.NewMemoryRepository()
	admins := admin.NewService(repo)
	if err := admins.Ensure(context.Background(), "pastor@igreja.org", "segredo123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return NewService(admins, store, time.Hour), repo
}

func TestLoginAndCurrentAdmin(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	token, a, err := svc.Login(ctx, "pastor@igreja.org", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if a.LastLogin == nil {
		t.Fatal("expected login to stamp last_login")
	}

	current, err := svc.CurrentAdmin(ctx, token)
	if err != nil {
		t.Fatalf("current admin: %v", err)
	}
	if current.ID != a.ID {
		t.Fatalf("expected admin %s, got %s", a.ID, current.ID)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	_, _, wrongPass := svc.Login(ctx, "pastor@igreja.org", "errada")
	_, _, unknownEmail := svc.Login(ctx, "ninguem@igreja.org", "segredo123")
	if !errors.Is(wrongPass, admin.ErrInvalidCredentials) || !errors.Is(unknownEmail, admin.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both paths, got %v / %v", wrongPass, unknownEmail)
	}
}

func TestCurrentAdminAnonymous(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CurrentAdmin(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
	if _, err := svc.CurrentAdmin(ctx, "nonexistent-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown token, got %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "pastor@igreja.org", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.CurrentAdmin(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected session revoked, got %v", err)
	}

	// Logging out again, or with no session at all, still succeeds.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Fatalf("anonymous logout: %v", err)
	}
}

func TestCurrentAdminDeletedAccount(t *testing.T) {
	svc, repo := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	token, a, err := svc.Login(ctx, "pastor@igreja.org", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	admin.RemoveAccount(repo, a.ID)

	if _, err := svc.CurrentAdmin(ctx, token); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stale session, got %v", err)
	}
	// The stale session was revoked, so the token is now anonymous.
	if _, err := svc.CurrentAdmin(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after revocation, got %v", err)
	}
}

func TestRedisStoreSessionFlow(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc, _ := newTestService(t, NewRedisStore(client))
	ctx := context.Background()

	token, a, err := svc.Login(ctx, "pastor@igreja.org", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	current, err := svc.CurrentAdmin(ctx, token)
	if err != nil {
		t.Fatalf("current admin: %v", err)
	}
	if current.ID != a.ID {
		t.Fatalf("expected admin %s, got %s", a.ID, current.ID)
	}

	// Sessions expire after the configured TTL.
	mr.FastForward(2 * time.Hour)
	if _, err := svc.CurrentAdmin(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected expired session to be anonymous, got %v", err)
	}
}
