package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists administrator accounts.
type Repository interface {
	Create(ctx context.Context, a Admin) error
	FindByEmail(ctx context.Context, email string) (Admin, error)
	FindByID(ctx context.Context, id string) (Admin, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed administrator repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new administrator.
func (r *PostgresRepository) Create(ctx context.Context, a Admin) error {
	adminID, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO admins (id, email, password_hash, created_at, last_login)
        VALUES ($1, $2, $3, $4, $5)`, adminID, a.Email, a.PasswordHash, a.CreatedAt.UTC(), a.LastLogin)
	return err
}

// FindByEmail fetches an administrator by exact email. No normalization
// is applied.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, password_hash, created_at, last_login
        FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

// FindByID fetches an administrator by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Admin, error) {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return Admin{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, email, password_hash, created_at, last_login
        FROM admins WHERE id = $1`, adminID)
	return scanAdmin(row)
}

// RecordLogin stamps the last successful authentication.
func (r *PostgresRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE admins SET last_login = $1 WHERE id = $2`, at.UTC(), adminID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (Admin, error) {
	var (
		a         Admin
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &a.Email, &a.PasswordHash, &createdAt, &a.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	a.ID = id.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
