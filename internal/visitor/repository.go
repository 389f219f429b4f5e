package visitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists visitor records.
type Repository interface {
	Create(ctx context.Context, v Visitor) error
	Get(ctx context.Context, id string) (Visitor, error)
	List(ctx context.Context, f Filter, p Page) ([]Visitor, int, error)
	Update(ctx context.Context, v Visitor) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, since time.Time) (Stats, error)
}

const visitorColumns = `id, nome, telefone, idade, consentimento, created_at, ip_hash, origem, status, nota`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed visitor repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new visitor record.
func (r *PostgresRepository) Create(ctx context.Context, v Visitor) error {
	visitorID, err := uuid.Parse(v.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO visitors (`+visitorColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		visitorID, v.Nome, v.Telefone, v.Idade, v.Consentimento, v.CreatedAt.UTC(),
		v.IPHash, v.Origem, v.Status, v.Nota)
	return err
}

// Get fetches a visitor by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Visitor, error) {
	visitorID, err := uuid.Parse(id)
	if err != nil {
		return Visitor{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+visitorColumns+` FROM visitors WHERE id = $1`, visitorID)
	v, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Visitor{}, ErrNotFound
		}
		return Visitor{}, err
	}
	return v, nil
}

// List returns the requested page of matching visitors, newest first,
// along with the total match count.
func (r *PostgresRepository) List(ctx context.Context, f Filter, p Page) ([]Visitor, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(nome ILIKE $%d OR telefone ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM visitors`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.PerPage, (p.Number-1)*p.PerPage)
	query := fmt.Sprintf(`SELECT `+visitorColumns+` FROM visitors%s
        ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, clause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	visitors := make([]Visitor, 0, p.PerPage)
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, 0, err
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return visitors, total, nil
}

// Update rewrites the mutable columns of an existing visitor.
func (r *PostgresRepository) Update(ctx context.Context, v Visitor) error {
	visitorID, err := uuid.Parse(v.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE visitors
        SET telefone = $1, idade = $2, status = $3, nota = $4
        WHERE id = $5`, v.Telefone, v.Idade, v.Status, v.Nota, visitorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a visitor record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	visitorID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM visitors WHERE id = $1`, visitorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates counts in a single statement so concurrent writes never
// produce inconsistent totals.
func (r *PostgresRepository) Stats(ctx context.Context, since time.Time) (Stats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE created_at >= $1),
               COUNT(*) FILTER (WHERE status = $2)
        FROM visitors`
	var s Stats
	if err := r.db.QueryRow(ctx, query, since.UTC(), StatusNovo).Scan(&s.Total, &s.ThisWeek, &s.NewContacts); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func scanVisitor(row pgx.Row) (Visitor, error) {
	var (
		v         Visitor
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &v.Nome, &v.Telefone, &v.Idade, &v.Consentimento,
		&createdAt, &v.IPHash, &v.Origem, &v.Status, &v.Nota); err != nil {
		return Visitor{}, err
	}
	v.ID = id.String()
	v.CreatedAt = createdAt.UTC()
	return v, nil
}
