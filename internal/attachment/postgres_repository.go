package attachment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles attachment metadata in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository with the given connection pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new attachment row.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO attachments (id, namespace, digest, media_type, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Namespace, rec.Digest, rec.MediaType, rec.Size, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment %s: %w", rec.ID, err)
	}
	return nil
}

// Get fetches an attachment by id within namespace.
func (r *PostgresRepository) Get(ctx context.Context, namespace, id string) (*Record, error) {
	// Ids that are not UUIDs cannot exist.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	rec := &Record{}
	err := r.db.QueryRow(ctx,
		`SELECT id::text, namespace, digest, media_type, size_bytes, created_at
		 FROM attachments WHERE id = $1 AND namespace = $2`,
		id, namespace,
	).Scan(&rec.ID, &rec.Namespace, &rec.Digest, &rec.MediaType, &rec.Size, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", id, err)
	}
	return rec, nil
}
