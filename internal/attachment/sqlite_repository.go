package attachment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteRepository handles attachment metadata in a SQLite database. It is
// meant for single-node and local deployments.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates the attachments table if needed and returns the repository.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	query := `CREATE TABLE IF NOT EXISTS attachments (
	id TEXT PRIMARY KEY,
	namespace TEXT NOT NULL,
	digest TEXT NOT NULL,
	media_type TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS attachments_namespace_idx ON attachments (namespace);`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("create attachments table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Insert stores a new attachment row.
func (r *SQLiteRepository) Insert(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attachments (id, namespace, digest, media_type, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Namespace, rec.Digest, rec.MediaType, rec.Size, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment %s: %w", rec.ID, err)
	}
	return nil
}

// Get fetches an attachment by id within namespace.
func (r *SQLiteRepository) Get(ctx context.Context, namespace, id string) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, namespace, digest, media_type, size_bytes, created_at
		 FROM attachments WHERE id = ? AND namespace = ?`,
		id, namespace,
	).Scan(&rec.ID, &rec.Namespace, &rec.Digest, &rec.MediaType, &rec.Size, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", id, err)
	}
	return rec, nil
}
