package attachment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radif/attachments/internal/db"
)

// setupDB opens a fresh in-memory SQLite database for each test.
func setupDB(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo, err := NewSQLiteRepository(conn)
	require.NoError(t, err)
	return repo, conn
}

func TestNewSQLiteRepositoryCreatesTable(t *testing.T) {
	_, conn := setupDB(t)

	var name string
	err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='attachments';").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "attachments", name)
}

func TestSQLiteRepositoryInsertAndGet(t *testing.T) {
	repo, _ := setupDB(t)
	ctx := context.Background()

	rec := Record{
		ID:        "4f1c6a7e-5b0c-4c55-9a43-0b8e1f1b2f11",
		Namespace: "acct-1",
		Digest:    "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		MediaType: " text/plain; charset=UTF-8 ",
		Size:      5,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, rec))

	got, err := repo.Get(ctx, rec.Namespace, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Digest, got.Digest)
	assert.Equal(t, rec.MediaType, got.MediaType)
	assert.Equal(t, rec.Size, got.Size)
	assert.Equal(t, rec.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestSQLiteRepositoryGetScopedToNamespace(t *testing.T) {
	repo, _ := setupDB(t)
	ctx := context.Background()

	rec := Record{ID: "id-1", Namespace: "acct-1", Digest: "d", MediaType: "x", CreatedAt: time.Now()}
	require.NoError(t, repo.Insert(ctx, rec))

	_, err := repo.Get(ctx, "acct-2", rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(ctx, "acct-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepositoryDuplicateID(t *testing.T) {
	repo, _ := setupDB(t)
	ctx := context.Background()

	rec := Record{ID: "dup", Namespace: "n", Digest: "d", MediaType: "x", CreatedAt: time.Now()}
	require.NoError(t, repo.Insert(ctx, rec))
	assert.Error(t, repo.Insert(ctx, rec))
}
