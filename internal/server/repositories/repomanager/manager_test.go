package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountdesk/internal/server/config"
)

func TestNew_FileBackend(t *testing.T) {
	cfg := &config.Config{
		StoreBackend: config.StoreBackendFile,
		UserFilePath: filepath.Join(t.TempDir(), "users.json"),
	}

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NotNil(t, m.Users())
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := &config.Config{StoreBackend: "carrier-pigeon"}

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestFileManager_SharesOneRepository(t *testing.T) {
	m, err := NewFileRepositoryManager(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	assert.Same(t, m.Users(), m.Users(), "callers must funnel through one lock")
	assert.NoError(t, m.Close())
}

func TestPostgresManager_RunMigrations_UsesSeam(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	called := false
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		return nil
	}

	m := &PostgresRepositoryManager{db: db}
	require.NoError(t, m.RunMigrations(context.Background(), db))
	assert.True(t, called, "goose seam must be invoked")
}

func TestPostgresManager_RunMigrations_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}

	m := &PostgresRepositoryManager{db: db}
	assert.Error(t, m.RunMigrations(context.Background(), db))
}
