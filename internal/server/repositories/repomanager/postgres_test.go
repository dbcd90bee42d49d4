package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestFactories_ReturnRepositories(t *testing.T) {
	db, _ := newDB(t)
	m := NewPostgresRepositoryManager()

	assert.NotNil(t, m.Users(db))
	assert.NotNil(t, m.RefreshTokens(db))
	assert.NotNil(t, m.Entries(db))
	assert.NotNil(t, m.Notes(db))
	assert.NotNil(t, m.Periods(db))
	assert.NotNil(t, m.Consultations(db))
}

func TestRunMigrations(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	assert.ErrorContains(t, err, "migrate: boom")
}

func TestOpen(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	t.Run("ok", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing()
		var gotDriver string
		sqlOpen = func(driver, dsn string) (*sql.DB, error) {
			gotDriver = driver
			return db, nil
		}

		got, err := Open(context.Background(), "postgres://x")
		require.NoError(t, err)
		assert.Same(t, db, got)
		assert.Equal(t, "pgx", gotDriver)
	})

	t.Run("ping fails", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

		_, err := Open(context.Background(), "postgres://x")
		assert.ErrorContains(t, err, "ping database: refused")
	})

	t.Run("open fails", func(t *testing.T) {
		sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

		_, err := Open(context.Background(), "::")
		assert.ErrorContains(t, err, "open database: bad dsn")
	})
}
