package repository

import (
	"path/filepath"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns a migrated in-memory database with foreign keys enabled.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dialector, err := database.Dialector(&config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"}, false)
	require.NoError(t, err)
	db, err := database.Open(dialector)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// setupFileSQLiteDB returns a migrated file-backed database that allows
// several connections, so a reader can run while a transaction is open.
func setupFileSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkwell.db")
	dialector, err := database.Dialector(&config.Config{DBDriver: config.DriverSQLite, DBPath: path}, false)
	require.NoError(t, err)
	db, err := database.Open(dialector)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// useMiniredis points the cache package at a fresh miniredis for the test.
func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	cache.SetClient(client)
	t.Cleanup(cache.Close)
	return mr
}
