package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/entities"
)

func TestNewDatabase_SQLite(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(config.Database{Driver: "sqlite", Path: dbPath})
	require.NoError(t, err)
	defer db.Close()

	// Schema is in place for all entities
	assert.True(t, db.DB.Migrator().HasTable(&entities.Brand{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Product{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.ProductImage{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Category{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Color{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Banner{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Order{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.User{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.SyncRun{}))
}

func TestNewDatabase_DefaultsToSQLite(t *testing.T) {
	dbPath := "./test_database_default.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(config.Database{Path: dbPath})
	require.NoError(t, err)
	defer db.Close()
}

func TestNewDatabase_PostgresRequiresDSN(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DSN")
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "oracle"})
	require.Error(t, err)
}

func TestDatabase_ExternalIDUnique(t *testing.T) {
	dbPath := "./test_database_unique.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(config.Database{Driver: "sqlite", Path: dbPath})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.DB.Create(&entities.Brand{ExternalID: 7, Name: "Acme"}).Error)
	err = db.DB.Create(&entities.Brand{ExternalID: 7, Name: "Duplicate"}).Error
	assert.Error(t, err, "external id uniqueness must be enforced by the schema")
}
