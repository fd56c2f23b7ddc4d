package brands

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_brands_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Brand{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Upsert_CreatesOnFirstPass(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.Upsert(context.Background(), catalogsync.Record{ExternalID: 7, Name: "Acme"})
	require.NoError(t, err)
	assert.True(t, created)

	brand, err := repo.GetByExternalID(7)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
}

func TestRepository_Upsert_UpdatesWithoutDuplicating(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.Upsert(context.Background(), catalogsync.Record{ExternalID: 7, Name: "Acme"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(context.Background(), catalogsync.Record{ExternalID: 7, Name: "Acme Renamed"})
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, repo.db.Model(&entities.Brand{}).Where("external_id = ?", 7).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must never duplicate an external id")

	brand, err := repo.GetByExternalID(7)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", brand.Name)
}

func TestRepository_Upsert_PreservesLocalImage(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Brand{ExternalID: 9, Name: "Old Name", Image: "x.png"}))

	_, err := repo.Upsert(context.Background(), catalogsync.Record{ExternalID: 9, Name: "New Name"})
	require.NoError(t, err)

	brand, err := repo.GetByExternalID(9)
	require.NoError(t, err)
	assert.Equal(t, "New Name", brand.Name)
	assert.Equal(t, "x.png", brand.Image, "sync must not touch the locally curated image")
}

func TestRepository_Upsert_Idempotent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rec := catalogsync.Record{ExternalID: 3, Name: "Steady"}

	created, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, created)

	brands, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Steady", brands[0].Name)
}

func TestRepository_ListAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Brand{ExternalID: 1, Name: "A", Image: "a.png"}))
	require.NoError(t, repo.Create(&entities.Brand{ExternalID: 2, Name: "B"}))

	summaries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[int64]catalogsync.LocalSummary{}
	for _, s := range summaries {
		byID[s.ExternalID] = s
	}
	assert.Equal(t, "a.png", byID[1].Image)
	assert.True(t, byID[1].Complete)
	assert.Equal(t, "B", byID[2].Name)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Brand{ExternalID: 5, Name: "Gone"}))
	brand, err := repo.GetByExternalID(5)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(brand.ID))

	_, err = repo.GetByExternalID(5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The external id is free again for a later sync pass
	created, err := repo.Upsert(context.Background(), catalogsync.Record{ExternalID: 5, Name: "Back"})
	require.NoError(t, err)
	assert.True(t, created)
}
