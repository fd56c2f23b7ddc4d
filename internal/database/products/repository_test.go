package products

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
	dbPath := "./test_products_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Brand{},
		&entities.Category{},
		&entities.Color{},
		&entities.Product{},
		&entities.ProductImage{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Upsert_CreatesWithVendorFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rec := catalogsync.Record{
		ExternalID: 100,
		Name:       "Desk Lamp",
		Attributes: map[string]any{
			"lista1":      float64(1999.5),
			"lista2":      float64(1799),
			"porciva":     float64(19),
			"ivaincluido": "S",
		},
	}

	created, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, created)

	product, err := repo.GetByExternalID(100)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.Equal(t, 1999.5, product.PriceList1)
	assert.Equal(t, float64(1799), product.PriceList2)
	assert.Equal(t, float64(19), product.VATPercent)
	assert.True(t, product.VATIncluded)
}

func TestRepository_Upsert_PreservesCuratedFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	product := &entities.Product{
		ExternalID:       200,
		Name:             "Old Name",
		LongDescription:  "A long description",
		ShortDescription: "Short",
		Slug:             "old-name",
		Featured:         true,
	}
	require.NoError(t, repo.Create(product))
	_, err := repo.AddImage(product.ID, "/uploads/200/front.png")
	require.NoError(t, err)

	rec := catalogsync.Record{
		ExternalID: 200,
		Name:       "New Name",
		Attributes: map[string]any{"lista1": float64(10)},
	}
	created, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, created)

	updated, err := repo.GetByExternalID(200)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, float64(10), updated.PriceList1)
	assert.Equal(t, "A long description", updated.LongDescription)
	assert.Equal(t, "Short", updated.ShortDescription)
	assert.Equal(t, "old-name", updated.Slug)
	assert.True(t, updated.Featured)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "/uploads/200/front.png", updated.Images[0].Path)
}

func TestRepository_Upsert_MissingAttributesDoNotZeroPrices(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Upsert(context.Background(), catalogsync.Record{
		ExternalID: 300,
		Name:       "Widget",
		Attributes: map[string]any{"lista1": float64(42), "lista2": float64(40)},
	})
	require.NoError(t, err)

	// A later payload without price fields must not reset them
	_, err = repo.Upsert(context.Background(), catalogsync.Record{
		ExternalID: 300,
		Name:       "Widget",
		Attributes: map[string]any{},
	})
	require.NoError(t, err)

	product, err := repo.GetByExternalID(300)
	require.NoError(t, err)
	assert.Equal(t, float64(42), product.PriceList1)
	assert.Equal(t, float64(40), product.PriceList2)
}

func TestRepository_Upsert_NoDuplicateExternalID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rec := catalogsync.Record{ExternalID: 400, Name: "One", Attributes: map[string]any{}}
	_, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), rec)
	require.NoError(t, err)

	var count int64
	require.NoError(t, repo.db.Model(&entities.Product{}).Where("external_id = ?", 400).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_ListAll_GradesCompleteness(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	complete := &entities.Product{
		ExternalID:       1,
		Name:             "Complete",
		LongDescription:  "long",
		ShortDescription: "short",
	}
	require.NoError(t, repo.Create(complete))
	_, err := repo.AddImage(complete.ID, "/uploads/1/a.png")
	require.NoError(t, err)

	incomplete := &entities.Product{ExternalID: 2, Name: "Incomplete", LongDescription: "long"}
	require.NoError(t, repo.Create(incomplete))

	summaries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[int64]catalogsync.LocalSummary{}
	for _, s := range summaries {
		byID[s.ExternalID] = s
	}
	assert.True(t, byID[1].Complete)
	assert.Equal(t, "/uploads/1/a.png", byID[1].Image)
	assert.False(t, byID[2].Complete)
}

func TestRepository_AddImage_IncrementsPosition(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	product := &entities.Product{ExternalID: 500, Name: "Gallery"}
	require.NoError(t, repo.Create(product))

	first, err := repo.AddImage(product.ID, "/uploads/500/a.png")
	require.NoError(t, err)
	second, err := repo.AddImage(product.ID, "/uploads/500/b.png")
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
}

func TestRepository_SetCategoriesAndColors(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	product := &entities.Product{ExternalID: 600, Name: "Assoc"}
	require.NoError(t, repo.Create(product))

	catA := entities.Category{Name: "Lighting"}
	catB := entities.Category{Name: "Office"}
	require.NoError(t, repo.db.Create(&catA).Error)
	require.NoError(t, repo.db.Create(&catB).Error)

	require.NoError(t, repo.SetCategories(product, []entities.Category{catA, catB}))

	reloaded, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Categories, 2)

	// Replacing narrows the set
	require.NoError(t, repo.SetCategories(reloaded, []entities.Category{catA}))
	reloaded, err = repo.GetByID(product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Categories, 1)
	assert.Equal(t, "Lighting", reloaded.Categories[0].Name)
}

func TestRepository_Delete_RemovesImagesAndJoins(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	product := &entities.Product{ExternalID: 700, Name: "Doomed"}
	require.NoError(t, repo.Create(product))
	_, err := repo.AddImage(product.ID, "/uploads/700/a.png")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(product.ID))

	_, err = repo.GetByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var imageCount int64
	require.NoError(t, repo.db.Model(&entities.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount).Error)
	assert.Equal(t, int64(0), imageCount)
}
