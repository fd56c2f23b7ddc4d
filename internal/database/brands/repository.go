// Package brands provides database operations for vendor brands.
//
// The repository implements catalogsync.Store for the brand sync pass:
//
//	var _ catalogsync.Store = (*brands.Repository)(nil)
package brands

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// Repository handles all brand database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new brands repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every brand ordered by name.
func (r *Repository) GetAll() ([]entities.Brand, error) {
	var brands []entities.Brand
	err := r.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

// GetByID retrieves a brand by its local primary key.
func (r *Repository) GetByID(id uint) (*entities.Brand, error) {
	var brand entities.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetByExternalID retrieves a brand by the vendor's key.
func (r *Repository) GetByExternalID(externalID int64) (*entities.Brand, error) {
	var brand entities.Brand
	if err := r.db.Where("external_id = ?", externalID).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// Create inserts a manually created brand.
func (r *Repository) Create(brand *entities.Brand) error {
	return r.db.Create(brand).Error
}

// Update saves admin edits to an existing brand.
func (r *Repository) Update(brand *entities.Brand) error {
	return r.db.Save(brand).Error
}

// Delete removes a brand. Deletion is an explicit admin action, never done by
// sync, and frees the external id for a future sync pass to recreate.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Brand{}, id).Error
}

// Upsert creates or updates the brand keyed by the record's external id.
// Only the vendor-sourced name is written on update; the locally curated
// image is never touched. Implements catalogsync.Store.
func (r *Repository) Upsert(ctx context.Context, rec catalogsync.Record) (bool, error) {
	db := r.db.WithContext(ctx)

	var existing entities.Brand
	err := db.Where("external_id = ?", rec.ExternalID).First(&existing).Error
	switch {
	case err == nil:
		return false, db.Model(&existing).Update("name", rec.Name).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		brand := entities.Brand{ExternalID: rec.ExternalID, Name: rec.Name}
		// The conflict clause makes the insert atomic per external id: two
		// passes racing on the same id resolve inside the database.
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&brand).Error
		return err == nil, err
	default:
		return false, err
	}
}

// ListAll projects every brand into the shape the reconciled view joins on.
// Implements catalogsync.Store.
func (r *Repository) ListAll(ctx context.Context) ([]catalogsync.LocalSummary, error) {
	var brands []entities.Brand
	if err := r.db.WithContext(ctx).Find(&brands).Error; err != nil {
		return nil, err
	}

	summaries := make([]catalogsync.LocalSummary, 0, len(brands))
	for _, b := range brands {
		summaries = append(summaries, catalogsync.LocalSummary{
			ExternalID: b.ExternalID,
			Name:       b.Name,
			Image:      b.Image,
			Complete:   true,
		})
	}
	return summaries, nil
}
