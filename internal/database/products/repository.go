// Package products provides database operations for catalog products.
//
// The repository implements catalogsync.Store for the product sync pass:
//
//	var _ catalogsync.Store = (*products.Repository)(nil)
//
// Vendor-sourced fields (name, price lists, VAT) are written by sync; the
// curated fields (descriptions, slug, flags, associations, images) only
// change through the admin endpoints.
package products

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// Vendor payload field names for the product price/VAT attributes.
const (
	attrPriceList1  = "lista1"
	attrPriceList2  = "lista2"
	attrVATPercent  = "porciva"
	attrVATIncluded = "ivaincluido"
)

// Repository handles all product database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new products repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every product with its associations preloaded.
func (r *Repository) GetAll() ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.
		Preload("Categories").
		Preload("Colors").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// GetByID retrieves one product with its associations preloaded.
func (r *Repository) GetByID(id uint) (*entities.Product, error) {
	var product entities.Product
	err := r.db.
		Preload("Categories").
		Preload("Colors").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByExternalID retrieves a product by the vendor's key.
func (r *Repository) GetByExternalID(externalID int64) (*entities.Product, error) {
	var product entities.Product
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("external_id = ?", externalID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a manually created product.
func (r *Repository) Create(product *entities.Product) error {
	return r.db.Create(product).Error
}

// Update saves admin edits to a product's own columns. Associations are
// replaced separately via SetCategories/SetColors so a partial edit cannot
// drop them by accident.
func (r *Repository) Update(product *entities.Product) error {
	return r.db.Omit("Categories", "Colors", "Images", "Brand").Save(product).Error
}

// SetCategories replaces the product's category associations.
func (r *Repository) SetCategories(product *entities.Product, categories []entities.Category) error {
	return r.db.Model(product).Association("Categories").Replace(categories)
}

// SetColors replaces the product's color associations.
func (r *Repository) SetColors(product *entities.Product, colors []entities.Color) error {
	return r.db.Model(product).Association("Colors").Replace(colors)
}

// Delete removes a product together with its images and join rows.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product entities.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Colors").Clear(); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entities.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Product{}, id).Error
	})
}

// AddImage attaches an uploaded image at the end of the product's gallery.
func (r *Repository) AddImage(productID uint, path string) (*entities.ProductImage, error) {
	var maxPos int
	err := r.db.Model(&entities.ProductImage{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error
	if err != nil {
		return nil, err
	}

	image := &entities.ProductImage{
		ProductID: productID,
		Path:      path,
		Position:  maxPos + 1,
	}
	if err := r.db.Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// Upsert creates or updates the product keyed by the record's external id.
// Only the vendor-sourced columns are written on update; curated fields and
// associations are left untouched. Implements catalogsync.Store.
func (r *Repository) Upsert(ctx context.Context, rec catalogsync.Record) (bool, error) {
	db := r.db.WithContext(ctx)

	updates := vendorColumns(rec)

	var existing entities.Product
	err := db.Where("external_id = ?", rec.ExternalID).First(&existing).Error
	switch {
	case err == nil:
		return false, db.Model(&existing).Updates(updates).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		product := entities.Product{
			ExternalID:  rec.ExternalID,
			Name:        rec.Name,
			PriceList1:  attrFloat(rec.Attributes, attrPriceList1),
			PriceList2:  attrFloat(rec.Attributes, attrPriceList2),
			VATPercent:  attrFloat(rec.Attributes, attrVATPercent),
			VATIncluded: attrBool(rec.Attributes, attrVATIncluded),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.Assignments(updates),
		}).Create(&product).Error
		return err == nil, err
	default:
		return false, err
	}
}

// ListAll projects every product into the shape the reconciled view joins
// on, grading completeness from the curated fields. Implements
// catalogsync.Store.
func (r *Repository) ListAll(ctx context.Context) ([]catalogsync.LocalSummary, error) {
	var products []entities.Product
	err := r.db.WithContext(ctx).Preload("Images").Find(&products).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]catalogsync.LocalSummary, 0, len(products))
	for _, p := range products {
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0].Path
		}
		summaries = append(summaries, catalogsync.LocalSummary{
			ExternalID: p.ExternalID,
			Name:       p.Name,
			Image:      image,
			Complete:   p.IsComplete(),
		})
	}
	return summaries, nil
}

// vendorColumns builds the update set for one remote record. Only fields the
// vendor actually supplied are included, so a payload without prices cannot
// zero out existing ones.
func vendorColumns(rec catalogsync.Record) map[string]any {
	updates := map[string]any{"name": rec.Name}
	if _, ok := rec.Attributes[attrPriceList1]; ok {
		updates["price_list1"] = attrFloat(rec.Attributes, attrPriceList1)
	}
	if _, ok := rec.Attributes[attrPriceList2]; ok {
		updates["price_list2"] = attrFloat(rec.Attributes, attrPriceList2)
	}
	if _, ok := rec.Attributes[attrVATPercent]; ok {
		updates["vat_percent"] = attrFloat(rec.Attributes, attrVATPercent)
	}
	if _, ok := rec.Attributes[attrVATIncluded]; ok {
		updates["vat_included"] = attrBool(rec.Attributes, attrVATIncluded)
	}
	return updates
}

// attrFloat reads a numeric attribute that the vendor serializes either as a
// JSON number or a numeric string.
func attrFloat(attrs map[string]any, key string) float64 {
	switch v := attrs[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// attrBool reads a flag the vendor serializes as a bool, a number, or one of
// its "S"/"N" style strings.
func attrBool(attrs map[string]any, key string) bool {
	switch v := attrs[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "s", "si", "true", "1", "y", "yes":
			return true
		}
		return false
	default:
		return false
	}
}
