package entities

import "time"

// Brand mirrors one vendor brand. ExternalID is the vendor's stable key and
// is never reassigned once a row exists. Name is sourced from the vendor on
// every sync pass; Image is curated locally and left alone by sync.
type Brand struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID int64     `gorm:"uniqueIndex;not null" json:"external_id"`
	Name       string    `gorm:"index;size:256" json:"name"`
	Image      string    `gorm:"size:2048" json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Product mirrors one vendor product plus the locally curated storefront
// fields. Vendor-sourced: Name, both price lists and the VAT fields.
// Everything else (descriptions, slug, flags, associations, images) is
// maintained through the admin screens and untouched by sync.
type Product struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID int64  `gorm:"uniqueIndex;not null" json:"external_id"`
	Name       string `gorm:"index;size:512" json:"name"`

	PriceList1  float64 `json:"price_list1"`
	PriceList2  float64 `json:"price_list2"`
	VATPercent  float64 `json:"vat_percent,omitempty"`
	VATIncluded bool    `json:"vat_included"`

	Quantity         int    `gorm:"default:0" json:"quantity"`
	LongDescription  string `gorm:"type:text" json:"long_description,omitempty"`
	ShortDescription string `gorm:"type:text" json:"short_description,omitempty"`
	Slug             string `gorm:"index;size:512" json:"slug,omitempty"`
	Featured         bool   `gorm:"default:false" json:"featured"`

	BrandID    *uint          `gorm:"index" json:"brand_id,omitempty"`
	Brand      *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Categories []Category     `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Colors     []Color        `gorm:"many2many:product_colors;" json:"colors,omitempty"`
	Images     []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsComplete reports whether the product has been curated enough to publish:
// both descriptions filled in and at least one image attached.
func (p Product) IsComplete() bool {
	return p.LongDescription != "" && p.ShortDescription != "" && len(p.Images) > 0
}

// ProductImage is an uploaded image attached to a product. Position keeps the
// gallery order stable.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Path      string    `gorm:"size:1024" json:"path"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Slug        string    `gorm:"index;size:256" json:"slug,omitempty"`
	Image       string    `gorm:"size:2048" json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Color struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	HexCode   string    `gorm:"size:10" json:"hex_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

func (Product) TableName() string {
	return "products"
}

func (ProductImage) TableName() string {
	return "product_images"
}

func (Category) TableName() string {
	return "categories"
}

func (Color) TableName() string {
	return "colors"
}
