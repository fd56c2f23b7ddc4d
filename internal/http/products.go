package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/categories"
	"github.com/svaldez/catalog-admin/internal/database/colors"
	"github.com/svaldez/catalog-admin/internal/database/products"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// ProductsController handles the curated side of the product catalog:
// descriptions, slugs, associations and flags. Prices and VAT come from the
// vendor via sync and are read-only here.
type ProductsController struct {
	repo       *products.Repository
	categories *categories.Repository
	colors     *colors.Repository
}

func NewProductsController(repo *products.Repository, categoryRepo *categories.Repository, colorRepo *colors.Repository) *ProductsController {
	return &ProductsController{repo: repo, categories: categoryRepo, colors: colorRepo}
}

// productUpdateRequest carries the locally curated fields. Pointer fields
// distinguish "not provided" from zero values so a partial update never
// blanks a description.
type productUpdateRequest struct {
	LongDescription  *string `json:"long_description"`
	ShortDescription *string `json:"short_description"`
	Slug             *string `json:"slug"`
	Featured         *bool   `json:"featured"`
	Quantity         *int    `json:"quantity"`
	BrandID          *uint   `json:"brand_id"`
	CategoryIDs      *[]uint `json:"category_ids"`
	ColorIDs         *[]uint `json:"color_ids"`
}

// GetAll returns all products with their associations preloaded.
// GET /api/products
func (pc *ProductsController) GetAll(c *gin.Context) {
	list, err := pc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all products")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByID returns one product with images, categories and colors.
// GET /api/products/:id
func (pc *ProductsController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := pc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "product")
			return
		}
		respondInternalError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a product manually. Vendor syncs normally own creation; this
// exists for products the vendor does not carry.
// POST /api/products
func (pc *ProductsController) Create(c *gin.Context) {
	var req struct {
		ExternalID int64   `json:"external_id" binding:"required"`
		Name       string  `json:"name" binding:"required"`
		PriceList1 float64 `json:"price_list1"`
		PriceList2 float64 `json:"price_list2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "external_id and name are required")
		return
	}

	product := &entities.Product{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		PriceList1: req.PriceList1,
		PriceList2: req.PriceList2,
	}
	if err := pc.repo.Create(product); err != nil {
		respondInternalError(c, err, "create product")
		return
	}
	respondCreated(c, product)
}

// Update applies curated-field changes. Associations are replaced wholesale
// when category_ids or color_ids are provided.
// PUT /api/products/:id
func (pc *ProductsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := pc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "product")
			return
		}
		respondInternalError(c, err, "get product")
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.LongDescription != nil {
		product.LongDescription = *req.LongDescription
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.BrandID != nil {
		if *req.BrandID == 0 {
			product.BrandID = nil
		} else {
			product.BrandID = req.BrandID
		}
	}

	if err := pc.repo.Update(product); err != nil {
		respondInternalError(c, err, "update product")
		return
	}

	if req.CategoryIDs != nil {
		cats, err := pc.categories.GetByIDs(*req.CategoryIDs)
		if err != nil {
			respondInternalError(c, err, "resolve categories")
			return
		}
		if len(cats) != len(*req.CategoryIDs) {
			respondBadRequest(c, "unknown category id")
			return
		}
		if err := pc.repo.SetCategories(product, cats); err != nil {
			respondInternalError(c, err, "set product categories")
			return
		}
	}

	if req.ColorIDs != nil {
		cols, err := pc.colors.GetByIDs(*req.ColorIDs)
		if err != nil {
			respondInternalError(c, err, "resolve colors")
			return
		}
		if len(cols) != len(*req.ColorIDs) {
			respondBadRequest(c, "unknown color id")
			return
		}
		if err := pc.repo.SetColors(product, cols); err != nil {
			respondInternalError(c, err, "set product colors")
			return
		}
	}

	// Reload so the response reflects the new associations
	updated, err := pc.repo.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "reload product")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a product together with its images and associations.
// DELETE /api/products/:id
func (pc *ProductsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete product")
		return
	}
	respondSuccess(c, "product deleted")
}
