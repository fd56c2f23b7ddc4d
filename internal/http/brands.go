package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/brands"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// BrandsController handles manual brand management. Vendor-driven changes go
// through the sync endpoints instead.
type BrandsController struct {
	repo *brands.Repository
}

func NewBrandsController(repo *brands.Repository) *BrandsController {
	return &BrandsController{repo: repo}
}

type brandRequest struct {
	ExternalID int64  `json:"external_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Image      string `json:"image"`
}

// GetAll returns all brands ordered by name.
// GET /api/brands
func (bc *BrandsController) GetAll(c *gin.Context) {
	list, err := bc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all brands")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByID returns one brand.
// GET /api/brands/:id
func (bc *BrandsController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "brand")
			return
		}
		respondInternalError(c, err, "get brand")
		return
	}
	c.JSON(http.StatusOK, brand)
}

// Create adds a brand manually.
// POST /api/brands
func (bc *BrandsController) Create(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "external_id and name are required")
		return
	}

	brand := &entities.Brand{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Image:      req.Image,
	}
	if err := bc.repo.Create(brand); err != nil {
		respondInternalError(c, err, "create brand")
		return
	}
	respondCreated(c, brand)
}

// Update replaces a brand's editable fields.
// PUT /api/brands/:id
func (bc *BrandsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "brand")
			return
		}
		respondInternalError(c, err, "get brand")
		return
	}

	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "external_id and name are required")
		return
	}

	brand.ExternalID = req.ExternalID
	brand.Name = req.Name
	brand.Image = req.Image
	if err := bc.repo.Update(brand); err != nil {
		respondInternalError(c, err, "update brand")
		return
	}
	c.JSON(http.StatusOK, brand)
}

// Delete removes a brand. A later sync pass will re-create it if the vendor
// still lists the external id.
// DELETE /api/brands/:id
func (bc *BrandsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete brand")
		return
	}
	respondSuccess(c, "brand deleted")
}
