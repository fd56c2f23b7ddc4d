package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/banners"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// BannersController handles storefront banner management.
type BannersController struct {
	repo *banners.Repository
}

func NewBannersController(repo *banners.Repository) *BannersController {
	return &BannersController{repo: repo}
}

type bannerRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// GetAll returns all banners, newest first. Pass ?active=true to restrict to
// banners currently shown on the storefront.
// GET /api/banners
func (bc *BannersController) GetAll(c *gin.Context) {
	var (
		list []entities.Banner
		err  error
	)
	if c.Query("active") == "true" {
		list, err = bc.repo.GetActive()
	} else {
		list, err = bc.repo.GetAll()
	}
	if err != nil {
		respondInternalError(c, err, "get banners")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a banner.
// POST /api/banners
func (bc *BannersController) Create(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and image_url are required")
		return
	}

	banner := &entities.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := bc.repo.Create(banner); err != nil {
		respondInternalError(c, err, "create banner")
		return
	}
	respondCreated(c, banner)
}

// Update replaces a banner's fields.
// PUT /api/banners/:id
func (bc *BannersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	banner, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "banner")
			return
		}
		respondInternalError(c, err, "get banner")
		return
	}

	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and image_url are required")
		return
	}

	banner.Title = req.Title
	banner.ImageURL = req.ImageURL
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if err := bc.repo.Update(banner); err != nil {
		respondInternalError(c, err, "update banner")
		return
	}
	c.JSON(http.StatusOK, banner)
}

// Delete removes a banner.
// DELETE /api/banners/:id
func (bc *BannersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete banner")
		return
	}
	respondSuccess(c, "banner deleted")
}
