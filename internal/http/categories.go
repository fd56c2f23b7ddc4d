package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/categories"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// CategoriesController handles storefront category management.
type CategoriesController struct {
	repo *categories.Repository
}

func NewCategoriesController(repo *categories.Repository) *CategoriesController {
	return &CategoriesController{repo: repo}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
}

// GetAll returns all categories.
// GET /api/categories
func (cc *CategoriesController) GetAll(c *gin.Context) {
	list, err := cc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all categories")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a category.
// POST /api/categories
func (cc *CategoriesController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	category := &entities.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
		Image:       req.Image,
	}
	if err := cc.repo.Create(category); err != nil {
		respondInternalError(c, err, "create category")
		return
	}
	respondCreated(c, category)
}

// Update replaces a category's fields.
// PUT /api/categories/:id
func (cc *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Slug = req.Slug
	category.Image = req.Image
	if err := cc.repo.Update(category); err != nil {
		respondInternalError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete removes a category. Products keep existing; the join rows go away.
// DELETE /api/categories/:id
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete category")
		return
	}
	respondSuccess(c, "category deleted")
}
