package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/colors"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// ColorsController handles product color management.
type ColorsController struct {
	repo *colors.Repository
}

func NewColorsController(repo *colors.Repository) *ColorsController {
	return &ColorsController{repo: repo}
}

type colorRequest struct {
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code"`
}

// GetAll returns all colors.
// GET /api/colors
func (cc *ColorsController) GetAll(c *gin.Context) {
	list, err := cc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all colors")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a color.
// POST /api/colors
func (cc *ColorsController) Create(c *gin.Context) {
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	color := &entities.Color{Name: req.Name, HexCode: req.HexCode}
	if err := cc.repo.Create(color); err != nil {
		respondInternalError(c, err, "create color")
		return
	}
	respondCreated(c, color)
}

// Update replaces a color's fields.
// PUT /api/colors/:id
func (cc *ColorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	color, err := cc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "color")
			return
		}
		respondInternalError(c, err, "get color")
		return
	}

	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	color.Name = req.Name
	color.HexCode = req.HexCode
	if err := cc.repo.Update(color); err != nil {
		respondInternalError(c, err, "update color")
		return
	}
	c.JSON(http.StatusOK, color)
}

// Delete removes a color.
// DELETE /api/colors/:id
func (cc *ColorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete color")
		return
	}
	respondSuccess(c, "color deleted")
}
