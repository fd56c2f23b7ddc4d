package http

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/products"
)

// UploadController stores product images on disk and records them against
// the product. Files land in <uploadsDir>/<productID>/ and are served back
// under /uploads/.
type UploadController struct {
	products   *products.Repository
	uploadsDir string
}

func NewUploadController(productRepo *products.Repository, uploadsDir string) *UploadController {
	return &UploadController{products: productRepo, uploadsDir: uploadsDir}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload accepts a multipart form with "file" and "product_id", writes the
// file under the product's upload directory and appends it to the image
// gallery at the next position.
// POST /api/upload
func (uc *UploadController) Upload(c *gin.Context) {
	productIDStr := c.PostForm("product_id")
	productID, err := strconv.ParseUint(productIDStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "product_id is required")
		return
	}

	product, err := uc.products.GetByID(uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "product")
			return
		}
		respondInternalError(c, err, "get product for upload")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		respondBadRequest(c, "unsupported file type")
		return
	}

	productDir := filepath.Join(uc.uploadsDir, strconv.FormatUint(uint64(product.ID), 10))
	if err := os.MkdirAll(productDir, 0o755); err != nil {
		respondInternalError(c, err, "create upload directory")
		return
	}

	// Base strips any path components a hostile client put in the filename
	filename := sanitizeFilename(filepath.Base(fileHeader.Filename))
	destination := filepath.Join(productDir, filename)
	if err := c.SaveUploadedFile(fileHeader, destination); err != nil {
		respondInternalError(c, err, "save uploaded file")
		return
	}

	publicPath := fmt.Sprintf("/uploads/%d/%s", product.ID, filename)
	image, err := uc.products.AddImage(product.ID, publicPath)
	if err != nil {
		respondInternalError(c, err, "record product image")
		return
	}

	respondCreated(c, image)
}

// sanitizeFilename keeps uploaded names filesystem- and URL-safe.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || strings.Trim(out, "._") == "" {
		out = "image" + filepath.Ext(name)
	}
	return out
}
