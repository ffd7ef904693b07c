// internal/handlers/brand.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-catalog/internal/i18n"
	"github.com/javajoker/storefront-catalog/internal/presenter"
	"github.com/javajoker/storefront-catalog/internal/services"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

type BrandHandler struct {
	brandService *services.BrandService
}

func NewBrandHandler(brandService *services.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// GET /api/brand/
func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.brandService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, "brand", err)
		return
	}
	utils.ListResponse(c, presenter.Brands(brands))
}

// POST /api/manage/brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req services.CreateBrandRequest
	if !bindJSON(c, &req) {
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "brand", err)
		return
	}
	utils.CreatedResponse(c, i18n.KeyBrandCreated, brand)
}

// DELETE /api/manage/brands/:id
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := paramID(c, "id", "brand")
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "brand", err)
		return
	}
	utils.SuccessMessageResponse(c, i18n.KeyBrandDeleted)
}
